package middleware

import (
	"net/url"
	"strings"

	"staffhub/config"
	"staffhub/internal/core"
	"staffhub/internal/telemetry"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Cors struct {
	trace *telemetry.Trace
	conf  *config.Configuration
}

func NewCors(trace *telemetry.Trace, conf *config.Configuration) *Cors {
	return &Cors{trace: trace, conf: conf}
}

// corsConfig 完全比對 AllowOrigins，另以 host 後綴比對 AllowOriginSuffixes；兩者皆空時放行全部
func (m *Cors) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "X-Requested-With", core.HeaderRequestID},
		ExposeHeaders:    []string{core.HeaderRequestID, "X-App-Version", "Retry-After", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
	}
	origins := m.conf.Cors.AllowOrigins
	suffixes := m.conf.Cors.AllowOriginSuffixes
	if len(origins) == 0 && len(suffixes) == 0 {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
		return cfg
	}

	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[strings.TrimRight(o, "/")] = struct{}{}
	}
	cfg.AllowOriginFunc = func(origin string) bool {
		if _, ok := allowed[origin]; ok {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil || u.Host == "" {
			return false
		}
		host := u.Hostname()
		for _, suffix := range suffixes {
			if suffix != "" && strings.HasSuffix(host, suffix) {
				return true
			}
		}
		return false
	}
	return cfg
}

// CorsHandler 維運端點不做 tracing，但仍套用 CORS（避免 preflight 失敗）
func (m *Cors) CorsHandler() gin.HandlerFunc {
	cfg := m.corsConfig()
	corsHandler := cors.New(cfg)

	type corsMeta struct {
		AllowOrigins  []string `trace:"http.cors.allow_origins"`
		AllowSuffixes []string `trace:"http.cors.allow_origin_suffixes"`
		AllowMethods  []string `trace:"http.cors.allow_methods"`
		AllowCreds    bool     `trace:"http.cors.allow_credentials"`
		Origin        string   `trace:"http.request.origin,omitempty"`
	}

	return func(c *gin.Context) {
		if skipTelemetry(c) {
			corsHandler(c)
			return
		}

		_, span, end := m.trace.WithSpan(c.Request.Context(), string(core.SpanCorsMiddleware))
		m.trace.ApplyTraceAttributes(span, corsMeta{
			AllowOrigins:  m.conf.Cors.AllowOrigins,
			AllowSuffixes: m.conf.Cors.AllowOriginSuffixes,
			AllowMethods:  cfg.AllowMethods,
			AllowCreds:    cfg.AllowCredentials,
			Origin:        c.GetHeader("Origin"),
		})
		end(nil)

		// 內部會呼叫 c.Next() 或在拒絕時 Abort
		corsHandler(c)
	}
}
