package middleware

import (
	"net"
	"strconv"
	"time"

	"staffhub/config"
	"staffhub/internal/core"
	"staffhub/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

type TraceEntry struct {
	trace  *telemetry.Trace
	metric *telemetry.Metric
	conf   *config.Configuration
}

func NewTraceEntry(trace *telemetry.Trace, metric *telemetry.Metric, conf *config.Configuration) *TraceEntry {
	return &TraceEntry{trace: trace, metric: metric, conf: conf}
}

// Handler 最外層：request id、server span、請求計時與 Prometheus 指標
func (m *TraceEntry) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-App-Version", m.conf.App.Version)
		if skipTelemetry(c) {
			c.Next()
			return
		}

		start := time.Now().UTC()
		c.Set(core.ContextRequestStartKey, start)

		reqID := c.GetHeader(core.HeaderRequestID)
		if reqID == "" {
			if id, err := uuid.NewV7(); err == nil {
				reqID = id.String()
			} else {
				reqID = uuid.NewString()
			}
		}
		c.Set(core.ContextRequestIDKey, reqID)
		c.Header(core.HeaderRequestID, reqID)

		carrier := propagation.HeaderCarrier(c.Request.Header)
		ctx := otel.GetTextMapPropagator().Extract(c.Request.Context(), carrier)
		spanName := c.Request.Method + " " + endpointLabel(c)
		ctx, span := m.trace.StartSpanForLayer(ctx, core.TraceSpanName(spanName), trace.WithSpanKind(trace.SpanKindServer))
		c.Request = c.Request.WithContext(ctx)
		c.Set(core.ContextTraceKey, ctx)

		peerAddr, peerPort := "", 0
		if host, port, err := net.SplitHostPort(c.Request.RemoteAddr); err == nil {
			peerAddr = host
			if p, err := strconv.Atoi(port); err == nil {
				peerPort = p
			}
		} else {
			peerAddr = c.ClientIP()
		}

		scheme := "http"
		if c.Request.TLS != nil {
			scheme = "https"
		}
		meta := core.TraceHttpServerMeta{
			ClientAddr:        c.ClientIP(),
			HttpRequestMethod: c.Request.Method,
			HttpRoute:         endpointLabel(c),
			UrlPath:           c.Request.URL.Path,
			UrlScheme:         scheme,
			UserAgent:         c.Request.UserAgent(),
			ServerAddress:     m.conf.App.Name,
			NetworkPeerAddr:   peerAddr,
			NetworkPeerPort:   peerPort,
			NetworkProtoVer:   c.Request.Proto,
			SpanTraceID:       span.SpanContext().TraceID().String(),
		}
		m.trace.ApplyTraceAttributes(span, &meta)

		c.Next()

		status := c.Writer.Status()
		meta.HttpStatusCode = status
		m.trace.ApplyTraceAttributes(span, &meta)

		var spanErr error
		if status >= 500 && len(c.Errors) > 0 {
			spanErr = c.Errors.Last().Err
		}
		m.trace.EndSpan(span, spanErr)

		m.metric.ObserveRequest(endpointLabel(c), status, time.Since(start))
	}
}
