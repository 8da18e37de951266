package middleware

import (
	"strings"
	"time"

	"staffhub/internal/core"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewTraceEntry,
	NewCors,
	NewLogger,
	NewRecovery,
	NewRateLimit,
	NewResponse,
)

// 維運端點不進 tracing / 日誌 / 信封
var untracedPrefixes = []string{
	"/swagger",
	"/metrics",
	"/version",
	"/health/",
	"/debug/pprof",
}

func skipTelemetry(c *gin.Context) bool {
	path := c.FullPath()
	if path == "" {
		path = c.Request.URL.Path
	}
	for _, prefix := range untracedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func requestID(c *gin.Context) string {
	return c.GetString(core.ContextRequestIDKey)
}

func requestStart(c *gin.Context) time.Time {
	if v, ok := c.Get(core.ContextRequestStartKey); ok {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}
	return time.Now().UTC()
}

// endpointLabel 未匹配路由統一歸為一個 label，避免 metric 維度爆量
func endpointLabel(c *gin.Context) string {
	if fp := c.FullPath(); fp != "" {
		return fp
	}
	return "unmatched"
}
