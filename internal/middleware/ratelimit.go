package middleware

import (
	"bytes"
	"io"
	"math"
	"strconv"

	"staffhub/internal/core"
	cErr "staffhub/internal/pkg/error"
	"staffhub/internal/pkg/response"
	"staffhub/internal/service"
	"staffhub/internal/telemetry"

	"github.com/gin-gonic/gin"
)

type RateLimit struct {
	trace            *telemetry.Trace
	metric           *telemetry.Metric
	rateLimitService *service.RateLimitService
}

func NewRateLimit(
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	rateLimitService *service.RateLimitService,
) *RateLimit {
	return &RateLimit{
		trace:            trace,
		metric:           metric,
		rateLimitService: rateLimitService,
	}
}

// Guard 以 body 的 shopOwnerId 為單位限流；沒有時退回來源 IP
func (middleware *RateLimit) Guard() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !middleware.rateLimitService.Enabled() {
			c.Next()
			return
		}
		ctx, span, end := middleware.trace.WithSpan(c.Request.Context(), string(core.SpanRateLimitMiddleware))

		subject := ""
		if c.Request.Body != nil {
			data, _ := io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewReader(data))
			if owner := shopOwnerFromJSON(data); owner != "" {
				subject = "owner:" + owner
			}
		}
		if subject == "" {
			subject = "ip:" + c.ClientIP()
		}

		decision := middleware.rateLimitService.Allow(ctx, subject)

		c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))

		middleware.trace.ApplyTraceAttributes(span, core.TraceRateLimitMeta{
			Key:       subject,
			Limit:     decision.Limit,
			Remaining: decision.Remaining,
			TTL:       int64(decision.RetryAfter.Seconds()),
			Backend:   decision.Backend,
			Blocked:   !decision.Allowed,
		})

		if !decision.Allowed {
			retry := int64(math.Ceil(decision.RetryAfter.Seconds()))
			if retry < 1 {
				retry = 1
			}
			c.Header("Retry-After", strconv.FormatInt(retry, 10))
			middleware.metric.IncRateLimited(endpointLabel(c))
			err := cErr.RateLimitExceeded("Too many requests, please try again later")
			end(err)
			response.AbortWithError(c, err)
			return
		}
		end(nil)
		c.Next()
	}
}
