package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"staffhub/config"
	"staffhub/internal/core"
	"staffhub/internal/database/fluentd/model"
	"staffhub/internal/database/fluentd/repository"
	cErr "staffhub/internal/pkg/error"
	"staffhub/internal/pkg/response"
	"staffhub/internal/telemetry"
	"staffhub/utils/validate"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Response struct {
	logger            *zap.Logger
	trace             *telemetry.Trace
	config            *config.Configuration
	fluentdRepository *repository.LogRepository
}

func NewResponse(
	logger *zap.Logger,
	trace *telemetry.Trace,
	config *config.Configuration,
	fluentdRepository *repository.LogRepository,
) *Response {
	return &Response{
		logger:            logger,
		trace:             trace,
		config:            config,
		fluentdRepository: fluentdRepository,
	}
}

// FormatHandler 將 handler 以 response.Success 設定的資料展開成 {"success":true,...}
func (middleware *Response) FormatHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if skipTelemetry(c) {
			c.Next()
			return
		}

		c.Next()

		// 錯誤交由 Recovery；handler 自行寫出的回應不再包裝
		if len(c.Errors) > 0 || c.Writer.Written() {
			return
		}

		statusCode := c.Writer.Status()
		if statusCode >= http.StatusBadRequest {
			response.AbortWithError(c, cErr.MapHttpStatusToError(statusCode, http.StatusText(statusCode)))
			return
		}

		ctx, span, end := middleware.trace.WithSpan(c.Request.Context(), string(core.SpanResponseMiddleware))
		defer end(nil)

		data, _ := c.Get("data")
		message := c.GetString("message")
		body := envelope(data, message, requestID(c))

		jsonBytes, err := json.Marshal(body)
		if err != nil {
			response.AbortWithError(c, cErr.InternalServer("marshal response failed"))
			return
		}
		redacted := validate.RedactJSON(jsonBytes)
		duration := time.Since(requestStart(c))
		traceID := span.SpanContext().TraceID()
		spanID := span.SpanContext().SpanID()

		middleware.trace.ApplyTraceAttributes(span, core.TraceResponseMeta{
			Path:       c.Request.URL.Path,
			Method:     c.Request.Method,
			Status:     statusCode,
			Message:    message,
			DurationMs: float64(duration.Milliseconds()),
			Data:       toSafePreview([]byte(redacted), bodyPreviewLimit),
		})

		middleware.logger.Info("[Response] "+message,
			zap.String("requestId", requestID(c)),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Int("status", statusCode),
			zap.Duration("duration", duration),
			zap.String("spanId", fmt.Sprintf("%x", spanID[:])),
			zap.String("traceId", fmt.Sprintf("%x", traceID[:])),
		)

		if err := middleware.fluentdRepository.LogResponse(ctx, model.ResponseLog{
			RequestID:  requestID(c),
			Code:       cErr.SUCCESS,
			StatusCode: statusCode,
			Body:       redacted,
			LatencyMs:  float64(duration.Microseconds()) / 1000,
			Version:    middleware.config.App.Version,
			ResponseTS: time.Now().UTC().Format(core.FluentdTimeLayout),
		}); err != nil {
			middleware.logger.Debug("fluentd response log dropped", zap.Error(err))
		}

		c.Data(statusCode, "application/json; charset=utf-8", jsonBytes)
	}
}

// envelope map 型資料直接展開；其餘型別放在 data 欄位
func envelope(data any, message, reqID string) map[string]any {
	body := map[string]any{"success": true}
	switch v := data.(type) {
	case nil:
	case gin.H:
		for k, item := range v {
			body[k] = item
		}
	case map[string]any:
		for k, item := range v {
			body[k] = item
		}
	default:
		body["data"] = v
	}
	if message != "" {
		body["message"] = message
	}
	if reqID != "" {
		body["requestId"] = reqID
	}
	body["success"] = true
	return body
}
