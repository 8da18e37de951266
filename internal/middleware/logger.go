package middleware

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"strings"
	"unicode/utf8"

	"staffhub/config"
	"staffhub/internal/core"
	"staffhub/internal/database/fluentd/model"
	"staffhub/internal/database/fluentd/repository"
	"staffhub/internal/telemetry"
	"staffhub/utils/validate"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const bodyPreviewLimit = 2000

type Logger struct {
	logger            *zap.Logger
	trace             *telemetry.Trace
	config            *config.Configuration
	fluentdRepository *repository.LogRepository
}

func NewLogger(
	logger *zap.Logger,
	trace *telemetry.Trace,
	config *config.Configuration,
	fluentdRepository *repository.LogRepository,
) *Logger {
	return &Logger{
		logger:            logger,
		trace:             trace,
		config:            config,
		fluentdRepository: fluentdRepository,
	}
}

// LoggerHandler 記錄請求；body 先遮蔽憑證欄位再寫入日誌與 fluentd
func (m *Logger) LoggerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if skipTelemetry(c) {
			c.Next()
			return
		}

		ctx, span, end := m.trace.WithSpan(c.Request.Context(), string(core.SpanLoggerMiddleware))

		mediaType, _, _ := mime.ParseMediaType(c.GetHeader("Content-Type"))

		var bodyRaw string
		var ownerFromBody string
		if isBinaryContent(mediaType) {
			bodyRaw = fmt.Sprintf("(binary %s, %d bytes)", mediaType, c.Request.ContentLength)
		} else if c.Request.Body != nil && c.Request.ContentLength != 0 {
			// 讀完整 body 後回填，確保下游仍可讀取
			data, _ := io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewReader(data))

			if strings.HasPrefix(mediaType, "application/json") {
				bodyRaw = toSafePreview([]byte(validate.RedactJSON(data)), bodyPreviewLimit)
				ownerFromBody = shopOwnerFromJSON(data)
			} else {
				bodyRaw = toSafePreview(data, bodyPreviewLimit)
			}
		}

		method := c.Request.Method
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery
		traceID := span.SpanContext().TraceID()
		spanID := span.SpanContext().SpanID()

		headerMap := make(map[string]string, len(c.Request.Header))
		for k, v := range c.Request.Header {
			lk := strings.ToLower(k)
			if lk == "authorization" || lk == "cookie" {
				continue
			}
			headerMap[lk] = strings.Join(v, ",")
		}
		paramsMap := make(map[string]string, len(c.Params))
		for _, p := range c.Params {
			paramsMap[p.Key] = p.Value
		}

		m.trace.ApplyTraceAttributes(span, core.LoggerRequestMeta{
			Method:     method,
			Path:       path,
			FullPath:   c.FullPath(),
			Query:      query,
			Body:       bodyRaw,
			Host:       c.Request.Host,
			UserAgent:  c.Request.UserAgent(),
			ContentLen: c.Request.ContentLength,
			Proto:      c.Request.Proto,
			ClientIP:   c.ClientIP(),
			Headers:    headerMap,
			Params:     paramsMap,
		})

		logFields := []zap.Field{
			zap.String("requestId", requestID(c)),
			zap.String("method", method),
			zap.String("path", path),
			zap.Any("headers", headerMap),
		}
		if query != "" {
			logFields = append(logFields, zap.String("query", query))
		}
		if len(paramsMap) > 0 {
			logFields = append(logFields, zap.Any("params", paramsMap))
		}
		if bodyRaw != "" {
			logFields = append(logFields, zap.String("body", bodyRaw))
		}
		logFields = append(logFields,
			zap.String("spanId", fmt.Sprintf("%x", spanID[:])),
			zap.String("traceId", fmt.Sprintf("%x", traceID[:])),
		)
		m.logger.Info("[Request] logging middleware message", logFields...)

		ownerID := c.Query("shopOwnerId")
		if ownerID == "" {
			ownerID = ownerFromBody
		}
		err := m.fluentdRepository.LogRequest(ctx, model.RequestLog{
			RequestID:   requestID(c),
			Path:        path,
			Method:      method,
			ShopID:      c.Param("shopId"),
			ShopOwnerID: ownerID,
			Body:        bodyRaw,
			ClientIP:    base64.RawStdEncoding.EncodeToString([]byte(c.ClientIP())),
			UserAgent:   c.Request.UserAgent(),
			Version:     m.config.App.Version,
			RequestTS:   requestStart(c).Format(core.FluentdTimeLayout),
		})
		if err != nil {
			m.logger.Debug("fluentd request log dropped", zap.Error(err))
		}
		end(nil)
		c.Next()
	}
}

// shopOwnerFromJSON 只取 shopOwnerId，解析失敗回傳空字串
func shopOwnerFromJSON(data []byte) string {
	var probe struct {
		ShopOwnerID string `json:"shopOwnerId"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return ""
	}
	return probe.ShopOwnerID
}

// 僅對文字內容做安全預覽：UTF-8 直接截斷；非 UTF-8 以 Base64 表示
func toSafePreview(b []byte, max int) string {
	if len(b) == 0 {
		return ""
	}
	if utf8.Valid(b) {
		if len(b) > max {
			return string(b[:max]) + "…"
		}
		return string(b)
	}
	if len(b) > max {
		b = b[:max]
	}
	return "b64:" + base64.StdEncoding.EncodeToString(b)
}

func isBinaryContent(mediaType string) bool {
	return strings.HasPrefix(mediaType, "multipart/") ||
		strings.HasPrefix(mediaType, "image/") ||
		strings.HasPrefix(mediaType, "audio/") ||
		strings.HasPrefix(mediaType, "video/") ||
		mediaType == "application/octet-stream"
}
