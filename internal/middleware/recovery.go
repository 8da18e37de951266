package middleware

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"
	"unicode/utf8"

	"staffhub/config"
	"staffhub/internal/core"
	"staffhub/internal/database/fluentd/model"
	"staffhub/internal/database/fluentd/repository"
	cErr "staffhub/internal/pkg/error"
	res "staffhub/internal/pkg/response"
	"staffhub/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Recovery struct {
	logger            *zap.Logger
	trace             *telemetry.Trace
	config            *config.Configuration
	fluentdRepository *repository.LogRepository
}

func NewRecovery(
	logger *zap.Logger,
	trace *telemetry.Trace,
	config *config.Configuration,
	fluentdRepository *repository.LogRepository,
) *Recovery {
	return &Recovery{
		logger:            logger,
		trace:             trace,
		config:            config,
		fluentdRepository: fluentdRepository,
	}
}

// ErrorHandler 將 panic 與 c.Errors 統一輸出為失敗信封；正式環境 5xx 不外露細節
func (middleware *Recovery) ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestTime := requestStart(c)
		hideInternal := middleware.config.App.IsProduction()

		// panic recover 必須在 c.Next() 之前註冊
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}
			duration := time.Since(requestTime)
			ctx, span, end := middleware.trace.WithSpan(c.Request.Context(), string(core.SpanRecoveryMiddleware))

			meta := core.TracePanicMeta{
				Path:       c.Request.URL.Path,
				Method:     c.Request.Method,
				ClientIP:   c.ClientIP(),
				UserAgent:  c.Request.UserAgent(),
				DurationMs: float64(duration.Milliseconds()),
				Message:    toSafeString(fmt.Sprint(rec)),
				Stack:      toSafeStack(debug.Stack()),
				Status:     http.StatusInternalServerError,
			}
			middleware.trace.ApplyTraceAttributes(span, meta)

			middleware.logger.Error("[PANIC] Recovered",
				zap.String("path", meta.Path),
				zap.String("method", meta.Method),
				zap.String("client_ip", meta.ClientIP),
				zap.Duration("duration", duration),
				zap.String("panic", meta.Message),
				zap.String("stacktrace", meta.Stack),
				zap.String("requestId", requestID(c)),
			)

			appErr := cErr.InternalServer(meta.Message)
			end(appErr)
			if !c.Writer.Written() {
				res.FailByErr(c, requestID(c), appErr, hideInternal)
			}
			middleware.logResponse(ctx, c, appErr, duration)
			c.Abort()
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		duration := time.Since(requestTime)
		ctx, span, end := middleware.trace.WithSpan(c.Request.Context(), string(core.SpanRecoveryMiddleware))

		appErr := firstAppError(c.Errors)
		middleware.trace.ApplyTraceAttributes(span, core.TraceErrorMeta{
			Code:       appErr.ErrorCode(),
			Message:    appErr.Error(),
			Detail:     toSafeString(appErr.ErrorDesc()),
			Status:     appErr.HttpCode(),
			DurationMs: float64(duration.Milliseconds()),
		})

		fields := []zap.Field{
			zap.Int("code", appErr.ErrorCode()),
			zap.Int("status", appErr.HttpCode()),
			zap.String("data", appErr.ErrorDesc()),
			zap.Duration("duration", duration),
			zap.String("requestId", requestID(c)),
		}
		if appErr.HttpCode() >= http.StatusInternalServerError {
			middleware.logger.Error(appErr.Error(), fields...)
			end(appErr)
		} else {
			middleware.logger.Warn(appErr.Error(), fields...)
			end(nil)
		}

		res.FailByErr(c, requestID(c), appErr, hideInternal)
		middleware.logResponse(ctx, c, appErr, duration)
	}
}

func (middleware *Recovery) logResponse(ctx context.Context, c *gin.Context, appErr *cErr.Error, duration time.Duration) {
	err := middleware.fluentdRepository.LogResponse(ctx, model.ResponseLog{
		RequestID:  requestID(c),
		Code:       appErr.ErrorCode(),
		StatusCode: appErr.HttpCode(),
		Error:      toSafeString(appErr.ErrorDesc()),
		LatencyMs:  float64(duration.Microseconds()) / 1000,
		Version:    middleware.config.App.Version,
		ResponseTS: time.Now().UTC().Format(core.FluentdTimeLayout),
	})
	if err != nil {
		middleware.logger.Debug("fluentd response log dropped", zap.Error(err))
	}
}

// firstAppError 取第一個 *cErr.Error；沒有則把最後一個錯誤視為 500
func firstAppError(errs []*gin.Error) *cErr.Error {
	for _, e := range errs {
		var appErr *cErr.Error
		if errors.As(e.Err, &appErr) {
			return appErr
		}
	}
	return cErr.InternalServer(errs[len(errs)-1].Error())
}

// ---- helpers ----

func toSafeString(s string) string {
	const max = 8000
	if utf8.ValidString(s) {
		if len(s) > max {
			return s[:max] + "…"
		}
		return s
	}
	b := []byte(s)
	if len(b) > max {
		b = b[:max]
	}
	return "b64:" + base64.StdEncoding.EncodeToString(b)
}

func toSafeStack(b []byte) string {
	const max = 16000
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
