package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"staffhub/internal/core"
	client "staffhub/internal/database/client"
	"staffhub/internal/telemetry"

	"github.com/redis/go-redis/v9"
)

type RateLimiterRepository struct {
	trace  *telemetry.Trace
	client *redis.Client
}

func NewRateLimiterRepository(trace *telemetry.Trace, client *client.RedisClient) *RateLimiterRepository {
	return &RateLimiterRepository{trace: trace, client: client.Client()}
}

var ErrRateLimitExceeded = errors.New("rate limit exceeded")

// Enabled Redis 未啟用時由呼叫端改用 in-process limiter
func (repository *RateLimiterRepository) Enabled() bool {
	return repository != nil && repository.client != nil
}

// Consume 以固定視窗消耗一次配額；第一次消耗時以 SETNX 初始化視窗與 TTL。
// 回傳：remaining（剩餘次數）、ttlSec（剩餘秒數）、err（若超限為 ErrRateLimitExceeded）
func (repository *RateLimiterRepository) Consume(
	contextValue context.Context,
	subject string,
	windowSeconds int64,
	limitCount int,
) (remainingCount int, timeToLiveSeconds int64, returnedError error) {

	contextValue, span, endSpan := repository.trace.WithSpan(contextValue)
	defer func() {
		if errors.Is(returnedError, ErrRateLimitExceeded) {
			endSpan(nil)
			return
		}
		endSpan(returnedError)
	}()

	traceMetadata := core.TraceRateLimitMeta{
		Key:       subject,
		Limit:     limitCount,
		WindowSec: windowSeconds,
		Backend:   "redis",
	}

	redisKey := repository.buildKey(subject)
	expirationDuration := time.Duration(windowSeconds) * time.Second

	// 本次消耗一次，所以初始值 = 總額-1
	wasSet, setError := repository.client.SetNX(contextValue, redisKey, limitCount-1, expirationDuration).Result()
	if setError != nil {
		return 0, 0, setError
	}
	if wasSet {
		remainingCount = limitCount - 1
		if remainingCount < 0 {
			remainingCount = 0
			returnedError = ErrRateLimitExceeded
		}
		timeToLiveSeconds = windowSeconds
	} else {
		// Key 已存在 → DECR 扣一次
		newValue, decrError := repository.client.Decr(contextValue, redisKey).Result()
		if decrError != nil {
			return 0, 0, decrError
		}
		ttlDuration, _ := repository.client.TTL(contextValue, redisKey).Result()
		if ttlDuration > 0 {
			timeToLiveSeconds = int64(ttlDuration.Seconds())
		} else {
			// 遺失 TTL 的 key 會永久封鎖，補上視窗
			_ = repository.client.Expire(contextValue, redisKey, expirationDuration).Err()
			timeToLiveSeconds = windowSeconds
		}
		if newValue < 0 {
			returnedError = ErrRateLimitExceeded
		} else {
			remainingCount = int(newValue)
		}
	}

	traceMetadata.Remaining, traceMetadata.TTL = remainingCount, timeToLiveSeconds
	traceMetadata.Blocked = returnedError != nil
	repository.trace.ApplyTraceAttributes(span, traceMetadata)
	return remainingCount, timeToLiveSeconds, returnedError
}

// buildKey 例如 staffhub:rate_limit:<shopOwnerId>
func (repository *RateLimiterRepository) buildKey(subject string) string {
	return fmt.Sprintf("%s:%s:%s", core.RedisKeyServerName, core.RedisKeyRateLimit, subject)
}
