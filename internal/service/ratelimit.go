package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"staffhub/config"
	"staffhub/internal/database/redis/repository"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const maxLocalLimiters = 10000

type RateLimitDecision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
	Backend    string
}

// RateLimitService Redis 啟用時走固定視窗，否則用 in-process token bucket
type RateLimitService struct {
	logger *zap.Logger
	conf   config.RateLimit
	redis  RedisLimiter

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	now      func() time.Time
}

func NewRateLimitService(logger *zap.Logger, conf *config.Configuration, redis RedisLimiter) *RateLimitService {
	c := conf.RateLimit
	if c.Limit <= 0 {
		c.Limit = 10
	}
	if c.WindowSeconds <= 0 {
		c.WindowSeconds = 60
	}
	return &RateLimitService{
		logger:   logger,
		conf:     c,
		redis:    redis,
		limiters: make(map[string]*rate.Limiter),
		now:      time.Now,
	}
}

func (s *RateLimitService) Enabled() bool {
	return s.conf.Enabled
}

// Allow Redis 發生錯誤時放行，不阻斷主流程
func (s *RateLimitService) Allow(ctx context.Context, subject string) RateLimitDecision {
	if s.redis != nil && s.redis.Enabled() {
		remaining, ttl, err := s.redis.Consume(ctx, subject, s.conf.WindowSeconds, s.conf.Limit)
		switch {
		case err == nil:
			return RateLimitDecision{Allowed: true, Limit: s.conf.Limit, Remaining: remaining, Backend: "redis"}
		case errors.Is(err, repository.ErrRateLimitExceeded):
			return RateLimitDecision{Limit: s.conf.Limit, RetryAfter: time.Duration(ttl) * time.Second, Backend: "redis"}
		default:
			s.logger.Warn("redis rate limiter unavailable, request allowed", zap.String("subject", subject), zap.Error(err))
			return RateLimitDecision{Allowed: true, Limit: s.conf.Limit, Remaining: s.conf.Limit, Backend: "redis"}
		}
	}
	return s.allowLocal(subject)
}

func (s *RateLimitService) allowLocal(subject string) RateLimitDecision {
	now := s.now()
	limiter := s.limiterFor(subject, now)

	decision := RateLimitDecision{Limit: s.conf.Limit, Backend: "memory"}
	if limiter.AllowN(now, 1) {
		decision.Allowed = true
		if tokens := limiter.TokensAt(now); tokens > 0 {
			decision.Remaining = int(tokens)
		}
		return decision
	}
	r := limiter.ReserveN(now, 1)
	decision.RetryAfter = r.DelayFrom(now)
	r.CancelAt(now)
	return decision
}

func (s *RateLimitService) limiterFor(subject string, now time.Time) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l, ok := s.limiters[subject]; ok {
		return l
	}
	if len(s.limiters) >= maxLocalLimiters {
		// 已補滿的 limiter 等同全新狀態，可安全移除
		for k, l := range s.limiters {
			if l.TokensAt(now) >= float64(l.Burst()) {
				delete(s.limiters, k)
			}
		}
	}
	window := time.Duration(s.conf.WindowSeconds) * time.Second
	l := rate.NewLimiter(rate.Every(window/time.Duration(s.conf.Limit)), s.conf.Limit)
	s.limiters[subject] = l
	return l
}
