package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"staffhub/config"
	"staffhub/internal/database/redis/repository"

	"go.uber.org/zap"
)

type fakeRedisLimiter struct {
	enabled   bool
	remaining int
	ttl       int64
	err       error
	calls     int
}

func (f *fakeRedisLimiter) Enabled() bool { return f.enabled }

func (f *fakeRedisLimiter) Consume(context.Context, string, int64, int) (int, int64, error) {
	f.calls++
	return f.remaining, f.ttl, f.err
}

func newRateLimitConf(limit int, window int64) *config.Configuration {
	conf := &config.Configuration{}
	conf.RateLimit = config.RateLimit{Enabled: true, Limit: limit, WindowSeconds: window}
	return conf
}

func TestRateLimitInMemory(t *testing.T) {
	t.Parallel()
	svc := NewRateLimitService(zap.NewNop(), newRateLimitConf(3, 60), &fakeRedisLimiter{})
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		d := svc.Allow(ctx, "owner-1")
		if !d.Allowed || d.Backend != "memory" {
			t.Fatalf("request %d should pass: %+v", i, d)
		}
	}
	blocked := svc.Allow(ctx, "owner-1")
	if blocked.Allowed {
		t.Fatalf("fourth request within the window must be blocked")
	}
	if blocked.RetryAfter <= 0 {
		t.Fatalf("expected retry-after, got %v", blocked.RetryAfter)
	}
	if d := svc.Allow(ctx, "owner-2"); !d.Allowed {
		t.Fatalf("limits are per subject")
	}

	// 一個補充週期（60s/3）後恢復一次
	now = now.Add(20 * time.Second)
	if d := svc.Allow(ctx, "owner-1"); !d.Allowed {
		t.Fatalf("token should refill after 20s")
	}
}

func TestRateLimitRedis(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		limiter     *fakeRedisLimiter
		wantAllowed bool
		wantRetry   time.Duration
	}{
		{name: "under limit", limiter: &fakeRedisLimiter{enabled: true, remaining: 4}, wantAllowed: true},
		{name: "over limit", limiter: &fakeRedisLimiter{enabled: true, ttl: 42, err: repository.ErrRateLimitExceeded}, wantRetry: 42 * time.Second},
		{name: "redis error fails open", limiter: &fakeRedisLimiter{enabled: true, err: errors.New("connection refused")}, wantAllowed: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := NewRateLimitService(zap.NewNop(), newRateLimitConf(5, 60), tt.limiter)

			d := svc.Allow(context.Background(), "owner-1")
			if d.Allowed != tt.wantAllowed || d.RetryAfter != tt.wantRetry || d.Backend != "redis" {
				t.Fatalf("unexpected decision: %+v", d)
			}
			if tt.limiter.calls != 1 {
				t.Fatalf("expected redis to be consulted once, got %d", tt.limiter.calls)
			}
		})
	}
}
