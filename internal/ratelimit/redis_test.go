package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"

	"dealership-backoffice/internal/apperr"
)

// fakeRedis keeps counters in a map and ignores expirations unless advance is called.
type fakeRedis struct {
	vals    map[string]int64
	ttls    map[string]time.Duration
	failing error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{vals: map[string]int64{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
	if f.failing != nil {
		return redis.NewBoolResult(false, f.failing)
	}
	if _, ok := f.vals[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	f.vals[key] = 1
	f.ttls[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func (f *fakeRedis) Incr(ctx context.Context, key string) *redis.IntCmd {
	if f.failing != nil {
		return redis.NewIntResult(0, f.failing)
	}
	f.vals[key]++
	return redis.NewIntResult(f.vals[key], nil)
}

func (f *fakeRedis) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	f.ttls[key] = expiration
	return redis.NewBoolResult(true, nil)
}

// expireMinute drops minute keys, as if a minute had passed.
func (f *fakeRedis) expireMinute() {
	for k, ttl := range f.ttls {
		if ttl == minuteWindow {
			delete(f.vals, k)
			delete(f.ttls, k)
		}
	}
}

func TestRedisLimiter_OnePerMinute(t *testing.T) {
	rdb := newFakeRedis()
	l := NewRedisLimiter(rdb, 0)
	ctx := context.Background()

	if err := l.Allow(ctx, "u1:login"); err != nil {
		t.Fatalf("first send: %v", err)
	}
	if err := l.Allow(ctx, "u1:login"); !errors.Is(err, apperr.ErrRateLimited) {
		t.Fatalf("second send err = %v, want ErrRateLimited", err)
	}
	if err := l.Allow(ctx, "u1:purchase"); err != nil {
		t.Errorf("other key: %v", err)
	}
	if rdb.ttls["otp_hour_u1:login"] != hourWindow {
		t.Errorf("hour key ttl = %v, want %v", rdb.ttls["otp_hour_u1:login"], hourWindow)
	}
}

func TestRedisLimiter_HourlyBudget(t *testing.T) {
	rdb := newFakeRedis()
	l := NewRedisLimiter(rdb, 3)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if err := l.Allow(ctx, "k"); err != nil {
			t.Fatalf("send %d: %v", i, err)
		}
		rdb.expireMinute()
	}
	if err := l.Allow(ctx, "k"); !errors.Is(err, apperr.ErrRateLimited) {
		t.Errorf("fourth send err = %v, want ErrRateLimited", err)
	}
}

func TestRedisLimiter_FailsOpen(t *testing.T) {
	rdb := newFakeRedis()
	rdb.failing = errors.New("connection refused")
	if err := NewRedisLimiter(rdb, 0).Allow(context.Background(), "k"); err != nil {
		t.Errorf("err = %v, want nil when redis is down", err)
	}
}
