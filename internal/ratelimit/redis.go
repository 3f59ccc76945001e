// Package ratelimit throttles OTP sends per key with Redis counters.
package ratelimit

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"dealership-backoffice/internal/apperr"
)

const (
	// DefaultPerHour is the number of sends allowed per key in a rolling hour window.
	DefaultPerHour = 10
	minuteWindow   = time.Minute
	hourWindow     = time.Hour
)

// Client is the subset of *redis.Client the limiter uses.
type Client interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// RedisLimiter allows one send per key per minute and perHour sends per key per hour.
// Redis failures are logged and the send is allowed.
type RedisLimiter struct {
	rdb     Client
	perHour int64
}

// NewRedisLimiter returns a limiter over rdb. perHour <= 0 uses DefaultPerHour.
func NewRedisLimiter(rdb Client, perHour int) *RedisLimiter {
	if perHour <= 0 {
		perHour = DefaultPerHour
	}
	return &RedisLimiter{rdb: rdb, perHour: int64(perHour)}
}

// Allow reserves one send for key. It returns an error wrapping apperr.ErrRateLimited when
// key sent within the last minute or has used its hourly budget.
func (l *RedisLimiter) Allow(ctx context.Context, key string) error {
	minuteKey := "otp_minute_" + key
	hourKey := "otp_hour_" + key

	first, err := l.rdb.SetNX(ctx, minuteKey, 1, minuteWindow).Result()
	if err != nil {
		log.Printf("ratelimit: setnx %s: %v", minuteKey, err)
		return nil
	}
	if !first {
		return fmt.Errorf("%w: at most one code per minute", apperr.ErrRateLimited)
	}

	n, err := l.rdb.Incr(ctx, hourKey).Result()
	if err != nil {
		log.Printf("ratelimit: incr %s: %v", hourKey, err)
		return nil
	}
	if n == 1 {
		if err := l.rdb.Expire(ctx, hourKey, hourWindow).Err(); err != nil {
			log.Printf("ratelimit: expire %s: %v", hourKey, err)
		}
	}
	if n > l.perHour {
		return fmt.Errorf("%w: at most %d codes per hour", apperr.ErrRateLimited, l.perHour)
	}
	return nil
}

// Dial parses a redis:// URL and returns a connected client.
func Dial(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("ratelimit: parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ratelimit: ping redis: %w", err)
	}
	return rdb, nil
}
