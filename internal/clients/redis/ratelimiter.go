package redis

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/stembot/stembot-backend/internal/pkg/logger"
	"github.com/stembot/stembot-backend/internal/utils"
)

// RateLimiter is the capability the HTTP layer needs: a shared
// increment-and-compare counter addressed by key. Backing it with Redis keeps
// the limit meaningful across instances, unlike a process-local map.
type RateLimiter interface {
	// TryAcquire consumes one slot under key. Returns false when the window
	// budget is spent.
	TryAcquire(ctx context.Context, key string) (bool, error)
	Close() error
}

type rateLimiter struct {
	log    *logger.Logger
	rdb    *goredis.Client
	limit  int
	window time.Duration
	prefix string
}

func NewRateLimiter(log *logger.Logger) (RateLimiter, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	limit := utils.GetEnvAsInt("RATE_LIMIT_REQUESTS", 30, log)
	windowSec := utils.GetEnvAsInt("RATE_LIMIT_WINDOW_SECONDS", 60, log)

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &rateLimiter{
		log:    log.With("service", "RedisRateLimiter"),
		rdb:    rdb,
		limit:  limit,
		window: time.Duration(windowSec) * time.Second,
		prefix: "ratelimit:",
	}, nil
}

func (rl *rateLimiter) TryAcquire(ctx context.Context, key string) (bool, error) {
	if rl == nil || rl.rdb == nil {
		return false, fmt.Errorf("rate limiter not initialized")
	}

	full := rl.prefix + key
	count, err := rl.rdb.Incr(ctx, full).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		// First hit in the window owns the expiry.
		if err := rl.rdb.Expire(ctx, full, rl.window).Err(); err != nil {
			rl.log.Warn("Failed to set rate-limit window expiry", "key", key, "error", err)
		}
	}
	return count <= int64(rl.limit), nil
}

func (rl *rateLimiter) Close() error {
	if rl == nil || rl.rdb == nil {
		return nil
	}
	return rl.rdb.Close()
}

// NoopRateLimiter always allows. Used when REDIS_ADDR is not configured so
// local development doesn't require a Redis instance.
type NoopRateLimiter struct{}

func (NoopRateLimiter) TryAcquire(ctx context.Context, key string) (bool, error) { return true, nil }
func (NoopRateLimiter) Close() error                                             { return nil }
