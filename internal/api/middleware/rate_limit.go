package middleware

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"medinest-api/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Limiter decides whether the client identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// tokenBucket single-client token bucket
type tokenBucket struct {
	tokens   int
	lastTime time.Time
}

// MemoryLimiter per-key token bucket held in process memory
type MemoryLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*tokenBucket
	capacity int
	rate     float64
	window   time.Duration
	calls    int
	now      func() time.Time
}

// NewMemoryLimiter allows requests per window for each key, refilled continuously.
func NewMemoryLimiter(requests int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		buckets:  make(map[string]*tokenBucket),
		capacity: requests,
		rate:     float64(requests) / window.Seconds(),
		window:   window,
		now:      time.Now,
	}
}

// Allow takes one token from key's bucket
func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.calls++
	if l.calls%pruneEvery == 0 {
		l.prune(now)
	}

	b, ok := l.buckets[key]
	if !ok {
		b = &tokenBucket{tokens: l.capacity, lastTime: now}
		l.buckets[key] = b
	}

	newTokens := int(now.Sub(b.lastTime).Seconds() * l.rate)
	if newTokens > 0 {
		b.tokens = min(l.capacity, b.tokens+newTokens)
		b.lastTime = now
	}

	if b.tokens > 0 {
		b.tokens--
		return true, nil
	}
	return false, nil
}

// prune drops buckets idle for a full window; they would be full again anyway.
func (l *MemoryLimiter) prune(now time.Time) {
	for key, b := range l.buckets {
		if now.Sub(b.lastTime) >= l.window {
			delete(l.buckets, key)
		}
	}
}

// RedisLimiter fixed-window counter shared by every instance using the same redis.
type RedisLimiter struct {
	client   *redis.Client
	requests int64
	window   time.Duration
	prefix   string
	now      func() time.Time
}

// NewRedisLimiter allows requests per window for each key.
func NewRedisLimiter(client *redis.Client, requests int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client:   client,
		requests: int64(requests),
		window:   window,
		prefix:   "medinest:ratelimit:",
		now:      time.Now,
	}
}

// Allow increments key's counter for the current window
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	slot := l.now().UnixNano() / int64(l.window)
	redisKey := l.prefix + key + ":" + strconv.FormatInt(slot, 10)

	pipe := l.client.TxPipeline()
	count := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit counter: %w", err)
	}

	return count.Val() <= l.requests, nil
}

// RateLimit rejects clients over limiter's budget with 429. A limiter
// error lets the request through.
func RateLimit(limiter Limiter, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			common.LogWarn("Rate limiter unavailable",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
			)
			c.Next()
			return
		}

		if !allowed {
			common.LogInfo("Rate limit exceeded",
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)
			c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
			abortWithError(c, common.ErrTooManyRequests)
			return
		}

		c.Next()
	}
}
