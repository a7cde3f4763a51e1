// README: Per-agent chat rate limiting; Redis fixed window or in-process fallback.
package middleware

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// Limiter answers whether the keyed caller may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

// RedisLimiter counts requests in a fixed one-minute window shared across
// instances. Redis trouble fails open: limiting is protection, not a
// correctness requirement, and a chat turn must not die on a cache outage.
type RedisLimiter struct {
	rdb   *redis.Client
	limit int64
}

func NewRedisLimiter(rdb *redis.Client, perMinute int) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, limit: int64(perMinute)}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) bool {
	k := "rate:chat:" + key
	n, err := l.rdb.Incr(ctx, k).Result()
	if err != nil {
		log.Printf("ratelimit: redis incr failed, allowing: %v", err)
		return true
	}
	if n == 1 {
		l.rdb.Expire(ctx, k, time.Minute)
	}
	return n <= l.limit
}

// LocalLimiter is the single-instance fallback when Redis is not configured.
type LocalLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
}

func NewLocalLimiter(perMinute int) *LocalLimiter {
	return &LocalLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(float64(perMinute) / 60.0),
		burst:    perMinute,
	}
}

func (l *LocalLimiter) Allow(ctx context.Context, key string) bool {
	l.mu.Lock()
	lim, ok := l.limiters[key]
	if !ok {
		lim = rate.NewLimiter(l.rate, l.burst)
		l.limiters[key] = lim
	}
	l.mu.Unlock()
	return lim.Allow()
}

// RateLimit keys on the authenticated agent, so it must follow Auth.
// A nil limiter disables limiting.
func RateLimit(limiter Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}
		key := strconv.FormatInt(CallerID(c), 10)
		if !limiter.Allow(c.Request.Context(), key) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
