// README: Redis client initialization for the chat rate limiter.
package infra

import "github.com/redis/go-redis/v9"

// NewRedis returns nil when addr is empty; the rate limiter then falls back
// to its in-process implementation.
func NewRedis(addr string) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: addr})
}
