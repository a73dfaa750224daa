// Package redis stores rate-limit counters in Redis so several instances of
// the site share one quota per client.
package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "elsabor:ratelimit:"

type RateLimitRepo struct {
	client *goredis.Client
}

// Connect parses a redis:// URL and pings the server.
func Connect(ctx context.Context, url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func NewRateLimitRepo(client *goredis.Client) *RateLimitRepo {
	return &RateLimitRepo{client: client}
}

// hitScript increments the counter and gives it the window's TTL whenever
// the key has none, so a counter can never outlive its window.
var hitScript = goredis.NewScript(`
local n = redis.call('INCR', KEYS[1])
if redis.call('PTTL', KEYS[1]) < 0 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return n
`)

// Hit increments the counter and starts the window expiry in one step.
func (r *RateLimitRepo) Hit(ctx context.Context, key string, window time.Duration) (int, error) {
	count, err := hitScript.Run(ctx, r.client, []string{keyPrefix + key}, window.Milliseconds()).Int()
	if err != nil {
		return 0, fmt.Errorf("redis rate limit hit: %w", err)
	}
	return count, nil
}
