package hospital

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache implements ListCache over a Redis client. Errors degrade to a
// cache miss so a flaky Redis never breaks the lookup.
type RedisCache struct {
	Client *redis.Client
}

// OpenRedis returns nil when no address is configured, which disables the
// cache layer entirely.
func OpenRedis(addr string) *RedisCache {
	if addr == "" {
		return nil
	}
	return &RedisCache{Client: redis.NewClient(&redis.Options{Addr: addr})}
}

func (rc *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := rc.Client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

func (rc *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	_ = rc.Client.Set(ctx, key, value, ttl).Err()
}
