package lookstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"stylist/internal/domain"
)

const redisOpTimeout = 2 * time.Second

// RedisCache is a ResultCache backed by Redis, for deployments where several
// replicas should share the dedup window. Expiry is delegated to Redis TTLs.
type RedisCache struct {
	rdb       *redis.Client
	keyPrefix string
}

// NewRedisCache connects and pings the Redis instance at addr.
func NewRedisCache(addr, password string, db int) (*RedisCache, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, errors.New("redis addr is required")
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(password),
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &RedisCache{rdb: rdb, keyPrefix: "stylist:look:"}, nil
}

func (c *RedisCache) key(fingerprint string) string {
	return c.keyPrefix + fingerprint
}

func (c *RedisCache) Get(fingerprint string) (*domain.LookResult, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	raw, err := c.rdb.Get(ctx, c.key(fingerprint)).Result()
	if err != nil {
		return nil, false
	}
	var result domain.LookResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, false
	}
	return &result, true
}

func (c *RedisCache) Set(fingerprint string, result *domain.LookResult, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	_ = c.rdb.Set(ctx, c.key(fingerprint), raw, ttl).Err()
}

var _ ResultCache = (*RedisCache)(nil)
