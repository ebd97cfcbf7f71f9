package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// UserCache implements usecase.UserNameCache using Redis strings.
type UserCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewUserCache creates a new UserCache. Entries expire after ttl.
func NewUserCache(client *redis.Client, ttl time.Duration) *UserCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	return &UserCache{
		client: client,
		prefix: "gosplit:user:name:",
		ttl:    ttl,
	}
}

// GetNames returns the cached names for ids. Missing ids are absent from the map.
func (c *UserCache) GetNames(ctx context.Context, ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = c.prefix + id
	}

	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	for i, v := range values {
		if s, ok := v.(string); ok {
			names[ids[i]] = s
		}
	}

	return names, nil
}

// SetNames caches names in one pipeline.
func (c *UserCache) SetNames(ctx context.Context, names map[string]string) error {
	if len(names) == 0 {
		return nil
	}

	_, err := c.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for id, name := range names {
			pipe.Set(ctx, c.prefix+id, name, c.ttl)
		}
		return nil
	})

	return err
}

// Invalidate drops cached names for ids.
func (c *UserCache) Invalidate(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = c.prefix + id
	}

	return c.client.Del(ctx, keys...).Err()
}
