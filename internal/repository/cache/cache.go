package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a thin namespaced wrapper over a redis client
type Cache struct {
	client redis.UniversalClient
}

// NewCache connects to a single redis node
func NewCache(addr, password string, db int) *Cache {
	return &Cache{client: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

// NewCacheFromClient wraps an existing client
func NewCacheFromClient(client redis.UniversalClient) *Cache {
	return &Cache{client: client}
}

// Ping checks connectivity
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the underlying client
func (c *Cache) Close() error {
	return c.client.Close()
}

func entryKey(namespace, key string) string {
	return namespace + ":" + key
}

func versionKey(namespace, key string) string {
	return namespace + ":" + key + ":version"
}

func (c *Cache) Get(ctx context.Context, namespace, key string) (string, error) {
	return c.client.Get(ctx, entryKey(namespace, key)).Result()
}

// Version returns the invalidation counter for a key, zero when unset
func (c *Cache) Version(ctx context.Context, namespace, key string) (int64, error) {
	v, err := c.client.Get(ctx, versionKey(namespace, key)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// setIfVersion stores ARGV[2] under KEYS[1] only while KEYS[2] still holds ARGV[1]
var setIfVersion = redis.NewScript(`
local current = redis.call('GET', KEYS[2]) or '0'
if current ~= ARGV[1] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[1], ARGV[2])
end
return 1
`)

// SetIfVersion fills a key unless it was invalidated after version was read.
// It reports whether the value was stored.
func (c *Cache) SetIfVersion(ctx context.Context, namespace, key string, version int64, value []byte, ttl time.Duration) (bool, error) {
	keys := []string{entryKey(namespace, key), versionKey(namespace, key)}
	stored, err := setIfVersion.Run(ctx, c.client, keys, strconv.FormatInt(version, 10), value, ttl.Milliseconds()).Int()
	if err != nil {
		return false, err
	}
	return stored == 1, nil
}

// Invalidate bumps the key's version and drops the cached value
func (c *Cache) Invalidate(ctx context.Context, namespace, key string) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, versionKey(namespace, key))
		pipe.Del(ctx, entryKey(namespace, key))
		return nil
	})
	return err
}
