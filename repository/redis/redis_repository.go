package redis

import (
	"context"
	"errors"
	"time"

	redisclient "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/cmd/redis"
	goredis "github.com/redis/go-redis/v9"
)

// Repository defines methods for interacting with Redis key-values
type Repository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error
	AcquireLock(ctx context.Context, key, token string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key, token string) error
}

type redis struct {
	// *redis.Client
}

// NewRepository returns a Redis Repository implementation
func NewRepository() Repository {
	return &redis{}
}

// releaseScript deletes the lock only if it still holds our token.
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// Get retrieves a value by key from Redis; found is false on a miss
func (r *redis) Get(ctx context.Context, key string) (string, bool, error) {
	client := redisclient.Get()
	if client == nil {
		return "", false, nil
	}
	val, err := client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return val, true, nil
}

// SetWithTTL stores a key/value pair with time-to-live
func (r *redis) SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	return client.Set(ctx, key, value, ttl).Err()
}

// AcquireLock takes key with SET NX. Without a configured client every
// caller gets the lock, which is right for a single process.
func (r *redis) AcquireLock(ctx context.Context, key, token string, ttl time.Duration) (bool, error) {
	client := redisclient.Get()
	if client == nil {
		return true, nil
	}
	return client.SetNX(ctx, key, token, ttl).Result()
}

// ReleaseLock drops key if token still owns it
func (r *redis) ReleaseLock(ctx context.Context, key, token string) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	return releaseScript.Run(ctx, client, []string{key}, token).Err()
}
