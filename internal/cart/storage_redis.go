package cart

import (
	"bytes"
	"context"
	"errors"
	"time"

	pkgredis "github.com/chainfeed/storefront-backend/pkg/redis"
)

// redisCommands is the slice of the redis client the snapshot store uses.
type redisCommands interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(session string) string
}

// RedisStorage keeps cart snapshots in redis under a namespaced per-session
// key with a rolling TTL, so abandoned carts age out on their own. A cleared
// cart deletes its key outright instead of idling out the TTL.
type RedisStorage struct {
	client redisCommands
	ttl    time.Duration
}

func NewRedisStorage(client redisCommands, ttl time.Duration) (*RedisStorage, error) {
	if client == nil {
		return nil, errors.New("redis client required")
	}
	return &RedisStorage{client: client, ttl: ttl}, nil
}

func (r *RedisStorage) Load(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := r.client.Get(ctx, r.client.CartKey(key))
	if err != nil {
		if errors.Is(err, pkgredis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return []byte(value), true, nil
}

func (r *RedisStorage) Save(ctx context.Context, key string, payload []byte) error {
	redisKey := r.client.CartKey(key)
	if emptySnapshot(payload) {
		return r.client.Del(ctx, redisKey)
	}
	return r.client.Set(ctx, redisKey, string(payload), r.ttl)
}

// emptySnapshot reports whether the payload encodes an empty line
// collection. A deleted key loads as the same empty cart, so nothing is
// lost by not storing it.
func emptySnapshot(payload []byte) bool {
	trimmed := bytes.TrimSpace(payload)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("[]"))
}
