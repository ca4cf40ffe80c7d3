package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStorage persists cart state as JSON under "cart:<key>" with a TTL,
// so abandoned carts age out on their own.
type RedisStorage struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStorage(rdb *redis.Client, ttl time.Duration) *RedisStorage {
	return &RedisStorage{rdb: rdb, ttl: ttl}
}

func redisKey(key string) string {
	return fmt.Sprintf("cart:%s", key)
}

func (r *RedisStorage) Load(ctx context.Context, key string) (*State, error) {
	data, err := r.rdb.Get(ctx, redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart %s: %w", key, err)
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode cart %s: %w", key, err)
	}
	return &state, nil
}

func (r *RedisStorage) Save(ctx context.Context, key string, state *State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, redisKey(key), data, r.ttl).Err()
}

func (r *RedisStorage) Delete(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, redisKey(key)).Err()
}
