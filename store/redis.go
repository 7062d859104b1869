package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces flow records so the limiter can share a Redis
// database with other keyspaces.
const keyPrefix = "flowlimit:"

type RedisStore struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisStore(addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	// Test connection
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{
		client: client,
		ctx:    ctx,
	}, nil
}

func (r *RedisStore) Get(key string) (State, error) {
	val, err := r.client.Get(r.ctx, keyPrefix+key).Result()
	if err == redis.Nil {
		return State{}, ErrNotFound
	}
	if err != nil {
		return State{}, err
	}

	var st State
	if err := json.Unmarshal([]byte(val), &st); err != nil {
		return State{}, fmt.Errorf("corrupt flow state for %s: %w", key, err)
	}
	return st, nil
}

// Set stores a state record in Redis. Records do not expire: the limit is
// configuration and must survive epoch rollover.
func (r *RedisStore) Set(key string, st State) error {
	jsonData, err := json.Marshal(st)
	if err != nil {
		return err
	}

	return r.client.Set(r.ctx, keyPrefix+key, string(jsonData), 0).Err()
}

// Delete removes a key from Redis
func (r *RedisStore) Delete(key string) error {
	deleted, err := r.client.Del(r.ctx, keyPrefix+key).Result()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}

// Exists checks if a key exists in Redis
func (r *RedisStore) Exists(key string) bool {
	exists, err := r.client.Exists(r.ctx, keyPrefix+key).Result()
	if err != nil {
		return false
	}
	return exists > 0
}

// Close closes the Redis connection
func (r *RedisStore) Close() error {
	return r.client.Close()
}
