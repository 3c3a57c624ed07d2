package repositories

import (
	"errors"
	"fmt"

	"github.com/go-redis/redis/v7"
)

// RedisStore keeps session entries in redis under a key prefix
type RedisStore struct {
	client *redis.Client
	prefix string
}

var _ KeyValueStore = (*RedisStore)(nil)

// ConnectRedis opens a client and checks it with PING.
func ConnectRedis(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping().Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	return client, nil
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: prefix,
	}
}

func (r *RedisStore) key(key string) string {
	return r.prefix + key
}

func (r *RedisStore) Get(key string) (string, error) {
	value, err := r.client.Get(r.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, nil
}

func (r *RedisStore) Set(key, value string) error {
	if value == "" {
		return r.Delete(key)
	}
	if err := r.client.Set(r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// SetMany writes and deletes all entries in one MULTI/EXEC transaction.
func (r *RedisStore) SetMany(entries map[string]string) error {
	_, err := r.client.TxPipelined(func(pipe redis.Pipeliner) error {
		for key, value := range entries {
			if value == "" {
				pipe.Del(r.key(key))
				continue
			}
			pipe.Set(r.key(key), value, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set session entries: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = r.key(key)
	}

	if err := r.client.Del(prefixed...).Err(); err != nil {
		return fmt.Errorf("failed to delete session entries: %w", err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
