package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	redis_v9 "github.com/redis/go-redis/v9"
)

type RedisRepo struct {
	client *redis_v9.Client
}

func NewRedisRepo(client *redis_v9.Client) *RedisRepo {
	return &RedisRepo{
		client: client,
	}
}

func (r *RedisRepo) SaveInt(ctx context.Context, key string, value int64, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("error saving int64 value to cache: %w", err)
	}
	return nil
}

// GetInt returns 0 for missing keys and on cache errors; a lost lock entry
// only means the lockout is not enforced for that window.
func (r *RedisRepo) GetInt(ctx context.Context, key string) int64 {
	value, err := r.client.Get(ctx, key).Int64()
	if err != nil {
		if err != redis_v9.Nil {
			log.Printf("error reading int64 value from cache: %s", err)
		}
		return 0
	}
	return value
}
