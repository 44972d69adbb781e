package redis

import (
	"context"
	"lolbrowser/pkg/config"
	"time"

	"github.com/redis/go-redis/v9"
)

// Nil is returned by Get when the key doesn't exist.
const Nil = redis.Nil

// Type for the client.
type RedisClient struct {
	*redis.Client
}

// Create a client for the configured Redis.
func NewClient(cfg config.RedisConfiguration) *RedisClient {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Host + ":" + cfg.Port,
		Password:     cfg.Password,
		DB:           0,
		MaxRetries:   3,
		PoolSize:     10,
		MinIdleConns: 1,
		PoolTimeout:  30 * time.Second,
	})

	return &RedisClient{
		Client: client,
	}
}

// Close the client connection.
func (r *RedisClient) Close() error {
	return r.Client.Close()
}

// Wrapper to return the Result directly.
func (r *RedisClient) Get(ctx context.Context, key string) (string, error) {
	return r.Client.Get(ctx, key).Result()
}

// Wrapper to already return the .Err()
func (r *RedisClient) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return r.Client.Set(ctx, key, value, ttl).Err()
}

// Wrapper to check if the server answers.
func (r *RedisClient) Ping(ctx context.Context) error {
	return r.Client.Ping(ctx).Err()
}
