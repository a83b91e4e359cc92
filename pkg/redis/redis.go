package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/mindjournal/mindjournal-backend/config"
	"github.com/mindjournal/mindjournal-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

var client *redis.Client

// Init opens the shared Redis connection used by the token and OTP stores.
func Init(cfg *config.RedisConfig) error {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"addr": cfg.Addr(),
		"db":   cfg.DB,
	})

	c := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := c.Ping(ctx).Err(); err != nil {
		// Release the pool; the client is never published
		_ = c.Close()
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"addr": cfg.Addr(),
		})
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	client = c
	logger.Info("Redis connection established successfully")
	return nil
}

// GetClient returns the Redis client instance, or nil before Init.
func GetClient() *redis.Client {
	return client
}

// Ping reports whether the connection is usable.
func Ping(ctx context.Context) error {
	if client == nil {
		return fmt.Errorf("redis not initialized")
	}
	return client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func Close() error {
	if client == nil {
		return nil
	}
	logger.Info("Closing Redis connection")
	err := client.Close()
	// Later Ping calls report "not initialized" instead of a closed-pool error
	client = nil
	return err
}
