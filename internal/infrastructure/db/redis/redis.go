// Package redis holds the Redis-backed supporting stores of the shipment
// pipeline: the tracking-scan dedup keys and the serviceability cache.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const connectTimeout = 5 * time.Second

// Config carries the connection settings for the pipeline's Redis instance.
type Config struct {
	Addr     string
	Password string
	DB       int
	// Timeout bounds the startup ping; connectTimeout applies when zero.
	Timeout time.Duration
}

// Connect opens a client against the configured instance and verifies it
// with a ping, so a dead Redis fails the boot instead of the first webhook.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = connectTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis %s: %w", cfg.Addr, err)
	}

	return client, nil
}
