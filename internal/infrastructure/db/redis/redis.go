package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dialCheckTimeout = 5 * time.Second

// Config locates the Redis instance holding the login failure counters.
type Config struct {
	Addr     string
	DB       int
	Password string
	// Timeout bounds the startup ping. Zero means dialCheckTimeout.
	Timeout time.Duration
}

// Connect opens the client used by LoginThrottle. It fails fast when the
// server does not answer a ping, so a misconfigured REDIS_ADDR stops startup
// instead of silently disabling throttling.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		DB:       cfg.DB,
		Password: cfg.Password,
	})

	wait := cfg.Timeout
	if wait <= 0 {
		wait = dialCheckTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// Pinger reports throttle store health on /health/ready.
func Pinger(client *redis.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		return nil
	}
}
