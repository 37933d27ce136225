package redis

import (
	"context"
	"time"

	"fitcoach-ai-backend/internal/config"

	"github.com/go-redis/redis/v8"
)

// Client is the slice of redis this service needs: liveness checks and
// the counter operations behind the rate limiter.
type Client interface {
	Ping(ctx context.Context) error
	Incr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, expiration time.Duration) error
	Close() error
}

var _ Client = (*redClient)(nil)

type redClient struct {
	cli *redis.Client
}

// NewClient connects and verifies the connection before returning.
func NewClient(ctx context.Context, cfg *config.RedisConfig) (*redClient, error) {
	cli := redis.NewClient(&redis.Options{
		Addr:        cfg.URL,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := cli.Ping(pingCtx).Err(); err != nil {
		_ = cli.Close()
		return nil, err
	}
	return &redClient{cli: cli}, nil
}

func (c *redClient) Ping(ctx context.Context) error {
	return c.cli.Ping(ctx).Err()
}

func (c *redClient) Incr(ctx context.Context, key string) (int64, error) {
	return c.cli.Incr(ctx, key).Result()
}

func (c *redClient) Expire(ctx context.Context, key string, expiration time.Duration) error {
	return c.cli.Expire(ctx, key, expiration).Err()
}

func (c *redClient) Close() error { return c.cli.Close() }
