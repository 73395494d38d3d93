package xredis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type Client interface {
	Exist(ctx context.Context, key string) (bool, error)
	Del(ctx context.Context, key ...string) error

	// Set
	SAdd(ctx context.Context, key string, members ...string) error
	SRem(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
	SIsMember(ctx context.Context, key, member string) (bool, error)
	SCard(ctx context.Context, key string) (uint64, error)

	// Single object
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
}

type client struct {
	redisClient *redis.Client
}

func NewClient(ctx context.Context, addr string) (*client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:            addr,
		MaxRetries:      5,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    5 * time.Second,
		PoolFIFO:        false,
		PoolSize:        5,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &client{redisClient: redisClient}, nil
}

func (c *client) Exist(ctx context.Context, key string) (bool, error) {
	n, err := c.redisClient.Exists(ctx, key).Uint64()
	if err != nil {
		return false, err
	}

	return n == 1, nil
}

func (c *client) Del(ctx context.Context, key ...string) error {
	err := c.redisClient.Del(ctx, key...).Err()
	if err == nil || err == redis.Nil {
		return nil
	}

	return err
}

func (c *client) SAdd(ctx context.Context, key string, members ...string) error {
	values := make([]any, 0, len(members))
	for _, member := range members {
		values = append(values, member)
	}

	return c.redisClient.SAdd(ctx, key, values...).Err()
}

func (c *client) SRem(ctx context.Context, key string, members ...string) error {
	values := make([]any, 0, len(members))
	for _, member := range members {
		values = append(values, member)
	}

	err := c.redisClient.SRem(ctx, key, values...).Err()
	if err == nil || err == redis.Nil {
		return nil
	}

	return err
}

func (c *client) SMembers(ctx context.Context, key string) ([]string, error) {
	return c.redisClient.SMembers(ctx, key).Result()
}

func (c *client) SIsMember(ctx context.Context, key, member string) (bool, error) {
	return c.redisClient.SIsMember(ctx, key, member).Result()
}

func (c *client) SCard(ctx context.Context, key string) (uint64, error) {
	result, err := c.redisClient.SCard(ctx, key).Result()
	if err != nil {
		return 0, err
	}

	return uint64(result), nil
}

func (c *client) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.redisClient.Set(ctx, key, value, ttl).Err()
}

func (c *client) Get(ctx context.Context, key string) (string, error) {
	result, err := c.redisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}

	return result, err
}
