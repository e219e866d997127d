package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/ports/cache"
	"github.com/redis/go-redis/v9"
)

// Client обёртка над redis.Client, реализует cache.Cache
type Client struct {
	client *redis.Client
}

// NewClient создаёт новый Redis-клиент
func NewClient(client *redis.Client) cache.Cache {
	return &Client{
		client: client,
	}
}

// Get получает значение по ключу. Отсутствующий ключ даёт cache.ErrCacheMiss
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("%w: %s", cache.ErrCacheMiss, key)
	}
	if err != nil {
		return "", fmt.Errorf("redis get failed: %w", err)
	}
	return val, nil
}

// Set устанавливает значение с TTL
func (c *Client) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// SetNX устанавливает значение, только если ключа нет
func (c *Client) SetNX(ctx context.Context, key string, value string, ttl time.Duration) (bool, error) {
	ok, err := c.client.SetNX(ctx, key, value, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx failed: %w", err)
	}
	return ok, nil
}

// Exists проверяет существование ключа
func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	count, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists failed: %w", err)
	}
	return count > 0, nil
}

// Ping проверяет соединение, используется в readiness-пробе
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close закрывает подключение к кэшу
func (c *Client) Close() error {
	return c.client.Close()
}
