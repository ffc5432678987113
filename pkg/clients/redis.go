package clients

import (
	"context"
	"strings"

	"github.com/DRSN-tech/marketplace/internal/cfg"
	"github.com/DRSN-tech/marketplace/pkg/e"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

const keySeparator = ":"

// RedisClient — клиент Redis с общим для сервиса пространством ключей.
type RedisClient struct {
	Client *r.Client
	prefix string
}

// NewRedisClient создаёт клиент без подключения; соединение открывается при первой команде.
func NewRedisClient(cfg *cfg.RedisCfg) *RedisClient {
	client := r.NewClient(&r.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	})

	return &RedisClient{
		Client: client,
		prefix: strings.Trim(cfg.KeyPrefix, keySeparator),
	}
}

// Key собирает ключ из частей через ":" и добавляет префикс сервиса, если он задан.
func (c *RedisClient) Key(parts ...string) string {
	if c.prefix == "" {
		return strings.Join(parts, keySeparator)
	}
	return c.prefix + keySeparator + strings.Join(parts, keySeparator)
}

func (c *RedisClient) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (c *RedisClient) Close() error {
	if err := c.Client.Close(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
