package redis

import (
	"context"
	"errors"
	"time"

	"github.com/DRSN-tech/marketplace/pkg/clients"
	"github.com/DRSN-tech/marketplace/pkg/e"
	"github.com/DRSN-tech/marketplace/pkg/logger"
	"github.com/jimlawless/whereami"
	goredis "github.com/redis/go-redis/v9"
)

// TokenDenylist хранит jti отозванных токенов. Ключ живёт ровно до истечения токена,
// после чего токен отклоняется уже по сроку действия.
type TokenDenylist struct {
	client *clients.RedisClient
	logger logger.Logger
	now    func() time.Time
}

func NewTokenDenylist(client *clients.RedisClient, logger logger.Logger) *TokenDenylist {
	return &TokenDenylist{
		client: client,
		logger: logger,
		now:    time.Now,
	}
}

// Revoke помечает токен отозванным до момента until. Уже истёкший токен не записывается.
func (r *TokenDenylist) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := revocationTTL(until, r.now())
	if ttl <= 0 {
		return nil
	}

	if err := r.client.Client.Set(ctx, r.tokenKey(tokenID), 1, ttl).Err(); err != nil {
		r.logger.Warnf("Redis SET failed: %v", e.Wrap(whereami.WhereAmI(), err))
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// IsRevoked сообщает, отозван ли токен. Ошибка Redis возвращается вызывающему:
// токен, отзыв которого нельзя проверить, не принимается.
func (r *TokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := r.client.Client.Get(ctx, r.tokenKey(tokenID)).Err()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, goredis.Nil):
		return false, nil
	default:
		r.logger.Warnf("Redis GET failed: %v", e.Wrap(whereami.WhereAmI(), err))
		return false, e.Wrap(whereami.WhereAmI(), err)
	}
}

// tokenKey возвращает Redis-ключ для отозванного токена
func (r *TokenDenylist) tokenKey(tokenID string) string {
	return r.client.Key("revoked", tokenID)
}

// revocationTTL округляет срок хранения вверх до секунды, чтобы ключ не исчез раньше токена.
func revocationTTL(until, now time.Time) time.Duration {
	ttl := until.Sub(now)
	if ttl <= 0 {
		return 0
	}
	return ttl.Truncate(time.Second) + time.Second
}
