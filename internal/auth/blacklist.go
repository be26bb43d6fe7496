package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Blacklist records access tokens revoked before their expiry.
type Blacklist interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	Revoked(ctx context.Context, jti string) (bool, error)
}

// RedisBlacklist keeps one key per revoked token id, expiring with the token.
type RedisBlacklist struct {
	client *redis.Client
	prefix string
}

// NewRedisBlacklist builds a blacklist on the given client.
func NewRedisBlacklist(client *redis.Client) *RedisBlacklist {
	return &RedisBlacklist{client: client, prefix: "sangha:revoked:"}
}

// Revoke blacklists jti until the token would have expired anyway.
func (b *RedisBlacklist) Revoke(ctx context.Context, jti string, until time.Time) error {
	ttl := time.Until(until)
	if jti == "" || ttl <= 0 {
		return nil
	}
	return b.client.Set(ctx, b.prefix+jti, 1, ttl).Err()
}

// Revoked reports whether jti was blacklisted.
func (b *RedisBlacklist) Revoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	n, err := b.client.Exists(ctx, b.prefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
