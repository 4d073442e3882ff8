package idam

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	platformredis "github.com/hmcts/sscs-dwp/internal/platform/redis"
)

// Cache stores minted tokens keyed by purpose.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// defaultTokenTTL applies when a token's expiry cannot be read from its
// claims.
const defaultTokenTTL = 10 * time.Minute

// expirySafetyMargin keeps cached tokens from being handed out moments
// before they expire mid-call.
const expirySafetyMargin = 2 * time.Minute

// cacheTTL derives a cache lifetime from the token's exp claim. Both user
// and service tokens are JWTs; the claim is read without signature
// verification since this process is not the token's audience.
func cacheTTL(token string) time.Duration {
	raw := strings.TrimPrefix(token, "Bearer ")
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return defaultTokenTTL
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return defaultTokenTTL
	}
	ttl := time.Until(exp.Time) - expirySafetyMargin
	if ttl <= 0 {
		return defaultTokenTTL
	}
	return ttl
}

// RedisCache is the production Cache backed by the platform redis client.
type RedisCache struct {
	client *platformredis.Client
}

// NewRedisCache wraps the platform redis client. Returns nil for a nil
// client so callers can wire "no cache" without branching.
func NewRedisCache(client *platformredis.Client) *RedisCache {
	if client == nil {
		return nil
	}
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	return c.client.Get(ctx, key).Result()
}

func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}
