package idam

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"
)

type fakeAPI struct {
	token string
	err   error
	calls int
}

func (f *fakeAPI) UserToken(ctx context.Context) (string, error) {
	f.calls++
	return f.token, f.err
}

type fakeS2S struct {
	token string
	err   error
	calls int
}

func (f *fakeS2S) Lease(ctx context.Context) (string, error) {
	f.calls++
	return f.token, f.err
}

type memCache struct {
	values map[string]string
	ttls   map[string]time.Duration
	getErr error
	setErr error
}

func newMemCache() *memCache {
	return &memCache{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (c *memCache) Get(ctx context.Context, key string) (string, error) {
	if c.getErr != nil {
		return "", c.getErr
	}
	return c.values[key], nil
}

func (c *memCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.values[key] = value
	c.ttls[key] = ttl
	return nil
}

type IdamServiceSuite struct {
	suite.Suite
	ctx   context.Context
	api   *fakeAPI
	s2s   *fakeS2S
	cache *memCache
}

func TestIdamServiceSuite(t *testing.T) {
	suite.Run(t, new(IdamServiceSuite))
}

func (s *IdamServiceSuite) SetupSubTest() {
	s.SetupTest()
}

func (s *IdamServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.api = &fakeAPI{token: "Bearer user-token"}
	s.s2s = &fakeS2S{token: "service-token"}
	s.cache = newMemCache()
}

func (s *IdamServiceSuite) newService() *Service {
	return NewService(s.api, s.s2s, "user-1", WithCache(s.cache))
}

func (s *IdamServiceSuite) TestTokens() {
	s.Run("mints both tokens and caches them", func() {
		tokens, err := s.newService().Tokens(s.ctx)

		s.Require().NoError(err)
		s.Equal("Bearer user-token", tokens.UserToken)
		s.Equal("service-token", tokens.ServiceToken)
		s.Equal("user-1", tokens.UserID)
		s.Equal("Bearer user-token", s.cache.values[cacheKeyUser])
		s.Equal("service-token", s.cache.values[cacheKeyService])
	})

	s.Run("cache hits skip minting", func() {
		svc := s.newService()
		_, err := svc.Tokens(s.ctx)
		s.Require().NoError(err)

		_, err = svc.Tokens(s.ctx)
		s.Require().NoError(err)
		s.Equal(1, s.api.calls)
		s.Equal(1, s.s2s.calls)
	})

	s.Run("cache write failures do not block token issue", func() {
		s.cache.setErr = errors.New("redis down")

		tokens, err := s.newService().Tokens(s.ctx)

		s.Require().NoError(err)
		s.Equal("Bearer user-token", tokens.UserToken)
	})

	s.Run("cache read failures fall back to minting", func() {
		s.cache.getErr = errors.New("redis down")

		_, err := s.newService().Tokens(s.ctx)

		s.Require().NoError(err)
		s.Equal(1, s.api.calls)
	})

	s.Run("minting failure surfaces", func() {
		s.api.err = errors.New("idam down")

		_, err := s.newService().Tokens(s.ctx)
		s.Require().Error(err)
	})

	s.Run("no cache still works", func() {
		svc := NewService(s.api, s.s2s, "user-1")

		_, err := svc.Tokens(s.ctx)
		s.Require().NoError(err)
		_, err = svc.Tokens(s.ctx)
		s.Require().NoError(err)
		s.Equal(2, s.api.calls)
	})
}

func (s *IdamServiceSuite) TestCacheTTL() {
	s.Run("derives ttl from the exp claim with a safety margin", func() {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		}).SignedString([]byte("test-secret"))
		s.Require().NoError(err)

		ttl := cacheTTL(token)
		s.InDelta((58 * time.Minute).Seconds(), ttl.Seconds(), 5)
	})

	s.Run("strips the bearer prefix first", func() {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		}).SignedString([]byte("test-secret"))
		s.Require().NoError(err)

		ttl := cacheTTL("Bearer " + token)
		s.InDelta((58 * time.Minute).Seconds(), ttl.Seconds(), 5)
	})

	s.Run("falls back to the default for opaque tokens", func() {
		s.Equal(defaultTokenTTL, cacheTTL("not-a-jwt"))
	})

	s.Run("falls back to the default for nearly expired tokens", func() {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"exp": time.Now().Add(time.Minute).Unix(),
		}).SignedString([]byte("test-secret"))
		s.Require().NoError(err)

		s.Equal(defaultTokenTTL, cacheTTL(token))
	})

	s.Run("caches the service token with its derived ttl", func() {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"exp": time.Now().Add(4 * time.Hour).Unix(),
		}).SignedString([]byte("test-secret"))
		s.Require().NoError(err)
		s.s2s.token = token

		_, err = s.newService().Tokens(s.ctx)
		s.Require().NoError(err)
		s.InDelta((238 * time.Minute).Seconds(), s.cache.ttls[cacheKeyService].Seconds(), 5)
	})
}
