// Package idam acquires the tokens every case-management and print-dispatch
// call must carry: an OAuth2 user token for the system-update user and a
// service-to-service authorization token. Tokens are expensive to mint, so
// they are cached until shortly before expiry.
package idam

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	dErrors "github.com/hmcts/sscs-dwp/pkg/domain-errors"
)

// Tokens is the pair of credentials attached to outbound platform calls.
type Tokens struct {
	UserToken    string
	ServiceToken string
	UserID       string
}

// Provider hands out tokens for outbound calls.
type Provider interface {
	Tokens(ctx context.Context) (Tokens, error)
	ServiceToken(ctx context.Context) (string, error)
}

// APIClient acquires an OAuth2 user token from the identity service.
type APIClient interface {
	UserToken(ctx context.Context) (string, error)
}

// S2SClient leases a service-to-service token.
type S2SClient interface {
	Lease(ctx context.Context) (string, error)
}

// Service is the caching token provider. A nil cache disables caching and
// every call hits the identity service.
type Service struct {
	api    APIClient
	s2s    S2SClient
	cache  Cache
	logger *slog.Logger
	userID string
}

// Option configures optional Service dependencies.
type Option func(s *Service)

// WithCache installs a token cache.
func WithCache(cache Cache) Option {
	return func(s *Service) { s.cache = cache }
}

// WithLogger installs a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// NewService constructs the token provider.
func NewService(api APIClient, s2s S2SClient, userID string, opts ...Option) *Service {
	s := &Service{api: api, s2s: s2s, userID: userID, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

const (
	cacheKeyUser    = "idam:user-token"
	cacheKeyService = "idam:service-token"
)

// Tokens returns the full credential pair, consulting the cache first.
func (s *Service) Tokens(ctx context.Context) (Tokens, error) {
	userToken, err := s.cached(ctx, cacheKeyUser, s.api.UserToken)
	if err != nil {
		return Tokens{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to acquire user token")
	}
	serviceToken, err := s.ServiceToken(ctx)
	if err != nil {
		return Tokens{}, err
	}
	return Tokens{UserToken: userToken, ServiceToken: serviceToken, UserID: s.userID}, nil
}

// ServiceToken returns the service-to-service token, consulting the cache
// first.
func (s *Service) ServiceToken(ctx context.Context) (string, error) {
	token, err := s.cached(ctx, cacheKeyService, s.s2s.Lease)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to lease service token")
	}
	return token, nil
}

func (s *Service) cached(ctx context.Context, key string, mint func(context.Context) (string, error)) (string, error) {
	if s.cache != nil {
		if token, err := s.cache.Get(ctx, key); err == nil && token != "" {
			return token, nil
		}
	}
	token, err := mint(ctx)
	if err != nil {
		return "", err
	}
	if s.cache != nil {
		ttl := cacheTTL(token)
		if err := s.cache.Set(ctx, key, token, ttl); err != nil {
			// Cache failures must not block issuing letters.
			s.logger.Warn("token cache write failed", "key", key, "error", err)
		}
	}
	return token, nil
}

// httpAPIClient implements APIClient against the identity service's OAuth2
// resource-owner grant.
type httpAPIClient struct {
	baseURL      string
	clientID     string
	clientSecret string
	username     string
	password     string
	client       *http.Client
}

// NewAPIClient builds the HTTP identity client.
func NewAPIClient(baseURL, clientID, clientSecret, username, password string) APIClient {
	return &httpAPIClient{
		baseURL:      strings.TrimRight(baseURL, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
		username:     username,
		password:     password,
		client:       &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *httpAPIClient) UserToken(ctx context.Context) (string, error) {
	form := url.Values{
		"grant_type":    {"password"},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
		"username":      {c.username},
		"password":      {c.password},
		"scope":         {"openid profile roles"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/o/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("identity service returned %d", resp.StatusCode)
	}

	var body struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	return "Bearer " + body.AccessToken, nil
}

// httpS2SClient implements S2SClient against the service auth provider.
type httpS2SClient struct {
	baseURL      string
	microservice string
	client       *http.Client
}

// NewS2SClient builds the HTTP service-auth client.
func NewS2SClient(baseURL, microservice string) S2SClient {
	return &httpS2SClient{
		baseURL:      strings.TrimRight(baseURL, "/"),
		microservice: microservice,
		client:       &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *httpS2SClient) Lease(ctx context.Context) (string, error) {
	payload, err := json.Marshal(map[string]string{"microservice": c.microservice})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/lease", strings.NewReader(string(payload)))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("service auth provider returned %d", resp.StatusCode)
	}
	token, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return "Bearer " + strings.TrimSpace(string(token)), nil
}
