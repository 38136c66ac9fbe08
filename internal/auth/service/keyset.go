// Package service implements token verification against a remote signing key set.
package service

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	authDomain "github.com/allisson/docgen/internal/auth/domain"
)

// keySetPath is the authority's published key set endpoint.
const keySetPath = "/protocol/openid-connect/certs"

// KeySetURL derives the key set endpoint from the configured authority domain.
func KeySetURL(authorityDomain string) string {
	return "https://" + authorityDomain + keySetPath
}

// KeySetClient fetches signing keys from the authority's published key set.
//
// Keys are cached for a bounded TTL so that a busy authorizer does not hit the
// authority on every verification. Invalidate clears the cache, forcing the
// next lookup to refetch.
type KeySetClient interface {
	// Key returns the public key matching kid.
	// Returns domain.ErrKeySetUnavailable when the key set cannot be fetched
	// and domain.ErrSigningKeyNotFound when the fetched set has no such kid.
	Key(ctx context.Context, kid string) (*rsa.PublicKey, error)

	// Invalidate drops all cached keys.
	Invalidate()
}

// httpKeySetClient implements KeySetClient over the authority's HTTPS endpoint.
type httpKeySetClient struct {
	endpoint   string
	ttl        time.Duration
	httpClient *http.Client
	logger     *slog.Logger

	mu        sync.Mutex
	keys      map[string]*rsa.PublicKey
	fetchedAt time.Time
	now       func() time.Time
}

// NewKeySetClient creates a key set client for the given endpoint with a
// bounded cache TTL.
func NewKeySetClient(endpoint string, ttl time.Duration, logger *slog.Logger) KeySetClient {
	return &httpKeySetClient{
		endpoint: endpoint,
		ttl:      ttl,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
		now:    time.Now,
	}
}

// Key returns the cached key for kid, refetching the whole set when the cache
// is stale or the kid is unknown.
func (c *httpKeySetClient) Key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.keys != nil && c.now().Sub(c.fetchedAt) < c.ttl {
		if key, ok := c.keys[kid]; ok {
			return key, nil
		}
	}

	// Stale cache or unknown kid: refetch the published set. A kid that is
	// still absent after a fresh fetch signals configuration/rotation skew,
	// not a transport problem.
	if err := c.refetch(ctx); err != nil {
		return nil, err
	}

	if key, ok := c.keys[kid]; ok {
		return key, nil
	}

	return nil, fmt.Errorf("%w: %s", authDomain.ErrSigningKeyNotFound, kid)
}

// Invalidate drops all cached keys, forcing the next lookup to refetch.
func (c *httpKeySetClient) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.keys = nil
	c.fetchedAt = time.Time{}
}

// refetch replaces the cache with a freshly fetched key set.
// Caller must hold c.mu.
func (c *httpKeySetClient) refetch(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", authDomain.ErrKeySetUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", authDomain.ErrKeySetUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d from %s", authDomain.ErrKeySetUnavailable, resp.StatusCode, c.endpoint)
	}

	var keySet authDomain.KeySet
	if err := json.NewDecoder(resp.Body).Decode(&keySet); err != nil {
		return fmt.Errorf("%w: %v", authDomain.ErrKeySetUnavailable, err)
	}

	keys := make(map[string]*rsa.PublicKey, len(keySet.Keys))
	for _, signingKey := range keySet.Keys {
		publicKey, err := signingKey.RSAPublicKey()
		if err != nil {
			// Skip unusable entries; the set may mix key types.
			c.logger.Warn("skipping unusable signing key",
				slog.String("kid", signingKey.Kid),
				slog.Any("error", err),
			)
			continue
		}
		keys[signingKey.Kid] = publicKey
	}

	c.keys = keys
	c.fetchedAt = c.now()

	c.logger.Debug("signing key set refreshed",
		slog.String("endpoint", c.endpoint),
		slog.Int("key_count", len(keys)),
	)

	return nil
}
