// Package auth verifies bearer tokens issued by the identity provider and gates routes by role.
package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/abgdnv/gocatalog/pkg/config"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

// authorizedPartyClaim names the OIDC client a token was issued to.
const authorizedPartyClaim = "azp"

// ErrInvalidToken wraps every rejection of a bearer token.
var ErrInvalidToken = errors.New("invalid token")

type Verifier interface {
	Verify(ctx context.Context, tokenString string) (jwt.Token, error)
}

// keySetCache holds the identity provider's signing keys and refetches them at most once per interval.
// A failed refetch keeps the previous set in service.
type keySetCache struct {
	url      string
	interval time.Duration

	mu        sync.RWMutex
	set       jwk.Set
	fetchedAt time.Time
}

func (c *keySetCache) fresh() (jwk.Set, bool) {
	if c.set != nil && time.Since(c.fetchedAt) < c.interval {
		return c.set, true
	}
	return nil, false
}

func (c *keySetCache) get(ctx context.Context) (jwk.Set, error) {
	c.mu.RLock()
	set, ok := c.fresh()
	c.mu.RUnlock()
	if ok {
		return set, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if set, ok := c.fresh(); ok {
		return set, nil
	}
	fetched, err := jwk.Fetch(ctx, c.url)
	if err != nil {
		if c.set != nil {
			return c.set, nil
		}
		return nil, fmt.Errorf("failed to fetch JWKS from %s: %w", c.url, err)
	}
	c.set = fetched
	c.fetchedAt = time.Now()
	return fetched, nil
}

// JWTVerifier accepts tokens signed by a key of the JWKS, unexpired within the configured clock skew,
// issued by the configured issuer to the catalog client, and naming a subject.
type JWTVerifier struct {
	keys   *keySetCache
	checks []jwt.ParseOption
}

// NewJWTVerifier creates a JWTVerifier and fetches the key set once, so a misconfigured endpoint fails at startup.
func NewJWTVerifier(ctx context.Context, cfg config.IdP) (*JWTVerifier, error) {
	v := &JWTVerifier{
		keys: &keySetCache{url: cfg.JwksURL, interval: cfg.MinInterval},
		checks: []jwt.ParseOption{
			jwt.WithValidate(true),
			jwt.WithAcceptableSkew(cfg.ClockSkew),
			jwt.WithIssuer(cfg.Issuer),
			jwt.WithClaimValue(authorizedPartyClaim, cfg.ClientID),
		},
	}
	if _, err := v.keys.get(ctx); err != nil {
		return nil, fmt.Errorf("initial JWKS fetch failed: %w", err)
	}
	return v, nil
}

func (v *JWTVerifier) Verify(ctx context.Context, tokenString string) (jwt.Token, error) {
	set, err := v.keys.get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get keyset for verification: %w", err)
	}

	opts := append([]jwt.ParseOption{jwt.WithKeySet(set)}, v.checks...)
	token, err := jwt.Parse([]byte(tokenString), opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if subject, ok := token.Subject(); !ok || subject == "" {
		return nil, fmt.Errorf("%w: no subject", ErrInvalidToken)
	}
	return token, nil
}
