package identity

import (
	"context"
	gocache "github.com/patrickmn/go-cache"
	"time"
)

type verifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// CachedVerifier remembers recently verified tokens so the gate does not call
// the provider on every admin request. Rejections are never cached.
type CachedVerifier struct {
	verifier verifier
	cache    *gocache.Cache
}

func NewCachedVerifier(v verifier, expiry time.Duration) *CachedVerifier {
	if expiry <= 0 {
		expiry = 5 * time.Minute
	}
	return &CachedVerifier{verifier: v, cache: gocache.New(expiry, 2*expiry)}
}

func (c CachedVerifier) Verify(ctx context.Context, token string) (string, error) {
	if value, found := c.cache.Get(token); found {
		return value.(string), nil
	}

	subject, err := c.verifier.Verify(ctx, token)
	if err != nil {
		return "", err
	}

	c.cache.Set(token, subject, gocache.DefaultExpiration)
	return subject, nil
}
