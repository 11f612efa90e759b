package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/m-mizutani/goerr/v2"
)

const (
	keySetCacheTTL = 5 * time.Minute
)

type cachedKeySet struct {
	set       jwk.Set
	expiresAt time.Time
}

// keySetCache reuses fetched JWKS documents per URL until they expire
type keySetCache struct {
	cache sync.Map
	ttl   time.Duration
	now   func() time.Time
}

func newKeySetCache() *keySetCache {
	return &keySetCache{ttl: keySetCacheTTL, now: time.Now}
}

func (c *keySetCache) get(ctx context.Context, url string) (jwk.Set, error) {
	if val, ok := c.cache.Load(url); ok {
		cached := val.(*cachedKeySet)
		if c.now().Before(cached.expiresAt) {
			return cached.set, nil
		}
		c.cache.Delete(url)
	}

	set, err := jwk.Fetch(ctx, url)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch key set", goerr.V("url", url))
	}

	c.cache.Store(url, &cachedKeySet{
		set:       set,
		expiresAt: c.now().Add(c.ttl),
	})
	return set, nil
}
