// File: internal/services/translate/cached.go
package translate

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/patrickmn/go-cache"
)

// CachedProvider remembers translations of identical answers for a while.
// Failures are not cached.
type CachedProvider struct {
	next   Provider
	cache  *cache.Cache
	logger Logger
}

func NewCachedProvider(next Provider, ttl time.Duration, logger Logger) *CachedProvider {
	return &CachedProvider{
		next:   next,
		cache:  cache.New(ttl, 2*ttl),
		logger: logger,
	}
}

func (c *CachedProvider) Translate(ctx context.Context, text string, target Language) (string, error) {
	if target.IsSource() {
		return text, nil
	}

	key := cacheKey(text, target)
	if v, ok := c.cache.Get(key); ok {
		c.logger.Debug("Translation cache hit", "target", target.Code)
		return v.(string), nil
	}

	out, err := c.next.Translate(ctx, text, target)
	if err != nil {
		return "", err
	}
	c.cache.Set(key, out, cache.DefaultExpiration)
	return out, nil
}

func cacheKey(text string, target Language) string {
	sum := sha256.Sum256([]byte(target.Code + "\x00" + text))
	return hex.EncodeToString(sum[:])
}
