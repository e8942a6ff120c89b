package memory

import (
	"time"

	"notes-api/internal/dto"

	"github.com/patrickmn/go-cache"
)

// TokenCache remembers resolved bearer tokens, keyed by token hash, so hot
// tokens skip the database. Revocation must call Delete.
type TokenCache struct {
	cache *cache.Cache
}

func NewTokenCache(ttl time.Duration) *TokenCache {
	return &TokenCache{
		cache: cache.New(ttl, 2*ttl),
	}
}

func (c *TokenCache) Save(session *dto.AuthSession) {
	c.cache.Set(session.TokenHash, *session, cache.DefaultExpiration)
}

// Get returns a copy so callers cannot mutate the cached session.
func (c *TokenCache) Get(tokenHash string) (*dto.AuthSession, bool) {
	if x, found := c.cache.Get(tokenHash); found {
		session := x.(dto.AuthSession)
		return &session, true
	}
	return nil, false
}

func (c *TokenCache) Delete(tokenHash string) {
	c.cache.Delete(tokenHash)
}
