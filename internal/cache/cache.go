// Package cache holds short-lived copies of client-paged collections per
// bearer token, so paging through payments or employees does not refetch
// the whole collection on every click.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// DefaultTTL is used when New is given a non-positive ttl.
const DefaultTTL = 60 * time.Second

// Cache is a per-token collection cache.
type Cache struct {
	c   *gocache.Cache
	ttl time.Duration
}

// New creates a cache whose entries live for ttl.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{c: gocache.New(ttl, 2*ttl), ttl: ttl}
}

// TTL returns the entry lifetime.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// key scopes an endpoint key to a token without keeping the token itself.
func key(token, name string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:8]) + ":" + name
}

// Get returns a cached value.
func (c *Cache) Get(token, name string) (any, bool) {
	return c.c.Get(key(token, name))
}

// Set stores a value with the default ttl.
func (c *Cache) Set(token, name string, v any) {
	c.c.Set(key(token, name), v, gocache.DefaultExpiration)
}

// Invalidate drops every entry of token whose name starts with prefix.
func (c *Cache) Invalidate(token, prefix string) {
	p := key(token, prefix)
	for k := range c.c.Items() {
		if strings.HasPrefix(k, p) {
			c.c.Delete(k)
		}
	}
}

// Flush drops everything.
func (c *Cache) Flush() {
	c.c.Flush()
}

// Len returns the number of live entries.
func (c *Cache) Len() int {
	return c.c.ItemCount()
}

// GetOrLoad returns the cached value for name or calls load and caches
// its result. Errors are not cached.
func GetOrLoad[T any](c *Cache, token, name string, load func() (T, error)) (T, error) {
	if c != nil {
		if v, ok := c.Get(token, name); ok {
			if t, ok := v.(T); ok {
				return t, nil
			}
		}
	}
	v, err := load()
	if err != nil {
		var zero T
		return zero, err
	}
	if c != nil {
		c.Set(token, name, v)
	}
	return v, nil
}
