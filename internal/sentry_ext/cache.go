package sentry_ext

import (
	"crypto/md5"
	"encoding/hex"
	"time"

	lru "github.com/hashicorp/golang-lru"
)

const (
	recentErrorDuration = 5 * time.Minute
	defaultCacheSize    = 64
)

// cache remembers when each distinct message was last sent.
type cache struct {
	*lru.Cache
	now func() time.Time
}

func newCache(size int) (*cache, error) {
	if size <= 0 {
		size = defaultCacheSize
	}
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &cache{Cache: c, now: time.Now}, nil
}

// shouldCapture returns false if the same message was captured within
// recentErrorDuration, and otherwise records it as captured now.
func (c *cache) shouldCapture(msg string) bool {
	h := md5.Sum([]byte(msg))
	key := hex.EncodeToString(h[:])

	now := c.now()
	if lastSent, ok := c.Get(key); ok {
		if now.Sub(lastSent.(time.Time)) < recentErrorDuration {
			return false
		}
	}

	c.Add(key, now)
	return true
}
