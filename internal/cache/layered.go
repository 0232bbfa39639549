package cache

import (
	"errors"
	"time"
)

// LayeredCache reads through a fast front cache backed by a persistent one.
// Hits in the back layer are copied forward with the front's default TTL.
type LayeredCache struct {
	front Cache
	back  Cache
}

// NewLayeredCache stacks a go-cache memory layer over a disk cache in diskDir
func NewLayeredCache(memoryTTL time.Duration, diskDir string, diskTTL time.Duration) *LayeredCache {
	return NewLayered(NewMemoryCache(memoryTTL, 10*time.Minute), NewDiskCache(diskDir, diskTTL))
}

func NewLayered(front, back Cache) *LayeredCache {
	return &LayeredCache{front: front, back: back}
}

func (c *LayeredCache) Get(key string) ([]byte, bool) {
	if v, ok := c.front.Get(key); ok {
		return v, true
	}
	v, ok := c.back.Get(key)
	if ok {
		_ = c.front.Set(key, v, 0)
	}
	return v, ok
}

// Set writes both layers; a failing back layer is reported but the front keeps the value
func (c *LayeredCache) Set(key string, value []byte, ttl time.Duration) error {
	return errors.Join(c.front.Set(key, value, ttl), c.back.Set(key, value, ttl))
}

func (c *LayeredCache) Delete(key string) error {
	return errors.Join(c.front.Delete(key), c.back.Delete(key))
}

func (c *LayeredCache) Clear() error {
	return errors.Join(c.front.Clear(), c.back.Clear())
}
