package gto

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache keeps recently decoded property data across AccessProperty calls.
// One Cache may serve several Readers; entries of a session are dropped
// when it closes.
type Cache struct {
	lru *lru.Cache[cacheKey, *Data]
}

type cacheKey struct {
	reader *Reader
	gen    uint64
	handle Handle
}

// NewCache returns a cache holding up to size decoded properties.
func NewCache(size int) (*Cache, error) {
	c, err := lru.New[cacheKey, *Data](size)
	if err != nil {
		return nil, err
	}
	return &Cache{lru: c}, nil
}

// Len returns the number of cached properties.
func (c *Cache) Len() int {
	return c.lru.Len()
}

// Purge drops every entry.
func (c *Cache) Purge() {
	c.lru.Purge()
}

func (c *Cache) get(r *Reader, h Handle) (*Data, bool) {
	return c.lru.Get(cacheKey{reader: r, gen: r.gen, handle: h})
}

func (c *Cache) add(r *Reader, h Handle, d *Data) {
	c.lru.Add(cacheKey{reader: r, gen: r.gen, handle: h}, d)
}

func (c *Cache) evict(r *Reader) {
	for _, k := range c.lru.Keys() {
		if k.reader == r {
			c.lru.Remove(k)
		}
	}
}
