// Package lookupcache is an LRU-backed zonestore.LookupCache.
package lookupcache

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/haukened/rr-authdns/internal/dns/domain"
	"github.com/haukened/rr-authdns/internal/dns/repos/zonestore"
)

// lookupCache tracks hits, misses and evictions alongside the LRU.
type lookupCache struct {
	lru       *lru.Cache[domain.Name, zonestore.Lookup]
	hits      uint64
	misses    uint64
	evictions uint64
}

// disabledCache always misses and stores nothing.
type disabledCache struct{}

// New creates a cache holding up to size lookups. If size <= 0 a disabled
// cache is returned.
func New(size int) (zonestore.LookupCache, error) {
	if size <= 0 {
		return &disabledCache{}, nil
	}

	var c lookupCache
	// NewWithEvict also reports Purge-induced evictions.
	cache, err := lru.NewWithEvict(size, func(_ domain.Name, _ zonestore.Lookup) {
		atomic.AddUint64(&c.evictions, 1)
	})
	if err != nil {
		return nil, err
	}
	c.lru = cache
	return &c, nil
}

func (c *lookupCache) Get(name domain.Name) (zonestore.Lookup, bool) {
	if val, ok := c.lru.Get(name); ok {
		atomic.AddUint64(&c.hits, 1)
		return val, true
	}
	atomic.AddUint64(&c.misses, 1)
	return zonestore.Lookup{}, false
}

func (c *lookupCache) Put(name domain.Name, l zonestore.Lookup) {
	c.lru.Add(name, l)
}

func (c *lookupCache) Len() int { return c.lru.Len() }

func (c *lookupCache) Purge() { c.lru.Purge() }

// Stats returns cumulative hit/miss/eviction counters.
func (c *lookupCache) Stats() (hits, misses, evictions uint64) {
	return atomic.LoadUint64(&c.hits), atomic.LoadUint64(&c.misses), atomic.LoadUint64(&c.evictions)
}

func (d *disabledCache) Get(domain.Name) (zonestore.Lookup, bool) { return zonestore.Lookup{}, false }

func (d *disabledCache) Put(domain.Name, zonestore.Lookup) {}

func (d *disabledCache) Len() int { return 0 }

func (d *disabledCache) Purge() {}

func (d *disabledCache) Stats() (uint64, uint64, uint64) { return 0, 0, 0 }

var _ zonestore.LookupCache = (*lookupCache)(nil)
var _ zonestore.LookupCache = (*disabledCache)(nil)
