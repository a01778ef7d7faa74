// Package zonestore holds the authoritative records served by the responder.
//
// Records are kept in insertion order and lookups return the first record whose
// owner name matches exactly. An optional lookup cache and name filter sit in
// front of the scan; both are reset on every write.
package zonestore

import (
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/net/publicsuffix"

	"github.com/haukened/rr-authdns/internal/dns/common/log"
	"github.com/haukened/rr-authdns/internal/dns/domain"
)

// DefaultFalsePositiveRate is used when Options.FalsePositiveRate is unset.
const DefaultFalsePositiveRate = 0.01

// Options configures the optional layers in front of the record list.
type Options struct {
	Cache             LookupCache
	Filters           NameFilterFactory
	FalsePositiveRate float64
	Logger            log.Logger
}

// Stats is a point-in-time view of the store.
type Stats struct {
	Records        int
	CacheSize      int
	CacheHits      uint64
	CacheMisses    uint64
	CacheEvictions uint64
	FilterRejects  uint64
}

// Store is an in-memory, concurrency-safe record table.
type Store struct {
	mu      sync.RWMutex
	records []domain.Record

	cache   LookupCache
	filters NameFilterFactory
	fpRate  float64
	filter  NameFilter
	filterN uint64 // capacity the current filter was sized for

	rejects atomic.Uint64
	logger  log.Logger
}

// New builds a store that owns records. The slice must not be modified afterwards.
func New(records []domain.Record, opts Options) *Store {
	s := &Store{
		records: records,
		cache:   opts.Cache,
		filters: opts.Filters,
		fpRate:  opts.FalsePositiveRate,
		logger:  opts.Logger,
	}
	if s.fpRate <= 0 || s.fpRate >= 1 {
		s.fpRate = DefaultFalsePositiveRate
	}
	if s.logger == nil {
		s.logger = log.NewNoopLogger()
	}
	s.rebuildFilter()
	return s
}

// Lookup returns the first record owned by name.
func (s *Store) Lookup(name domain.Name) (domain.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.cache != nil {
		if l, ok := s.cache.Get(name); ok {
			return l.Record, l.Found
		}
	}

	result := s.scan(name)
	if s.cache != nil {
		s.cache.Put(name, result)
	}
	return result.Record, result.Found
}

func (s *Store) scan(name domain.Name) Lookup {
	if s.filter != nil && !s.filter.MightContain([]byte(name)) {
		s.rejects.Add(1)
		return Lookup{}
	}
	for _, r := range s.records {
		if r.Name() == name {
			return Lookup{Record: r, Found: true}
		}
	}
	return Lookup{}
}

// Add appends r. Existing records for the same name keep precedence.
func (s *Store) Add(r domain.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, r)
	if s.filter != nil && uint64(len(s.records)) <= s.filterN {
		s.filter.Add([]byte(r.Name()))
	} else {
		s.rebuildFilter()
	}
	s.purgeCache()
}

// Remove deletes every record owned by name and returns how many were removed.
func (s *Store) Remove(name domain.Name) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]domain.Record, 0, len(s.records))
	for _, r := range s.records {
		if r.Name() != name {
			kept = append(kept, r)
		}
	}
	removed := len(s.records) - len(kept)
	if removed == 0 {
		return 0
	}
	s.records = kept
	s.rebuildFilter()
	s.purgeCache()
	return removed
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Records returns a copy of the records in lookup order.
func (s *Store) Records() []domain.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Zones returns the sorted, de-duplicated registrable domains (eTLD+1) of all owner
// names. Names that have no registrable domain, such as single-label names, are
// listed as themselves.
func (s *Store) Zones() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, r := range s.records {
		name := strings.ToLower(r.Name().String())
		apex, err := publicsuffix.EffectiveTLDPlusOne(name)
		if err != nil {
			apex = name
		}
		seen[apex] = struct{}{}
	}

	zones := make([]string, 0, len(seen))
	for z := range seen {
		zones = append(zones, z)
	}
	sort.Strings(zones)
	return zones
}

// Stats reports record count plus cache and filter counters.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{
		Records:       len(s.records),
		FilterRejects: s.rejects.Load(),
	}
	if s.cache != nil {
		st.CacheSize = s.cache.Len()
		st.CacheHits, st.CacheMisses, st.CacheEvictions = s.cache.Stats()
	}
	return st
}

// rebuildFilter resizes the filter to twice the current record count. Callers hold the write lock.
func (s *Store) rebuildFilter() {
	if s.filters == nil {
		return
	}
	capacity := uint64(len(s.records)) * 2
	if capacity < 16 {
		capacity = 16
	}
	f := s.filters.New(capacity, s.fpRate)
	for _, r := range s.records {
		f.Add([]byte(r.Name()))
	}
	s.filter = f
	s.filterN = capacity

	s.logger.Debug(map[string]any{
		"records":  len(s.records),
		"capacity": capacity,
		"fp_rate":  s.fpRate,
	}, "Rebuilt name filter")
}

func (s *Store) purgeCache() {
	if s.cache != nil {
		s.cache.Purge()
	}
}
