package zonestore

import "github.com/haukened/rr-authdns/internal/dns/domain"

// Lookup is a memoized lookup result. Found is false for names with no record.
type Lookup struct {
	Record domain.Record
	Found  bool
}

// LookupCache memoizes lookups by name with basic metrics.
type LookupCache interface {
	Get(name domain.Name) (Lookup, bool)
	Put(name domain.Name, l Lookup)
	Len() int
	Purge()
	Stats() (hits, misses, evictions uint64)
}

// NameFilter answers "definitely absent" for owner names without touching the record list.
type NameFilter interface {
	Add(key []byte)
	MightContain(key []byte) bool
}

// NameFilterFactory builds filters sized for capacity keys at the given false-positive rate.
type NameFilterFactory interface {
	New(capacity uint64, fpRate float64) NameFilter
}
