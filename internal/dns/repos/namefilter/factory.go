package namefilter

import (
	bitsbloom "github.com/bits-and-blooms/bloom/v3"

	"github.com/haukened/rr-authdns/internal/dns/repos/zonestore"
)

type factory struct{}

// NewFactory returns a zonestore.NameFilterFactory that sizes filters with Size.
func NewFactory() zonestore.NameFilterFactory { return factory{} }

func (factory) New(capacity uint64, fpRate float64) zonestore.NameFilter {
	m, k := Size(capacity, fpRate)
	return &filter{bf: bitsbloom.New(uint(m), uint(k))}
}
