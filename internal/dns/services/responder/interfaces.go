package responder

import "github.com/haukened/rr-authdns/internal/dns/domain"

// RecordStore finds the record owned by a name. First match wins.
type RecordStore interface {
	Lookup(name domain.Name) (domain.Record, bool)
}
