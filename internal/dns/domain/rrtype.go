package domain

import (
	"fmt"
	"strings"
)

// RRType represents a DNS resource record type.
// See IANA DNS Parameters for assigned codes.
type RRType uint16

// RRTypeA is the IPv4 address record, the only type with a Record variant.
const RRTypeA RRType = 1

// IsValid returns true if the RRType has a Record variant.
func (t RRType) IsValid() bool {
	return t == RRTypeA
}

// String returns the textual representation of the RRType.
// For unknown types, it returns "TYPE<value>" (RFC 3597 form).
func (t RRType) String() string {
	if t == RRTypeA {
		return "A"
	}
	return fmt.Sprintf("TYPE%d", uint16(t))
}

// ParseRRType converts a zone-file type token to an RRType.
func ParseRRType(s string) (RRType, error) {
	if strings.EqualFold(s, "A") {
		return RRTypeA, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedRecordType, s)
}
