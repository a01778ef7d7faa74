package domain

import (
	"fmt"
	"strings"
)

// RRClass represents a DNS class. Only IN is served.
type RRClass uint16

// RRClassIN is the Internet class.
const RRClassIN RRClass = 1

// IsValid returns true if the RRClass is one of the supported classes.
func (c RRClass) IsValid() bool {
	return c == RRClassIN
}

// String returns the textual representation of the RRClass.
func (c RRClass) String() string {
	if c == RRClassIN {
		return "IN"
	}
	return fmt.Sprintf("CLASS%d", uint16(c))
}

// ParseRRClass converts a zone-file class token to an RRClass.
func ParseRRClass(s string) (RRClass, error) {
	if strings.EqualFold(s, "IN") {
		return RRClassIN, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedClass, s)
}
