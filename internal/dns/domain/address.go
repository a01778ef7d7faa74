package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// IPv4Address is the four octets of an A record.
type IPv4Address [4]byte

// ParseIPv4Address parses exactly four dot-separated decimal integers in 0-255.
func ParseIPv4Address(s string) (IPv4Address, error) {
	var addr IPv4Address
	parts := strings.Split(s, ".")
	if len(parts) != len(addr) {
		return IPv4Address{}, fmt.Errorf("%w: %q does not have four octets", ErrInvalidAddressLiteral, s)
	}
	for i, part := range parts {
		// ParseUint would accept nothing longer than three digits anyway; the length check
		// keeps "0000" style padding out.
		if part == "" || len(part) > 3 {
			return IPv4Address{}, fmt.Errorf("%w: %q has a malformed octet %q", ErrInvalidAddressLiteral, s, part)
		}
		v, err := strconv.ParseUint(part, 10, 8)
		if err != nil {
			return IPv4Address{}, fmt.Errorf("%w: %q octet %q is not in 0-255", ErrInvalidAddressLiteral, s, part)
		}
		addr[i] = byte(v)
	}
	return addr, nil
}

// String returns the dotted-quad form.
func (a IPv4Address) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", a[0], a[1], a[2], a[3])
}
