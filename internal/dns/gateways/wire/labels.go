package wire

import (
	"fmt"
	"strings"

	"github.com/haukened/rr-authdns/internal/dns/domain"
)

const (
	// labelTypeMask selects the two high bits of a length byte; any set bit marks a
	// compression pointer or a reserved label type, neither of which is accepted.
	labelTypeMask = 0xC0
)

// EncodeLabels encodes name as a label sequence: a length byte and the label bytes for
// each label, followed by a zero byte. Label and name lengths are enforced.
func EncodeLabels(name domain.Name) ([]byte, error) {
	labels, err := name.Labels()
	if err != nil {
		return nil, err
	}
	size := 1
	for _, label := range labels {
		size += len(label) + 1
	}
	out := make([]byte, 0, size)
	for _, label := range labels {
		out = append(out, byte(len(label)))
		out = append(out, label...)
	}
	return append(out, 0), nil
}

// DecodeLabels reads a label sequence starting at start and returns the dotted name and
// the number of bytes consumed, terminating zero byte included.
func DecodeLabels(buf []byte, start int) (domain.Name, int, error) {
	if start < 0 || start >= len(buf) {
		return "", 0, fmt.Errorf("%w: name offset %d outside %d-byte message", ErrMalformedMessage, start, len(buf))
	}

	var labels []string
	off := start
	wireLen := 1
	for {
		if off >= len(buf) {
			return "", 0, fmt.Errorf("%w: name starting at %d is not terminated", ErrMalformedMessage, start)
		}
		length := int(buf[off])
		if length == 0 {
			off++
			break
		}
		if length&labelTypeMask != 0 {
			return "", 0, fmt.Errorf("%w: unsupported label type 0x%02x at offset %d", ErrMalformedMessage, buf[off], off)
		}
		if off+1+length > len(buf) {
			return "", 0, fmt.Errorf("%w: label at offset %d needs %d bytes, %d remain", ErrMalformedMessage, off, length, len(buf)-off-1)
		}
		wireLen += length + 1
		if wireLen > domain.MaxNameLength {
			return "", 0, fmt.Errorf("%w: name starting at %d exceeds %d bytes", ErrMalformedMessage, start, domain.MaxNameLength)
		}
		label := string(buf[off+1 : off+1+length])
		if strings.Contains(label, ".") {
			return "", 0, fmt.Errorf("%w: label at offset %d contains a dot", ErrMalformedMessage, off)
		}
		labels = append(labels, label)
		off += 1 + length
	}
	return domain.Name(strings.Join(labels, ".")), off - start, nil
}
