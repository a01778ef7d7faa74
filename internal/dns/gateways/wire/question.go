package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/haukened/rr-authdns/internal/dns/domain"
)

// EncodeQuestion emits the label sequence, then QTYPE and QCLASS.
func EncodeQuestion(q domain.Question) ([]byte, error) {
	name, err := EncodeLabels(q.Name)
	if err != nil {
		return nil, fmt.Errorf("question name: %w", err)
	}
	out := make([]byte, 0, len(name)+4)
	out = append(out, name...)
	out = binary.BigEndian.AppendUint16(out, uint16(q.Type))
	out = binary.BigEndian.AppendUint16(out, uint16(q.Class))
	return out, nil
}

// DecodeQuestion parses the question section starting at offset and returns it with the
// number of bytes consumed.
func DecodeQuestion(buf []byte, offset int) (domain.Question, int, error) {
	name, n, err := DecodeLabels(buf, offset)
	if err != nil {
		return domain.Question{}, 0, err
	}
	off := offset + n
	if off+4 > len(buf) {
		return domain.Question{}, 0, fmt.Errorf("%w: truncated question fields", ErrMalformedMessage)
	}
	return domain.Question{
		Name:  name,
		Type:  domain.RRType(binary.BigEndian.Uint16(buf[off : off+2])),
		Class: domain.RRClass(binary.BigEndian.Uint16(buf[off+2 : off+4])),
	}, n + 4, nil
}
