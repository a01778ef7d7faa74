package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/haukened/rr-authdns/internal/dns/domain"
)

// EncodeHeader packs h into its 12-byte wire form.
func EncodeHeader(h domain.Header) [domain.HeaderSize]byte {
	var b [domain.HeaderSize]byte
	binary.BigEndian.PutUint16(b[0:2], h.ID)
	binary.BigEndian.PutUint16(b[2:4], uint16(h.Flags))
	binary.BigEndian.PutUint16(b[4:6], h.QDCount)
	binary.BigEndian.PutUint16(b[6:8], h.ANCount)
	binary.BigEndian.PutUint16(b[8:10], h.NSCount)
	binary.BigEndian.PutUint16(b[10:12], h.ARCount)
	return b
}

// DecodeHeader unpacks the first 12 bytes of buf.
func DecodeHeader(buf []byte) (domain.Header, error) {
	if len(buf) < domain.HeaderSize {
		return domain.Header{}, fmt.Errorf("%w: header needs %d bytes, got %d", ErrMalformedMessage, domain.HeaderSize, len(buf))
	}
	return domain.Header{
		ID:      binary.BigEndian.Uint16(buf[0:2]),
		Flags:   domain.Flags(binary.BigEndian.Uint16(buf[2:4])),
		QDCount: binary.BigEndian.Uint16(buf[4:6]),
		ANCount: binary.BigEndian.Uint16(buf[6:8]),
		NSCount: binary.BigEndian.Uint16(buf[8:10]),
		ARCount: binary.BigEndian.Uint16(buf[10:12]),
	}, nil
}
