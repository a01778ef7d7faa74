package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/haukened/rr-authdns/internal/dns/domain"
)

// rrFixedLen is TYPE, CLASS, TTL and RDLENGTH.
const rrFixedLen = 10

// EncodeResourceRecord emits one answer entry. The owner name is written in full; no
// compression pointer is used. RDLength must match the length of RData.
func EncodeResourceRecord(rr domain.ResourceRecord) ([]byte, error) {
	if err := rr.Validate(); err != nil {
		return nil, err
	}
	name, err := EncodeLabels(rr.Name)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(name)+rrFixedLen+len(rr.RData))
	out = append(out, name...)
	out = binary.BigEndian.AppendUint16(out, uint16(rr.Type))
	out = binary.BigEndian.AppendUint16(out, uint16(rr.Class))
	out = binary.BigEndian.AppendUint32(out, rr.TTL)
	out = binary.BigEndian.AppendUint16(out, rr.RDLength)
	out = append(out, rr.RData...)
	return out, nil
}

// DecodeResourceRecord parses one resource record at offset and returns it with the
// number of bytes consumed. RData is copied out of buf.
func DecodeResourceRecord(buf []byte, offset int) (domain.ResourceRecord, int, error) {
	name, n, err := DecodeLabels(buf, offset)
	if err != nil {
		return domain.ResourceRecord{}, 0, fmt.Errorf("record name: %w", err)
	}
	off := offset + n
	if off+rrFixedLen > len(buf) {
		return domain.ResourceRecord{}, 0, fmt.Errorf("%w: truncated record fields", ErrMalformedMessage)
	}
	rr := domain.ResourceRecord{
		Name:     name,
		Type:     domain.RRType(binary.BigEndian.Uint16(buf[off : off+2])),
		Class:    domain.RRClass(binary.BigEndian.Uint16(buf[off+2 : off+4])),
		TTL:      binary.BigEndian.Uint32(buf[off+4 : off+8]),
		RDLength: binary.BigEndian.Uint16(buf[off+8 : off+10]),
	}
	off += rrFixedLen
	end := off + int(rr.RDLength)
	if end > len(buf) {
		return domain.ResourceRecord{}, 0, fmt.Errorf("%w: rdata needs %d bytes, %d remain", ErrMalformedMessage, rr.RDLength, len(buf)-off)
	}
	rr.RData = make([]byte, rr.RDLength)
	copy(rr.RData, buf[off:end])
	return rr, end - offset, nil
}
