package domain

import "fmt"

// ResourceRecord is the wire form of a single answer entry. It is derived from a
// Record when a response is built and never stored.
type ResourceRecord struct {
	Name     Name
	Type     RRType
	Class    RRClass
	TTL      uint32
	RDLength uint16
	RData    []byte
}

// NewResourceRecord builds a ResourceRecord whose RDLength is taken from data.
func NewResourceRecord(name Name, rrtype RRType, class RRClass, ttl uint32, data []byte) (ResourceRecord, error) {
	if len(data) > 0xFFFF {
		return ResourceRecord{}, fmt.Errorf("%w: rdata is %d bytes (max 65535)", ErrRDataLength, len(data))
	}
	rr := ResourceRecord{
		Name:     name,
		Type:     rrtype,
		Class:    class,
		TTL:      ttl,
		RDLength: uint16(len(data)),
		RData:    data,
	}
	if err := rr.Validate(); err != nil {
		return ResourceRecord{}, err
	}
	return rr, nil
}

// Validate checks that the name encodes and that RDLength matches RData.
func (rr ResourceRecord) Validate() error {
	if err := rr.Name.Validate(); err != nil {
		return err
	}
	if int(rr.RDLength) != len(rr.RData) {
		return fmt.Errorf("%w: rdlength %d, rdata %d bytes", ErrRDataLength, rr.RDLength, len(rr.RData))
	}
	return nil
}
