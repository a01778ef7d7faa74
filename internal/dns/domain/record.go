package domain

import "fmt"

// Record is an authoritative record held by the zone store.
//
// The set of variants is closed: adding a record type means adding a variant with its
// own rdata rendering, not implementing this interface elsewhere.
type Record interface {
	Name() Name
	Type() RRType
	Class() RRClass
	TTL() uint32
	// ResourceRecord renders the record into its answer-section form.
	ResourceRecord() ResourceRecord
	// Text renders the record data in zone-file presentation form.
	Text() string

	record()
}

// ARecord maps a name to an IPv4 address.
type ARecord struct {
	name    Name
	class   RRClass
	ttl     uint32
	address IPv4Address
}

// NewARecord validates its inputs and returns an address record.
// The owner is stored in canonical form, so "example.com." and "example.com" are the same owner.
func NewARecord(name Name, class RRClass, ttl uint32, address IPv4Address) (ARecord, error) {
	if err := name.Validate(); err != nil {
		return ARecord{}, err
	}
	name = name.Canonical()
	if name.IsRoot() {
		return ARecord{}, fmt.Errorf("%w: records cannot be owned by the root", ErrInvalidName)
	}
	if !class.IsValid() {
		return ARecord{}, fmt.Errorf("%w: %s", ErrUnsupportedClass, class)
	}
	return ARecord{name: name, class: class, ttl: ttl, address: address}, nil
}

// Name returns the owner name.
func (r ARecord) Name() Name { return r.name }

// Type always returns RRTypeA.
func (r ARecord) Type() RRType { return RRTypeA }

// Class returns the record class.
func (r ARecord) Class() RRClass { return r.class }

// TTL returns the time-to-live in seconds.
func (r ARecord) TTL() uint32 { return r.ttl }

// Address returns the IPv4 address the name maps to.
func (r ARecord) Address() IPv4Address { return r.address }

// Text renders the address in dotted-quad form.
func (r ARecord) Text() string { return r.address.String() }

func (r ARecord) record() {}

// ResourceRecord renders the address as a 4-byte rdata.
func (r ARecord) ResourceRecord() ResourceRecord {
	data := make([]byte, len(r.address))
	copy(data, r.address[:])
	return ResourceRecord{
		Name:     r.name,
		Type:     RRTypeA,
		Class:    r.class,
		TTL:      r.ttl,
		RDLength: uint16(len(data)),
		RData:    data,
	}
}

// ParseRecord builds a Record from a zone tuple (name, class, type, type-specific data).
func ParseRecord(name, class, rrtype, data string, ttl uint32) (Record, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}
	c, err := ParseRRClass(class)
	if err != nil {
		return nil, err
	}
	t, err := ParseRRType(rrtype)
	if err != nil {
		return nil, err
	}
	switch t {
	case RRTypeA:
		addr, err := ParseIPv4Address(data)
		if err != nil {
			return nil, err
		}
		return NewARecord(n, c, ttl, addr)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedRecordType, t)
	}
}

// RecordFromResourceRecord rebuilds a Record from its wire form.
func RecordFromResourceRecord(rr ResourceRecord) (Record, error) {
	if err := rr.Validate(); err != nil {
		return nil, err
	}
	switch rr.Type {
	case RRTypeA:
		var addr IPv4Address
		if len(rr.RData) != len(addr) {
			return nil, fmt.Errorf("%w: A rdata must be 4 bytes, got %d", ErrRDataLength, len(rr.RData))
		}
		copy(addr[:], rr.RData)
		return NewARecord(rr.Name, rr.Class, rr.TTL, addr)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedRecordType, rr.Type)
	}
}

var _ Record = ARecord{}
