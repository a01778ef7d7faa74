package domain

import "fmt"

// HeaderSize is the fixed size of a DNS header in bytes.
const HeaderSize = 12

// Opcode is the 4-bit kind of query carried in the header.
type Opcode uint8

// OpcodeQuery is a standard query (RFC 1035 §4.1.1).
const OpcodeQuery Opcode = 0

// Flags is the second 16-bit word of the header.
//
//	bit 15      QR
//	bits 14-11  OPCODE
//	bit 10      AA
//	bit 9       TC
//	bit 8       RD
//	bit 7       RA
//	bits 6-4    Z
//	bits 3-0    RCODE
type Flags uint16

const (
	flagQR Flags = 1 << 15
	flagAA Flags = 1 << 10
	flagTC Flags = 1 << 9
	flagRD Flags = 1 << 8
	flagRA Flags = 1 << 7

	opcodeShift = 11
	opcodeMask  = 0xF
	zShift      = 4
	zMask       = 0x7
	rcodeMask   = 0xF
)

func (f Flags) bit(mask Flags) bool { return f&mask != 0 }

func (f *Flags) setBit(mask Flags, on bool) {
	if on {
		*f |= mask
	} else {
		*f &^= mask
	}
}

// QR reports whether the message is a response.
func (f Flags) QR() bool { return f.bit(flagQR) }

// SetQR marks the message as a response (true) or query (false).
func (f *Flags) SetQR(on bool) { f.setBit(flagQR, on) }

// Opcode returns the 4-bit opcode.
func (f Flags) Opcode() Opcode { return Opcode((f >> opcodeShift) & opcodeMask) }

// SetOpcode stores op, which must fit in 4 bits.
func (f *Flags) SetOpcode(op Opcode) error {
	if op > opcodeMask {
		return fmt.Errorf("%w: opcode %d exceeds 4 bits", ErrFieldRange, op)
	}
	*f = (*f &^ (opcodeMask << opcodeShift)) | Flags(op)<<opcodeShift
	return nil
}

// AA reports the authoritative-answer bit.
func (f Flags) AA() bool { return f.bit(flagAA) }

// SetAA sets the authoritative-answer bit.
func (f *Flags) SetAA(on bool) { f.setBit(flagAA, on) }

// TC reports the truncation bit.
func (f Flags) TC() bool { return f.bit(flagTC) }

// SetTC sets the truncation bit.
func (f *Flags) SetTC(on bool) { f.setBit(flagTC, on) }

// RD reports the recursion-desired bit.
func (f Flags) RD() bool { return f.bit(flagRD) }

// SetRD sets the recursion-desired bit.
func (f *Flags) SetRD(on bool) { f.setBit(flagRD, on) }

// RA reports the recursion-available bit.
func (f Flags) RA() bool { return f.bit(flagRA) }

// SetRA sets the recursion-available bit.
func (f *Flags) SetRA(on bool) { f.setBit(flagRA, on) }

// Z returns the three reserved bits.
func (f Flags) Z() uint8 { return uint8((f >> zShift) & zMask) }

// SetZ stores the reserved bits. Values above 7 are rejected.
func (f *Flags) SetZ(z uint8) error {
	if z > zMask {
		return fmt.Errorf("%w: z %d exceeds 3 bits", ErrFieldRange, z)
	}
	*f = (*f &^ (zMask << zShift)) | Flags(z)<<zShift
	return nil
}

// RCode returns the 4-bit response code.
func (f Flags) RCode() RCode { return RCode(f & rcodeMask) }

// SetRCode stores rc, which must fit in 4 bits.
func (f *Flags) SetRCode(rc RCode) error {
	if rc > rcodeMask {
		return fmt.Errorf("%w: rcode %d exceeds 4 bits", ErrFieldRange, rc)
	}
	*f = (*f &^ rcodeMask) | Flags(rc)
	return nil
}

// Header is the fixed 12-byte message header.
type Header struct {
	ID      uint16
	Flags   Flags
	QDCount uint16
	ANCount uint16
	NSCount uint16
	ARCount uint16
}

// Validate checks the reserved bits, which must be zero.
func (h Header) Validate() error {
	if z := h.Flags.Z(); z != 0 {
		return fmt.Errorf("%w: reserved z bits set (%d)", ErrInvalidMessage, z)
	}
	return nil
}
