// Package domain holds the DNS message model served by rr-authdns: names, headers,
// questions, resource records and the authoritative record variants.
//
// Errors are sentinels. Wrap them with fmt.Errorf("%w: ...", ErrX) to add context
// and classify them with errors.Is.
package domain

import "errors"

var (
	// ErrInvalidName is returned for names with empty components, oversized labels,
	// or a wire form longer than MaxNameLength.
	ErrInvalidName = errors.New("invalid domain name")

	// ErrUnsupportedClass is returned when a textual class is not IN.
	ErrUnsupportedClass = errors.New("unsupported record class")

	// ErrUnsupportedRecordType is returned when a record type has no variant.
	ErrUnsupportedRecordType = errors.New("unsupported record type")

	// ErrInvalidAddressLiteral is returned when text is not four dot-separated 0-255 integers.
	ErrInvalidAddressLiteral = errors.New("invalid IPv4 address literal")

	// ErrRDataLength is returned when RDLength disagrees with the length of RData.
	ErrRDataLength = errors.New("rdlength does not match rdata")

	// ErrFieldRange is returned when a header bit-field value does not fit its width.
	ErrFieldRange = errors.New("header field out of range")

	// ErrInvalidMessage is returned when a message's counts or sections are inconsistent.
	ErrInvalidMessage = errors.New("invalid message")
)
