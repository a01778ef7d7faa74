package wire

import "errors"

var (
	// ErrMalformedMessage is returned for any input that cannot be decoded: short buffers,
	// label lengths pointing past the end, compression pointers, incomplete sections.
	// Callers at the request boundary drop the datagram and keep serving.
	ErrMalformedMessage = errors.New("malformed dns message")

	// ErrMessageTooLarge is returned when an encoded response exceeds MaxUDPMessageSize.
	ErrMessageTooLarge = errors.New("dns message too large for udp")
)
