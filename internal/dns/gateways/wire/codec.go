package wire

import (
	"github.com/haukened/rr-authdns/internal/dns/domain"
)

// DNSCodec converts between datagrams and messages at the request boundary.
type DNSCodec interface {
	// DecodeRequest parses an incoming query datagram.
	DecodeRequest(data []byte) (domain.Message, error)
	// EncodeResponse serializes a reply for transmission.
	EncodeResponse(resp domain.Message) ([]byte, error)
}
