package transport

import (
	"fmt"

	"github.com/haukened/rr-authdns/internal/dns/common/log"
	"github.com/haukened/rr-authdns/internal/dns/gateways/wire"
)

// NewTransport creates a transport of the given type bound to addr.
func NewTransport(transportType TransportType, addr string, codec wire.DNSCodec, logger log.Logger) (ServerTransport, error) {
	switch transportType {
	case TransportUDP:
		return NewUDPTransport(addr, codec, logger), nil
	default:
		return nil, fmt.Errorf("unsupported transport type: %q", transportType)
	}
}

// GetSupportedTransports returns the transport types NewTransport accepts.
func GetSupportedTransports() []TransportType {
	return []TransportType{TransportUDP}
}

// IsTransportSupported checks if a given transport type is currently supported.
func IsTransportSupported(transportType TransportType) bool {
	for _, t := range GetSupportedTransports() {
		if t == transportType {
			return true
		}
	}
	return false
}
