// Package transport moves DNS messages between the network and the service layer.
// It converts datagrams to domain messages and back, so handlers only see domain types.
package transport

import (
	"context"
	"net"

	"github.com/haukened/rr-authdns/internal/dns/domain"
)

// ServerTransport is a network listener that feeds requests to a RequestHandler.
type ServerTransport interface {
	// Start binds the listener and begins serving in the background.
	Start(ctx context.Context, handler RequestHandler) error

	// Stop closes the listener. It is safe to call more than once.
	Stop() error

	// Address returns the bound address, or the configured one before Start.
	Address() string
}

// RequestHandler produces the response for one decoded request.
// A returned error means no response is sent.
type RequestHandler interface {
	HandleRequest(ctx context.Context, req domain.Message, clientAddr net.Addr) (domain.Message, error)
}

// TransportType names a transport protocol.
type TransportType string

const (
	// TransportUDP is classic DNS over UDP (RFC 1035).
	TransportUDP TransportType = "udp"
)
