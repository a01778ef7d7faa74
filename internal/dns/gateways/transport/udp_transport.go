package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/haukened/rr-authdns/internal/dns/common/log"
	"github.com/haukened/rr-authdns/internal/dns/gateways/wire"
)

// UDPTransport serves DNS over UDP. Each datagram is handled in its own goroutine;
// a datagram that fails to decode, handle or encode is logged and dropped.
type UDPTransport struct {
	addr   string
	conn   *net.UDPConn
	codec  wire.DNSCodec
	logger log.Logger

	mu      sync.RWMutex
	running bool
	stopCh  chan struct{}
	// loopDone is closed when the receive loop has exited.
	loopDone chan struct{}
}

// NewUDPTransport creates a new UDP transport instance.
func NewUDPTransport(addr string, codec wire.DNSCodec, logger log.Logger) *UDPTransport {
	return &UDPTransport{
		addr:   addr,
		codec:  codec,
		logger: logger,
	}
}

// Start binds the UDP socket and starts the receive loop. Cancelling ctx stops the transport.
func (t *UDPTransport) Start(ctx context.Context, handler RequestHandler) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return fmt.Errorf("UDP transport already running")
	}

	udpAddr, err := net.ResolveUDPAddr("udp", t.addr)
	if err != nil {
		return fmt.Errorf("failed to resolve UDP address %s: %w", t.addr, err)
	}

	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return fmt.Errorf("failed to bind UDP socket on %s: %w", t.addr, err)
	}

	t.conn = conn
	t.running = true
	t.stopCh = make(chan struct{})
	t.loopDone = make(chan struct{})

	t.logger.Info(map[string]any{
		"transport": "udp",
		"address":   conn.LocalAddr().String(),
	}, "DNS transport started")

	go t.listenLoop(ctx, conn, handler, t.loopDone)

	stopCh := t.stopCh
	go func() {
		select {
		case <-ctx.Done():
			t.logger.Debug(nil, "UDP transport stopping due to context cancellation")
			_ = t.Stop()
		case <-stopCh:
		}
	}()

	return nil
}

// Stop closes the socket and waits for the receive loop to exit.
// Concurrent callers all return only after the loop has exited.
func (t *UDPTransport) Stop() error {
	t.mu.Lock()
	loopDone := t.loopDone
	if !t.running {
		t.mu.Unlock()
		if loopDone != nil {
			<-loopDone
		}
		return nil
	}

	close(t.stopCh)
	t.running = false

	closeErr := t.conn.Close()
	if closeErr != nil {
		t.logger.Warn(map[string]any{
			"error": closeErr.Error(),
		}, "Error closing UDP connection")
	}
	t.mu.Unlock()

	<-loopDone

	t.logger.Info(map[string]any{
		"transport": "udp",
		"address":   t.addr,
	}, "DNS transport stopped")

	return closeErr
}

// Address returns the bound address while running, otherwise the configured one.
func (t *UDPTransport) Address() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.running {
		return t.conn.LocalAddr().String()
	}
	return t.addr
}

func (t *UDPTransport) listenLoop(ctx context.Context, conn *net.UDPConn, handler RequestHandler, done chan<- struct{}) {
	defer close(done)

	buffer := make([]byte, wire.MaxUDPMessageSize)
	for {
		n, clientAddr, err := conn.ReadFromUDP(buffer)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			t.logger.Warn(map[string]any{
				"error": err.Error(),
			}, "Failed to read UDP packet")
			continue
		}

		packet := make([]byte, n)
		copy(packet, buffer[:n])
		go t.handlePacket(ctx, conn, packet, clientAddr, handler)
	}
}

// handlePacket decodes, answers and replies to one datagram.
func (t *UDPTransport) handlePacket(ctx context.Context, conn *net.UDPConn, data []byte, clientAddr *net.UDPAddr, handler RequestHandler) {
	t.logger.Debug(map[string]any{
		"client": clientAddr.String(),
		"size":   len(data),
		"raw":    fmt.Sprintf("%x", data),
	}, "Received raw DNS request data")

	req, err := t.codec.DecodeRequest(data)
	if err != nil {
		t.logger.Warn(map[string]any{
			"client": clientAddr.String(),
			"error":  err.Error(),
			"size":   len(data),
		}, "Failed to decode DNS request")
		return
	}

	resp, err := handler.HandleRequest(ctx, req, clientAddr)
	if err != nil {
		t.logger.Error(map[string]any{
			"client":     clientAddr.String(),
			"request_id": req.Header.ID,
			"error":      err.Error(),
		}, "Failed to handle DNS request")
		return
	}

	out, err := t.codec.EncodeResponse(resp)
	if err != nil {
		t.logger.Error(map[string]any{
			"client":     clientAddr.String(),
			"request_id": req.Header.ID,
			"error":      err.Error(),
		}, "Failed to encode DNS response")
		return
	}

	if _, err := conn.WriteToUDP(out, clientAddr); err != nil {
		t.logger.Error(map[string]any{
			"client":     clientAddr.String(),
			"request_id": resp.Header.ID,
			"error":      err.Error(),
		}, "Failed to send DNS response")
		return
	}

	t.logger.Debug(map[string]any{
		"client":     clientAddr.String(),
		"request_id": resp.Header.ID,
		"rcode":      resp.Header.Flags.RCode().String(),
		"answers":    resp.Header.ANCount,
		"size":       len(out),
	}, "Sent DNS response")
}

var _ ServerTransport = (*UDPTransport)(nil)
