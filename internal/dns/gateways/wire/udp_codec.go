// Package wire provides encoding and decoding of DNS messages for UDP transport.
// It handles the uncompressed subset of the RFC 1035 wire format: a 12-byte header,
// one question and at most one answer.
package wire

import (
	"fmt"

	"github.com/haukened/rr-authdns/internal/dns/common/log"
	"github.com/haukened/rr-authdns/internal/dns/domain"
)

// MaxUDPMessageSize is the classic DNS-over-UDP payload limit.
const MaxUDPMessageSize = 512

// udpCodec implements the DNSCodec interface for standard DNS over UDP messages.
type udpCodec struct {
	logger log.Logger
}

// NewUDPCodec creates and returns a new instance of udpCodec using the provided logger.
func NewUDPCodec(logger log.Logger) *udpCodec {
	return &udpCodec{
		logger: logger,
	}
}

// DecodeRequest parses a DNS query datagram.
func (c *udpCodec) DecodeRequest(data []byte) (domain.Message, error) {
	msg, err := DecodeRequest(data)
	if err != nil {
		return domain.Message{}, err
	}

	c.logger.Debug(map[string]any{
		"step":   "request_decoded",
		"id":     msg.Header.ID,
		"opcode": msg.Header.Flags.Opcode(),
		"name":   msg.Question.Name.String(),
		"type":   msg.Question.Type.String(),
		"class":  msg.Question.Class.String(),
	}, "Decoded DNS request")

	return msg, nil
}

// EncodeResponse serializes resp into a datagram no larger than MaxUDPMessageSize.
func (c *udpCodec) EncodeResponse(resp domain.Message) ([]byte, error) {
	data, err := EncodeMessage(resp)
	if err != nil {
		return nil, err
	}
	if len(data) > MaxUDPMessageSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrMessageTooLarge, len(data), MaxUDPMessageSize)
	}

	c.logger.Debug(map[string]any{
		"step":  "final_packet",
		"id":    resp.Header.ID,
		"an":    resp.Header.ANCount,
		"rcode": resp.Header.Flags.RCode().String(),
		"size":  len(data),
		"raw":   fmt.Sprintf("%x", data),
	}, "Final encoded DNS response")

	return data, nil
}

var _ DNSCodec = &udpCodec{}
