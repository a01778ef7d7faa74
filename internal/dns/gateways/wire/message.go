package wire

import (
	"bytes"
	"fmt"

	"github.com/haukened/rr-authdns/internal/dns/domain"
)

// DecodeRequest decodes the header and the single question that follows it.
// Anything after the question is ignored.
func DecodeRequest(data []byte) (domain.Message, error) {
	msg, _, err := decodeHead(data)
	return msg, err
}

// DecodeMessage decodes a full message with at most one answer.
func DecodeMessage(data []byte) (domain.Message, error) {
	msg, off, err := decodeHead(data)
	if err != nil {
		return domain.Message{}, err
	}
	switch msg.Header.ANCount {
	case 0:
		return msg, nil
	case 1:
		rr, _, err := DecodeResourceRecord(data, off)
		if err != nil {
			return domain.Message{}, fmt.Errorf("answer: %w", err)
		}
		msg.Answer = &rr
		return msg, nil
	default:
		return domain.Message{}, fmt.Errorf("%w: expected at most one answer, got %d", ErrMalformedMessage, msg.Header.ANCount)
	}
}

// decodeHead decodes the header and question and returns the offset just past them.
func decodeHead(data []byte) (domain.Message, int, error) {
	h, err := DecodeHeader(data)
	if err != nil {
		return domain.Message{}, 0, err
	}
	if h.QDCount != 1 {
		return domain.Message{}, 0, fmt.Errorf("%w: expected exactly one question, got %d", ErrMalformedMessage, h.QDCount)
	}
	q, n, err := DecodeQuestion(data, domain.HeaderSize)
	if err != nil {
		return domain.Message{}, 0, err
	}
	return domain.Message{Header: h, Question: q}, domain.HeaderSize + n, nil
}

// EncodeMessage validates m and writes header, question and answer in that order.
func EncodeMessage(m domain.Message) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	header := EncodeHeader(m.Header)
	buf.Write(header[:])

	question, err := EncodeQuestion(m.Question)
	if err != nil {
		return nil, err
	}
	buf.Write(question)

	if m.Answer != nil {
		answer, err := EncodeResourceRecord(*m.Answer)
		if err != nil {
			return nil, fmt.Errorf("answer: %w", err)
		}
		buf.Write(answer)
	}
	return buf.Bytes(), nil
}
