package domain

import "fmt"

// Message is a request or response carrying exactly one question and at most one answer.
type Message struct {
	Header   Header
	Question Question
	Answer   *ResourceRecord
}

// NewResponse builds the reply to request. The ID is echoed, QR is forced, Opcode and RD
// are copied and AA is set. When record is nil the answer section is empty and ANCount is 0.
func NewResponse(request Message, record Record) Message {
	var flags Flags
	flags.SetQR(true)
	// Opcode() is at most 4 bits wide, so it always fits.
	_ = flags.SetOpcode(request.Header.Flags.Opcode())
	flags.SetAA(true)
	flags.SetRD(request.Header.Flags.RD())

	resp := Message{
		Header: Header{
			ID:      request.Header.ID,
			Flags:   flags,
			QDCount: 1,
		},
		Question: request.Question,
	}
	if record != nil {
		rr := record.ResourceRecord()
		resp.Answer = &rr
		resp.Header.ANCount = 1
	}
	return resp
}

// NewErrorResponse builds an answerless reply to request carrying rcode.
func NewErrorResponse(request Message, rcode RCode) (Message, error) {
	resp := NewResponse(request, nil)
	if err := resp.Header.Flags.SetRCode(rcode); err != nil {
		return Message{}, err
	}
	return resp, nil
}

// HasAnswer reports whether the answer section is populated.
func (m Message) HasAnswer() bool {
	return m.Answer != nil
}

// Validate checks that the header counts describe the sections actually present.
func (m Message) Validate() error {
	if err := m.Header.Validate(); err != nil {
		return err
	}
	if m.Header.QDCount != 1 {
		return fmt.Errorf("%w: qdcount %d, want 1", ErrInvalidMessage, m.Header.QDCount)
	}
	var answers uint16
	if m.Answer != nil {
		answers = 1
	}
	if m.Header.ANCount != answers {
		return fmt.Errorf("%w: ancount %d, answer section has %d", ErrInvalidMessage, m.Header.ANCount, answers)
	}
	if m.Header.NSCount != 0 || m.Header.ARCount != 0 {
		return fmt.Errorf("%w: authority and additional sections are not supported", ErrInvalidMessage)
	}
	if err := m.Question.Name.Validate(); err != nil {
		return err
	}
	if m.Answer != nil {
		if err := m.Answer.Validate(); err != nil {
			return fmt.Errorf("invalid answer record: %w", err)
		}
	}
	return nil
}
