package dns

import (
	"fmt"
	"net/netip"
)

// MaxUDPSize is the fixed frame size of a message on the wire (RFC 1035
// Section 4.2.1). No EDNS(0) size extension is negotiated.
const MaxUDPSize = 512

// authoritySize is the trailing IPv4 authority address.
const authoritySize = 4

// Message is a DNS message in the single-question, single-answer framing.
//
// Question and Answer are nil when the section is absent. The header counts
// QDCount and ANCount must agree with them: Marshal and ParseMessage both
// fail with ErrInvariantViolation otherwise. NSCount and ARCount are carried
// as given; the authority section is the bare Authority address, not a list
// of records.
type Message struct {
	Header    Header
	Question  *Question
	Answer    *Record
	Authority netip.Addr // IPv4; the zero Addr encodes as 0.0.0.0

	// AdditionalSpace is the number of frame bytes left after the
	// authority address. It is filled in by ParseMessage and ignored by
	// Marshal, which always pads to MaxUDPSize.
	AdditionalSpace int
}

// Marshal serializes the message into exactly MaxUDPSize bytes:
// header, question, answer, authority address, then zero padding.
func (m Message) Marshal() ([]byte, error) {
	if err := m.checkCounts(); err != nil {
		return nil, err
	}
	authority, err := m.authorityBytes()
	if err != nil {
		return nil, err
	}

	frame := make([]byte, 0, MaxUDPSize)
	hb := m.Header.Marshal()
	frame = append(frame, hb[:]...)

	if m.Question != nil {
		qb, err := m.Question.Marshal()
		if err != nil {
			return nil, fmt.Errorf("question: %w", err)
		}
		frame = append(frame, qb...)
	}
	if m.Answer != nil {
		ab, err := m.Answer.Marshal()
		if err != nil {
			return nil, fmt.Errorf("answer: %w", err)
		}
		frame = append(frame, ab...)
	}
	frame = append(frame, authority[:]...)

	if len(frame) > MaxUDPSize {
		return nil, fmt.Errorf("%w: %d > %d bytes", ErrMessageTooLarge, len(frame), MaxUDPSize)
	}
	// Capacity is MaxUDPSize and append never grew past it, so the tail
	// up to the frame size is still zeroed.
	return frame[:MaxUDPSize], nil
}

// ParseMessage decodes a received datagram.
//
// The datagram is copied into a fresh zeroed frame of MaxUDPSize bytes, so
// nothing from earlier buffers can leak into the result. The header and the
// sections it announces must fit inside the received bytes; the authority
// address is read from the frame and is zero when the sender did not
// include one.
func ParseMessage(datagram []byte) (Message, error) {
	if len(datagram) > MaxUDPSize {
		return Message{}, fmt.Errorf("%w: %d > %d bytes", ErrMessageTooLarge, len(datagram), MaxUDPSize)
	}
	var frame [MaxUDPSize]byte
	n := copy(frame[:], datagram)
	data := frame[:n]

	off := 0
	h, err := ParseHeader(data, &off)
	if err != nil {
		return Message{}, err
	}
	if h.QDCount > 1 || h.ANCount > 1 {
		return Message{}, fmt.Errorf("%w: qdcount=%d ancount=%d, at most one of each is supported",
			ErrInvariantViolation, h.QDCount, h.ANCount)
	}

	m := Message{Header: h}
	if h.QDCount == 1 {
		q, err := ParseQuestion(data, &off)
		if err != nil {
			return Message{}, fmt.Errorf("question: %w", err)
		}
		m.Question = &q
	}
	if h.ANCount == 1 {
		rr, err := ParseRecord(data, &off)
		if err != nil {
			return Message{}, fmt.Errorf("answer: %w", err)
		}
		m.Answer = &rr
	}

	if off+authoritySize > MaxUDPSize {
		return Message{}, fmt.Errorf("%w: no room for authority address", ErrTruncatedInput)
	}
	m.Authority = netip.AddrFrom4([4]byte(frame[off : off+authoritySize]))
	off += authoritySize
	m.AdditionalSpace = MaxUDPSize - off
	return m, nil
}

// checkCounts cross-checks the header counts with the sections present.
func (m Message) checkCounts() error {
	if want := presence(m.Question != nil); m.Header.QDCount != want {
		return fmt.Errorf("%w: qdcount %d but %d question(s)", ErrInvariantViolation, m.Header.QDCount, want)
	}
	if want := presence(m.Answer != nil); m.Header.ANCount != want {
		return fmt.Errorf("%w: ancount %d but %d answer(s)", ErrInvariantViolation, m.Header.ANCount, want)
	}
	return nil
}

func (m Message) authorityBytes() ([authoritySize]byte, error) {
	if !m.Authority.IsValid() {
		return [authoritySize]byte{}, nil
	}
	addr := m.Authority.Unmap()
	if !addr.Is4() {
		return [authoritySize]byte{}, fmt.Errorf("%w: authority %s is not IPv4", ErrInvariantViolation, m.Authority)
	}
	return addr.As4(), nil
}

func presence(ok bool) uint16 {
	if ok {
		return 1
	}
	return 0
}
