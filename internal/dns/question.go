package dns

import (
	"encoding/binary"
	"fmt"
)

// Question represents a DNS question section entry (RFC 1035 Section 4.1.2).
type Question struct {
	Name  Name
	Type  Type
	Class Class
}

// Marshal serializes the question to DNS wire format.
func (q Question) Marshal() ([]byte, error) {
	size, err := q.Name.encodedLen()
	if err != nil {
		return nil, err
	}
	b := appendName(make([]byte, 0, size+4), q.Name)
	b = binary.BigEndian.AppendUint16(b, uint16(q.Type))
	b = binary.BigEndian.AppendUint16(b, uint16(q.Class))
	return b, nil
}

// ParseQuestion parses a question from the message at the given offset.
// It advances *off past the parsed question on success only.
func ParseQuestion(msg []byte, off *int) (Question, error) {
	pos := *off
	name, err := DecodeName(msg, &pos)
	if err != nil {
		return Question{}, err
	}
	if pos+4 > len(msg) {
		return Question{}, fmt.Errorf("%w: reading question type/class", ErrTruncatedInput)
	}
	qtype, err := ParseType(binary.BigEndian.Uint16(msg[pos : pos+2]))
	if err != nil {
		return Question{}, fmt.Errorf("question %s: %w", name, err)
	}
	qclass, err := ParseClass(binary.BigEndian.Uint16(msg[pos+2 : pos+4]))
	if err != nil {
		return Question{}, fmt.Errorf("question %s: %w", name, err)
	}
	*off = pos + 4
	return Question{Name: name, Type: qtype, Class: qclass}, nil
}
