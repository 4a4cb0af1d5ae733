package dns

import (
	"bytes"
	"net/netip"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMessage(t *testing.T) Message {
	t.Helper()
	name := Name{"codecrafters", "io"}
	answer, err := NewARecord(name, netip.MustParseAddr("8.8.8.8"), 60)
	require.NoError(t, err)
	return Message{
		Header: Header{
			ID:      1234,
			QR:      QRResponse,
			Opcode:  OpcodeQuery,
			RCode:   RCodeNoError,
			QDCount: 1,
			ANCount: 1,
		},
		Question:  &Question{Name: name, Type: TypeA, Class: ClassIN},
		Answer:    &answer,
		Authority: netip.MustParseAddr("127.0.0.1"),
	}
}

func TestMessageMarshal_Frame(t *testing.T) {
	m := sampleMessage(t)

	b, err := m.Marshal()
	require.NoError(t, err)
	require.Len(t, b, MaxUDPSize)

	// header(12) + question(17+4) + answer(17+10+4) + authority(4)
	used := 12 + 21 + 31 + 4
	assert.Equal(t, []byte{0x04, 0xD2, 0x80, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00}, b[:12])
	assert.Equal(t, []byte{127, 0, 0, 1}, b[used-4:used])
	assert.Equal(t, make([]byte, MaxUDPSize-used), b[used:], "padding must be zero")
}

func TestMessageMarshal_Empty(t *testing.T) {
	m := Message{Header: Header{ID: 7}}

	b, err := m.Marshal()
	require.NoError(t, err)
	require.Len(t, b, MaxUDPSize)
	assert.Equal(t, byte(7), b[1])
	assert.Equal(t, make([]byte, MaxUDPSize-HeaderSize), b[HeaderSize:])
}

func TestMessageMarshal_CountMismatch(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Message)
	}{
		{name: "qdcount without question", mutate: func(m *Message) { m.Question = nil }},
		{name: "ancount without answer", mutate: func(m *Message) { m.Answer = nil }},
		{name: "question without qdcount", mutate: func(m *Message) { m.Header.QDCount = 0 }},
		{name: "qdcount two", mutate: func(m *Message) { m.Header.QDCount = 2 }},
		{name: "ancount two", mutate: func(m *Message) { m.Header.ANCount = 2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := sampleMessage(t)
			tt.mutate(&m)
			_, err := m.Marshal()
			assert.ErrorIs(t, err, ErrInvariantViolation)
		})
	}
}

func TestMessageMarshal_AuthorityNotIPv4(t *testing.T) {
	m := sampleMessage(t)
	m.Authority = netip.MustParseAddr("2001:db8::1")
	_, err := m.Marshal()
	assert.ErrorIs(t, err, ErrInvariantViolation)
}

func TestMessageMarshal_TooLarge(t *testing.T) {
	m := sampleMessage(t)
	m.Answer.Type = TypeTXT
	m.Answer.RData = bytes.Repeat([]byte{'x'}, 480)
	m.Answer.RDLength = 480

	_, err := m.Marshal()
	assert.ErrorIs(t, err, ErrMessageTooLarge)
}

func TestMessageMarshal_SectionErrorsPropagate(t *testing.T) {
	m := sampleMessage(t)
	m.Question.Name = Name{strings.Repeat("a", 64)}
	_, err := m.Marshal()
	assert.ErrorIs(t, err, ErrLabelTooLong)

	m = sampleMessage(t)
	m.Answer.RDLength = 5
	_, err = m.Marshal()
	assert.ErrorIs(t, err, ErrInvariantViolation)
}

func TestParseMessage_RoundTrip(t *testing.T) {
	m := sampleMessage(t)
	b, err := m.Marshal()
	require.NoError(t, err)

	parsed, err := ParseMessage(b)
	require.NoError(t, err)

	assert.Equal(t, m.Header, parsed.Header)
	require.NotNil(t, parsed.Question)
	assert.Equal(t, *m.Question, *parsed.Question)
	require.NotNil(t, parsed.Answer)
	assert.Equal(t, *m.Answer, *parsed.Answer)
	assert.Equal(t, m.Authority, parsed.Authority)
	assert.Equal(t, MaxUDPSize-(12+21+31+4), parsed.AdditionalSpace)
}

func TestParseMessage_Idempotent(t *testing.T) {
	first, err := sampleMessage(t).Marshal()
	require.NoError(t, err)

	parsed, err := ParseMessage(first)
	require.NoError(t, err)
	second, err := parsed.Marshal()
	require.NoError(t, err)
	assert.Equal(t, first, second)

	reparsed, err := ParseMessage(second)
	require.NoError(t, err)
	assert.Equal(t, parsed, reparsed)
}

func TestParseMessage_ShortQuery(t *testing.T) {
	// A typical 33-byte query as sent by dig: header, one question, nothing else.
	query := []byte{
		0xBE, 0xEF, 0x01, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x0C, 'c', 'o', 'd', 'e', 'c', 'r', 'a', 'f', 't', 'e', 'r', 's',
		0x02, 'i', 'o', 0x00,
		0x00, 0x01, 0x00, 0x01,
	}

	m, err := ParseMessage(query)
	require.NoError(t, err)

	assert.Equal(t, uint16(0xBEEF), m.Header.ID)
	assert.True(t, m.Header.IsQuery())
	assert.True(t, m.Header.RD)
	require.NotNil(t, m.Question)
	assert.Equal(t, Name{"codecrafters", "io"}, m.Question.Name)
	assert.Nil(t, m.Answer)
	assert.Equal(t, netip.AddrFrom4([4]byte{}), m.Authority)
	assert.Equal(t, MaxUDPSize-len(query)-4, m.AdditionalSpace)
}

func TestParseMessage_Errors(t *testing.T) {
	header := func(qd, an byte) []byte {
		return []byte{0, 1, 0x01, 0x00, 0, qd, 0, an, 0, 0, 0, 0}
	}

	tests := []struct {
		name string
		msg  []byte
		want error
	}{
		{name: "empty", msg: nil, want: ErrTruncatedInput},
		{name: "short header", msg: []byte{0, 1, 2}, want: ErrTruncatedInput},
		{name: "oversized", msg: make([]byte, MaxUDPSize+1), want: ErrMessageTooLarge},
		{name: "two questions", msg: header(2, 0), want: ErrInvariantViolation},
		{name: "two answers", msg: header(0, 2), want: ErrInvariantViolation},
		{name: "question missing", msg: header(1, 0), want: ErrTruncatedInput},
		{name: "answer missing", msg: append(header(1, 1), 0, 0, 1, 0, 1), want: ErrTruncatedInput},
		{name: "unknown opcode", msg: []byte{0, 1, 0x38, 0, 0, 0, 0, 0, 0, 0, 0, 0}, want: ErrUnknownCode},
		{name: "unknown qtype", msg: append(header(1, 0), 0, 0, 0x77, 0, 1), want: ErrUnknownCode},
		{name: "compressed qname", msg: append(header(1, 0), 0xC0, 0x0C, 0, 1, 0, 1), want: ErrCompressedName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMessage(tt.msg)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseMessage_DoesNotAliasInput(t *testing.T) {
	b, err := sampleMessage(t).Marshal()
	require.NoError(t, err)

	m, err := ParseMessage(b)
	require.NoError(t, err)

	for i := range b {
		b[i] = 0xEE
	}
	assert.Equal(t, Name{"codecrafters", "io"}, m.Question.Name)
	assert.Equal(t, []byte{8, 8, 8, 8}, m.Answer.RData)
}
