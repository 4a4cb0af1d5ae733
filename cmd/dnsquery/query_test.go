package main

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jroosing/framedns/internal/dns"
)

func TestBuildQuery(t *testing.T) {
	b, err := buildQuery("codecrafters.io", "a", true)
	require.NoError(t, err)

	m, err := dns.ParseMessage(b)
	require.NoError(t, err)
	assert.True(t, m.Header.RD)
	require.NotNil(t, m.Question)
	assert.Equal(t, dns.Name{"codecrafters", "io"}, m.Question.Name)
	assert.Equal(t, dns.TypeA, m.Question.Type)
}

func TestBuildQuery_UnicodeName(t *testing.T) {
	b, err := buildQuery("Bücher.example", "AAAA", false)
	require.NoError(t, err)

	m, err := dns.ParseMessage(b)
	require.NoError(t, err)
	assert.False(t, m.Header.RD)
	require.NotNil(t, m.Question)
	assert.Equal(t, dns.Name{"xn--bcher-kva", "example"}, m.Question.Name)
	assert.Equal(t, dns.TypeAAAA, m.Question.Type)
}

func TestBuildQuery_Errors(t *testing.T) {
	_, err := buildQuery("  ", "A", true)
	assert.Error(t, err)

	_, err = buildQuery("www..example.com", "A", true)
	assert.ErrorIs(t, err, dns.ErrEmptyLabel)

	_, err = buildQuery("example.com", "BOGUS", true)
	assert.Error(t, err)
}

func TestFormatReply(t *testing.T) {
	name := dns.Name{"codecrafters", "io"}
	answer, err := dns.NewARecord(name, netip.MustParseAddr("8.8.8.8"), 60)
	require.NoError(t, err)
	frame, err := dns.Message{
		Header:    dns.Header{ID: 7, QR: dns.QRResponse, QDCount: 1, ANCount: 1},
		Question:  &dns.Question{Name: name, Type: dns.TypeA, Class: dns.ClassIN},
		Answer:    &answer,
		Authority: netip.MustParseAddr("127.0.0.1"),
	}.Marshal()
	require.NoError(t, err)

	out, err := formatReply(frame)
	require.NoError(t, err)
	assert.Contains(t, out, "id=7 opcode=QUERY rcode=NOERROR qr=RESPONSE")
	assert.Contains(t, out, "question: codecrafters.io IN A")
	assert.Contains(t, out, "answer: codecrafters.io 60 IN A 8.8.8.8")
	assert.Contains(t, out, "authority: 127.0.0.1")
	assert.Contains(t, out, "bytes=512")
}

func TestFormatReply_Garbage(t *testing.T) {
	_, err := formatReply([]byte{1, 2, 3})
	assert.ErrorIs(t, err, dns.ErrTruncatedInput)
}
