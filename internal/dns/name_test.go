package dns

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeName(t *testing.T) {
	b, err := EncodeName(Name{"codecrafters", "io"})
	require.NoError(t, err)
	exp := []byte{
		0x0C, 0x63, 0x6F, 0x64, 0x65, 0x63, 0x72, 0x61, 0x66, 0x74, 0x65, 0x72, 0x73,
		0x02, 0x69, 0x6F,
		0x00,
	}
	assert.Equal(t, exp, b)
}

func TestEncodeName_Root(t *testing.T) {
	b, err := EncodeName(Name{})
	require.NoError(t, err)
	assert.Equal(t, []byte{0}, b)
}

func TestEncodeName_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   Name
		want error
	}{
		{name: "label 64 bytes", in: Name{strings.Repeat("a", 64), "com"}, want: ErrLabelTooLong},
		{name: "empty label", in: Name{"www", "", "com"}, want: ErrEmptyLabel},
		{name: "over 255 bytes", in: Name{
			strings.Repeat("a", 63), strings.Repeat("b", 63),
			strings.Repeat("c", 63), strings.Repeat("d", 63),
		}, want: ErrNameTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EncodeName(tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestEncodeName_MaxLabel(t *testing.T) {
	label := strings.Repeat("x", MaxLabelLength)
	b, err := EncodeName(Name{label})
	require.NoError(t, err)
	assert.Equal(t, byte(63), b[0])
	assert.Len(t, b, 1+63+1)
}

func TestDecodeName_Uncompressed(t *testing.T) {
	msg := []byte{3, 'w', 'w', 'w', 7, 'e', 'x', 'a', 'm', 'p', 'l', 'e', 3, 'c', 'o', 'm', 0}
	off := 0
	n, err := DecodeName(msg, &off)
	require.NoError(t, err)
	assert.Equal(t, Name{"www", "example", "com"}, n)
	assert.Equal(t, len(msg), off)
}

func TestDecodeName_AtOffset(t *testing.T) {
	msg := []byte{0xFF, 0xFF, 2, 'i', 'o', 0, 0xAA}
	off := 2
	n, err := DecodeName(msg, &off)
	require.NoError(t, err)
	assert.Equal(t, Name{"io"}, n)
	assert.Equal(t, 6, off, "consumed includes the terminator")
}

func TestDecodeName_PreservesCase(t *testing.T) {
	msg := []byte{3, 'W', 'w', 'W', 0}
	off := 0
	n, err := DecodeName(msg, &off)
	require.NoError(t, err)
	assert.Equal(t, Name{"WwW"}, n)
	assert.False(t, n.Equal(Name{"www"}))
}

func TestDecodeName_Truncated(t *testing.T) {
	tests := []struct {
		name string
		msg  []byte
	}{
		{name: "empty", msg: []byte{}},
		{name: "no terminator", msg: []byte{3, 'w', 'w', 'w'}},
		{name: "label past end", msg: []byte{7, 'e', 'x'}},
		{name: "second label past end", msg: []byte{2, 'i', 'o', 5, 'a'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			off := 0
			_, err := DecodeName(tt.msg, &off)
			assert.ErrorIs(t, err, ErrTruncatedInput)
			assert.Equal(t, 0, off)
		})
	}
}

func TestDecodeName_CompressionRejected(t *testing.T) {
	for _, lead := range []byte{0xC0, 0x40, 0x80} {
		msg := []byte{2, 'i', 'o', lead, 0x0C}
		off := 0
		_, err := DecodeName(msg, &off)
		assert.ErrorIs(t, err, ErrCompressedName, "lead byte 0x%02x", lead)
	}
}

func TestDecodeName_TooLong(t *testing.T) {
	var msg []byte
	for range 5 {
		msg = append(msg, 63)
		msg = append(msg, strings.Repeat("a", 63)...)
	}
	msg = append(msg, 0)

	off := 0
	_, err := DecodeName(msg, &off)
	assert.ErrorIs(t, err, ErrNameTooLong)
}

func TestNameRoundTrip(t *testing.T) {
	names := []Name{
		{},
		{"io"},
		{"codecrafters", "io"},
		{"a", "b", "c", "d", "e"},
		{strings.Repeat("z", 63), "Mixed-Case", "with_underscore"},
		{"\x01\x7f\xff", "bin"},
	}

	for _, n := range names {
		t.Run(n.String(), func(t *testing.T) {
			b, err := EncodeName(n)
			require.NoError(t, err)

			off := 0
			decoded, err := DecodeName(b, &off)
			require.NoError(t, err)
			assert.True(t, n.Equal(decoded), "got %v want %v", decoded, n)
			assert.Equal(t, len(b), off)
		})
	}
}

func TestParseName(t *testing.T) {
	tests := []struct {
		in   string
		want Name
	}{
		{in: "codecrafters.io", want: Name{"codecrafters", "io"}},
		{in: "codecrafters.io.", want: Name{"codecrafters", "io"}},
		{in: "Example.COM", want: Name{"example", "com"}},
		{in: "bücher.example", want: Name{"xn--bcher-kva", "example"}},
		{in: "BÜCHER.example", want: Name{"xn--bcher-kva", "example"}},
		{in: "_sip._tcp.example.com", want: Name{"_sip", "_tcp", "example", "com"}},
		{in: "a_b.example.com", want: Name{"a_b", "example", "com"}},
		{in: ".", want: Name{}},
		{in: "", want: Name{}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			n, err := ParseName(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestParseName_Invalid(t *testing.T) {
	_, err := ParseName("www..example.com")
	assert.Error(t, err)

	_, err = ParseName(strings.Repeat("a", 64) + ".com")
	assert.Error(t, err)

	_, err = ParseName("_sip.bücher.example")
	assert.ErrorIs(t, err, ErrDNSError)
}

func TestNameString(t *testing.T) {
	assert.Equal(t, ".", Name{}.String())
	assert.Equal(t, "codecrafters.io", Name{"codecrafters", "io"}.String())
	assert.Equal(t, "io", MustParseName("io").String())
}
