package dns

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/idna"
)

// Name limits (RFC 1035 Section 2.3.4).
const (
	MaxLabelLength = 63
	MaxNameLength  = 255
)

// Name is a domain name as an ordered list of labels, without the root
// terminator. The root name is the empty list.
//
// Labels are raw bytes and are never case-folded: a name decoded from the
// wire compares equal only to the same label sequence.
type Name []string

// ParseName converts dotted text into a Name, lowercased. A trailing dot is
// accepted; "" and "." are the root name.
//
// ASCII input is split as is, so service labels such as "_sip" survive.
// Anything else goes through IDNA lookup processing and comes out in its
// punycode form; the STD3 rules of that processing reject "_" in such names.
func ParseName(s string) (Name, error) {
	s = strings.TrimSuffix(s, ".")
	if s == "" {
		return Name{}, nil
	}
	ascii := strings.ToLower(s)
	if !isASCII(s) {
		var err error
		if ascii, err = idna.Lookup.ToASCII(s); err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrDNSError, s, err)
		}
	}
	n := Name(strings.Split(ascii, "."))
	if _, err := n.encodedLen(); err != nil {
		return nil, err
	}
	return n, nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// MustParseName is like ParseName but panics on error. Use it for constants.
func MustParseName(s string) Name {
	n, err := ParseName(s)
	if err != nil {
		panic(err)
	}
	return n
}

// String returns the dotted form without a trailing dot, or "." for root.
func (n Name) String() string {
	if len(n) == 0 {
		return "."
	}
	return strings.Join(n, ".")
}

// Equal reports whether both names have the same label sequence.
func (n Name) Equal(other Name) bool {
	if len(n) != len(other) {
		return false
	}
	for i := range n {
		if n[i] != other[i] {
			return false
		}
	}
	return true
}

// encodedLen validates the labels and returns the wire length of the name.
func (n Name) encodedLen() (int, error) {
	size := 1 // terminator
	for _, label := range n {
		if len(label) == 0 {
			return 0, fmt.Errorf("%w: in %q", ErrEmptyLabel, n.String())
		}
		if len(label) > MaxLabelLength {
			return 0, fmt.Errorf("%w: %d > %d: %q", ErrLabelTooLong, len(label), MaxLabelLength, label)
		}
		size += 1 + len(label)
	}
	if size > MaxNameLength {
		return 0, fmt.Errorf("%w: %d > %d", ErrNameTooLong, size, MaxNameLength)
	}
	return size, nil
}

// EncodeName encodes a domain name to DNS wire format (RFC 1035 Section 3.1).
//
// Each label is written as one length byte followed by its bytes, and the
// name ends with a zero-length label:
//
//	["codecrafters", "io"] -> 0x0C "codecrafters" 0x02 "io" 0x00
func EncodeName(n Name) ([]byte, error) {
	size, err := n.encodedLen()
	if err != nil {
		return nil, err
	}
	return appendName(make([]byte, 0, size), n), nil
}

// appendName appends an already validated name.
func appendName(out []byte, n Name) []byte {
	for _, label := range n {
		out = append(out, byte(len(label)))
		out = append(out, label...)
	}
	return append(out, 0)
}

// DecodeName decodes an uncompressed name starting at *off and advances *off
// past the terminator. On error *off is left untouched.
//
// A length byte with either of the two high bits set is a compression
// pointer (11) or a reserved label type (01, 10). Both are rejected with
// ErrCompressedName.
func DecodeName(msg []byte, off *int) (Name, error) {
	pos := *off
	if pos < 0 {
		return nil, fmt.Errorf("%w: negative offset", ErrTruncatedInput)
	}

	labels := make(Name, 0, 4)
	size := 1
	for {
		if pos >= len(msg) {
			return nil, fmt.Errorf("%w: name has no terminator", ErrTruncatedInput)
		}
		labelLen := int(msg[pos])
		pos++

		if labelLen == 0 {
			break
		}
		if labelLen&0xC0 != 0 {
			return nil, fmt.Errorf("%w: length byte 0x%02x at offset %d", ErrCompressedName, labelLen, pos-1)
		}
		if pos+labelLen > len(msg) {
			return nil, fmt.Errorf("%w: reading %d-byte label", ErrTruncatedInput, labelLen)
		}
		size += 1 + labelLen
		if size > MaxNameLength {
			return nil, fmt.Errorf("%w: exceeds %d bytes", ErrNameTooLong, MaxNameLength)
		}
		labels = append(labels, string(msg[pos:pos+labelLen]))
		pos += labelLen
	}

	*off = pos
	return labels, nil
}
