// Package dns encodes and decodes DNS messages carried in a fixed 512-byte
// UDP frame.
//
// Standards Compliance:
//
// The wire layout follows RFC 1035 Section 4.1: a 12-byte header, a question
// section, resource records and, in this framing, a trailing 4-byte authority
// address followed by zero padding up to the classic UDP payload limit.
//
// Cardinality:
//
// A Message holds at most one question and at most one answer record. The
// limit is part of the type (pointer fields), and the header counts are
// cross-checked against it in both directions.
//
// Name compression (RFC 1035 Section 4.1.4) is not supported. Length bytes
// carrying a pointer or a reserved label type are rejected with
// ErrCompressedName instead of being read as oversized labels.
//
// Error Handling:
//
// All errors are wrapped with context using fmt.Errorf("...: %w", err) and
// can be matched with errors.Is against the sentinels below.
package dns

import (
	"errors"
	"fmt"
)

var (
	// ErrDNSError is the root of every wire error returned by this package.
	ErrDNSError = errors.New("dns wire error")

	// ErrUnknownCode means a type, class, opcode or rcode value is outside
	// its closed enumeration.
	ErrUnknownCode = fmt.Errorf("%w: unknown code", ErrDNSError)

	// ErrTruncatedInput means the buffer ended before a field was complete.
	ErrTruncatedInput = fmt.Errorf("%w: truncated input", ErrDNSError)

	// ErrLabelTooLong means a name label exceeds 63 bytes.
	ErrLabelTooLong = fmt.Errorf("%w: label too long", ErrDNSError)

	// ErrEmptyLabel means a name contains a zero-length label before its end.
	ErrEmptyLabel = fmt.Errorf("%w: empty label", ErrDNSError)

	// ErrNameTooLong means an encoded name exceeds 255 bytes.
	ErrNameTooLong = fmt.Errorf("%w: name too long", ErrDNSError)

	// ErrCompressedName means a name uses a compression pointer or a reserved
	// label type.
	ErrCompressedName = fmt.Errorf("%w: compressed or reserved label", ErrDNSError)

	// ErrInvariantViolation means the caller supplied values that contradict
	// each other (RDLENGTH vs RDATA, header counts vs sections).
	ErrInvariantViolation = fmt.Errorf("%w: invariant violation", ErrDNSError)

	// ErrMessageTooLarge means the message does not fit the UDP frame.
	ErrMessageTooLarge = fmt.Errorf("%w: message too large", ErrDNSError)
)
