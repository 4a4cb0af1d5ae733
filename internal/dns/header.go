package dns

import (
	"encoding/binary"
	"fmt"
)

// Header represents a DNS message header (RFC 1035 Section 4.1.1).
//
// The flag word is kept unpacked so every field can be inspected and set
// directly. Z is the 3-bit reserved field; it is carried as given.
type Header struct {
	ID      uint16 // Transaction ID, echoed from query to response
	QR      QR
	Opcode  Opcode
	AA      bool // Authoritative Answer
	TC      bool // Truncation
	RD      bool // Recursion Desired
	RA      bool // Recursion Available
	Z       uint8
	RCode   RCode
	QDCount uint16 // Question count
	ANCount uint16 // Answer count
	NSCount uint16 // Authority (nameserver) count
	ARCount uint16 // Additional records count
}

// HeaderSize is the fixed size of a DNS header in bytes.
const HeaderSize = 12

// Marshal packs the header into its 12-byte wire form.
func (h Header) Marshal() [HeaderSize]byte {
	var b [HeaderSize]byte
	binary.BigEndian.PutUint16(b[0:2], h.ID)
	b[2] = byte(h.QR&1)<<qrShift |
		byte(h.Opcode&opcodeMask)<<opcodeShift |
		bit(h.AA)<<aaShift |
		bit(h.TC)<<tcShift |
		bit(h.RD)
	b[3] = bit(h.RA)<<raShift |
		(h.Z&zMask)<<zShift |
		byte(h.RCode&rcodeMask)
	binary.BigEndian.PutUint16(b[4:6], h.QDCount)
	binary.BigEndian.PutUint16(b[6:8], h.ANCount)
	binary.BigEndian.PutUint16(b[8:10], h.NSCount)
	binary.BigEndian.PutUint16(b[10:12], h.ARCount)
	return b
}

// ParseHeader parses a DNS header from the message at the given offset.
// It advances *off by 12 bytes on success and leaves it untouched on error.
//
// Opcode and rcode values outside their enumerations are rejected rather
// than coerced, so the caller can answer FORMERR.
func ParseHeader(msg []byte, off *int) (Header, error) {
	if *off < 0 || *off+HeaderSize > len(msg) {
		return Header{}, fmt.Errorf("%w: reading header", ErrTruncatedInput)
	}
	b := msg[*off : *off+HeaderSize]

	opcode, err := ParseOpcode((b[2] >> opcodeShift) & opcodeMask)
	if err != nil {
		return Header{}, err
	}
	rcode, err := ParseRCode(b[3] & rcodeMask)
	if err != nil {
		return Header{}, err
	}

	h := Header{
		ID:      binary.BigEndian.Uint16(b[0:2]),
		QR:      QR(b[2] >> qrShift),
		Opcode:  opcode,
		AA:      b[2]>>aaShift&1 == 1,
		TC:      b[2]>>tcShift&1 == 1,
		RD:      b[2]&1 == 1,
		RA:      b[3]>>raShift&1 == 1,
		Z:       (b[3] >> zShift) & zMask,
		RCode:   rcode,
		QDCount: binary.BigEndian.Uint16(b[4:6]),
		ANCount: binary.BigEndian.Uint16(b[6:8]),
		NSCount: binary.BigEndian.Uint16(b[8:10]),
		ARCount: binary.BigEndian.Uint16(b[10:12]),
	}
	*off += HeaderSize
	return h, nil
}

// IsQuery returns true if this is a query (QR=0).
func (h Header) IsQuery() bool {
	return h.QR == QRQuery
}

// IsResponse returns true if this is a response (QR=1).
func (h Header) IsResponse() bool {
	return h.QR == QRResponse
}

func bit(v bool) byte {
	if v {
		return 1
	}
	return 0
}
