package dns

import (
	"fmt"
	"strconv"
)

// DNS header flag layout (RFC 1035 Section 4.1.1).
//
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	|QR|   Opcode  |AA|TC|RD|RA|   Z    |   RCODE   |
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	 15 14 13 12 11 10  9  8  7  6  5  4  3  2  1  0
//
// Byte 2 of the header holds bits 15-8, byte 3 holds bits 7-0.
const (
	qrShift     = 7    // byte 2
	opcodeShift = 3    // byte 2
	opcodeMask  = 0x0F // 4 bits
	aaShift     = 2    // byte 2
	tcShift     = 1    // byte 2
	raShift     = 7    // byte 3
	zShift      = 4    // byte 3
	zMask       = 0x07 // 3 bits
	rcodeMask   = 0x0F // 4 bits
)

// QR tells queries and responses apart. It is a single bit, so every wire
// value maps to one of the two variants.
type QR uint8

const (
	QRQuery    QR = 0
	QRResponse QR = 1
)

func (q QR) String() string {
	if q == QRResponse {
		return "RESPONSE"
	}
	return "QUERY"
}

// Opcode is the 4-bit operation code of the header.
type Opcode uint8

const (
	OpcodeQuery      Opcode = 0
	OpcodeIQuery     Opcode = 1
	OpcodeStatus     Opcode = 2
	OpcodeUnassigned Opcode = 3
	OpcodeNotify     Opcode = 4 // RFC 1996
	OpcodeUpdate     Opcode = 5 // RFC 2136
	OpcodeDSO        Opcode = 6 // RFC 8490
)

var opcodeNames = map[Opcode]string{
	OpcodeQuery:      "QUERY",
	OpcodeIQuery:     "IQUERY",
	OpcodeStatus:     "STATUS",
	OpcodeUnassigned: "UNASSIGNED",
	OpcodeNotify:     "NOTIFY",
	OpcodeUpdate:     "UPDATE",
	OpcodeDSO:        "DSO",
}

// ParseOpcode validates a 4-bit opcode value.
func ParseOpcode(v uint8) (Opcode, error) {
	op := Opcode(v)
	if _, ok := opcodeNames[op]; !ok {
		return 0, fmt.Errorf("%w: opcode %d", ErrUnknownCode, v)
	}
	return op, nil
}

func (o Opcode) String() string {
	if s, ok := opcodeNames[o]; ok {
		return s
	}
	return "OPCODE" + strconv.Itoa(int(o))
}

// RCode is the 4-bit response code of the header.
type RCode uint8

const (
	RCodeNoError   RCode = 0  // No error
	RCodeFormErr   RCode = 1  // Format error: query malformed
	RCodeServFail  RCode = 2  // Server failure
	RCodeNXDomain  RCode = 3  // Non-existent domain
	RCodeNotImp    RCode = 4  // Not implemented
	RCodeRefused   RCode = 5  // Query refused by policy
	RCodeYXDomain  RCode = 6  // Name exists when it should not
	RCodeYXRRSet   RCode = 7  // RR set exists when it should not
	RCodeNXRRSet   RCode = 8  // RR set should exist but does not
	RCodeNotAuth   RCode = 9  // Not authoritative
	RCodeNotZone   RCode = 10 // Name not contained in zone
	RCodeDSOTypeNI RCode = 11 // DSO-TYPE not implemented
)

var rcodeNames = map[RCode]string{
	RCodeNoError:   "NOERROR",
	RCodeFormErr:   "FORMERR",
	RCodeServFail:  "SERVFAIL",
	RCodeNXDomain:  "NXDOMAIN",
	RCodeNotImp:    "NOTIMP",
	RCodeRefused:   "REFUSED",
	RCodeYXDomain:  "YXDOMAIN",
	RCodeYXRRSet:   "YXRRSET",
	RCodeNXRRSet:   "NXRRSET",
	RCodeNotAuth:   "NOTAUTH",
	RCodeNotZone:   "NOTZONE",
	RCodeDSOTypeNI: "DSOTYPENI",
}

// ParseRCode validates a 4-bit response code value.
func ParseRCode(v uint8) (RCode, error) {
	rc := RCode(v)
	if _, ok := rcodeNames[rc]; !ok {
		return 0, fmt.Errorf("%w: rcode %d", ErrUnknownCode, v)
	}
	return rc, nil
}

func (r RCode) String() string {
	if s, ok := rcodeNames[r]; ok {
		return s
	}
	return "RCODE" + strconv.Itoa(int(r))
}

// Type represents DNS resource record types (RFC 1035, RFC 3596 and later).
type Type uint16

const (
	TypeA          Type = 1   // IPv4 address
	TypeNS         Type = 2   // Authoritative name server
	TypeCNAME      Type = 5   // Canonical name (alias)
	TypeSOA        Type = 6   // Start of Authority
	TypePTR        Type = 12  // Domain name pointer
	TypeMX         Type = 15  // Mail exchange
	TypeTXT        Type = 16  // Text strings
	TypeAAAA       Type = 28  // IPv6 address
	TypeSRV        Type = 33  // Service locator
	TypeNAPTR      Type = 35  // Naming authority pointer
	TypeDS         Type = 43  // Delegation signer
	TypeRRSIG      Type = 46  // DNSSEC signature
	TypeDNSKEY     Type = 48  // DNSSEC key
	TypeNSEC3      Type = 50  // Hashed authenticated denial
	TypeNSEC3PARAM Type = 51  // NSEC3 parameters
	TypeTLSA       Type = 52  // TLS certificate association
	TypeANY        Type = 255 // Any type (QTYPE only)
	TypeCAA        Type = 257 // Certification authority authorization
)

var typeNames = map[Type]string{
	TypeA:          "A",
	TypeNS:         "NS",
	TypeCNAME:      "CNAME",
	TypeSOA:        "SOA",
	TypePTR:        "PTR",
	TypeMX:         "MX",
	TypeTXT:        "TXT",
	TypeAAAA:       "AAAA",
	TypeSRV:        "SRV",
	TypeNAPTR:      "NAPTR",
	TypeDS:         "DS",
	TypeRRSIG:      "RRSIG",
	TypeDNSKEY:     "DNSKEY",
	TypeNSEC3:      "NSEC3",
	TypeNSEC3PARAM: "NSEC3PARAM",
	TypeTLSA:       "TLSA",
	TypeANY:        "ANY",
	TypeCAA:        "CAA",
}

// ParseType validates a 16-bit record type code. Unknown codes are an error;
// callers that want a fallback type must choose it themselves.
func ParseType(v uint16) (Type, error) {
	t := Type(v)
	if _, ok := typeNames[t]; !ok {
		return 0, fmt.Errorf("%w: type %d", ErrUnknownCode, v)
	}
	return t, nil
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "TYPE" + strconv.Itoa(int(t))
}

// Class represents DNS classes (RFC 1035 Section 3.2.4).
type Class uint16

const (
	ClassIN  Class = 1   // Internet
	ClassCS  Class = 2   // CSNET (obsolete)
	ClassCH  Class = 3   // Chaos
	ClassHS  Class = 4   // Hesiod
	ClassANY Class = 255 // Any class (QCLASS only)
)

var classNames = map[Class]string{
	ClassIN:  "IN",
	ClassCS:  "CS",
	ClassCH:  "CH",
	ClassHS:  "HS",
	ClassANY: "ANY",
}

// ParseClass validates a 16-bit class code.
func ParseClass(v uint16) (Class, error) {
	c := Class(v)
	if _, ok := classNames[c]; !ok {
		return 0, fmt.Errorf("%w: class %d", ErrUnknownCode, v)
	}
	return c, nil
}

func (c Class) String() string {
	if s, ok := classNames[c]; ok {
		return s
	}
	return "CLASS" + strconv.Itoa(int(c))
}
