package dns

import (
	"encoding/binary"
	"fmt"
	"net/netip"
)

// rrFixedSize is TYPE(2) + CLASS(2) + TTL(4) + RDLENGTH(2).
const rrFixedSize = 10

// Record is a resource record (RFC 1035 Section 4.1.3).
//
// RData is opaque. The only shape this package interprets is the 4-byte
// IPv4 address of an A record; see NewARecord and IPv4.
type Record struct {
	Name     Name
	Type     Type
	Class    Class
	TTL      uint32
	RDLength uint16 // must equal len(RData)
	RData    []byte
}

// NewARecord builds an IN A record for addr. IPv4-mapped IPv6 addresses are
// unmapped first.
func NewARecord(name Name, addr netip.Addr, ttl uint32) (Record, error) {
	addr = addr.Unmap()
	if !addr.Is4() {
		return Record{}, fmt.Errorf("%w: A record needs an IPv4 address, got %s", ErrInvariantViolation, addr)
	}
	ip := addr.As4()
	return Record{
		Name:     name,
		Type:     TypeA,
		Class:    ClassIN,
		TTL:      ttl,
		RDLength: 4,
		RData:    ip[:],
	}, nil
}

// IPv4 returns the address held by an A record.
func (r Record) IPv4() (netip.Addr, bool) {
	if r.Type != TypeA || len(r.RData) != 4 {
		return netip.Addr{}, false
	}
	return netip.AddrFrom4([4]byte(r.RData)), true
}

// Marshal converts the record to wire-format bytes.
//
// RDLength is written as given; a value that disagrees with len(RData) is a
// caller bug and fails with ErrInvariantViolation instead of producing a
// frame peers would misparse.
func (r Record) Marshal() ([]byte, error) {
	if len(r.RData) != int(r.RDLength) {
		return nil, fmt.Errorf("%w: rdlength %d but %d bytes of rdata", ErrInvariantViolation, r.RDLength, len(r.RData))
	}
	size, err := r.Name.encodedLen()
	if err != nil {
		return nil, err
	}
	out := appendName(make([]byte, 0, size+rrFixedSize+len(r.RData)), r.Name)
	out = binary.BigEndian.AppendUint16(out, uint16(r.Type))
	out = binary.BigEndian.AppendUint16(out, uint16(r.Class))
	out = binary.BigEndian.AppendUint32(out, r.TTL)
	out = binary.BigEndian.AppendUint16(out, r.RDLength)
	out = append(out, r.RData...)
	return out, nil
}

// ParseRecord parses a resource record from wire format.
// It advances *off past the parsed record on success only.
func ParseRecord(msg []byte, off *int) (Record, error) {
	pos := *off
	name, err := DecodeName(msg, &pos)
	if err != nil {
		return Record{}, err
	}
	if pos+rrFixedSize > len(msg) {
		return Record{}, fmt.Errorf("%w: reading record fields", ErrTruncatedInput)
	}
	rrType, err := ParseType(binary.BigEndian.Uint16(msg[pos : pos+2]))
	if err != nil {
		return Record{}, fmt.Errorf("record %s: %w", name, err)
	}
	rrClass, err := ParseClass(binary.BigEndian.Uint16(msg[pos+2 : pos+4]))
	if err != nil {
		return Record{}, fmt.Errorf("record %s: %w", name, err)
	}
	ttl := binary.BigEndian.Uint32(msg[pos+4 : pos+8])
	rdlen := binary.BigEndian.Uint16(msg[pos+8 : pos+10])
	pos += rrFixedSize

	if pos+int(rdlen) > len(msg) {
		return Record{}, fmt.Errorf("%w: reading %d bytes of rdata", ErrTruncatedInput, rdlen)
	}
	rdata := make([]byte, rdlen)
	copy(rdata, msg[pos:pos+int(rdlen)])
	pos += int(rdlen)

	*off = pos
	return Record{
		Name:     name,
		Type:     rrType,
		Class:    rrClass,
		TTL:      ttl,
		RDLength: rdlen,
		RData:    rdata,
	}, nil
}
