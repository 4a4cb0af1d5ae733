// Package server implements the framedns UDP responder: the answer policy,
// per-datagram handling, admission control and the listener itself.
package server

import (
	"net/netip"

	"github.com/jroosing/framedns/internal/dns"
	"github.com/jroosing/framedns/internal/helpers"
)

// Responder builds the reply for a decoded query.
//
// Every QUERY that carries a question is answered with a single A record for
// the question name. Other opcodes get NOTIMP with the question echoed.
type Responder struct {
	Address   netip.Addr // address in the A answer
	TTL       uint32     // answer TTL in seconds
	Authority netip.Addr // address written after the answer section
}

// NewResponder returns a Responder. ttl is clamped to the uint32 range.
func NewResponder(address, authority netip.Addr, ttl int) *Responder {
	return &Responder{
		Address:   address,
		TTL:       helpers.ClampIntToUint32(ttl),
		Authority: authority,
	}
}

// Respond returns the response message for query. The result always carries
// a header consistent with its sections.
func (r *Responder) Respond(query dns.Message) (dns.Message, error) {
	h := dns.Header{
		ID:     query.Header.ID,
		QR:     dns.QRResponse,
		Opcode: query.Header.Opcode,
		RD:     query.Header.RD,
		RCode:  dns.RCodeNoError,
	}
	if query.Header.Opcode != dns.OpcodeQuery {
		h.RCode = dns.RCodeNotImp
	}

	resp := dns.Message{Header: h, Authority: r.Authority}
	if query.Question != nil {
		q := *query.Question
		resp.Question = &q
		resp.Header.QDCount = 1

		if h.RCode == dns.RCodeNoError {
			answer, err := dns.NewARecord(q.Name, r.Address, r.TTL)
			if err != nil {
				return dns.Message{}, err
			}
			resp.Answer = &answer
			resp.Header.ANCount = 1
		}
	}
	return resp, nil
}

// FormErrResponse builds a FORMERR frame for a datagram that failed to
// decode. ID, opcode and RD are taken from the raw header bytes. It reports
// false when the datagram is too short to carry a header or has QR set, so
// malformed responses are dropped like well-formed ones.
func FormErrResponse(datagram []byte) ([]byte, bool) {
	if len(datagram) < dns.HeaderSize {
		return nil, false
	}
	byte2 := datagram[2]
	if byte2&0x80 != 0 {
		return nil, false
	}
	h := dns.Header{
		ID:     uint16(datagram[0])<<8 | uint16(datagram[1]),
		QR:     dns.QRResponse,
		Opcode: dns.Opcode(byte2 >> 3 & 0x0F),
		RD:     byte2&0x01 != 0,
		RCode:  dns.RCodeFormErr,
	}
	if _, err := dns.ParseOpcode(uint8(h.Opcode)); err != nil {
		// Unknown opcodes cannot be echoed.
		h.Opcode = dns.OpcodeQuery
	}
	b, err := dns.Message{Header: h}.Marshal()
	if err != nil {
		return nil, false
	}
	return b, true
}
