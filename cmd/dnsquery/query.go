package main

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	mdns "github.com/miekg/dns"

	"github.com/jroosing/framedns/internal/dns"
)

// recvSize leaves room to notice a reply larger than one frame.
const recvSize = 2 * dns.MaxUDPSize

// buildQuery packs a single-question query with miekg/dns. Unicode names
// are sent in their punycode form.
func buildQuery(name, qtype string, rd bool) ([]byte, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("name required")
	}
	qname, err := dns.ParseName(name)
	if err != nil {
		return nil, err
	}
	t, ok := mdns.StringToType[strings.ToUpper(qtype)]
	if !ok {
		return nil, fmt.Errorf("unknown query type %q", qtype)
	}

	m := new(mdns.Msg)
	m.SetQuestion(mdns.Fqdn(qname.String()), t)
	m.RecursionDesired = rd
	return m.Pack()
}

func queryUDP(server string, req []byte, timeout time.Duration) ([]byte, error) {
	c, err := net.DialTimeout("udp", server, timeout)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	_ = c.SetDeadline(time.Now().Add(timeout))
	if _, err := c.Write(req); err != nil {
		return nil, err
	}
	buf := make([]byte, recvSize)
	n, err := c.Read(buf)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

// formatReply decodes a frame with the framedns codec and renders it in a
// dig-like layout.
func formatReply(frame []byte) (string, error) {
	m, err := dns.ParseMessage(frame)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	h := m.Header
	fmt.Fprintf(&b, "id=%d opcode=%s rcode=%s qr=%s aa=%t tc=%t rd=%t ra=%t\n",
		h.ID, h.Opcode, h.RCode, h.QR, h.AA, h.TC, h.RD, h.RA)
	fmt.Fprintf(&b, "bytes=%d unused=%d\n", len(frame), m.AdditionalSpace)

	if q := m.Question; q != nil {
		fmt.Fprintf(&b, "question: %s %s %s\n", q.Name, q.Class, q.Type)
	}
	if rr := m.Answer; rr != nil {
		if ip, ok := rr.IPv4(); ok {
			fmt.Fprintf(&b, "answer: %s %d %s %s %s\n", rr.Name, rr.TTL, rr.Class, rr.Type, ip)
		} else {
			fmt.Fprintf(&b, "answer: %s %d %s %s (%d bytes)\n", rr.Name, rr.TTL, rr.Class, rr.Type, rr.RDLength)
		}
	}
	if m.Authority.IsValid() {
		fmt.Fprintf(&b, "authority: %s\n", m.Authority)
	}
	return b.String(), nil
}
