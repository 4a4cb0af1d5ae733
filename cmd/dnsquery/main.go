// Command dnsquery sends one UDP query and prints the decoded 512-byte reply.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"
)

func main() {
	var (
		server  = flag.String("server", "127.0.0.1:2053", "DNS server HOST:PORT")
		name    = flag.String("name", "codecrafters.io", "Query name")
		qtype   = flag.String("type", "A", "Query type mnemonic (A, AAAA, MX, ...)")
		noRD    = flag.Bool("no-rd", false, "Clear the recursion desired bit")
		timeout = flag.Duration("timeout", 2*time.Second, "Timeout")
		quiet   = flag.Bool("quiet", false, "Suppress output (exit status indicates success)")
	)
	flag.Parse()

	req, err := buildQuery(*name, *qtype, !*noRD)
	if err != nil {
		fail(*quiet, err)
	}

	resp, err := queryUDP(*server, req, *timeout)
	if err != nil {
		fail(*quiet, err)
	}
	if *quiet {
		return
	}

	out, err := formatReply(resp)
	if err != nil {
		fmt.Printf("received %d bytes (unparseable: %v)\n", len(resp), err)
		os.Exit(1)
	}
	fmt.Print(out)
}

func fail(quiet bool, err error) {
	if !quiet {
		fmt.Fprintf(os.Stderr, "dnsquery error: %v\n", err)
	}
	os.Exit(1)
}
