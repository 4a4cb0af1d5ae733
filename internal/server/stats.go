package server

import (
	"sync/atomic"
	"time"
)

// Stats collects datagram counters for the UDP server.
// All methods are safe for concurrent use.
type Stats struct {
	received       atomic.Uint64
	answered       atomic.Uint64
	formErr        atomic.Uint64
	truncated      atomic.Uint64
	dropped        atomic.Uint64
	rateLimited    atomic.Uint64
	latencyTotalNs atomic.Uint64
}

// NewStats creates a new statistics collector.
func NewStats() *Stats {
	return &Stats{}
}

// RecordReceived counts a datagram read from the socket.
func (s *Stats) RecordReceived() { s.received.Add(1) }

// RecordAnswered counts a decoded query that got a normal reply.
func (s *Stats) RecordAnswered() { s.answered.Add(1) }

// RecordFormErr counts a FORMERR reply to an undecodable datagram.
func (s *Stats) RecordFormErr() { s.formErr.Add(1) }

// RecordTruncated counts a reply sent with TC set because the answer did not fit.
func (s *Stats) RecordTruncated() { s.truncated.Add(1) }

// RecordDropped counts a datagram that got no reply.
func (s *Stats) RecordDropped() { s.dropped.Add(1) }

// RecordRateLimited counts a datagram refused by admission control.
func (s *Stats) RecordRateLimited() { s.rateLimited.Add(1) }

// RecordLatency records handling time for one datagram.
func (s *Stats) RecordLatency(d time.Duration) {
	if d > 0 {
		s.latencyTotalNs.Add(uint64(d))
	}
}

// StatsSnapshot is a point-in-time copy of the counters.
type StatsSnapshot struct {
	Received     uint64
	Answered     uint64
	FormErr      uint64
	Truncated    uint64
	Dropped      uint64
	RateLimited  uint64
	AvgLatencyMs float64
}

// Snapshot returns the current statistics.
func (s *Stats) Snapshot() StatsSnapshot {
	answered := s.answered.Load()
	formErr := s.formErr.Load()
	truncated := s.truncated.Load()

	avg := 0.0
	if handled := answered + formErr + truncated; handled > 0 {
		avg = float64(s.latencyTotalNs.Load()) / float64(handled) / 1e6
	}

	return StatsSnapshot{
		Received:     s.received.Load(),
		Answered:     answered,
		FormErr:      formErr,
		Truncated:    truncated,
		Dropped:      s.dropped.Load(),
		RateLimited:  s.rateLimited.Load(),
		AvgLatencyMs: avg,
	}
}
