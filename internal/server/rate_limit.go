package server

import (
	"fmt"
	"math"
	"net/netip"
	"sync"
	"time"

	"github.com/jroosing/framedns/internal/config"
)

// Admission control runs before a datagram is decoded. A source must pass a
// server-wide bucket and then its own per-IP bucket. Both are token buckets:
// short bursts up to Burst are allowed while the long-run rate stays at Rate.

// RateLimiter combines the global and per-IP token buckets.
type RateLimiter struct {
	global *TokenBucketRateLimiter
	ip     *TokenBucketRateLimiter
}

// NewRateLimiter creates a RateLimiter from configuration.
func NewRateLimiter(s config.RateLimitConfig) *RateLimiter {
	cleanup := time.Duration(math.Max(0, s.CleanupSeconds) * float64(time.Second))

	return &RateLimiter{
		global: NewTokenBucketRateLimiter(TokenBucketConfig{
			Rate:            s.GlobalQPS,
			Burst:           s.GlobalBurst,
			CleanupInterval: cleanup,
			MaxEntries:      1,
		}),
		ip: NewTokenBucketRateLimiter(TokenBucketConfig{
			Rate:            s.IPQPS,
			Burst:           s.IPBurst,
			CleanupInterval: cleanup,
			MaxEntries:      s.MaxIPEntries,
		}),
	}
}

// AllowAddr reports whether a datagram from ip may be processed.
// A nil RateLimiter allows everything.
func (r *RateLimiter) AllowAddr(ip netip.Addr) bool {
	if r == nil {
		return true
	}
	if !r.global.Allow(netip.Addr{}) {
		return false
	}
	return r.ip.Allow(ip.Unmap())
}

// FormatRateLimitsLog returns a one-line summary of the limits.
func FormatRateLimitsLog(s config.RateLimitConfig) string {
	fmtLimiter := func(name string, rate float64, burst int) string {
		if rate <= 0 || burst <= 0 {
			return name + "=disabled"
		}
		return fmt.Sprintf("%s=%gqps/%d", name, rate, burst)
	}
	return fmt.Sprintf("%s %s cleanup_s=%g max_ip=%d",
		fmtLimiter("global", s.GlobalQPS, s.GlobalBurst),
		fmtLimiter("ip", s.IPQPS, s.IPBurst),
		s.CleanupSeconds,
		s.MaxIPEntries,
	)
}

// TokenBucketConfig configures a token bucket rate limiter.
type TokenBucketConfig struct {
	Rate            float64       // Tokens replenished per second
	Burst           int           // Bucket capacity
	CleanupInterval time.Duration // How often idle buckets are dropped (default 60s)
	MaxEntries      int           // Maximum tracked keys
}

type bucket struct {
	tokens float64
	last   time.Time
}

// TokenBucketRateLimiter keeps one token bucket per address.
// Rate or Burst <= 0 disables the limiter.
type TokenBucketRateLimiter struct {
	rate            float64
	burst           float64
	cleanupInterval time.Duration
	maxEntries      int
	now             func() time.Time

	mu          sync.Mutex
	lastCleanup time.Time
	buckets     map[netip.Addr]*bucket
}

// NewTokenBucketRateLimiter creates a limiter with the given configuration.
func NewTokenBucketRateLimiter(cfg TokenBucketConfig) *TokenBucketRateLimiter {
	ci := cfg.CleanupInterval
	if ci <= 0 {
		ci = 60 * time.Second
	}
	return &TokenBucketRateLimiter{
		rate:            cfg.Rate,
		burst:           float64(cfg.Burst),
		cleanupInterval: ci,
		maxEntries:      max(cfg.MaxEntries, 1),
		now:             time.Now,
		lastCleanup:     time.Now(),
		buckets:         make(map[netip.Addr]*bucket),
	}
}

// Allow consumes a token for key and reports whether one was available.
func (l *TokenBucketRateLimiter) Allow(key netip.Addr) bool {
	if l == nil || l.rate <= 0 || l.burst <= 0 {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastCleanup) > l.cleanupInterval {
		l.cleanupLocked(now)
	}

	b, ok := l.buckets[key]
	if !ok {
		if len(l.buckets) >= l.maxEntries {
			l.cleanupLocked(now)
			if len(l.buckets) >= l.maxEntries {
				return false
			}
		}
		l.buckets[key] = &bucket{tokens: l.burst - 1, last: now}
		return true
	}

	if elapsed := now.Sub(b.last).Seconds(); elapsed > 0 {
		b.tokens = math.Min(l.burst, b.tokens+elapsed*l.rate)
	}
	b.last = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Len returns the number of tracked keys.
func (l *TokenBucketRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// cleanupLocked drops buckets idle for longer than the cleanup interval.
// Must be called with l.mu held.
func (l *TokenBucketRateLimiter) cleanupLocked(now time.Time) {
	staleBefore := now.Add(-l.cleanupInterval)
	for k, b := range l.buckets {
		if !b.last.After(staleBefore) {
			delete(l.buckets, k)
		}
	}
	l.lastCleanup = now
}
