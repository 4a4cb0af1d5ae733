// Package handlers implements the REST API endpoint handlers for framedns.
//
// REST API Endpoints:
//
//   - GET /api/v1/health - Health check status
//   - GET /api/v1/stats - Runtime, process and datagram statistics
//   - GET /api/v1/config - Effective configuration (api_key redacted)
//   - GET /api/v1/settings - Raw rows of the settings store
//   - PUT /api/v1/settings/:key - Store one setting (applies on restart)
//   - DELETE /api/v1/settings/:key - Remove one setting
//
// The settings endpoints answer 503 when the server runs without a
// settings database.
//
// @title framedns Management API
// @version 1.0
// @description REST API for inspecting framedns and editing its stored settings.
//
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
//
// @host localhost:8080
// @BasePath /api/v1
//
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
package handlers

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jroosing/framedns/internal/config"
	"github.com/jroosing/framedns/internal/database"
)

// DNSStatsSnapshot mirrors the UDP server counters.
type DNSStatsSnapshot struct {
	Received     uint64
	Answered     uint64
	FormErr      uint64
	Truncated    uint64
	Dropped      uint64
	RateLimited  uint64
	AvgLatencyMs float64
}

// DNSStatsFunc returns the current UDP server counters.
type DNSStatsFunc func() DNSStatsSnapshot

// Handler contains dependencies for API handlers.
type Handler struct {
	cfg       *config.Config
	db        *database.DB // nil when running without a settings store
	logger    *slog.Logger
	startTime time.Time

	mu           sync.RWMutex
	dnsStatsFunc DNSStatsFunc
}

// New creates a new Handler. db may be nil.
func New(cfg *config.Config, db *database.DB, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		cfg:       cfg,
		db:        db,
		logger:    logger,
		startTime: time.Now(),
	}
}

// SetDNSStatsFunc sets the function to retrieve DNS statistics.
func (h *Handler) SetDNSStatsFunc(fn DNSStatsFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dnsStatsFunc = fn
}

func (h *Handler) getDNSStatsFunc() DNSStatsFunc {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.dnsStatsFunc
}
