// Package api provides the REST management API for framedns.
// It exposes health, statistics, configuration and settings endpoints via a
// Gin-based HTTP server, and can serve a static directory at /.
//
// Security note: do not expose the API to untrusted networks without an API key.
package api

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jroosing/framedns/internal/api/handlers"
	"github.com/jroosing/framedns/internal/api/middleware"
	"github.com/jroosing/framedns/internal/config"
	"github.com/jroosing/framedns/internal/database"
)

// Server is the management REST API server.
type Server struct {
	cfg        *config.Config
	logger     *slog.Logger
	engine     *gin.Engine
	handler    *handlers.Handler
	httpServer *http.Server
}

// New builds the API server. db may be nil, in which case the settings
// endpoints answer 503.
func New(cfg *config.Config, db *database.DB, logger *slog.Logger) *Server {
	if cfg == nil {
		panic("api.New: cfg is nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.SlogRequestLogger(logger))

	h := handlers.New(cfg, db, logger)
	RegisterRoutes(engine, h, cfg)
	if cfg.API.StaticDir != "" {
		MountStatic(engine, cfg.API.StaticDir)
	}

	addr := net.JoinHostPort(cfg.API.Host, strconv.Itoa(cfg.API.Port))
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &Server{cfg: cfg, logger: logger, engine: engine, handler: h, httpServer: httpServer}
}

// SetDNSStatsFunc wires the UDP server counters into GET /stats.
func (s *Server) SetDNSStatsFunc(fn handlers.DNSStatsFunc) {
	s.handler.SetDNSStatsFunc(fn)
}

func (s *Server) Addr() string {
	return s.httpServer.Addr
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) ListenAndServe() error {
	s.logger.Info("api listening", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
