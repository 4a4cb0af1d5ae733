package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"syscall"
	"time"

	"github.com/jroosing/framedns/internal/config"
	"github.com/jroosing/framedns/internal/helpers"
)

const stopTimeout = 5 * time.Second

// HTTPServer is the subset of the management API the runner drives.
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// Runner orchestrates startup and shutdown of the UDP server and, when set,
// the management API.
type Runner struct {
	logger *slog.Logger
	stats  *Stats
	api    HTTPServer

	// ready receives the UDP server once it is listening. Used by tests.
	ready chan *UDPServer
}

// NewRunner creates a new runner with the given logger.
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{logger: logger, stats: NewStats()}
}

// Stats returns the counters shared by every datagram the runner serves.
func (r *Runner) Stats() *Stats {
	return r.stats
}

// SetAPI registers the management API to run alongside the UDP server.
func (r *Runner) SetAPI(api HTTPServer) {
	r.api = api
}

// Run serves until SIGINT or SIGTERM.
func (r *Runner) Run(cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return r.RunWithContext(ctx, cfg)
}

// RunWithContext serves until ctx is canceled or a server fails.
// cfg must already be validated.
func (r *Runner) RunWithContext(ctx context.Context, cfg *config.Config) error {
	ctx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	maxConc := calculateMaxConcurrency(cfg.Server.MaxConcurrency, runtime.GOMAXPROCS(0))

	handler := &QueryHandler{
		Logger:    r.logger,
		Responder: NewResponder(cfg.AnswerAddr(), cfg.AuthorityAddr(), cfg.Answer.TTL),
		Stats:     r.stats,
	}
	udp := &UDPServer{
		Logger:         r.logger,
		Handler:        handler,
		Limiter:        NewRateLimiter(cfg.RateLimit),
		Stats:          r.stats,
		MaxConcurrency: maxConc,
		ReusePort:      cfg.Server.ReusePort,
	}

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	conn, err := udp.Listen(ctx, addr)
	if err != nil {
		return err
	}

	r.logger.Info("dns listening",
		"addr", conn.LocalAddr().String(),
		"max_concurrency", maxConc,
		"reuse_port", cfg.Server.ReusePort,
		"answer", cfg.Answer.Address,
		"ttl", cfg.Answer.TTL,
	)
	r.logger.Info("rate limits", "effective", FormatRateLimitsLog(cfg.RateLimit))

	errCh := make(chan error, 2)
	go func() { errCh <- udp.RunOnConn(ctx, conn) }()
	if r.api != nil {
		go func() {
			if err := r.api.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()
	}
	if r.ready != nil {
		r.ready <- udp
	}

	var runErr error
	select {
	case <-ctx.Done():
		r.logger.Info("shutting down")
	case runErr = <-errCh:
		if runErr != nil {
			r.logger.Error("server failed", "err", runErr)
		}
	}
	cancelRun()

	if r.api != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
		if err := r.api.Shutdown(shutdownCtx); err != nil {
			r.logger.Warn("api shutdown", "err", err)
		}
		cancel()
	}
	if err := udp.Stop(stopTimeout); err != nil {
		r.logger.Warn("udp shutdown", "err", err)
	}
	return runErr
}

// calculateMaxConcurrency returns the configured limit, or 256 handlers per
// proc capped at 2048 when unset.
func calculateMaxConcurrency(configured, procs int) int {
	if configured > 0 {
		return configured
	}
	return helpers.ClampInt(max(procs, 1)*256, 1, 2048)
}
