package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/jroosing/framedns/internal/api"
	"github.com/jroosing/framedns/internal/api/handlers"
	"github.com/jroosing/framedns/internal/config"
	"github.com/jroosing/framedns/internal/database"
	"github.com/jroosing/framedns/internal/logging"
	"github.com/jroosing/framedns/internal/server"
)

func main() {
	var (
		dbPath    = flag.String("db", "", "Path to SQLite settings database (or set FRAMEDNS_DB)")
		host      = flag.String("host", "", "Override bind host")
		port      = flag.Int("port", 0, "Override bind port")
		answer    = flag.String("answer", "", "Override the IPv4 address returned in answers")
		ttl       = flag.Int("ttl", -1, "Override the answer TTL in seconds")
		authority = flag.String("authority", "", "Override the IPv4 authority address")
		reusePort = flag.Bool("reuse-port", false, "Set SO_REUSEPORT on the UDP socket")
		apiOn     = flag.Bool("api", false, "Enable the management API")
		apiPort   = flag.Int("api-port", 0, "Override management API port")
		saveCfg   = flag.Bool("save", false, "Write the effective configuration to the settings database")
		jsonLogs  = flag.Bool("json-logs", false, "Enable JSON structured logging")
		debug     = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	cfg := config.Default()

	var db *database.DB
	if path := config.ResolveDBPath(*dbPath); path != "" {
		var err error
		db, err = database.Open(path)
		if err != nil {
			fatal("failed to open settings database: %v", err)
		}
		defer db.Close()

		cfg, err = db.LoadConfig(cfg)
		if err != nil {
			fatal("failed to load settings: %v", err)
		}
	}

	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *answer != "" {
		cfg.Answer.Address = *answer
	}
	if *ttl >= 0 {
		cfg.Answer.TTL = *ttl
	}
	if *authority != "" {
		cfg.Answer.Authority = *authority
	}
	if *reusePort {
		cfg.Server.ReusePort = true
	}
	if *apiOn {
		cfg.API.Enabled = true
	}
	if *apiPort != 0 {
		cfg.API.Port = *apiPort
	}
	if *jsonLogs {
		cfg.Logging.Structured = true
		cfg.Logging.StructuredFormat = "json"
	}
	if *debug {
		cfg.Logging.Level = "DEBUG"
	}

	if err := cfg.Validate(); err != nil {
		fatal("invalid configuration: %v", err)
	}

	logger := logging.Configure(logging.Config{
		Level:            cfg.Logging.Level,
		Structured:       cfg.Logging.Structured,
		StructuredFormat: cfg.Logging.StructuredFormat,
		IncludePID:       cfg.Logging.IncludePID,
		ExtraFields:      cfg.Logging.ExtraFields,
	})

	if *saveCfg {
		if db == nil {
			fatal("-save requires -db or FRAMEDNS_DB")
		}
		if err := db.SaveConfig(cfg); err != nil {
			fatal("failed to save settings: %v", err)
		}
		logger.Info("settings saved")
	}

	logger.Info("framedns starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"settings_db", db != nil,
		"api", cfg.API.Enabled,
	)

	runner := server.NewRunner(logger)
	if cfg.API.Enabled {
		runner.SetAPI(newAPI(cfg, db, logger, runner.Stats()))
	}
	if err := runner.Run(cfg); err != nil {
		logger.Error("server exited with error", "err", err)
		os.Exit(1)
	}
}

func newAPI(cfg *config.Config, db *database.DB, logger *slog.Logger, stats *server.Stats) *api.Server {
	srv := api.New(cfg, db, logger)
	srv.SetDNSStatsFunc(func() handlers.DNSStatsSnapshot {
		s := stats.Snapshot()
		return handlers.DNSStatsSnapshot{
			Received:     s.Received,
			Answered:     s.Answered,
			FormErr:      s.FormErr,
			Truncated:    s.Truncated,
			Dropped:      s.Dropped,
			RateLimited:  s.RateLimited,
			AvgLatencyMs: s.AvgLatencyMs,
		}
	})
	return srv
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
