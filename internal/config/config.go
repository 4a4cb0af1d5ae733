// Package config provides configuration types, defaults and validation for
// framedns.
//
// Settings may be persisted in the SQLite store (internal/database), which
// layers them over Default(). Command-line flags are applied last by the
// caller, followed by Validate.
package config

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"strings"
)

// DBPathEnv names the environment variable holding the settings database path.
const DBPathEnv = "FRAMEDNS_DB"

// Default returns the built-in configuration: a loopback listener on port
// 2053 answering every A question with 8.8.8.8 for 60 seconds.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 2053,
		},
		Answer: AnswerConfig{
			Address:   "8.8.8.8",
			TTL:       60,
			Authority: "127.0.0.1",
		},
		Logging: LoggingConfig{
			Level:            "INFO",
			StructuredFormat: "json",
			ExtraFields:      map[string]string{},
		},
		RateLimit: RateLimitConfig{
			CleanupSeconds: 60,
			MaxIPEntries:   65536,
			GlobalQPS:      100000,
			GlobalBurst:    100000,
			IPQPS:          3000,
			IPBurst:        6000,
		},
		API: APIConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
	}
}

// ResolveDBPath returns the settings database path: the flag value when set,
// otherwise $FRAMEDNS_DB, otherwise "" (no database).
func ResolveDBPath(flagValue string) string {
	if p := strings.TrimSpace(flagValue); p != "" {
		return p
	}
	return strings.TrimSpace(os.Getenv(DBPathEnv))
}

// Validate validates and normalizes the configuration.
func (cfg *Config) Validate() error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return errors.New("server.port must be 1..65535")
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "127.0.0.1"
	}

	if _, err := parseIPv4("answer.address", cfg.Answer.Address); err != nil {
		return err
	}
	if _, err := parseIPv4("answer.authority", cfg.Answer.Authority); err != nil {
		return err
	}
	if cfg.Answer.TTL < 0 {
		return errors.New("answer.ttl must not be negative")
	}

	// Normalize logging
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "INFO"
	}
	cfg.Logging.Level = strings.ToUpper(cfg.Logging.Level)
	if cfg.Logging.StructuredFormat == "" {
		cfg.Logging.StructuredFormat = "json"
	}
	if cfg.Logging.ExtraFields == nil {
		cfg.Logging.ExtraFields = map[string]string{}
	}

	// Normalize management API
	if cfg.API.Host == "" {
		cfg.API.Host = "127.0.0.1"
	}
	if cfg.API.Enabled {
		if cfg.API.Port <= 0 || cfg.API.Port > 65535 {
			return errors.New("api.port must be 1..65535")
		}
	}

	return nil
}

// AnswerAddr returns the parsed answer address. Call after Validate.
func (cfg *Config) AnswerAddr() netip.Addr {
	addr, _ := parseIPv4("answer.address", cfg.Answer.Address)
	return addr
}

// AuthorityAddr returns the parsed authority address. Call after Validate.
func (cfg *Config) AuthorityAddr() netip.Addr {
	addr, _ := parseIPv4("answer.authority", cfg.Answer.Authority)
	return addr
}

func parseIPv4(field, s string) (netip.Addr, error) {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return netip.Addr{}, fmt.Errorf("%s: %w", field, err)
	}
	addr = addr.Unmap()
	if !addr.Is4() {
		return netip.Addr{}, fmt.Errorf("%s must be an IPv4 address, got %s", field, s)
	}
	return addr, nil
}
