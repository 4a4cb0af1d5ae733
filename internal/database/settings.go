package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/jroosing/framedns/internal/config"
)

var (
	// ErrNotFound is returned by GetConfig for keys that are not stored.
	ErrNotFound = errors.New("config key not found")
	// ErrUnknownKey is returned by SetConfig for keys that map to no setting.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned by SetConfig when the value would not load
	// or would fail config validation.
	ErrInvalidValue = errors.New("invalid config value")
)

// Setting keys. Each maps to one field of config.Config.
const (
	ConfigKeyServerHost           = "server.host"
	ConfigKeyServerPort           = "server.port"
	ConfigKeyServerMaxConcurrency = "server.max_concurrency"
	ConfigKeyServerReusePort      = "server.reuse_port"

	ConfigKeyAnswerAddress   = "answer.address"
	ConfigKeyAnswerTTL       = "answer.ttl"
	ConfigKeyAnswerAuthority = "answer.authority"

	ConfigKeyLoggingLevel            = "logging.level"
	ConfigKeyLoggingStructured       = "logging.structured"
	ConfigKeyLoggingStructuredFormat = "logging.structured_format"
	ConfigKeyLoggingIncludePID       = "logging.include_pid"

	ConfigKeyRateLimitCleanupSeconds = "rate_limit.cleanup_seconds"
	ConfigKeyRateLimitMaxIPEntries   = "rate_limit.max_ip_entries"
	ConfigKeyRateLimitGlobalQPS      = "rate_limit.global_qps"
	ConfigKeyRateLimitGlobalBurst    = "rate_limit.global_burst"
	ConfigKeyRateLimitIPQPS          = "rate_limit.ip_qps"
	ConfigKeyRateLimitIPBurst        = "rate_limit.ip_burst"

	ConfigKeyAPIEnabled   = "api.enabled"
	ConfigKeyAPIHost      = "api.host"
	ConfigKeyAPIPort      = "api.port"
	ConfigKeyAPIKey       = "api.api_key"
	ConfigKeyAPIStaticDir = "api.static_dir"
)

const upsertConfig = `
	INSERT INTO config (key, value, updated_at)
	VALUES (?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(key) DO UPDATE SET
		value = excluded.value,
		updated_at = CURRENT_TIMESTAMP
	WHERE config.value <> excluded.value
`

// field binds a setting key to a config.Config field.
type field struct {
	get func(*config.Config) string
	set func(*config.Config, string) error
}

func strField(p func(*config.Config) *string) field {
	return field{
		get: func(c *config.Config) string { return *p(c) },
		set: func(c *config.Config, v string) error { *p(c) = v; return nil },
	}
}

func intField(p func(*config.Config) *int) field {
	return field{
		get: func(c *config.Config) string { return strconv.Itoa(*p(c)) },
		set: func(c *config.Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return err
			}
			*p(c) = n
			return nil
		},
	}
}

func boolField(p func(*config.Config) *bool) field {
	return field{
		get: func(c *config.Config) string { return strconv.FormatBool(*p(c)) },
		set: func(c *config.Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return err
			}
			*p(c) = b
			return nil
		},
	}
}

func floatField(p func(*config.Config) *float64) field {
	return field{
		get: func(c *config.Config) string { return strconv.FormatFloat(*p(c), 'g', -1, 64) },
		set: func(c *config.Config, v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return err
			}
			*p(c) = f
			return nil
		},
	}
}

var fields = map[string]field{
	ConfigKeyServerHost:           strField(func(c *config.Config) *string { return &c.Server.Host }),
	ConfigKeyServerPort:           intField(func(c *config.Config) *int { return &c.Server.Port }),
	ConfigKeyServerMaxConcurrency: intField(func(c *config.Config) *int { return &c.Server.MaxConcurrency }),
	ConfigKeyServerReusePort:      boolField(func(c *config.Config) *bool { return &c.Server.ReusePort }),

	ConfigKeyAnswerAddress:   strField(func(c *config.Config) *string { return &c.Answer.Address }),
	ConfigKeyAnswerTTL:       intField(func(c *config.Config) *int { return &c.Answer.TTL }),
	ConfigKeyAnswerAuthority: strField(func(c *config.Config) *string { return &c.Answer.Authority }),

	ConfigKeyLoggingLevel:            strField(func(c *config.Config) *string { return &c.Logging.Level }),
	ConfigKeyLoggingStructured:       boolField(func(c *config.Config) *bool { return &c.Logging.Structured }),
	ConfigKeyLoggingStructuredFormat: strField(func(c *config.Config) *string { return &c.Logging.StructuredFormat }),
	ConfigKeyLoggingIncludePID:       boolField(func(c *config.Config) *bool { return &c.Logging.IncludePID }),

	ConfigKeyRateLimitCleanupSeconds: floatField(func(c *config.Config) *float64 { return &c.RateLimit.CleanupSeconds }),
	ConfigKeyRateLimitMaxIPEntries:   intField(func(c *config.Config) *int { return &c.RateLimit.MaxIPEntries }),
	ConfigKeyRateLimitGlobalQPS:      floatField(func(c *config.Config) *float64 { return &c.RateLimit.GlobalQPS }),
	ConfigKeyRateLimitGlobalBurst:    intField(func(c *config.Config) *int { return &c.RateLimit.GlobalBurst }),
	ConfigKeyRateLimitIPQPS:          floatField(func(c *config.Config) *float64 { return &c.RateLimit.IPQPS }),
	ConfigKeyRateLimitIPBurst:        intField(func(c *config.Config) *int { return &c.RateLimit.IPBurst }),

	ConfigKeyAPIEnabled:   boolField(func(c *config.Config) *bool { return &c.API.Enabled }),
	ConfigKeyAPIHost:      strField(func(c *config.Config) *string { return &c.API.Host }),
	ConfigKeyAPIPort:      intField(func(c *config.Config) *int { return &c.API.Port }),
	ConfigKeyAPIKey:       strField(func(c *config.Config) *string { return &c.API.APIKey }),
	ConfigKeyAPIStaticDir: strField(func(c *config.Config) *string { return &c.API.StaticDir }),
}

// SetConfig sets a raw configuration value. Unknown keys fail with
// ErrUnknownKey. The value is applied on top of the defaults and the other
// stored settings, and anything that does not parse or validate fails with
// ErrInvalidValue so the next start can still load the store.
func (db *DB) SetConfig(key, value string) error {
	f, ok := fields[key]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownKey, key)
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	cfg, err := db.candidateLocked(key)
	if err != nil {
		return err
	}
	if err := f.set(cfg, value); err != nil {
		return fmt.Errorf("%w for %s: %w", ErrInvalidValue, key, err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w for %s: %w", ErrInvalidValue, key, err)
	}

	if _, err := db.conn.Exec(upsertConfig, key, value); err != nil {
		return fmt.Errorf("failed to set config %s: %w", key, err)
	}
	return nil
}

// candidateLocked returns the defaults with every stored setting except skip
// applied. Stored values that no longer parse are left at their default.
func (db *DB) candidateLocked(skip string) (*config.Config, error) {
	rows, err := db.conn.Query("SELECT key, value FROM config")
	if err != nil {
		return nil, fmt.Errorf("failed to query config: %w", err)
	}
	defer rows.Close()

	cfg := config.Default()
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan config row: %w", err)
		}
		if f, ok := fields[key]; ok && key != skip {
			_ = f.set(cfg, value)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating config rows: %w", err)
	}
	return cfg, nil
}

// GetConfig retrieves a raw configuration value.
func (db *DB) GetConfig(key string) (string, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var value string
	err := db.conn.QueryRow("SELECT value FROM config WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get config %s: %w", key, err)
	}
	return value, nil
}

// GetAllConfig retrieves all stored key/value pairs.
func (db *DB) GetAllConfig() (map[string]string, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	rows, err := db.conn.Query("SELECT key, value FROM config ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("failed to query config: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan config row: %w", err)
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating config rows: %w", err)
	}
	return out, nil
}

// DeleteConfig removes a configuration key so its default applies again.
func (db *DB) DeleteConfig(key string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, err := db.conn.Exec("DELETE FROM config WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete config %s: %w", key, err)
	}
	return nil
}

// LoadConfig overlays stored settings onto base and returns the result.
// base is not modified. Rows with unknown keys are ignored.
func (db *DB) LoadConfig(base *config.Config) (*config.Config, error) {
	stored, err := db.GetAllConfig()
	if err != nil {
		return nil, err
	}

	cfg := *base
	cfg.Logging.ExtraFields = make(map[string]string, len(base.Logging.ExtraFields))
	for k, v := range base.Logging.ExtraFields {
		cfg.Logging.ExtraFields[k] = v
	}

	for key, value := range stored {
		f, ok := fields[key]
		if !ok {
			continue
		}
		if err := f.set(&cfg, value); err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", key, err)
		}
	}
	return &cfg, nil
}

// SaveConfig writes every setting of cfg in a single transaction.
func (db *DB) SaveConfig(cfg *config.Config) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.Prepare(upsertConfig)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for key, f := range fields {
		if _, err := stmt.Exec(key, f.get(cfg)); err != nil {
			return fmt.Errorf("failed to set config %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
