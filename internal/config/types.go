package config

// ServerConfig contains UDP listener settings.
type ServerConfig struct {
	Host           string `json:"host"`
	Port           int    `json:"port"`
	MaxConcurrency int    `json:"max_concurrency"` // 0 = derive from GOMAXPROCS
	ReusePort      bool   `json:"reuse_port"`      // set SO_REUSEPORT on the socket
}

// AnswerConfig controls what the responder puts into every reply.
type AnswerConfig struct {
	// Address is the IPv4 address returned in the A record answer.
	Address string `json:"address"`
	// TTL is the answer TTL in seconds.
	TTL int `json:"ttl"`
	// Authority is the IPv4 address written after the answer section.
	Authority string `json:"authority"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level            string            `json:"level"`
	Structured       bool              `json:"structured"`
	StructuredFormat string            `json:"structured_format"`
	IncludePID       bool              `json:"include_pid"`
	ExtraFields      map[string]string `json:"extra_fields,omitempty"`
}

// RateLimitConfig controls per-source admission before a datagram is decoded.
type RateLimitConfig struct {
	// CleanupSeconds is how often stale entries are cleaned up (default: 60)
	CleanupSeconds float64 `json:"cleanup_seconds"`
	// MaxIPEntries is the maximum number of tracked IPs (default: 65536)
	MaxIPEntries int `json:"max_ip_entries"`
	// GlobalQPS is the server-wide datagrams per second limit (0 = disabled)
	GlobalQPS float64 `json:"global_qps"`
	// GlobalBurst is the global burst size
	GlobalBurst int `json:"global_burst"`
	// IPQPS is the per-IP limit (0 = disabled)
	IPQPS float64 `json:"ip_qps"`
	// IPBurst is the per-IP burst size
	IPBurst int `json:"ip_burst"`
}

// APIConfig contains management API settings.
//
// Note: APIKey is treated as a secret and is never returned by API endpoints.
type APIConfig struct {
	Enabled   bool   `json:"enabled"`
	Host      string `json:"host"`
	Port      int    `json:"port"`
	APIKey    string `json:"api_key,omitempty"`
	StaticDir string `json:"static_dir,omitempty"` // optional directory served at /
}

// Config is the root configuration structure.
type Config struct {
	Server    ServerConfig    `json:"server"`
	Answer    AnswerConfig    `json:"answer"`
	Logging   LoggingConfig   `json:"logging"`
	RateLimit RateLimitConfig `json:"rate_limit"`
	API       APIConfig       `json:"api"`
}
