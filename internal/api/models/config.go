package models

import "github.com/jroosing/framedns/internal/config"

// APIConfigResponse is a redacted version of APIConfig (no api_key exposed).
type APIConfigResponse struct {
	Enabled     bool   `json:"enabled"`
	Host        string `json:"host"`
	Port        int    `json:"port"`
	AuthEnabled bool   `json:"auth_enabled"`
	StaticDir   string `json:"static_dir,omitempty"`
}

// ConfigResponse is the API response for GET /config.
type ConfigResponse struct {
	Server          config.ServerConfig    `json:"server"`
	Answer          config.AnswerConfig    `json:"answer"`
	Logging         config.LoggingConfig   `json:"logging"`
	RateLimit       config.RateLimitConfig `json:"rate_limit"`
	API             APIConfigResponse      `json:"api"`
	SettingsVersion *int64                 `json:"settings_version,omitempty"`
}

// SettingsResponse lists the raw key/value rows of the settings store.
type SettingsResponse struct {
	Version int64             `json:"version"`
	Values  map[string]string `json:"values"`
}

// SettingRequest is the body of PUT /settings/:key.
type SettingRequest struct {
	Value string `json:"value" binding:"required"`
}
