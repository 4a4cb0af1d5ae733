package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jroosing/framedns/internal/api/models"
	"github.com/jroosing/framedns/internal/config"
)

func TestConfigResponse_NoSecrets(t *testing.T) {
	cfg := config.Default()
	cfg.API.APIKey = "super-secret"

	resp := models.ConfigResponse{
		Server:    cfg.Server,
		Answer:    cfg.Answer,
		Logging:   cfg.Logging,
		RateLimit: cfg.RateLimit,
		API:       models.APIConfigResponse{Enabled: true, AuthEnabled: true},
	}
	data, err := json.Marshal(resp)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "super-secret")
	assert.NotContains(t, string(data), "api_key")
	assert.NotContains(t, string(data), "settings_version")
	assert.Contains(t, string(data), `"auth_enabled":true`)
	assert.Contains(t, string(data), `"address":"8.8.8.8"`)
}

func TestDNSStatsResponse_FieldNames(t *testing.T) {
	data, err := json.Marshal(models.DNSStatsResponse{Received: 3, RateLimited: 1})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.EqualValues(t, 3, decoded["received"])
	assert.EqualValues(t, 1, decoded["rate_limited"])
	assert.Contains(t, decoded, "formerr")
}

func TestServerStatsResponse_ProcessOmitted(t *testing.T) {
	data, err := json.Marshal(models.ServerStatsResponse{})
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"process"`)
}
