package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jroosing/framedns/internal/api/handlers"
	"github.com/jroosing/framedns/internal/api/models"
	"github.com/jroosing/framedns/internal/config"
	"github.com/jroosing/framedns/internal/database"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestRouter(h *handlers.Handler) *gin.Engine {
	r := gin.New()
	api := r.Group("/api/v1")
	api.GET("/health", h.Health)
	api.GET("/stats", h.Stats)
	api.GET("/config", h.GetConfig)
	api.GET("/settings", h.ListSettings)
	api.PUT("/settings/:key", h.PutSetting)
	api.DELETE("/settings/:key", h.DeleteSetting)
	return r
}

func openTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "settings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func performRequest(r http.Handler, method, path string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestHealth_OK(t *testing.T) {
	router := setupTestRouter(handlers.New(config.Default(), nil, nil))

	w := performRequest(router, http.MethodGet, "/api/v1/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[models.StatusResponse](t, w).Status)
}

func TestHealth_WithDatabase(t *testing.T) {
	router := setupTestRouter(handlers.New(config.Default(), openTestDB(t), nil))

	w := performRequest(router, http.MethodGet, "/api/v1/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealth_DatabaseClosed(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Close())
	router := setupTestRouter(handlers.New(config.Default(), db, nil))

	w := performRequest(router, http.MethodGet, "/api/v1/health", "")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "degraded", decode[models.StatusResponse](t, w).Status)
}

func TestStats_IncludesDNSCounters(t *testing.T) {
	h := handlers.New(config.Default(), nil, nil)
	h.SetDNSStatsFunc(func() handlers.DNSStatsSnapshot {
		return handlers.DNSStatsSnapshot{Received: 10, Answered: 7, FormErr: 2, Dropped: 1}
	})
	router := setupTestRouter(h)

	w := performRequest(router, http.MethodGet, "/api/v1/stats", "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[models.ServerStatsResponse](t, w)
	assert.Equal(t, uint64(10), resp.DNSStats.Received)
	assert.Equal(t, uint64(7), resp.DNSStats.Answered)
	assert.Equal(t, uint64(2), resp.DNSStats.FormErr)
	assert.Positive(t, resp.NumCPU)
	assert.Positive(t, resp.GoRoutines)
	if resp.Process != nil {
		assert.Positive(t, resp.Process.PID)
	}
}

func TestStats_WithoutDNSStats(t *testing.T) {
	router := setupTestRouter(handlers.New(config.Default(), nil, nil))

	w := performRequest(router, http.MethodGet, "/api/v1/stats", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, decode[models.ServerStatsResponse](t, w).DNSStats.Received)
}

func TestGetConfig_Redacted(t *testing.T) {
	cfg := config.Default()
	cfg.API.APIKey = "secret-key"
	router := setupTestRouter(handlers.New(cfg, nil, nil))

	w := performRequest(router, http.MethodGet, "/api/v1/config", "")
	require.Equal(t, http.StatusOK, w.Code)

	assert.NotContains(t, w.Body.String(), "secret-key")
	resp := decode[models.ConfigResponse](t, w)
	assert.True(t, resp.API.AuthEnabled)
	assert.Equal(t, 2053, resp.Server.Port)
	assert.Equal(t, "8.8.8.8", resp.Answer.Address)
	assert.Nil(t, resp.SettingsVersion)
}

func TestGetConfig_NilConfig(t *testing.T) {
	router := setupTestRouter(handlers.New(nil, nil, nil))

	w := performRequest(router, http.MethodGet, "/api/v1/config", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSettings_WithoutDatabase(t *testing.T) {
	router := setupTestRouter(handlers.New(config.Default(), nil, nil))

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/api/v1/settings", ""},
		{http.MethodPut, "/api/v1/settings/answer.ttl", `{"value":"30"}`},
		{http.MethodDelete, "/api/v1/settings/answer.ttl", ""},
	} {
		w := performRequest(router, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestSettings_Lifecycle(t *testing.T) {
	db := openTestDB(t)
	router := setupTestRouter(handlers.New(config.Default(), db, nil))

	w := performRequest(router, http.MethodPut, "/api/v1/settings/answer.ttl", `{"value":"30"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = performRequest(router, http.MethodPut, "/api/v1/settings/api.api_key", `{"value":"hunter2"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(router, http.MethodGet, "/api/v1/settings", "")
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[models.SettingsResponse](t, w)
	assert.Equal(t, "30", list.Values["answer.ttl"])
	assert.Equal(t, "********", list.Values["api.api_key"])
	assert.Equal(t, int64(2), list.Version)

	w = performRequest(router, http.MethodGet, "/api/v1/config", "")
	cfgResp := decode[models.ConfigResponse](t, w)
	require.NotNil(t, cfgResp.SettingsVersion)
	assert.Equal(t, int64(2), *cfgResp.SettingsVersion)

	w = performRequest(router, http.MethodDelete, "/api/v1/settings/answer.ttl", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(router, http.MethodDelete, "/api/v1/settings/answer.ttl", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPutSetting_BadRequests(t *testing.T) {
	router := setupTestRouter(handlers.New(config.Default(), openTestDB(t), nil))

	w := performRequest(router, http.MethodPut, "/api/v1/settings/answer.ttl", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(router, http.MethodPut, "/api/v1/settings/answer.ttl", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(router, http.MethodPut, "/api/v1/settings/no.such.key", `{"value":"1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	for _, tc := range []struct{ key, body string }{
		{"server.port", `{"value":"abc"}`},
		{"answer.address", `{"value":"not-an-ip"}`},
		{"answer.ttl", `{"value":"-5"}`},
	} {
		w := performRequest(router, http.MethodPut, "/api/v1/settings/"+tc.key, tc.body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "%s %s", tc.key, tc.body)
		assert.Contains(t, decode[models.ErrorResponse](t, w).Error, tc.key)
	}

	w = performRequest(router, http.MethodGet, "/api/v1/settings", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[models.SettingsResponse](t, w).Values)
}
