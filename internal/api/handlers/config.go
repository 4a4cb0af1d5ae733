package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jroosing/framedns/internal/api/models"
	"github.com/jroosing/framedns/internal/database"
)

// GetConfig godoc
// @Summary Get current configuration
// @Description Returns the effective configuration (api_key redacted) and the settings version
// @Tags config
// @Produce json
// @Success 200 {object} models.ConfigResponse
// @Failure 500 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /config [get]
func (h *Handler) GetConfig(c *gin.Context) {
	if h.cfg == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "config unavailable"})
		return
	}

	resp := models.ConfigResponse{
		Server:    h.cfg.Server,
		Answer:    h.cfg.Answer,
		Logging:   h.cfg.Logging,
		RateLimit: h.cfg.RateLimit,
		API: models.APIConfigResponse{
			Enabled:     h.cfg.API.Enabled,
			Host:        h.cfg.API.Host,
			Port:        h.cfg.API.Port,
			AuthEnabled: h.cfg.API.APIKey != "",
			StaticDir:   h.cfg.API.StaticDir,
		},
	}
	if h.db != nil {
		if v, err := h.db.GetVersion(); err == nil {
			resp.SettingsVersion = &v
		}
	}

	c.JSON(http.StatusOK, resp)
}

// ListSettings godoc
// @Summary List stored settings
// @Description Returns every row of the settings store; api.api_key is masked
// @Tags settings
// @Produce json
// @Success 200 {object} models.SettingsResponse
// @Failure 500 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /settings [get]
func (h *Handler) ListSettings(c *gin.Context) {
	if !h.requireDB(c) {
		return
	}

	values, err := h.db.GetAllConfig()
	if err != nil {
		h.logger.Error("list settings", "err", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to read settings"})
		return
	}
	if _, ok := values[database.ConfigKeyAPIKey]; ok {
		values[database.ConfigKeyAPIKey] = "********"
	}
	version, err := h.db.GetVersion()
	if err != nil {
		h.logger.Error("settings version", "err", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to read settings"})
		return
	}

	c.JSON(http.StatusOK, models.SettingsResponse{Version: version, Values: values})
}

// PutSetting godoc
// @Summary Store a setting
// @Description Validates and stores one setting. Changes apply on the next start.
// @Tags settings
// @Accept json
// @Produce json
// @Param key path string true "Setting key, e.g. answer.ttl"
// @Param setting body models.SettingRequest true "New value"
// @Success 200 {object} models.StatusResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /settings/{key} [put]
func (h *Handler) PutSetting(c *gin.Context) {
	if !h.requireDB(c) {
		return
	}

	var req models.SettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request: " + err.Error()})
		return
	}

	key := c.Param("key")
	if err := h.db.SetConfig(key, req.Value); err != nil {
		if errors.Is(err, database.ErrUnknownKey) || errors.Is(err, database.ErrInvalidValue) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
			return
		}
		h.logger.Error("put setting", "key", key, "err", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to store setting"})
		return
	}
	h.logger.Info("setting updated", "key", key)
	c.JSON(http.StatusOK, models.StatusResponse{Status: "stored"})
}

// DeleteSetting godoc
// @Summary Delete a setting
// @Description Removes one stored setting so its default applies again
// @Tags settings
// @Produce json
// @Param key path string true "Setting key"
// @Success 200 {object} models.StatusResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /settings/{key} [delete]
func (h *Handler) DeleteSetting(c *gin.Context) {
	if !h.requireDB(c) {
		return
	}

	key := c.Param("key")
	if _, err := h.db.GetConfig(key); errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: err.Error()})
		return
	}
	if err := h.db.DeleteConfig(key); err != nil {
		h.logger.Error("delete setting", "key", key, "err", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to delete setting"})
		return
	}
	h.logger.Info("setting deleted", "key", key)
	c.JSON(http.StatusOK, models.StatusResponse{Status: "deleted"})
}

func (h *Handler) requireDB(c *gin.Context) bool {
	if h.db == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "settings store not configured"})
		return false
	}
	return true
}
