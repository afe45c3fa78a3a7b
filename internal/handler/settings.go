package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/calebriley/daybook/internal/store"
	"github.com/calebriley/daybook/internal/websocket"
)

type SettingsHandler struct {
	settings store.Settings
	hub      *websocket.Hub
	logger   *slog.Logger
}

func NewSettingsHandler(settings store.Settings, hub *websocket.Hub, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{settings: settings, hub: hub, logger: logger}
}

type patchSettingsRequest struct {
	DarkMode                *bool   `json:"darkMode"`
	DefaultCurrency         *string `json:"defaultCurrency"`
	VoiceRecognitionEnabled *bool   `json:"voiceRecognitionEnabled"`
	NotificationsEnabled    *bool   `json:"notificationsEnabled"`
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get()
	if err != nil {
		h.logger.Error("get settings", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get settings")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req patchSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if req.DefaultCurrency != nil && *req.DefaultCurrency == "" {
		writeError(w, http.StatusBadRequest, "defaultCurrency cannot be empty")
		return
	}

	settings, err := h.settings.Update(store.SettingsPatch{
		DarkMode:                req.DarkMode,
		DefaultCurrency:         req.DefaultCurrency,
		VoiceRecognitionEnabled: req.VoiceRecognitionEnabled,
		NotificationsEnabled:    req.NotificationsEnabled,
	})
	if err != nil {
		h.logger.Error("update settings", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update settings")
		return
	}

	if h.hub != nil {
		h.hub.Broadcast(websocket.NewMessage("settings", "updated", settings.ID))
	}

	writeJSON(w, http.StatusOK, settings)
}
