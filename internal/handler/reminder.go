package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/calebriley/daybook/internal/model"
	"github.com/calebriley/daybook/internal/store"
	"github.com/calebriley/daybook/internal/websocket"
)

var validPriorities = map[string]bool{
	model.PriorityHigh:   true,
	model.PriorityMedium: true,
	model.PriorityLow:    true,
}

type ReminderHandler struct {
	reminders store.Reminders
	hub       *websocket.Hub
	logger    *slog.Logger
}

func NewReminderHandler(reminders store.Reminders, hub *websocket.Hub, logger *slog.Logger) *ReminderHandler {
	return &ReminderHandler{reminders: reminders, hub: hub, logger: logger}
}

func (h *ReminderHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

type createReminderRequest struct {
	Title            string     `json:"title"`
	Description      *string    `json:"description"`
	ScheduledDate    *time.Time `json:"scheduledDate"`
	Priority         string     `json:"priority"`
	IsCompleted      bool       `json:"isCompleted"`
	NotificationSent bool       `json:"notificationSent"`
}

type patchReminderRequest struct {
	Title            *string    `json:"title"`
	Description      *string    `json:"description"`
	ScheduledDate    *time.Time `json:"scheduledDate"`
	Priority         *string    `json:"priority"`
	IsCompleted      *bool      `json:"isCompleted"`
	NotificationSent *bool      `json:"notificationSent"`
}

func (h *ReminderHandler) List(w http.ResponseWriter, r *http.Request) {
	reminders, err := h.reminders.List()
	if err != nil {
		h.logger.Error("list reminders", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list reminders")
		return
	}
	if reminders == nil {
		reminders = []model.Reminder{}
	}
	writeJSON(w, http.StatusOK, reminders)
}

func (h *ReminderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	reminder, err := h.reminders.Get(id)
	if err != nil {
		h.logger.Error("get reminder", "reminder_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get reminder")
		return
	}
	if reminder == nil {
		writeError(w, http.StatusNotFound, "reminder not found")
		return
	}
	writeJSON(w, http.StatusOK, reminder)
}

func (h *ReminderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.ScheduledDate == nil {
		writeError(w, http.StatusBadRequest, "scheduledDate is required")
		return
	}
	if req.Priority != "" && !validPriorities[req.Priority] {
		writeError(w, http.StatusBadRequest, "priority must be high, medium, or low")
		return
	}

	reminder, err := h.reminders.Create(store.NewReminder{
		Title:            req.Title,
		Description:      req.Description,
		ScheduledDate:    *req.ScheduledDate,
		Priority:         req.Priority,
		IsCompleted:      req.IsCompleted,
		NotificationSent: req.NotificationSent,
	})
	if err != nil {
		h.logger.Error("create reminder", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create reminder")
		return
	}

	h.broadcast(websocket.NewMessage("reminder", "created", reminder.ID))

	writeJSON(w, http.StatusCreated, reminder)
}

func (h *ReminderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req patchReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		if trimmed == "" {
			writeError(w, http.StatusBadRequest, "title cannot be empty")
			return
		}
		req.Title = &trimmed
	}
	if req.Priority != nil && !validPriorities[*req.Priority] {
		writeError(w, http.StatusBadRequest, "priority must be high, medium, or low")
		return
	}

	reminder, err := h.reminders.Update(id, store.ReminderPatch{
		Title:            req.Title,
		Description:      req.Description,
		ScheduledDate:    req.ScheduledDate,
		Priority:         req.Priority,
		IsCompleted:      req.IsCompleted,
		NotificationSent: req.NotificationSent,
	})
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "reminder not found")
		return
	}
	if err != nil {
		h.logger.Error("update reminder", "reminder_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update reminder")
		return
	}

	h.broadcast(websocket.NewMessage("reminder", "updated", id))

	writeJSON(w, http.StatusOK, reminder)
}

func (h *ReminderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	err = h.reminders.Delete(id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "reminder not found")
		return
	}
	if err != nil {
		h.logger.Error("delete reminder", "reminder_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete reminder")
		return
	}

	h.broadcast(websocket.NewMessage("reminder", "deleted", id))

	w.WriteHeader(http.StatusNoContent)
}
