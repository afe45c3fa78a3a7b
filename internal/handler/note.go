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

var validNoteTypes = map[string]bool{
	model.NoteTypePlain:     true,
	model.NoteTypeChecklist: true,
	model.NoteTypeReminder:  true,
}

type NoteHandler struct {
	notes  store.Notes
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewNoteHandler(notes store.Notes, hub *websocket.Hub, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{notes: notes, hub: hub, logger: logger}
}

func (h *NoteHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

type createNoteRequest struct {
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	Category     string     `json:"category"`
	Type         string     `json:"type"`
	IsVoiceNote  bool       `json:"isVoiceNote"`
	ReminderDate *time.Time `json:"reminderDate"`
	IsCompleted  bool       `json:"isCompleted"`
}

type patchNoteRequest struct {
	Title        *string    `json:"title"`
	Content      *string    `json:"content"`
	Category     *string    `json:"category"`
	Type         *string    `json:"type"`
	IsVoiceNote  *bool      `json:"isVoiceNote"`
	ReminderDate *time.Time `json:"reminderDate"`
	IsCompleted  *bool      `json:"isCompleted"`
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	notes, err := h.notes.List()
	if err != nil {
		h.logger.Error("list notes", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list notes")
		return
	}
	if notes == nil {
		notes = []model.Note{}
	}
	writeJSON(w, http.StatusOK, notes)
}

func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	note, err := h.notes.Get(id)
	if err != nil {
		h.logger.Error("get note", "note_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get note")
		return
	}
	if note == nil {
		writeError(w, http.StatusNotFound, "note not found")
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.Type != "" && !validNoteTypes[req.Type] {
		writeError(w, http.StatusBadRequest, "type must be plain, checklist, or reminder")
		return
	}

	note, err := h.notes.Create(store.NewNote{
		Title:        req.Title,
		Content:      req.Content,
		Category:     req.Category,
		Type:         req.Type,
		IsVoiceNote:  req.IsVoiceNote,
		ReminderDate: req.ReminderDate,
		IsCompleted:  req.IsCompleted,
	})
	if err != nil {
		h.logger.Error("create note", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create note")
		return
	}

	h.broadcast(websocket.NewMessage("note", "created", note.ID))

	writeJSON(w, http.StatusCreated, note)
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req patchNoteRequest
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
	if req.Type != nil && !validNoteTypes[*req.Type] {
		writeError(w, http.StatusBadRequest, "type must be plain, checklist, or reminder")
		return
	}

	note, err := h.notes.Update(id, store.NotePatch{
		Title:        req.Title,
		Content:      req.Content,
		Category:     req.Category,
		Type:         req.Type,
		IsVoiceNote:  req.IsVoiceNote,
		ReminderDate: req.ReminderDate,
		IsCompleted:  req.IsCompleted,
	})
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "note not found")
		return
	}
	if err != nil {
		h.logger.Error("update note", "note_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update note")
		return
	}

	h.broadcast(websocket.NewMessage("note", "updated", id))

	writeJSON(w, http.StatusOK, note)
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	err = h.notes.Delete(id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "note not found")
		return
	}
	if err != nil {
		h.logger.Error("delete note", "note_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete note")
		return
	}

	h.broadcast(websocket.NewMessage("note", "deleted", id))

	w.WriteHeader(http.StatusNoContent)
}
