package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/calebriley/daybook/internal/model"
	"github.com/calebriley/daybook/internal/store"
	"github.com/calebriley/daybook/internal/websocket"
)

// amounts are fixed-point strings with at most two decimal places
var amountRegexp = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

type ExpenseHandler struct {
	expenses store.Expenses
	hub      *websocket.Hub
	logger   *slog.Logger
}

func NewExpenseHandler(expenses store.Expenses, hub *websocket.Hub, logger *slog.Logger) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses, hub: hub, logger: logger}
}

func (h *ExpenseHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

type createExpenseRequest struct {
	Description string     `json:"description"`
	Amount      string     `json:"amount"`
	Currency    string     `json:"currency"`
	Category    string     `json:"category"`
	Date        *time.Time `json:"date"`
}

type patchExpenseRequest struct {
	Description *string    `json:"description"`
	Amount      *string    `json:"amount"`
	Currency    *string    `json:"currency"`
	Category    *string    `json:"category"`
	Date        *time.Time `json:"date"`
}

func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.expenses.List()
	if err != nil {
		h.logger.Error("list expenses", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list expenses")
		return
	}
	if expenses == nil {
		expenses = []model.Expense{}
	}
	writeJSON(w, http.StatusOK, expenses)
}

func (h *ExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	expense, err := h.expenses.Get(id)
	if err != nil {
		h.logger.Error("get expense", "expense_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get expense")
		return
	}
	if expense == nil {
		writeError(w, http.StatusNotFound, "expense not found")
		return
	}
	writeJSON(w, http.StatusOK, expense)
}

// ListByRange handles GET /api/expenses/range?start=...&end=... with bounds
// accepted as RFC3339 or YYYY-MM-DD; the range is inclusive on both ends.
func (h *ExpenseHandler) ListByRange(w http.ResponseWriter, r *http.Request) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	if startStr == "" || endStr == "" {
		writeError(w, http.StatusBadRequest, "start and end query parameters are required")
		return
	}

	start, err := parseFlexibleTime(startStr, false)
	if err != nil {
		writeError(w, http.StatusBadRequest, "start must be RFC3339 or YYYY-MM-DD format")
		return
	}
	end, err := parseFlexibleTime(endStr, true)
	if err != nil {
		writeError(w, http.StatusBadRequest, "end must be RFC3339 or YYYY-MM-DD format")
		return
	}

	expenses, err := h.expenses.ByDateRange(start, end)
	if err != nil {
		h.logger.Error("expenses by range", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list expenses")
		return
	}
	if expenses == nil {
		expenses = []model.Expense{}
	}
	writeJSON(w, http.StatusOK, expenses)
}

func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Description = strings.TrimSpace(req.Description)
	if req.Description == "" {
		writeError(w, http.StatusBadRequest, "description is required")
		return
	}
	if !amountRegexp.MatchString(req.Amount) {
		writeError(w, http.StatusBadRequest, "amount must be a decimal with at most two places")
		return
	}
	if strings.TrimSpace(req.Category) == "" {
		writeError(w, http.StatusBadRequest, "category is required")
		return
	}

	expense, err := h.expenses.Create(store.NewExpense{
		Description: req.Description,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Category:    req.Category,
		Date:        req.Date,
	})
	if err != nil {
		h.logger.Error("create expense", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create expense")
		return
	}

	h.broadcast(websocket.NewMessage("expense", "created", expense.ID))

	writeJSON(w, http.StatusCreated, expense)
}

func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req patchExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if req.Description != nil && strings.TrimSpace(*req.Description) == "" {
		writeError(w, http.StatusBadRequest, "description cannot be empty")
		return
	}
	if req.Amount != nil && !amountRegexp.MatchString(*req.Amount) {
		writeError(w, http.StatusBadRequest, "amount must be a decimal with at most two places")
		return
	}

	expense, err := h.expenses.Update(id, store.ExpensePatch{
		Description: req.Description,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Category:    req.Category,
		Date:        req.Date,
	})
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "expense not found")
		return
	}
	if err != nil {
		h.logger.Error("update expense", "expense_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update expense")
		return
	}

	h.broadcast(websocket.NewMessage("expense", "updated", id))

	writeJSON(w, http.StatusOK, expense)
}

func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	err = h.expenses.Delete(id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "expense not found")
		return
	}
	if err != nil {
		h.logger.Error("delete expense", "expense_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete expense")
		return
	}

	h.broadcast(websocket.NewMessage("expense", "deleted", id))

	w.WriteHeader(http.StatusNoContent)
}
