package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/calebriley/daybook/internal/handler"
	"github.com/calebriley/daybook/internal/middleware"
	"github.com/calebriley/daybook/internal/notify"
	"github.com/calebriley/daybook/internal/reminder"
	"github.com/calebriley/daybook/internal/store"
	ws "github.com/calebriley/daybook/internal/websocket"
)

type Server struct {
	hub       *ws.Hub
	noteH     *handler.NoteHandler
	expenseH  *handler.ExpenseHandler
	reminderH *handler.ReminderHandler
	settingsH *handler.SettingsHandler
	pushH     *handler.PushHandler
	evaluator *reminder.Evaluator
	logger    *slog.Logger
}

// New wires the handlers, the notification port, and the reminder evaluator
// over the given store. The store backend (SQLite or memory) is the caller's
// choice; the server never sees the difference.
func New(st *store.Store, pushCfg notify.Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	webPush := notify.NewWebPush(pushCfg, st.Subscriptions, logger.With("component", "push"))
	evaluator := reminder.NewEvaluator(st.Reminders, st.Settings, webPush, logger.With("component", "reminder"))

	// Push endpoints only make sense with VAPID keys configured. The
	// evaluator keeps running either way: with delivery unsupported it still
	// consumes due reminders so there is no backlog burst later.
	var pushH *handler.PushHandler
	if webPush.Supported() {
		pushH = handler.NewPushHandler(st.Subscriptions, webPush, logger.With("component", "push_handler"))
	}

	return &Server{
		hub:       hub,
		noteH:     handler.NewNoteHandler(st.Notes, hub, logger.With("component", "note")),
		expenseH:  handler.NewExpenseHandler(st.Expenses, hub, logger.With("component", "expense")),
		reminderH: handler.NewReminderHandler(st.Reminders, hub, logger.With("component", "reminder_handler")),
		settingsH: handler.NewSettingsHandler(st.Settings, hub, logger.With("component", "settings")),
		pushH:     pushH,
		evaluator: evaluator,
		logger:    logger,
	}
}

// Evaluator returns the reminder evaluator so main can start and stop it.
func (s *Server) Evaluator() *reminder.Evaluator {
	return s.evaluator
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)

	// Notes
	mux.HandleFunc("GET /api/notes", s.noteH.List)
	mux.HandleFunc("POST /api/notes", s.noteH.Create)
	mux.HandleFunc("GET /api/notes/{id}", s.noteH.Get)
	mux.HandleFunc("PUT /api/notes/{id}", s.noteH.Update)
	mux.HandleFunc("DELETE /api/notes/{id}", s.noteH.Delete)

	// Expenses
	mux.HandleFunc("GET /api/expenses", s.expenseH.List)
	mux.HandleFunc("POST /api/expenses", s.expenseH.Create)
	mux.HandleFunc("GET /api/expenses/range", s.expenseH.ListByRange)
	mux.HandleFunc("GET /api/expenses/{id}", s.expenseH.Get)
	mux.HandleFunc("PUT /api/expenses/{id}", s.expenseH.Update)
	mux.HandleFunc("DELETE /api/expenses/{id}", s.expenseH.Delete)

	// Reminders
	mux.HandleFunc("GET /api/reminders", s.reminderH.List)
	mux.HandleFunc("POST /api/reminders", s.reminderH.Create)
	mux.HandleFunc("GET /api/reminders/{id}", s.reminderH.Get)
	mux.HandleFunc("PUT /api/reminders/{id}", s.reminderH.Update)
	mux.HandleFunc("DELETE /api/reminders/{id}", s.reminderH.Delete)

	// Settings
	mux.HandleFunc("GET /api/settings", s.settingsH.Get)
	mux.HandleFunc("PUT /api/settings", s.settingsH.Update)

	// Push notifications
	if s.pushH != nil {
		mux.HandleFunc("POST /api/push/subscribe", s.pushH.Subscribe)
		mux.HandleFunc("GET /api/push/subscriptions", s.pushH.ListSubscriptions)
		mux.HandleFunc("DELETE /api/push/subscriptions/{id}", s.pushH.Unsubscribe)
		mux.HandleFunc("GET /api/push/vapid-key", s.pushH.GetVAPIDKey)
		mux.HandleFunc("POST /api/push/test", s.pushH.TestNotification)
	}

	// WebSocket
	mux.HandleFunc("GET /ws", ws.Handle(s.hub))

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
