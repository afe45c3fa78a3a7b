package store

import (
	"errors"
	"time"

	"github.com/calebriley/daybook/internal/model"
)

// ErrNotFound is returned by Update and Delete when the id is absent.
// Get signals absence as (nil, nil) instead so callers can distinguish
// "missing" from a storage failure.
var ErrNotFound = errors.New("not found")

// Store bundles the per-entity stores behind one value so the server and
// evaluator receive everything they need at construction time.
type Store struct {
	Notes         Notes
	Expenses      Expenses
	Reminders     Reminders
	Settings      Settings
	Subscriptions Subscriptions
}

type Notes interface {
	// List returns all notes, newest first.
	List() ([]model.Note, error)
	Get(id int64) (*model.Note, error)
	Create(n NewNote) (*model.Note, error)
	Update(id int64, p NotePatch) (*model.Note, error)
	Delete(id int64) error
}

type Expenses interface {
	// List returns all expenses, most recent date first.
	List() ([]model.Expense, error)
	Get(id int64) (*model.Expense, error)
	Create(e NewExpense) (*model.Expense, error)
	Update(id int64, p ExpensePatch) (*model.Expense, error)
	Delete(id int64) error
	// ByDateRange returns expenses whose date falls in [start, end], inclusive.
	ByDateRange(start, end time.Time) ([]model.Expense, error)
}

type Reminders interface {
	// List returns all reminders ordered by scheduled date, soonest first.
	List() ([]model.Reminder, error)
	Get(id int64) (*model.Reminder, error)
	Create(r NewReminder) (*model.Reminder, error)
	Update(id int64, p ReminderPatch) (*model.Reminder, error)
	Delete(id int64) error
	// Pending returns reminders that are due at now and have been neither
	// completed nor notified.
	Pending(now time.Time) ([]model.Reminder, error)
}

type Settings interface {
	// Get returns the singleton settings row, creating it with defaults on
	// first access.
	Get() (*model.Settings, error)
	Update(p SettingsPatch) (*model.Settings, error)
}

type Subscriptions interface {
	// Create upserts by endpoint so re-subscribing a device refreshes its keys.
	Create(endpoint, p256dh, auth, deviceName string) (*model.PushSubscription, error)
	List() ([]model.PushSubscription, error)
	Delete(id int64) error
	DeleteByEndpoint(endpoint string) error
}

// NewNote carries the creatable note fields. Zero values for Category and
// Type take the declared defaults.
type NewNote struct {
	Title        string
	Content      string
	Category     string
	Type         string
	IsVoiceNote  bool
	ReminderDate *time.Time
	IsCompleted  bool
}

func (n NewNote) materialize(id int64, now time.Time) model.Note {
	category := n.Category
	if category == "" {
		category = "general"
	}
	typ := n.Type
	if typ == "" {
		typ = model.NoteTypePlain
	}
	return model.Note{
		ID:           id,
		Title:        n.Title,
		Content:      n.Content,
		Category:     category,
		Type:         typ,
		IsVoiceNote:  n.IsVoiceNote,
		ReminderDate: n.ReminderDate,
		IsCompleted:  n.IsCompleted,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// NotePatch is a partial update; nil fields are left untouched.
type NotePatch struct {
	Title        *string
	Content      *string
	Category     *string
	Type         *string
	IsVoiceNote  *bool
	ReminderDate *time.Time
	IsCompleted  *bool
}

func (p NotePatch) apply(n *model.Note, now time.Time) {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.Category != nil {
		n.Category = *p.Category
	}
	if p.Type != nil {
		n.Type = *p.Type
	}
	if p.IsVoiceNote != nil {
		n.IsVoiceNote = *p.IsVoiceNote
	}
	if p.ReminderDate != nil {
		n.ReminderDate = p.ReminderDate
	}
	if p.IsCompleted != nil {
		n.IsCompleted = *p.IsCompleted
	}
	n.UpdatedAt = now
}

// NewExpense carries the creatable expense fields. A nil Date defaults to
// creation time and an empty Currency defaults to USD.
type NewExpense struct {
	Description string
	Amount      string
	Currency    string
	Category    string
	Date        *time.Time
}

func (e NewExpense) materialize(id int64, now time.Time) model.Expense {
	currency := e.Currency
	if currency == "" {
		currency = "USD"
	}
	date := now
	if e.Date != nil {
		date = *e.Date
	}
	return model.Expense{
		ID:          id,
		Description: e.Description,
		Amount:      e.Amount,
		Currency:    currency,
		Category:    e.Category,
		Date:        date,
		CreatedAt:   now,
	}
}

type ExpensePatch struct {
	Description *string
	Amount      *string
	Currency    *string
	Category    *string
	Date        *time.Time
}

func (p ExpensePatch) apply(e *model.Expense) {
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.Currency != nil {
		e.Currency = *p.Currency
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
}

// NewReminder carries the creatable reminder fields. An empty Priority
// defaults to medium.
type NewReminder struct {
	Title            string
	Description      *string
	ScheduledDate    time.Time
	Priority         string
	IsCompleted      bool
	NotificationSent bool
}

func (r NewReminder) materialize(id int64, now time.Time) model.Reminder {
	priority := r.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	return model.Reminder{
		ID:               id,
		Title:            r.Title,
		Description:      r.Description,
		ScheduledDate:    r.ScheduledDate,
		Priority:         priority,
		IsCompleted:      r.IsCompleted,
		NotificationSent: r.NotificationSent,
		CreatedAt:        now,
	}
}

// ReminderPatch is a partial update; nil fields are left untouched.
// Restoring a completed reminder (IsCompleted back to false) deliberately
// does not touch NotificationSent.
type ReminderPatch struct {
	Title            *string
	Description      *string
	ScheduledDate    *time.Time
	Priority         *string
	IsCompleted      *bool
	NotificationSent *bool
}

func (p ReminderPatch) apply(r *model.Reminder) {
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.Description != nil {
		r.Description = p.Description
	}
	if p.ScheduledDate != nil {
		r.ScheduledDate = *p.ScheduledDate
	}
	if p.Priority != nil {
		r.Priority = *p.Priority
	}
	if p.IsCompleted != nil {
		r.IsCompleted = *p.IsCompleted
	}
	if p.NotificationSent != nil {
		r.NotificationSent = *p.NotificationSent
	}
}

type SettingsPatch struct {
	DarkMode                *bool
	DefaultCurrency         *string
	VoiceRecognitionEnabled *bool
	NotificationsEnabled    *bool
}

func (p SettingsPatch) apply(s *model.Settings, now time.Time) {
	if p.DarkMode != nil {
		s.DarkMode = *p.DarkMode
	}
	if p.DefaultCurrency != nil {
		s.DefaultCurrency = *p.DefaultCurrency
	}
	if p.VoiceRecognitionEnabled != nil {
		s.VoiceRecognitionEnabled = *p.VoiceRecognitionEnabled
	}
	if p.NotificationsEnabled != nil {
		s.NotificationsEnabled = *p.NotificationsEnabled
	}
	s.UpdatedAt = now
}
