package store

import "database/sql"

// NewSQLite assembles a Store over the given SQLite database.
func NewSQLite(db *sql.DB) *Store {
	return &Store{
		Notes:         NewNoteStore(db),
		Expenses:      NewExpenseStore(db),
		Reminders:     NewReminderStore(db),
		Settings:      NewSettingsStore(db),
		Subscriptions: NewSubscriptionStore(db),
	}
}
