package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/calebriley/daybook/internal/model"
)

// ReminderStore is the SQLite-backed Reminders implementation.
type ReminderStore struct {
	db *sql.DB
}

func NewReminderStore(db *sql.DB) *ReminderStore {
	return &ReminderStore{db: db}
}

const reminderCols = `id, title, description, scheduled_date, priority, is_completed, notification_sent, created_at`

func scanReminder(scanner interface{ Scan(...any) error }) (*model.Reminder, error) {
	var r model.Reminder
	var description sql.NullString
	var isCompleted, notificationSent int

	err := scanner.Scan(
		&r.ID, &r.Title, &description, &r.ScheduledDate, &r.Priority,
		&isCompleted, &notificationSent, &r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	r.IsCompleted = isCompleted != 0
	r.NotificationSent = notificationSent != 0
	if description.Valid {
		d := description.String
		r.Description = &d
	}
	return &r, nil
}

func (s *ReminderStore) List() ([]model.Reminder, error) {
	rows, err := s.db.Query(`SELECT ` + reminderCols + ` FROM reminders ORDER BY scheduled_date ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	defer rows.Close()
	return collectReminders(rows)
}

func (s *ReminderStore) Get(id int64) (*model.Reminder, error) {
	row := s.db.QueryRow(`SELECT `+reminderCols+` FROM reminders WHERE id = ?`, id)
	r, err := scanReminder(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get reminder: %w", err)
	}
	return r, nil
}

func (s *ReminderStore) Create(nr NewReminder) (*model.Reminder, error) {
	r := nr.materialize(0, time.Now().UTC())

	result, err := s.db.Exec(
		`INSERT INTO reminders (title, description, scheduled_date, priority, is_completed, notification_sent, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.Title, nullString(r.Description), r.ScheduledDate, r.Priority,
		boolInt(r.IsCompleted), boolInt(r.NotificationSent), r.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert reminder: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.Get(id)
}

func (s *ReminderStore) Update(id int64, patch ReminderPatch) (*model.Reminder, error) {
	r, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrNotFound
	}

	patch.apply(r)

	_, err = s.db.Exec(
		`UPDATE reminders SET title = ?, description = ?, scheduled_date = ?, priority = ?,
		 is_completed = ?, notification_sent = ? WHERE id = ?`,
		r.Title, nullString(r.Description), r.ScheduledDate, r.Priority,
		boolInt(r.IsCompleted), boolInt(r.NotificationSent), id,
	)
	if err != nil {
		return nil, fmt.Errorf("update reminder: %w", err)
	}
	return s.Get(id)
}

func (s *ReminderStore) Delete(id int64) error {
	result, err := s.db.Exec(`DELETE FROM reminders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete reminder: %w", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ReminderStore) Pending(now time.Time) ([]model.Reminder, error) {
	rows, err := s.db.Query(
		`SELECT `+reminderCols+` FROM reminders
		 WHERE is_completed = 0 AND notification_sent = 0 AND scheduled_date <= ?
		 ORDER BY scheduled_date ASC, id ASC`,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("pending reminders: %w", err)
	}
	defer rows.Close()
	return collectReminders(rows)
}

func collectReminders(rows *sql.Rows) ([]model.Reminder, error) {
	var reminders []model.Reminder
	for rows.Next() {
		r, err := scanReminder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reminder: %w", err)
		}
		reminders = append(reminders, *r)
	}
	return reminders, rows.Err()
}
