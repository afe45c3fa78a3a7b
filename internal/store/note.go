package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/calebriley/daybook/internal/model"
)

// NoteStore is the SQLite-backed Notes implementation.
type NoteStore struct {
	db *sql.DB
}

func NewNoteStore(db *sql.DB) *NoteStore {
	return &NoteStore{db: db}
}

const noteCols = `id, title, content, category, type, is_voice_note, reminder_date, is_completed, created_at, updated_at`

func scanNote(scanner interface{ Scan(...any) error }) (*model.Note, error) {
	var n model.Note
	var isVoiceNote, isCompleted int
	var reminderDate sql.NullTime

	err := scanner.Scan(
		&n.ID, &n.Title, &n.Content, &n.Category, &n.Type,
		&isVoiceNote, &reminderDate, &isCompleted, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	n.IsVoiceNote = isVoiceNote != 0
	n.IsCompleted = isCompleted != 0
	if reminderDate.Valid {
		t := reminderDate.Time
		n.ReminderDate = &t
	}
	return &n, nil
}

func (s *NoteStore) List() ([]model.Note, error) {
	rows, err := s.db.Query(`SELECT ` + noteCols + ` FROM notes ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var notes []model.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, *n)
	}
	return notes, rows.Err()
}

func (s *NoteStore) Get(id int64) (*model.Note, error) {
	row := s.db.QueryRow(`SELECT `+noteCols+` FROM notes WHERE id = ?`, id)
	n, err := scanNote(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}
	return n, nil
}

func (s *NoteStore) Create(nn NewNote) (*model.Note, error) {
	n := nn.materialize(0, time.Now().UTC())

	result, err := s.db.Exec(
		`INSERT INTO notes (title, content, category, type, is_voice_note, reminder_date, is_completed, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.Title, n.Content, n.Category, n.Type, boolInt(n.IsVoiceNote),
		nullTime(n.ReminderDate), boolInt(n.IsCompleted), n.CreatedAt, n.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.Get(id)
}

func (s *NoteStore) Update(id int64, patch NotePatch) (*model.Note, error) {
	n, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, ErrNotFound
	}

	patch.apply(n, time.Now().UTC())

	_, err = s.db.Exec(
		`UPDATE notes SET title = ?, content = ?, category = ?, type = ?, is_voice_note = ?,
		 reminder_date = ?, is_completed = ?, updated_at = ? WHERE id = ?`,
		n.Title, n.Content, n.Category, n.Type, boolInt(n.IsVoiceNote),
		nullTime(n.ReminderDate), boolInt(n.IsCompleted), n.UpdatedAt, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	return s.Get(id)
}

func (s *NoteStore) Delete(id int64) error {
	result, err := s.db.Exec(`DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
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

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
