package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/calebriley/daybook/internal/model"
)

// SettingsStore is the SQLite-backed Settings implementation. The table holds
// exactly one row with a fixed id; Get seeds it with defaults on first access.
type SettingsStore struct {
	db *sql.DB
}

func NewSettingsStore(db *sql.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

func (s *SettingsStore) Get() (*model.Settings, error) {
	set, err := s.fetch()
	if err != nil {
		return nil, err
	}
	if set != nil {
		return set, nil
	}

	defaults := model.DefaultSettings(time.Now().UTC())
	_, err = s.db.Exec(
		`INSERT INTO settings (id, dark_mode, default_currency, voice_recognition_enabled, notifications_enabled, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO NOTHING`,
		defaults.ID, boolInt(defaults.DarkMode), defaults.DefaultCurrency,
		boolInt(defaults.VoiceRecognitionEnabled), boolInt(defaults.NotificationsEnabled), defaults.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("seed settings: %w", err)
	}
	return s.fetch()
}

func (s *SettingsStore) Update(patch SettingsPatch) (*model.Settings, error) {
	set, err := s.Get()
	if err != nil {
		return nil, err
	}

	patch.apply(set, time.Now().UTC())

	_, err = s.db.Exec(
		`UPDATE settings SET dark_mode = ?, default_currency = ?, voice_recognition_enabled = ?,
		 notifications_enabled = ?, updated_at = ? WHERE id = ?`,
		boolInt(set.DarkMode), set.DefaultCurrency, boolInt(set.VoiceRecognitionEnabled),
		boolInt(set.NotificationsEnabled), set.UpdatedAt, set.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}
	return s.fetch()
}

func (s *SettingsStore) fetch() (*model.Settings, error) {
	var set model.Settings
	var darkMode, voice, notifications int
	err := s.db.QueryRow(
		`SELECT id, dark_mode, default_currency, voice_recognition_enabled, notifications_enabled, updated_at
		 FROM settings WHERE id = ?`, model.SettingsID,
	).Scan(&set.ID, &darkMode, &set.DefaultCurrency, &voice, &notifications, &set.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	set.DarkMode = darkMode != 0
	set.VoiceRecognitionEnabled = voice != 0
	set.NotificationsEnabled = notifications != 0
	return &set, nil
}
