package model

import "time"

// Settings is a singleton row; SettingsID is its fixed identity.
const SettingsID int64 = 1

type Settings struct {
	ID                      int64     `json:"id"`
	DarkMode                bool      `json:"darkMode"`
	DefaultCurrency         string    `json:"defaultCurrency"`
	VoiceRecognitionEnabled bool      `json:"voiceRecognitionEnabled"`
	NotificationsEnabled    bool      `json:"notificationsEnabled"`
	UpdatedAt               time.Time `json:"updatedAt"`
}

// DefaultSettings returns the values the singleton is seeded with on first access.
func DefaultSettings(now time.Time) Settings {
	return Settings{
		ID:                      SettingsID,
		DarkMode:                false,
		DefaultCurrency:         "USD",
		VoiceRecognitionEnabled: true,
		NotificationsEnabled:    true,
		UpdatedAt:               now,
	}
}
