package model

import "time"

// Note type constants
const (
	NoteTypePlain     = "plain"
	NoteTypeChecklist = "checklist"
	NoteTypeReminder  = "reminder"
)

type Note struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	Category     string     `json:"category"`
	Type         string     `json:"type"`
	IsVoiceNote  bool       `json:"isVoiceNote"`
	ReminderDate *time.Time `json:"reminderDate"`
	IsCompleted  bool       `json:"isCompleted"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}
