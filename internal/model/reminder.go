package model

import "time"

// Reminder priority constants
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

type Reminder struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Description      *string   `json:"description"`
	ScheduledDate    time.Time `json:"scheduledDate"`
	Priority         string    `json:"priority"`
	IsCompleted      bool      `json:"isCompleted"`
	NotificationSent bool      `json:"notificationSent"`
	CreatedAt        time.Time `json:"createdAt"`
}
