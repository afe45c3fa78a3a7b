package store

import (
	"errors"
	"testing"
	"time"

	"github.com/calebriley/daybook/internal/model"
)

func TestReminderCRUD(t *testing.T) {
	for name, st := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			when := time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)
			reminder, err := st.Reminders.Create(NewReminder{
				Title:         "Pay rent",
				Description:   ptr("Transfer before noon"),
				ScheduledDate: when,
				Priority:      model.PriorityHigh,
			})
			if err != nil {
				t.Fatalf("create reminder: %v", err)
			}
			if reminder.Priority != model.PriorityHigh {
				t.Errorf("priority = %q, want %q", reminder.Priority, model.PriorityHigh)
			}
			if reminder.IsCompleted || reminder.NotificationSent {
				t.Error("expected flags to default false")
			}
			if !reminder.ScheduledDate.Equal(when) {
				t.Errorf("scheduledDate = %v, want %v", reminder.ScheduledDate, when)
			}

			got, err := st.Reminders.Get(reminder.ID)
			if err != nil {
				t.Fatalf("get reminder: %v", err)
			}
			if got == nil {
				t.Fatal("expected reminder, got nil")
			}
			if got.Description == nil || *got.Description != "Transfer before noon" {
				t.Errorf("description = %v, want %q", got.Description, "Transfer before noon")
			}

			done := true
			updated, err := st.Reminders.Update(reminder.ID, ReminderPatch{IsCompleted: &done})
			if err != nil {
				t.Fatalf("update reminder: %v", err)
			}
			if !updated.IsCompleted {
				t.Error("expected isCompleted true")
			}
			if updated.Title != "Pay rent" {
				t.Errorf("title changed on partial update: %q", updated.Title)
			}

			if err := st.Reminders.Delete(reminder.ID); err != nil {
				t.Fatalf("delete reminder: %v", err)
			}
			if _, err := st.Reminders.Update(reminder.ID, ReminderPatch{}); !errors.Is(err, ErrNotFound) {
				t.Errorf("update deleted: err = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestReminderDefaultPriority(t *testing.T) {
	for name, st := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			reminder, err := st.Reminders.Create(NewReminder{
				Title:         "Water plants",
				ScheduledDate: time.Now().UTC(),
			})
			if err != nil {
				t.Fatalf("create reminder: %v", err)
			}
			if reminder.Priority != model.PriorityMedium {
				t.Errorf("priority = %q, want default %q", reminder.Priority, model.PriorityMedium)
			}
		})
	}
}

func TestReminderPending(t *testing.T) {
	for name, st := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

			due, _ := st.Reminders.Create(NewReminder{Title: "due", ScheduledDate: now.Add(-time.Minute)})
			st.Reminders.Create(NewReminder{Title: "future", ScheduledDate: now.Add(time.Hour)})
			st.Reminders.Create(NewReminder{Title: "completed", ScheduledDate: now.Add(-time.Hour), IsCompleted: true})
			st.Reminders.Create(NewReminder{Title: "notified", ScheduledDate: now.Add(-time.Hour), NotificationSent: true})

			pending, err := st.Reminders.Pending(now)
			if err != nil {
				t.Fatalf("pending: %v", err)
			}
			if len(pending) != 1 || pending[0].ID != due.ID {
				t.Fatalf("pending = %v, want only reminder %d", pending, due.ID)
			}

			// Idempotent without intervening mutation
			again, err := st.Reminders.Pending(now)
			if err != nil {
				t.Fatalf("pending again: %v", err)
			}
			if len(again) != 1 || again[0].ID != due.ID {
				t.Errorf("second pending call differs: %v", again)
			}

			// Once notified, it drops out
			sent := true
			if _, err := st.Reminders.Update(due.ID, ReminderPatch{NotificationSent: &sent}); err != nil {
				t.Fatalf("mark notified: %v", err)
			}
			pending, err = st.Reminders.Pending(now)
			if err != nil {
				t.Fatalf("pending after notify: %v", err)
			}
			if len(pending) != 0 {
				t.Errorf("pending after notify = %v, want empty", pending)
			}
		})
	}
}

func TestReminderRestoreKeepsNotificationSent(t *testing.T) {
	for name, st := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			reminder, _ := st.Reminders.Create(NewReminder{
				Title:            "was notified",
				ScheduledDate:    time.Now().UTC().Add(-time.Hour),
				NotificationSent: true,
			})

			done := true
			if _, err := st.Reminders.Update(reminder.ID, ReminderPatch{IsCompleted: &done}); err != nil {
				t.Fatalf("complete: %v", err)
			}

			// Restoring does not reset the notification flag
			done = false
			restored, err := st.Reminders.Update(reminder.ID, ReminderPatch{IsCompleted: &done})
			if err != nil {
				t.Fatalf("restore: %v", err)
			}
			if restored.IsCompleted {
				t.Error("expected isCompleted false after restore")
			}
			if !restored.NotificationSent {
				t.Error("restore must not clear notificationSent")
			}
		})
	}
}

func TestReminderListOrder(t *testing.T) {
	for name, st := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			later := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
			sooner := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

			a, _ := st.Reminders.Create(NewReminder{Title: "later", ScheduledDate: later})
			b, _ := st.Reminders.Create(NewReminder{Title: "sooner", ScheduledDate: sooner})

			reminders, err := st.Reminders.List()
			if err != nil {
				t.Fatalf("list reminders: %v", err)
			}
			if len(reminders) != 2 {
				t.Fatalf("expected 2 reminders, got %d", len(reminders))
			}
			if reminders[0].ID != b.ID || reminders[1].ID != a.ID {
				t.Errorf("order = %d,%d, want soonest first (%d,%d)",
					reminders[0].ID, reminders[1].ID, b.ID, a.ID)
			}
		})
	}
}
