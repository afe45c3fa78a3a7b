// Package reminder runs the periodic due-check over scheduled reminders.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/calebriley/daybook/internal/model"
	"github.com/calebriley/daybook/internal/notify"
	"github.com/calebriley/daybook/internal/store"
)

const defaultInterval = 60 * time.Second

// Evaluator scans for due reminders on a fixed interval, fires a notification
// for each, and marks it notified so the next scan skips it. Ticks run
// serialized on a single goroutine: a scan never starts before the previous
// one's writes have settled.
type Evaluator struct {
	mu        sync.RWMutex
	reminders store.Reminders
	settings  store.Settings
	notifier  notify.Notifier
	interval  time.Duration
	now       func() time.Time
	logger    *slog.Logger
	cancel    context.CancelFunc
	done      chan struct{}
}

func NewEvaluator(reminders store.Reminders, settings store.Settings, notifier notify.Notifier, logger *slog.Logger) *Evaluator {
	return &Evaluator{
		reminders: reminders,
		settings:  settings,
		notifier:  notifier,
		interval:  defaultInterval,
		now:       time.Now,
		logger:    logger,
	}
}

// Start begins the evaluator loop.
func (e *Evaluator) Start(ctx context.Context) {
	e.mu.Lock()
	ctx, e.cancel = context.WithCancel(ctx)
	e.done = make(chan struct{})
	e.mu.Unlock()

	go func() {
		defer close(e.done)
		ticker := time.NewTicker(e.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				e.tick()
			}
		}
	}()
}

// Stop cancels the loop and waits for the in-flight tick to finish.
func (e *Evaluator) Stop() {
	e.mu.RLock()
	cancel := e.cancel
	done := e.done
	e.mu.RUnlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

func (e *Evaluator) tick() {
	now := e.now().UTC()

	pending, err := e.reminders.Pending(now)
	if err != nil {
		e.logger.Error("list pending reminders", "error", err)
		return
	}
	if len(pending) == 0 {
		return
	}

	settings, err := e.settings.Get()
	if err != nil {
		// Without the gate we can't tell whether delivery is allowed;
		// leave the batch for the next tick.
		e.logger.Error("read settings", "error", err)
		return
	}

	for _, r := range pending {
		e.process(r, settings.NotificationsEnabled)
	}
}

// process handles one due reminder. Failures are isolated: a bad reminder
// never aborts the rest of the batch.
func (e *Evaluator) process(r model.Reminder, deliveryEnabled bool) {
	if deliveryEnabled {
		body := "Reminder is due!"
		if r.Description != nil && *r.Description != "" {
			body = *r.Description
		}
		tag := fmt.Sprintf("reminder-%d", r.ID)

		// Fire-and-forget: a transport failure is logged but still counts
		// as consuming the due signal.
		if err := e.notifier.Show(r.Title, body, tag); err != nil {
			e.logger.Error("show notification", "reminder_id", r.ID, "error", err)
		}
	}

	// Persist after firing. If this write fails the reminder re-fires on the
	// next tick: delivery is at-least-once, not exactly-once.
	sent := true
	if _, err := e.reminders.Update(r.ID, store.ReminderPatch{NotificationSent: &sent}); err != nil {
		e.logger.Error("mark reminder notified", "reminder_id", r.ID, "error", err)
		return
	}

	e.logger.Info("reminder notified", "reminder_id", r.ID, "delivered", deliveryEnabled)
}
