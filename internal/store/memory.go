package store

import (
	"sort"
	"sync"
	"time"

	"github.com/calebriley/daybook/internal/model"
)

// NewMemory assembles a Store backed by in-process maps. Useful for running
// without a database file and for tests; contents are lost on restart.
func NewMemory() *Store {
	return &Store{
		Notes:         &memNotes{notes: make(map[int64]model.Note)},
		Expenses:      &memExpenses{expenses: make(map[int64]model.Expense)},
		Reminders:     &memReminders{reminders: make(map[int64]model.Reminder)},
		Settings:      &memSettings{},
		Subscriptions: &memSubscriptions{subs: make(map[int64]model.PushSubscription)},
	}
}

type memNotes struct {
	mu     sync.RWMutex
	notes  map[int64]model.Note
	nextID int64
}

func (s *memNotes) List() ([]model.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notes := make([]model.Note, 0, len(s.notes))
	for _, n := range s.notes {
		notes = append(notes, cloneNote(n))
	}
	sort.Slice(notes, func(i, j int) bool {
		if !notes[i].CreatedAt.Equal(notes[j].CreatedAt) {
			return notes[i].CreatedAt.After(notes[j].CreatedAt)
		}
		return notes[i].ID > notes[j].ID
	})
	return notes, nil
}

func (s *memNotes) Get(id int64) (*model.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.notes[id]
	if !ok {
		return nil, nil
	}
	c := cloneNote(n)
	return &c, nil
}

func (s *memNotes) Create(nn NewNote) (*model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	n := nn.materialize(s.nextID, time.Now().UTC())
	s.notes[n.ID] = cloneNote(n)
	return &n, nil
}

func (s *memNotes) Update(id int64, patch NotePatch) (*model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notes[id]
	if !ok {
		return nil, ErrNotFound
	}
	patch.apply(&n, time.Now().UTC())
	s.notes[id] = cloneNote(n)
	return &n, nil
}

func (s *memNotes) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notes[id]; !ok {
		return ErrNotFound
	}
	delete(s.notes, id)
	return nil
}

type memExpenses struct {
	mu       sync.RWMutex
	expenses map[int64]model.Expense
	nextID   int64
}

func (s *memExpenses) List() ([]model.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	expenses := make([]model.Expense, 0, len(s.expenses))
	for _, e := range s.expenses {
		expenses = append(expenses, e)
	}
	sortExpenses(expenses)
	return expenses, nil
}

func (s *memExpenses) Get(id int64) (*model.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.expenses[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (s *memExpenses) Create(ne NewExpense) (*model.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	e := ne.materialize(s.nextID, time.Now().UTC())
	s.expenses[e.ID] = e
	return &e, nil
}

func (s *memExpenses) Update(id int64, patch ExpensePatch) (*model.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.expenses[id]
	if !ok {
		return nil, ErrNotFound
	}
	patch.apply(&e)
	s.expenses[id] = e
	return &e, nil
}

func (s *memExpenses) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.expenses[id]; !ok {
		return ErrNotFound
	}
	delete(s.expenses, id)
	return nil
}

func (s *memExpenses) ByDateRange(start, end time.Time) ([]model.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var expenses []model.Expense
	for _, e := range s.expenses {
		if e.Date.Before(start) || e.Date.After(end) {
			continue
		}
		expenses = append(expenses, e)
	}
	sortExpenses(expenses)
	return expenses, nil
}

func sortExpenses(expenses []model.Expense) {
	sort.Slice(expenses, func(i, j int) bool {
		if !expenses[i].Date.Equal(expenses[j].Date) {
			return expenses[i].Date.After(expenses[j].Date)
		}
		return expenses[i].ID > expenses[j].ID
	})
}

type memReminders struct {
	mu        sync.RWMutex
	reminders map[int64]model.Reminder
	nextID    int64
}

func (s *memReminders) List() ([]model.Reminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reminders := make([]model.Reminder, 0, len(s.reminders))
	for _, r := range s.reminders {
		reminders = append(reminders, cloneReminder(r))
	}
	sort.Slice(reminders, func(i, j int) bool {
		if !reminders[i].ScheduledDate.Equal(reminders[j].ScheduledDate) {
			return reminders[i].ScheduledDate.Before(reminders[j].ScheduledDate)
		}
		return reminders[i].ID < reminders[j].ID
	})
	return reminders, nil
}

func (s *memReminders) Get(id int64) (*model.Reminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reminders[id]
	if !ok {
		return nil, nil
	}
	c := cloneReminder(r)
	return &c, nil
}

func (s *memReminders) Create(nr NewReminder) (*model.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	r := nr.materialize(s.nextID, time.Now().UTC())
	s.reminders[r.ID] = cloneReminder(r)
	return &r, nil
}

func (s *memReminders) Update(id int64, patch ReminderPatch) (*model.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reminders[id]
	if !ok {
		return nil, ErrNotFound
	}
	patch.apply(&r)
	s.reminders[id] = cloneReminder(r)
	return &r, nil
}

func (s *memReminders) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reminders[id]; !ok {
		return ErrNotFound
	}
	delete(s.reminders, id)
	return nil
}

func (s *memReminders) Pending(now time.Time) ([]model.Reminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var pending []model.Reminder
	for _, r := range s.reminders {
		if r.IsCompleted || r.NotificationSent || r.ScheduledDate.After(now) {
			continue
		}
		pending = append(pending, cloneReminder(r))
	}
	sort.Slice(pending, func(i, j int) bool {
		if !pending[i].ScheduledDate.Equal(pending[j].ScheduledDate) {
			return pending[i].ScheduledDate.Before(pending[j].ScheduledDate)
		}
		return pending[i].ID < pending[j].ID
	})
	return pending, nil
}

type memSettings struct {
	mu       sync.Mutex
	settings *model.Settings
}

func (s *memSettings) Get() (*model.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.settings == nil {
		defaults := model.DefaultSettings(time.Now().UTC())
		s.settings = &defaults
	}
	c := *s.settings
	return &c, nil
}

func (s *memSettings) Update(patch SettingsPatch) (*model.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.settings == nil {
		defaults := model.DefaultSettings(time.Now().UTC())
		s.settings = &defaults
	}
	patch.apply(s.settings, time.Now().UTC())
	c := *s.settings
	return &c, nil
}

type memSubscriptions struct {
	mu     sync.RWMutex
	subs   map[int64]model.PushSubscription
	nextID int64
}

func (s *memSubscriptions) Create(endpoint, p256dh, auth, deviceName string) (*model.PushSubscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, sub := range s.subs {
		if sub.Endpoint == endpoint {
			sub.P256dhKey = p256dh
			sub.AuthKey = auth
			sub.DeviceName = deviceName
			s.subs[id] = sub
			return &sub, nil
		}
	}

	s.nextID++
	sub := model.PushSubscription{
		ID:         s.nextID,
		Endpoint:   endpoint,
		P256dhKey:  p256dh,
		AuthKey:    auth,
		DeviceName: deviceName,
		CreatedAt:  time.Now().UTC(),
	}
	s.subs[sub.ID] = sub
	return &sub, nil
}

func (s *memSubscriptions) List() ([]model.PushSubscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	subs := make([]model.PushSubscription, 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	sort.Slice(subs, func(i, j int) bool {
		if !subs[i].CreatedAt.Equal(subs[j].CreatedAt) {
			return subs[i].CreatedAt.After(subs[j].CreatedAt)
		}
		return subs[i].ID > subs[j].ID
	})
	return subs, nil
}

func (s *memSubscriptions) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subs[id]; !ok {
		return ErrNotFound
	}
	delete(s.subs, id)
	return nil
}

func (s *memSubscriptions) DeleteByEndpoint(endpoint string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, sub := range s.subs {
		if sub.Endpoint == endpoint {
			delete(s.subs, id)
			return nil
		}
	}
	return nil
}

// cloneNote and cloneReminder copy pointer fields so callers never alias
// stored state.
func cloneNote(n model.Note) model.Note {
	if n.ReminderDate != nil {
		t := *n.ReminderDate
		n.ReminderDate = &t
	}
	return n
}

func cloneReminder(r model.Reminder) model.Reminder {
	if r.Description != nil {
		d := *r.Description
		r.Description = &d
	}
	return r
}
