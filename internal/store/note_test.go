package store

import (
	"errors"
	"testing"
	"time"

	"github.com/calebriley/daybook/internal/model"
)

func TestNoteCRUD(t *testing.T) {
	for name, st := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			note, err := st.Notes.Create(NewNote{Title: "Groceries", Content: "milk, eggs"})
			if err != nil {
				t.Fatalf("create note: %v", err)
			}
			if note.ID == 0 {
				t.Error("expected assigned id")
			}
			if note.Title != "Groceries" {
				t.Errorf("title = %q, want %q", note.Title, "Groceries")
			}
			if note.Category != "general" {
				t.Errorf("category = %q, want default %q", note.Category, "general")
			}
			if note.Type != model.NoteTypePlain {
				t.Errorf("type = %q, want default %q", note.Type, model.NoteTypePlain)
			}
			if note.IsVoiceNote || note.IsCompleted {
				t.Error("expected flags to default false")
			}
			if note.UpdatedAt.Before(note.CreatedAt) {
				t.Error("updatedAt must not precede createdAt")
			}

			// Get immediately after create returns the creation result
			got, err := st.Notes.Get(note.ID)
			if err != nil {
				t.Fatalf("get note: %v", err)
			}
			if got == nil {
				t.Fatal("expected note, got nil")
			}
			if got.ID != note.ID || got.Title != note.Title || got.Content != note.Content ||
				got.Category != note.Category || got.Type != note.Type {
				t.Errorf("get = %+v, want %+v", got, note)
			}
			if !got.CreatedAt.Equal(note.CreatedAt) {
				t.Errorf("createdAt = %v, want %v", got.CreatedAt, note.CreatedAt)
			}

			// Partial update leaves other fields untouched
			updated, err := st.Notes.Update(note.ID, NotePatch{Content: ptr("milk, eggs, bread")})
			if err != nil {
				t.Fatalf("update note: %v", err)
			}
			if updated.Content != "milk, eggs, bread" {
				t.Errorf("content = %q, want %q", updated.Content, "milk, eggs, bread")
			}
			if updated.Title != "Groceries" {
				t.Errorf("title changed on partial update: %q", updated.Title)
			}
			if updated.UpdatedAt.Before(note.UpdatedAt) {
				t.Error("updatedAt not refreshed on update")
			}
			if !updated.CreatedAt.Equal(note.CreatedAt) {
				t.Error("createdAt must be immutable")
			}

			// Delete
			if err := st.Notes.Delete(note.ID); err != nil {
				t.Fatalf("delete note: %v", err)
			}
			got, err = st.Notes.Get(note.ID)
			if err != nil {
				t.Fatalf("get deleted note: %v", err)
			}
			if got != nil {
				t.Error("expected nil after delete")
			}
		})
	}
}

func TestNoteNotFound(t *testing.T) {
	for name, st := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			got, err := st.Notes.Get(999)
			if err != nil {
				t.Fatalf("get absent note: %v", err)
			}
			if got != nil {
				t.Error("expected nil for absent id")
			}

			if _, err := st.Notes.Update(999, NotePatch{Title: ptr("x")}); !errors.Is(err, ErrNotFound) {
				t.Errorf("update absent id: err = %v, want ErrNotFound", err)
			}
			if err := st.Notes.Delete(999); !errors.Is(err, ErrNotFound) {
				t.Errorf("delete absent id: err = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestNoteListOrder(t *testing.T) {
	for name, st := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			first, _ := st.Notes.Create(NewNote{Title: "first"})
			second, _ := st.Notes.Create(NewNote{Title: "second"})
			third, _ := st.Notes.Create(NewNote{Title: "third"})

			notes, err := st.Notes.List()
			if err != nil {
				t.Fatalf("list notes: %v", err)
			}
			if len(notes) != 3 {
				t.Fatalf("expected 3 notes, got %d", len(notes))
			}
			// Newest first; createdAt ties break by id descending
			if notes[0].ID != third.ID || notes[1].ID != second.ID || notes[2].ID != first.ID {
				t.Errorf("order = %d,%d,%d, want %d,%d,%d",
					notes[0].ID, notes[1].ID, notes[2].ID, third.ID, second.ID, first.ID)
			}
		})
	}
}

func TestNoteReminderFields(t *testing.T) {
	for name, st := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			remindAt := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
			note, err := st.Notes.Create(NewNote{
				Title:        "Call dentist",
				Type:         model.NoteTypeReminder,
				ReminderDate: &remindAt,
				IsVoiceNote:  true,
			})
			if err != nil {
				t.Fatalf("create note: %v", err)
			}

			got, err := st.Notes.Get(note.ID)
			if err != nil {
				t.Fatalf("get note: %v", err)
			}
			if got.Type != model.NoteTypeReminder {
				t.Errorf("type = %q, want %q", got.Type, model.NoteTypeReminder)
			}
			if !got.IsVoiceNote {
				t.Error("expected isVoiceNote true")
			}
			if got.ReminderDate == nil || !got.ReminderDate.Equal(remindAt) {
				t.Errorf("reminderDate = %v, want %v", got.ReminderDate, remindAt)
			}
		})
	}
}
