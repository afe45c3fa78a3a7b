package store

import (
	"testing"

	"github.com/calebriley/daybook/internal/database"
)

// testStores returns one Store per backend so every contract test runs
// against both the SQLite and the in-memory implementation.
func testStores(t *testing.T) map[string]*Store {
	t.Helper()

	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return map[string]*Store{
		"sqlite": NewSQLite(db),
		"memory": NewMemory(),
	}
}

func ptr[T any](v T) *T {
	return &v
}
