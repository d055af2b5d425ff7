package core

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/glossaryweb/glossary/internal/config"
	"github.com/glossaryweb/glossary/internal/db"
	"github.com/glossaryweb/glossary/internal/glossary"
)

// conflictStore wraps a real store and fails updates as if the row changed.
// When vanish is set the row is deleted before the conflict is reported.
type conflictStore struct {
	*db.Database
	vanish bool
}

func (c *conflictStore) Update(ctx context.Context, item *db.GlossaryItem) error {
	if c.vanish {
		if err := c.Database.Delete(ctx, item.ID); err != nil {
			return err
		}
	}
	return db.ErrConflict
}

// TestCreateAndGet tests the create/get round trip
func TestCreateAndGet(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, glossary.Entry{ID: 99, Term: "Ocean", Definition: "A body of water"})
	if err != nil {
		t.Fatalf("Failed to create: %v", err)
	}
	if created.ID == 99 || created.ID <= 0 {
		t.Errorf("Expected server-assigned ID, got %d", created.ID)
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Failed to get: %v", err)
	}
	if got != created {
		t.Errorf("Expected %+v, got %+v", created, got)
	}
}

// TestListSortedAndNonNil tests ordering and empty results
func TestListSortedAndNonNil(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	entries, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if entries == nil {
		t.Error("Expected empty slice, got nil")
	}

	for _, term := range []string{"Tide", "Apple", "Marsh"} {
		svc.Create(ctx, glossary.Entry{Term: term, Definition: "Something"})
	}

	entries, _ = svc.List(ctx)
	want := []string{"Apple", "Marsh", "Tide"}
	for i, term := range want {
		if entries[i].Term != term {
			t.Errorf("Position %d: expected %q, got %q", i, term, entries[i].Term)
		}
	}
}

// TestReplace tests a successful replace
func TestReplace(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	created, _ := svc.Create(ctx, glossary.Entry{Term: "Ocean", Definition: "A body of water"})

	err := svc.Replace(ctx, created.ID, glossary.Entry{ID: created.ID, Term: "Ocean", Definition: "Large body of saltwater"})
	if err != nil {
		t.Fatalf("Failed to replace: %v", err)
	}

	got, _ := svc.Get(ctx, created.ID)
	if got.Definition != "Large body of saltwater" {
		t.Errorf("Definition not replaced: %q", got.Definition)
	}
}

// TestReplaceIDMismatch tests that mismatched ids are rejected without writing
func TestReplaceIDMismatch(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	created, _ := svc.Create(ctx, glossary.Entry{Term: "Ocean", Definition: "A body of water"})

	err := svc.Replace(ctx, created.ID, glossary.Entry{ID: created.ID + 1, Term: "Sea", Definition: "Salty"})
	if !errors.Is(err, ErrBadRequest) {
		t.Fatalf("Expected ErrBadRequest, got %v", err)
	}

	got, _ := svc.Get(ctx, created.ID)
	if got.Term != "Ocean" || got.Definition != "A body of water" {
		t.Errorf("Storage changed after bad request: %+v", got)
	}
}

// TestReplaceMissing tests replacing an absent entry
func TestReplaceMissing(t *testing.T) {
	svc := setupTestService(t)

	err := svc.Replace(context.Background(), 5, glossary.Entry{ID: 5, Term: "Sea", Definition: "Salty"})
	if !errors.Is(err, db.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

// TestReplaceConflictRowGone tests that a conflict on a deleted row reports not found
func TestReplaceConflictRowGone(t *testing.T) {
	database := setupTestDB(t)
	svc := NewService(&conflictStore{Database: database, vanish: true})
	ctx := context.Background()

	created, _ := svc.Create(ctx, glossary.Entry{Term: "Ocean", Definition: "A body of water"})

	err := svc.Replace(ctx, created.ID, glossary.Entry{ID: created.ID, Term: "Sea", Definition: "Salty"})
	if !errors.Is(err, db.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

// TestReplaceConflictRowPresent tests that a conflict on an existing row propagates
func TestReplaceConflictRowPresent(t *testing.T) {
	database := setupTestDB(t)
	svc := NewService(&conflictStore{Database: database})
	ctx := context.Background()

	created, _ := svc.Create(ctx, glossary.Entry{Term: "Ocean", Definition: "A body of water"})

	err := svc.Replace(ctx, created.ID, glossary.Entry{ID: created.ID, Term: "Sea", Definition: "Salty"})
	if !errors.Is(err, db.ErrConflict) {
		t.Errorf("Expected ErrConflict, got %v", err)
	}
	if errors.Is(err, db.ErrNotFound) {
		t.Error("Conflict on existing row must not be reported as not found")
	}
}

// TestDelete tests delete then get
func TestDelete(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	created, _ := svc.Create(ctx, glossary.Entry{Term: "Ocean", Definition: "A body of water"})

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); !errors.Is(err, db.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
	if err := svc.Delete(ctx, created.ID); !errors.Is(err, db.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
}

// TestToEntryOmitsSecret tests the entity to wire mapping
func TestToEntryOmitsSecret(t *testing.T) {
	secret := "hidden"
	entry := ToEntry(&db.GlossaryItem{ID: 3, Term: "Ocean", Definition: "A body of water", Secret: &secret, Version: 4})

	want := glossary.Entry{ID: 3, Term: "Ocean", Definition: "A body of water"}
	if entry != want {
		t.Errorf("Expected %+v, got %+v", want, entry)
	}
}

func setupTestDB(t *testing.T) *db.Database {
	t.Helper()
	database, err := db.NewDatabase(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "glossary.db"),
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

// setupTestService creates a service over a fresh database
func setupTestService(t *testing.T) *Service {
	return NewService(setupTestDB(t))
}
