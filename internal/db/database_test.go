package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"

	"github.com/glossaryweb/glossary/internal/config"
)

// TestInitializeDatabase tests database initialization
func TestInitializeDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := NewDatabase(config.DatabaseConfig{Driver: config.DriverSQLite, Path: dbPath})
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}

	if err := db.Insert(context.Background(), &GlossaryItem{Term: "Ocean", Definition: "A body of water"}); err != nil {
		t.Errorf("Table creation failed: %v", err)
	}
}

// TestInMemoryDatabase tests that :memory: keeps one shared database
func TestInMemoryDatabase(t *testing.T) {
	db, err := NewDatabase(config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"})
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	item := &GlossaryItem{Term: "Lake", Definition: "Still water"}
	if err := db.Insert(ctx, item); err != nil {
		t.Fatalf("Failed to insert: %v", err)
	}
	if _, err := db.Get(ctx, item.ID); err != nil {
		t.Errorf("Inserted item not visible: %v", err)
	}
}

// TestUnsupportedDriver tests that unknown drivers are rejected
func TestUnsupportedDriver(t *testing.T) {
	if _, err := NewDatabase(config.DatabaseConfig{Driver: "oracle"}); err == nil {
		t.Error("Expected error for unsupported driver")
	}
}

// TestInsertGlossaryItem tests inserting a new item
func TestInsertGlossaryItem(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	item := &GlossaryItem{ID: 42, Term: "Ocean", Definition: "A body of water", Version: 9}
	if err := db.Insert(ctx, item); err != nil {
		t.Fatalf("Failed to insert: %v", err)
	}

	if item.ID <= 0 || item.ID == 42 {
		t.Errorf("Expected server-assigned ID, got %d", item.ID)
	}
	if item.Version != 1 {
		t.Errorf("Expected version 1, got %d", item.Version)
	}

	retrieved, err := db.Get(ctx, item.ID)
	if err != nil {
		t.Fatalf("Failed to retrieve inserted item: %v", err)
	}
	if retrieved.Term != item.Term || retrieved.Definition != item.Definition {
		t.Errorf("Expected %q/%q, got %q/%q", item.Term, item.Definition, retrieved.Term, retrieved.Definition)
	}
	if retrieved.Secret != nil {
		t.Errorf("Expected secret to be unset, got %q", *retrieved.Secret)
	}
}

// TestInsertDuplicateTerm tests that storage does not enforce term uniqueness
func TestInsertDuplicateTerm(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := db.Insert(ctx, &GlossaryItem{Term: "Ocean", Definition: "A body of water"}); err != nil {
			t.Fatalf("Insert %d failed: %v", i, err)
		}
	}

	count, err := db.Count(ctx)
	if err != nil {
		t.Fatalf("Failed to count: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 items, got %d", count)
	}
}

// TestGetNonexistent tests retrieving a non-existent item
func TestGetNonexistent(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.Get(context.Background(), 99999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

// TestListOrderedByTerm tests that items come back sorted by term
func TestListOrderedByTerm(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	for _, term := range []string{"River", "Delta", "Ocean", "Bay"} {
		if err := db.Insert(ctx, &GlossaryItem{Term: term, Definition: "Water"}); err != nil {
			t.Fatalf("Failed to insert %q: %v", term, err)
		}
	}

	items, err := db.List(ctx)
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}

	want := []string{"Bay", "Delta", "Ocean", "River"}
	if len(items) != len(want) {
		t.Fatalf("Expected %d items, got %d", len(want), len(items))
	}
	for i, term := range want {
		if items[i].Term != term {
			t.Errorf("Position %d: expected %q, got %q", i, term, items[i].Term)
		}
	}
}

// TestUpdateBumpsVersion tests an update with the current version
func TestUpdateBumpsVersion(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	item := &GlossaryItem{Term: "Ocean", Definition: "A body of water"}
	if err := db.Insert(ctx, item); err != nil {
		t.Fatalf("Failed to insert: %v", err)
	}

	item.Definition = "Large body of saltwater"
	if err := db.Update(ctx, item); err != nil {
		t.Fatalf("Failed to update: %v", err)
	}
	if item.Version != 2 {
		t.Errorf("Expected in-memory version 2, got %d", item.Version)
	}

	retrieved, err := db.Get(ctx, item.ID)
	if err != nil {
		t.Fatalf("Failed to retrieve: %v", err)
	}
	if retrieved.Definition != "Large body of saltwater" {
		t.Errorf("Definition not updated: %q", retrieved.Definition)
	}
	if retrieved.Version != 2 {
		t.Errorf("Expected stored version 2, got %d", retrieved.Version)
	}
}

// TestUpdateStaleVersion tests that a stale read is detected as a conflict
func TestUpdateStaleVersion(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	item := &GlossaryItem{Term: "Ocean", Definition: "A body of water"}
	if err := db.Insert(ctx, item); err != nil {
		t.Fatalf("Failed to insert: %v", err)
	}

	stale, _ := db.Get(ctx, item.ID)
	secret := "internal"
	if err := db.SetSecret(ctx, item.ID, &secret); err != nil {
		t.Fatalf("Failed to set secret: %v", err)
	}

	stale.Definition = "Changed"
	if err := db.Update(ctx, stale); !errors.Is(err, ErrConflict) {
		t.Errorf("Expected ErrConflict, got %v", err)
	}

	retrieved, _ := db.Get(ctx, item.ID)
	if retrieved.Definition != "A body of water" {
		t.Errorf("Stale update should not be applied, got %q", retrieved.Definition)
	}
}

// TestUpdatePreservesSecret tests that term/definition updates leave the secret alone
func TestUpdatePreservesSecret(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	item := &GlossaryItem{Term: "Ocean", Definition: "A body of water"}
	db.Insert(ctx, item)
	secret := "keep me"
	if err := db.SetSecret(ctx, item.ID, &secret); err != nil {
		t.Fatalf("Failed to set secret: %v", err)
	}

	current, _ := db.Get(ctx, item.ID)
	current.Term = "Sea"
	if err := db.Update(ctx, current); err != nil {
		t.Fatalf("Failed to update: %v", err)
	}

	retrieved, _ := db.Get(ctx, item.ID)
	if retrieved.Secret == nil || *retrieved.Secret != secret {
		t.Errorf("Secret was not preserved: %v", retrieved.Secret)
	}
	if retrieved.ID != item.ID {
		t.Errorf("ID changed from %d to %d", item.ID, retrieved.ID)
	}
}

// TestDeleteGlossaryItem tests deleting an item
func TestDeleteGlossaryItem(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	item := &GlossaryItem{Term: "Ocean", Definition: "A body of water"}
	db.Insert(ctx, item)

	if err := db.Delete(ctx, item.ID); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}

	if _, err := db.Get(ctx, item.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
	if err := db.Delete(ctx, item.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
}

// TestExists tests existence checks
func TestExists(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	item := &GlossaryItem{Term: "Ocean", Definition: "A body of water"}
	db.Insert(ctx, item)

	exists, err := db.Exists(ctx, item.ID)
	if err != nil || !exists {
		t.Errorf("Expected item to exist, got %v (%v)", exists, err)
	}

	exists, err = db.Exists(ctx, item.ID+100)
	if err != nil || exists {
		t.Errorf("Expected item not to exist, got %v (%v)", exists, err)
	}
}

// TestSQLInjection tests that parameterized queries prevent SQL injection
func TestSQLInjection(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	malicious := "'; DROP TABLE glossary_items; --"
	item := &GlossaryItem{Term: malicious, Definition: "x"}
	if err := db.Insert(ctx, item); err != nil {
		t.Fatalf("Failed to insert: %v", err)
	}

	retrieved, err := db.Get(ctx, item.ID)
	if err != nil {
		t.Fatalf("Failed to retrieve: %v", err)
	}
	if retrieved.Term != malicious {
		t.Errorf("Term was modified, possible injection: %q", retrieved.Term)
	}
	if _, err := db.List(ctx); err != nil {
		t.Error("Table was dropped, SQL injection vulnerability exists!")
	}
}

// TestConcurrentInserts tests concurrent inserts for race conditions
func TestConcurrentInserts(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	numGoroutines := 10
	done := make(chan error, numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func(n int) {
			done <- db.Insert(ctx, &GlossaryItem{Term: fmt.Sprintf("term %d", n), Definition: "concurrent"})
		}(i)
	}

	for i := 0; i < numGoroutines; i++ {
		if err := <-done; err != nil {
			t.Errorf("Concurrent insert failed: %v", err)
		}
	}

	count, _ := db.Count(ctx)
	if count != int64(numGoroutines) {
		t.Errorf("Expected %d items, got %d", numGoroutines, count)
	}
}

// TestClassify tests mapping of driver lock errors to ErrConflict
func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		conflict bool
	}{
		{"sqlite busy", sqlite3.Error{Code: sqlite3.ErrBusy}, true},
		{"sqlite locked", sqlite3.Error{Code: sqlite3.ErrLocked}, true},
		{"sqlite constraint", sqlite3.Error{Code: sqlite3.ErrConstraint}, false},
		{"mysql deadlock", &mysql.MySQLError{Number: 1213}, true},
		{"mysql lock wait", &mysql.MySQLError{Number: 1205}, true},
		{"mysql duplicate", &mysql.MySQLError{Number: 1062}, false},
		{"plain", errors.New("boom"), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := errors.Is(classify(tc.err), ErrConflict)
			if got != tc.conflict {
				t.Errorf("classify(%v) conflict=%v, expected %v", tc.err, got, tc.conflict)
			}
		})
	}

	if classify(nil) != nil {
		t.Error("classify(nil) should be nil")
	}
}

// setupTestDB creates a file-backed database under the test's temp dir
func setupTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "glossary.db"),
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}
