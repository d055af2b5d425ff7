package db

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"
)

var (
	// ErrNotFound is returned when no glossary item has the requested ID.
	ErrNotFound = errors.New("glossary item not found")

	// ErrConflict is returned when a row changed between read and write.
	ErrConflict = errors.New("glossary item was modified concurrently")
)

// MySQL server error numbers for lock contention.
const (
	mysqlLockWaitTimeout = 1205
	mysqlDeadlock        = 1213
)

// classify maps driver-level lock contention onto ErrConflict.
// Other errors are returned unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		if sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked {
			return fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return err
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		if mysqlErr.Number == mysqlDeadlock || mysqlErr.Number == mysqlLockWaitTimeout {
			return fmt.Errorf("%w: %v", ErrConflict, err)
		}
	}

	return err
}
