package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/glossaryweb/glossary/internal/config"
)

// Database wraps the GORM connection to the glossary table.
type Database struct {
	conn *gorm.DB
}

// NewDatabase opens the configured store and migrates the glossary table.
func NewDatabase(cfg config.DatabaseConfig) (*Database, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverSQLite, "":
		dialector = sqlite.Open(cfg.Path)
	case config.DriverMySQL:
		dialector = mysql.Open(cfg.URL)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get connection pool: %w", err)
	}

	if cfg.Driver == config.DriverMySQL {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
	} else {
		if err := configureSQLite(conn, cfg.Path); err != nil {
			sqlDB.Close()
			return nil, err
		}
	}

	if err := conn.AutoMigrate(&GlossaryItem{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &Database{conn: conn}, nil
}

func configureSQLite(conn *gorm.DB, path string) error {
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}

	// Every connection to a plain :memory: DSN gets its own empty database.
	if path == ":memory:" {
		sqlDB.SetMaxOpenConns(1)
		return nil
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := conn.Exec("PRAGMA journal_mode=WAL").Error; err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if err := conn.Exec("PRAGMA busy_timeout=5000").Error; err != nil {
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}
	return nil
}

// Close closes the underlying connection pool.
func (db *Database) Close() error {
	if db.conn == nil {
		return nil
	}
	sqlDB, err := db.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// List returns every glossary item ordered by term.
func (db *Database) List(ctx context.Context) ([]*GlossaryItem, error) {
	var items []*GlossaryItem
	if err := db.conn.WithContext(ctx).Order("term ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list glossary items: %w", err)
	}
	return items, nil
}

// Get retrieves a glossary item by ID.
func (db *Database) Get(ctx context.Context, id int64) (*GlossaryItem, error) {
	var item GlossaryItem
	err := db.conn.WithContext(ctx).First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("glossary item %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get glossary item: %w", classify(err))
	}
	return &item, nil
}

// Insert stores a new glossary item and fills in its ID and version.
func (db *Database) Insert(ctx context.Context, item *GlossaryItem) error {
	item.ID = 0
	item.Version = 1
	if err := db.conn.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("failed to insert glossary item: %w", classify(err))
	}
	return nil
}

// Update overwrites term and definition if the row still carries item.Version.
// A row that changed or vanished since it was read yields ErrConflict.
func (db *Database) Update(ctx context.Context, item *GlossaryItem) error {
	result := db.conn.WithContext(ctx).
		Model(&GlossaryItem{}).
		Where("id = ? AND version = ?", item.ID, item.Version).
		Updates(map[string]any{
			"term":       item.Term,
			"definition": item.Definition,
			"version":    gorm.Expr("version + ?", 1),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update glossary item: %w", classify(result.Error))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("glossary item %d changed during update: %w", item.ID, ErrConflict)
	}

	item.Version++
	return nil
}

// SetSecret stores the server-internal secret of an item.
func (db *Database) SetSecret(ctx context.Context, id int64, secret *string) error {
	result := db.conn.WithContext(ctx).
		Model(&GlossaryItem{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"secret":  secret,
			"version": gorm.Expr("version + ?", 1),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to set secret: %w", classify(result.Error))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("glossary item %d: %w", id, ErrNotFound)
	}
	return nil
}

// Delete removes a glossary item by ID.
func (db *Database) Delete(ctx context.Context, id int64) error {
	result := db.conn.WithContext(ctx).Delete(&GlossaryItem{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete glossary item: %w", classify(result.Error))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("glossary item %d: %w", id, ErrNotFound)
	}
	return nil
}

// Exists reports whether a glossary item with the given ID is stored.
func (db *Database) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := db.conn.WithContext(ctx).Model(&GlossaryItem{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check glossary item: %w", classify(err))
	}
	return count > 0, nil
}

// Count returns the number of stored glossary items.
func (db *Database) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := db.conn.WithContext(ctx).Model(&GlossaryItem{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count glossary items: %w", err)
	}
	return count, nil
}
