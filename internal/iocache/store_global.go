package iocache

import (
	"database/sql"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/huangsam/partnerscore/internal/contract"
	"github.com/huangsam/partnerscore/schema"
)

// Global Manager instance for main logic.
var (
	Manager   = &StoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// GetDBFilePath returns the path to the default SQLite DB file.
func GetDBFilePath() string {
	return contract.GetDBFilePath()
}

// InitStore initializes the global store manager for the given backend.
// The none backend keeps everything in memory for the life of the process.
func InitStore(backend schema.DatabaseBackend, connStr string) error {
	var initErr error

	initOnce.Do(func() {
		// This function body runs exactly once, even with concurrent calls.
		store, err := NewStore(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize store: %w", err)
			return
		}
		Manager.setStore(store)
	})

	// After once.Do, initErr will contain any error from the initialization block.
	return initErr
}

// CloseStore should be called on application shutdown.
func CloseStore() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.store != nil {
			_ = Manager.store.Close()
		}
	})
}

// NewStore opens the store for a backend.
func NewStore(backend schema.DatabaseBackend, connStr string) (contract.Store, error) {
	if backend == schema.NoneBackend {
		return NewMemoryStore(), nil
	}
	return NewSQLStore(backend, connStr)
}

// ClearStore removes all persisted data for the specified backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the tables.
// For NoneBackend, it does nothing.
func ClearStore(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		dbFilePath := connStr
		if dbFilePath == "" {
			dbFilePath = GetDBFilePath()
		}
		if dbFilePath == sqliteMemory {
			return nil
		}
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend, schema.PostgreSQLBackend:
		db, err := openDB(backend, connStr)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		return dropTables(db, backend)

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported backend for clearing: %s", backend)
	}
}

// dropTables drops every partnerscore table including migration bookkeeping.
func dropTables(db *sql.DB, backend schema.DatabaseBackend) error {
	for _, table := range slices.Concat(allTables, []string{migrationsTable}) {
		if err := validateTableName(table); err != nil {
			return err
		}
		query := fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteTableName(table, backend))
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}
	return nil
}
