package iocache

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	pgxv5 "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/huangsam/partnerscore/schema"
)

//go:embed migrations
var migrationsFS embed.FS

// migrationsTable holds golang-migrate bookkeeping for every backend.
const migrationsTable = "partnerscore_schema_migrations"

// LatestMigrationVersion is the newest schema version shipped with the binary.
const LatestMigrationVersion = 2

// MigrationResult describes what a migration call did.
type MigrationResult struct {
	From    uint
	To      uint
	Changed bool
}

// Migrate runs database migrations for the store.
// - If targetVersion < 0, it migrates to the latest version.
// - If targetVersion == 0, it rolls back all migrations (to initial state).
// - If targetVersion > 0, it migrates to the specified version.
func Migrate(backend schema.DatabaseBackend, connStr string, targetVersion int) error {
	if backend == schema.NoneBackend {
		return fmt.Errorf("migrations are not supported for NoneBackend")
	}

	db, err := openDB(backend, connStr)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	res, err := migrateDB(db, backend, targetVersion)
	if err != nil {
		return err
	}

	switch {
	case !res.Changed:
		fmt.Printf("No migration needed. Database is already at version %d\n", res.To)
	case res.To < res.From:
		fmt.Printf("Successfully rolled back from version %d to version %d\n", res.From, res.To)
	default:
		fmt.Printf("Successfully migrated from version %d to version %d\n", res.From, res.To)
	}
	return nil
}

// newMigrator builds a migrate instance over an open database.
// The caller must not Close it since that would close db.
func newMigrator(db *sql.DB, backend schema.DatabaseBackend) (*migrate.Migrate, error) {
	var driver database.Driver
	var dir string
	var err error

	switch backend {
	case schema.SQLiteBackend:
		dir = "sqlite"
		driver, err = sqlite.WithInstance(db, &sqlite.Config{MigrationsTable: migrationsTable})
		if err != nil {
			return nil, fmt.Errorf("failed to create SQLite migrate driver: %w", err)
		}

	case schema.MySQLBackend:
		dir = "mysql"
		driver, err = migratemysql.WithInstance(db, &migratemysql.Config{MigrationsTable: migrationsTable})
		if err != nil {
			return nil, fmt.Errorf("failed to create MySQL migrate driver: %w", err)
		}

	case schema.PostgreSQLBackend:
		dir = "postgres"
		driver, err = pgxv5.WithInstance(db, &pgxv5.Config{MigrationsTable: migrationsTable})
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL migrate driver: %w", err)
		}

	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}

	// Get the migrations subdirectory for this backend
	migrationFS, err := fs.Sub(migrationsFS, "migrations/"+dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access migrations directory: %w", err)
	}

	// Create source driver from embedded FS
	sourceDriver, err := iofs.New(migrationFS, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "partnerscore", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

// currentVersion returns the applied version, zero when nothing is applied.
func currentVersion(m *migrate.Migrate) (uint, bool, error) {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get current migration version: %w", err)
	}
	return version, dirty, nil
}

// migrateDB moves an open database to targetVersion.
func migrateDB(db *sql.DB, backend schema.DatabaseBackend, targetVersion int) (MigrationResult, error) {
	m, err := newMigrator(db, backend)
	if err != nil {
		return MigrationResult{}, err
	}

	from, dirty, err := currentVersion(m)
	if err != nil {
		return MigrationResult{}, err
	}
	if dirty {
		return MigrationResult{}, fmt.Errorf("database is in a dirty state at version %d. Please fix manually or force version", from)
	}

	switch {
	case targetVersion < 0:
		err = m.Up()
	case targetVersion == 0:
		err = m.Down()
	default:
		err = m.Migrate(uint(targetVersion))
	}
	if errors.Is(err, migrate.ErrNoChange) {
		return MigrationResult{From: from, To: from}, nil
	}
	if err != nil {
		return MigrationResult{}, fmt.Errorf("failed to migrate from version %d: %w", from, err)
	}

	to, _, err := currentVersion(m)
	if err != nil {
		return MigrationResult{}, err
	}
	return MigrationResult{From: from, To: to, Changed: true}, nil
}

// schemaVersion reads the applied migration version of an open database.
// It queries the bookkeeping table directly so no extra connection is pinned.
func schemaVersion(db *sql.DB, backend schema.DatabaseBackend) (int, error) {
	query := fmt.Sprintf("SELECT version FROM %s LIMIT 1", quoteTableName(migrationsTable, backend))
	var version int
	err := db.QueryRow(query).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read migration version: %w", err)
	}
	return version, nil
}
