package iocache

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/partnerscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dbVersion(t *testing.T, dbPath string) int {
	t.Helper()
	db, err := openDB(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	version, err := schemaVersion(db, schema.SQLiteBackend)
	require.NoError(t, err)
	return version
}

func TestMigrate_NoneBackend(t *testing.T) {
	err := Migrate(schema.NoneBackend, "", -1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not supported")
}

func TestMigrate_UnsupportedBackend(t *testing.T) {
	assert.Error(t, Migrate("oracle", "", -1))
}

func TestMigrate_UpDownSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate.db")

	require.NoError(t, Migrate(schema.SQLiteBackend, dbPath, 1))
	assert.Equal(t, 1, dbVersion(t, dbPath))

	require.NoError(t, Migrate(schema.SQLiteBackend, dbPath, -1))
	assert.Equal(t, LatestMigrationVersion, dbVersion(t, dbPath))

	// Running again is a no-op
	require.NoError(t, Migrate(schema.SQLiteBackend, dbPath, -1))
	assert.Equal(t, LatestMigrationVersion, dbVersion(t, dbPath))

	require.NoError(t, Migrate(schema.SQLiteBackend, dbPath, 0))
	assert.Equal(t, 0, dbVersion(t, dbPath))
}

func TestMigrateDB_Result(t *testing.T) {
	db, err := openDB(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	res, err := migrateDB(db, schema.SQLiteBackend, -1)
	require.NoError(t, err)
	assert.Equal(t, MigrationResult{From: 0, To: LatestMigrationVersion, Changed: true}, res)

	res, err = migrateDB(db, schema.SQLiteBackend, -1)
	require.NoError(t, err)
	assert.False(t, res.Changed)

	res, err = migrateDB(db, schema.SQLiteBackend, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(1), res.To)
	assert.True(t, res.Changed)
}

func TestMigrationsEmbedded(t *testing.T) {
	for _, dir := range []string{"sqlite", "mysql", "postgres"} {
		entries, err := migrationsFS.ReadDir("migrations/" + dir)
		require.NoError(t, err)
		assert.Len(t, entries, 2*LatestMigrationVersion, "every version needs up and down files for %s", dir)
	}
}

func TestClearStore_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "clear.db")
	store, err := NewSQLStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	require.NoError(t, ClearStore(schema.SQLiteBackend, dbPath))
	_, err = os.Stat(dbPath)
	assert.True(t, os.IsNotExist(err))

	// Clearing twice is fine
	require.NoError(t, ClearStore(schema.SQLiteBackend, dbPath))
	require.NoError(t, ClearStore(schema.NoneBackend, ""))
	assert.Error(t, ClearStore("oracle", ""))
}

func TestPrintStoreStatus(t *testing.T) {
	var buf bytes.Buffer
	PrintStoreStatus(&buf, schema.StoreStatus{Backend: "sqlite", Connected: false})
	assert.Equal(t, "Store Backend: sqlite\nConnected: false\n", buf.String())

	buf.Reset()
	PrintStoreStatus(&buf, schema.StoreStatus{
		Backend:          "sqlite",
		Connected:        true,
		TotalPartners:    3,
		TotalRuns:        2,
		LastRunID:        7,
		MigrationVersion: 2,
		TableRows:        map[string]int64{"b_table": 1, "a_table": 2},
	})
	out := buf.String()
	assert.Contains(t, out, "Partners: 3\n")
	assert.Contains(t, out, "Last Run ID: 7\n")
	assert.Contains(t, out, "Schema Version: 2 (latest 2)\n")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("a_table")), bytes.Index(buf.Bytes(), []byte("b_table")))
}
