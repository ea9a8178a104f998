package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, path string) *Config {
	t.Helper()
	return &Config{
		Database: DatabaseConfig{
			Location:     "sqlite:" + path,
			MaxOpenConns: 5,
			MaxIdleConns: 1,
		},
	}
}

func TestSetupDatabaseCreatesStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "ledger.db")

	db, err := SetupDatabase(testConfig(t, path))
	require.NoError(t, err)
	defer db.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err, "database file should exist")

	var tables []string
	err = db.Select(&tables, `SELECT name FROM sqlite_master WHERE type = 'table' AND name IN ('users', 'accounts', 'transactions') ORDER BY name`)
	require.NoError(t, err)
	assert.Equal(t, []string{"accounts", "transactions", "users"}, tables)

	var foreignKeys int
	require.NoError(t, db.Get(&foreignKeys, `PRAGMA foreign_keys`))
	assert.Equal(t, 1, foreignKeys)
}

func TestSetupDatabaseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")

	db, err := SetupDatabase(testConfig(t, path))
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO users (username, email, is_main) VALUES ('alice', 'a@x.com', 1)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Second startup keeps existing rows
	db, err = SetupDatabase(testConfig(t, path))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, EnsureSchema(db))

	var count int
	require.NoError(t, db.Get(&count, `SELECT COUNT(*) FROM users`))
	assert.Equal(t, 1, count)
}

func TestEnsureStoreExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "ledger.db")
	store, err := ParseLocation(path)
	require.NoError(t, err)

	require.NoError(t, EnsureStoreExists(store))
	require.NoError(t, EnsureStoreExists(store))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.False(t, info.IsDir())

	assert.Error(t, EnsureStoreExists(Store{Driver: "mysql"}))
}
