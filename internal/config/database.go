package config

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq" // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations
var migrationsFS embed.FS

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Store describes where the backing database lives
type Store struct {
	Driver string
	DSN    string
	Path   string // SQLite only
}

// ParseLocation resolves a TX_DB value into a driver and DSN.
// Accepted forms: postgres://..., postgresql://..., sqlite:<path>,
// sqlite://<path>, or a bare file path.
func ParseLocation(location string) (Store, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return Store{}, ErrMissingStoreLocation
	}

	if strings.HasPrefix(location, "postgres://") || strings.HasPrefix(location, "postgresql://") {
		return Store{Driver: DriverPostgres, DSN: location}, nil
	}

	path := location
	if rest, ok := strings.CutPrefix(path, "sqlite://"); ok {
		path = rest
	} else if rest, ok := strings.CutPrefix(path, "sqlite:"); ok {
		path = rest
	}
	// Drop any query options, we set our own
	if i := strings.Index(path, "?"); i >= 0 {
		path = path[:i]
	}
	if path == "" || path == ":memory:" {
		return Store{}, fmt.Errorf("invalid sqlite location %q: a file path is required", location)
	}

	dsn := path + "?_foreign_keys=on&_busy_timeout=5000&_txlock=immediate"
	return Store{Driver: DriverSQLite, DSN: dsn, Path: path}, nil
}

// SetupDatabase initializes the database connection
func SetupDatabase(cfg *Config) (*sqlx.DB, error) {
	store, err := ParseLocation(cfg.Database.Location)
	if err != nil {
		return nil, err
	}

	if err := EnsureStoreExists(store); err != nil {
		return nil, fmt.Errorf("failed to ensure store exists: %w", err)
	}

	db, err := sqlx.Connect(store.Driver, store.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	// Create tables if they don't exist
	if err := EnsureSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return db, nil
}

// EnsureStoreExists creates the backing database when it is missing.
// It is safe to call repeatedly.
func EnsureStoreExists(store Store) error {
	switch store.Driver {
	case DriverSQLite:
		return ensureSQLiteFile(store.Path)
	case DriverPostgres:
		return ensurePostgresDatabase(store.DSN)
	default:
		return fmt.Errorf("unsupported driver %q", store.Driver)
	}
}

func ensureSQLiteFile(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("can not create database directory %s: %w", dir, err)
		}
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("can not create database file %s: %w", path, err)
	}
	return f.Close()
}

// ensurePostgresDatabase connects to the server's maintenance database and
// creates the target database when it does not exist yet.
func ensurePostgresDatabase(dsn string) error {
	u, err := url.Parse(dsn)
	if err != nil {
		return fmt.Errorf("invalid postgres location: %w", err)
	}

	name := strings.TrimPrefix(u.Path, "/")
	if name == "" {
		return errors.New("postgres location does not name a database")
	}

	admin := *u
	admin.Path = "/postgres"

	db, err := sql.Open(DriverPostgres, admin.String())
	if err != nil {
		return fmt.Errorf("failed to open maintenance database: %w", err)
	}
	defer db.Close()

	var exists bool
	err = db.QueryRow(`SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)`, name).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check database %s: %w", name, err)
	}
	if exists {
		return nil
	}

	if _, err := db.Exec("CREATE DATABASE " + pq.QuoteIdentifier(name)); err != nil {
		return fmt.Errorf("failed to create database %s: %w", name, err)
	}
	return nil
}

// EnsureSchema applies the embedded initial migration for the connected
// driver. Already-migrated stores are left untouched.
func EnsureSchema(db *sqlx.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations/"+db.DriverName())
	if err != nil {
		return fmt.Errorf("failed to create iofs source driver: %w", err)
	}

	var m *migrate.Migrate
	switch db.DriverName() {
	case DriverSQLite:
		driver, err := migratesqlite.WithInstance(db.DB, &migratesqlite.Config{})
		if err != nil {
			return fmt.Errorf("failed to set up migrate driver: %w", err)
		}
		m, err = migrate.NewWithInstance("iofs", sourceDriver, DriverSQLite, driver)
		if err != nil {
			return fmt.Errorf("failed to set up migrate instance: %w", err)
		}
	case DriverPostgres:
		driver, err := migratepostgres.WithInstance(db.DB, &migratepostgres.Config{})
		if err != nil {
			return fmt.Errorf("failed to set up migrate driver: %w", err)
		}
		m, err = migrate.NewWithInstance("iofs", sourceDriver, DriverPostgres, driver)
		if err != nil {
			return fmt.Errorf("failed to set up migrate instance: %w", err)
		}
	default:
		return fmt.Errorf("unsupported driver %q", db.DriverName())
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migration(up): %w", err)
	}

	return nil
}
