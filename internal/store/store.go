package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// Store persists workouts, progress logs, the exercise catalog and
// settings. It hands out snapshots as stats and catalog values.
type Store struct {
	db *sql.DB
}

// pragmas are applied right after opening, before migrations.
var pragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA foreign_keys=ON",
	"PRAGMA busy_timeout=5000",
}

// migrations[i] moves the schema from user_version i to i+1.
var migrations = []func(tx *sql.Tx) error{
	migrateV1,
}

// New opens the SQLite database at dbPath, creating it and its directory
// when missing, and brings the schema up to date.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// :memory: databases and pragmas are per connection.
	db.SetMaxOpenConns(1)

	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	logrus.WithField("path", dbPath).Debug("database ready")
	return s, nil
}

// NewMemory returns a store backed by a private in-memory database.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

// withTx runs fn inside a transaction, rolling back when it fails.
func (s *Store) withTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// migrate applies every pending step, each in its own transaction
// together with the user_version bump.
func (s *Store) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	for v := version; v < len(migrations); v++ {
		err := s.withTx(func(tx *sql.Tx) error {
			if err := migrations[v](tx); err != nil {
				return fmt.Errorf("schema v%d: %w", v+1, err)
			}
			_, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", v+1))
			return err
		})
		if err != nil {
			return err
		}
		logrus.WithField("version", v+1).Info("database migrated")
	}
	return nil
}

func migrateV1(tx *sql.Tx) error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS categories (
		id    INTEGER PRIMARY KEY AUTOINCREMENT,
		name  TEXT NOT NULL UNIQUE
	);

	CREATE TABLE IF NOT EXISTS exercises (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		name         TEXT NOT NULL,
		body_part    TEXT NOT NULL DEFAULT '',
		category_id  INTEGER REFERENCES categories(id),
		equipment    TEXT NOT NULL DEFAULT '',
		description  TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE INDEX IF NOT EXISTS idx_exercises_name ON exercises(name);

	CREATE TABLE IF NOT EXISTS workouts (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		date        TEXT NOT NULL,
		duration    INTEGER NOT NULL DEFAULT 0,
		notes       TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now')),
		updated_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE INDEX IF NOT EXISTS idx_workouts_date ON workouts(date);

	CREATE TABLE IF NOT EXISTS workout_details (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		workout_id   INTEGER NOT NULL REFERENCES workouts(id) ON DELETE CASCADE,
		exercise_id  INTEGER REFERENCES exercises(id) ON DELETE SET NULL,
		position     INTEGER NOT NULL DEFAULT 0,
		sets         INTEGER,
		reps         INTEGER,
		weight       REAL
	);

	CREATE INDEX IF NOT EXISTS idx_details_workout ON workout_details(workout_id);

	CREATE TABLE IF NOT EXISTS progress_logs (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		date        TEXT NOT NULL,
		weight      REAL NOT NULL,
		created_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	INSERT OR IGNORE INTO settings (key, value) VALUES
		('weight_unit', 'kg'),
		('week_start',  'monday');
	`
	_, err := tx.Exec(ddl)
	return err
}

// DefaultDBPath returns ~/.config/fitlog/fitlog.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "fitlog", "fitlog.db"), nil
}
