// ABOUTME: SQLite store for fixture generation history.
// ABOUTME: Opens the database, applies pragmas and runs versioned schema migrations.

package store

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/mattn/go-sqlite3"
)

type migration struct {
	version     int
	description string
	schema      string
}

// migrations run in order; each version is applied once and recorded in schema_migrations.
var migrations = []migration{
	{
		version:     1,
		description: "Create generation_runs and run_sheets tables",
		schema: `
		CREATE TABLE IF NOT EXISTS generation_runs (
			id TEXT PRIMARY KEY,
			batch_id TEXT NOT NULL,
			scenario TEXT NOT NULL,
			path TEXT NOT NULL,
			seed INTEGER,
			created_at TIMESTAMP NOT NULL
		);

		CREATE TABLE IF NOT EXISTS run_sheets (
			run_id TEXT NOT NULL REFERENCES generation_runs(id) ON DELETE CASCADE,
			sheet TEXT NOT NULL,
			row_count INTEGER NOT NULL,
			PRIMARY KEY (run_id, sheet)
		);

		CREATE INDEX IF NOT EXISTS idx_generation_runs_created ON generation_runs(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_generation_runs_batch ON generation_runs(batch_id);
		`,
	},
	{
		version:     2,
		description: "Create download_logs table",
		schema: `
		CREATE TABLE IF NOT EXISTS download_logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			scenario TEXT DEFAULT '',
			method TEXT NOT NULL,
			path TEXT NOT NULL,
			status_code INTEGER,
			duration_ms INTEGER,
			bytes INTEGER,
			ip_address TEXT,
			user_agent TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_download_logs_timestamp ON download_logs(timestamp DESC);
		CREATE INDEX IF NOT EXISTS idx_download_logs_scenario_status ON download_logs(scenario, status_code);
		`,
	},
}

// CurrentSchemaVersion is the version a freshly migrated database reports.
var CurrentSchemaVersion = migrations[len(migrations)-1].version

// Store records generated workbooks and served downloads.
type Store struct {
	db *sql.DB
}

// dsnParams are applied by the driver to every pooled connection.
const dsnParams = "_foreign_keys=on&_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000"

// New opens (creating if needed) the database at dbPath and migrates it.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?"+dsnParams)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// One writer at a time; WAL lets readers proceed alongside it
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	if _, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			description TEXT
		)
	`); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	current, err := s.getCurrentMigrationVersion()
	if err != nil {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if err := s.apply(m); err != nil {
			return fmt.Errorf("migration v%d failed: %w", m.version, err)
		}
		log.Printf("Applied migration v%d: %s", m.version, m.description)
	}
	return nil
}

// apply runs one migration and records it in the same transaction.
func (s *Store) apply(m migration) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(m.schema); err != nil {
		return err
	}
	if _, err := tx.Exec(
		`INSERT INTO schema_migrations (version, description) VALUES (?, ?)`,
		m.version, m.description,
	); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) getCurrentMigrationVersion() (int, error) {
	var version int
	err := s.db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&version)
	return version, err
}
