// Package storage persists bookings, check-in records and the workspace
// catalog in SQLite.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
	"github.com/rs/zerolog"
)

var (
	// ErrSlotTaken is returned when the transactional re-check finds the
	// slot occupied. The lifecycle manager's lock makes this unreachable in
	// normal operation; it guards against writers outside the manager.
	ErrSlotTaken = errors.New("slot already taken")

	// ErrConcurrentModification is returned when an optimistic version check
	// fails on update.
	ErrConcurrentModification = errors.New("concurrent modification")
)

// DB wraps the SQLite connection.
type DB struct {
	*sql.DB
	logger *zerolog.Logger
}

// New opens (creating if needed) the database at path and runs migrations.
func New(path string, logger *zerolog.Logger) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	dsn := path + "?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	instance := &DB{DB: db, logger: logger}
	if err := instance.createTables(); err != nil {
		return nil, fmt.Errorf("create tables: %w", err)
	}

	logger.Info().Str("path", path).Msg("database initialized")
	return instance, nil
}

func (db *DB) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS workspaces (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			location TEXT NOT NULL,
			capacity INTEGER NOT NULL,
			price_per_hour INTEGER NOT NULL DEFAULT 0,
			description TEXT,
			features TEXT,
			enabled BOOLEAN NOT NULL DEFAULT 1,
			sort_order INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS bookings (
			id TEXT PRIMARY KEY,
			workspace_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			date TEXT NOT NULL,
			start_min INTEGER NOT NULL,
			end_min INTEGER NOT NULL,
			participants INTEGER NOT NULL DEFAULT 1,
			notes TEXT,
			status TEXT NOT NULL DEFAULT 'confirmed',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			version INTEGER NOT NULL DEFAULT 1,
			FOREIGN KEY(workspace_id) REFERENCES workspaces(id)
		)`,

		`CREATE TABLE IF NOT EXISTS checkins (
			id TEXT PRIMARY KEY,
			booking_id TEXT,
			user_id TEXT NOT NULL,
			hub_id TEXT NOT NULL,
			check_in_time DATETIME NOT NULL,
			check_out_time DATETIME,
			status TEXT NOT NULL DEFAULT 'active'
		)`,

		`CREATE INDEX IF NOT EXISTS idx_workspaces_enabled ON workspaces(enabled)`,
		`CREATE INDEX IF NOT EXISTS idx_workspaces_sort ON workspaces(sort_order, id)`,

		`CREATE INDEX IF NOT EXISTS idx_bookings_workspace_date ON bookings(workspace_id, date, status)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_user ON bookings(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_status ON bookings(status)`,

		`CREATE INDEX IF NOT EXISTS idx_checkins_user_hub ON checkins(user_id, hub_id)`,
		// One Active record per (user, hub) at the storage layer too.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_checkins_active
			ON checkins(user_id, hub_id) WHERE status = 'active'`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("exec %q: %w", query, err)
		}
	}
	return nil
}

func (db *DB) Close() error {
	return db.DB.Close()
}
