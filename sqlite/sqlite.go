// Package sqlite provides SQLite-based storage for homespace records.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection and creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit to one connection.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Wait 5 seconds before failing on lock contention.
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// WAL mode for file-based databases; not supported in-memory.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	db.db = conn

	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a query that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// createSchema creates the tables and indexes if they do not exist.
func (db *DB) createSchema() error {
	_, err := db.db.Exec(`
		CREATE TABLE IF NOT EXISTS ads (
			id              TEXT PRIMARY KEY,
			url             TEXT NOT NULL UNIQUE,
			provider        TEXT NOT NULL,
			vendor          TEXT NOT NULL DEFAULT '',
			title           TEXT NOT NULL DEFAULT '',
			price           TEXT NOT NULL DEFAULT '',
			condition       TEXT NOT NULL DEFAULT '',
			location        TEXT NOT NULL DEFAULT '',
			first_posted    TEXT NOT NULL DEFAULT '',
			last_updated    TEXT NOT NULL DEFAULT '',
			description     TEXT NOT NULL DEFAULT '',
			images          TEXT NOT NULL DEFAULT '',
			brand           TEXT NOT NULL DEFAULT '',
			model           TEXT NOT NULL DEFAULT '',
			make            TEXT NOT NULL DEFAULT '',
			color           TEXT NOT NULL DEFAULT '',
			price_new       TEXT NOT NULL DEFAULT '',
			latitude        REAL,
			longitude       REAL,
			age_days        INTEGER NOT NULL DEFAULT 0,
			user_rating     TEXT NOT NULL DEFAULT '',
			value_rating    INTEGER NOT NULL DEFAULT 5,
			leverage_rating INTEGER NOT NULL DEFAULT 5,
			icon            TEXT NOT NULL DEFAULT 'marker',
			observed_at     TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_ads_provider ON ads(provider);

		CREATE TABLE IF NOT EXISTS legal_documents (
			id           TEXT PRIMARY KEY,
			url          TEXT NOT NULL,
			provider     TEXT NOT NULL,
			text         TEXT NOT NULL,
			content_hash TEXT NOT NULL,
			fetched_at   TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_legal_documents_provider_url
			ON legal_documents(provider, url, fetched_at);
	`)
	return err
}
