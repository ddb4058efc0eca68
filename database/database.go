package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	sqlite3 "github.com/mattn/go-sqlite3"
)

var (
	// ErrNotFound is returned when no row matches the requested key.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a uniqueness constraint rejects a write.
	ErrConflict = errors.New("conflicting configuration, read it again and retry")
	// ErrAlreadyClosed is returned when closing a ticket whose closed_at is already set.
	ErrAlreadyClosed = errors.New("ticket already closed")
)

// TicketDB handles the panel, button, role binding and ticket tables.
type TicketDB struct {
	db *sql.DB
}

// NewTicketDB creates and initializes the ticket database at dbPath.
// It ensures the database file and the necessary tables are created if they don't exist.
func NewTicketDB(dbPath string) (*TicketDB, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", dbPath, err)
	}
	// SQLite serializes writers; a single connection avoids "database is locked".
	db.SetMaxOpenConns(1)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := createTicketTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create ticket tables: %w", err)
	}

	log.Printf("Successfully initialized ticket database at %s", dbPath)
	return &TicketDB{db: db}, nil
}

func createTicketTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS ticket_panels (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            guild_id TEXT NOT NULL,
            name TEXT NOT NULL,
            category_id TEXT,
            log_channel_id TEXT,
            panel_title TEXT,
            panel_description TEXT,
            channel_id TEXT,
            message_id TEXT,
            UNIQUE (guild_id, name)
        );`,
		`CREATE TABLE IF NOT EXISTS ticket_buttons (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            panel_id INTEGER NOT NULL REFERENCES ticket_panels(id),
            button_position INTEGER NOT NULL CHECK (button_position BETWEEN 1 AND 3),
            button_label TEXT,
            ticket_title TEXT,
            ticket_message TEXT,
            button_emoji TEXT,
            button_style TEXT CHECK (button_style IN ('primary', 'secondary', 'success', 'danger', 'link', 'premium')),
            ticket_color TEXT,
            UNIQUE (panel_id, button_position)
        );`,
		`CREATE TABLE IF NOT EXISTS ticket_button_roles (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            button_id INTEGER NOT NULL REFERENCES ticket_buttons(id),
            role_id TEXT NOT NULL,
            UNIQUE (button_id, role_id)
        );`,
		`CREATE TABLE IF NOT EXISTS tickets (
            channel_id TEXT PRIMARY KEY,
            guild_id TEXT NOT NULL,
            panel_id INTEGER NOT NULL,
            button_id INTEGER,
            user_id TEXT NOT NULL,
            created_at INTEGER NOT NULL,
            closed_at INTEGER
        );`,
	}
	for _, q := range queries {
		if _, err := db.Exec(q); err != nil {
			return fmt.Errorf("failed to execute table creation query: %w", err)
		}
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_tickets_guild_open ON tickets(guild_id, closed_at);",
		"CREATE INDEX IF NOT EXISTS idx_tickets_closed ON tickets(closed_at);",
	}
	for _, indexQuery := range indexes {
		if _, err := db.Exec(indexQuery); err != nil {
			log.Printf("Warning: failed to create index: %v", err)
		}
	}
	return nil
}

// Close closes the database connection.
func (t *TicketDB) Close() error {
	if t.db != nil {
		return t.db.Close()
	}
	return nil
}

// Ping verifies the database connection is alive.
func (t *TicketDB) Ping(ctx context.Context) error {
	defer track("ping", "-")()
	return t.db.PingContext(ctx)
}

// withTx runs fn inside a transaction, rolling back on error.
func (t *TicketDB) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Printf("Error rolling back transaction: %v", rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// classify maps driver errors onto the package sentinels.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return err
}
