// Package store provides chat-history storage backends.
//
// This file implements the SQLite-backed store.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "embed"

	"github.com/jason-dio-so/insurance-ontology-v3/internal/models"
	_ "github.com/mattn/go-sqlite3"
)

// DefaultDirPermissions defines the default permissions for database directories.
const DefaultDirPermissions = 0755

//go:embed migrations_sqlite.sql
var sqliteMigrations string

// SQLiteStore archives sessions in a local SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a SQLite store. The DSN is a file path; its
// directory is created if missing.
func NewSQLiteStore(opts ...Option) (*SQLiteStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("NewSQLiteStore invoked", "DSN_set", cfg.DSN != "")

	dsn := cfg.DSN
	if dsn == "" {
		slog.Error("SQLiteStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	dir := filepath.Dir(dsn)
	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		slog.Error("Failed to create database directory", "error", err, "dir", dir)
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		slog.Error("Failed to open SQLite connection", "error", err)
		return nil, err
	}
	if err := db.Ping(); err != nil {
		slog.Error("SQLite ping failed", "error", err)
		return nil, err
	}

	if _, err := db.Exec(sqliteMigrations); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("SQLite migrations applied successfully")

	return &SQLiteStore{db: db}, nil
}

// SaveSession persists one finished session.
func (s *SQLiteStore) SaveSession(session models.ChatSession) error {
	payload, err := encodeMessages(session.Messages)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT INTO chat_sessions (id, started_at, ended_at, messages) VALUES (?, ?, ?, ?)`,
		session.ID, session.StartedAt, session.EndedAt, payload,
	)
	if err != nil {
		slog.Error("SQLiteStore SaveSession failed", "error", err, "session_id", session.ID)
		return fmt.Errorf("failed to insert session %s: %w", session.ID, err)
	}
	slog.Debug("SQLiteStore SaveSession succeeded", "session_id", session.ID, "messages", len(session.Messages))
	return nil
}

// ListSessions returns up to limit sessions, most recent first.
func (s *SQLiteStore) ListSessions(limit int) ([]models.ChatSession, error) {
	rows, err := s.db.Query(
		`SELECT id, started_at, ended_at, messages FROM chat_sessions ORDER BY ended_at DESC LIMIT ?`,
		normalizeLimit(limit),
	)
	if err != nil {
		slog.Error("SQLiteStore ListSessions query failed", "error", err)
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()
	return scanSessions(rows)
}

// CountSessions returns the number of archived sessions.
func (s *SQLiteStore) CountSessions() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM chat_sessions`).Scan(&n); err != nil {
		slog.Error("SQLiteStore CountSessions failed", "error", err)
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return n, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
