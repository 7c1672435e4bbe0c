// Package store provides chat-history storage backends.
//
// This file implements the PostgreSQL-backed store.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "embed"

	"github.com/jason-dio-so/insurance-ontology-v3/internal/models"
	_ "github.com/lib/pq"
)

//go:embed migrations_postgres.sql
var postgresMigrations string

// PostgresStore archives sessions in a PostgreSQL database.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a PostgreSQL store from a postgres:// DSN.
func NewPostgresStore(opts ...Option) (*PostgresStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("NewPostgresStore invoked", "DSN_set", cfg.DSN != "")

	if cfg.DSN == "" {
		slog.Error("PostgresStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		slog.Error("Failed to open Postgres connection", "error", err)
		return nil, err
	}
	if err := db.Ping(); err != nil {
		slog.Error("Postgres ping failed", "error", err)
		return nil, err
	}

	if _, err := db.Exec(postgresMigrations); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("Postgres migrations applied successfully")

	return &PostgresStore{db: db}, nil
}

// SaveSession persists one finished session.
func (s *PostgresStore) SaveSession(session models.ChatSession) error {
	payload, err := encodeMessages(session.Messages)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT INTO chat_sessions (id, started_at, ended_at, messages) VALUES ($1, $2, $3, $4)`,
		session.ID, session.StartedAt, session.EndedAt, payload,
	)
	if err != nil {
		slog.Error("PostgresStore SaveSession failed", "error", err, "session_id", session.ID)
		return fmt.Errorf("failed to insert session %s: %w", session.ID, err)
	}
	slog.Debug("PostgresStore SaveSession succeeded", "session_id", session.ID, "messages", len(session.Messages))
	return nil
}

// ListSessions returns up to limit sessions, most recent first.
func (s *PostgresStore) ListSessions(limit int) ([]models.ChatSession, error) {
	rows, err := s.db.Query(
		`SELECT id, started_at, ended_at, messages FROM chat_sessions ORDER BY ended_at DESC LIMIT $1`,
		normalizeLimit(limit),
	)
	if err != nil {
		slog.Error("PostgresStore ListSessions query failed", "error", err)
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()
	return scanSessions(rows)
}

// CountSessions returns the number of archived sessions.
func (s *PostgresStore) CountSessions() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM chat_sessions`).Scan(&n); err != nil {
		slog.Error("PostgresStore CountSessions failed", "error", err)
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return n, nil
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
