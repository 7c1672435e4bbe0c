// Package store provides chat-history storage backends.
//
// Finished chat sessions are archived on reset or quit. An in-memory store
// is the default; SQLite and PostgreSQL backends are selected by DSN, the
// way the rest of the configuration works: a postgres:// URL picks
// PostgreSQL, any other non-empty DSN is treated as a SQLite file path.
package store

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/jason-dio-so/insurance-ontology-v3/internal/models"
)

// Store archives finished chat sessions.
type Store interface {
	// SaveSession persists one finished session.
	SaveSession(s models.ChatSession) error
	// ListSessions returns up to limit sessions, most recent first.
	ListSessions(limit int) ([]models.ChatSession, error)
	// CountSessions returns the number of archived sessions.
	CountSessions() (int, error)
	// Close releases backend resources.
	Close() error
}

// Opts holds store configuration applied via Option.
type Opts struct {
	DSN string
}

// Option configures a store backend.
type Option func(*Opts)

// WithDSN sets the backend DSN.
func WithDSN(dsn string) Option {
	return func(o *Opts) {
		o.DSN = dsn
	}
}

// Open picks a backend by DSN: empty selects the in-memory store,
// postgres://-style URLs select PostgreSQL, anything else is a SQLite
// file path.
func Open(dsn string) (Store, error) {
	switch {
	case dsn == "":
		slog.Debug("store: using in-memory backend")
		return NewInMemoryStore(), nil
	case strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://"):
		slog.Debug("store: using postgres backend")
		return NewPostgresStore(WithDSN(dsn))
	default:
		slog.Debug("store: using sqlite backend")
		return NewSQLiteStore(WithDSN(dsn))
	}
}

// InMemoryStore keeps sessions for the lifetime of the process.
type InMemoryStore struct {
	sessions []models.ChatSession
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// SaveSession appends a session.
func (s *InMemoryStore) SaveSession(session models.ChatSession) error {
	s.sessions = append(s.sessions, session)
	return nil
}

// ListSessions returns up to limit sessions, most recent first.
func (s *InMemoryStore) ListSessions(limit int) ([]models.ChatSession, error) {
	out := make([]models.ChatSession, len(s.sessions))
	copy(out, s.sessions)
	sort.Slice(out, func(i, j int) bool {
		return out[i].EndedAt.After(out[j].EndedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// CountSessions returns the number of stored sessions.
func (s *InMemoryStore) CountSessions() (int, error) {
	return len(s.sessions), nil
}

// Close is a no-op for the in-memory store.
func (s *InMemoryStore) Close() error { return nil }
