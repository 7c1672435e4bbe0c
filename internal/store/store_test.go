package store

import (
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/jason-dio-so/insurance-ontology-v3/internal/models"
)

func sampleSession(id string, endedAt time.Time) models.ChatSession {
	return models.ChatSession{
		ID:        id,
		StartedAt: endedAt.Add(-time.Minute),
		EndedAt:   endedAt,
		Messages: []models.Message{
			models.NewUserMessage("암진단비 보장한도는?"),
			models.NewAssistantMessage("답변입니다"),
		},
	}
}

func TestInMemoryStore(t *testing.T) {
	s := NewInMemoryStore()
	now := time.Now()
	if err := s.SaveSession(sampleSession("a", now.Add(-time.Hour))); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}
	if err := s.SaveSession(sampleSession("b", now)); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}

	n, err := s.CountSessions()
	if err != nil || n != 2 {
		t.Fatalf("CountSessions = %d, %v, want 2", n, err)
	}

	sessions, err := s.ListSessions(0)
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(sessions) != 2 || sessions[0].ID != "b" {
		t.Errorf("sessions = %v, want most recent first", sessionIDs(sessions))
	}

	limited, err := s.ListSessions(1)
	if err != nil || len(limited) != 1 {
		t.Fatalf("ListSessions(1) = %d sessions, %v", len(limited), err)
	}
}

func TestOpenDispatchesByDSN(t *testing.T) {
	s, err := Open("")
	if err != nil {
		t.Fatalf("Open(\"\"): %v", err)
	}
	if _, ok := s.(*InMemoryStore); !ok {
		t.Errorf("Open(\"\") = %T, want *InMemoryStore", s)
	}
	s.Close()
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := NewSQLiteStore(WithDSN(path))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer s.Close()

	want := sampleSession("round-trip", time.Now().UTC().Truncate(time.Second))
	if err := s.SaveSession(want); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}

	n, err := s.CountSessions()
	if err != nil || n != 1 {
		t.Fatalf("CountSessions = %d, %v, want 1", n, err)
	}

	sessions, err := s.ListSessions(10)
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("sessions = %d, want 1", len(sessions))
	}
	got := sessions[0]
	if got.ID != want.ID {
		t.Errorf("id = %q, want %q", got.ID, want.ID)
	}
	if len(got.Messages) != 2 || got.Messages[0].Content != want.Messages[0].Content {
		t.Errorf("messages did not survive the round trip: %+v", got.Messages)
	}
	if got.Messages[0].Role != models.RoleUser || got.Messages[1].Role != models.RoleAssistant {
		t.Error("message roles did not survive the round trip")
	}
}

func TestPostgresStoreRoundTrip(t *testing.T) {
	// Requires a running PostgreSQL instance; set DATABASE_URL to enable.
	dsn := getenvOrSkip(t, "DATABASE_URL")
	s, err := NewPostgresStore(WithDSN(dsn))
	if err != nil {
		t.Skipf("Postgres not available: %v", err)
	}
	defer s.Close()

	// Clean up table before test
	s.db.Exec("DELETE FROM chat_sessions")
	if err := s.SaveSession(sampleSession("pg-round-trip", time.Now())); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}
	sessions, err := s.ListSessions(1)
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(sessions) != 1 || sessions[0].ID != "pg-round-trip" {
		t.Errorf("sessions = %v", sessionIDs(sessions))
	}
}

func TestNormalizeLimit(t *testing.T) {
	if got := normalizeLimit(0); got <= 0 {
		t.Errorf("normalizeLimit(0) = %d, want a large positive sentinel", got)
	}
	if got := normalizeLimit(-5); got <= 0 {
		t.Errorf("normalizeLimit(-5) = %d, want a large positive sentinel", got)
	}
	if got := normalizeLimit(7); got != 7 {
		t.Errorf("normalizeLimit(7) = %d, want 7", got)
	}
}

func sessionIDs(sessions []models.ChatSession) []string {
	ids := make([]string, len(sessions))
	for i, s := range sessions {
		ids[i] = s.ID
	}
	return ids
}

func getenvOrSkip(t *testing.T, key string) string {
	v := ""
	if val, ok := syscall.Getenv(key); ok {
		v = val
	}
	if v == "" {
		t.Skipf("env %s not set", key)
	}
	return v
}
