package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jason-dio-so/insurance-ontology-v3/internal/models"
)

// normalizeLimit converts a non-positive limit into a large sentinel so the
// SQL LIMIT clause stays valid.
func normalizeLimit(limit int) int {
	if limit <= 0 {
		return 1 << 30
	}
	return limit
}

// encodeMessages serializes a transcript for the messages column.
func encodeMessages(messages []models.Message) (string, error) {
	raw, err := json.Marshal(messages)
	if err != nil {
		return "", fmt.Errorf("failed to encode messages: %w", err)
	}
	return string(raw), nil
}

// scanSessions reads session rows, decoding the messages column.
func scanSessions(rows *sql.Rows) ([]models.ChatSession, error) {
	var sessions []models.ChatSession
	for rows.Next() {
		var s models.ChatSession
		var payload string
		if err := rows.Scan(&s.ID, &s.StartedAt, &s.EndedAt, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &s.Messages); err != nil {
			return nil, fmt.Errorf("failed to decode messages for session %s: %w", s.ID, err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate session rows: %w", err)
	}
	return sessions, nil
}
