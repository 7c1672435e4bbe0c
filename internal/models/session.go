// Package models defines session structures for chat history archiving.
package models

import "time"

// ChatSession is a finished conversation: the transcript plus its time span.
// Sessions are archived on reset or quit and never modified afterwards.
type ChatSession struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`
	Messages  []Message `json:"messages"`
}
