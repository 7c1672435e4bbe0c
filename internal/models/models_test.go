package models

import "testing"

func TestNewUserMessageTrimsContent(t *testing.T) {
	m := NewUserMessage("  질문입니다  ")
	if m.Content != "질문입니다" {
		t.Errorf("content = %q, want trimmed", m.Content)
	}
	if m.Role != RoleUser {
		t.Errorf("role = %q, want user", m.Role)
	}
	if m.ID == "" || m.Timestamp.IsZero() {
		t.Error("message missing id or timestamp")
	}
}

func TestNewAssistantMessage(t *testing.T) {
	m := NewAssistantMessage("답변")
	if m.Role != RoleAssistant || m.Content != "답변" {
		t.Errorf("message = %+v", m)
	}
	if m.IsError {
		t.Error("fresh assistant message should not be error-flagged")
	}
}

func TestMessageIDsAreUnique(t *testing.T) {
	a := NewUserMessage("a")
	b := NewUserMessage("a")
	if a.ID == b.ID {
		t.Error("two messages share an id")
	}
}
