// Package models defines the core data structures for the insurance-ontology
// chat client.
//
// It includes the conversation transcript types, the hybrid-search
// request/response payloads, and the wizard option types, which are shared
// across modules.
package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a transcript message.
type Role string

const (
	// RoleUser marks messages typed (or wizard-generated) by the user.
	RoleUser Role = "user"
	// RoleAssistant marks messages produced from backend answers.
	RoleAssistant Role = "assistant"
)

// Error variables for better error handling and testability
var (
	ErrEmptyQuery          = errors.New("query cannot be empty")
	ErrBusy                = errors.New("a request is already in flight")
	ErrNoCompanySelected   = errors.New("at least one company must be selected")
	ErrIncompleteSelection = errors.New("all fields must be selected before submit")
	ErrNotReady            = errors.New("selection is not ready for this operation")
)

// Company is an insurer known to the backend. Name is the internal key used
// in API paths; DisplayName is what the user sees.
type Company struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

// Coverage is a single coverage under a company/product pair.
// BenefitAmount is nil when the backend has no amount for it.
type Coverage struct {
	CoverageName  string `json:"coverage_name"`
	BenefitAmount *int64 `json:"benefit_amount"`
	ProductName   string `json:"product_name"`
}

// ComparisonResult is one row of the tabular comparison attached to an
// assistant message. Premium and Notes are optional columns.
type ComparisonResult struct {
	Company  string `json:"company"`
	Product  string `json:"product"`
	Coverage string `json:"coverage"`
	Benefit  string `json:"benefit"`
	Premium  string `json:"premium,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// Source is a cited policy clause attached to an assistant message.
type Source struct {
	Company string `json:"company"`
	Product string `json:"product"`
	Clause  string `json:"clause"`
	DocType string `json:"docType,omitempty"`
}

// Message is one entry of the append-only conversation transcript.
type Message struct {
	ID              string             `json:"id"`
	Role            Role               `json:"role"`
	Content         string             `json:"content"`
	Timestamp       time.Time          `json:"timestamp"`
	ComparisonTable []ComparisonResult `json:"comparisonTable,omitempty"`
	Sources         []Source           `json:"sources,omitempty"`
	IsError         bool               `json:"isError,omitempty"`
}

// NewUserMessage builds a user transcript entry with trimmed content.
func NewUserMessage(content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      RoleUser,
		Content:   strings.TrimSpace(content),
		Timestamp: time.Now(),
	}
}

// NewAssistantMessage builds an assistant transcript entry.
func NewAssistantMessage(content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      RoleAssistant,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// SearchParams carries the structured search hints attached to a template.
type SearchParams struct {
	CoverageKeyword string   `json:"coverageKeyword,omitempty"`
	ExactMatch      bool     `json:"exactMatch,omitempty"`
	ExcludeKeywords []string `json:"excludeKeywords,omitempty"`
	DocTypes        []string `json:"docTypes,omitempty"`
}

// SearchRequest is the POST /api/hybrid-search payload.
type SearchRequest struct {
	Query        string        `json:"query"`
	LastCoverage string        `json:"lastCoverage,omitempty"`
	TemplateID   string        `json:"templateId,omitempty"`
	SearchParams *SearchParams `json:"searchParams,omitempty"`
}

// SearchResponse is the backend answer to a hybrid search.
type SearchResponse struct {
	Answer          string             `json:"answer"`
	ComparisonTable []ComparisonResult `json:"comparisonTable,omitempty"`
	Sources         []Source           `json:"sources,omitempty"`
	Coverage        string             `json:"coverage,omitempty"`
}
