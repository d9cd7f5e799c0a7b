// Package documents implements the generated document domain for Scriven.
// It records every rendered work instruction with its provenance and blob
// storage reference, and serves retrieval and download endpoints.
package documents

import (
	"time"

	"github.com/google/uuid"
)

// Document represents a rendered work instruction and its provenance.
type Document struct {
	ID              uuid.UUID  `json:"id"`
	ConversationKey string     `json:"conversation_key"`
	UserKey         string     `json:"user_key"`
	TenantKey       string     `json:"tenant_key"`
	Title           string     `json:"title"`
	Content         string     `json:"content"`
	OutputRef       string     `json:"output_ref"`
	StorageKey      string     `json:"storage_key"`
	Model           string     `json:"model"`
	RevisionCount   int        `json:"revision_count"`
	ApprovedBy      string     `json:"approved_by"`
	ApprovedAt      *time.Time `json:"approved_at"`
	CreatedAt       time.Time  `json:"created_at"`
}

// CreateCommand carries the data needed to register a rendered document.
// The artifact itself is already in blob storage under StorageKey by the
// time the record is written.
type CreateCommand struct {
	ConversationKey string
	UserKey         string
	TenantKey       string
	Title           string
	Content         string
	OutputRef       string
	StorageKey      string
	Model           string
	RevisionCount   int
	ApprovedBy      string
	ApprovedAt      *time.Time
}
