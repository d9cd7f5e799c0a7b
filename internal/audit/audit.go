// Package audit implements the append-only audit trail for workflow
// outcomes. Every terminal run writes exactly one entry recording what was
// produced, for whom, and at what cost.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agentize/scriven/pkg/pagination"
)

// Entry is one audit record. ID and CreatedAt are assigned on insert.
type Entry struct {
	ID              uuid.UUID  `json:"id"`
	ConversationKey string     `json:"conversation_key"`
	UserKey         string     `json:"user_key"`
	TenantKey       string     `json:"tenant_key"`
	Channel         string     `json:"channel"`
	Event           string     `json:"event"`
	Intent          string     `json:"intent"`
	Status          string     `json:"status"`
	Model           string     `json:"model"`
	TokensUsed      int        `json:"tokens_used"`
	RevisionCount   int        `json:"revision_count"`
	OutputRef       string     `json:"output_ref"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	OccurredAt      time.Time  `json:"occurred_at"`
	CreatedAt       time.Time  `json:"created_at"`
}

// System defines the public contract for audit operations. Append is the
// only write path; entries are never updated or deleted.
type System interface {
	Handler() *Handler

	Append(ctx context.Context, entry Entry) error

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Entry], error)

	Find(ctx context.Context, id uuid.UUID) (*Entry, error)
}
