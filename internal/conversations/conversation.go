// Package conversations implements conversation-scoped workflow persistence
// and the channel-facing HTTP surface. Each conversation key owns one state
// record; inbound messages start runs and resume signals continue suspended
// ones. The package doubles as the workflow engine's persistence store.
package conversations

import (
	"context"
	"time"

	"github.com/agentize/scriven/internal/workflow"
	"github.com/agentize/scriven/pkg/pagination"
)

// Conversation is the read model over a persisted workflow run: the filter
// columns used for listing plus the full state snapshot.
type Conversation struct {
	ConversationKey string          `json:"conversation_key"`
	UserKey         string          `json:"user_key"`
	TenantKey       string          `json:"tenant_key"`
	Channel         string          `json:"channel"`
	Status          workflow.Status `json:"status"`
	RevisionCount   int             `json:"revision_count"`
	MessageCount    int             `json:"message_count"`
	SuspendedAt     workflow.Step   `json:"suspended_at,omitempty"`
	State           workflow.State  `json:"state"`
	LastActivity    time.Time       `json:"last_activity"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// System defines the public contract for conversation domain operations.
// It embeds workflow.Store: the engine persists run state through the same
// repository that serves the read endpoints.
type System interface {
	workflow.Store

	Handler(engine *workflow.Engine) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Conversation], error)

	Find(ctx context.Context, conversationKey string) (*Conversation, error)

	// RecordMessage bumps the inbound message counter for a conversation
	// whose row already exists.
	RecordMessage(ctx context.Context, conversationKey string) error
}
