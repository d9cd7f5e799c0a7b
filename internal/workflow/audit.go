package workflow

import (
	"context"
	"time"

	"github.com/agentize/scriven/internal/audit"
)

const (
	EventDocumentGenerated      = "document_generated"
	EventClarificationRequested = "clarification_requested"

	auditTimeout = 5 * time.Second
)

// recordAudit appends the terminal audit entry for a run. Audit failures are
// logged but never fail the workflow; the artifact already exists by the time
// this step runs.
func (e *Engine) recordAudit(ctx context.Context, s State) State {
	event := EventClarificationRequested
	if s.Status == StatusCompleted {
		event = EventDocumentGenerated
	}

	ctx, cancel := context.WithTimeout(ctx, auditTimeout)
	defer cancel()

	if err := e.rt.Audit.Append(ctx, audit.Entry{
		ConversationKey: s.ConversationKey,
		UserKey:         s.UserKey,
		TenantKey:       s.TenantKey,
		Channel:         s.Channel,
		Event:           event,
		Intent:          string(s.Intent),
		Status:          string(s.Status),
		Model:           s.ModelUsed,
		TokensUsed:      s.TokensUsed,
		RevisionCount:   s.RevisionCount,
		OutputRef:       s.OutputRef,
		ApprovedAt:      s.ApprovedAt,
		OccurredAt:      time.Now().UTC(),
	}); err != nil {
		e.logger.ErrorContext(
			ctx, "audit append failed",
			"conversation", s.ConversationKey,
			"event", event,
			"error", err,
		)
	}

	return s
}
