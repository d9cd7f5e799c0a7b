// Package workflow implements the supervised document-generation workflow
// for Scriven: a resumable state machine that carries a user request through
// classification, drafting, human review, approval, rendering, and audit.
// The engine suspends at the review and approve checkpoints and resumes from
// persisted state when a human decision arrives.
package workflow

import (
	"fmt"
	"time"
)

// MaxRevisions is the hard cap on the revise/draft cycle. Once a run's
// revision count reaches this value, the next revision request is converted
// into an automatic approval so the loop always terminates.
const MaxRevisions = 3

// Intent classifies what the user is asking for.
type Intent string

const (
	IntentGenerate Intent = "generate"
	IntentEdit     Intent = "edit"
	IntentQuestion Intent = "question"
	IntentUnknown  Intent = "unknown"
)

// ParseIntent maps a raw classifier response to an Intent, case-insensitively.
// Anything outside the known set becomes IntentUnknown.
func ParseIntent(s string) Intent {
	switch Intent(normalizeToken(s)) {
	case IntentGenerate:
		return IntentGenerate
	case IntentEdit:
		return IntentEdit
	case IntentQuestion:
		return IntentQuestion
	default:
		return IntentUnknown
	}
}

// Status is the externally visible state of a run. It drives presentation;
// transition decisions read it only where a human decision was merged in.
type Status string

const (
	StatusProcessing          Status = "processing"
	StatusReviewNeeded        Status = "review_needed"
	StatusRevisionRequested   Status = "revision_requested"
	StatusApproved            Status = "approved"
	StatusCompleted           Status = "completed"
	StatusClarificationNeeded Status = "clarification_needed"
	StatusError               Status = "error"
)

// Step names a node in the run graph. The empty Step means "not suspended"
// when used as a suspension marker.
type Step string

const (
	StepClassify  Step = "classify"
	StepNormalize Step = "normalize_input"
	StepDraft     Step = "draft"
	StepReview    Step = "review"
	StepRevise    Step = "revise"
	StepApprove   Step = "approve"
	StepRender    Step = "render"
	StepAudit     Step = "audit"
	StepClarify   Step = "clarify"
)

// Checkpoint reports whether the engine suspends after executing the step.
func (s Step) Checkpoint() bool {
	return s == StepReview || s == StepApprove
}

// ProcessedInput is the normalized form of a generation request.
type ProcessedInput struct {
	OriginalMessage string `json:"original_message"`
	Intent          Intent `json:"intent"`
	Channel         string `json:"channel"`
}

// DraftMetadata records the provenance of the current draft.
type DraftMetadata struct {
	Model       string    `json:"model"`
	GeneratedAt time.Time `json:"generated_at"`
	Revision    int       `json:"revision"`
}

// State is the complete snapshot of one workflow run, keyed by conversation.
// Steps never mutate a State in place; each returns a new logical version,
// and the engine persists after every step.
type State struct {
	ConversationKey string `json:"conversation_key"`
	UserKey         string `json:"user_key"`
	TenantKey       string `json:"tenant_key"`
	Channel         string `json:"channel"`
	InputMessage    string `json:"input_message"`

	Intent           Intent          `json:"intent,omitempty"`
	ProcessedInput   *ProcessedInput `json:"processed_input,omitempty"`
	Draft            string          `json:"draft,omitempty"`
	DraftMetadata    *DraftMetadata  `json:"draft_metadata,omitempty"`
	RevisionFeedback string          `json:"revision_feedback,omitempty"`
	RevisionCount    int             `json:"revision_count"`

	Status         Status     `json:"status"`
	OutputRef      string     `json:"output_ref,omitempty"`
	OutputStoreKey string     `json:"output_store_key,omitempty"`
	ModelUsed      string     `json:"model_used,omitempty"`
	TokensUsed     int        `json:"tokens_used,omitempty"`
	ApprovedAt     *time.Time `json:"approved_at,omitempty"`

	// SuspendedAt is the step the run is parked at, or empty when the run
	// is executing or terminal. Usually a checkpoint; after a continuation
	// failure it is the last committed step, so a retried decision resumes
	// past the work that already happened. Owned by the engine.
	SuspendedAt Step `json:"suspended_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewState creates the initial State Record for a conversation's first message.
func NewState(conversationKey, userKey, tenantKey, channel, message string) State {
	now := time.Now().UTC()
	return State{
		ConversationKey: conversationKey,
		UserKey:         userKey,
		TenantKey:       tenantKey,
		Channel:         channel,
		InputMessage:    message,
		Status:          StatusProcessing,
		RevisionCount:   0,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Validate checks the structural invariants of a State Record.
func (s *State) Validate() error {
	if s.ConversationKey == "" {
		return fmt.Errorf("%w: empty conversation key", ErrInvalidState)
	}
	if s.RevisionCount < 0 || s.RevisionCount > MaxRevisions {
		return fmt.Errorf(
			"%w: revision count %d outside [0, %d]",
			ErrInvalidState, s.RevisionCount, MaxRevisions,
		)
	}

	switch s.Status {
	case StatusReviewNeeded, StatusRevisionRequested, StatusApproved, StatusCompleted:
		if s.Draft == "" {
			return fmt.Errorf("%w: status %s with no draft", ErrInvalidState, s.Status)
		}
	}

	approvedStatus := s.Status == StatusApproved || s.Status == StatusCompleted
	if approvedStatus != (s.ApprovedAt != nil) {
		return fmt.Errorf(
			"%w: approved_at presence inconsistent with status %s",
			ErrInvalidState, s.Status,
		)
	}

	if (s.OutputRef != "") != (s.Status == StatusCompleted) {
		return fmt.Errorf(
			"%w: output_ref presence inconsistent with status %s",
			ErrInvalidState, s.Status,
		)
	}

	return nil
}

// Terminal reports whether the status is a terminal outcome of a run.
func (s *State) Terminal() bool {
	switch s.Status {
	case StatusCompleted, StatusClarificationNeeded, StatusError:
		return true
	}
	return false
}
