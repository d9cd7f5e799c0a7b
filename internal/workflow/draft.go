package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/agentize/scriven/internal/completion"
)

// draft generates or revises the document draft. When revision feedback is
// present, the prior draft and the feedback travel with the request so the
// model revises rather than regenerating from scratch. The stored draft is
// always prefixed with the mandatory disclosure banner.
func (e *Engine) draft(ctx context.Context, s State) (State, error) {
	revisionContext := ""
	if s.RevisionFeedback != "" {
		revisionContext = fmt.Sprintf(draftRevisionContext, s.Draft, s.RevisionFeedback)
	}

	result, err := e.rt.Completions.Complete(ctx, completion.Request{
		System:      draftSystemPrompt,
		Prompt:      fmt.Sprintf(draftPrompt, s.InputMessage, revisionContext),
		Temperature: draftTemperature,
		MaxTokens:   draftMaxTokens,
	})
	if err != nil {
		return s, fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	s.Draft = Banner + "\n\n" + result.Text
	s.DraftMetadata = &DraftMetadata{
		Model:       result.Model,
		GeneratedAt: time.Now().UTC(),
		Revision:    s.RevisionCount,
	}
	s.ModelUsed = result.Model
	s.TokensUsed += result.TokensUsed
	s.Status = StatusReviewNeeded

	e.logger.InfoContext(
		ctx, "draft generated",
		"conversation", s.ConversationKey,
		"revision", s.RevisionCount,
		"tokens", result.TokensUsed,
	)

	return s, nil
}
