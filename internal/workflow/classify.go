package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/agentize/scriven/internal/completion"
)

// classify asks the completion collaborator for the user's intent. The call
// runs at low temperature with a minimal output budget so the response is a
// single intent token; anything unrecognized degrades to IntentUnknown.
func (e *Engine) classify(ctx context.Context, s State) (State, error) {
	result, err := e.rt.Completions.Complete(ctx, completion.Request{
		Prompt:      fmt.Sprintf(classifyPrompt, s.InputMessage),
		Temperature: classifyTemperature,
		MaxTokens:   classifyMaxTokens,
	})
	if err != nil {
		return s, fmt.Errorf("%w: %w", ErrClassification, err)
	}

	s.Intent = ParseIntent(result.Text)
	s.TokensUsed += result.TokensUsed

	e.logger.InfoContext(
		ctx, "intent classified",
		"conversation", s.ConversationKey,
		"intent", s.Intent,
	)

	return s, nil
}

func normalizeToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
