// Package completion fronts the chat completion service used for intent
// classification and draft generation. The wire client targets any
// OpenAI-compatible chat completions endpoint.
package completion

import "context"

// Request is a single completion call. System is optional; Temperature and
// MaxTokens are passed through to the model as given.
type Request struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// Result is the model's response plus the provenance the workflow records.
type Result struct {
	Text       string
	Model      string
	TokensUsed int
}

type System interface {
	Complete(ctx context.Context, req Request) (*Result, error)
}
