package workflow

import (
	"log/slog"

	"github.com/agentize/scriven/internal/audit"
	"github.com/agentize/scriven/internal/completion"
	"github.com/agentize/scriven/internal/documents"
	"github.com/agentize/scriven/internal/render"
	"github.com/agentize/scriven/pkg/storage"
)

// Runtime bundles the collaborators that workflow steps invoke. It is
// constructed once by composition code and shared by reference; all per-run
// mutable state lives in the persisted State Record, never in the Runtime.
type Runtime struct {
	Completions completion.System
	Renderer    render.System
	Artifacts   storage.System
	Documents   documents.System
	Audit       audit.System
	Logger      *slog.Logger
}
