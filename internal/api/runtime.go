package api

import (
	"fmt"

	"github.com/agentize/scriven/internal/completion"
	"github.com/agentize/scriven/internal/config"
	"github.com/agentize/scriven/internal/infrastructure"
	"github.com/agentize/scriven/pkg/pagination"
)

// Runtime extends Infrastructure with API-scoped configuration and the
// completion client shared by the workflow collaborators.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination  pagination.Config
	Completions completion.System
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) (*Runtime, error) {
	completions, err := completion.NewClient(cfg.Completion.ClientConfig())
	if err != nil {
		return nil, fmt.Errorf("completion client init failed: %w", err)
	}

	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
		},
		Pagination:  cfg.API.Pagination,
		Completions: completions,
	}, nil
}
