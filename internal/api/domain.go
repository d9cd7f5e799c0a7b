package api

import (
	"github.com/agentize/scriven/internal/audit"
	"github.com/agentize/scriven/internal/conversations"
	"github.com/agentize/scriven/internal/documents"
	"github.com/agentize/scriven/internal/render"
	"github.com/agentize/scriven/internal/workflow"
)

// Domain holds all domain systems that comprise the API, plus the workflow
// engine assembled from them.
type Domain struct {
	Conversations conversations.System
	Documents     documents.System
	Audit         audit.System
	Engine        *workflow.Engine
}

// NewDomain creates all domain systems from the API runtime and wires the
// workflow engine on top of them. The conversation repository serves as the
// engine's persistence store.
func NewDomain(runtime *Runtime) *Domain {
	conversationsSystem := conversations.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	documentsSystem := documents.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)

	auditSystem := audit.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	engine := workflow.NewEngine(conversationsSystem, &workflow.Runtime{
		Completions: runtime.Completions,
		Renderer:    render.NewPDFRenderer(runtime.Logger),
		Artifacts:   runtime.Storage,
		Documents:   documentsSystem,
		Audit:       auditSystem,
		Logger:      runtime.Logger,
	})

	return &Domain{
		Conversations: conversationsSystem,
		Documents:     documentsSystem,
		Audit:         auditSystem,
		Engine:        engine,
	}
}
