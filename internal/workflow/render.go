package workflow

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/agentize/scriven/internal/documents"
	"github.com/agentize/scriven/internal/render"
)

const artifactContentType = "application/pdf"

// renderOutput turns the approved draft into the final artifact: renders the
// PDF, uploads it to blob storage, and persists the document record. Only an
// approved draft may reach this step.
func (e *Engine) renderOutput(ctx context.Context, s State) (State, error) {
	if s.Status != StatusApproved {
		return s, fmt.Errorf(
			"%w: render entered with status %s",
			ErrInvalidState, s.Status,
		)
	}

	title := DeriveTitle(s.Draft)

	var metadata render.Metadata
	if s.DraftMetadata != nil {
		metadata = render.Metadata{
			Model:       s.DraftMetadata.Model,
			GeneratedAt: s.DraftMetadata.GeneratedAt,
			Revision:    s.DraftMetadata.Revision,
		}
	}

	artifact, err := e.rt.Renderer.Render(ctx, render.Request{
		Title:      title,
		Content:    s.Draft,
		Metadata:   metadata,
		Actor:      s.UserKey,
		ApprovedAt: s.ApprovedAt,
	})
	if err != nil {
		return s, fmt.Errorf("%w: %w", ErrRender, err)
	}

	key := fmt.Sprintf("artifacts/%s/%s.pdf", s.ConversationKey, uuid.NewString())
	if err := e.rt.Artifacts.Upload(
		ctx, key, bytes.NewReader(artifact), artifactContentType,
	); err != nil {
		return s, fmt.Errorf("%w: upload artifact: %w", ErrRender, err)
	}

	s.OutputStoreKey = key
	s.OutputRef = e.rt.Artifacts.URL(key)

	if _, err := e.rt.Documents.Create(ctx, documents.CreateCommand{
		ConversationKey: s.ConversationKey,
		UserKey:         s.UserKey,
		TenantKey:       s.TenantKey,
		Title:           title,
		Content:         s.Draft,
		OutputRef:       s.OutputRef,
		StorageKey:      key,
		Model:           s.ModelUsed,
		RevisionCount:   s.RevisionCount,
		ApprovedBy:      s.UserKey,
		ApprovedAt:      s.ApprovedAt,
	}); err != nil {
		return s, fmt.Errorf("%w: save document record: %w", ErrStore, err)
	}

	s.Status = StatusCompleted

	e.logger.InfoContext(
		ctx, "artifact rendered",
		"conversation", s.ConversationKey,
		"title", title,
		"key", key,
	)

	return s, nil
}

const maxTitleLength = 100

// DeriveTitle extracts a human-readable title from a draft: the first line
// that is neither empty nor the disclosure banner, with markdown heading and
// emphasis markers stripped, truncated to 100 characters. Falls back to
// DefaultTitle when no usable line exists.
func DeriveTitle(draft string) string {
	for line := range strings.Lines(draft) {
		line = strings.TrimSpace(line)
		if line == "" || line == Banner {
			continue
		}

		line = strings.TrimLeft(line, "#* ")
		if line == "" {
			continue
		}

		if runes := []rune(line); len(runes) > maxTitleLength {
			line = string(runes[:maxTitleLength])
		}
		return line
	}

	return DefaultTitle
}
