// Package render produces the final PDF artifact from an approved draft.
package render

import (
	"context"
	"time"
)

// Metadata is the draft provenance printed on the document.
type Metadata struct {
	Model       string
	GeneratedAt time.Time
	Revision    int
}

// Request describes one document to render.
type Request struct {
	Title      string
	Content    string
	Metadata   Metadata
	Actor      string
	ApprovedAt *time.Time
}

type System interface {
	Render(ctx context.Context, req Request) ([]byte, error)
}
