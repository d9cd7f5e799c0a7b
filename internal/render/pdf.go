package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Layout constants for the generated A4 document. Body text renders in a
// fixed-width font so line wrapping stays predictable.
const (
	pageLineLimit = 52
	lineRuneLimit = 92

	bodyFont   = "Courier"
	bodySize   = 10
	titleFont  = "Helvetica-Bold"
	titleSize  = 16
	footerFont = "Helvetica-Oblique"
	footerSize = 8

	marginX     = 50
	titleY      = 60
	bodyStartY  = 100
	bodyLineGap = 12
	footerY     = 30
)

// declaration mirrors the pdfcpu create-from-JSON page description format.
type declaration struct {
	Paper  string          `json:"paper"`
	Origin string          `json:"origin"`
	Pages  map[string]page `json:"pages"`
}

type page struct {
	Content content `json:"content"`
}

type content struct {
	Text []text `json:"text"`
}

type text struct {
	Value  string  `json:"value"`
	Anchor string  `json:"anchor,omitempty"`
	Dx     float64 `json:"dx,omitempty"`
	Dy     float64 `json:"dy,omitempty"`
	Font   font    `json:"font"`
}

type font struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

// PDFRenderer implements System on top of pdfcpu's create-from-JSON API.
type PDFRenderer struct {
	logger *slog.Logger
}

func NewPDFRenderer(logger *slog.Logger) *PDFRenderer {
	return &PDFRenderer{
		logger: logger.With("system", "render"),
	}
}

func (r *PDFRenderer) Render(ctx context.Context, req Request) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	decl := buildDeclaration(req)

	declJSON, err := json.Marshal(decl)
	if err != nil {
		return nil, fmt.Errorf("marshal page declaration: %w", err)
	}

	var buf bytes.Buffer
	if err := api.Create(nil, bytes.NewReader(declJSON), &buf, nil); err != nil {
		return nil, fmt.Errorf("create pdf: %w", err)
	}

	pages, err := api.PageCount(bytes.NewReader(buf.Bytes()), nil)
	if err != nil {
		return nil, fmt.Errorf("validate pdf: %w", err)
	}

	r.logger.InfoContext(
		ctx, "document rendered",
		"title", req.Title,
		"pages", pages,
		"bytes", buf.Len(),
	)

	return buf.Bytes(), nil
}

// buildDeclaration lays the document out page by page: title and provenance
// header on the first page, wrapped body text across as many pages as it
// needs, and the approval footer on the last page.
func buildDeclaration(req Request) declaration {
	lines := wrapLines(req.Content, lineRuneLimit)

	pages := make(map[string]page)
	pageNum := 0

	for start := 0; start < len(lines) || pageNum == 0; {
		pageNum++

		limit := pageLineLimit
		var blocks []text

		if pageNum == 1 {
			blocks = append(blocks, text{
				Value:  req.Title,
				Anchor: "tl",
				Dx:     marginX,
				Dy:     titleY,
				Font:   font{Name: titleFont, Size: titleSize},
			})
			// The header costs body lines on the first page.
			limit -= 4
		}

		end := min(start+limit, len(lines))
		if end > start {
			blocks = append(blocks, text{
				Value:  strings.Join(lines[start:end], "\n"),
				Anchor: "tl",
				Dx:     marginX,
				Dy:     bodyStartY,
				Font:   font{Name: bodyFont, Size: bodySize},
			})
		}
		start = end

		if start >= len(lines) {
			blocks = append(blocks, text{
				Value:  footerLine(req),
				Anchor: "bl",
				Dx:     marginX,
				Dy:     footerY,
				Font:   font{Name: footerFont, Size: footerSize},
			})
		}

		pages[fmt.Sprintf("%d", pageNum)] = page{Content: content{Text: blocks}}
	}

	return declaration{
		Paper:  "A4",
		Origin: "upperLeft",
		Pages:  pages,
	}
}

func footerLine(req Request) string {
	parts := []string{
		fmt.Sprintf("Generated by %s", req.Metadata.Model),
		fmt.Sprintf("revision %d", req.Metadata.Revision),
	}
	if !req.Metadata.GeneratedAt.IsZero() {
		parts = append(parts, req.Metadata.GeneratedAt.Format("2006-01-02 15:04 MST"))
	}
	if req.ApprovedAt != nil {
		parts = append(parts, fmt.Sprintf(
			"approved by %s at %s",
			req.Actor, req.ApprovedAt.Format("2006-01-02 15:04 MST"),
		))
	}
	return strings.Join(parts, " | ")
}

// wrapLines splits content on newlines and soft-wraps anything longer than
// the limit at word boundaries, falling back to a hard break for unbroken
// runs.
func wrapLines(content string, limit int) []string {
	var out []string

	for line := range strings.Lines(content) {
		line = strings.TrimRight(line, "\r\n")
		for {
			runes := []rune(line)
			if len(runes) <= limit {
				out = append(out, line)
				break
			}

			cut := limit
			for i := limit; i > 0; i-- {
				if runes[i] == ' ' {
					cut = i
					break
				}
			}

			out = append(out, strings.TrimRight(string(runes[:cut]), " "))
			line = strings.TrimLeft(string(runes[cut:]), " ")
		}
	}

	return out
}
