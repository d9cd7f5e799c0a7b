package documents_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/agentize/scriven/internal/documents"
	"github.com/agentize/scriven/pkg/query"
)

func ptr[T any](v T) *T { return &v }

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", documents.ErrNotFound, http.StatusNotFound},
		{"duplicate", documents.ErrDuplicate, http.StatusConflict},
		{"invalid id", documents.ErrInvalidID, http.StatusBadRequest},
		{"unknown error", errors.New("something else"), http.StatusInternalServerError},
		{"wrapped not found", fmt.Errorf("find failed: %w", documents.ErrNotFound), http.StatusNotFound},
		{"wrapped duplicate", fmt.Errorf("insert failed: %w", documents.ErrDuplicate), http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := documents.MapHTTPStatus(tt.err)
			if got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestFiltersFromQuery(t *testing.T) {
	t.Run("all params present", func(t *testing.T) {
		values := url.Values{
			"conversation_key": {"conv-1"},
			"user_key":         {"user-1"},
			"tenant_key":       {"tenant-1"},
			"title":            {"calibration"},
			"model":            {"gpt-4o"},
			"revision_count":   {"2"},
		}

		f := documents.FiltersFromQuery(values)

		if f.ConversationKey == nil || *f.ConversationKey != "conv-1" {
			t.Errorf("ConversationKey = %v, want conv-1", f.ConversationKey)
		}
		if f.UserKey == nil || *f.UserKey != "user-1" {
			t.Errorf("UserKey = %v, want user-1", f.UserKey)
		}
		if f.TenantKey == nil || *f.TenantKey != "tenant-1" {
			t.Errorf("TenantKey = %v, want tenant-1", f.TenantKey)
		}
		if f.Title == nil || *f.Title != "calibration" {
			t.Errorf("Title = %v, want calibration", f.Title)
		}
		if f.Model == nil || *f.Model != "gpt-4o" {
			t.Errorf("Model = %v, want gpt-4o", f.Model)
		}
		if f.RevisionCount == nil || *f.RevisionCount != 2 {
			t.Errorf("RevisionCount = %v, want 2", f.RevisionCount)
		}
	})

	t.Run("empty params yield nil fields", func(t *testing.T) {
		f := documents.FiltersFromQuery(url.Values{})

		if f.ConversationKey != nil {
			t.Errorf("ConversationKey = %v, want nil", f.ConversationKey)
		}
		if f.UserKey != nil {
			t.Errorf("UserKey = %v, want nil", f.UserKey)
		}
		if f.TenantKey != nil {
			t.Errorf("TenantKey = %v, want nil", f.TenantKey)
		}
		if f.Title != nil {
			t.Errorf("Title = %v, want nil", f.Title)
		}
		if f.Model != nil {
			t.Errorf("Model = %v, want nil", f.Model)
		}
		if f.RevisionCount != nil {
			t.Errorf("RevisionCount = %v, want nil", f.RevisionCount)
		}
	})

	t.Run("invalid revision_count ignored", func(t *testing.T) {
		values := url.Values{"revision_count": {"not-a-number"}}
		f := documents.FiltersFromQuery(values)

		if f.RevisionCount != nil {
			t.Errorf("RevisionCount = %v, want nil for invalid input", f.RevisionCount)
		}
	})

	t.Run("partial params", func(t *testing.T) {
		values := url.Values{
			"user_key": {"user-7"},
			"title":    {"maintenance"},
		}

		f := documents.FiltersFromQuery(values)

		if f.UserKey == nil || *f.UserKey != "user-7" {
			t.Errorf("UserKey = %v, want user-7", f.UserKey)
		}
		if f.Title == nil || *f.Title != "maintenance" {
			t.Errorf("Title = %v, want maintenance", f.Title)
		}
		if f.Model != nil {
			t.Errorf("Model = %v, want nil", f.Model)
		}
	})
}

func TestFiltersApply(t *testing.T) {
	projection := query.
		NewProjectionMap("public", "generated_documents", "d").
		Project("conversation_key", "ConversationKey").
		Project("user_key", "UserKey").
		Project("tenant_key", "TenantKey").
		Project("title", "Title").
		Project("model", "Model").
		Project("revision_count", "RevisionCount")

	t.Run("no filters produces no WHERE clause", func(t *testing.T) {
		b := query.NewBuilder(projection)
		f := documents.Filters{}
		f.Apply(b)
		sql, args := b.Build()

		wantSQL := "SELECT d.conversation_key, d.user_key, d.tenant_key, d.title, d.model, d.revision_count FROM public.generated_documents d"
		if sql != wantSQL {
			t.Errorf("sql = %q, want %q", sql, wantSQL)
		}
		if len(args) != 0 {
			t.Errorf("args = %v, want empty", args)
		}
	})

	t.Run("conversation key equals filter", func(t *testing.T) {
		b := query.NewBuilder(projection)
		f := documents.Filters{ConversationKey: ptr("conv-1")}
		f.Apply(b)
		_, args := b.Build()

		if len(args) != 1 {
			t.Fatalf("args length = %d, want 1", len(args))
		}
		if v, ok := args[0].(*string); !ok || *v != "conv-1" {
			t.Errorf("args[0] = %v, want *conv-1", args[0])
		}
	})

	t.Run("title contains filter", func(t *testing.T) {
		b := query.NewBuilder(projection)
		f := documents.Filters{Title: ptr("calibration")}
		f.Apply(b)
		_, args := b.Build()

		if len(args) != 1 || args[0] != "%calibration%" {
			t.Errorf("args = %v, want [%%calibration%%]", args)
		}
	})

	t.Run("revision count equals filter", func(t *testing.T) {
		b := query.NewBuilder(projection)
		f := documents.Filters{RevisionCount: ptr(3)}
		f.Apply(b)
		_, args := b.Build()

		if len(args) != 1 {
			t.Fatalf("args length = %d, want 1", len(args))
		}
		if v, ok := args[0].(*int); !ok || *v != 3 {
			t.Errorf("args[0] = %v, want *3", args[0])
		}
	})

	t.Run("multiple filters combine with AND", func(t *testing.T) {
		b := query.NewBuilder(projection)
		f := documents.Filters{
			UserKey:   ptr("user-1"),
			TenantKey: ptr("tenant-1"),
			Model:     ptr("gpt-4o"),
		}
		f.Apply(b)
		_, args := b.Build()

		if len(args) != 3 {
			t.Errorf("args length = %d, want 3", len(args))
		}
	})
}
