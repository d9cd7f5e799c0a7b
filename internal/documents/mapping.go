package documents

import (
	"net/url"
	"strconv"

	"github.com/agentize/scriven/pkg/query"
	"github.com/agentize/scriven/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "generated_documents", "d").
	Project("id", "ID").
	Project("conversation_key", "ConversationKey").
	Project("user_key", "UserKey").
	Project("tenant_key", "TenantKey").
	Project("title", "Title").
	Project("content", "Content").
	Project("output_ref", "OutputRef").
	Project("storage_key", "StorageKey").
	Project("model", "Model").
	Project("revision_count", "RevisionCount").
	Project("approved_by", "ApprovedBy").
	Project("approved_at", "ApprovedAt").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for document queries.
// Nil fields are ignored. Keys and Model use exact matching; Title uses
// case-insensitive contains matching.
type Filters struct {
	ConversationKey *string `json:"conversation_key,omitempty"`
	UserKey         *string `json:"user_key,omitempty"`
	TenantKey       *string `json:"tenant_key,omitempty"`
	Title           *string `json:"title,omitempty"`
	Model           *string `json:"model,omitempty"`
	RevisionCount   *int    `json:"revision_count,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("ConversationKey", f.ConversationKey).
		WhereEquals("UserKey", f.UserKey).
		WhereEquals("TenantKey", f.TenantKey).
		WhereContains("Title", f.Title).
		WhereEquals("Model", f.Model).
		WhereEquals("RevisionCount", f.RevisionCount)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if ck := values.Get("conversation_key"); ck != "" {
		f.ConversationKey = &ck
	}

	if uk := values.Get("user_key"); uk != "" {
		f.UserKey = &uk
	}

	if tk := values.Get("tenant_key"); tk != "" {
		f.TenantKey = &tk
	}

	if t := values.Get("title"); t != "" {
		f.Title = &t
	}

	if m := values.Get("model"); m != "" {
		f.Model = &m
	}

	if rc := values.Get("revision_count"); rc != "" {
		if v, err := strconv.Atoi(rc); err == nil {
			f.RevisionCount = &v
		}
	}

	return f
}

func scanDocument(s repository.Scanner) (Document, error) {
	var d Document
	err := s.Scan(
		&d.ID,
		&d.ConversationKey,
		&d.UserKey,
		&d.TenantKey,
		&d.Title,
		&d.Content,
		&d.OutputRef,
		&d.StorageKey,
		&d.Model,
		&d.RevisionCount,
		&d.ApprovedBy,
		&d.ApprovedAt,
		&d.CreatedAt,
	)
	return d, err
}
