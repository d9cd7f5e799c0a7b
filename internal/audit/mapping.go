package audit

import (
	"net/url"

	"github.com/agentize/scriven/pkg/query"
	"github.com/agentize/scriven/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "audit_log", "a").
	Project("id", "ID").
	Project("conversation_key", "ConversationKey").
	Project("user_key", "UserKey").
	Project("tenant_key", "TenantKey").
	Project("channel", "Channel").
	Project("event", "Event").
	Project("intent", "Intent").
	Project("status", "Status").
	Project("model", "Model").
	Project("tokens_used", "TokensUsed").
	Project("revision_count", "RevisionCount").
	Project("output_ref", "OutputRef").
	Project("approved_at", "ApprovedAt").
	Project("occurred_at", "OccurredAt").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "OccurredAt",
	Descending: true,
}

// Filters contains optional filtering criteria for audit queries. All
// fields use exact matching; nil fields are ignored.
type Filters struct {
	ConversationKey *string `json:"conversation_key,omitempty"`
	UserKey         *string `json:"user_key,omitempty"`
	TenantKey       *string `json:"tenant_key,omitempty"`
	Event           *string `json:"event,omitempty"`
	Intent          *string `json:"intent,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("ConversationKey", f.ConversationKey).
		WhereEquals("UserKey", f.UserKey).
		WhereEquals("TenantKey", f.TenantKey).
		WhereEquals("Event", f.Event).
		WhereEquals("Intent", f.Intent)
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

	if e := values.Get("event"); e != "" {
		f.Event = &e
	}

	if i := values.Get("intent"); i != "" {
		f.Intent = &i
	}

	return f
}

func scanEntry(s repository.Scanner) (Entry, error) {
	var e Entry
	err := s.Scan(
		&e.ID,
		&e.ConversationKey,
		&e.UserKey,
		&e.TenantKey,
		&e.Channel,
		&e.Event,
		&e.Intent,
		&e.Status,
		&e.Model,
		&e.TokensUsed,
		&e.RevisionCount,
		&e.OutputRef,
		&e.ApprovedAt,
		&e.OccurredAt,
		&e.CreatedAt,
	)
	return e, err
}
