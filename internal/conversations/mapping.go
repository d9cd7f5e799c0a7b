package conversations

import (
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/agentize/scriven/pkg/query"
	"github.com/agentize/scriven/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "conversations", "c").
	Project("conversation_key", "ConversationKey").
	Project("user_key", "UserKey").
	Project("tenant_key", "TenantKey").
	Project("channel", "Channel").
	Project("status", "Status").
	Project("revision_count", "RevisionCount").
	Project("message_count", "MessageCount").
	Project("suspended_at", "SuspendedAt").
	Project("state", "State").
	Project("last_activity", "LastActivity").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "LastActivity",
	Descending: true,
}

// Filters contains optional filtering criteria for conversation queries.
// All fields use exact matching; nil fields are ignored.
type Filters struct {
	UserKey       *string `json:"user_key,omitempty"`
	TenantKey     *string `json:"tenant_key,omitempty"`
	Channel       *string `json:"channel,omitempty"`
	Status        *string `json:"status,omitempty"`
	SuspendedAt   *string `json:"suspended_at,omitempty"`
	RevisionCount *int    `json:"revision_count,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("UserKey", f.UserKey).
		WhereEquals("TenantKey", f.TenantKey).
		WhereEquals("Channel", f.Channel).
		WhereEquals("Status", f.Status).
		WhereEquals("SuspendedAt", f.SuspendedAt).
		WhereEquals("RevisionCount", f.RevisionCount)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if uk := values.Get("user_key"); uk != "" {
		f.UserKey = &uk
	}

	if tk := values.Get("tenant_key"); tk != "" {
		f.TenantKey = &tk
	}

	if ch := values.Get("channel"); ch != "" {
		f.Channel = &ch
	}

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	if sa := values.Get("suspended_at"); sa != "" {
		f.SuspendedAt = &sa
	}

	if rc := values.Get("revision_count"); rc != "" {
		if v, err := strconv.Atoi(rc); err == nil {
			f.RevisionCount = &v
		}
	}

	return f
}

func scanConversation(s repository.Scanner) (Conversation, error) {
	var (
		c     Conversation
		state []byte
	)

	err := s.Scan(
		&c.ConversationKey,
		&c.UserKey,
		&c.TenantKey,
		&c.Channel,
		&c.Status,
		&c.RevisionCount,
		&c.MessageCount,
		&c.SuspendedAt,
		&state,
		&c.LastActivity,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return c, err
	}

	if err := json.Unmarshal(state, &c.State); err != nil {
		return c, err
	}

	return c, nil
}
