package conversations

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/agentize/scriven/internal/workflow"
	"github.com/agentize/scriven/pkg/pagination"
	"github.com/agentize/scriven/pkg/query"
	"github.com/agentize/scriven/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a conversation repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "conversations"),
		pagination: pagination,
	}
}

func (r *repo) Handler(engine *workflow.Engine) *Handler {
	return NewHandler(r, engine, r.logger, r.pagination)
}

// Load reads the persisted workflow state for a conversation key.
func (r *repo) Load(ctx context.Context, conversationKey string) (*workflow.State, error) {
	var raw []byte
	err := r.db.QueryRowContext(
		ctx,
		`SELECT state FROM conversations WHERE conversation_key = $1`,
		conversationKey,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", workflow.ErrConversationNotFound, conversationKey)
		}
		return nil, fmt.Errorf("load conversation %s: %w", conversationKey, err)
	}

	var s workflow.State
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode conversation state %s: %w", conversationKey, err)
	}

	return &s, nil
}

// Save upserts the workflow state and keeps the filter columns in sync with
// the snapshot. The state column is authoritative; the extracted columns
// exist for listing and search.
func (r *repo) Save(ctx context.Context, s *workflow.State) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode conversation state %s: %w", s.ConversationKey, err)
	}

	q := `
		INSERT INTO conversations(conversation_key, user_key, tenant_key, channel, status, revision_count, suspended_at, state, last_activity)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		ON CONFLICT (conversation_key) DO UPDATE SET
			user_key = EXCLUDED.user_key,
			tenant_key = EXCLUDED.tenant_key,
			channel = EXCLUDED.channel,
			status = EXCLUDED.status,
			revision_count = EXCLUDED.revision_count,
			suspended_at = EXCLUDED.suspended_at,
			state = EXCLUDED.state,
			last_activity = now(),
			updated_at = now()`

	_, err = r.db.ExecContext(ctx, q,
		s.ConversationKey,
		s.UserKey,
		s.TenantKey,
		s.Channel,
		string(s.Status),
		s.RevisionCount,
		string(s.SuspendedAt),
		raw,
	)
	if err != nil {
		return fmt.Errorf("save conversation %s: %w", s.ConversationKey, err)
	}

	return nil
}

func (r *repo) RecordMessage(ctx context.Context, conversationKey string) error {
	err := repository.ExecExpectOne(
		ctx, r.db,
		`UPDATE conversations SET message_count = message_count + 1, last_activity = now() WHERE conversation_key = $1`,
		conversationKey,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", workflow.ErrConversationNotFound, conversationKey)
		}
		return fmt.Errorf("record message for %s: %w", conversationKey, err)
	}
	return nil
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Conversation], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "ConversationKey", "UserKey")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)

	var (
		total int
		convs []Conversation
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := r.db.QueryRowContext(gctx, countSQL, countArgs...).Scan(&total); err != nil {
			return fmt.Errorf("count conversations: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		convs, err = repository.QueryMany(gctx, r.db, pageSQL, pageArgs, scanConversation)
		if err != nil {
			return fmt.Errorf("query conversations: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := pagination.NewPageResult(convs, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, conversationKey string) (*Conversation, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ConversationKey", conversationKey)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanConversation)
	if err != nil {
		return nil, repository.MapError(err, workflow.ErrConversationNotFound, ErrInvalidKey)
	}
	return &c, nil
}
