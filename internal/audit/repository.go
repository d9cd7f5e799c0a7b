package audit

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/agentize/scriven/pkg/pagination"
	"github.com/agentize/scriven/pkg/query"
	"github.com/agentize/scriven/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an audit repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "audit"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) Append(ctx context.Context, entry Entry) error {
	q := `
		INSERT INTO audit_log(id, conversation_key, user_key, tenant_key, channel, event, intent, status, model, tokens_used, revision_count, output_ref, approved_at, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.db.ExecContext(ctx, q,
		uuid.New(),
		entry.ConversationKey,
		entry.UserKey,
		entry.TenantKey,
		entry.Channel,
		entry.Event,
		entry.Intent,
		entry.Status,
		entry.Model,
		entry.TokensUsed,
		entry.RevisionCount,
		entry.OutputRef,
		entry.ApprovedAt,
		entry.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}

	r.logger.Info(
		"audit entry appended",
		"conversation", entry.ConversationKey,
		"event", entry.Event,
	)
	return nil
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Entry], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "ConversationKey", "Event")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)

	var (
		total   int
		entries []Entry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := r.db.QueryRowContext(gctx, countSQL, countArgs...).Scan(&total); err != nil {
			return fmt.Errorf("count audit entries: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		entries, err = repository.QueryMany(gctx, r.db, pageSQL, pageArgs, scanEntry)
		if err != nil {
			return fmt.Errorf("query audit entries: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := pagination.NewPageResult(entries, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Entry, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	e, err := repository.QueryOne(ctx, r.db, q, args, scanEntry)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &e, nil
}
