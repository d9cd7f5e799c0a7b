package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Engine drives a conversation's state record through the step graph. Each
// conversation key holds at most one executing step at a time; concurrent
// messages and resumes for the same key serialize on a per-key mutex. The
// mutex is never held across a checkpoint suspension, only for the duration
// of a Start or Resume call.
type Engine struct {
	store  Store
	rt     *Runtime
	logger *slog.Logger

	locks sync.Map
}

func NewEngine(store Store, rt *Runtime) *Engine {
	logger := rt.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Engine{
		store:  store,
		rt:     rt,
		logger: logger.With("system", "workflow"),
	}
}

// StartRequest carries the inbound message that begins a run.
type StartRequest struct {
	ConversationKey string
	UserKey         string
	TenantKey       string
	Channel         string
	Message         string
}

// Start begins a fresh run for the conversation and executes steps until the
// run terminates or suspends at a checkpoint. The returned state is the
// persisted record as of the moment Start returns.
func (e *Engine) Start(ctx context.Context, req StartRequest) (State, error) {
	unlock := e.lock(req.ConversationKey)
	defer unlock()

	s := NewState(
		req.ConversationKey,
		req.UserKey,
		req.TenantKey,
		req.Channel,
		req.Message,
	)

	if err := e.save(ctx, &s); err != nil {
		return s, err
	}

	return e.run(ctx, s, StepClassify, "")
}

// Resume continues a run suspended at a checkpoint. The supplied kind and
// context are translated into a state patch; the suspension marker is
// cleared and persisted before execution continues, so a replayed resume
// for the same suspension observes ErrNotSuspended rather than repeating
// the transition. If a step fails during the continuation, the run re-parks
// at the last committed step; re-issuing the decision then retries from the
// failed step without repeating the steps that already committed.
func (e *Engine) Resume(
	ctx context.Context,
	conversationKey string,
	kind ResumeKind,
	rc ResumeContext,
) (State, error) {
	unlock := e.lock(conversationKey)
	defer unlock()

	loaded, err := e.store.Load(ctx, conversationKey)
	if err != nil {
		return State{}, err
	}
	s := *loaded

	if s.SuspendedAt == "" {
		return s, fmt.Errorf(
			"%w: conversation %s has no pending checkpoint",
			ErrNotSuspended, conversationKey,
		)
	}

	checkpoint := s.SuspendedAt
	s = ResumePatch(kind, rc).Apply(s)
	s.SuspendedAt = ""

	if err := e.save(ctx, &s); err != nil {
		return s, err
	}

	next, ok := nextStep(checkpoint, s)
	if !ok {
		e.logger.InfoContext(
			ctx, "run terminated on resume",
			"conversation", conversationKey,
			"checkpoint", checkpoint,
			"status", s.Status,
		)
		return s, nil
	}

	return e.run(ctx, s, next, checkpoint)
}

// run executes steps from the given step until the graph terminates or a
// checkpoint suspends the run. State is persisted after every step. On a
// step failure the uncommitted mutations are discarded and, when a prior
// step already committed (after is the cursor for that), the run is
// re-suspended there so the caller can retry the failed step by re-issuing
// the same decision.
func (e *Engine) run(ctx context.Context, s State, step, after Step) (State, error) {
	for {
		e.logger.DebugContext(
			ctx, "executing step",
			"conversation", s.ConversationKey,
			"step", step,
		)

		committed := s
		next, err := e.exec(ctx, &s, step)
		if err != nil {
			if after == "" {
				return committed, err
			}
			return e.park(ctx, committed, after, err)
		}

		if step.Checkpoint() {
			s.SuspendedAt = step
		}

		if err := e.save(ctx, &s); err != nil {
			return s, err
		}

		if step.Checkpoint() {
			e.logger.InfoContext(
				ctx, "run suspended",
				"conversation", s.ConversationKey,
				"checkpoint", step,
				"status", s.Status,
			)
			return s, nil
		}

		after = step

		var ok bool
		step, ok = nextStep(next, s)
		if !ok {
			e.logger.InfoContext(
				ctx, "run terminated",
				"conversation", s.ConversationKey,
				"status", s.Status,
			)
			return s, nil
		}
	}
}

// park re-suspends a run at the last committed step after a continuation
// failure, keeping the record resumable. The original step error is returned
// either way; a persistence failure here is logged, since the committed
// record is still the one on disk.
func (e *Engine) park(ctx context.Context, s State, at Step, cause error) (State, error) {
	s.SuspendedAt = at
	if err := e.save(ctx, &s); err != nil {
		e.logger.ErrorContext(
			ctx, "re-suspend after step failure did not persist",
			"conversation", s.ConversationKey,
			"step", at,
			"error", err,
		)
		return s, cause
	}

	e.logger.WarnContext(
		ctx, "run re-suspended after step failure",
		"conversation", s.ConversationKey,
		"step", at,
		"error", cause,
	)
	return s, cause
}

// exec dispatches a single step, mutating the state in place. It returns the
// step that actually ran so the caller can route the follow-up transition.
func (e *Engine) exec(ctx context.Context, s *State, step Step) (Step, error) {
	var err error

	switch step {
	case StepClassify:
		*s, err = e.classify(ctx, *s)
	case StepNormalize:
		*s = e.normalize(*s)
	case StepDraft:
		*s, err = e.draft(ctx, *s)
	case StepReview:
		*s, err = e.review(*s)
	case StepRevise:
		*s = e.revise(*s)
	case StepApprove:
		*s = e.approve(*s)
	case StepRender:
		*s, err = e.renderOutput(ctx, *s)
	case StepAudit:
		*s = e.recordAudit(ctx, *s)
	case StepClarify:
		*s = e.clarify(*s)
	default:
		err = fmt.Errorf("%w: unknown step %q", ErrInvalidState, step)
	}

	return step, err
}

// save validates the record's invariants and persists it. A state that
// fails validation never reaches the store.
func (e *Engine) save(ctx context.Context, s *State) error {
	if err := s.Validate(); err != nil {
		return err
	}

	s.UpdatedAt = time.Now().UTC()

	if err := e.store.Save(ctx, s); err != nil {
		return fmt.Errorf("%w: persist conversation %s: %w",
			ErrStore, s.ConversationKey, err,
		)
	}

	return nil
}

func (e *Engine) lock(key string) func() {
	mu, _ := e.locks.LoadOrStore(key, &sync.Mutex{})
	m := mu.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}
