package workflow

import (
	"fmt"
	"time"
)

// normalize builds the structured request from the raw message. It is a
// total function: no external call, no failure mode.
func (e *Engine) normalize(s State) State {
	s.ProcessedInput = &ProcessedInput{
		OriginalMessage: s.InputMessage,
		Intent:          s.Intent,
		Channel:         s.Channel,
	}
	return s
}

// review is the first checkpoint. The step itself only asserts that a draft
// is waiting for review; the engine suspends immediately after it.
func (e *Engine) review(s State) (State, error) {
	if s.Status != StatusReviewNeeded {
		return s, fmt.Errorf(
			"%w: review entered with status %s",
			ErrInvalidState, s.Status,
		)
	}
	return s, nil
}

// revise increments the revision counter by exactly one and marks the run
// as cycling back toward a new draft.
func (e *Engine) revise(s State) State {
	s.RevisionCount++
	s.Status = StatusRevisionRequested
	return s
}

// approve is the second checkpoint. It marks the draft approved; on the
// forced-finalization path (revision cap reached) no human timestamp exists
// yet, so the approval time defaults to now.
func (e *Engine) approve(s State) State {
	s.Status = StatusApproved
	if s.ApprovedAt == nil {
		now := time.Now().UTC()
		s.ApprovedAt = &now
	}
	return s
}

// clarify terminates a run whose intent could not be recognized. Not an
// error: it is a successful classification outcome requesting more input.
func (e *Engine) clarify(s State) State {
	s.Status = StatusClarificationNeeded
	s.Draft = ""
	s.DraftMetadata = nil
	return s
}
