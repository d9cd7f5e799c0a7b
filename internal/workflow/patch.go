package workflow

import "time"

// Patch is the typed state update merged into a persisted State Record when
// a run resumes. Only the fields a human decision is permitted to change are
// representable; nil fields are left untouched by Apply.
type Patch struct {
	Status           *Status
	RevisionFeedback *string
	ApprovedAt       *time.Time
}

// IsZero reports whether the patch changes nothing.
func (p Patch) IsZero() bool {
	return p.Status == nil && p.RevisionFeedback == nil && p.ApprovedAt == nil
}

// Apply merges the patch into a copy of s and returns the result. It is
// total: every combination of set fields produces a valid merge.
func (p Patch) Apply(s State) State {
	if p.Status != nil {
		s.Status = *p.Status
	}
	if p.RevisionFeedback != nil {
		s.RevisionFeedback = *p.RevisionFeedback
	}
	if p.ApprovedAt != nil {
		t := p.ApprovedAt.UTC()
		s.ApprovedAt = &t
	}
	return s
}

// ResumeKind identifies the human action behind a resume signal.
type ResumeKind string

const (
	// ResumeRevision carries edit feedback back into the draft cycle.
	ResumeRevision ResumeKind = "revision"
	// ResumeOutput approves the draft and releases it toward rendering.
	ResumeOutput ResumeKind = "output"
)

// ResumeContext is the free-form context accompanying a resume signal.
type ResumeContext struct {
	Feedback  string     `json:"feedback,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// ResumePatch translates a resume signal into the state patch the engine
// merges before continuing. Unrecognized kinds produce an empty patch: the
// run resumes with state unchanged and the transition rule at the suspended
// checkpoint decides what that means.
func ResumePatch(kind ResumeKind, rc ResumeContext) Patch {
	switch kind {
	case ResumeRevision:
		status := StatusRevisionRequested
		feedback := rc.Feedback
		return Patch{Status: &status, RevisionFeedback: &feedback}
	case ResumeOutput:
		status := StatusApproved
		at := time.Now().UTC()
		if rc.Timestamp != nil {
			at = rc.Timestamp.UTC()
		}
		return Patch{Status: &status, ApprovedAt: &at}
	default:
		return Patch{}
	}
}
