package workflow

// nextStep selects the step that follows after, given the current state.
// It is a pure function of the State Record: no I/O, no clock. The second
// return is false when the run terminates instead of continuing.
func nextStep(after Step, s State) (Step, bool) {
	switch after {
	case StepClassify:
		switch s.Intent {
		case IntentGenerate, IntentEdit:
			return StepNormalize, true
		case IntentQuestion:
			// Plain Q&A skips structured input processing.
			return StepDraft, true
		default:
			return StepClarify, true
		}

	case StepNormalize:
		return StepDraft, true

	case StepDraft:
		return StepReview, true

	case StepReview:
		// Evaluated only after a resume merged a human decision.
		switch s.Status {
		case StatusApproved:
			return StepApprove, true
		case StatusRevisionRequested:
			return StepRevise, true
		default:
			// Rejection or an unchanged review_needed: the run ends here.
			return "", false
		}

	case StepRevise:
		if s.RevisionCount >= MaxRevisions {
			// Forced finalization, not a user-visible approval.
			return StepApprove, true
		}
		return StepDraft, true

	case StepApprove:
		return StepRender, true

	case StepRender:
		return StepAudit, true

	case StepClarify:
		return StepAudit, true

	case StepAudit:
		return "", false
	}

	return "", false
}
