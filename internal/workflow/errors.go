package workflow

import "errors"

// Sentinel errors for workflow operations. Step failures wrap the failing
// collaborator's error in the matching sentinel; the engine surfaces them
// without mutating the last persisted State Record.
var (
	// ErrClassification wraps a completion failure during intent classification.
	ErrClassification = errors.New("intent classification failed")
	// ErrGeneration wraps a completion failure during draft generation.
	ErrGeneration = errors.New("draft generation failed")
	// ErrRender wraps a rendering or artifact upload failure.
	ErrRender = errors.New("artifact rendering failed")
	// ErrStore wraps a persistence failure in a collaborator store.
	ErrStore = errors.New("store operation failed")

	// ErrConversationNotFound indicates no State Record exists for the key.
	ErrConversationNotFound = errors.New("conversation not found")
	// ErrNotSuspended indicates a resume signal for a run that is not
	// parked at a checkpoint. Replayed resumes fail here, which is what
	// keeps a duplicated human action from applying twice.
	ErrNotSuspended = errors.New("run is not suspended at a checkpoint")
	// ErrInvalidState indicates a State Record invariant violation.
	ErrInvalidState = errors.New("invalid workflow state")
)
