package workflow

import "testing"

func TestNextStep(t *testing.T) {
	tests := []struct {
		name      string
		after     Step
		state     State
		want      Step
		terminate bool
	}{
		{
			name:  "classify generate routes to normalize",
			after: StepClassify,
			state: State{Intent: IntentGenerate},
			want:  StepNormalize,
		},
		{
			name:  "classify edit routes to normalize",
			after: StepClassify,
			state: State{Intent: IntentEdit},
			want:  StepNormalize,
		},
		{
			name:  "classify question skips normalize",
			after: StepClassify,
			state: State{Intent: IntentQuestion},
			want:  StepDraft,
		},
		{
			name:  "classify unknown routes to clarify",
			after: StepClassify,
			state: State{Intent: IntentUnknown},
			want:  StepClarify,
		},
		{
			name:  "normalize routes to draft",
			after: StepNormalize,
			want:  StepDraft,
		},
		{
			name:  "draft routes to review",
			after: StepDraft,
			want:  StepReview,
		},
		{
			name:  "review approved routes to approve",
			after: StepReview,
			state: State{Status: StatusApproved},
			want:  StepApprove,
		},
		{
			name:  "review revision requested routes to revise",
			after: StepReview,
			state: State{Status: StatusRevisionRequested},
			want:  StepRevise,
		},
		{
			name:      "review unchanged terminates",
			after:     StepReview,
			state:     State{Status: StatusReviewNeeded},
			terminate: true,
		},
		{
			name:  "revise below cap routes to draft",
			after: StepRevise,
			state: State{RevisionCount: MaxRevisions - 1},
			want:  StepDraft,
		},
		{
			name:  "revise at cap forces approval",
			after: StepRevise,
			state: State{RevisionCount: MaxRevisions},
			want:  StepApprove,
		},
		{
			name:  "approve routes to render",
			after: StepApprove,
			want:  StepRender,
		},
		{
			name:  "render routes to audit",
			after: StepRender,
			want:  StepAudit,
		},
		{
			name:  "clarify routes to audit",
			after: StepClarify,
			want:  StepAudit,
		},
		{
			name:      "audit terminates",
			after:     StepAudit,
			terminate: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := nextStep(tt.after, tt.state)
			if tt.terminate {
				if ok {
					t.Fatalf("expected termination, got step %s", got)
				}
				return
			}
			if !ok {
				t.Fatalf("expected step %s, got termination", tt.want)
			}
			if got != tt.want {
				t.Errorf("got step %s, want %s", got, tt.want)
			}
		})
	}
}
