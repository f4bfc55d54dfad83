package credflow

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/tendant/simple-profile/pkg/profile"
)

// State represents a step in the credential-change flow.
type State string

const (
	// StateAwaitingInput is the initial state, before any submission.
	StateAwaitingInput State = "awaiting_input"

	// StateValidating is the transient state while a submission is checked.
	StateValidating State = "validating"

	// StateCommitted means the new credential was hashed, pushed to the
	// linked account and persisted.
	StateCommitted State = "committed"

	// StateRejected means the submission failed validation; no state was
	// changed anywhere.
	StateRejected State = "rejected"
)

// Request carries one credential-change submission.
type Request struct {
	ProfileID     uuid.UUID
	NewSecret     string
	ConfirmSecret string
}

// Result is the outcome of a submission. TempSecret holds the committed
// plaintext exactly once; RejectReason explains a rejection.
type Result struct {
	State        State
	TempSecret   string
	RejectReason string
}

// Flow is an interactive credential-change sequence for a single
// profile: select profile, enter and confirm the new secret, validate,
// commit. It is a restricted entry point into the profile service's
// credential handling, not a separate implementation; hashing and
// account propagation happen in ProfileService.ChangeCredential.
type Flow struct {
	profileService *profile.ProfileService
	state          State
}

// NewFlow creates a flow in the AwaitingInput state.
func NewFlow(profileService *profile.ProfileService) *Flow {
	return &Flow{
		profileService: profileService,
		state:          StateAwaitingInput,
	}
}

// State returns the flow's current state.
func (f *Flow) State() State {
	return f.state
}

// Submit runs one submission through the flow. A rejected submission
// returns the flow to AwaitingInput so the caller can retry; a committed
// one is terminal.
func (f *Flow) Submit(ctx context.Context, req Request) (Result, error) {
	if f.state == StateCommitted {
		return Result{State: f.state}, errors.New("flow already committed")
	}

	f.state = StateValidating

	secret, err := f.profileService.ChangeCredential(ctx, req.ProfileID, req.NewSecret, req.ConfirmSecret)
	if err != nil {
		f.state = StateAwaitingInput
		var ve *profile.ValidationError
		if errors.As(err, &ve) {
			return Result{State: StateRejected, RejectReason: ve.Reason}, nil
		}
		return Result{State: StateAwaitingInput}, err
	}

	f.state = StateCommitted
	return Result{State: StateCommitted, TempSecret: secret}, nil
}
