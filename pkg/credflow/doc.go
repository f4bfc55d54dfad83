// Package credflow implements the interactive credential-change
// sequence: select a profile, enter and confirm a new secret, validate,
// commit.
//
// The flow moves through AwaitingInput -> Validating -> Committed or
// Rejected. Mismatched or too-short secrets are rejected with no state
// change anywhere; valid submissions are committed through
// profile.ProfileService.ChangeCredential, which owns hashing and
// propagation to the linked identity account.
//
//	flow := credflow.NewFlow(profileService)
//	result, err := flow.Submit(ctx, credflow.Request{
//		ProfileID:     id,
//		NewSecret:     "correct-horse",
//		ConfirmSecret: "correct-horse",
//	})
//	if result.State == credflow.StateCommitted {
//		// result.TempSecret holds the plaintext, visible once
//	}
package credflow
