// Package profile manages a directory of profile records and keeps each
// record mirrored onto an external identity account.
//
// A Profile carries contact fields (name, email, phone, address, photo,
// active flag), a registration timestamp, a reference to at most one
// identity account owned by the external system, and the irreversible
// hash of its current credential. The plaintext of a credential exists
// only in the result of the operation that generated it.
//
// # Overview
//
// The package provides:
//   - Field validation and case-insensitive email uniqueness
//   - Profile lifecycle (create, read, update, delete)
//   - Lazy identity-account provisioning and same-operation field sync
//     through the idbridge seam
//   - Temporary credential generation, reset, and caller-chosen change
//   - Repository pattern with PostgreSQL, file and in-memory backends
//
// # Basic Usage
//
//	repo := profile.NewInMemProfileRepository()
//	bridge := idbridge.NewInMemIdentityBridge()
//	service := profile.NewProfileService(repo, bridge)
//
//	result, err := service.CreateProfile(ctx, profile.CreateProfileParams{
//		Name:  "Jane Doe",
//		Email: "jane@example.com",
//		Phone: "+1 555-123-4567",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	// result.TempSecret is visible here and nowhere else
//
// # Sync Policy
//
// Two stores are written per mutation: the profile repository (owned
// here) and the external identity store (owned elsewhere). Hashing
// failures abort the whole operation before the first write. Identity
// store failures are logged and the profile mutation stands; a create
// whose account provisioning failed leaves the profile unlinked. There
// are no retries; the next operation works with whatever state exists.
//
// # Error Handling
//
//	result, err := service.CreateProfile(ctx, params)
//	if err != nil {
//		var ve *profile.ValidationError
//		if errors.As(err, &ve) {
//			// field-level failure: ve.Field, ve.Reason
//		}
//		var ee profile.ErrEmailExists
//		if errors.As(err, &ee) {
//			// uniqueness conflict
//		}
//	}
package profile
