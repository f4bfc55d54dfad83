// Package idbridge abstracts the external identity/account system that
// profile records are mirrored onto.
//
// The profile directory owns profile records; the identity system owns
// accounts. IdentityBridge is the only seam between the two: the profile
// service calls it to find, provision, update and delete the account
// linked to a profile, and to push new credentials onto it.
//
// # Implementations
//
//   - RESTIdentityBridge: JSON/HTTP client for an external identity
//     service, authorized by an explicit service token passed to the
//     constructor.
//   - InMemIdentityBridge: in-memory account store for tests and demos,
//     with per-operation fault injection.
//   - NoopIdentityBridge: run the directory without mirroring at all.
//
// # Usage
//
//	bridge := idbridge.NewRESTIdentityBridge(
//		"https://identity.internal",
//		os.Getenv("IDENTITY_SERVICE_TOKEN"),
//	)
//
//	ref, found, err := bridge.FindByLogin(ctx, "user@example.com")
//	if err != nil {
//		// identity service unreachable; caller decides whether this
//		// is fatal
//	}
//	if !found {
//		ref, err = bridge.CreateAccount(ctx, snapshot, secret)
//	}
//
// Bridge errors are plain errors: the bridge never retries and never
// decides policy. The profile service logs failures and keeps the
// profile mutation; see pkg/profile.
package idbridge
