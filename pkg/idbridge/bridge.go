package idbridge

import (
	"context"
)

// AccountRef is an opaque, stable identifier for an account in the
// external identity system. The empty string means "no account".
type AccountRef string

// AccountSnapshot carries the profile fields mirrored onto an external
// identity account.
type AccountSnapshot struct {
	Name   string `json:"name"`
	Login  string `json:"login"`
	Phone  string `json:"phone,omitempty"`
	Active bool   `json:"active"`
	Photo  []byte `json:"photo,omitempty"`
}

// IdentityBridge abstracts the external identity/account store. All
// implementations must be safe for concurrent use. Errors are returned,
// never retried here; the caller decides whether a failure is fatal.
type IdentityBridge interface {
	// FindByLogin looks up an account by its login. The second return
	// value is false when no account with that login exists.
	FindByLogin(ctx context.Context, login string) (AccountRef, bool, error)

	// CreateAccount provisions a new account from the snapshot with the
	// given secret as its initial credential. The secret must be usable
	// as-is; the external system assigns its default role/group.
	CreateAccount(ctx context.Context, snapshot AccountSnapshot, secret string) (AccountRef, error)

	// UpdateAccount pushes the snapshot's fields onto an existing account.
	UpdateAccount(ctx context.Context, ref AccountRef, snapshot AccountSnapshot) error

	// SetAccountSecret replaces the account's credential.
	SetAccountSecret(ctx context.Context, ref AccountRef, secret string) error

	// DeleteAccount removes the account from the external system.
	DeleteAccount(ctx context.Context, ref AccountRef) error
}
