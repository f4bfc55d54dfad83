package profile

import (
	"time"

	"github.com/google/uuid"

	"github.com/tendant/simple-profile/pkg/idbridge"
)

// Profile represents a managed profile record in the directory.
type Profile struct {
	ID             uuid.UUID           `json:"id"`
	Name           string              `json:"name"`
	Email          string              `json:"email"`
	Phone          string              `json:"phone"`
	Address        string              `json:"address,omitempty"`
	Active         bool                `json:"active"`
	Photo          []byte              `json:"photo,omitempty"`
	RegisteredAt   time.Time           `json:"registered_at"`
	LastModifiedAt time.Time           `json:"last_modified_at"`
	AccountRef     idbridge.AccountRef `json:"account_ref,omitempty"`

	// CredentialHash is the irreversible form of the profile's current
	// credential. Never serialized to API responses.
	CredentialHash string `json:"-"`
}

// Snapshot returns the account fields mirrored onto the linked identity
// account.
func (p Profile) Snapshot() idbridge.AccountSnapshot {
	return idbridge.AccountSnapshot{
		Name:   p.Name,
		Login:  p.Email,
		Phone:  p.Phone,
		Active: p.Active,
		Photo:  p.Photo,
	}
}

// CreateProfileParams contains the field values for a new profile.
type CreateProfileParams struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address,omitempty"`
	Active  *bool  `json:"active,omitempty"` // nil defaults to true
	Photo   []byte `json:"photo,omitempty"`
}

// UpdateProfileParams contains the field values for updating a profile.
type UpdateProfileParams struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address,omitempty"`
	Active  *bool  `json:"active,omitempty"` // nil leaves the flag unchanged

	// Photo replaces the stored photo when non-nil. RemovePhoto clears
	// it; Photo wins if both are set.
	Photo       []byte `json:"photo,omitempty"`
	RemovePhoto bool   `json:"remove_photo,omitempty"`
}

// CreateProfileResult is returned by ProfileService.CreateProfile. The
// temporary secret is the only place the plaintext ever exists; it is
// surfaced to the immediate caller once and never persisted.
type CreateProfileResult struct {
	Profile    Profile `json:"profile"`
	TempSecret string  `json:"temp_secret"`
}
