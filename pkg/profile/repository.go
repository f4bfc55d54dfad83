package profile

import (
	"context"

	"github.com/google/uuid"

	"github.com/tendant/simple-profile/pkg/idbridge"
)

// CreateProfileRecord contains everything persisted for a new profile.
// The credential hash is produced before the record is written so a
// profile is never stored without one.
type CreateProfileRecord struct {
	Name           string
	Email          string
	Phone          string
	Address        string
	Active         bool
	Photo          []byte
	CredentialHash string
}

// UpdateProfileRecord contains the mutable fields of a profile update.
// RegisteredAt, AccountRef and CredentialHash are never touched by a
// field update.
type UpdateProfileRecord struct {
	ID          uuid.UUID
	Name        string
	Email       string
	Phone       string
	Address     string
	Active      *bool // nil leaves the flag unchanged
	Photo       []byte
	RemovePhoto bool
}

// ProfileRepository defines the interface for profile persistence.
type ProfileRepository interface {
	// CreateProfile persists a new profile and returns it with its
	// assigned id and registration timestamp.
	CreateProfile(ctx context.Context, rec CreateProfileRecord) (Profile, error)

	// GetProfile retrieves a profile by id.
	GetProfile(ctx context.Context, id uuid.UUID) (Profile, error)

	// FindProfiles lists all profiles.
	FindProfiles(ctx context.Context) ([]Profile, error)

	// UpdateProfile persists changed fields and returns the updated profile.
	UpdateProfile(ctx context.Context, rec UpdateProfileRecord) (Profile, error)

	// DeleteProfile removes a profile. Hard delete, not reversible.
	DeleteProfile(ctx context.Context, id uuid.UUID) error

	// EmailExists reports whether another profile already uses the email,
	// case-insensitively. excludeID is skipped so updates don't collide
	// with the record being updated; pass uuid.Nil on create.
	EmailExists(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)

	// SetAccountRef records the linked identity account reference.
	SetAccountRef(ctx context.Context, id uuid.UUID, ref idbridge.AccountRef) error

	// UpdateCredentialHash replaces the stored credential hash.
	UpdateCredentialHash(ctx context.Context, id uuid.UUID, hash string) error
}
