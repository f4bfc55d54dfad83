package api

import (
	"time"

	"github.com/tendant/simple-profile/pkg/profile"
)

// CreateProfileRequest is the request body for creating a profile.
// Photo is base64-encoded in transport.
type CreateProfileRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address,omitempty"`
	Active  *bool  `json:"active,omitempty"`
	Photo   []byte `json:"photo,omitempty"`
}

// UpdateProfileRequest is the request body for updating a profile
type UpdateProfileRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address,omitempty"`
	Active      *bool  `json:"active,omitempty"`
	Photo       []byte `json:"photo,omitempty"`
	RemovePhoto bool   `json:"remove_photo,omitempty"`
}

// ChangeCredentialRequest is the request body for setting a
// caller-chosen credential
type ChangeCredentialRequest struct {
	NewSecret     string `json:"new_secret"`
	ConfirmSecret string `json:"confirm_secret"`
}

// ProfileModel is the API representation of a profile. The credential
// hash is never exposed.
type ProfileModel struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Address        string    `json:"address,omitempty"`
	Active         bool      `json:"active"`
	Photo          []byte    `json:"photo,omitempty"`
	RegisteredAt   time.Time `json:"registered_at"`
	LastModifiedAt time.Time `json:"last_modified_at"`
	AccountRef     string    `json:"account_ref,omitempty"`
}

// ProfileListResponse is the response body for listing profiles
type ProfileListResponse struct {
	Profiles []ProfileModel `json:"profiles"`
	Total    int64          `json:"total"`
}

// CreateProfileResponse carries the created profile and the one-time
// plaintext secret. The secret exists only in this response.
type CreateProfileResponse struct {
	Profile    ProfileModel `json:"profile"`
	TempSecret string       `json:"temp_secret"`
}

// SecretResponse carries a one-time plaintext secret
type SecretResponse struct {
	TempSecret string `json:"temp_secret"`
}

// ValidationErrorResponse reports a field validation failure
type ValidationErrorResponse struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func toProfileModel(p profile.Profile) ProfileModel {
	return ProfileModel{
		ID:             p.ID.String(),
		Name:           p.Name,
		Email:          p.Email,
		Phone:          p.Phone,
		Address:        p.Address,
		Active:         p.Active,
		Photo:          p.Photo,
		RegisteredAt:   p.RegisteredAt,
		LastModifiedAt: p.LastModifiedAt,
		AccountRef:     string(p.AccountRef),
	}
}
