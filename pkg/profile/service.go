package profile

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tendant/simple-profile/pkg/idbridge"
	"github.com/tendant/simple-profile/pkg/notify"
	"github.com/tendant/simple-profile/pkg/secrets"
)

// minChangeSecretLength is the minimum length for a caller-chosen secret
// in the credential-change flow. Generated temporary secrets are always
// 12 characters and bypass this check.
const minChangeSecretLength = 8

// ProfileService keeps profile records and their mirrored identity
// accounts consistent across create, update, delete and credential
// operations.
//
// Policy: a hashing failure aborts the whole operation before anything
// is persisted; a bridge (external identity store) failure is logged and
// the profile mutation stands. Bridge calls are never retried.
type ProfileService struct {
	repo     ProfileRepository
	bridge   idbridge.IdentityBridge
	hasher   secrets.SecretHasher
	notifier notify.Notifier
}

// ProfileServiceOption configures a ProfileService.
type ProfileServiceOption func(*ProfileService)

// WithNotifier sets a notifier used to surface freshly generated
// temporary secrets, at most once per credential-generating operation.
func WithNotifier(notifier notify.Notifier) ProfileServiceOption {
	return func(s *ProfileService) {
		s.notifier = notifier
	}
}

// WithHasher overrides the default secret hasher.
func WithHasher(hasher secrets.SecretHasher) ProfileServiceOption {
	return func(s *ProfileService) {
		s.hasher = hasher
	}
}

// NewProfileService creates a new ProfileService.
func NewProfileService(repo ProfileRepository, bridge idbridge.IdentityBridge, opts ...ProfileServiceOption) *ProfileService {
	s := &ProfileService{
		repo:   repo,
		bridge: bridge,
		hasher: secrets.NewBcryptHasher(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// CreateProfile validates and persists a new profile, provisions or
// links its identity account, and returns the one-time temporary secret.
func (s *ProfileService) CreateProfile(ctx context.Context, params CreateProfileParams) (CreateProfileResult, error) {
	if err := ValidateFields(params.Name, params.Email, params.Phone, params.Address); err != nil {
		return CreateProfileResult{}, err
	}

	exists, err := s.repo.EmailExists(ctx, params.Email, uuid.Nil)
	if err != nil {
		return CreateProfileResult{}, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if exists {
		return CreateProfileResult{}, ErrEmailExists{Email: params.Email}
	}

	secret, err := secrets.GenerateTemporarySecret()
	if err != nil {
		return CreateProfileResult{}, fmt.Errorf("failed to generate temporary secret: %w", err)
	}

	// Hash before the first write so a profile is never persisted
	// without a usable credential hash.
	hash, err := s.hasher.Hash(secret)
	if err != nil {
		slog.Error("Failed to hash temporary secret", "err", err)
		return CreateProfileResult{}, fmt.Errorf("failed to hash temporary secret: %w", err)
	}

	active := true
	if params.Active != nil {
		active = *params.Active
	}

	p, err := s.repo.CreateProfile(ctx, CreateProfileRecord{
		Name:           params.Name,
		Email:          params.Email,
		Phone:          params.Phone,
		Address:        params.Address,
		Active:         active,
		Photo:          params.Photo,
		CredentialHash: hash,
	})
	if err != nil {
		return CreateProfileResult{}, fmt.Errorf("failed to create profile: %w", err)
	}

	// Link or provision the identity account. An existing account with a
	// matching login always wins over creating a new one; the submitted
	// fields overwrite its mutable fields.
	ref := s.provisionAccount(ctx, p, secret)
	if ref != "" {
		if err := s.repo.SetAccountRef(ctx, p.ID, ref); err != nil {
			slog.Error("Failed to persist account ref", "profileId", p.ID, "err", err)
		} else {
			p.AccountRef = ref
		}
	}

	s.sendSecretNotice(p, secret, "Temporary Credential Generated")

	return CreateProfileResult{Profile: p, TempSecret: secret}, nil
}

// provisionAccount finds or creates the identity account for a freshly
// created profile. Returns the account ref, or "" when the bridge failed
// or produced no account; the profile creation stands either way.
func (s *ProfileService) provisionAccount(ctx context.Context, p Profile, secret string) idbridge.AccountRef {
	ref, found, err := s.bridge.FindByLogin(ctx, p.Email)
	if err != nil {
		slog.Error("Failed to look up identity account", "profileId", p.ID, "err", err)
		return ""
	}

	if found {
		if err := s.bridge.UpdateAccount(ctx, ref, p.Snapshot()); err != nil {
			slog.Error("Failed to sync existing identity account", "profileId", p.ID, "accountRef", ref, "err", err)
		}
		return ref
	}

	ref, err = s.bridge.CreateAccount(ctx, p.Snapshot(), secret)
	if err != nil {
		slog.Error("Failed to create identity account", "profileId", p.ID, "err", err)
		return ""
	}
	return ref
}

// GetProfile retrieves a profile by id.
func (s *ProfileService) GetProfile(ctx context.Context, id uuid.UUID) (Profile, error) {
	return s.repo.GetProfile(ctx, id)
}

// FindProfiles lists all profiles.
func (s *ProfileService) FindProfiles(ctx context.Context) ([]Profile, error) {
	return s.repo.FindProfiles(ctx)
}

// UpdateProfile validates and persists changed fields, then pushes them
// onto the linked identity account if one exists.
func (s *ProfileService) UpdateProfile(ctx context.Context, id uuid.UUID, params UpdateProfileParams) (Profile, error) {
	if err := ValidateFields(params.Name, params.Email, params.Phone, params.Address); err != nil {
		return Profile{}, err
	}

	exists, err := s.repo.EmailExists(ctx, params.Email, id)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if exists {
		return Profile{}, ErrEmailExists{Email: params.Email}
	}

	p, err := s.repo.UpdateProfile(ctx, UpdateProfileRecord{
		ID:          id,
		Name:        params.Name,
		Email:       params.Email,
		Phone:       params.Phone,
		Address:     params.Address,
		Active:      params.Active,
		Photo:       params.Photo,
		RemovePhoto: params.RemovePhoto,
	})
	if err != nil {
		return Profile{}, err
	}

	if p.AccountRef != "" {
		if err := s.bridge.UpdateAccount(ctx, p.AccountRef, p.Snapshot()); err != nil {
			slog.Error("Failed to sync identity account", "profileId", p.ID, "accountRef", p.AccountRef, "err", err)
		}
	}

	return p, nil
}

// DeleteProfile removes a profile, deleting its linked identity account
// first. An account deletion failure is logged as a warning and does not
// block the profile deletion.
func (s *ProfileService) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.GetProfile(ctx, id)
	if err != nil {
		return err
	}

	if p.AccountRef != "" {
		if err := s.bridge.DeleteAccount(ctx, p.AccountRef); err != nil {
			slog.Warn("Failed to delete identity account, deleting profile anyway",
				"profileId", p.ID, "accountRef", p.AccountRef, "err", err)
		}
	}

	return s.repo.DeleteProfile(ctx, id)
}

// ResetCredential generates a fresh temporary secret, pushes it to the
// linked identity account if one exists, persists the new hash and
// returns the plaintext once.
func (s *ProfileService) ResetCredential(ctx context.Context, id uuid.UUID) (string, error) {
	p, err := s.repo.GetProfile(ctx, id)
	if err != nil {
		return "", err
	}

	secret, err := secrets.GenerateTemporarySecret()
	if err != nil {
		return "", fmt.Errorf("failed to generate temporary secret: %w", err)
	}

	if err := s.commitSecret(ctx, p, secret); err != nil {
		return "", err
	}

	s.sendSecretNotice(p, secret, "Credential Reset")

	return secret, nil
}

// ChangeCredential sets a caller-chosen secret. Restricted entry point
// used by the credential-change workflow: the new secret must match its
// confirmation and be at least 8 characters; a rejection leaves all
// state unchanged.
func (s *ProfileService) ChangeCredential(ctx context.Context, id uuid.UUID, newSecret, confirmSecret string) (string, error) {
	if newSecret != confirmSecret {
		return "", &ValidationError{Field: "confirm_secret", Reason: "secrets do not match"}
	}
	if len(newSecret) < minChangeSecretLength {
		return "", &ValidationError{Field: "new_secret", Reason: "must be at least 8 characters"}
	}

	p, err := s.repo.GetProfile(ctx, id)
	if err != nil {
		return "", err
	}

	if err := s.commitSecret(ctx, p, newSecret); err != nil {
		return "", err
	}

	s.sendSecretNotice(p, newSecret, "Credential Changed")

	return newSecret, nil
}

// commitSecret hashes the secret, pushes it to the linked account if one
// exists and persists the hash. The hash failure is fatal; the bridge
// failure is logged.
func (s *ProfileService) commitSecret(ctx context.Context, p Profile, secret string) error {
	hash, err := s.hasher.Hash(secret)
	if err != nil {
		slog.Error("Failed to hash secret", "profileId", p.ID, "err", err)
		return fmt.Errorf("failed to hash secret: %w", err)
	}

	if p.AccountRef != "" {
		if err := s.bridge.SetAccountSecret(ctx, p.AccountRef, secret); err != nil {
			slog.Error("Failed to push secret to identity account", "profileId", p.ID, "accountRef", p.AccountRef, "err", err)
		}
	}

	if err := s.repo.UpdateCredentialHash(ctx, p.ID, hash); err != nil {
		return fmt.Errorf("failed to persist credential hash: %w", err)
	}

	return nil
}

// VerifyCredential checks a secret against the profile's stored hash.
func (s *ProfileService) VerifyCredential(ctx context.Context, id uuid.UUID, secret string) (bool, error) {
	p, err := s.repo.GetProfile(ctx, id)
	if err != nil {
		return false, err
	}
	if p.CredentialHash == "" {
		return false, nil
	}
	return s.hasher.Verify(secret, p.CredentialHash)
}

// sendSecretNotice surfaces the plaintext secret through the notifier,
// at most once per operation. Delivery failure is logged, never retried.
func (s *ProfileService) sendSecretNotice(p Profile, secret, subject string) {
	if s.notifier == nil {
		return
	}

	err := s.notifier.Send(notify.TempSecretNotice, notify.Notice{
		To:      p.Email,
		Subject: subject,
		Body:    fmt.Sprintf("Temporary credential for %s: %s", p.Name, secret),
	})
	if err != nil {
		slog.Error("Failed to send secret notice", "profileId", p.ID, "err", err)
	}
}
