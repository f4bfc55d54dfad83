package profile

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tendant/simple-profile/pkg/idbridge"
)

// InMemProfileRepository implements ProfileRepository using in-memory
// storage.
type InMemProfileRepository struct {
	mu       sync.RWMutex
	profiles map[uuid.UUID]Profile
}

// NewInMemProfileRepository creates a new in-memory profile repository.
func NewInMemProfileRepository() *InMemProfileRepository {
	return &InMemProfileRepository{
		profiles: make(map[uuid.UUID]Profile),
	}
}

// CreateProfile creates a new profile.
func (r *InMemProfileRepository) CreateProfile(ctx context.Context, rec CreateProfileRecord) (Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	p := Profile{
		ID:             uuid.New(),
		Name:           rec.Name,
		Email:          rec.Email,
		Phone:          rec.Phone,
		Address:        rec.Address,
		Active:         rec.Active,
		Photo:          rec.Photo,
		RegisteredAt:   now,
		LastModifiedAt: now,
		CredentialHash: rec.CredentialHash,
	}

	r.profiles[p.ID] = p
	return p, nil
}

// GetProfile retrieves a profile by id.
func (r *InMemProfileRepository) GetProfile(ctx context.Context, id uuid.UUID) (Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[id]
	if !ok {
		return Profile{}, ErrProfileNotFound
	}
	return p, nil
}

// FindProfiles lists all profiles.
func (r *InMemProfileRepository) FindProfiles(ctx context.Context) ([]Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		result = append(result, p)
	}
	return result, nil
}

// UpdateProfile persists changed fields.
func (r *InMemProfileRepository) UpdateProfile(ctx context.Context, rec UpdateProfileRecord) (Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[rec.ID]
	if !ok {
		return Profile{}, ErrProfileNotFound
	}

	p.Name = rec.Name
	p.Email = rec.Email
	p.Phone = rec.Phone
	p.Address = rec.Address
	if rec.Active != nil {
		p.Active = *rec.Active
	}
	if rec.Photo != nil {
		p.Photo = rec.Photo
	} else if rec.RemovePhoto {
		p.Photo = nil
	}
	p.LastModifiedAt = time.Now().UTC()

	r.profiles[rec.ID] = p
	return p, nil
}

// DeleteProfile removes a profile.
func (r *InMemProfileRepository) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[id]; !ok {
		return ErrProfileNotFound
	}
	delete(r.profiles, id)
	return nil
}

// EmailExists reports whether another profile already uses the email.
func (r *InMemProfileRepository) EmailExists(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for id, p := range r.profiles {
		if id == excludeID {
			continue
		}
		if strings.EqualFold(p.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

// SetAccountRef records the linked identity account reference.
func (r *InMemProfileRepository) SetAccountRef(ctx context.Context, id uuid.UUID, ref idbridge.AccountRef) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[id]
	if !ok {
		return ErrProfileNotFound
	}
	p.AccountRef = ref
	p.LastModifiedAt = time.Now().UTC()
	r.profiles[id] = p
	return nil
}

// UpdateCredentialHash replaces the stored credential hash.
func (r *InMemProfileRepository) UpdateCredentialHash(ctx context.Context, id uuid.UUID, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[id]
	if !ok {
		return ErrProfileNotFound
	}
	p.CredentialHash = hash
	p.LastModifiedAt = time.Now().UTC()
	r.profiles[id] = p
	return nil
}
