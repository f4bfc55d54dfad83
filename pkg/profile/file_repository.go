package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tendant/simple-profile/pkg/idbridge"
)

// storedProfile is the on-disk form of a Profile. The credential hash is
// excluded from the Profile's own JSON so it has an explicit field here.
type storedProfile struct {
	Profile
	CredentialHash string `json:"credential_hash,omitempty"`
}

// fileProfileData represents all profile data stored in the file
type fileProfileData struct {
	Profiles map[uuid.UUID]storedProfile `json:"profiles"` // keyed by profile ID
}

// FileProfileRepository implements ProfileRepository using file-based
// storage.
type FileProfileRepository struct {
	dataDir string
	data    *fileProfileData
	mutex   sync.RWMutex
}

// NewFileProfileRepository creates a new file-based profile repository.
func NewFileProfileRepository(dataDir string) (*FileProfileRepository, error) {
	// Create data directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	repo := &FileProfileRepository{
		dataDir: dataDir,
		data: &fileProfileData{
			Profiles: make(map[uuid.UUID]storedProfile),
		},
	}

	// Load existing data
	if err := repo.load(); err != nil {
		return nil, fmt.Errorf("failed to load data: %w", err)
	}

	return repo, nil
}

func (r *FileProfileRepository) dataFile() string {
	return filepath.Join(r.dataDir, "profiles.json")
}

func (r *FileProfileRepository) load() error {
	data, err := os.ReadFile(r.dataFile())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	return json.Unmarshal(data, r.data)
}

func (r *FileProfileRepository) save() error {
	data, err := json.MarshalIndent(r.data, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(r.dataFile(), data, 0644)
}

// CreateProfile creates a new profile.
func (r *FileProfileRepository) CreateProfile(ctx context.Context, rec CreateProfileRecord) (Profile, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

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

	r.data.Profiles[p.ID] = toStored(p)

	if err := r.save(); err != nil {
		// Rollback
		delete(r.data.Profiles, p.ID)
		return Profile{}, fmt.Errorf("failed to save: %w", err)
	}

	return p, nil
}

// GetProfile retrieves a profile by id.
func (r *FileProfileRepository) GetProfile(ctx context.Context, id uuid.UUID) (Profile, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	sp, exists := r.data.Profiles[id]
	if !exists {
		return Profile{}, ErrProfileNotFound
	}
	return fromStored(sp), nil
}

// FindProfiles lists all profiles.
func (r *FileProfileRepository) FindProfiles(ctx context.Context) ([]Profile, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make([]Profile, 0, len(r.data.Profiles))
	for _, sp := range r.data.Profiles {
		result = append(result, fromStored(sp))
	}
	return result, nil
}

// UpdateProfile persists changed fields.
func (r *FileProfileRepository) UpdateProfile(ctx context.Context, rec UpdateProfileRecord) (Profile, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	sp, exists := r.data.Profiles[rec.ID]
	if !exists {
		return Profile{}, ErrProfileNotFound
	}

	prev := sp
	p := fromStored(sp)
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

	r.data.Profiles[rec.ID] = toStored(p)

	if err := r.save(); err != nil {
		// Rollback
		r.data.Profiles[rec.ID] = prev
		return Profile{}, fmt.Errorf("failed to save: %w", err)
	}

	return p, nil
}

// DeleteProfile removes a profile.
func (r *FileProfileRepository) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	sp, exists := r.data.Profiles[id]
	if !exists {
		return ErrProfileNotFound
	}

	delete(r.data.Profiles, id)

	if err := r.save(); err != nil {
		// Rollback
		r.data.Profiles[id] = sp
		return fmt.Errorf("failed to save: %w", err)
	}

	return nil
}

// EmailExists reports whether another profile already uses the email.
func (r *FileProfileRepository) EmailExists(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for id, sp := range r.data.Profiles {
		if id == excludeID {
			continue
		}
		if strings.EqualFold(sp.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

// SetAccountRef records the linked identity account reference.
func (r *FileProfileRepository) SetAccountRef(ctx context.Context, id uuid.UUID, ref idbridge.AccountRef) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	sp, exists := r.data.Profiles[id]
	if !exists {
		return ErrProfileNotFound
	}

	prev := sp
	sp.AccountRef = ref
	sp.LastModifiedAt = time.Now().UTC()
	r.data.Profiles[id] = sp

	if err := r.save(); err != nil {
		r.data.Profiles[id] = prev
		return fmt.Errorf("failed to save: %w", err)
	}

	return nil
}

// UpdateCredentialHash replaces the stored credential hash.
func (r *FileProfileRepository) UpdateCredentialHash(ctx context.Context, id uuid.UUID, hash string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	sp, exists := r.data.Profiles[id]
	if !exists {
		return ErrProfileNotFound
	}

	prev := sp
	sp.CredentialHash = hash
	sp.LastModifiedAt = time.Now().UTC()
	r.data.Profiles[id] = sp

	if err := r.save(); err != nil {
		r.data.Profiles[id] = prev
		return fmt.Errorf("failed to save: %w", err)
	}

	return nil
}

func toStored(p Profile) storedProfile {
	return storedProfile{Profile: p, CredentialHash: p.CredentialHash}
}

func fromStored(sp storedProfile) Profile {
	p := sp.Profile
	p.CredentialHash = sp.CredentialHash
	return p
}
