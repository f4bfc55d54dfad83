package profile

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-profile/pkg/idbridge"
)

func setupFileRepo(t *testing.T) *FileProfileRepository {
	t.Helper()

	repo, err := NewFileProfileRepository(t.TempDir())
	require.NoError(t, err)
	return repo
}

func TestFileRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := setupFileRepo(t)

	created, err := repo.CreateProfile(ctx, CreateProfileRecord{
		Name:           "Jane Doe",
		Email:          "jane@example.com",
		Phone:          "+1 555-123-4567",
		Address:        "1 Main Street",
		Active:         true,
		CredentialHash: "salt:hash",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.False(t, created.RegisteredAt.IsZero())

	got, err := repo.GetProfile(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", got.Name)
	assert.Equal(t, "salt:hash", got.CredentialHash)
}

func TestFileRepository_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dataDir := t.TempDir()

	repo, err := NewFileProfileRepository(dataDir)
	require.NoError(t, err)

	created, err := repo.CreateProfile(ctx, CreateProfileRecord{
		Name:           "Jane Doe",
		Email:          "jane@example.com",
		Phone:          "+1 555-123-4567",
		Active:         true,
		CredentialHash: "salt:hash",
	})
	require.NoError(t, err)

	require.NoError(t, repo.SetAccountRef(ctx, created.ID, idbridge.AccountRef("acct-1")))

	// A fresh repository over the same directory sees everything,
	// including the credential hash the JSON model normally hides.
	reopened, err := NewFileProfileRepository(dataDir)
	require.NoError(t, err)

	got, err := reopened.GetProfile(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", got.Email)
	assert.Equal(t, idbridge.AccountRef("acct-1"), got.AccountRef)
	assert.Equal(t, "salt:hash", got.CredentialHash)
}

func TestFileRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := setupFileRepo(t)

	created, err := repo.CreateProfile(ctx, CreateProfileRecord{
		Name:   "Jane Doe",
		Email:  "jane@example.com",
		Phone:  "+1 555-123-4567",
		Active: true,
		Photo:  []byte{1, 2, 3},
	})
	require.NoError(t, err)

	inactive := false
	updated, err := repo.UpdateProfile(ctx, UpdateProfileRecord{
		ID:      created.ID,
		Name:    "Jane Smith",
		Email:   "jane.smith@example.com",
		Phone:   "+1 555-999-8888",
		Address: "2 Side Street",
		Active:  &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Smith", updated.Name)
	assert.False(t, updated.Active)
	// Photo untouched when neither Photo nor RemovePhoto is set
	assert.Equal(t, []byte{1, 2, 3}, updated.Photo)

	removed, err := repo.UpdateProfile(ctx, UpdateProfileRecord{
		ID:          created.ID,
		Name:        "Jane Smith",
		Email:       "jane.smith@example.com",
		Phone:       "+1 555-999-8888",
		RemovePhoto: true,
	})
	require.NoError(t, err)
	assert.Nil(t, removed.Photo)
}

func TestFileRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := setupFileRepo(t)

	created, err := repo.CreateProfile(ctx, CreateProfileRecord{
		Name:   "Jane Doe",
		Email:  "jane@example.com",
		Phone:  "+1 555-123-4567",
		Active: true,
	})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteProfile(ctx, created.ID))

	_, err = repo.GetProfile(ctx, created.ID)
	assert.ErrorIs(t, err, ErrProfileNotFound)

	err = repo.DeleteProfile(ctx, created.ID)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestFileRepository_EmailExists(t *testing.T) {
	ctx := context.Background()
	repo := setupFileRepo(t)

	created, err := repo.CreateProfile(ctx, CreateProfileRecord{
		Name:   "Jane Doe",
		Email:  "jane@example.com",
		Phone:  "+1 555-123-4567",
		Active: true,
	})
	require.NoError(t, err)

	exists, err := repo.EmailExists(ctx, "JANE@example.com", uuid.Nil)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.EmailExists(ctx, "jane@example.com", created.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.EmailExists(ctx, "other@example.com", uuid.Nil)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFileRepository_UpdateCredentialHash(t *testing.T) {
	ctx := context.Background()
	repo := setupFileRepo(t)

	created, err := repo.CreateProfile(ctx, CreateProfileRecord{
		Name:           "Jane Doe",
		Email:          "jane@example.com",
		Phone:          "+1 555-123-4567",
		Active:         true,
		CredentialHash: "old:hash",
	})
	require.NoError(t, err)

	require.NoError(t, repo.UpdateCredentialHash(ctx, created.ID, "new:hash"))

	got, err := repo.GetProfile(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "new:hash", got.CredentialHash)
}
