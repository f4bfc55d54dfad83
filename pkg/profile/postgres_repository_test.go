package profile

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/tendant/simple-profile/pkg/idbridge"
)

func setupTestDatabase(t *testing.T) (*pgxpool.Pool, func()) {
	ctx := context.Background()

	dbName := "profile_db"
	dbUser := "profile"
	dbPassword := "pwd"

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithInitScripts(filepath.Join("../../migrations", "profile_db.sql")),
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	require.NoError(t, err)

	connString, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	poolConfig, err := pgxpool.ParseConfig(connString)
	require.NoError(t, err)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	require.NoError(t, err)

	cleanup := func() {
		pool.Close()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return pool, cleanup
}

func TestPostgresProfileRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()
	pool, cleanup := setupTestDatabase(t)
	defer cleanup()

	repo := NewPostgresProfileRepository(pool)

	created, err := repo.CreateProfile(ctx, CreateProfileRecord{
		Name:           "Jane Doe",
		Email:          "jane@example.com",
		Phone:          "+1 555-123-4567",
		Address:        "1 Main Street",
		Active:         true,
		Photo:          []byte{0x89, 0x50, 0x4e, 0x47},
		CredentialHash: "salt:hash",
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	t.Run("Get", func(t *testing.T) {
		got, err := repo.GetProfile(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", got.Name)
		assert.Equal(t, "jane@example.com", got.Email)
		assert.Equal(t, "1 Main Street", got.Address)
		assert.True(t, got.Active)
		assert.Equal(t, []byte{0x89, 0x50, 0x4e, 0x47}, got.Photo)
		assert.Equal(t, "salt:hash", got.CredentialHash)
		assert.False(t, got.RegisteredAt.IsZero())
	})

	t.Run("GetNotFound", func(t *testing.T) {
		_, err := repo.GetProfile(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrProfileNotFound)
	})

	t.Run("EmailExists", func(t *testing.T) {
		exists, err := repo.EmailExists(ctx, "JANE@EXAMPLE.COM", uuid.Nil)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.EmailExists(ctx, "jane@example.com", created.ID)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("Update", func(t *testing.T) {
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
		assert.Equal(t, []byte{0x89, 0x50, 0x4e, 0x47}, updated.Photo)
		assert.True(t, updated.LastModifiedAt.After(created.LastModifiedAt) ||
			updated.LastModifiedAt.Equal(created.LastModifiedAt))
	})

	t.Run("RemovePhoto", func(t *testing.T) {
		updated, err := repo.UpdateProfile(ctx, UpdateProfileRecord{
			ID:          created.ID,
			Name:        "Jane Smith",
			Email:       "jane.smith@example.com",
			Phone:       "+1 555-999-8888",
			RemovePhoto: true,
		})
		require.NoError(t, err)
		assert.Nil(t, updated.Photo)
	})

	t.Run("SetAccountRef", func(t *testing.T) {
		err := repo.SetAccountRef(ctx, created.ID, idbridge.AccountRef("acct-1"))
		require.NoError(t, err)

		got, err := repo.GetProfile(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, idbridge.AccountRef("acct-1"), got.AccountRef)
	})

	t.Run("UpdateCredentialHash", func(t *testing.T) {
		err := repo.UpdateCredentialHash(ctx, created.ID, "new:hash")
		require.NoError(t, err)

		got, err := repo.GetProfile(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "new:hash", got.CredentialHash)
	})

	t.Run("EmailUniqueIndex", func(t *testing.T) {
		_, err := repo.CreateProfile(ctx, CreateProfileRecord{
			Name:   "Other Person",
			Email:  "Jane.Smith@example.com",
			Phone:  "+1 555-000-1111",
			Active: true,
		})
		assert.Error(t, err)
	})

	t.Run("Find", func(t *testing.T) {
		second, err := repo.CreateProfile(ctx, CreateProfileRecord{
			Name:   "Second Person",
			Email:  "second@example.com",
			Phone:  "+1 555-222-3333",
			Active: true,
		})
		require.NoError(t, err)

		profiles, err := repo.FindProfiles(ctx)
		require.NoError(t, err)
		require.Len(t, profiles, 2)
		// Most recently registered first
		assert.Equal(t, second.ID, profiles[0].ID)
	})

	t.Run("Delete", func(t *testing.T) {
		err := repo.DeleteProfile(ctx, created.ID)
		require.NoError(t, err)

		_, err = repo.GetProfile(ctx, created.ID)
		assert.ErrorIs(t, err, ErrProfileNotFound)

		err = repo.DeleteProfile(ctx, created.ID)
		assert.ErrorIs(t, err, ErrProfileNotFound)
	})
}
