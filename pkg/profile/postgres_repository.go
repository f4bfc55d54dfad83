package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tendant/simple-profile/pkg/idbridge"
)

// PostgresProfileRepository implements ProfileRepository using PostgreSQL.
// A unique index on lower(email) backs the service-level uniqueness gate
// at commit time.
type PostgresProfileRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresProfileRepository creates a new PostgreSQL profile repository.
func NewPostgresProfileRepository(pool *pgxpool.Pool) *PostgresProfileRepository {
	return &PostgresProfileRepository{
		pool: pool,
	}
}

const profileColumns = `
	id, name, email, phone, address, active, photo,
	registered_at, last_modified_at, account_ref, credential_hash
`

func scanProfile(row pgx.Row) (Profile, error) {
	var p Profile
	var address, accountRef, credentialHash sql.NullString

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Email,
		&p.Phone,
		&address,
		&p.Active,
		&p.Photo,
		&p.RegisteredAt,
		&p.LastModifiedAt,
		&accountRef,
		&credentialHash,
	)
	if err != nil {
		return Profile{}, err
	}

	p.Address = address.String
	p.AccountRef = idbridge.AccountRef(accountRef.String)
	p.CredentialHash = credentialHash.String
	return p, nil
}

// CreateProfile creates a new profile.
func (r *PostgresProfileRepository) CreateProfile(ctx context.Context, rec CreateProfileRecord) (Profile, error) {
	query := `
		INSERT INTO profiles (
			name, email, phone, address, active, photo, credential_hash
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING` + profileColumns

	p, err := scanProfile(r.pool.QueryRow(ctx, query,
		rec.Name,
		rec.Email,
		rec.Phone,
		toNullString(rec.Address),
		rec.Active,
		rec.Photo,
		toNullString(rec.CredentialHash),
	))
	if err != nil {
		return Profile{}, fmt.Errorf("failed to create profile: %w", err)
	}

	return p, nil
}

// GetProfile retrieves a profile by id.
func (r *PostgresProfileRepository) GetProfile(ctx context.Context, id uuid.UUID) (Profile, error) {
	query := `SELECT` + profileColumns + `FROM profiles WHERE id = $1`

	p, err := scanProfile(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Profile{}, ErrProfileNotFound
		}
		return Profile{}, fmt.Errorf("failed to get profile: %w", err)
	}

	return p, nil
}

// FindProfiles lists all profiles, most recently registered first.
func (r *PostgresProfileRepository) FindProfiles(ctx context.Context) ([]Profile, error) {
	query := `SELECT` + profileColumns + `FROM profiles ORDER BY registered_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to find profiles: %w", err)
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}

	return profiles, rows.Err()
}

// UpdateProfile persists changed fields.
func (r *PostgresProfileRepository) UpdateProfile(ctx context.Context, rec UpdateProfileRecord) (Profile, error) {
	query := `
		UPDATE profiles SET
			name = $2,
			email = $3,
			phone = $4,
			address = $5,
			active = COALESCE($6, active),
			photo = CASE WHEN $7::bytea IS NOT NULL THEN $7 WHEN $8 THEN NULL ELSE photo END,
			last_modified_at = NOW()
		WHERE id = $1
		RETURNING` + profileColumns

	var active sql.NullBool
	if rec.Active != nil {
		active = sql.NullBool{Bool: *rec.Active, Valid: true}
	}

	p, err := scanProfile(r.pool.QueryRow(ctx, query,
		rec.ID,
		rec.Name,
		rec.Email,
		rec.Phone,
		toNullString(rec.Address),
		active,
		rec.Photo,
		rec.RemovePhoto,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Profile{}, ErrProfileNotFound
		}
		return Profile{}, fmt.Errorf("failed to update profile: %w", err)
	}

	return p, nil
}

// DeleteProfile removes a profile.
func (r *PostgresProfileRepository) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// EmailExists reports whether another profile already uses the email.
func (r *PostgresProfileRepository) EmailExists(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM profiles
			WHERE lower(email) = lower($1) AND id <> $2
		)
	`

	var exists bool
	err := r.pool.QueryRow(ctx, query, email, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

// SetAccountRef records the linked identity account reference.
func (r *PostgresProfileRepository) SetAccountRef(ctx context.Context, id uuid.UUID, ref idbridge.AccountRef) error {
	query := `
		UPDATE profiles SET account_ref = $2, last_modified_at = NOW()
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id, toNullString(string(ref)))
	if err != nil {
		return fmt.Errorf("failed to set account ref: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// UpdateCredentialHash replaces the stored credential hash.
func (r *PostgresProfileRepository) UpdateCredentialHash(ctx context.Context, id uuid.UUID, hash string) error {
	query := `
		UPDATE profiles SET credential_hash = $2, last_modified_at = NOW()
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id, hash)
	if err != nil {
		return fmt.Errorf("failed to update credential hash: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func toNullString(str string) sql.NullString {
	return sql.NullString{String: str, Valid: str != ""}
}
