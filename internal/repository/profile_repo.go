package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/content-engagement-api/internal/database"
	"github.com/content-engagement-api/internal/models"
)

// profileRepo is the concrete implementation of ProfileRepository
type profileRepo struct {
	db *database.DB
}

// NewProfileRepo creates a new profile repository
func NewProfileRepo(db *database.DB) ProfileRepository {
	return &profileRepo{db: db}
}

const profileColumns = `id, username, email, small_avatar, info_markdown, info, created_at, updated_at`

// Create inserts a new profile and fills in its assigned id
func (r *profileRepo) Create(ctx context.Context, profile *models.Profile) error {
	now := time.Now().UTC()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	query := `
		INSERT INTO profiles (username, email, small_avatar, info_markdown, info, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, query,
		profile.Username, profile.Email, profile.SmallAvatar,
		profile.InfoMarkdown, profile.Info, profile.CreatedAt, profile.UpdatedAt,
	).Scan(&profile.ID)
}

// Update rewrites an existing profile, derived info included
func (r *profileRepo) Update(ctx context.Context, profile *models.Profile) error {
	profile.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE profiles
		SET username = $2, email = $3, small_avatar = $4, info_markdown = $5, info = $6, updated_at = $7
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		profile.ID, profile.Username, profile.Email, profile.SmallAvatar,
		profile.InfoMarkdown, profile.Info, profile.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID retrieves a profile by ID
func (r *profileRepo) GetByID(ctx context.Context, id int64) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	return scanProfile(r.db.QueryRowContext(ctx, query, id))
}

// GetByUsername retrieves a profile by username
func (r *profileRepo) GetByUsername(ctx context.Context, username string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE username = $1`
	return scanProfile(r.db.QueryRowContext(ctx, query, username))
}

func scanProfile(row rowScanner) (*models.Profile, error) {
	var profile models.Profile
	err := row.Scan(
		&profile.ID, &profile.Username, &profile.Email, &profile.SmallAvatar,
		&profile.InfoMarkdown, &profile.Info, &profile.CreatedAt, &profile.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
