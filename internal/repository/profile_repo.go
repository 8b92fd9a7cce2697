package repository

import (
	"context"

	"github.com/karan-monga/repsandrulers/internal/models"
)

type ProfileRepository struct {
	db DBTX
}

func NewProfileRepository(db DBTX) *ProfileRepository {
	return &ProfileRepository{db: db}
}

type CreateProfileInput struct {
	UnitPreference string
	HeightCM       *float64
	WeightKG       *float64
}

func (r *ProfileRepository) Create(ctx context.Context, userID int64, input CreateProfileInput) (*models.UserProfile, error) {
	query := `
		INSERT INTO user_profiles (user_id, unit_preference, height_cm, weight_kg)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, unit_preference, height_cm, weight_kg, created_at, updated_at
	`
	var profile models.UserProfile
	err := r.db.QueryRow(ctx, query, userID, input.UnitPreference, input.HeightCM, input.WeightKG).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.UnitPreference,
		&profile.HeightCM,
		&profile.WeightKG,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.UserProfile, error) {
	query := `
		SELECT id, user_id, unit_preference, height_cm, weight_kg, created_at, updated_at
		FROM user_profiles
		WHERE user_id = $1
	`
	var profile models.UserProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.UnitPreference,
		&profile.HeightCM,
		&profile.WeightKG,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

type UpdateProfileInput struct {
	UnitPreference *string
	HeightCM       *float64
	WeightKG       *float64
}

func (r *ProfileRepository) UpdatePartial(ctx context.Context, userID int64, input UpdateProfileInput) (*models.UserProfile, error) {
	query := `
		UPDATE user_profiles
		SET unit_preference = COALESCE($1, unit_preference),
			height_cm = COALESCE($2, height_cm),
			weight_kg = COALESCE($3, weight_kg),
			updated_at = NOW()
		WHERE user_id = $4
		RETURNING id, user_id, unit_preference, height_cm, weight_kg, created_at, updated_at
	`
	var profile models.UserProfile
	err := r.db.QueryRow(ctx, query,
		input.UnitPreference,
		input.HeightCM,
		input.WeightKG,
		userID,
	).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.UnitPreference,
		&profile.HeightCM,
		&profile.WeightKG,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
