package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/karan-monga/repsandrulers/internal/models"
)

type RenphoRepository struct {
	db DBTX
}

func NewRenphoRepository(db DBTX) *RenphoRepository {
	return &RenphoRepository{db: db}
}

type RenphoInput struct {
	TimeOfMeasurement      time.Time
	WeightLb               float64
	BMI                    *float64
	BodyFatPercent         *float64
	FatFreeBodyWeightLb    *float64
	SubcutaneousFatPercent *float64
	VisceralFat            *float64
	BodyWaterPercent       *float64
	SkeletalMusclePercent  *float64
	MuscleMassLb           *float64
	BoneMassLb             *float64
	ProteinPercent         *float64
	BMRKcal                *int
	MetabolicAge           *int
}

const renphoColumns = `id, user_id, time_of_measurement, weight_lb, bmi, body_fat_percent,
	fat_free_body_weight_lb, subcutaneous_fat_percent, visceral_fat, body_water_percent,
	skeletal_muscle_percent, muscle_mass_lb, bone_mass_lb, protein_percent, bmr_kcal,
	metabolic_age, created_at, updated_at`

const renphoInsert = `
	INSERT INTO renpho_measurements (user_id, time_of_measurement, weight_lb, bmi,
		body_fat_percent, fat_free_body_weight_lb, subcutaneous_fat_percent, visceral_fat,
		body_water_percent, skeletal_muscle_percent, muscle_mass_lb, bone_mass_lb,
		protein_percent, bmr_kcal, metabolic_age)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
`

const renphoBatchSize = 50

// InsertBatch writes measurements in batches to keep large vendor exports to a
// few round trips.
func (r *RenphoRepository) InsertBatch(ctx context.Context, userID int64, inputs []RenphoInput) (int, error) {
	inserted := 0
	for start := 0; start < len(inputs); start += renphoBatchSize {
		end := start + renphoBatchSize
		if end > len(inputs) {
			end = len(inputs)
		}

		batch := &pgx.Batch{}
		for _, in := range inputs[start:end] {
			batch.Queue(renphoInsert,
				userID, in.TimeOfMeasurement, in.WeightLb, in.BMI,
				in.BodyFatPercent, in.FatFreeBodyWeightLb, in.SubcutaneousFatPercent, in.VisceralFat,
				in.BodyWaterPercent, in.SkeletalMusclePercent, in.MuscleMassLb, in.BoneMassLb,
				in.ProteinPercent, in.BMRKcal, in.MetabolicAge,
			)
		}

		results := r.db.SendBatch(ctx, batch)
		for range inputs[start:end] {
			if _, err := results.Exec(); err != nil {
				results.Close()
				return inserted, err
			}
			inserted++
		}
		if err := results.Close(); err != nil {
			return inserted, err
		}
	}
	return inserted, nil
}

func scanRenpho(row interface{ Scan(dest ...any) error }) (*models.RenphoMeasurement, error) {
	var m models.RenphoMeasurement
	err := row.Scan(
		&m.ID,
		&m.UserID,
		&m.TimeOfMeasurement,
		&m.WeightLb,
		&m.BMI,
		&m.BodyFatPercent,
		&m.FatFreeBodyWeightLb,
		&m.SubcutaneousFatPercent,
		&m.VisceralFat,
		&m.BodyWaterPercent,
		&m.SkeletalMusclePercent,
		&m.MuscleMassLb,
		&m.BoneMassLb,
		&m.ProteinPercent,
		&m.BMRKcal,
		&m.MetabolicAge,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// List returns measurements newest first, optionally limited to a time range.
func (r *RenphoRepository) List(ctx context.Context, userID int64, from, to *time.Time) ([]models.RenphoMeasurement, error) {
	query := `
		SELECT ` + renphoColumns + `
		FROM renpho_measurements
		WHERE user_id = $1
			AND ($2::timestamptz IS NULL OR time_of_measurement >= $2)
			AND ($3::timestamptz IS NULL OR time_of_measurement <= $3)
		ORDER BY time_of_measurement DESC, id DESC
	`
	return r.list(ctx, query, userID, from, to)
}

// ListAsc returns measurements oldest first, the order trend computation
// expects.
func (r *RenphoRepository) ListAsc(ctx context.Context, userID int64, from, to *time.Time) ([]models.RenphoMeasurement, error) {
	query := `
		SELECT ` + renphoColumns + `
		FROM renpho_measurements
		WHERE user_id = $1
			AND ($2::timestamptz IS NULL OR time_of_measurement >= $2)
			AND ($3::timestamptz IS NULL OR time_of_measurement <= $3)
		ORDER BY time_of_measurement ASC, id ASC
	`
	return r.list(ctx, query, userID, from, to)
}

func (r *RenphoRepository) list(ctx context.Context, query string, userID int64, from, to *time.Time) ([]models.RenphoMeasurement, error) {
	rows, err := r.db.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	measurements := []models.RenphoMeasurement{}
	for rows.Next() {
		m, err := scanRenpho(rows)
		if err != nil {
			return nil, err
		}
		measurements = append(measurements, *m)
	}
	return measurements, rows.Err()
}

func (r *RenphoRepository) Latest(ctx context.Context, userID int64) (*models.RenphoMeasurement, error) {
	query := `
		SELECT ` + renphoColumns + `
		FROM renpho_measurements
		WHERE user_id = $1
		ORDER BY time_of_measurement DESC, id DESC
		LIMIT 1
	`
	return scanRenpho(r.db.QueryRow(ctx, query, userID))
}

func (r *RenphoRepository) Delete(ctx context.Context, userID, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM renpho_measurements WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Clear drops every measurement the user has imported.
func (r *RenphoRepository) Clear(ctx context.Context, userID int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM renpho_measurements WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
