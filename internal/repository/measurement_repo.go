package repository

import (
	"context"
	"time"

	"github.com/karan-monga/repsandrulers/internal/models"
)

type MeasurementRepository struct {
	db DBTX
}

func NewMeasurementRepository(db DBTX) *MeasurementRepository {
	return &MeasurementRepository{db: db}
}

type MeasurementInput struct {
	Date       time.Time
	Weight     *float64
	Height     *float64
	Chest      *float64
	Waist      *float64
	Hips       *float64
	Biceps     *float64
	Forearms   *float64
	Thighs     *float64
	Calves     *float64
	LeftThigh  *float64
	RightThigh *float64
	LeftCalf   *float64
	RightCalf  *float64
	Notes      *string
}

const measurementColumns = `id, user_id, date, weight, height, chest, waist, hips,
	biceps, forearms, thighs, calves, left_thigh, right_thigh, left_calf, right_calf,
	notes, created_at`

func scanMeasurement(row interface{ Scan(dest ...any) error }) (*models.Measurement, error) {
	var m models.Measurement
	err := row.Scan(
		&m.ID,
		&m.UserID,
		&m.Date,
		&m.Weight,
		&m.Height,
		&m.Chest,
		&m.Waist,
		&m.Hips,
		&m.Biceps,
		&m.Forearms,
		&m.Thighs,
		&m.Calves,
		&m.LeftThigh,
		&m.RightThigh,
		&m.LeftCalf,
		&m.RightCalf,
		&m.Notes,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MeasurementRepository) Create(ctx context.Context, userID int64, input MeasurementInput) (*models.Measurement, error) {
	query := `
		INSERT INTO measurements (user_id, date, weight, height, chest, waist, hips,
			biceps, forearms, thighs, calves, left_thigh, right_thigh, left_calf, right_calf, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING ` + measurementColumns + `
	`
	return scanMeasurement(r.db.QueryRow(ctx, query,
		userID, input.Date, input.Weight, input.Height, input.Chest, input.Waist, input.Hips,
		input.Biceps, input.Forearms, input.Thighs, input.Calves,
		input.LeftThigh, input.RightThigh, input.LeftCalf, input.RightCalf, input.Notes,
	))
}

func (r *MeasurementRepository) GetByID(ctx context.Context, userID, id int64) (*models.Measurement, error) {
	query := `
		SELECT ` + measurementColumns + `
		FROM measurements
		WHERE id = $1 AND user_id = $2
	`
	return scanMeasurement(r.db.QueryRow(ctx, query, id, userID))
}

// ListByUser returns measurements newest first, optionally limited to a date
// range.
func (r *MeasurementRepository) ListByUser(ctx context.Context, userID int64, from, to *time.Time) ([]models.Measurement, error) {
	query := `
		SELECT ` + measurementColumns + `
		FROM measurements
		WHERE user_id = $1
			AND ($2::date IS NULL OR date >= $2)
			AND ($3::date IS NULL OR date <= $3)
		ORDER BY date DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	measurements := []models.Measurement{}
	for rows.Next() {
		m, err := scanMeasurement(rows)
		if err != nil {
			return nil, err
		}
		measurements = append(measurements, *m)
	}
	return measurements, rows.Err()
}

// Latest returns the most recent measurement for the user.
func (r *MeasurementRepository) Latest(ctx context.Context, userID int64) (*models.Measurement, error) {
	query := `
		SELECT ` + measurementColumns + `
		FROM measurements
		WHERE user_id = $1
		ORDER BY date DESC, id DESC
		LIMIT 1
	`
	return scanMeasurement(r.db.QueryRow(ctx, query, userID))
}

// ExistsForDate is the duplicate guard consulted before each import write.
func (r *MeasurementRepository) ExistsForDate(ctx context.Context, userID int64, date time.Time) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM measurements WHERE user_id = $1 AND date = $2)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, userID, date).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *MeasurementRepository) Update(ctx context.Context, userID, id int64, input MeasurementInput) (*models.Measurement, error) {
	query := `
		UPDATE measurements
		SET date = $1, weight = $2, height = $3, chest = $4, waist = $5, hips = $6,
			biceps = $7, forearms = $8, thighs = $9, calves = $10,
			left_thigh = $11, right_thigh = $12, left_calf = $13, right_calf = $14, notes = $15
		WHERE id = $16 AND user_id = $17
		RETURNING ` + measurementColumns + `
	`
	return scanMeasurement(r.db.QueryRow(ctx, query,
		input.Date, input.Weight, input.Height, input.Chest, input.Waist, input.Hips,
		input.Biceps, input.Forearms, input.Thighs, input.Calves,
		input.LeftThigh, input.RightThigh, input.LeftCalf, input.RightCalf, input.Notes,
		id, userID,
	))
}

func (r *MeasurementRepository) Delete(ctx context.Context, userID, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM measurements WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
