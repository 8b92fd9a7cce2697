package repository

import (
	"context"

	"github.com/karan-monga/repsandrulers/internal/models"
)

type ExerciseRepository struct {
	db DBTX
}

func NewExerciseRepository(db DBTX) *ExerciseRepository {
	return &ExerciseRepository{db: db}
}

type ExerciseFilter struct {
	SplitType     string
	PrimaryMuscle string
	Search        string
}

const exerciseColumns = `id, name, primary_muscle, split_type, default_sets, default_reps,
	rest_interval, link_url, image_url, notes, source, created_at, updated_at`

func scanExercise(row interface{ Scan(dest ...any) error }) (*models.Exercise, error) {
	var e models.Exercise
	err := row.Scan(
		&e.ID,
		&e.Name,
		&e.PrimaryMuscle,
		&e.SplitType,
		&e.DefaultSets,
		&e.DefaultReps,
		&e.RestInterval,
		&e.LinkURL,
		&e.ImageURL,
		&e.Notes,
		&e.Source,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// List returns catalog exercises matching the filter. Empty filter fields
// match everything; search is a case-insensitive substring match on name.
func (r *ExerciseRepository) List(ctx context.Context, filter ExerciseFilter) ([]models.Exercise, error) {
	query := `
		SELECT ` + exerciseColumns + `
		FROM exercises
		WHERE ($1 = '' OR split_type = $1)
			AND ($2 = '' OR primary_muscle = $2)
			AND ($3 = '' OR name ILIKE '%' || $3 || '%')
		ORDER BY name
	`
	rows, err := r.db.Query(ctx, query, filter.SplitType, filter.PrimaryMuscle, filter.Search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises := []models.Exercise{}
	for rows.Next() {
		e, err := scanExercise(rows)
		if err != nil {
			return nil, err
		}
		exercises = append(exercises, *e)
	}
	return exercises, rows.Err()
}

func (r *ExerciseRepository) GetByID(ctx context.Context, id int64) (*models.Exercise, error) {
	query := `
		SELECT ` + exerciseColumns + `
		FROM exercises
		WHERE id = $1
	`
	return scanExercise(r.db.QueryRow(ctx, query, id))
}

// MuscleGroups returns the distinct primary muscles in the catalog, sorted.
func (r *ExerciseRepository) MuscleGroups(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT primary_muscle FROM exercises ORDER BY primary_muscle`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := []string{}
	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}
