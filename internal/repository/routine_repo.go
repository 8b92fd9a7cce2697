package repository

import (
	"context"

	"github.com/karan-monga/repsandrulers/internal/models"
)

type RoutineRepository struct {
	db DBTX
}

func NewRoutineRepository(db DBTX) *RoutineRepository {
	return &RoutineRepository{db: db}
}

func (r *RoutineRepository) Create(ctx context.Context, userID int64, name string) (*models.Routine, error) {
	query := `
		INSERT INTO routines (user_id, name)
		VALUES ($1, $2)
		RETURNING id, user_id, name, created_at, updated_at
	`
	var routine models.Routine
	err := r.db.QueryRow(ctx, query, userID, name).Scan(
		&routine.ID,
		&routine.UserID,
		&routine.Name,
		&routine.CreatedAt,
		&routine.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &routine, nil
}

func (r *RoutineRepository) ListByUser(ctx context.Context, userID int64) ([]models.Routine, error) {
	query := `
		SELECT id, user_id, name, created_at, updated_at
		FROM routines
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routines := []models.Routine{}
	for rows.Next() {
		var routine models.Routine
		if err := rows.Scan(&routine.ID, &routine.UserID, &routine.Name, &routine.CreatedAt, &routine.UpdatedAt); err != nil {
			return nil, err
		}
		routines = append(routines, routine)
	}
	return routines, rows.Err()
}

func (r *RoutineRepository) GetByID(ctx context.Context, userID, id int64) (*models.Routine, error) {
	query := `
		SELECT id, user_id, name, created_at, updated_at
		FROM routines
		WHERE id = $1 AND user_id = $2
	`
	var routine models.Routine
	err := r.db.QueryRow(ctx, query, id, userID).Scan(
		&routine.ID,
		&routine.UserID,
		&routine.Name,
		&routine.CreatedAt,
		&routine.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &routine, nil
}

func (r *RoutineRepository) Rename(ctx context.Context, userID, id int64, name string) (bool, error) {
	query := `
		UPDATE routines
		SET name = $1, updated_at = NOW()
		WHERE id = $2 AND user_id = $3
	`
	tag, err := r.db.Exec(ctx, query, name, id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Delete removes a routine; days and their exercises cascade.
func (r *RoutineRepository) Delete(ctx context.Context, userID, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM routines WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *RoutineRepository) AddDay(ctx context.Context, routineID int64, weekday, splitType string, displayOrder int) (*models.RoutineDay, error) {
	query := `
		INSERT INTO routine_days (routine_id, weekday, split_type, display_order)
		VALUES ($1, $2, $3, $4)
		RETURNING id, routine_id, weekday, split_type, display_order, created_at, updated_at
	`
	var day models.RoutineDay
	err := r.db.QueryRow(ctx, query, routineID, weekday, splitType, displayOrder).Scan(
		&day.ID,
		&day.RoutineID,
		&day.Weekday,
		&day.SplitType,
		&day.DisplayOrder,
		&day.CreatedAt,
		&day.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &day, nil
}

// GetDay resolves a day through its routine so ownership is checked in one
// round trip.
func (r *RoutineRepository) GetDay(ctx context.Context, userID, dayID int64) (*models.RoutineDay, error) {
	query := `
		SELECT d.id, d.routine_id, d.weekday, d.split_type, d.display_order, d.created_at, d.updated_at
		FROM routine_days d
		JOIN routines r ON r.id = d.routine_id
		WHERE d.id = $1 AND r.user_id = $2
	`
	var day models.RoutineDay
	err := r.db.QueryRow(ctx, query, dayID, userID).Scan(
		&day.ID,
		&day.RoutineID,
		&day.Weekday,
		&day.SplitType,
		&day.DisplayOrder,
		&day.CreatedAt,
		&day.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &day, nil
}

func (r *RoutineRepository) DeleteDay(ctx context.Context, userID, dayID int64) (bool, error) {
	query := `
		DELETE FROM routine_days d
		USING routines r
		WHERE d.id = $1 AND r.id = d.routine_id AND r.user_id = $2
	`
	tag, err := r.db.Exec(ctx, query, dayID, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// AddExercise appends an exercise to a day. Position is assigned at the end
// of the day's current list.
func (r *RoutineRepository) AddExercise(ctx context.Context, dayID, exerciseID int64, setCount int, repRange, restInterval string) (*models.RoutineExercise, error) {
	query := `
		INSERT INTO routine_exercises (routine_day_id, exercise_id, set_count, rep_range, rest_interval, position)
		VALUES ($1, $2, $3, $4, $5,
			(SELECT COALESCE(MAX(position), 0) + 1 FROM routine_exercises WHERE routine_day_id = $1))
		RETURNING id, routine_day_id, exercise_id, set_count, rep_range, rest_interval, position, created_at, updated_at
	`
	var re models.RoutineExercise
	err := r.db.QueryRow(ctx, query, dayID, exerciseID, setCount, repRange, restInterval).Scan(
		&re.ID,
		&re.RoutineDayID,
		&re.ExerciseID,
		&re.SetCount,
		&re.RepRange,
		&re.RestInterval,
		&re.Position,
		&re.CreatedAt,
		&re.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &re, nil
}

type UpdateRoutineExerciseInput struct {
	SetCount     *int
	RepRange     *string
	RestInterval *string
}

func (r *RoutineRepository) UpdateExercise(ctx context.Context, userID, routineExerciseID int64, input UpdateRoutineExerciseInput) (bool, error) {
	query := `
		UPDATE routine_exercises re
		SET set_count = COALESCE($1, re.set_count),
			rep_range = COALESCE($2, re.rep_range),
			rest_interval = COALESCE($3, re.rest_interval),
			updated_at = NOW()
		FROM routine_days d
		JOIN routines r ON r.id = d.routine_id
		WHERE re.id = $4 AND d.id = re.routine_day_id AND r.user_id = $5
	`
	tag, err := r.db.Exec(ctx, query, input.SetCount, input.RepRange, input.RestInterval, routineExerciseID, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *RoutineRepository) RemoveExercise(ctx context.Context, userID, routineExerciseID int64) (bool, error) {
	query := `
		DELETE FROM routine_exercises re
		USING routine_days d, routines r
		WHERE re.id = $1 AND d.id = re.routine_day_id AND r.id = d.routine_id AND r.user_id = $2
	`
	tag, err := r.db.Exec(ctx, query, routineExerciseID, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Reorder rewrites positions for a day from the given ordered ids.
func (r *RoutineRepository) Reorder(ctx context.Context, dayID int64, orderedIDs []int64) error {
	query := `
		UPDATE routine_exercises
		SET position = $1, updated_at = NOW()
		WHERE id = $2 AND routine_day_id = $3
	`
	for i, id := range orderedIDs {
		if _, err := r.db.Exec(ctx, query, i+1, id, dayID); err != nil {
			return err
		}
	}
	return nil
}

// GetDetail loads a routine with its days and exercises fully nested.
func (r *RoutineRepository) GetDetail(ctx context.Context, userID, id int64) (*models.RoutineDetail, error) {
	routine, err := r.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	dayQuery := `
		SELECT id, routine_id, weekday, split_type, display_order, created_at, updated_at
		FROM routine_days
		WHERE routine_id = $1
		ORDER BY display_order, id
	`
	rows, err := r.db.Query(ctx, dayQuery, routine.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	detail := &models.RoutineDetail{Routine: *routine, Days: []models.RoutineDayDetail{}}
	for rows.Next() {
		var day models.RoutineDay
		if err := rows.Scan(&day.ID, &day.RoutineID, &day.Weekday, &day.SplitType, &day.DisplayOrder, &day.CreatedAt, &day.UpdatedAt); err != nil {
			return nil, err
		}
		detail.Days = append(detail.Days, models.RoutineDayDetail{RoutineDay: day, Exercises: []models.RoutineExerciseDetail{}})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	exerciseQuery := `
		SELECT re.id, re.routine_day_id, re.exercise_id, re.set_count, re.rep_range, re.rest_interval,
			re.position, re.created_at, re.updated_at,
			e.id, e.name, e.primary_muscle, e.split_type, e.default_sets, e.default_reps,
			e.rest_interval, e.link_url, e.image_url, e.notes, e.source, e.created_at, e.updated_at
		FROM routine_exercises re
		JOIN routine_days d ON d.id = re.routine_day_id
		JOIN exercises e ON e.id = re.exercise_id
		WHERE d.routine_id = $1
		ORDER BY re.routine_day_id, re.position
	`
	exRows, err := r.db.Query(ctx, exerciseQuery, routine.ID)
	if err != nil {
		return nil, err
	}
	defer exRows.Close()

	byDay := make(map[int64]int, len(detail.Days))
	for i, day := range detail.Days {
		byDay[day.ID] = i
	}
	for exRows.Next() {
		var red models.RoutineExerciseDetail
		err := exRows.Scan(
			&red.ID, &red.RoutineDayID, &red.ExerciseID, &red.SetCount, &red.RepRange, &red.RestInterval,
			&red.Position, &red.CreatedAt, &red.UpdatedAt,
			&red.Exercise.ID, &red.Exercise.Name, &red.Exercise.PrimaryMuscle, &red.Exercise.SplitType,
			&red.Exercise.DefaultSets, &red.Exercise.DefaultReps, &red.Exercise.RestInterval,
			&red.Exercise.LinkURL, &red.Exercise.ImageURL, &red.Exercise.Notes, &red.Exercise.Source,
			&red.Exercise.CreatedAt, &red.Exercise.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		if i, ok := byDay[red.RoutineDayID]; ok {
			detail.Days[i].Exercises = append(detail.Days[i].Exercises, red)
		}
	}
	return detail, exRows.Err()
}
