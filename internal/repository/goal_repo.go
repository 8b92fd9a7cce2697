package repository

import (
	"context"
	"time"

	"github.com/karan-monga/repsandrulers/internal/models"
)

type GoalRepository struct {
	db DBTX
}

func NewGoalRepository(db DBTX) *GoalRepository {
	return &GoalRepository{db: db}
}

type SetGoalInput struct {
	TargetValue  float64
	CurrentValue float64
	StartDate    time.Time
	TargetDate   *time.Time
}

// Set creates or replaces the user's single weight goal. Replacing discards
// existing milestones.
func (r *GoalRepository) Set(ctx context.Context, userID int64, input SetGoalInput) (*models.WeightGoal, error) {
	query := `
		INSERT INTO weight_goals (user_id, target_value, current_value, start_date, target_date)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE
		SET target_value = EXCLUDED.target_value,
			current_value = EXCLUDED.current_value,
			start_date = EXCLUDED.start_date,
			target_date = EXCLUDED.target_date,
			updated_at = NOW()
		RETURNING id, user_id, target_value, current_value, start_date, target_date, created_at, updated_at
	`
	var goal models.WeightGoal
	err := r.db.QueryRow(ctx, query, userID, input.TargetValue, input.CurrentValue, input.StartDate, input.TargetDate).Scan(
		&goal.ID,
		&goal.UserID,
		&goal.TargetValue,
		&goal.CurrentValue,
		&goal.StartDate,
		&goal.TargetDate,
		&goal.CreatedAt,
		&goal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if _, err := r.db.Exec(ctx, `DELETE FROM milestones WHERE goal_id = $1`, goal.ID); err != nil {
		return nil, err
	}
	goal.Milestones = []models.Milestone{}
	return &goal, nil
}

func (r *GoalRepository) GetByUserID(ctx context.Context, userID int64) (*models.WeightGoal, error) {
	query := `
		SELECT id, user_id, target_value, current_value, start_date, target_date, created_at, updated_at
		FROM weight_goals
		WHERE user_id = $1
	`
	var goal models.WeightGoal
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&goal.ID,
		&goal.UserID,
		&goal.TargetValue,
		&goal.CurrentValue,
		&goal.StartDate,
		&goal.TargetDate,
		&goal.CreatedAt,
		&goal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	milestones, err := r.listMilestones(ctx, goal.ID)
	if err != nil {
		return nil, err
	}
	goal.Milestones = milestones
	return &goal, nil
}

func (r *GoalRepository) listMilestones(ctx context.Context, goalID int64) ([]models.Milestone, error) {
	query := `
		SELECT id, goal_id, value, target_date, reached, reached_at
		FROM milestones
		WHERE goal_id = $1
		ORDER BY value
	`
	rows, err := r.db.Query(ctx, query, goalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	milestones := []models.Milestone{}
	for rows.Next() {
		var m models.Milestone
		if err := rows.Scan(&m.ID, &m.GoalID, &m.Value, &m.TargetDate, &m.Reached, &m.ReachedAt); err != nil {
			return nil, err
		}
		milestones = append(milestones, m)
	}
	return milestones, rows.Err()
}

func (r *GoalRepository) UpdateTarget(ctx context.Context, userID int64, targetValue float64, targetDate *time.Time) error {
	query := `
		UPDATE weight_goals
		SET target_value = $1, target_date = $2, updated_at = NOW()
		WHERE user_id = $3
	`
	_, err := r.db.Exec(ctx, query, targetValue, targetDate, userID)
	return err
}

// Delete removes the goal; milestones go with it via ON DELETE CASCADE.
func (r *GoalRepository) Delete(ctx context.Context, userID int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM weight_goals WHERE user_id = $1`, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *GoalRepository) AddMilestone(ctx context.Context, goalID int64, m models.Milestone) error {
	query := `
		INSERT INTO milestones (id, goal_id, value, target_date, reached, reached_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query, m.ID, goalID, m.Value, m.TargetDate, m.Reached, m.ReachedAt)
	return err
}

func (r *GoalRepository) DeleteMilestone(ctx context.Context, goalID int64, milestoneID string) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM milestones WHERE id = $1 AND goal_id = $2`, milestoneID, goalID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// MarkMilestoneReached records the crossing. It never un-marks.
func (r *GoalRepository) MarkMilestoneReached(ctx context.Context, milestoneID string, at time.Time) error {
	query := `
		UPDATE milestones
		SET reached = TRUE, reached_at = $1
		WHERE id = $2 AND reached = FALSE
	`
	_, err := r.db.Exec(ctx, query, at, milestoneID)
	return err
}
