package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/karan-monga/repsandrulers/internal/models"
	"github.com/karan-monga/repsandrulers/internal/repository"
)

type goalStore interface {
	Set(ctx context.Context, userID int64, input repository.SetGoalInput) (*models.WeightGoal, error)
	GetByUserID(ctx context.Context, userID int64) (*models.WeightGoal, error)
	UpdateTarget(ctx context.Context, userID int64, targetValue float64, targetDate *time.Time) error
	Delete(ctx context.Context, userID int64) (bool, error)
	AddMilestone(ctx context.Context, goalID int64, m models.Milestone) error
	DeleteMilestone(ctx context.Context, goalID int64, milestoneID string) (bool, error)
	MarkMilestoneReached(ctx context.Context, milestoneID string, at time.Time) error
}

type latestWeightReader interface {
	Latest(ctx context.Context, userID int64) (*models.Measurement, error)
}

type GoalService struct {
	goals        goalStore
	measurements latestWeightReader
}

func NewGoalService(goals goalStore, measurements latestWeightReader) *GoalService {
	return &GoalService{goals: goals, measurements: measurements}
}

type SetGoalInput struct {
	TargetValue  float64
	CurrentValue float64
	StartDate    time.Time
	TargetDate   *time.Time
}

func (s *GoalService) SetGoal(ctx context.Context, userID int64, input SetGoalInput) (*models.WeightGoal, error) {
	if input.TargetValue <= 0 || input.CurrentValue <= 0 {
		return nil, ErrInvalidInput
	}
	goal, err := s.goals.Set(ctx, userID, repository.SetGoalInput{
		TargetValue:  input.TargetValue,
		CurrentValue: input.CurrentValue,
		StartDate:    input.StartDate,
		TargetDate:   input.TargetDate,
	})
	if err != nil {
		return nil, err
	}
	if err := s.EvaluateMilestones(ctx, userID); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *GoalService) GetGoal(ctx context.Context, userID int64) (*models.WeightGoal, error) {
	goal, err := s.goals.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoGoal
		}
		return nil, err
	}
	return goal, nil
}

func (s *GoalService) UpdateTarget(ctx context.Context, userID int64, targetValue float64, targetDate *time.Time) (*models.WeightGoal, error) {
	if targetValue <= 0 {
		return nil, ErrInvalidInput
	}
	if err := s.goals.UpdateTarget(ctx, userID, targetValue, targetDate); err != nil {
		return nil, err
	}
	// A new target can flip the goal direction, so re-check before returning.
	if err := s.EvaluateMilestones(ctx, userID); err != nil {
		return nil, err
	}
	return s.GetGoal(ctx, userID)
}

func (s *GoalService) DeleteGoal(ctx context.Context, userID int64) error {
	deleted, err := s.goals.Delete(ctx, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNoGoal
	}
	return nil
}

func (s *GoalService) AddMilestone(ctx context.Context, userID int64, value float64, targetDate *time.Time) (*models.WeightGoal, error) {
	if value <= 0 {
		return nil, ErrInvalidInput
	}
	goal, err := s.GetGoal(ctx, userID)
	if err != nil {
		return nil, err
	}
	milestone := models.Milestone{
		ID:         uuid.NewString(),
		Value:      value,
		TargetDate: targetDate,
	}
	if err := s.goals.AddMilestone(ctx, goal.ID, milestone); err != nil {
		return nil, err
	}
	if err := s.EvaluateMilestones(ctx, userID); err != nil {
		return nil, err
	}
	return s.GetGoal(ctx, userID)
}

func (s *GoalService) DeleteMilestone(ctx context.Context, userID int64, milestoneID string) error {
	goal, err := s.GetGoal(ctx, userID)
	if err != nil {
		return err
	}
	deleted, err := s.goals.DeleteMilestone(ctx, goal.ID, milestoneID)
	if err != nil {
		return err
	}
	if !deleted {
		return pgx.ErrNoRows
	}
	return nil
}

// EvaluateMilestones re-checks unreached milestones against the user's latest
// weight and marks the ones that have been crossed. Reached milestones stay
// reached even if the weight later moves back across the line. Called after
// each new measurement; a user without a goal or without measurements is a
// no-op.
func (s *GoalService) EvaluateMilestones(ctx context.Context, userID int64) error {
	goal, err := s.GetGoal(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNoGoal) {
			return nil
		}
		return err
	}

	latest, err := s.measurements.Latest(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}
	if latest == nil || latest.Weight == nil {
		return nil
	}

	now := time.Now()
	for _, id := range newlyReached(goal.Milestones, goal.TargetValue, *latest.Weight) {
		if err := s.goals.MarkMilestoneReached(ctx, id, now); err != nil {
			return err
		}
	}
	return nil
}

// newlyReached returns the ids of unreached milestones crossed at the given
// weight. Direction follows the goal: a loss goal reaches a milestone when
// weight drops to or below its value, a gain goal when weight rises to or
// above it.
func newlyReached(milestones []models.Milestone, targetValue, currentWeight float64) []string {
	isLoss := targetValue < currentWeight
	var reached []string
	for _, m := range milestones {
		if m.Reached {
			continue
		}
		if isLoss && currentWeight <= m.Value {
			reached = append(reached, m.ID)
		} else if !isLoss && currentWeight >= m.Value {
			reached = append(reached, m.ID)
		}
	}
	return reached
}
