package services

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/karan-monga/repsandrulers/internal/models"
	"github.com/karan-monga/repsandrulers/internal/repository"
)

type stubGoalStore struct {
	goal    *models.WeightGoal
	getErr  error
	reached []string
}

func (s *stubGoalStore) Set(_ context.Context, _ int64, _ repository.SetGoalInput) (*models.WeightGoal, error) {
	return s.goal, nil
}

func (s *stubGoalStore) GetByUserID(_ context.Context, _ int64) (*models.WeightGoal, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.goal, nil
}

func (s *stubGoalStore) UpdateTarget(_ context.Context, _ int64, _ float64, _ *time.Time) error {
	return nil
}

func (s *stubGoalStore) Delete(_ context.Context, _ int64) (bool, error) {
	return s.goal != nil, nil
}

func (s *stubGoalStore) AddMilestone(_ context.Context, _ int64, _ models.Milestone) error {
	return nil
}

func (s *stubGoalStore) DeleteMilestone(_ context.Context, _ int64, _ string) (bool, error) {
	return true, nil
}

func (s *stubGoalStore) MarkMilestoneReached(_ context.Context, milestoneID string, _ time.Time) error {
	s.reached = append(s.reached, milestoneID)
	return nil
}

type stubLatestReader struct {
	measurement *models.Measurement
	err         error
}

func (s *stubLatestReader) Latest(_ context.Context, _ int64) (*models.Measurement, error) {
	return s.measurement, s.err
}

func TestNewlyReachedLossGoal(t *testing.T) {
	milestones := []models.Milestone{
		{ID: "a", Value: 85},
		{ID: "b", Value: 82},
		{ID: "c", Value: 78},
	}

	// Loss goal: target 75, current 83. Crossing at or below marks reached.
	got := newlyReached(milestones, 75, 83)
	if len(got) != 1 || got[0] != "a" {
		t.Fatalf("newlyReached = %v", got)
	}
}

func TestNewlyReachedGainGoal(t *testing.T) {
	milestones := []models.Milestone{
		{ID: "a", Value: 72},
		{ID: "b", Value: 76},
	}

	got := newlyReached(milestones, 80, 74)
	if len(got) != 1 || got[0] != "a" {
		t.Fatalf("newlyReached = %v", got)
	}
}

func TestNewlyReachedSkipsAlreadyReached(t *testing.T) {
	milestones := []models.Milestone{
		{ID: "a", Value: 85, Reached: true},
		{ID: "b", Value: 82},
	}

	got := newlyReached(milestones, 75, 80)
	if len(got) != 1 || got[0] != "b" {
		t.Fatalf("reached milestones must stay reached, got %v", got)
	}
}

func TestEvaluateMilestonesMarksCrossings(t *testing.T) {
	weight := 80.0
	store := &stubGoalStore{goal: &models.WeightGoal{
		ID:          1,
		TargetValue: 75,
		Milestones: []models.Milestone{
			{ID: "m1", Value: 85},
			{ID: "m2", Value: 78},
		},
	}}
	service := NewGoalService(store, &stubLatestReader{measurement: &models.Measurement{Weight: &weight}})

	if err := service.EvaluateMilestones(context.Background(), 1); err != nil {
		t.Fatalf("EvaluateMilestones: %v", err)
	}
	if len(store.reached) != 1 || store.reached[0] != "m1" {
		t.Fatalf("reached = %v", store.reached)
	}
}

func TestEvaluateMilestonesNoGoalIsNoop(t *testing.T) {
	store := &stubGoalStore{getErr: pgx.ErrNoRows}
	service := NewGoalService(store, &stubLatestReader{err: pgx.ErrNoRows})

	if err := service.EvaluateMilestones(context.Background(), 1); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
}

func TestEvaluateMilestonesNoMeasurementsIsNoop(t *testing.T) {
	store := &stubGoalStore{goal: &models.WeightGoal{ID: 1, TargetValue: 75}}
	service := NewGoalService(store, &stubLatestReader{err: pgx.ErrNoRows})

	if err := service.EvaluateMilestones(context.Background(), 1); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
	if len(store.reached) != 0 {
		t.Fatalf("reached = %v", store.reached)
	}
}

func TestSetGoalValidatesValues(t *testing.T) {
	service := NewGoalService(&stubGoalStore{}, &stubLatestReader{})

	_, err := service.SetGoal(context.Background(), 1, SetGoalInput{TargetValue: -1, CurrentValue: 80})
	if err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
