package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/karan-monga/repsandrulers/internal/models"
	"github.com/karan-monga/repsandrulers/internal/repository"
	"github.com/karan-monga/repsandrulers/internal/services"
)

type stubGoalStore struct {
	goal *models.WeightGoal
}

func (s *stubGoalStore) Set(_ context.Context, userID int64, input repository.SetGoalInput) (*models.WeightGoal, error) {
	s.goal = &models.WeightGoal{
		ID:           1,
		UserID:       userID,
		TargetValue:  input.TargetValue,
		CurrentValue: input.CurrentValue,
		StartDate:    input.StartDate,
		TargetDate:   input.TargetDate,
		Milestones:   []models.Milestone{},
	}
	return s.goal, nil
}

func (s *stubGoalStore) GetByUserID(_ context.Context, _ int64) (*models.WeightGoal, error) {
	if s.goal == nil {
		return nil, pgx.ErrNoRows
	}
	return s.goal, nil
}

func (s *stubGoalStore) UpdateTarget(_ context.Context, _ int64, targetValue float64, targetDate *time.Time) error {
	if s.goal != nil {
		s.goal.TargetValue = targetValue
		s.goal.TargetDate = targetDate
	}
	return nil
}

func (s *stubGoalStore) Delete(_ context.Context, _ int64) (bool, error) {
	deleted := s.goal != nil
	s.goal = nil
	return deleted, nil
}

func (s *stubGoalStore) AddMilestone(_ context.Context, _ int64, m models.Milestone) error {
	s.goal.Milestones = append(s.goal.Milestones, m)
	return nil
}

func (s *stubGoalStore) DeleteMilestone(_ context.Context, _ int64, milestoneID string) (bool, error) {
	for i, m := range s.goal.Milestones {
		if m.ID == milestoneID {
			s.goal.Milestones = append(s.goal.Milestones[:i], s.goal.Milestones[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *stubGoalStore) MarkMilestoneReached(_ context.Context, _ string, _ time.Time) error {
	return nil
}

type stubLatestReader struct{}

func (s *stubLatestReader) Latest(_ context.Context, _ int64) (*models.Measurement, error) {
	return nil, pgx.ErrNoRows
}

func newGoalTestApp(store *stubGoalStore) *fiber.App {
	handler := NewGoalHandler(services.NewGoalService(store, &stubLatestReader{}))

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", "1")
		return c.Next()
	})
	app.Post("/api/v1/goals", handler.SetGoal)
	app.Get("/api/v1/goals", handler.GetGoal)
	app.Delete("/api/v1/goals", handler.DeleteGoal)
	app.Post("/api/v1/goals/milestones", handler.AddMilestone)
	return app
}

func TestSetGoalCreatesGoal(t *testing.T) {
	app := newGoalTestApp(&stubGoalStore{})

	payload := bytes.NewBufferString(`{"target_value":75,"current_value":83,"start_date":"2024-01-01"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/goals", payload)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var goal models.WeightGoal
	if err := json.NewDecoder(resp.Body).Decode(&goal); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if goal.TargetValue != 75 || goal.CurrentValue != 83 {
		t.Errorf("goal = %+v", goal)
	}
}

func TestSetGoalRejectsNonPositiveTarget(t *testing.T) {
	app := newGoalTestApp(&stubGoalStore{})

	payload := bytes.NewBufferString(`{"target_value":0,"current_value":83}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/goals", payload)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestGetGoalWithoutGoalIs404(t *testing.T) {
	app := newGoalTestApp(&stubGoalStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/goals", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestAddMilestoneAssignsID(t *testing.T) {
	store := &stubGoalStore{goal: &models.WeightGoal{ID: 1, TargetValue: 75, Milestones: []models.Milestone{}}}
	app := newGoalTestApp(store)

	payload := bytes.NewBufferString(`{"value":80}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/goals/milestones", payload)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if len(store.goal.Milestones) != 1 || store.goal.Milestones[0].ID == "" {
		t.Errorf("milestones = %+v", store.goal.Milestones)
	}
}

func TestDeleteGoalTwiceIs404(t *testing.T) {
	store := &stubGoalStore{goal: &models.WeightGoal{ID: 1}}
	app := newGoalTestApp(store)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/goals", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("first delete status = %d", resp.StatusCode)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, "/api/v1/goals", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("second delete status = %d", resp.StatusCode)
	}
}
