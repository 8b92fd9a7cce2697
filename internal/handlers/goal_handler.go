package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/karan-monga/repsandrulers/internal/services"
)

type GoalHandler struct {
	goalService *services.GoalService
}

func NewGoalHandler(goalService *services.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

type setGoalRequest struct {
	TargetValue  float64 `json:"target_value"`
	CurrentValue float64 `json:"current_value"`
	StartDate    string  `json:"start_date"`
	TargetDate   *string `json:"target_date"`
}

func (h *GoalHandler) SetGoal(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req setGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	startDate := time.Now()
	if req.StartDate != "" {
		startDate, err = time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid start_date"})
		}
	}
	targetDate, err := parseOptionalDate(req.TargetDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid target_date"})
	}

	goal, err := h.goalService.SetGoal(c.Context(), userID, services.SetGoalInput{
		TargetValue:  req.TargetValue,
		CurrentValue: req.CurrentValue,
		StartDate:    startDate,
		TargetDate:   targetDate,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Target and current values must be positive"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to set goal"})
	}
	return c.Status(fiber.StatusCreated).JSON(goal)
}

func (h *GoalHandler) GetGoal(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	goal, err := h.goalService.GetGoal(c.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrNoGoal) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No active goal"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch goal"})
	}
	return c.JSON(goal)
}

type updateGoalRequest struct {
	TargetValue float64 `json:"target_value"`
	TargetDate  *string `json:"target_date"`
}

func (h *GoalHandler) UpdateGoal(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req updateGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	targetDate, err := parseOptionalDate(req.TargetDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid target_date"})
	}

	goal, err := h.goalService.UpdateTarget(c.Context(), userID, req.TargetValue, targetDate)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Target value must be positive"})
		case errors.Is(err, services.ErrNoGoal):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No active goal"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update goal"})
		}
	}
	return c.JSON(goal)
}

func (h *GoalHandler) DeleteGoal(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	if err := h.goalService.DeleteGoal(c.Context(), userID); err != nil {
		if errors.Is(err, services.ErrNoGoal) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No active goal"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete goal"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type addMilestoneRequest struct {
	Value      float64 `json:"value"`
	TargetDate *string `json:"target_date"`
}

func (h *GoalHandler) AddMilestone(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req addMilestoneRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	targetDate, err := parseOptionalDate(req.TargetDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid target_date"})
	}

	goal, err := h.goalService.AddMilestone(c.Context(), userID, req.Value, targetDate)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Milestone value must be positive"})
		case errors.Is(err, services.ErrNoGoal):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No active goal"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to add milestone"})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(goal)
}

func (h *GoalHandler) DeleteMilestone(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	milestoneID := c.Params("milestoneId")
	if milestoneID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid milestone id"})
	}

	if err := h.goalService.DeleteMilestone(c.Context(), userID, milestoneID); err != nil {
		switch {
		case errors.Is(err, services.ErrNoGoal):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No active goal"})
		case errors.Is(err, pgx.ErrNoRows):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Milestone not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete milestone"})
		}
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func parseOptionalDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
