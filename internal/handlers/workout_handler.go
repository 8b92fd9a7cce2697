package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/karan-monga/repsandrulers/internal/services"
)

type WorkoutHandler struct {
	workoutService *services.WorkoutService
}

func NewWorkoutHandler(workoutService *services.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

func (h *WorkoutHandler) Generate(c *fiber.Ctx) error {
	if _, err := currentUserID(c); err != nil {
		return unauthorized(c)
	}

	var req services.WorkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	workout, err := h.workoutService.Generate(c.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Days per week must be between 1 and 7"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate workout"})
	}
	return c.JSON(workout)
}
