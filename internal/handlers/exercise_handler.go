package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/karan-monga/repsandrulers/internal/repository"
)

type ExerciseHandler struct {
	exerciseRepo *repository.ExerciseRepository
}

func NewExerciseHandler(exerciseRepo *repository.ExerciseRepository) *ExerciseHandler {
	return &ExerciseHandler{exerciseRepo: exerciseRepo}
}

func (h *ExerciseHandler) List(c *fiber.Ctx) error {
	if _, err := currentUserID(c); err != nil {
		return unauthorized(c)
	}

	filter := repository.ExerciseFilter{
		SplitType:     c.Query("split_type"),
		PrimaryMuscle: c.Query("muscle"),
		Search:        c.Query("search"),
	}
	exercises, err := h.exerciseRepo.List(c.Context(), filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list exercises"})
	}
	return c.JSON(fiber.Map{"exercises": exercises})
}

func (h *ExerciseHandler) Get(c *fiber.Ctx) error {
	if _, err := currentUserID(c); err != nil {
		return unauthorized(c)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid exercise id"})
	}

	exercise, err := h.exerciseRepo.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Exercise not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch exercise"})
	}
	return c.JSON(exercise)
}

func (h *ExerciseHandler) MuscleGroups(c *fiber.Ctx) error {
	if _, err := currentUserID(c); err != nil {
		return unauthorized(c)
	}

	groups, err := h.exerciseRepo.MuscleGroups(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list muscle groups"})
	}
	return c.JSON(fiber.Map{"muscle_groups": groups})
}
