package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/karan-monga/repsandrulers/internal/models"
	"github.com/karan-monga/repsandrulers/internal/repository"
)

type RoutineHandler struct {
	routineRepo  *repository.RoutineRepository
	exerciseRepo *repository.ExerciseRepository
}

func NewRoutineHandler(routineRepo *repository.RoutineRepository, exerciseRepo *repository.ExerciseRepository) *RoutineHandler {
	return &RoutineHandler{routineRepo: routineRepo, exerciseRepo: exerciseRepo}
}

type routineRequest struct {
	Name string `json:"name"`
}

func (h *RoutineHandler) Create(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req routineRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Routine name is required"})
	}

	routine, err := h.routineRepo.Create(c.Context(), userID, req.Name)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create routine"})
	}
	return c.Status(fiber.StatusCreated).JSON(routine)
}

func (h *RoutineHandler) List(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	routines, err := h.routineRepo.ListByUser(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list routines"})
	}
	return c.JSON(fiber.Map{"routines": routines})
}

func (h *RoutineHandler) Get(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid routine id"})
	}

	detail, err := h.routineRepo.GetDetail(c.Context(), userID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Routine not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch routine"})
	}
	return c.JSON(detail)
}

func (h *RoutineHandler) Rename(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid routine id"})
	}

	var req routineRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Routine name is required"})
	}

	renamed, err := h.routineRepo.Rename(c.Context(), userID, id, req.Name)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to rename routine"})
	}
	if !renamed {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Routine not found"})
	}
	return c.JSON(fiber.Map{"status": "renamed"})
}

func (h *RoutineHandler) Delete(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid routine id"})
	}

	deleted, err := h.routineRepo.Delete(c.Context(), userID, id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete routine"})
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Routine not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type addDayRequest struct {
	Weekday      string `json:"weekday"`
	SplitType    string `json:"split_type"`
	DisplayOrder int    `json:"display_order"`
}

func validSplit(split string) bool {
	switch split {
	case models.SplitPush, models.SplitPull, models.SplitLegs, models.SplitCustom:
		return true
	}
	return false
}

func (h *RoutineHandler) AddDay(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid routine id"})
	}

	var req addDayRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Weekday == "" || !validSplit(req.SplitType) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Weekday and a valid split type are required"})
	}

	// Ownership check before touching the day table.
	if _, err := h.routineRepo.GetByID(c.Context(), userID, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Routine not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch routine"})
	}

	day, err := h.routineRepo.AddDay(c.Context(), id, req.Weekday, req.SplitType, req.DisplayOrder)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to add day"})
	}
	return c.Status(fiber.StatusCreated).JSON(day)
}

func (h *RoutineHandler) DeleteDay(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	dayID, err := parseIDParam(c, "dayId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid day id"})
	}

	deleted, err := h.routineRepo.DeleteDay(c.Context(), userID, dayID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete day"})
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Day not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type addExerciseRequest struct {
	ExerciseID   int64   `json:"exercise_id"`
	SetCount     *int    `json:"set_count"`
	RepRange     *string `json:"rep_range"`
	RestInterval *string `json:"rest_interval"`
}

func (h *RoutineHandler) AddExercise(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	dayID, err := parseIDParam(c, "dayId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid day id"})
	}

	var req addExerciseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.ExerciseID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Exercise id is required"})
	}

	if _, err := h.routineRepo.GetDay(c.Context(), userID, dayID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Day not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch day"})
	}

	exercise, err := h.exerciseRepo.GetByID(c.Context(), req.ExerciseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Exercise not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch exercise"})
	}

	// Unspecified prescription falls back to the catalog defaults.
	setCount := exercise.DefaultSets
	if req.SetCount != nil && *req.SetCount > 0 {
		setCount = *req.SetCount
	}
	repRange := exercise.DefaultReps
	if req.RepRange != nil && *req.RepRange != "" {
		repRange = *req.RepRange
	}
	restInterval := exercise.RestInterval
	if req.RestInterval != nil && *req.RestInterval != "" {
		restInterval = *req.RestInterval
	}

	added, err := h.routineRepo.AddExercise(c.Context(), dayID, req.ExerciseID, setCount, repRange, restInterval)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to add exercise"})
	}
	return c.Status(fiber.StatusCreated).JSON(added)
}

type updateExerciseRequest struct {
	SetCount     *int    `json:"set_count"`
	RepRange     *string `json:"rep_range"`
	RestInterval *string `json:"rest_interval"`
}

func (h *RoutineHandler) UpdateExercise(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	routineExerciseID, err := parseIDParam(c, "exerciseId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid exercise id"})
	}

	var req updateExerciseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.SetCount != nil && *req.SetCount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Set count must be positive"})
	}

	updated, err := h.routineRepo.UpdateExercise(c.Context(), userID, routineExerciseID, repository.UpdateRoutineExerciseInput{
		SetCount:     req.SetCount,
		RepRange:     req.RepRange,
		RestInterval: req.RestInterval,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update exercise"})
	}
	if !updated {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Exercise not found"})
	}
	return c.JSON(fiber.Map{"status": "updated"})
}

func (h *RoutineHandler) RemoveExercise(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	routineExerciseID, err := parseIDParam(c, "exerciseId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid exercise id"})
	}

	removed, err := h.routineRepo.RemoveExercise(c.Context(), userID, routineExerciseID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to remove exercise"})
	}
	if !removed {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Exercise not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type reorderRequest struct {
	ExerciseIDs []int64 `json:"exercise_ids"`
}

func (h *RoutineHandler) ReorderExercises(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	dayID, err := parseIDParam(c, "dayId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid day id"})
	}

	var req reorderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if len(req.ExerciseIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Exercise ids are required"})
	}

	if _, err := h.routineRepo.GetDay(c.Context(), userID, dayID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Day not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch day"})
	}

	if err := h.routineRepo.Reorder(c.Context(), dayID, req.ExerciseIDs); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to reorder exercises"})
	}
	return c.JSON(fiber.Map{"status": "reordered"})
}
