package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/karan-monga/repsandrulers/internal/repository"
	"github.com/karan-monga/repsandrulers/internal/services"
)

type MeasurementHandler struct {
	measurementRepo *repository.MeasurementRepository
	goalService     *services.GoalService
}

func NewMeasurementHandler(measurementRepo *repository.MeasurementRepository, goalService *services.GoalService) *MeasurementHandler {
	return &MeasurementHandler{measurementRepo: measurementRepo, goalService: goalService}
}

type measurementRequest struct {
	Date       string   `json:"date"`
	Weight     *float64 `json:"weight"`
	Height     *float64 `json:"height"`
	Chest      *float64 `json:"chest"`
	Waist      *float64 `json:"waist"`
	Hips       *float64 `json:"hips"`
	Biceps     *float64 `json:"biceps"`
	Forearms   *float64 `json:"forearms"`
	Thighs     *float64 `json:"thighs"`
	Calves     *float64 `json:"calves"`
	LeftThigh  *float64 `json:"left_thigh"`
	RightThigh *float64 `json:"right_thigh"`
	LeftCalf   *float64 `json:"left_calf"`
	RightCalf  *float64 `json:"right_calf"`
	Notes      *string  `json:"notes"`
}

func (r measurementRequest) toInput() (repository.MeasurementInput, error) {
	date, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return repository.MeasurementInput{}, err
	}
	return repository.MeasurementInput{
		Date:       date,
		Weight:     r.Weight,
		Height:     r.Height,
		Chest:      r.Chest,
		Waist:      r.Waist,
		Hips:       r.Hips,
		Biceps:     r.Biceps,
		Forearms:   r.Forearms,
		Thighs:     r.Thighs,
		Calves:     r.Calves,
		LeftThigh:  r.LeftThigh,
		RightThigh: r.RightThigh,
		LeftCalf:   r.LeftCalf,
		RightCalf:  r.RightCalf,
		Notes:      r.Notes,
	}, nil
}

func (h *MeasurementHandler) Create(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req measurementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	input, err := req.toInput()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date format"})
	}
	if input.Weight != nil && *input.Weight <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid weight value"})
	}

	measurement, err := h.measurementRepo.Create(c.Context(), userID, input)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create measurement"})
	}

	// Milestone state follows the latest weight, so re-check after each write.
	if err := h.goalService.EvaluateMilestones(c.Context(), userID); err != nil {
		log.Printf("evaluate milestones for user %d: %v", userID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(measurement)
}

func (h *MeasurementHandler) List(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	from, err := parseDateQuery(c, "start_date")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid start_date"})
	}
	to, err := parseDateQuery(c, "end_date")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid end_date"})
	}

	measurements, err := h.measurementRepo.ListByUser(c.Context(), userID, from, to)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list measurements"})
	}
	return c.JSON(fiber.Map{"measurements": measurements})
}

func (h *MeasurementHandler) Get(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid measurement id"})
	}

	measurement, err := h.measurementRepo.GetByID(c.Context(), userID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Measurement not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch measurement"})
	}
	return c.JSON(measurement)
}

func (h *MeasurementHandler) Update(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid measurement id"})
	}

	var req measurementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	input, err := req.toInput()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date format"})
	}
	if input.Weight != nil && *input.Weight <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid weight value"})
	}

	measurement, err := h.measurementRepo.Update(c.Context(), userID, id, input)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Measurement not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update measurement"})
	}

	if err := h.goalService.EvaluateMilestones(c.Context(), userID); err != nil {
		log.Printf("evaluate milestones for user %d: %v", userID, err)
	}

	return c.JSON(measurement)
}

func (h *MeasurementHandler) Delete(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid measurement id"})
	}

	deleted, err := h.measurementRepo.Delete(c.Context(), userID, id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete measurement"})
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Measurement not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
