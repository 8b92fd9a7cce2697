package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/karan-monga/repsandrulers/internal/importer"
	"github.com/karan-monga/repsandrulers/internal/services"
)

type RenphoHandler struct {
	renphoService  *services.RenphoService
	insightService *services.InsightService
}

func NewRenphoHandler(renphoService *services.RenphoService, insightService *services.InsightService) *RenphoHandler {
	return &RenphoHandler{renphoService: renphoService, insightService: insightService}
}

// Import ingests a Renpho scale export. Validation is all or nothing; any
// header or row error rejects the file with a 422.
func (h *RenphoHandler) Import(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	raw, err := readUpload(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	imported, importErrs, err := h.renphoService.Import(c.Context(), userID, raw)
	if err != nil {
		if errors.Is(err, importer.ErrEmptyFile) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "CSV file is empty"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to import file"})
	}
	if len(importErrs) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": importErrs})
	}

	return c.JSON(fiber.Map{"imported": imported})
}

func (h *RenphoHandler) List(c *fiber.Ctx) error {
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

	measurements, err := h.renphoService.List(c.Context(), userID, from, to)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list measurements"})
	}
	return c.JSON(fiber.Map{"measurements": measurements})
}

func (h *RenphoHandler) Latest(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	latest, err := h.renphoService.Latest(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No measurements found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch measurement"})
	}
	return c.JSON(latest)
}

func (h *RenphoHandler) Stats(c *fiber.Ctx) error {
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

	stats, err := h.renphoService.ComputeStats(c.Context(), userID, from, to)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute stats"})
	}
	return c.JSON(stats)
}

func (h *RenphoHandler) Insights(c *fiber.Ctx) error {
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

	report, err := h.insightService.Analyze(c.Context(), userID, from, to, c.Query("goals"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to analyze progress"})
	}
	return c.JSON(report)
}

func (h *RenphoHandler) Delete(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid measurement id"})
	}

	deleted, err := h.renphoService.Delete(c.Context(), userID, id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete measurement"})
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Measurement not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *RenphoHandler) Clear(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	cleared, err := h.renphoService.Clear(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to clear measurements"})
	}
	return c.JSON(fiber.Map{"deleted": cleared})
}
