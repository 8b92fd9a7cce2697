package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/karan-monga/repsandrulers/internal/services"
)

type ExportHandler struct {
	exportService *services.ExportService
}

func NewExportHandler(exportService *services.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// Export streams the CSV as a download attachment.
func (h *ExportHandler) Export(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	start, err := parseDateQuery(c, "start_date")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid start_date"})
	}
	end, err := parseDateQuery(c, "end_date")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid end_date"})
	}

	opts := services.ExportOptions{
		Format:            c.Query("format", services.FormatMetric),
		Start:             start,
		End:               end,
		IncludeCalculated: c.QueryBool("include_calculated", false),
	}

	csv, err := h.exportService.Run(c.Context(), userID, opts)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid export format"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to export measurements"})
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, h.exportService.Filename(time.Now())))
	return c.SendString(csv)
}
