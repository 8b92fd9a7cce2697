package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/karan-monga/repsandrulers/internal/repository"
)

type ProfileHandler struct {
	profileRepo *repository.ProfileRepository
}

func NewProfileHandler(profileRepo *repository.ProfileRepository) *ProfileHandler {
	return &ProfileHandler{profileRepo: profileRepo}
}

func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	profile, err := h.profileRepo.GetByUserID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch profile"})
	}
	return c.JSON(profile)
}

type updateProfileRequest struct {
	UnitPreference *string  `json:"unit_preference"`
	HeightCM       *float64 `json:"height_cm"`
	WeightKG       *float64 `json:"weight_kg"`
}

func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.UnitPreference != nil && *req.UnitPreference != "metric" && *req.UnitPreference != "imperial" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid unit preference"})
	}
	if req.HeightCM != nil && *req.HeightCM <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid height"})
	}
	if req.WeightKG != nil && *req.WeightKG <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid weight"})
	}

	profile, err := h.profileRepo.UpdatePartial(c.Context(), userID, repository.UpdateProfileInput{
		UnitPreference: req.UnitPreference,
		HeightCM:       req.HeightCM,
		WeightKG:       req.WeightKG,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}
	return c.JSON(profile)
}
