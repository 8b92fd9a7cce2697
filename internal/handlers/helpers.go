package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

var errNoUser = errors.New("no authenticated user")

// currentUserID reads the authenticated user id placed in locals by the auth
// middleware.
func currentUserID(c *fiber.Ctx) (int64, error) {
	value, ok := c.Locals("user_id").(string)
	if !ok {
		return 0, errNoUser
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, errNoUser
	}
	return id, nil
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
}

func parseIDParam(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// parseDateQuery reads an optional YYYY-MM-DD query parameter.
func parseDateQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
