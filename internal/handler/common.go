package handler

import (
	"log"
	"strconv"

	"go-shop-api/internal/apperr"

	"github.com/gofiber/fiber/v2"
)

// Helpers to pull user info from the JWT context (set by auth middleware)

func getUserID(c *fiber.Ctx) uint {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return 0 // shouldn't happen on protected routes
	}
	return userID
}

// optionalUserID returns nil when the request carried no valid token.
func optionalUserID(c *fiber.Ctx) *uint {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return nil
	}
	return &userID
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id < 1 {
		return 0, apperr.New(apperr.Validation, "Invalid id")
	}
	return uint(id), nil
}

// respondError translates a service error into the client-facing JSON
// shape. Internal causes are logged with full detail and masked.
func respondError(c *fiber.Ctx, err error) error {
	if apperr.KindOf(err) == apperr.Internal {
		log.Printf("%s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": apperr.Message(err)})
}
