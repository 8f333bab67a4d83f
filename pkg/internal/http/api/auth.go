package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/treehollow/socialite/pkg/internal/models"
)

func authedUser(c *fiber.Ctx) (models.Account, error) {
	user, ok := c.Locals("user").(models.Account)
	if !ok {
		return user, fiber.NewError(fiber.StatusUnauthorized, "authentication required")
	}
	return user, nil
}

// viewerID returns the signed-in account id, or nil for anonymous
// visitors; read endpoints accept both.
func viewerID(c *fiber.Ctx) *uint {
	if user, ok := c.Locals("user").(models.Account); ok {
		return &user.ID
	}
	return nil
}
