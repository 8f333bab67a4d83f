package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/treehollow/socialite/pkg/internal/http/exts"
)

func listNotification(c *fiber.Ctx) error {
	user, err := authedUser(c)
	if err != nil {
		return err
	}
	take := c.QueryInt("take", 0)
	offset := c.QueryInt("offset", 0)

	items, count, err := srv.ListNotifications(c.UserContext(), user.ID, take, offset)
	if err != nil {
		return remapServiceError(err)
	}

	return c.JSON(fiber.Map{
		"count": count,
		"data":  items,
	})
}

func markNotificationRead(c *fiber.Ctx) error {
	user, err := authedUser(c)
	if err != nil {
		return err
	}

	var data struct {
		MessageIDs []uint `json:"messages" validate:"required"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if err := srv.MarkNotificationsRead(c.UserContext(), user.ID, data.MessageIDs); err != nil {
		return remapServiceError(err)
	}

	return c.SendStatus(fiber.StatusOK)
}
