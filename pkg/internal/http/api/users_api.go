package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/treehollow/socialite/pkg/internal/models"
	"github.com/treehollow/socialite/pkg/internal/services"
)

func getUser(c *fiber.Ctx) error {
	account, err := srv.GetAccountByName(c.UserContext(), c.Params("name"))
	if err != nil {
		return remapServiceError(err)
	}

	status := models.FriendStatusNone
	if viewer := viewerID(c); viewer != nil {
		status, err = srv.FriendStatus(c.UserContext(), *viewer, account.ID)
		if err != nil {
			return remapServiceError(err)
		}
	}

	return c.JSON(fiber.Map{
		"account":       account,
		"friend_status": status,
	})
}

func listUserPost(c *fiber.Ctx) error {
	take := c.QueryInt("take", 0)
	offset := c.QueryInt("offset", 0)

	items, count, err := srv.ComposeProfileFeed(c.UserContext(), viewerID(c), c.Params("name"), take, offset)
	if err != nil {
		return remapServiceError(err)
	}

	if c.QueryBool("truncate", true) {
		for _, item := range items {
			item.Content = services.TruncateContent(item.Content)
		}
	}

	return c.JSON(fiber.Map{
		"count": count,
		"data":  items,
	})
}
