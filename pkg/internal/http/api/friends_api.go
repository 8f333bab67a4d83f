package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/treehollow/socialite/pkg/internal/http/exts"
)

func listFriend(c *fiber.Ctx) error {
	user, err := authedUser(c)
	if err != nil {
		return err
	}

	items, err := srv.ListFriends(c.UserContext(), user.ID)
	if err != nil {
		return remapServiceError(err)
	}

	return c.JSON(fiber.Map{
		"count": len(items),
		"data":  items,
	})
}

func unfriend(c *fiber.Ctx) error {
	user, err := authedUser(c)
	if err != nil {
		return err
	}
	id, _ := c.ParamsInt("userId", 0)

	if err := srv.Unfriend(c.UserContext(), user.ID, uint(id)); err != nil {
		return remapServiceError(err)
	}

	return c.SendStatus(fiber.StatusOK)
}

func listFriendSuggestion(c *fiber.Ctx) error {
	user, err := authedUser(c)
	if err != nil {
		return err
	}

	items, err := srv.SuggestFriends(c.UserContext(), user.ID, c.QueryInt("take", 0))
	if err != nil {
		return remapServiceError(err)
	}

	return c.JSON(fiber.Map{
		"count": len(items),
		"data":  items,
	})
}

func listFriendRequest(c *fiber.Ctx) error {
	user, err := authedUser(c)
	if err != nil {
		return err
	}

	items, err := srv.ListPendingRequests(c.UserContext(), user.ID)
	if err != nil {
		return remapServiceError(err)
	}

	return c.JSON(fiber.Map{
		"count": len(items),
		"data":  items,
	})
}

func createFriendRequest(c *fiber.Ctx) error {
	user, err := authedUser(c)
	if err != nil {
		return err
	}

	var data struct {
		UserID uint `json:"user_id" validate:"required"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item, err := srv.SendFriendRequest(c.UserContext(), user.ID, data.UserID)
	if err != nil {
		return remapServiceError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

func acceptFriendRequest(c *fiber.Ctx) error {
	user, err := authedUser(c)
	if err != nil {
		return err
	}
	id, _ := c.ParamsInt("requestId", 0)

	item, err := srv.AcceptFriendRequest(c.UserContext(), user.ID, uint(id))
	if err != nil {
		return remapServiceError(err)
	}

	return c.JSON(item)
}

func declineFriendRequest(c *fiber.Ctx) error {
	user, err := authedUser(c)
	if err != nil {
		return err
	}
	id, _ := c.ParamsInt("requestId", 0)

	if err := srv.RejectFriendRequest(c.UserContext(), user.ID, uint(id)); err != nil {
		return remapServiceError(err)
	}

	return c.SendStatus(fiber.StatusOK)
}

func cancelFriendRequest(c *fiber.Ctx) error {
	user, err := authedUser(c)
	if err != nil {
		return err
	}
	id, _ := c.ParamsInt("requestId", 0)

	if err := srv.CancelFriendRequest(c.UserContext(), user.ID, uint(id)); err != nil {
		return remapServiceError(err)
	}

	return c.SendStatus(fiber.StatusOK)
}
