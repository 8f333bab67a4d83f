package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"github.com/treehollow/socialite/pkg/internal/http/exts"
	"github.com/treehollow/socialite/pkg/internal/models"
	"github.com/treehollow/socialite/pkg/internal/services"
)

func listComment(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("postId", 0)

	// The visibility check on the parent post covers the whole tree.
	if _, err := srv.GetPost(c.UserContext(), viewerID(c), uint(id)); err != nil {
		return remapServiceError(err)
	}

	items, err := srv.ListCommentTree(c.UserContext(), uint(id))
	if err != nil {
		return remapServiceError(err)
	}

	return c.JSON(fiber.Map{
		"count": len(items),
		"data":  items,
	})
}

func createComment(c *fiber.Ctx) error {
	user, err := authedUser(c)
	if err != nil {
		return err
	}
	id, _ := c.ParamsInt("postId", 0)

	var data struct {
		Content     string   `json:"content" validate:"required"`
		ParentID    *uint    `json:"parent_id"`
		Attachments []string `json:"attachments"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if _, err := srv.GetPost(c.UserContext(), &user.ID, uint(id)); err != nil {
		return remapServiceError(err)
	}

	item, err := srv.CreateComment(c.UserContext(), user.ID, uint(id), services.CommentDraft{
		Content:     data.Content,
		ParentID:    data.ParentID,
		Attachments: data.Attachments,
	})
	if err != nil {
		return remapServiceError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

func editComment(c *fiber.Ctx) error {
	user, err := authedUser(c)
	if err != nil {
		return err
	}
	id, _ := c.ParamsInt("commentId", 0)

	var data struct {
		Content string `json:"content" validate:"required"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item, err := srv.UpdateComment(c.UserContext(), user.ID, uint(id), data.Content)
	if err != nil {
		return remapServiceError(err)
	}

	return c.JSON(item)
}

func deleteComment(c *fiber.Ctx) error {
	user, err := authedUser(c)
	if err != nil {
		return err
	}
	id, _ := c.ParamsInt("commentId", 0)

	if err := srv.DeleteComment(c.UserContext(), user.ID, uint(id)); err != nil {
		return remapServiceError(err)
	}

	return c.SendStatus(fiber.StatusOK)
}

func reactComment(c *fiber.Ctx) error {
	user, err := authedUser(c)
	if err != nil {
		return err
	}
	id, _ := c.ParamsInt("commentId", 0)

	var data struct {
		Symbol string `json:"symbol" validate:"required"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	result, err := srv.ToggleReaction(c.UserContext(), user.ID, models.CommentTarget(uint(id)), models.ReactionSymbol(data.Symbol))
	if err != nil {
		return remapServiceError(err)
	}

	status := lo.Ternary(result.Status == services.ReactionRemoved, fiber.StatusNoContent, fiber.StatusCreated)
	return c.Status(status).JSON(result)
}
