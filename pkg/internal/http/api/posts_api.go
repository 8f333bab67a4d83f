package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"github.com/treehollow/socialite/pkg/internal/http/exts"
	"github.com/treehollow/socialite/pkg/internal/models"
	"github.com/treehollow/socialite/pkg/internal/services"
)

func listPost(c *fiber.Ctx) error {
	take := c.QueryInt("take", 0)
	offset := c.QueryInt("offset", 0)

	items, count, err := srv.ComposeFeed(c.UserContext(), viewerID(c), take, offset)
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

func getPost(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("postId", 0)

	item, err := srv.GetPost(c.UserContext(), viewerID(c), uint(id))
	if err != nil {
		return remapServiceError(err)
	}

	return c.JSON(item)
}

func createPost(c *fiber.Ctx) error {
	user, err := authedUser(c)
	if err != nil {
		return err
	}

	var data struct {
		Content           string   `json:"content"`
		Attachments       []string `json:"attachments"`
		Privacy           int8     `json:"privacy"`
		CommentEnabled    *bool    `json:"comment_enabled"`
		HideReactionCount bool     `json:"hide_reaction_count"`
		HideCommentCount  bool     `json:"hide_comment_count"`
		RepostID          *uint    `json:"repost_id"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item, err := srv.CreatePost(c.UserContext(), user.ID, services.PostDraft{
		Content:           data.Content,
		Attachments:       data.Attachments,
		Privacy:           models.PostPrivacyLevel(data.Privacy),
		CommentEnabled:    data.CommentEnabled,
		HideReactionCount: data.HideReactionCount,
		HideCommentCount:  data.HideCommentCount,
		RepostID:          data.RepostID,
	})
	if err != nil {
		return remapServiceError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

func editPost(c *fiber.Ctx) error {
	user, err := authedUser(c)
	if err != nil {
		return err
	}
	id, _ := c.ParamsInt("postId", 0)

	var data struct {
		Content           string   `json:"content"`
		Attachments       []string `json:"attachments"`
		Privacy           int8     `json:"privacy"`
		CommentEnabled    *bool    `json:"comment_enabled"`
		HideReactionCount bool     `json:"hide_reaction_count"`
		HideCommentCount  bool     `json:"hide_comment_count"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item, err := srv.EditPost(c.UserContext(), user.ID, uint(id), services.PostDraft{
		Content:           data.Content,
		Attachments:       data.Attachments,
		Privacy:           models.PostPrivacyLevel(data.Privacy),
		CommentEnabled:    data.CommentEnabled,
		HideReactionCount: data.HideReactionCount,
		HideCommentCount:  data.HideCommentCount,
	})
	if err != nil {
		return remapServiceError(err)
	}

	return c.JSON(item)
}

func deletePost(c *fiber.Ctx) error {
	user, err := authedUser(c)
	if err != nil {
		return err
	}
	id, _ := c.ParamsInt("postId", 0)

	if err := srv.DeletePost(c.UserContext(), user.ID, uint(id)); err != nil {
		return remapServiceError(err)
	}

	return c.SendStatus(fiber.StatusOK)
}

func reactPost(c *fiber.Ctx) error {
	user, err := authedUser(c)
	if err != nil {
		return err
	}
	id, _ := c.ParamsInt("postId", 0)

	var data struct {
		Symbol string `json:"symbol" validate:"required"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	result, err := srv.ToggleReaction(c.UserContext(), user.ID, models.PostTarget(uint(id)), models.ReactionSymbol(data.Symbol))
	if err != nil {
		return remapServiceError(err)
	}

	status := lo.Ternary(result.Status == services.ReactionRemoved, fiber.StatusNoContent, fiber.StatusCreated)
	return c.Status(status).JSON(result)
}
