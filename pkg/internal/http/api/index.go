package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/treehollow/socialite/pkg/internal/services"
)

var srv *services.Interactor

func MapAPIs(app *fiber.App, interactor *services.Interactor) {
	srv = interactor

	api := app.Group("/api").Name("API")
	{
		posts := api.Group("/posts").Name("Posts API")
		{
			posts.Get("/", listPost)
			posts.Post("/", createPost)
			posts.Get("/:postId", getPost)
			posts.Put("/:postId", editPost)
			posts.Delete("/:postId", deletePost)
			posts.Post("/:postId/react", reactPost)

			posts.Get("/:postId/comments", listComment)
			posts.Post("/:postId/comments", createComment)
		}

		comments := api.Group("/comments").Name("Comments API")
		{
			comments.Put("/:commentId", editComment)
			comments.Delete("/:commentId", deleteComment)
			comments.Post("/:commentId/react", reactComment)
		}

		friends := api.Group("/friends").Name("Friends API")
		{
			friends.Get("/", listFriend)
			friends.Delete("/:userId", unfriend)
			friends.Get("/suggestions", listFriendSuggestion)

			friends.Get("/requests", listFriendRequest)
			friends.Post("/requests", createFriendRequest)
			friends.Post("/requests/:requestId/accept", acceptFriendRequest)
			friends.Post("/requests/:requestId/decline", declineFriendRequest)
			friends.Delete("/requests/:requestId", cancelFriendRequest)
		}

		users := api.Group("/users").Name("Users API")
		{
			users.Get("/:name", getUser)
			users.Get("/:name/posts", listUserPost)
		}

		notifications := api.Group("/notifications").Name("Notifications API")
		{
			notifications.Get("/", listNotification)
			notifications.Put("/read", markNotificationRead)
		}
	}
}

// remapServiceError flattens the interactor's wrapped error kinds onto
// http status codes.
func remapServiceError(err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrPermissionDenied):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrCommentsDisabled):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrStateConflict):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrValidation):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
