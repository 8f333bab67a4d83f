package services

import "github.com/treehollow/socialite/pkg/internal/models"

const (
	EventPostCreated     = "posts.created"
	EventPostUpdated     = "posts.updated"
	EventPostDeleted     = "posts.deleted"
	EventCommentCreated  = "comments.created"
	EventCommentUpdated  = "comments.updated"
	EventCommentDeleted  = "comments.deleted"
	EventReactionUpdated = "reactions.updated"
	EventFriendAccepted  = "friends.accepted"
	EventNotification    = "notifications.created"
)

type ReactionEvent struct {
	Target    models.Target                   `json:"target"`
	Status    ReactionToggleStatus            `json:"status"`
	AccountID uint                            `json:"account_id"`
	Symbol    *models.ReactionSymbol          `json:"symbol"`
	Total     int64                           `json:"total"`
	Breakdown map[models.ReactionSymbol]int64 `json:"breakdown"`
}

type CommentEvent struct {
	Comment models.Comment `json:"comment"`
	Indent  int            `json:"indent"`
}

type CommentDeletedEvent struct {
	ID     uint `json:"id"`
	PostID uint `json:"post_id"`
}
