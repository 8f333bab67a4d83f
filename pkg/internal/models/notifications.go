package models

const (
	NotificationFriendAccepted = "friends.accepted"
	NotificationFriendRequest  = "friends.request"
	NotificationCommentReply   = "comments.reply"
	NotificationReaction       = "reactions.received"
)

type Notification struct {
	BaseModel

	AccountID   uint   `json:"account_id" gorm:"index"`
	Type        string `json:"type"`
	ReferenceID uint   `json:"reference_id"`
	IsRead      bool   `json:"is_read"`
}
