package models

import (
	"time"

	"gorm.io/datatypes"
)

type PostPrivacyLevel = int8

const (
	PostPrivacyPublic = PostPrivacyLevel(iota)
	PostPrivacyFriends
	PostPrivacyOnlyMe
)

type Post struct {
	BaseModel

	AccountID uint    `json:"account_id"`
	Account   Account `json:"account"`

	Content     string                      `json:"content"`
	Attachments datatypes.JSONSlice[string] `json:"attachments"`
	Privacy     PostPrivacyLevel            `json:"privacy"`

	CommentEnabled    bool `json:"comment_enabled" gorm:"default:true"`
	HideReactionCount bool `json:"hide_reaction_count"`
	HideCommentCount  bool `json:"hide_comment_count"`

	RepostID *uint `json:"repost_id"`
	RepostTo *Post `json:"repost_to" gorm:"foreignKey:RepostID"`

	EditedAt  *time.Time `json:"edited_at"`
	IsDeleted bool       `json:"is_deleted"`
	DeletedAt *time.Time `json:"deleted_at"`

	// Summary of the reposted original, resolved at read time. The repost's
	// own privacy governs feed inclusion; the original is shown as embedded
	// context because the share already happened.
	RepostSummary *PostSummary `json:"repost_summary,omitempty" gorm:"-"`

	Metric PostMetric `json:"metric" gorm:"-"`
}

type PostSummary struct {
	ID              uint      `json:"id"`
	Author          Account   `json:"author"`
	Snippet         string    `json:"snippet"`
	FirstAttachment *string   `json:"first_attachment,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// PostMetric carries aggregates computed from the authoritative store at
// read time, never cached on the row.
type PostMetric struct {
	ReactionCount     int64                    `json:"reaction_count"`
	ReactionBreakdown map[ReactionSymbol]int64 `json:"reaction_breakdown,omitempty"`
	CommentCount      int64                    `json:"comment_count"`
	ViewerReaction    *ReactionSymbol          `json:"viewer_reaction,omitempty"`
}
