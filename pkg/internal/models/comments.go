package models

import (
	"time"

	"gorm.io/datatypes"
)

// MaxCommentDepth is the deepest level a reply may reach. Replying to a
// comment already at this level is rejected before any row is written.
const MaxCommentDepth = 7

type Comment struct {
	BaseModel

	PostID    uint    `json:"post_id"`
	AccountID uint    `json:"account_id"`
	Account   Account `json:"account"`

	ParentID *uint `json:"parent_id"`
	// Level is a 1-based depth: 1 for a root comment, parent.Level+1 otherwise.
	Level int `json:"level"`

	Content     string                      `json:"content"`
	Attachments datatypes.JSONSlice[string] `json:"attachments"`

	EditedAt  *time.Time `json:"edited_at"`
	IsDeleted bool       `json:"is_deleted"`
	DeletedAt *time.Time `json:"deleted_at"`

	Metric CommentMetric `json:"metric" gorm:"-"`
}

type CommentMetric struct {
	ReactionCount     int64                    `json:"reaction_count"`
	ReactionBreakdown map[ReactionSymbol]int64 `json:"reaction_breakdown,omitempty"`
	ViewerReaction    *ReactionSymbol          `json:"viewer_reaction,omitempty"`
}

// Indent is the indentation hint pushed with comment events.
func (c Comment) Indent() int {
	return c.Level - 1
}
