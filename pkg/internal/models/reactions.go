package models

import "github.com/samber/lo"

type ReactionSymbol = string

const (
	ReactionLike  = ReactionSymbol("like")
	ReactionLove  = ReactionSymbol("love")
	ReactionHaha  = ReactionSymbol("haha")
	ReactionSad   = ReactionSymbol("sad")
	ReactionAngry = ReactionSymbol("angry")
)

var ReactionSymbols = []ReactionSymbol{
	ReactionLike,
	ReactionLove,
	ReactionHaha,
	ReactionSad,
	ReactionAngry,
}

func IsValidReactionSymbol(symbol ReactionSymbol) bool {
	return lo.Contains(ReactionSymbols, symbol)
}

type TargetKind int8

const (
	TargetKindPost = TargetKind(iota)
	TargetKindComment
)

// Target is the tagged reference a reaction attaches to. The kind picks one
// of the two typed reaction tables, so the store never needs a stringly
// typed foreign key.
type Target struct {
	Kind TargetKind `json:"kind"`
	ID   uint       `json:"id"`
}

func PostTarget(id uint) Target {
	return Target{Kind: TargetKindPost, ID: id}
}

func CommentTarget(id uint) Target {
	return Target{Kind: TargetKindComment, ID: id}
}

// PostReaction and CommentReaction are the two symmetric halves of the
// reaction model. At most one row may exist per (account, target) pair.
type PostReaction struct {
	BaseModel

	AccountID uint           `json:"account_id" gorm:"uniqueIndex:idx_post_reaction_pair"`
	PostID    uint           `json:"post_id" gorm:"uniqueIndex:idx_post_reaction_pair"`
	Account   Account        `json:"account"`
	Symbol    ReactionSymbol `json:"symbol"`
}

type CommentReaction struct {
	BaseModel

	AccountID uint           `json:"account_id" gorm:"uniqueIndex:idx_comment_reaction_pair"`
	CommentID uint           `json:"comment_id" gorm:"uniqueIndex:idx_comment_reaction_pair"`
	Account   Account        `json:"account"`
	Symbol    ReactionSymbol `json:"symbol"`
}
