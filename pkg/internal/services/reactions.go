package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/treehollow/socialite/pkg/internal/fanout"
	"github.com/treehollow/socialite/pkg/internal/models"
	"github.com/treehollow/socialite/pkg/internal/storage"
)

type ReactionToggleStatus = string

const (
	ReactionAdded   = ReactionToggleStatus("added")
	ReactionChanged = ReactionToggleStatus("changed")
	ReactionRemoved = ReactionToggleStatus("removed")
)

type ReactionToggleResult struct {
	Status    ReactionToggleStatus            `json:"status"`
	Symbol    *models.ReactionSymbol          `json:"symbol"`
	Total     int64                           `json:"total"`
	Breakdown map[models.ReactionSymbol]int64 `json:"breakdown"`
}

// ToggleReaction runs the idempotent add/change/remove cycle for one
// (user, target) pair. The pair's critical section covers the whole
// read-check-then-write, and the total plus breakdown are recomputed from
// the store afterwards instead of trusting in-memory deltas.
func (i *Interactor) ToggleReaction(ctx context.Context, accountID uint, target models.Target, symbol models.ReactionSymbol) (ReactionToggleResult, error) {
	var result ReactionToggleResult
	if !models.IsValidReactionSymbol(symbol) {
		return result, fmt.Errorf("%w: unknown reaction symbol %q", ErrValidation, symbol)
	}

	postID, ownerID, err := i.resolveReactionTarget(ctx, target)
	if err != nil {
		return result, err
	}

	unlock := i.locks.Lock(fmt.Sprintf("reactions:%d:%d:%d", target.Kind, target.ID, accountID))

	existing, err := i.store.GetReaction(ctx, accountID, target)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		if err := i.store.UpsertReaction(ctx, accountID, target, symbol); err != nil {
			unlock()
			return result, err
		}
		result.Status = ReactionAdded
		result.Symbol = &symbol
	case err != nil:
		unlock()
		return result, err
	case existing == symbol:
		if err := i.store.DeleteReaction(ctx, accountID, target); err != nil {
			unlock()
			return result, err
		}
		result.Status = ReactionRemoved
	default:
		if err := i.store.UpsertReaction(ctx, accountID, target, symbol); err != nil {
			unlock()
			return result, err
		}
		result.Status = ReactionChanged
		result.Symbol = &symbol
	}

	result.Total, result.Breakdown, err = i.store.ReactionTally(ctx, target)
	unlock()
	if err != nil {
		return result, err
	}

	i.bus.Publish(fanout.PostTopic(postID), fanout.NewEvent(EventReactionUpdated, ReactionEvent{
		Target:    target,
		Status:    result.Status,
		AccountID: accountID,
		Symbol:    result.Symbol,
		Total:     result.Total,
		Breakdown: result.Breakdown,
	}))

	if result.Status == ReactionAdded && ownerID != accountID {
		i.notify(ctx, ownerID, models.NotificationReaction, target.ID)
	}

	return result, nil
}

// resolveReactionTarget checks the target is live and reports the post
// whose topic owns the event, plus the content owner to notify.
func (i *Interactor) resolveReactionTarget(ctx context.Context, target models.Target) (postID uint, ownerID uint, err error) {
	switch target.Kind {
	case models.TargetKindPost:
		post, err := i.store.GetPost(ctx, target.ID)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: post #%d", ErrNotFound, target.ID)
		}
		return post.ID, post.AccountID, nil
	case models.TargetKindComment:
		comment, err := i.store.GetComment(ctx, target.ID)
		if err != nil || comment.IsDeleted {
			return 0, 0, fmt.Errorf("%w: comment #%d", ErrNotFound, target.ID)
		}
		if _, err := i.store.GetPost(ctx, comment.PostID); err != nil {
			return 0, 0, fmt.Errorf("%w: post #%d", ErrNotFound, comment.PostID)
		}
		return comment.PostID, comment.AccountID, nil
	default:
		return 0, 0, fmt.Errorf("%w: unknown reaction target kind", ErrValidation)
	}
}
