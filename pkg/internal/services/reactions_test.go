package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/treehollow/socialite/pkg/internal/models"
)

func TestToggleReactionCycle(t *testing.T) {
	interactor, _, _ := newTestInteractor(t)
	ctx := context.Background()

	author := seedAccount(t, interactor, "author")
	reactor := seedAccount(t, interactor, "reactor")
	post := seedPost(t, interactor, author.ID, PostDraft{Content: "hello"})
	target := models.PostTarget(post.ID)

	result, err := interactor.ToggleReaction(ctx, reactor.ID, target, models.ReactionLike)
	require.NoError(t, err)
	assert.Equal(t, ReactionAdded, result.Status)
	assert.Equal(t, int64(1), result.Total)
	assert.Equal(t, int64(1), result.Breakdown[models.ReactionLike])

	// Different symbol replaces instead of stacking.
	result, err = interactor.ToggleReaction(ctx, reactor.ID, target, models.ReactionLove)
	require.NoError(t, err)
	assert.Equal(t, ReactionChanged, result.Status)
	assert.Equal(t, int64(1), result.Total)
	assert.Equal(t, int64(1), result.Breakdown[models.ReactionLove])
	assert.Zero(t, result.Breakdown[models.ReactionLike])

	// Same symbol again removes.
	result, err = interactor.ToggleReaction(ctx, reactor.ID, target, models.ReactionLove)
	require.NoError(t, err)
	assert.Equal(t, ReactionRemoved, result.Status)
	assert.Nil(t, result.Symbol)
	assert.Zero(t, result.Total)
}

func TestToggleReactionRejectsUnknownSymbol(t *testing.T) {
	interactor, _, _ := newTestInteractor(t)
	ctx := context.Background()

	author := seedAccount(t, interactor, "author")
	post := seedPost(t, interactor, author.ID, PostDraft{Content: "hello"})

	_, err := interactor.ToggleReaction(ctx, author.ID, models.PostTarget(post.ID), "sparkle")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestToggleReactionOnComment(t *testing.T) {
	interactor, _, _ := newTestInteractor(t)
	ctx := context.Background()

	author := seedAccount(t, interactor, "author")
	reactor := seedAccount(t, interactor, "reactor")
	post := seedPost(t, interactor, author.ID, PostDraft{Content: "hello"})
	comment, err := interactor.CreateComment(ctx, author.ID, post.ID, CommentDraft{Content: "first"})
	require.NoError(t, err)

	result, err := interactor.ToggleReaction(ctx, reactor.ID, models.CommentTarget(comment.ID), models.ReactionHaha)
	require.NoError(t, err)
	assert.Equal(t, ReactionAdded, result.Status)
	assert.Equal(t, int64(1), result.Total)

	// Post tallies stay untouched by comment reactions.
	fetched, err := interactor.GetPost(ctx, &reactor.ID, post.ID)
	require.NoError(t, err)
	assert.Zero(t, fetched.Metric.ReactionCount)
}

func TestToggleReactionDeadTarget(t *testing.T) {
	interactor, _, _ := newTestInteractor(t)
	ctx := context.Background()

	author := seedAccount(t, interactor, "author")
	reactor := seedAccount(t, interactor, "reactor")
	post := seedPost(t, interactor, author.ID, PostDraft{Content: "hello"})
	comment, err := interactor.CreateComment(ctx, author.ID, post.ID, CommentDraft{Content: "first"})
	require.NoError(t, err)

	require.NoError(t, interactor.DeleteComment(ctx, author.ID, comment.ID))
	_, err = interactor.ToggleReaction(ctx, reactor.ID, models.CommentTarget(comment.ID), models.ReactionLike)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, interactor.DeletePost(ctx, author.ID, post.ID))
	_, err = interactor.ToggleReaction(ctx, reactor.ID, models.PostTarget(post.ID), models.ReactionLike)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToggleReactionConcurrentSameUser(t *testing.T) {
	interactor, store, _ := newTestInteractor(t)
	ctx := context.Background()

	author := seedAccount(t, interactor, "author")
	reactor := seedAccount(t, interactor, "reactor")
	post := seedPost(t, interactor, author.ID, PostDraft{Content: "hello"})
	target := models.PostTarget(post.ID)

	// Hammer the same (user, target) pair; the pair's critical section
	// must keep the end state at zero or one row, never multiple.
	var wg sync.WaitGroup
	for n := 0; n < 16; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := interactor.ToggleReaction(ctx, reactor.ID, target, models.ReactionLike)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	total, breakdown, err := store.ReactionTally(ctx, target)
	require.NoError(t, err)
	assert.LessOrEqual(t, total, int64(1))
	if total == 1 {
		assert.Equal(t, int64(1), breakdown[models.ReactionLike])
	}
}
