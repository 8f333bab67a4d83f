package services

import (
	"context"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/treehollow/socialite/pkg/internal/models"
)

func TestCreateCommentLevels(t *testing.T) {
	interactor, _, _ := newTestInteractor(t)
	ctx := context.Background()

	author := seedAccount(t, interactor, "author")
	post := seedPost(t, interactor, author.ID, PostDraft{Content: "hello"})

	root, err := interactor.CreateComment(ctx, author.ID, post.ID, CommentDraft{Content: "root"})
	require.NoError(t, err)
	assert.Equal(t, 1, root.Level)
	assert.Zero(t, root.Indent())

	reply, err := interactor.CreateComment(ctx, author.ID, post.ID, CommentDraft{
		Content:  "reply",
		ParentID: &root.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, reply.Level)
	assert.Equal(t, 1, reply.Indent())
}

func TestCreateCommentDepthBound(t *testing.T) {
	interactor, _, _ := newTestInteractor(t)
	ctx := context.Background()

	author := seedAccount(t, interactor, "author")
	post := seedPost(t, interactor, author.ID, PostDraft{Content: "hello"})

	var parentID *uint
	for depth := 1; depth <= models.MaxCommentDepth; depth++ {
		comment, err := interactor.CreateComment(ctx, author.ID, post.ID, CommentDraft{
			Content:  "down we go",
			ParentID: parentID,
		})
		require.NoError(t, err)
		assert.Equal(t, depth, comment.Level)
		parentID = &comment.ID
	}

	_, err := interactor.CreateComment(ctx, author.ID, post.ID, CommentDraft{
		Content:  "one too deep",
		ParentID: parentID,
	})
	assert.ErrorIs(t, err, ErrStateConflict)
}

func TestCreateCommentGuards(t *testing.T) {
	interactor, _, _ := newTestInteractor(t)
	ctx := context.Background()

	author := seedAccount(t, interactor, "author")
	post := seedPost(t, interactor, author.ID, PostDraft{Content: "hello"})
	other := seedPost(t, interactor, author.ID, PostDraft{Content: "elsewhere"})

	_, err := interactor.CreateComment(ctx, author.ID, post.ID, CommentDraft{Content: "   "})
	assert.ErrorIs(t, err, ErrValidation)

	stranger, err := interactor.CreateComment(ctx, author.ID, other.ID, CommentDraft{Content: "root"})
	require.NoError(t, err)
	_, err = interactor.CreateComment(ctx, author.ID, post.ID, CommentDraft{
		Content:  "wrong thread",
		ParentID: &stranger.ID,
	})
	assert.ErrorIs(t, err, ErrValidation)

	muted := seedPost(t, interactor, author.ID, PostDraft{
		Content:        "no comments",
		CommentEnabled: lo.ToPtr(false),
	})
	_, err = interactor.CreateComment(ctx, author.ID, muted.ID, CommentDraft{Content: "shh"})
	assert.ErrorIs(t, err, ErrCommentsDisabled)
}

func TestDeleteCommentPermissions(t *testing.T) {
	interactor, _, _ := newTestInteractor(t)
	ctx := context.Background()

	author := seedAccount(t, interactor, "author")
	commenter := seedAccount(t, interactor, "commenter")
	bystander := seedAccount(t, interactor, "bystander")
	post := seedPost(t, interactor, author.ID, PostDraft{Content: "hello"})

	comment, err := interactor.CreateComment(ctx, commenter.ID, post.ID, CommentDraft{Content: "mine"})
	require.NoError(t, err)

	assert.ErrorIs(t, interactor.DeleteComment(ctx, bystander.ID, comment.ID), ErrPermissionDenied)

	// The post author moderates comments under their own post.
	require.NoError(t, interactor.DeleteComment(ctx, author.ID, comment.ID))
	assert.ErrorIs(t, interactor.DeleteComment(ctx, author.ID, comment.ID), ErrNotFound)
}

func TestUpdateCommentAuthorOnly(t *testing.T) {
	interactor, _, _ := newTestInteractor(t)
	ctx := context.Background()

	author := seedAccount(t, interactor, "author")
	commenter := seedAccount(t, interactor, "commenter")
	post := seedPost(t, interactor, author.ID, PostDraft{Content: "hello"})

	comment, err := interactor.CreateComment(ctx, commenter.ID, post.ID, CommentDraft{Content: "mine"})
	require.NoError(t, err)

	// Even the post author cannot rewrite someone else's words.
	_, err = interactor.UpdateComment(ctx, author.ID, comment.ID, "rewritten")
	assert.ErrorIs(t, err, ErrPermissionDenied)

	updated, err := interactor.UpdateComment(ctx, commenter.ID, comment.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
	assert.NotNil(t, updated.EditedAt)
}

func TestListCommentTreeOrderAndPlaceholders(t *testing.T) {
	interactor, _, _ := newTestInteractor(t)
	ctx := context.Background()

	author := seedAccount(t, interactor, "author")
	post := seedPost(t, interactor, author.ID, PostDraft{Content: "hello"})

	first, err := interactor.CreateComment(ctx, author.ID, post.ID, CommentDraft{Content: "first"})
	require.NoError(t, err)
	second, err := interactor.CreateComment(ctx, author.ID, post.ID, CommentDraft{Content: "second"})
	require.NoError(t, err)
	childA, err := interactor.CreateComment(ctx, author.ID, post.ID, CommentDraft{Content: "a", ParentID: &first.ID})
	require.NoError(t, err)
	childB, err := interactor.CreateComment(ctx, author.ID, post.ID, CommentDraft{Content: "b", ParentID: &first.ID})
	require.NoError(t, err)
	grandchild, err := interactor.CreateComment(ctx, author.ID, post.ID, CommentDraft{Content: "deep", ParentID: &childA.ID})
	require.NoError(t, err)

	require.NoError(t, interactor.DeleteComment(ctx, author.ID, childA.ID))

	tree, err := interactor.ListCommentTree(ctx, post.ID)
	require.NoError(t, err)

	ids := lo.Map(tree, func(c models.Comment, _ int) uint { return c.ID })
	assert.Equal(t, []uint{first.ID, childA.ID, grandchild.ID, childB.ID, second.ID}, ids)

	// The deleted branch stays in place, blanked out.
	placeholder, found := lo.Find(tree, func(c models.Comment) bool { return c.ID == childA.ID })
	require.True(t, found)
	assert.True(t, placeholder.IsDeleted)
	assert.Empty(t, placeholder.Content)

	surviving, found := lo.Find(tree, func(c models.Comment) bool { return c.ID == grandchild.ID })
	require.True(t, found)
	assert.Equal(t, "deep", surviving.Content)
}

func TestCommentCountSkipsDeleted(t *testing.T) {
	interactor, _, _ := newTestInteractor(t)
	ctx := context.Background()

	author := seedAccount(t, interactor, "author")
	post := seedPost(t, interactor, author.ID, PostDraft{Content: "hello"})

	_, err := interactor.CreateComment(ctx, author.ID, post.ID, CommentDraft{Content: "kept"})
	require.NoError(t, err)
	gone, err := interactor.CreateComment(ctx, author.ID, post.ID, CommentDraft{Content: "gone"})
	require.NoError(t, err)
	require.NoError(t, interactor.DeleteComment(ctx, author.ID, gone.ID))

	fetched, err := interactor.GetPost(ctx, &author.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), fetched.Metric.CommentCount)
}
