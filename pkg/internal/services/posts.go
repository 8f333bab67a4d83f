package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/treehollow/socialite/pkg/internal/fanout"
	"github.com/treehollow/socialite/pkg/internal/models"
)

type PostDraft struct {
	Content           string
	Attachments       []string
	Privacy           models.PostPrivacyLevel
	CommentEnabled    *bool
	HideReactionCount bool
	HideCommentCount  bool
	RepostID          *uint
}

func validPrivacy(privacy models.PostPrivacyLevel) bool {
	switch privacy {
	case models.PostPrivacyPublic, models.PostPrivacyFriends, models.PostPrivacyOnlyMe:
		return true
	default:
		return false
	}
}

func (i *Interactor) CreatePost(ctx context.Context, accountID uint, draft PostDraft) (models.Post, error) {
	var post models.Post

	draft.Content = strings.TrimSpace(draft.Content)
	if len(draft.Content) == 0 && len(draft.Attachments) == 0 && draft.RepostID == nil {
		return post, fmt.Errorf("%w: post cannot be empty", ErrValidation)
	}
	if !validPrivacy(draft.Privacy) {
		return post, fmt.Errorf("%w: unknown privacy level", ErrValidation)
	}

	if draft.RepostID != nil {
		// The original must still be live at share time; afterwards the
		// repost row stands on its own.
		if _, err := i.store.GetPost(ctx, *draft.RepostID); err != nil {
			return post, fmt.Errorf("%w: post #%d", ErrNotFound, *draft.RepostID)
		}
	}

	post = models.Post{
		AccountID:         accountID,
		Content:           draft.Content,
		Attachments:       draft.Attachments,
		Privacy:           draft.Privacy,
		CommentEnabled:    true,
		HideReactionCount: draft.HideReactionCount,
		HideCommentCount:  draft.HideCommentCount,
		RepostID:          draft.RepostID,
	}
	if draft.CommentEnabled != nil {
		post.CommentEnabled = *draft.CommentEnabled
	}
	if err := i.store.CreatePost(ctx, &post); err != nil {
		return post, err
	}

	if post.Privacy == models.PostPrivacyPublic {
		announced := post
		announced.Content = TruncateContent(post.Content)
		i.bus.Publish(fanout.FeedTopic, fanout.NewEvent(EventPostCreated, announced))
	}
	return post, nil
}

func (i *Interactor) EditPost(ctx context.Context, accountID uint, postID uint, draft PostDraft) (models.Post, error) {
	post, err := i.store.GetPost(ctx, postID)
	if err != nil {
		return post, fmt.Errorf("%w: post #%d", ErrNotFound, postID)
	}
	if post.AccountID != accountID {
		return post, fmt.Errorf("%w: not the post author", ErrPermissionDenied)
	}

	draft.Content = strings.TrimSpace(draft.Content)
	if len(draft.Content) == 0 && len(post.Attachments) == 0 && post.RepostID == nil {
		return post, fmt.Errorf("%w: post cannot be empty", ErrValidation)
	}
	if !validPrivacy(draft.Privacy) {
		return post, fmt.Errorf("%w: unknown privacy level", ErrValidation)
	}

	now := time.Now()
	post.Content = draft.Content
	post.Privacy = draft.Privacy
	post.HideReactionCount = draft.HideReactionCount
	post.HideCommentCount = draft.HideCommentCount
	if draft.CommentEnabled != nil {
		post.CommentEnabled = *draft.CommentEnabled
	}
	if draft.Attachments != nil {
		post.Attachments = draft.Attachments
	}
	post.EditedAt = &now
	if err := i.store.SavePost(ctx, &post); err != nil {
		return post, err
	}

	i.bus.Publish(fanout.PostTopic(post.ID), fanout.NewEvent(EventPostUpdated, post))
	return post, nil
}

// DeletePost soft-deletes: the row survives for audit and retention
// cleanup, but every read stops returning it immediately.
func (i *Interactor) DeletePost(ctx context.Context, accountID uint, postID uint) error {
	post, err := i.store.GetPost(ctx, postID)
	if err != nil {
		return fmt.Errorf("%w: post #%d", ErrNotFound, postID)
	}
	if post.AccountID != accountID {
		return fmt.Errorf("%w: not the post author", ErrPermissionDenied)
	}

	if err := i.store.SoftDeletePost(ctx, postID); err != nil {
		return err
	}

	i.bus.Publish(fanout.PostTopic(postID), fanout.NewEvent(EventPostDeleted, map[string]any{"id": postID}))
	return nil
}

// GetPost applies the same visibility predicate as the feed before
// handing back a single post with its read-time metrics.
func (i *Interactor) GetPost(ctx context.Context, viewerID *uint, postID uint) (models.Post, error) {
	post, err := i.store.GetPost(ctx, postID)
	if err != nil {
		return post, fmt.Errorf("%w: post #%d", ErrNotFound, postID)
	}

	visible := false
	switch {
	case viewerID != nil && *viewerID == post.AccountID:
		visible = true
	case post.Privacy == models.PostPrivacyPublic:
		visible = true
	case post.Privacy == models.PostPrivacyFriends && viewerID != nil:
		visible, err = i.store.HasFriendship(ctx, *viewerID, post.AccountID)
		if err != nil {
			return post, err
		}
	}
	if !visible {
		// Invisible and absent are indistinguishable on purpose.
		return post, fmt.Errorf("%w: post #%d", ErrNotFound, postID)
	}

	page := []*models.Post{&post}
	if err := i.attachPostMetrics(ctx, viewerID, page); err != nil {
		return post, err
	}
	i.attachRepostSummaries(page)
	return post, nil
}
