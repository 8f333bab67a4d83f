package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/treehollow/socialite/pkg/internal/fanout"
	"github.com/treehollow/socialite/pkg/internal/models"
)

type CommentDraft struct {
	Content     string
	ParentID    *uint
	Attachments []string
}

// CreateComment validates against the post's comment policy and the depth
// bound, then inserts under the post's critical section so sibling order
// is never racy.
func (i *Interactor) CreateComment(ctx context.Context, accountID uint, postID uint, draft CommentDraft) (models.Comment, error) {
	var comment models.Comment

	draft.Content = strings.TrimSpace(draft.Content)
	if len(draft.Content) == 0 {
		return comment, fmt.Errorf("%w: comment content cannot be empty", ErrValidation)
	}

	post, err := i.store.GetPost(ctx, postID)
	if err != nil {
		return comment, fmt.Errorf("%w: post #%d", ErrNotFound, postID)
	}
	if !post.CommentEnabled {
		return comment, ErrCommentsDisabled
	}

	unlock := i.locks.Lock(fmt.Sprintf("comments:post:%d", post.ID))

	level := 1
	if draft.ParentID != nil {
		parent, err := i.store.GetComment(ctx, *draft.ParentID)
		if err != nil {
			unlock()
			return comment, fmt.Errorf("%w: parent comment #%d", ErrNotFound, *draft.ParentID)
		}
		if parent.PostID != post.ID {
			unlock()
			return comment, ErrCrossPostParent
		}
		if parent.Level >= models.MaxCommentDepth {
			unlock()
			return comment, ErrMaxDepthExceeded
		}
		level = parent.Level + 1
	}

	comment = models.Comment{
		PostID:      post.ID,
		AccountID:   accountID,
		ParentID:    draft.ParentID,
		Level:       level,
		Content:     draft.Content,
		Attachments: draft.Attachments,
	}
	if err := i.store.CreateComment(ctx, &comment); err != nil {
		unlock()
		return comment, err
	}
	unlock()

	i.bus.Publish(fanout.PostTopic(post.ID), fanout.NewEvent(EventCommentCreated, CommentEvent{
		Comment: comment,
		Indent:  comment.Indent(),
	}))

	if post.AccountID != accountID {
		i.notify(ctx, post.AccountID, models.NotificationCommentReply, comment.ID)
	}

	return comment, nil
}

func (i *Interactor) UpdateComment(ctx context.Context, accountID uint, commentID uint, content string) (models.Comment, error) {
	var comment models.Comment

	content = strings.TrimSpace(content)
	if len(content) == 0 {
		return comment, fmt.Errorf("%w: comment content cannot be empty", ErrValidation)
	}

	comment, err := i.store.GetComment(ctx, commentID)
	if err != nil || comment.IsDeleted {
		return comment, fmt.Errorf("%w: comment #%d", ErrNotFound, commentID)
	}
	if comment.AccountID != accountID {
		return comment, fmt.Errorf("%w: not the comment author", ErrPermissionDenied)
	}

	now := time.Now()
	comment.Content = content
	comment.EditedAt = &now
	if err := i.store.SaveComment(ctx, &comment); err != nil {
		return comment, err
	}

	i.bus.Publish(fanout.PostTopic(comment.PostID), fanout.NewEvent(EventCommentUpdated, CommentEvent{
		Comment: comment,
		Indent:  comment.Indent(),
	}))
	return comment, nil
}

// DeleteComment soft-deletes on behalf of the comment author or the post
// author. Descendants stay addressable and render as placeholders.
func (i *Interactor) DeleteComment(ctx context.Context, accountID uint, commentID uint) error {
	comment, err := i.store.GetComment(ctx, commentID)
	if err != nil || comment.IsDeleted {
		return fmt.Errorf("%w: comment #%d", ErrNotFound, commentID)
	}

	if comment.AccountID != accountID {
		post, err := i.store.GetPost(ctx, comment.PostID)
		if err != nil || post.AccountID != accountID {
			return fmt.Errorf("%w: not the comment or post author", ErrPermissionDenied)
		}
	}

	if err := i.store.SoftDeleteComment(ctx, commentID); err != nil {
		return err
	}

	i.bus.Publish(fanout.PostTopic(comment.PostID), fanout.NewEvent(EventCommentDeleted, CommentDeletedEvent{
		ID:     comment.ID,
		PostID: comment.PostID,
	}))
	return nil
}

// ListCommentTree returns the post's whole forest flattened in a stable
// pre-order: each parent immediately followed by its subtree, siblings in
// creation order. The order is derived per read from (id, parent_id,
// created_at) alone, so inserts between reads cannot corrupt it. Deleted
// comments come back as placeholders with their content blanked.
func (i *Interactor) ListCommentTree(ctx context.Context, postID uint) ([]models.Comment, error) {
	if _, err := i.store.GetPost(ctx, postID); err != nil {
		return nil, fmt.Errorf("%w: post #%d", ErrNotFound, postID)
	}

	rows, err := i.store.ListCommentsByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	// Arena indexed by id with a parent adjacency map, rebuilt per read
	// from one bulk fetch. Rows arrive ordered by (created_at, id) so the
	// children slices inherit sibling order for free.
	byID := make(map[uint]*models.Comment, len(rows))
	children := make(map[uint][]*models.Comment, len(rows))
	roots := make([]*models.Comment, 0)
	for _, row := range rows {
		byID[row.ID] = row
	}
	for _, row := range rows {
		if row.ParentID == nil {
			roots = append(roots, row)
			continue
		}
		if _, ok := byID[*row.ParentID]; !ok {
			// Parent hard-purged by retention; keep the subtree reachable.
			roots = append(roots, row)
			continue
		}
		children[*row.ParentID] = append(children[*row.ParentID], row)
	}

	out := make([]models.Comment, 0, len(rows))
	var walk func(node *models.Comment)
	walk = func(node *models.Comment) {
		flattened := *node
		if flattened.IsDeleted {
			flattened.Content = ""
			flattened.Attachments = nil
		}
		out = append(out, flattened)
		for _, child := range children[node.ID] {
			walk(child)
		}
	}
	for _, root := range roots {
		walk(root)
	}
	return out, nil
}
