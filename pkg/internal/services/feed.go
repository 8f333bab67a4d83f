package services

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"github.com/treehollow/socialite/pkg/internal/models"
	"github.com/treehollow/socialite/pkg/internal/storage"
)

const MaxFeedTake = 100

// ComposeFeed returns one reverse-chronological page of posts the viewer
// is allowed to see, with metrics attached. A nil viewer gets the public
// timeline.
func (i *Interactor) ComposeFeed(ctx context.Context, viewerID *uint, take, offset int) ([]*models.Post, int64, error) {
	return i.composePage(ctx, viewerID, nil, take, offset)
}

// ComposeProfileFeed narrows the feed to a single author, looked up by
// name. The visibility predicate stays the same, so strangers browsing a
// profile only see its public posts.
func (i *Interactor) ComposeProfileFeed(ctx context.Context, viewerID *uint, authorName string, take, offset int) ([]*models.Post, int64, error) {
	author, err := i.store.GetAccountByName(ctx, authorName)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: account %s", ErrNotFound, authorName)
	}
	return i.composePage(ctx, viewerID, &author.ID, take, offset)
}

func (i *Interactor) composePage(ctx context.Context, viewerID *uint, authorID *uint, take, offset int) ([]*models.Post, int64, error) {
	if take <= 0 {
		take = 10
	} else if take > MaxFeedTake {
		take = MaxFeedTake
	}
	if offset < 0 {
		offset = 0
	}

	query := storage.PostQuery{
		Viewer:   viewerID,
		AuthorID: authorID,
		Take:     take,
		Offset:   offset,
	}
	if viewerID != nil {
		friends, err := i.friendIDs(ctx, *viewerID)
		if err != nil {
			return nil, 0, err
		}
		query.FriendIDs = friends
	}

	count, err := i.store.CountPosts(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	posts, err := i.store.ListPosts(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	if err := i.attachPostMetrics(ctx, viewerID, posts); err != nil {
		return nil, 0, err
	}
	i.attachRepostSummaries(posts)
	return posts, count, nil
}

// attachPostMetrics resolves comment counts, reaction tallies and the
// viewer's own reaction for one page in three batched passes. Counts an
// author chose to hide are blanked for everyone but the author, though
// the viewer's own reaction still shows.
func (i *Interactor) attachPostMetrics(ctx context.Context, viewerID *uint, posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	ids := lo.Map(posts, func(post *models.Post, _ int) uint {
		return post.ID
	})

	commentCounts, err := i.store.BatchPostCommentCounts(ctx, ids)
	if err != nil {
		return err
	}
	tallies, err := i.store.BatchPostReactionTallies(ctx, ids)
	if err != nil {
		return err
	}
	var viewerReactions map[uint]models.ReactionSymbol
	if viewerID != nil {
		viewerReactions, err = i.store.BatchViewerPostReactions(ctx, *viewerID, ids)
		if err != nil {
			return err
		}
	}

	for _, post := range posts {
		metric := models.PostMetric{
			CommentCount: commentCounts[post.ID],
		}
		if breakdown, ok := tallies[post.ID]; ok {
			metric.ReactionBreakdown = breakdown
			for _, count := range breakdown {
				metric.ReactionCount += count
			}
		}
		if symbol, ok := viewerReactions[post.ID]; ok {
			reacted := symbol
			metric.ViewerReaction = &reacted
		}

		isAuthor := viewerID != nil && *viewerID == post.AccountID
		if post.HideReactionCount && !isAuthor {
			metric.ReactionCount = 0
			metric.ReactionBreakdown = nil
		}
		if post.HideCommentCount && !isAuthor {
			metric.CommentCount = 0
		}
		post.Metric = metric
	}
	return nil
}

// attachRepostSummaries collapses a loaded original into an embedded
// snippet. Visibility of the original is not re-checked at read time;
// if the original was deleted meanwhile the summary is simply absent.
func (i *Interactor) attachRepostSummaries(posts []*models.Post) {
	for _, post := range posts {
		if post.RepostTo == nil || post.RepostTo.IsDeleted {
			post.RepostTo = nil
			continue
		}
		original := post.RepostTo
		summary := &models.PostSummary{
			ID:        original.ID,
			Author:    original.Account,
			Snippet:   TruncateContentShort(original.Content),
			CreatedAt: original.CreatedAt,
		}
		if len(original.Attachments) > 0 {
			first := original.Attachments[0]
			summary.FirstAttachment = &first
		}
		post.RepostSummary = summary
		post.RepostTo = nil
	}
}
