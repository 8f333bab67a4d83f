package inmemory

import (
	"context"
	"sort"
	"time"

	"github.com/samber/lo"
	"github.com/treehollow/socialite/pkg/internal/models"
	"github.com/treehollow/socialite/pkg/internal/storage"
)

func postVisible(post *models.Post, q storage.PostQuery) bool {
	if post.IsDeleted {
		return false
	}
	if q.AuthorID != nil && post.AccountID != *q.AuthorID {
		return false
	}
	if q.Viewer != nil && post.AccountID == *q.Viewer {
		return true
	}
	switch post.Privacy {
	case models.PostPrivacyPublic:
		return true
	case models.PostPrivacyFriends:
		return q.Viewer != nil && lo.Contains(q.FriendIDs, post.AccountID)
	default:
		return false
	}
}

func (s *Store) visiblePosts(q storage.PostQuery) []*models.Post {
	matched := make([]*models.Post, 0)
	for _, post := range s.posts {
		if postVisible(post, q) {
			matched = append(matched, post)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched
}

func (s *Store) CreatePost(ctx context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stamp(&post.BaseModel, s.allocate())
	if account, ok := s.accounts[post.AccountID]; ok {
		post.Account = *account
	}
	clone := *post
	s.posts[post.ID] = &clone
	return nil
}

func (s *Store) GetPost(ctx context.Context, id uint) (models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, ok := s.posts[id]
	if !ok || post.IsDeleted {
		return models.Post{}, storage.ErrNotFound
	}
	out := *post
	if account, ok := s.accounts[post.AccountID]; ok {
		out.Account = *account
	}
	if post.RepostID != nil {
		if original, ok := s.posts[*post.RepostID]; ok {
			cloned := *original
			if author, ok := s.accounts[original.AccountID]; ok {
				cloned.Account = *author
			}
			out.RepostTo = &cloned
		}
	}
	return out, nil
}

func (s *Store) SavePost(ctx context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[post.ID]; !ok {
		return storage.ErrNotFound
	}
	post.UpdatedAt = time.Now()
	clone := *post
	s.posts[post.ID] = &clone
	return nil
}

func (s *Store) SoftDeletePost(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[id]
	if !ok || post.IsDeleted {
		return storage.ErrNotFound
	}
	now := time.Now()
	post.IsDeleted = true
	post.DeletedAt = &now
	post.UpdatedAt = now
	return nil
}

func (s *Store) ListPosts(ctx context.Context, q storage.PostQuery) ([]*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := s.visiblePosts(q)

	start := q.Offset
	if start < 0 {
		start = 0
	}
	if start >= len(matched) {
		return []*models.Post{}, nil
	}
	end := len(matched)
	if q.Take > 0 && start+q.Take < end {
		end = start + q.Take
	}

	out := make([]*models.Post, 0, end-start)
	for _, post := range matched[start:end] {
		clone := *post
		if account, ok := s.accounts[post.AccountID]; ok {
			clone.Account = *account
		}
		if post.RepostID != nil {
			if original, ok := s.posts[*post.RepostID]; ok {
				cloned := *original
				if author, ok := s.accounts[original.AccountID]; ok {
					cloned.Account = *author
				}
				clone.RepostTo = &cloned
			}
		}
		out = append(out, &clone)
	}
	return out, nil
}

func (s *Store) CountPosts(ctx context.Context, q storage.PostQuery) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.visiblePosts(q))), nil
}

func (s *Store) CountPostComments(ctx context.Context, postID uint) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, comment := range s.comments {
		if comment.PostID == postID && !comment.IsDeleted {
			count++
		}
	}
	return count, nil
}

func (s *Store) BatchPostCommentCounts(ctx context.Context, postIDs []uint) (map[uint]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[uint]struct{}, len(postIDs))
	for _, id := range postIDs {
		wanted[id] = struct{}{}
	}

	counts := make(map[uint]int64, len(postIDs))
	for _, comment := range s.comments {
		if comment.IsDeleted {
			continue
		}
		if _, ok := wanted[comment.PostID]; ok {
			counts[comment.PostID]++
		}
	}
	return counts, nil
}

func (s *Store) BatchPostReactionTallies(ctx context.Context, postIDs []uint) (map[uint]map[models.ReactionSymbol]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tallies := make(map[uint]map[models.ReactionSymbol]int64, len(postIDs))
	for _, id := range postIDs {
		rows := s.reactions[models.PostTarget(id)]
		if len(rows) == 0 {
			continue
		}
		breakdown := make(map[models.ReactionSymbol]int64)
		for _, symbol := range rows {
			breakdown[symbol]++
		}
		tallies[id] = breakdown
	}
	return tallies, nil
}

func (s *Store) BatchViewerPostReactions(ctx context.Context, viewer uint, postIDs []uint) (map[uint]models.ReactionSymbol, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[uint]models.ReactionSymbol)
	for _, id := range postIDs {
		if symbol, ok := s.reactions[models.PostTarget(id)][viewer]; ok {
			out[id] = symbol
		}
	}
	return out, nil
}
