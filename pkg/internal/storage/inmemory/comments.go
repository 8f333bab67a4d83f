package inmemory

import (
	"context"
	"sort"
	"time"

	"github.com/treehollow/socialite/pkg/internal/models"
	"github.com/treehollow/socialite/pkg/internal/storage"
)

func (s *Store) CreateComment(ctx context.Context, comment *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stamp(&comment.BaseModel, s.allocate())
	if account, ok := s.accounts[comment.AccountID]; ok {
		comment.Account = *account
	}
	clone := *comment
	s.comments[comment.ID] = &clone
	return nil
}

func (s *Store) GetComment(ctx context.Context, id uint) (models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	comment, ok := s.comments[id]
	if !ok {
		return models.Comment{}, storage.ErrNotFound
	}
	return *comment, nil
}

func (s *Store) SaveComment(ctx context.Context, comment *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.comments[comment.ID]; !ok {
		return storage.ErrNotFound
	}
	comment.UpdatedAt = time.Now()
	clone := *comment
	s.comments[comment.ID] = &clone
	return nil
}

func (s *Store) SoftDeleteComment(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	comment, ok := s.comments[id]
	if !ok || comment.IsDeleted {
		return storage.ErrNotFound
	}
	now := time.Now()
	comment.IsDeleted = true
	comment.DeletedAt = &now
	comment.UpdatedAt = now
	return nil
}

func (s *Store) ListCommentsByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Comment, 0)
	for _, comment := range s.comments {
		if comment.PostID != postID {
			continue
		}
		clone := *comment
		if account, ok := s.accounts[comment.AccountID]; ok {
			clone.Account = *account
		}
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
