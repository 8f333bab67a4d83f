package postgres

import (
	"context"
	"time"

	"github.com/treehollow/socialite/pkg/internal/models"
	"github.com/treehollow/socialite/pkg/internal/storage"
)

func (s *Store) CreateComment(ctx context.Context, comment *models.Comment) error {
	return s.db.WithContext(ctx).Create(comment).Error
}

func (s *Store) GetComment(ctx context.Context, id uint) (models.Comment, error) {
	var comment models.Comment
	if err := s.db.WithContext(ctx).
		Preload("Account").
		Where("id = ?", id).
		First(&comment).Error; err != nil {
		return comment, translate(err)
	}
	return comment, nil
}

func (s *Store) SaveComment(ctx context.Context, comment *models.Comment) error {
	return s.db.WithContext(ctx).Save(comment).Error
}

func (s *Store) SoftDeleteComment(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Model(&models.Comment{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]any{"is_deleted": true, "deleted_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) ListCommentsByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	if err := s.db.WithContext(ctx).
		Preload("Account").
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}
