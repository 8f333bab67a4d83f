package postgres

import (
	"context"
	"time"

	"github.com/treehollow/socialite/pkg/internal/models"
	"gorm.io/gorm"
)

func (s *Store) CreateNotification(ctx context.Context, notification *models.Notification) error {
	return s.db.WithContext(ctx).Create(notification).Error
}

func (s *Store) ListNotifications(ctx context.Context, accountID uint, take, offset int) ([]models.Notification, int64, error) {
	tx := s.db.WithContext(ctx).Model(&models.Notification{}).Where("account_id = ?", accountID)

	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var notifications []models.Notification
	if err := tx.
		Limit(take).Offset(offset).
		Order("created_at DESC, id DESC").
		Find(&notifications).Error; err != nil {
		return nil, 0, err
	}
	return notifications, count, nil
}

func (s *Store) MarkNotificationsRead(ctx context.Context, accountID uint, ids []uint) error {
	return s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("account_id = ? AND id IN ?", accountID, ids).
		Update("is_read", true).Error
}

func (s *Store) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("comment_id IN (?)", tx.Session(&gorm.Session{NewDB: true}).
				Model(&models.Comment{}).Select("id").
				Where("is_deleted = ? AND deleted_at < ?", true, cutoff)).
			Delete(&models.CommentReaction{}).Error; err != nil {
			return err
		}
		if err := tx.
			Where("post_id IN (?)", tx.Session(&gorm.Session{NewDB: true}).
				Model(&models.Post{}).Select("id").
				Where("is_deleted = ? AND deleted_at < ?", true, cutoff)).
			Delete(&models.PostReaction{}).Error; err != nil {
			return err
		}
		if err := tx.
			Where("is_deleted = ? AND deleted_at < ?", true, cutoff).
			Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.
			Where("is_deleted = ? AND deleted_at < ?", true, cutoff).
			Delete(&models.Post{}).Error
	})
}

func (s *Store) PurgeReadNotificationsBefore(ctx context.Context, cutoff time.Time) error {
	return s.db.WithContext(ctx).
		Where("is_read = ? AND created_at < ?", true, cutoff).
		Delete(&models.Notification{}).Error
}
