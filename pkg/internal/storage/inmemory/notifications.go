package inmemory

import (
	"context"
	"sort"
	"time"

	"github.com/treehollow/socialite/pkg/internal/models"
)

func (s *Store) CreateNotification(ctx context.Context, notification *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stamp(&notification.BaseModel, s.allocate())
	clone := *notification
	s.notifications[notification.ID] = &clone
	return nil
}

func (s *Store) ListNotifications(ctx context.Context, accountID uint, take, offset int) ([]models.Notification, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]models.Notification, 0)
	for _, notification := range s.notifications {
		if notification.AccountID == accountID {
			matched = append(matched, *notification)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	count := int64(len(matched))
	if offset >= len(matched) {
		return []models.Notification{}, count, nil
	}
	end := len(matched)
	if take > 0 && offset+take < end {
		end = offset + take
	}
	return matched[offset:end], count, nil
}

func (s *Store) MarkNotificationsRead(ctx context.Context, accountID uint, ids []uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for _, id := range ids {
		if notification, ok := s.notifications[id]; ok && notification.AccountID == accountID {
			notification.IsRead = true
			notification.UpdatedAt = now
		}
	}
	return nil
}
