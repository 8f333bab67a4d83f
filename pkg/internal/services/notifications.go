package services

import (
	"context"

	"github.com/treehollow/socialite/pkg/internal/models"
)

func (i *Interactor) ListNotifications(ctx context.Context, accountID uint, take, offset int) ([]models.Notification, int64, error) {
	if take <= 0 {
		take = 10
	} else if take > MaxFeedTake {
		take = MaxFeedTake
	}
	if offset < 0 {
		offset = 0
	}
	return i.store.ListNotifications(ctx, accountID, take, offset)
}

// MarkNotificationsRead flips the given rows owned by the account; ids
// belonging to someone else are silently skipped by the store.
func (i *Interactor) MarkNotificationsRead(ctx context.Context, accountID uint, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return i.store.MarkNotificationsRead(ctx, accountID, ids)
}
