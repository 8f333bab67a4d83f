package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	deletedRetention      = 30 * 24 * time.Hour
	notificationRetention = 90 * 24 * time.Hour
)

// DoAutoDatabaseCleanup drops soft-deleted rows past their retention
// window and prunes old read notifications. Wired into the cron
// scheduler at boot.
func (i *Interactor) DoAutoDatabaseCleanup(ctx context.Context) {
	now := time.Now()
	if err := i.store.PurgeDeletedBefore(ctx, now.Add(-deletedRetention)); err != nil {
		log.Error().Err(err).Msg("An error occurred when purging deleted content...")
	}
	if err := i.store.PurgeReadNotificationsBefore(ctx, now.Add(-notificationRetention)); err != nil {
		log.Error().Err(err).Msg("An error occurred when purging read notifications...")
	}
}
