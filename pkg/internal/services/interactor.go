package services

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/treehollow/socialite/pkg/internal/fanout"
	"github.com/treehollow/socialite/pkg/internal/models"
	"github.com/treehollow/socialite/pkg/internal/storage"
)

// Notifier delivers out-of-band notices (in-app rows, email, push). Its
// failures are logged and swallowed; a mutation never rolls back because a
// notification could not be sent.
type Notifier interface {
	Notify(ctx context.Context, accountID uint, kind string, referenceID uint) error
}

// Interactor is the facade every external handler talks to. It validates
// input, runs the store mutation under the owning entity's critical
// section, and publishes the resulting event once the lock is released.
type Interactor struct {
	store    storage.Store
	bus      *fanout.Bus
	notifier Notifier
	locks    *keyedMutex
}

func NewInteractor(store storage.Store, bus *fanout.Bus, notifier Notifier) *Interactor {
	interactor := &Interactor{
		store: store,
		bus:   bus,
		locks: newKeyedMutex(),
	}
	if notifier == nil {
		notifier = &storeNotifier{store: store, bus: bus}
	}
	interactor.notifier = notifier
	return interactor
}

func (i *Interactor) notify(ctx context.Context, accountID uint, kind string, referenceID uint) {
	if err := i.notifier.Notify(ctx, accountID, kind, referenceID); err != nil {
		log.Error().Err(err).Uint("account", accountID).Str("kind", kind).
			Msg("An error occurred when notifying user...")
	}
}

// storeNotifier is the default Notifier: it files a notification row and
// pushes it onto the recipient's live topic.
type storeNotifier struct {
	store storage.Store
	bus   *fanout.Bus
}

func (n *storeNotifier) Notify(ctx context.Context, accountID uint, kind string, referenceID uint) error {
	notification := models.Notification{
		AccountID:   accountID,
		Type:        kind,
		ReferenceID: referenceID,
	}
	if err := n.store.CreateNotification(ctx, &notification); err != nil {
		return err
	}

	n.bus.Publish(fanout.UserTopic(accountID), fanout.NewEvent(EventNotification, notification))
	return nil
}
