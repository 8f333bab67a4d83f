package services

import (
	"context"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/eko/gocache/lib/v4/store"
	localCache "github.com/treehollow/socialite/pkg/internal/cache"
	"github.com/treehollow/socialite/pkg/internal/fanout"
	"github.com/treehollow/socialite/pkg/internal/models"
)

func friendPairKey(a, b uint) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("friends:%d:%d", a, b)
}

// SendRequest drives the none/rejected -> pending transition. A rejected
// row is recycled in place with the sender reset to the calling user, so
// reject/resend cycles never insert new rows.
func (i *Interactor) SendFriendRequest(ctx context.Context, fromID, toID uint) (models.FriendRequest, error) {
	var request models.FriendRequest
	if fromID == toID {
		return request, ErrSelfRequest
	}
	if _, err := i.store.GetAccount(ctx, toID); err != nil {
		return request, fmt.Errorf("%w: account #%d", ErrNotFound, toID)
	}

	unlock := i.locks.Lock(friendPairKey(fromID, toID))

	if friends, err := i.store.HasFriendship(ctx, fromID, toID); err != nil {
		unlock()
		return request, err
	} else if friends {
		unlock()
		return request, ErrAlreadyFriends
	}

	existing, err := i.store.GetFriendRequestBetween(ctx, fromID, toID)
	if err != nil {
		unlock()
		return request, err
	}
	if existing != nil {
		switch existing.Status {
		case models.FriendRequestPending:
			unlock()
			return request, ErrAlreadyPending
		case models.FriendRequestAccepted:
			unlock()
			return request, ErrAlreadyFriends
		default:
			existing.FromID = fromID
			existing.ToID = toID
			existing.Status = models.FriendRequestPending
			if err := i.store.SaveFriendRequest(ctx, existing); err != nil {
				unlock()
				return request, err
			}
			unlock()
			i.notify(ctx, toID, models.NotificationFriendRequest, existing.ID)
			return *existing, nil
		}
	}

	request = models.FriendRequest{
		FromID: fromID,
		ToID:   toID,
		Status: models.FriendRequestPending,
	}
	if err := i.store.CreateFriendRequest(ctx, &request); err != nil {
		unlock()
		return request, err
	}
	unlock()

	i.notify(ctx, toID, models.NotificationFriendRequest, request.ID)
	return request, nil
}

// AcceptFriendRequest may only be called by the addressee of a pending
// request; the status flip and both symmetric edges land in one atomic
// store step.
func (i *Interactor) AcceptFriendRequest(ctx context.Context, accountID uint, requestID uint) (models.FriendRequest, error) {
	unlock := i.locks.Lock(fmt.Sprintf("friend-request:%d", requestID))

	request, err := i.store.GetFriendRequest(ctx, requestID)
	if err != nil || request.ToID != accountID || request.Status != models.FriendRequestPending {
		unlock()
		return request, ErrNotFoundOrForbidden
	}

	if err := i.store.AcceptFriendRequest(ctx, &request); err != nil {
		unlock()
		return request, err
	}
	unlock()

	i.invalidateFriendsCache(ctx, request.FromID, request.ToID)
	i.bus.Publish(fanout.UserTopic(request.FromID), fanout.NewEvent(EventFriendAccepted, request))
	i.notify(ctx, request.FromID, models.NotificationFriendAccepted, request.ID)
	return request, nil
}

func (i *Interactor) RejectFriendRequest(ctx context.Context, accountID uint, requestID uint) error {
	unlock := i.locks.Lock(fmt.Sprintf("friend-request:%d", requestID))
	defer unlock()

	request, err := i.store.GetFriendRequest(ctx, requestID)
	if err != nil || request.ToID != accountID || request.Status != models.FriendRequestPending {
		return ErrNotFoundOrForbidden
	}

	// The row survives as rejected so a later resend can recycle it.
	request.Status = models.FriendRequestRejected
	return i.store.SaveFriendRequest(ctx, &request)
}

func (i *Interactor) CancelFriendRequest(ctx context.Context, accountID uint, requestID uint) error {
	unlock := i.locks.Lock(fmt.Sprintf("friend-request:%d", requestID))
	defer unlock()

	request, err := i.store.GetFriendRequest(ctx, requestID)
	if err != nil || request.FromID != accountID || request.Status != models.FriendRequestPending {
		return ErrNotFoundOrForbidden
	}
	return i.store.DeleteFriendRequest(ctx, requestID)
}

// Unfriend removes both edges and the accepted request row, so the next
// SendFriendRequest between the pair starts from a clean slate.
func (i *Interactor) Unfriend(ctx context.Context, accountID, otherID uint) error {
	unlock := i.locks.Lock(friendPairKey(accountID, otherID))

	friends, err := i.store.HasFriendship(ctx, accountID, otherID)
	if err != nil {
		unlock()
		return err
	}
	if !friends {
		unlock()
		return fmt.Errorf("%w: not friends with account #%d", ErrNotFound, otherID)
	}

	if err := i.store.Unfriend(ctx, accountID, otherID); err != nil {
		unlock()
		return err
	}
	unlock()

	i.invalidateFriendsCache(ctx, accountID, otherID)
	return nil
}

// FriendStatus is a pure read over the request rows plus the edge check.
func (i *Interactor) FriendStatus(ctx context.Context, viewerID, targetID uint) (models.FriendStatus, error) {
	if viewerID == targetID {
		return models.FriendStatusSelf, nil
	}

	if friends, err := i.store.HasFriendship(ctx, viewerID, targetID); err != nil {
		return models.FriendStatusNone, err
	} else if friends {
		return models.FriendStatusAccepted, nil
	}

	request, err := i.store.GetFriendRequestBetween(ctx, viewerID, targetID)
	if err != nil {
		return models.FriendStatusNone, err
	}
	if request != nil && request.Status == models.FriendRequestPending {
		if request.FromID == viewerID {
			return models.FriendStatusPendingSent, nil
		}
		return models.FriendStatusPendingReceived, nil
	}
	return models.FriendStatusNone, nil
}

func (i *Interactor) ListFriends(ctx context.Context, accountID uint) ([]models.Account, error) {
	return i.store.ListFriends(ctx, accountID)
}

func (i *Interactor) ListPendingRequests(ctx context.Context, accountID uint) ([]models.FriendRequest, error) {
	return i.store.ListPendingRequests(ctx, accountID)
}

// friendIDs reads the viewer's friend set through the local cache; feed
// composition hits this on every page, friendship mutations invalidate it.
func (i *Interactor) friendIDs(ctx context.Context, accountID uint) ([]uint, error) {
	if localCache.S == nil {
		return i.store.ListFriendIDs(ctx, accountID)
	}

	cacheManager := cache.New[any](localCache.S)
	marshal := marshaler.New(cacheManager)
	cacheKey := fmt.Sprintf("friend-ids#%d", accountID)

	if cached, err := marshal.Get(ctx, cacheKey, new([]uint)); err == nil {
		return *cached.(*[]uint), nil
	}

	ids, err := i.store.ListFriendIDs(ctx, accountID)
	if err != nil {
		return nil, err
	}

	_ = marshal.Set(
		ctx,
		cacheKey,
		ids,
		store.WithExpiration(5*time.Minute),
		store.WithTags([]string{fmt.Sprintf("friends#%d", accountID)}),
	)
	return ids, nil
}

func (i *Interactor) invalidateFriendsCache(ctx context.Context, accountIDs ...uint) {
	if localCache.S == nil {
		return
	}

	cacheManager := cache.New[any](localCache.S)
	marshal := marshaler.New(cacheManager)
	for _, id := range accountIDs {
		_ = marshal.Invalidate(ctx, store.WithInvalidateTags([]string{fmt.Sprintf("friends#%d", id)}))
	}
}
