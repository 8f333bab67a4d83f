package services

import (
	"context"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/treehollow/socialite/pkg/internal/models"
)

func TestFriendRequestLifecycle(t *testing.T) {
	interactor, _, _ := newTestInteractor(t)
	ctx := context.Background()

	alice := seedAccount(t, interactor, "alice")
	bob := seedAccount(t, interactor, "bob")

	request, err := interactor.SendFriendRequest(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FriendRequestPending, request.Status)

	status, err := interactor.FriendStatus(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FriendStatusPendingSent, status)
	status, err = interactor.FriendStatus(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FriendStatusPendingReceived, status)

	accepted, err := interactor.AcceptFriendRequest(ctx, bob.ID, request.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FriendRequestAccepted, accepted.Status)

	// The friendship is symmetric from the moment of acceptance.
	status, err = interactor.FriendStatus(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FriendStatusAccepted, status)
	status, err = interactor.FriendStatus(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FriendStatusAccepted, status)

	friends, err := interactor.ListFriends(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, bob.ID, friends[0].ID)
}

func TestSendFriendRequestGuards(t *testing.T) {
	interactor, _, _ := newTestInteractor(t)
	ctx := context.Background()

	alice := seedAccount(t, interactor, "alice")
	bob := seedAccount(t, interactor, "bob")

	_, err := interactor.SendFriendRequest(ctx, alice.ID, alice.ID)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = interactor.SendFriendRequest(ctx, alice.ID, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = interactor.SendFriendRequest(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	// Duplicate in either direction collides with the pending row.
	_, err = interactor.SendFriendRequest(ctx, alice.ID, bob.ID)
	assert.ErrorIs(t, err, ErrStateConflict)
	_, err = interactor.SendFriendRequest(ctx, bob.ID, alice.ID)
	assert.ErrorIs(t, err, ErrStateConflict)
}

func TestSendFriendRequestWhileFriends(t *testing.T) {
	interactor, _, _ := newTestInteractor(t)
	ctx := context.Background()

	alice := seedAccount(t, interactor, "alice")
	bob := seedAccount(t, interactor, "bob")
	makeFriends(t, interactor, alice.ID, bob.ID)

	_, err := interactor.SendFriendRequest(ctx, alice.ID, bob.ID)
	assert.ErrorIs(t, err, ErrStateConflict)
}

func TestRejectedRequestIsRecycled(t *testing.T) {
	interactor, store, _ := newTestInteractor(t)
	ctx := context.Background()

	alice := seedAccount(t, interactor, "alice")
	bob := seedAccount(t, interactor, "bob")

	first, err := interactor.SendFriendRequest(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.NoError(t, interactor.RejectFriendRequest(ctx, bob.ID, first.ID))

	// Resending after a rejection reuses the same row instead of piling
	// up history, even when the direction flips.
	second, err := interactor.SendFriendRequest(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, models.FriendRequestPending, second.Status)
	assert.Equal(t, bob.ID, second.FromID)
	assert.Equal(t, alice.ID, second.ToID)

	row, err := store.GetFriendRequestBetween(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, first.ID, row.ID)
}

func TestAcceptFriendRequestAddresseeOnly(t *testing.T) {
	interactor, _, _ := newTestInteractor(t)
	ctx := context.Background()

	alice := seedAccount(t, interactor, "alice")
	bob := seedAccount(t, interactor, "bob")
	mallory := seedAccount(t, interactor, "mallory")

	request, err := interactor.SendFriendRequest(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	// Neither the sender nor a third party may accept; the failure does
	// not reveal whether the row exists.
	_, err = interactor.AcceptFriendRequest(ctx, alice.ID, request.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = interactor.AcceptFriendRequest(ctx, mallory.ID, request.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = interactor.AcceptFriendRequest(ctx, bob.ID, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCancelFriendRequest(t *testing.T) {
	interactor, _, _ := newTestInteractor(t)
	ctx := context.Background()

	alice := seedAccount(t, interactor, "alice")
	bob := seedAccount(t, interactor, "bob")

	request, err := interactor.SendFriendRequest(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, interactor.CancelFriendRequest(ctx, bob.ID, request.ID), ErrNotFound)
	require.NoError(t, interactor.CancelFriendRequest(ctx, alice.ID, request.ID))

	status, err := interactor.FriendStatus(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FriendStatusNone, status)
}

func TestUnfriendResetsPair(t *testing.T) {
	interactor, _, _ := newTestInteractor(t)
	ctx := context.Background()

	alice := seedAccount(t, interactor, "alice")
	bob := seedAccount(t, interactor, "bob")
	makeFriends(t, interactor, alice.ID, bob.ID)

	require.NoError(t, interactor.Unfriend(ctx, alice.ID, bob.ID))

	status, err := interactor.FriendStatus(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FriendStatusNone, status)

	assert.ErrorIs(t, interactor.Unfriend(ctx, alice.ID, bob.ID), ErrNotFound)

	// A fresh request goes through after the reset.
	_, err = interactor.SendFriendRequest(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
}

func TestListPendingRequests(t *testing.T) {
	interactor, _, _ := newTestInteractor(t)
	ctx := context.Background()

	alice := seedAccount(t, interactor, "alice")
	bob := seedAccount(t, interactor, "bob")
	carol := seedAccount(t, interactor, "carol")

	_, err := interactor.SendFriendRequest(ctx, alice.ID, carol.ID)
	require.NoError(t, err)
	_, err = interactor.SendFriendRequest(ctx, bob.ID, carol.ID)
	require.NoError(t, err)

	pending, err := interactor.ListPendingRequests(ctx, carol.ID)
	require.NoError(t, err)
	senders := lo.Map(pending, func(r models.FriendRequest, _ int) uint { return r.FromID })
	assert.ElementsMatch(t, []uint{alice.ID, bob.ID}, senders)

	// The sender's inbox stays empty; pending means addressed to you.
	pending, err = interactor.ListPendingRequests(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
