package services

import (
	"context"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/treehollow/socialite/pkg/internal/models"
)

func TestSuggestFriendsRankedByMutuals(t *testing.T) {
	interactor, _, _ := newTestInteractor(t)
	ctx := context.Background()

	me := seedAccount(t, interactor, "me")
	pal1 := seedAccount(t, interactor, "pal1")
	pal2 := seedAccount(t, interactor, "pal2")
	twoMutuals := seedAccount(t, interactor, "two-mutuals")
	oneMutual := seedAccount(t, interactor, "one-mutual")

	makeFriends(t, interactor, me.ID, pal1.ID)
	makeFriends(t, interactor, me.ID, pal2.ID)
	makeFriends(t, interactor, pal1.ID, twoMutuals.ID)
	makeFriends(t, interactor, pal2.ID, twoMutuals.ID)
	makeFriends(t, interactor, pal1.ID, oneMutual.ID)

	suggestions, err := interactor.SuggestFriends(ctx, me.ID, 2)
	require.NoError(t, err)
	require.Len(t, suggestions, 2)
	assert.Equal(t, twoMutuals.ID, suggestions[0].Account.ID)
	assert.Equal(t, int64(2), suggestions[0].MutualCount)
	assert.Equal(t, oneMutual.ID, suggestions[1].Account.ID)
	assert.Equal(t, int64(1), suggestions[1].MutualCount)
}

func TestSuggestFriendsExcludesPendingAndFriends(t *testing.T) {
	interactor, _, _ := newTestInteractor(t)
	ctx := context.Background()

	me := seedAccount(t, interactor, "me")
	pal := seedAccount(t, interactor, "pal")
	invited := seedAccount(t, interactor, "invited")
	inviter := seedAccount(t, interactor, "inviter")

	makeFriends(t, interactor, me.ID, pal.ID)
	makeFriends(t, interactor, pal.ID, invited.ID)
	makeFriends(t, interactor, pal.ID, inviter.ID)

	_, err := interactor.SendFriendRequest(ctx, me.ID, invited.ID)
	require.NoError(t, err)
	_, err = interactor.SendFriendRequest(ctx, inviter.ID, me.ID)
	require.NoError(t, err)

	suggestions, err := interactor.SuggestFriends(ctx, me.ID, 10)
	require.NoError(t, err)

	ids := lo.Map(suggestions, func(s models.FriendSuggestion, _ int) uint { return s.Account.ID })
	assert.NotContains(t, ids, me.ID)
	assert.NotContains(t, ids, pal.ID)
	assert.NotContains(t, ids, invited.ID)
	assert.NotContains(t, ids, inviter.ID)
}

func TestSuggestFriendsPadsWithStrangers(t *testing.T) {
	interactor, _, _ := newTestInteractor(t)
	ctx := context.Background()

	me := seedAccount(t, interactor, "me")
	for _, name := range []string{"s1", "s2", "s3"} {
		seedAccount(t, interactor, name)
	}

	// No friends at all: the list is filled with sampled strangers.
	suggestions, err := interactor.SuggestFriends(ctx, me.ID, 10)
	require.NoError(t, err)
	assert.Len(t, suggestions, 3)
	for _, suggestion := range suggestions {
		assert.Zero(t, suggestion.MutualCount)
		assert.NotEqual(t, me.ID, suggestion.Account.ID)
	}
}
