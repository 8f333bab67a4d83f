package inmemory

import (
	"context"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/treehollow/socialite/pkg/internal/models"
	"github.com/treehollow/socialite/pkg/internal/storage"
)

func seedStoreAccount(t *testing.T, s *Store, name string) models.Account {
	t.Helper()
	account := models.Account{Name: name, Nick: name}
	require.NoError(t, s.CreateAccount(context.Background(), &account))
	return account
}

func TestAccountRoundTrip(t *testing.T) {
	s := New()
	ctx := context.Background()

	created := seedStoreAccount(t, s, "alice")
	require.NotZero(t, created.ID)

	byID, err := s.GetAccount(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Name)

	byName, err := s.GetAccountByName(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	_, err = s.GetAccount(ctx, 999)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	byID.Nick = "Alice A."
	require.NoError(t, s.SaveAccount(ctx, &byID))
	reloaded, err := s.GetAccount(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice A.", reloaded.Nick)
}

func TestListAccountsSampleExcludes(t *testing.T) {
	s := New()
	ctx := context.Background()

	a := seedStoreAccount(t, s, "a")
	b := seedStoreAccount(t, s, "b")
	c := seedStoreAccount(t, s, "c")

	sample, err := s.ListAccountsSample(ctx, []uint{a.ID}, 10)
	require.NoError(t, err)
	ids := lo.Map(sample, func(acc models.Account, _ int) uint { return acc.ID })
	assert.ElementsMatch(t, []uint{b.ID, c.ID}, ids)

	sample, err = s.ListAccountsSample(ctx, nil, 2)
	require.NoError(t, err)
	assert.Len(t, sample, 2)
}

func TestSoftDeletedPostHiddenButCommentsKept(t *testing.T) {
	s := New()
	ctx := context.Background()

	author := seedStoreAccount(t, s, "author")
	post := models.Post{AccountID: author.ID, Content: "hello"}
	require.NoError(t, s.CreatePost(ctx, &post))

	comment := models.Comment{PostID: post.ID, AccountID: author.ID, Level: 1, Content: "hi"}
	require.NoError(t, s.CreateComment(ctx, &comment))

	require.NoError(t, s.SoftDeletePost(ctx, post.ID))
	_, err := s.GetPost(ctx, post.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.ErrorIs(t, s.SoftDeletePost(ctx, post.ID), storage.ErrNotFound)

	// The comment row survives until retention purges it.
	kept, err := s.GetComment(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "hi", kept.Content)
}

func TestPurgeDeletedBefore(t *testing.T) {
	s := New()
	ctx := context.Background()

	author := seedStoreAccount(t, s, "author")
	post := models.Post{AccountID: author.ID, Content: "old"}
	require.NoError(t, s.CreatePost(ctx, &post))
	require.NoError(t, s.UpsertReaction(ctx, author.ID, models.PostTarget(post.ID), models.ReactionLike))
	require.NoError(t, s.SoftDeletePost(ctx, post.ID))

	// Not yet past the cutoff.
	require.NoError(t, s.PurgeDeletedBefore(ctx, time.Now().Add(-time.Hour)))
	s.mu.RLock()
	_, stillThere := s.posts[post.ID]
	s.mu.RUnlock()
	assert.True(t, stillThere)

	require.NoError(t, s.PurgeDeletedBefore(ctx, time.Now().Add(time.Hour)))
	s.mu.RLock()
	_, stillThere = s.posts[post.ID]
	reactions := len(s.reactions[models.PostTarget(post.ID)])
	s.mu.RUnlock()
	assert.False(t, stillThere)
	assert.Zero(t, reactions)
}

func TestNotificationsFlow(t *testing.T) {
	s := New()
	ctx := context.Background()

	owner := seedStoreAccount(t, s, "owner")
	other := seedStoreAccount(t, s, "other")

	for n := 0; n < 3; n++ {
		notification := models.Notification{AccountID: owner.ID, Type: models.NotificationFriendRequest, ReferenceID: uint(n)}
		require.NoError(t, s.CreateNotification(ctx, &notification))
	}
	foreign := models.Notification{AccountID: other.ID, Type: models.NotificationReaction}
	require.NoError(t, s.CreateNotification(ctx, &foreign))

	items, count, err := s.ListNotifications(ctx, owner.ID, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.Len(t, items, 2)

	ids := lo.Map(items, func(n models.Notification, _ int) uint { return n.ID })
	require.NoError(t, s.MarkNotificationsRead(ctx, owner.ID, ids))
	// Marking someone else's row is a silent no-op.
	require.NoError(t, s.MarkNotificationsRead(ctx, owner.ID, []uint{foreign.ID}))

	reloaded, _, err := s.ListNotifications(ctx, other.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, reloaded, 1)
	assert.False(t, reloaded[0].IsRead)
}

func TestListFriendIDsOfMany(t *testing.T) {
	s := New()
	ctx := context.Background()

	a := seedStoreAccount(t, s, "a")
	b := seedStoreAccount(t, s, "b")
	c := seedStoreAccount(t, s, "c")

	request := models.FriendRequest{FromID: a.ID, ToID: b.ID, Status: models.FriendRequestPending}
	require.NoError(t, s.CreateFriendRequest(ctx, &request))
	require.NoError(t, s.AcceptFriendRequest(ctx, &request))

	request = models.FriendRequest{FromID: b.ID, ToID: c.ID, Status: models.FriendRequestPending}
	require.NoError(t, s.CreateFriendRequest(ctx, &request))
	require.NoError(t, s.AcceptFriendRequest(ctx, &request))

	expanded, err := s.ListFriendIDsOfMany(ctx, []uint{a.ID, b.ID})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{b.ID}, expanded[a.ID])
	assert.ElementsMatch(t, []uint{a.ID, c.ID}, expanded[b.ID])
}
