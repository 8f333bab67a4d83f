package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/treehollow/socialite/pkg/internal/fanout"
	"github.com/treehollow/socialite/pkg/internal/models"
	"github.com/treehollow/socialite/pkg/internal/storage/inmemory"
)

func newTestInteractor(t *testing.T) (*Interactor, *inmemory.Store, *fanout.Bus) {
	t.Helper()
	store := inmemory.New()
	bus := fanout.NewBus()
	return NewInteractor(store, bus, nil), store, bus
}

func seedAccount(t *testing.T, interactor *Interactor, name string) models.Account {
	t.Helper()
	account, err := interactor.EnsureAccount(context.Background(), name, name, "")
	require.NoError(t, err)
	return account
}

func seedPost(t *testing.T, interactor *Interactor, authorID uint, draft PostDraft) models.Post {
	t.Helper()
	if len(draft.Content) == 0 {
		draft.Content = fmt.Sprintf("post by #%d", authorID)
	}
	post, err := interactor.CreatePost(context.Background(), authorID, draft)
	require.NoError(t, err)
	return post
}

func makeFriends(t *testing.T, interactor *Interactor, a, b uint) {
	t.Helper()
	request, err := interactor.SendFriendRequest(context.Background(), a, b)
	require.NoError(t, err)
	_, err = interactor.AcceptFriendRequest(context.Background(), b, request.ID)
	require.NoError(t, err)
}
