package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/treehollow/socialite/pkg/internal/models"
	"github.com/treehollow/socialite/pkg/internal/storage"
)

// EnsureAccount mirrors an authenticated identity into the local account
// table, creating the row on first sight and refreshing the mutable
// profile fields afterwards.
func (i *Interactor) EnsureAccount(ctx context.Context, name, nick, avatar string) (models.Account, error) {
	account, err := i.store.GetAccountByName(ctx, name)
	if err == nil {
		if account.Nick != nick || account.Avatar != avatar {
			account.Nick = nick
			account.Avatar = avatar
			if err := i.store.SaveAccount(ctx, &account); err != nil {
				return account, err
			}
		}
		return account, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return account, err
	}

	account = models.Account{
		Name:   name,
		Nick:   nick,
		Avatar: avatar,
	}
	if err := i.store.CreateAccount(ctx, &account); err != nil {
		return account, err
	}
	return account, nil
}

func (i *Interactor) GetAccount(ctx context.Context, id uint) (models.Account, error) {
	account, err := i.store.GetAccount(ctx, id)
	if err != nil {
		return account, fmt.Errorf("%w: account #%d", ErrNotFound, id)
	}
	return account, nil
}

func (i *Interactor) GetAccountByName(ctx context.Context, name string) (models.Account, error) {
	account, err := i.store.GetAccountByName(ctx, name)
	if err != nil {
		return account, fmt.Errorf("%w: account %s", ErrNotFound, name)
	}
	return account, nil
}
