package services

import (
	"context"
	"sort"

	"github.com/samber/lo"
	"github.com/treehollow/socialite/pkg/internal/models"
)

const DefaultSuggestionLimit = 10

// SuggestFriends ranks friends-of-friends by mutual-friend count, then
// pads with uniformly sampled strangers at mutual count zero so the list
// is never degenerate, even for a user with no friends at all.
func (i *Interactor) SuggestFriends(ctx context.Context, accountID uint, limit int) ([]models.FriendSuggestion, error) {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}

	friendIDs, err := i.store.ListFriendIDs(ctx, accountID)
	if err != nil {
		return nil, err
	}
	pending, err := i.store.ListPendingInvolving(ctx, accountID)
	if err != nil {
		return nil, err
	}

	excluded := map[uint]struct{}{accountID: {}}
	for _, id := range friendIDs {
		excluded[id] = struct{}{}
	}
	for _, request := range pending {
		excluded[request.FromID] = struct{}{}
		excluded[request.ToID] = struct{}{}
	}

	expanded, err := i.store.ListFriendIDsOfMany(ctx, friendIDs)
	if err != nil {
		return nil, err
	}

	mutuals := make(map[uint]int64)
	for _, candidates := range expanded {
		for _, candidate := range candidates {
			if _, skip := excluded[candidate]; skip {
				continue
			}
			mutuals[candidate]++
		}
	}

	ranked := lo.Keys(mutuals)
	sort.Slice(ranked, func(a, b int) bool {
		if mutuals[ranked[a]] == mutuals[ranked[b]] {
			return ranked[a] < ranked[b]
		}
		return mutuals[ranked[a]] > mutuals[ranked[b]]
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	suggestions := make([]models.FriendSuggestion, 0, limit)
	for _, candidate := range ranked {
		account, err := i.store.GetAccount(ctx, candidate)
		if err != nil {
			continue
		}
		suggestions = append(suggestions, models.FriendSuggestion{
			Account:     account,
			MutualCount: mutuals[candidate],
		})
		excluded[candidate] = struct{}{}
	}

	if len(suggestions) < limit {
		padding, err := i.store.ListAccountsSample(ctx, lo.Keys(excluded), limit-len(suggestions))
		if err != nil {
			return suggestions, err
		}
		for _, account := range padding {
			suggestions = append(suggestions, models.FriendSuggestion{Account: account})
		}
	}

	return suggestions, nil
}
