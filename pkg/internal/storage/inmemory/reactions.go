package inmemory

import (
	"context"

	"github.com/treehollow/socialite/pkg/internal/models"
	"github.com/treehollow/socialite/pkg/internal/storage"
)

func (s *Store) GetReaction(ctx context.Context, accountID uint, target models.Target) (models.ReactionSymbol, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	symbol, ok := s.reactions[target][accountID]
	if !ok {
		return "", storage.ErrNotFound
	}
	return symbol, nil
}

func (s *Store) UpsertReaction(ctx context.Context, accountID uint, target models.Target, symbol models.ReactionSymbol) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, ok := s.reactions[target]
	if !ok {
		rows = make(map[uint]models.ReactionSymbol)
		s.reactions[target] = rows
	}
	rows[accountID] = symbol
	return nil
}

func (s *Store) DeleteReaction(ctx context.Context, accountID uint, target models.Target) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, ok := s.reactions[target]
	if !ok {
		return storage.ErrNotFound
	}
	if _, ok := rows[accountID]; !ok {
		return storage.ErrNotFound
	}
	delete(rows, accountID)
	return nil
}

func (s *Store) ReactionTally(ctx context.Context, target models.Target) (int64, map[models.ReactionSymbol]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	breakdown := make(map[models.ReactionSymbol]int64)
	for _, symbol := range s.reactions[target] {
		breakdown[symbol]++
	}
	return int64(len(s.reactions[target])), breakdown, nil
}
