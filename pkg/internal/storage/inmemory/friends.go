package inmemory

import (
	"context"
	"sort"
	"time"

	"github.com/treehollow/socialite/pkg/internal/models"
	"github.com/treehollow/socialite/pkg/internal/storage"
)

func (s *Store) GetFriendRequest(ctx context.Context, id uint) (models.FriendRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	request, ok := s.friendRequests[id]
	if !ok {
		return models.FriendRequest{}, storage.ErrNotFound
	}
	return s.hydrateRequest(*request), nil
}

func (s *Store) hydrateRequest(request models.FriendRequest) models.FriendRequest {
	if account, ok := s.accounts[request.FromID]; ok {
		request.From = *account
	}
	if account, ok := s.accounts[request.ToID]; ok {
		request.To = *account
	}
	return request
}

func (s *Store) GetFriendRequestBetween(ctx context.Context, a, b uint) (*models.FriendRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, request := range s.friendRequests {
		if (request.FromID == a && request.ToID == b) || (request.FromID == b && request.ToID == a) {
			hydrated := s.hydrateRequest(*request)
			return &hydrated, nil
		}
	}
	return nil, nil
}

func (s *Store) CreateFriendRequest(ctx context.Context, request *models.FriendRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stamp(&request.BaseModel, s.allocate())
	clone := *request
	s.friendRequests[request.ID] = &clone
	return nil
}

func (s *Store) SaveFriendRequest(ctx context.Context, request *models.FriendRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.friendRequests[request.ID]; !ok {
		return storage.ErrNotFound
	}
	request.UpdatedAt = time.Now()
	clone := *request
	s.friendRequests[request.ID] = &clone
	return nil
}

func (s *Store) DeleteFriendRequest(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.friendRequests[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.friendRequests, id)
	return nil
}

func (s *Store) AcceptFriendRequest(ctx context.Context, request *models.FriendRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.friendRequests[request.ID]
	if !ok {
		return storage.ErrNotFound
	}

	now := time.Now()
	stored.Status = models.FriendRequestAccepted
	stored.UpdatedAt = now
	request.Status = models.FriendRequestAccepted
	request.UpdatedAt = now

	s.addEdge(stored.FromID, stored.ToID, now)
	s.addEdge(stored.ToID, stored.FromID, now)
	return nil
}

func (s *Store) addEdge(a, b uint, at time.Time) {
	edges, ok := s.friendships[a]
	if !ok {
		edges = make(map[uint]time.Time)
		s.friendships[a] = edges
	}
	edges[b] = at
}

func (s *Store) Unfriend(ctx context.Context, a, b uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.friendships[a], b)
	delete(s.friendships[b], a)

	for id, request := range s.friendRequests {
		matches := (request.FromID == a && request.ToID == b) || (request.FromID == b && request.ToID == a)
		if matches && request.Status == models.FriendRequestAccepted {
			delete(s.friendRequests, id)
		}
	}
	return nil
}

func (s *Store) HasFriendship(ctx context.Context, a, b uint) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.friendships[a][b]
	return ok, nil
}

func (s *Store) ListFriendIDs(ctx context.Context, accountID uint) ([]uint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.friendIDsLocked(accountID), nil
}

func (s *Store) friendIDsLocked(accountID uint) []uint {
	ids := make([]uint, 0, len(s.friendships[accountID]))
	for id := range s.friendships[accountID] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s *Store) ListFriendIDsOfMany(ctx context.Context, accountIDs []uint) (map[uint][]uint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[uint][]uint, len(accountIDs))
	for _, id := range accountIDs {
		out[id] = s.friendIDsLocked(id)
	}
	return out, nil
}

func (s *Store) ListFriends(ctx context.Context, accountID uint) ([]models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.friendIDsLocked(accountID)
	out := make([]models.Account, 0, len(ids))
	for _, id := range ids {
		if account, ok := s.accounts[id]; ok {
			out = append(out, *account)
		}
	}
	return out, nil
}

func (s *Store) ListPendingRequests(ctx context.Context, accountID uint) ([]models.FriendRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.FriendRequest, 0)
	for _, request := range s.friendRequests {
		if request.ToID == accountID && request.Status == models.FriendRequestPending {
			out = append(out, s.hydrateRequest(*request))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) ListPendingInvolving(ctx context.Context, accountID uint) ([]models.FriendRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.FriendRequest, 0)
	for _, request := range s.friendRequests {
		if request.Status != models.FriendRequestPending {
			continue
		}
		if request.ToID == accountID || request.FromID == accountID {
			out = append(out, *request)
		}
	}
	return out, nil
}
