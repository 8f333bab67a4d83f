package inmemory

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/treehollow/socialite/pkg/internal/models"
	"github.com/treehollow/socialite/pkg/internal/storage"
)

// Store keeps the whole graph in process memory behind one RWMutex. It
// backs the test suite and small single-node deployments; the contract it
// honors is identical to the postgres store.
type Store struct {
	mu sync.RWMutex

	nextID uint

	accounts       map[uint]*models.Account
	accountsByName map[string]uint

	posts    map[uint]*models.Post
	comments map[uint]*models.Comment

	// reactions[target][accountID] = symbol; one entry per (user, target).
	reactions map[models.Target]map[uint]models.ReactionSymbol

	friendRequests map[uint]*models.FriendRequest
	// friendships[account][friend] = edge creation time; kept symmetric.
	friendships map[uint]map[uint]time.Time

	notifications map[uint]*models.Notification
}

func New() *Store {
	return &Store{
		accounts:       make(map[uint]*models.Account),
		accountsByName: make(map[string]uint),
		posts:          make(map[uint]*models.Post),
		comments:       make(map[uint]*models.Comment),
		reactions:      make(map[models.Target]map[uint]models.ReactionSymbol),
		friendRequests: make(map[uint]*models.FriendRequest),
		friendships:    make(map[uint]map[uint]time.Time),
		notifications:  make(map[uint]*models.Notification),
	}
}

func (s *Store) allocate() uint {
	s.nextID++
	return s.nextID
}

func stamp(base *models.BaseModel, id uint) {
	now := time.Now()
	base.ID = id
	base.CreatedAt = now
	base.UpdatedAt = now
}

// === Accounts ===

func (s *Store) CreateAccount(ctx context.Context, account *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stamp(&account.BaseModel, s.allocate())
	clone := *account
	s.accounts[account.ID] = &clone
	s.accountsByName[account.Name] = account.ID
	return nil
}

func (s *Store) GetAccount(ctx context.Context, id uint) (models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[id]
	if !ok {
		return models.Account{}, storage.ErrNotFound
	}
	return *account, nil
}

func (s *Store) GetAccountByName(ctx context.Context, name string) (models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.accountsByName[name]
	if !ok {
		return models.Account{}, storage.ErrNotFound
	}
	return *s.accounts[id], nil
}

func (s *Store) SaveAccount(ctx context.Context, account *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.accounts[account.ID]
	if !ok {
		return storage.ErrNotFound
	}
	delete(s.accountsByName, existing.Name)
	account.UpdatedAt = time.Now()
	clone := *account
	s.accounts[account.ID] = &clone
	s.accountsByName[account.Name] = account.ID
	return nil
}

func (s *Store) ListAccountsSample(ctx context.Context, exclude []uint, limit int) ([]models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	excluded := make(map[uint]struct{}, len(exclude))
	for _, id := range exclude {
		excluded[id] = struct{}{}
	}

	pool := make([]models.Account, 0, len(s.accounts))
	for id, account := range s.accounts {
		if _, skip := excluded[id]; skip {
			continue
		}
		pool = append(pool, *account)
	}
	sort.Slice(pool, func(i, j int) bool { return pool[i].ID < pool[j].ID })
	rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	if limit >= 0 && len(pool) > limit {
		pool = pool[:limit]
	}
	return pool, nil
}

// === Maintenance ===

func (s *Store) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, post := range s.posts {
		if post.IsDeleted && post.DeletedAt != nil && post.DeletedAt.Before(cutoff) {
			delete(s.posts, id)
			delete(s.reactions, models.PostTarget(id))
		}
	}
	for id, comment := range s.comments {
		if comment.IsDeleted && comment.DeletedAt != nil && comment.DeletedAt.Before(cutoff) {
			delete(s.comments, id)
			delete(s.reactions, models.CommentTarget(id))
		}
	}
	return nil
}

func (s *Store) PurgeReadNotificationsBefore(ctx context.Context, cutoff time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, notification := range s.notifications {
		if notification.IsRead && notification.CreatedAt.Before(cutoff) {
			delete(s.notifications, id)
		}
	}
	return nil
}
