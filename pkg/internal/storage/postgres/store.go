package postgres

import (
	"context"
	"errors"

	"github.com/treehollow/socialite/pkg/internal/models"
	"github.com/treehollow/socialite/pkg/internal/storage"
	"gorm.io/gorm"
)

// Store is the gorm-backed implementation of storage.Store. Multi-row
// mutations run inside db.Transaction so the contract's atomic steps map
// onto real database transactions.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return storage.ErrNotFound
	}
	return err
}

// === Accounts ===

func (s *Store) CreateAccount(ctx context.Context, account *models.Account) error {
	return s.db.WithContext(ctx).Create(account).Error
}

func (s *Store) GetAccount(ctx context.Context, id uint) (models.Account, error) {
	var account models.Account
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&account).Error; err != nil {
		return account, translate(err)
	}
	return account, nil
}

func (s *Store) GetAccountByName(ctx context.Context, name string) (models.Account, error) {
	var account models.Account
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&account).Error; err != nil {
		return account, translate(err)
	}
	return account, nil
}

func (s *Store) SaveAccount(ctx context.Context, account *models.Account) error {
	return s.db.WithContext(ctx).Save(account).Error
}

func (s *Store) ListAccountsSample(ctx context.Context, exclude []uint, limit int) ([]models.Account, error) {
	tx := s.db.WithContext(ctx).Model(&models.Account{})
	if len(exclude) > 0 {
		tx = tx.Where("id NOT IN ?", exclude)
	}

	var accounts []models.Account
	if err := tx.Order("RANDOM()").Limit(limit).Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}
