package postgres

import (
	"context"
	"errors"

	"github.com/samber/lo"
	"github.com/treehollow/socialite/pkg/internal/models"
	"github.com/treehollow/socialite/pkg/internal/storage"
	"gorm.io/gorm"
)

func (s *Store) GetFriendRequest(ctx context.Context, id uint) (models.FriendRequest, error) {
	var request models.FriendRequest
	if err := s.db.WithContext(ctx).
		Preload("From").Preload("To").
		Where("id = ?", id).
		First(&request).Error; err != nil {
		return request, translate(err)
	}
	return request, nil
}

func (s *Store) GetFriendRequestBetween(ctx context.Context, a, b uint) (*models.FriendRequest, error) {
	var request models.FriendRequest
	err := s.db.WithContext(ctx).
		Preload("From").Preload("To").
		Where("(from_id = ? AND to_id = ?) OR (from_id = ? AND to_id = ?)", a, b, b, a).
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (s *Store) CreateFriendRequest(ctx context.Context, request *models.FriendRequest) error {
	return s.db.WithContext(ctx).Create(request).Error
}

func (s *Store) SaveFriendRequest(ctx context.Context, request *models.FriendRequest) error {
	return s.db.WithContext(ctx).Save(request).Error
}

func (s *Store) DeleteFriendRequest(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.FriendRequest{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) AcceptFriendRequest(ctx context.Context, request *models.FriendRequest) error {
	request.Status = models.FriendRequestAccepted
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.FriendRequest{}).
			Where("id = ?", request.ID).
			Update("status", models.FriendRequestAccepted).Error; err != nil {
			return err
		}
		edges := []models.Friendship{
			{AccountID: request.FromID, FriendID: request.ToID},
			{AccountID: request.ToID, FriendID: request.FromID},
		}
		return tx.Create(&edges).Error
	})
}

func (s *Store) Unfriend(ctx context.Context, a, b uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("(account_id = ? AND friend_id = ?) OR (account_id = ? AND friend_id = ?)", a, b, b, a).
			Delete(&models.Friendship{}).Error; err != nil {
			return err
		}
		return tx.
			Where("((from_id = ? AND to_id = ?) OR (from_id = ? AND to_id = ?)) AND status = ?",
				a, b, b, a, models.FriendRequestAccepted).
			Delete(&models.FriendRequest{}).Error
	})
}

func (s *Store) HasFriendship(ctx context.Context, a, b uint) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Friendship{}).
		Where("account_id = ? AND friend_id = ?", a, b).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) ListFriendIDs(ctx context.Context, accountID uint) ([]uint, error) {
	var ids []uint
	if err := s.db.WithContext(ctx).Model(&models.Friendship{}).
		Where("account_id = ?", accountID).
		Order("friend_id ASC").
		Pluck("friend_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *Store) ListFriendIDsOfMany(ctx context.Context, accountIDs []uint) (map[uint][]uint, error) {
	var edges []models.Friendship
	if err := s.db.WithContext(ctx).
		Where("account_id IN ?", accountIDs).
		Find(&edges).Error; err != nil {
		return nil, err
	}

	out := make(map[uint][]uint, len(accountIDs))
	for _, id := range accountIDs {
		out[id] = []uint{}
	}
	for _, edge := range edges {
		out[edge.AccountID] = append(out[edge.AccountID], edge.FriendID)
	}
	return out, nil
}

func (s *Store) ListFriends(ctx context.Context, accountID uint) ([]models.Account, error) {
	var edges []models.Friendship
	if err := s.db.WithContext(ctx).
		Preload("Friend").
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&edges).Error; err != nil {
		return nil, err
	}
	return lo.Map(edges, func(edge models.Friendship, _ int) models.Account {
		return edge.Friend
	}), nil
}

func (s *Store) ListPendingRequests(ctx context.Context, accountID uint) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	if err := s.db.WithContext(ctx).
		Preload("From").Preload("To").
		Where("to_id = ? AND status = ?", accountID, models.FriendRequestPending).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (s *Store) ListPendingInvolving(ctx context.Context, accountID uint) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	if err := s.db.WithContext(ctx).
		Where("(to_id = ? OR from_id = ?) AND status = ?", accountID, accountID, models.FriendRequestPending).
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}
