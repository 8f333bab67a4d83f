package postgres

import (
	"context"
	"time"

	"github.com/treehollow/socialite/pkg/internal/models"
	"github.com/treehollow/socialite/pkg/internal/storage"
	"gorm.io/gorm"
)

// filterPostVisibility composes the privacy predicate the same way for
// every post read: public always, friends-only for friends of the author,
// only-me for the author alone.
func filterPostVisibility(tx *gorm.DB, q storage.PostQuery) *gorm.DB {
	tx = tx.Where("is_deleted = ?", false)
	if q.AuthorID != nil {
		tx = tx.Where("account_id = ?", *q.AuthorID)
	}

	if q.Viewer == nil {
		return tx.Where("privacy = ?", models.PostPrivacyPublic)
	}
	return tx.Where(
		"(privacy = ? OR (privacy = ? AND account_id IN ?) OR account_id = ?)",
		models.PostPrivacyPublic,
		models.PostPrivacyFriends,
		q.FriendIDs,
		*q.Viewer,
	)
}

func preloadPostGeneral(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Account").
		Preload("RepostTo").
		Preload("RepostTo.Account")
}

func (s *Store) CreatePost(ctx context.Context, post *models.Post) error {
	return s.db.WithContext(ctx).Create(post).Error
}

func (s *Store) GetPost(ctx context.Context, id uint) (models.Post, error) {
	var post models.Post
	if err := preloadPostGeneral(s.db.WithContext(ctx)).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&post).Error; err != nil {
		return post, translate(err)
	}
	return post, nil
}

func (s *Store) SavePost(ctx context.Context, post *models.Post) error {
	return s.db.WithContext(ctx).Save(post).Error
}

func (s *Store) SoftDeletePost(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]any{"is_deleted": true, "deleted_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) ListPosts(ctx context.Context, q storage.PostQuery) ([]*models.Post, error) {
	tx := filterPostVisibility(s.db.WithContext(ctx).Model(&models.Post{}), q)

	var posts []*models.Post
	if err := preloadPostGeneral(tx).
		Limit(q.Take).Offset(q.Offset).
		Order("created_at DESC, id DESC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *Store) CountPosts(ctx context.Context, q storage.PostQuery) (int64, error) {
	tx := filterPostVisibility(s.db.WithContext(ctx).Model(&models.Post{}), q)

	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) CountPostComments(ctx context.Context, postID uint) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Comment{}).
		Where("post_id = ? AND is_deleted = ?", postID, false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) BatchPostCommentCounts(ctx context.Context, postIDs []uint) (map[uint]int64, error) {
	var rows []struct {
		PostID uint
		Count  int64
	}
	if err := s.db.WithContext(ctx).Model(&models.Comment{}).
		Select("post_id, COUNT(id) as count").
		Where("post_id IN ? AND is_deleted = ?", postIDs, false).
		Group("post_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.PostID] = row.Count
	}
	return counts, nil
}

func (s *Store) BatchPostReactionTallies(ctx context.Context, postIDs []uint) (map[uint]map[models.ReactionSymbol]int64, error) {
	var rows []struct {
		PostID uint
		Symbol models.ReactionSymbol
		Count  int64
	}
	if err := s.db.WithContext(ctx).Model(&models.PostReaction{}).
		Select("post_id, symbol, COUNT(id) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").Group("symbol").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	tallies := make(map[uint]map[models.ReactionSymbol]int64)
	for _, row := range rows {
		if tallies[row.PostID] == nil {
			tallies[row.PostID] = make(map[models.ReactionSymbol]int64)
		}
		tallies[row.PostID][row.Symbol] = row.Count
	}
	return tallies, nil
}

func (s *Store) BatchViewerPostReactions(ctx context.Context, viewer uint, postIDs []uint) (map[uint]models.ReactionSymbol, error) {
	var rows []models.PostReaction
	if err := s.db.WithContext(ctx).
		Where("account_id = ? AND post_id IN ?", viewer, postIDs).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[uint]models.ReactionSymbol, len(rows))
	for _, row := range rows {
		out[row.PostID] = row.Symbol
	}
	return out, nil
}
