package postgres

import (
	"context"

	"github.com/treehollow/socialite/pkg/internal/models"
	"github.com/treehollow/socialite/pkg/internal/storage"
	"gorm.io/gorm/clause"
)

func (s *Store) GetReaction(ctx context.Context, accountID uint, target models.Target) (models.ReactionSymbol, error) {
	switch target.Kind {
	case models.TargetKindPost:
		var row models.PostReaction
		if err := s.db.WithContext(ctx).
			Where("account_id = ? AND post_id = ?", accountID, target.ID).
			First(&row).Error; err != nil {
			return "", translate(err)
		}
		return row.Symbol, nil
	default:
		var row models.CommentReaction
		if err := s.db.WithContext(ctx).
			Where("account_id = ? AND comment_id = ?", accountID, target.ID).
			First(&row).Error; err != nil {
			return "", translate(err)
		}
		return row.Symbol, nil
	}
}

func (s *Store) UpsertReaction(ctx context.Context, accountID uint, target models.Target, symbol models.ReactionSymbol) error {
	onPair := func(columns ...string) clause.OnConflict {
		cols := make([]clause.Column, 0, len(columns))
		for _, column := range columns {
			cols = append(cols, clause.Column{Name: column})
		}
		return clause.OnConflict{
			Columns:   cols,
			DoUpdates: clause.AssignmentColumns([]string{"symbol", "updated_at"}),
		}
	}

	switch target.Kind {
	case models.TargetKindPost:
		row := models.PostReaction{AccountID: accountID, PostID: target.ID, Symbol: symbol}
		return s.db.WithContext(ctx).Clauses(onPair("account_id", "post_id")).Create(&row).Error
	default:
		row := models.CommentReaction{AccountID: accountID, CommentID: target.ID, Symbol: symbol}
		return s.db.WithContext(ctx).Clauses(onPair("account_id", "comment_id")).Create(&row).Error
	}
}

func (s *Store) DeleteReaction(ctx context.Context, accountID uint, target models.Target) error {
	switch target.Kind {
	case models.TargetKindPost:
		result := s.db.WithContext(ctx).
			Where("account_id = ? AND post_id = ?", accountID, target.ID).
			Delete(&models.PostReaction{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return storage.ErrNotFound
		}
		return nil
	default:
		result := s.db.WithContext(ctx).
			Where("account_id = ? AND comment_id = ?", accountID, target.ID).
			Delete(&models.CommentReaction{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return storage.ErrNotFound
		}
		return nil
	}
}

func (s *Store) ReactionTally(ctx context.Context, target models.Target) (int64, map[models.ReactionSymbol]int64, error) {
	var rows []struct {
		Symbol models.ReactionSymbol
		Count  int64
	}

	tx := s.db.WithContext(ctx)
	switch target.Kind {
	case models.TargetKindPost:
		tx = tx.Model(&models.PostReaction{}).Where("post_id = ?", target.ID)
	default:
		tx = tx.Model(&models.CommentReaction{}).Where("comment_id = ?", target.ID)
	}
	if err := tx.Select("symbol, COUNT(id) as count").Group("symbol").Scan(&rows).Error; err != nil {
		return 0, nil, err
	}

	var total int64
	breakdown := make(map[models.ReactionSymbol]int64, len(rows))
	for _, row := range rows {
		breakdown[row.Symbol] = row.Count
		total += row.Count
	}
	return total, breakdown, nil
}
