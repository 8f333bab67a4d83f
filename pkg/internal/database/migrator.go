package database

import (
	"github.com/treehollow/socialite/pkg/internal/models"
	"gorm.io/gorm"
)

var AutoMaintainRange = []any{
	&models.Account{},
	&models.Post{},
	&models.Comment{},
	&models.FriendRequest{},
	&models.Friendship{},
	&models.Notification{},
}

func RunMigration(source *gorm.DB) error {
	if err := source.AutoMigrate(
		append(
			AutoMaintainRange,
			&models.PostReaction{},
			&models.CommentReaction{},
		)...,
	); err != nil {
		return err
	}

	return nil
}
