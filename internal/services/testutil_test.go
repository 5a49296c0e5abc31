package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/arpansahu/portfolio-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Account{},
		&models.Category{},
		&models.Tag{},
		&models.BlogPost{},
		&models.PostLike{},
		&models.Comment{},
		&models.CommentLike{},
		&models.CommentEditHistory{},
		&models.Notification{},
		&models.EmailOTPRecord{},
		&models.ContactMessage{},
	))
	return db
}

func createTestAccount(t *testing.T, db *gorm.DB, username string) *models.Account {
	t.Helper()
	account := &models.Account{
		Email:    username + "@example.com",
		Username: username,
		IsActive: true,
	}
	require.NoError(t, db.Create(account).Error)
	return account
}

func createTestPost(t *testing.T, db *gorm.DB, authorID uint, title string) *models.BlogPost {
	t.Helper()
	post := &models.BlogPost{
		Title:          title,
		Slug:           title,
		AuthorID:       authorID,
		Content:        "Some content.",
		Status:         models.StatusPublished,
		EnableComments: true,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}
