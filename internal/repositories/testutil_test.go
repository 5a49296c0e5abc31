package repositories

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
		&models.Resume{},
	))
	return db
}
