package handlers

import (
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/arpansahu/portfolio-api/internal/models"
	"github.com/arpansahu/portfolio-api/validators"
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

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validators.NewValidator()
	return e
}
