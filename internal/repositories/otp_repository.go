package repositories

import (
	"errors"

	"github.com/arpansahu/portfolio-api/internal/models"
	"gorm.io/gorm"
)

// OTPRepository tracks per-day OTP issuance counters.
type OTPRepository interface {
	GetDailyCount(email, date string) (int, error)
	IncrementDailyCount(email, date string) error
}

type postgresOTPRepository struct {
	db *gorm.DB
}

func NewPostgresOTPRepository(db *gorm.DB) OTPRepository {
	return &postgresOTPRepository{db: db}
}

// GetDailyCount returns how many codes were issued to the email today;
// zero when no counter row exists yet.
func (r *postgresOTPRepository) GetDailyCount(email, date string) (int, error) {
	var record models.EmailOTPRecord
	err := r.db.Where("email = ? AND date = ?", email, date).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return record.Count, nil
}

// IncrementDailyCount creates the (email, date) counter row at 1 or bumps an
// existing one. The unique index arbitrates concurrent first issuances.
func (r *postgresOTPRepository) IncrementDailyCount(email, date string) error {
	res := r.db.Model(&models.EmailOTPRecord{}).
		Where("email = ? AND date = ?", email, date).
		UpdateColumn("count", gorm.Expr("count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	err := r.db.Create(&models.EmailOTPRecord{Email: email, Date: date, Count: 1}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost the race to another request; bump the row it created.
		return r.db.Model(&models.EmailOTPRecord{}).
			Where("email = ? AND date = ?", email, date).
			UpdateColumn("count", gorm.Expr("count + 1")).Error
	}
	return err
}
