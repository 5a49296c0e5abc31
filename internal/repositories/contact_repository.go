package repositories

import (
	"github.com/arpansahu/portfolio-api/internal/models"
	"gorm.io/gorm"
)

// ContactRepository stores contact-form submissions.
type ContactRepository interface {
	CreateContactMessage(msg *models.ContactMessage) error
}

type postgresContactRepository struct {
	db *gorm.DB
}

func NewPostgresContactRepository(db *gorm.DB) ContactRepository {
	return &postgresContactRepository{db: db}
}

func (r *postgresContactRepository) CreateContactMessage(msg *models.ContactMessage) error {
	return r.db.Create(msg).Error
}
