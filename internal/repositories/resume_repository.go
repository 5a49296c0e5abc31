package repositories

import (
	"github.com/arpansahu/portfolio-api/internal/models"
	"gorm.io/gorm"
)

// ResumeRepository tracks uploaded resume files.
type ResumeRepository interface {
	CreateResume(resume *models.Resume) error
	GetLatestResume() (*models.Resume, error)
}

type postgresResumeRepository struct {
	db *gorm.DB
}

func NewPostgresResumeRepository(db *gorm.DB) ResumeRepository {
	return &postgresResumeRepository{db: db}
}

func (r *postgresResumeRepository) CreateResume(resume *models.Resume) error {
	return r.db.Create(resume).Error
}

func (r *postgresResumeRepository) GetLatestResume() (*models.Resume, error) {
	var resume models.Resume
	if err := r.db.Order("created_at DESC").First(&resume).Error; err != nil {
		return nil, err
	}
	return &resume, nil
}
