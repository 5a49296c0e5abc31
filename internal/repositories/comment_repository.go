package repositories

import (
	"github.com/arpansahu/portfolio-api/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentByID(id uint) (*models.Comment, error)
	ListApprovedForTarget(targetType string, targetID uint) ([]models.Comment, error)
	ListByAuthor(authorID uint, limit int) ([]models.Comment, error)
	CountApprovedByAuthor(authorID uint) (int64, error)
	CountApprovedReplies(parentID uint) (int64, error)
	UpdateComment(comment *models.Comment) error
	SetApproved(id uint, approved bool) error
	SetPinned(id uint, pinned bool) error
	CreateEditHistory(entry *models.CommentEditHistory) error
	ListEditHistory(commentID uint, limit int) ([]models.CommentEditHistory, error)
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *PostgresCommentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.Preload("Author").First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListApprovedForTarget returns every approved comment attached to the
// target, at any depth, pinned first then oldest first. The reply tree is
// assembled in memory by the caller.
func (r *PostgresCommentRepository) ListApprovedForTarget(targetType string, targetID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Preload("Author").
		Where("target_type = ? AND target_id = ? AND is_approved = ?", targetType, targetID, true).
		Order("is_pinned DESC, created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (r *PostgresCommentRepository) ListByAuthor(authorID uint, limit int) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Preload("Author").
		Where("author_id = ? AND is_approved = ?", authorID, true).
		Order("created_at DESC").Limit(limit).
		Find(&comments).Error
	return comments, err
}

func (r *PostgresCommentRepository) CountApprovedByAuthor(authorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).
		Where("author_id = ? AND is_approved = ?", authorID, true).
		Count(&count).Error
	return count, err
}

func (r *PostgresCommentRepository) CountApprovedReplies(parentID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).
		Where("parent_id = ? AND is_approved = ?", parentID, true).
		Count(&count).Error
	return count, err
}

func (r *PostgresCommentRepository) UpdateComment(comment *models.Comment) error {
	return r.db.Save(comment).Error
}

func (r *PostgresCommentRepository) SetApproved(id uint, approved bool) error {
	return r.db.Model(&models.Comment{}).Where("id = ?", id).Update("is_approved", approved).Error
}

func (r *PostgresCommentRepository) SetPinned(id uint, pinned bool) error {
	return r.db.Model(&models.Comment{}).Where("id = ?", id).Update("is_pinned", pinned).Error
}

func (r *PostgresCommentRepository) CreateEditHistory(entry *models.CommentEditHistory) error {
	return r.db.Create(entry).Error
}

func (r *PostgresCommentRepository) ListEditHistory(commentID uint, limit int) ([]models.CommentEditHistory, error) {
	var history []models.CommentEditHistory
	err := r.db.Preload("EditedBy").
		Where("comment_id = ?", commentID).
		Order("edited_at DESC").Limit(limit).
		Find(&history).Error
	return history, err
}
