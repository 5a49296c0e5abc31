package repositories

import (
	"github.com/arpansahu/portfolio-api/internal/models"
	"gorm.io/gorm"
)

// PostLikeRepository defines the interface for post like operations
type PostLikeRepository interface {
	CreatePostLike(like *models.PostLike) error
	DeletePostLike(postID, userID uint) (bool, error)
	HasUserLikedPost(postID, userID uint) (bool, error)
	GetLikesCount(postID uint) (int64, error)
	CountLikesReceivedByAuthor(authorID uint) (int64, error)
}

type postgresPostLikeRepository struct {
	db *gorm.DB
}

func NewPostgresPostLikeRepository(db *gorm.DB) PostLikeRepository {
	return &postgresPostLikeRepository{db: db}
}

func (r *postgresPostLikeRepository) CreatePostLike(like *models.PostLike) error {
	return r.db.Create(like).Error
}

// DeletePostLike removes the (post, user) like row and reports whether a row
// was actually deleted.
func (r *postgresPostLikeRepository) DeletePostLike(postID, userID uint) (bool, error) {
	res := r.db.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.PostLike{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *postgresPostLikeRepository) HasUserLikedPost(postID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.PostLike{}).Where("post_id = ? AND user_id = ?", postID, userID).Count(&count).Error
	return count > 0, err
}

func (r *postgresPostLikeRepository) GetLikesCount(postID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.PostLike{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

// CountLikesReceivedByAuthor counts likes across all of an author's posts,
// used for profile stats.
func (r *postgresPostLikeRepository) CountLikesReceivedByAuthor(authorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.PostLike{}).
		Joins("JOIN blog_posts ON blog_posts.id = post_likes.post_id").
		Where("blog_posts.author_id = ?", authorID).
		Count(&count).Error
	return count, err
}
