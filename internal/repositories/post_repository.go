package repositories

import (
	"strings"

	"github.com/arpansahu/portfolio-api/internal/models"
	"gorm.io/gorm"
)

// PostFilter narrows ListPublished. Zero values mean "no filter".
type PostFilter struct {
	CategorySlug string
	TagSlug      string
	Search       string
	Page         int
	Limit        int
}

// PostRepository defines the interface for blog post data operations
type PostRepository interface {
	CreatePost(post *models.BlogPost) error
	GetPostByID(id uint) (*models.BlogPost, error)
	GetPublishedBySlug(slug string) (*models.BlogPost, error)
	GetBySlug(slug string) (*models.BlogPost, error)
	ListPublished(filter PostFilter) ([]models.BlogPost, int64, error)
	ListFeatured(limit int) ([]models.BlogPost, error)
	ListRelated(post *models.BlogPost, limit int) ([]models.BlogPost, error)
	ListByAuthor(authorID uint, limit int) ([]models.BlogPost, error)
	CountPublishedByAuthor(authorID uint) (int64, error)
	UpdatePost(post *models.BlogPost) error
	ReplaceTags(post *models.BlogPost, tags []models.Tag) error
	DeletePost(id uint) error
	IncrementViews(id uint) error
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

func (r *PostgresPostRepository) CreatePost(post *models.BlogPost) error {
	return r.db.Create(post).Error
}

func (r *PostgresPostRepository) GetPostByID(id uint) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := r.db.Preload("Author").Preload("Category").Preload("Tags").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostgresPostRepository) GetPublishedBySlug(slug string) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.db.Preload("Author").Preload("Category").Preload("Tags").
		Where("slug = ? AND status = ?", slug, models.StatusPublished).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostgresPostRepository) GetBySlug(slug string) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.db.Preload("Author").Preload("Category").Preload("Tags").
		Where("slug = ?", slug).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostgresPostRepository) ListPublished(filter PostFilter) ([]models.BlogPost, int64, error) {
	base := func() *gorm.DB {
		q := r.db.Model(&models.BlogPost{}).Where("blog_posts.status = ?", models.StatusPublished)
		if filter.CategorySlug != "" {
			q = q.Joins("JOIN categories ON categories.id = blog_posts.category_id").
				Where("categories.slug = ?", filter.CategorySlug)
		}
		if filter.TagSlug != "" {
			q = q.Joins("JOIN blog_post_tags ON blog_post_tags.blog_post_id = blog_posts.id").
				Joins("JOIN tags ON tags.id = blog_post_tags.tag_id").
				Where("tags.slug = ?", filter.TagSlug)
		}
		if filter.Search != "" {
			// Case-insensitive; LOWER on both sides works on Postgres
			// and on the SQLite test databases alike.
			pattern := "%" + strings.ToLower(filter.Search) + "%"
			q = q.Where("LOWER(blog_posts.title) LIKE ? OR LOWER(blog_posts.excerpt) LIKE ? OR LOWER(blog_posts.content) LIKE ?",
				pattern, pattern, pattern)
		}
		return q
	}

	var total int64
	if err := base().Distinct("blog_posts.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 9
	}

	var posts []models.BlogPost
	err := base().Distinct("blog_posts.*").
		Preload("Author").Preload("Category").Preload("Tags").
		Order("blog_posts.published_at DESC, blog_posts.created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&posts).Error
	return posts, total, err
}

func (r *PostgresPostRepository) ListFeatured(limit int) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	err := r.db.Preload("Author").Preload("Category").
		Where("status = ? AND is_featured = ?", models.StatusPublished, true).
		Order("published_at DESC").Limit(limit).
		Find(&posts).Error
	return posts, err
}

// ListRelated returns published posts sharing the category or a tag, newest first.
func (r *PostgresPostRepository) ListRelated(post *models.BlogPost, limit int) ([]models.BlogPost, error) {
	tagIDs := make([]uint, 0, len(post.Tags))
	for _, t := range post.Tags {
		tagIDs = append(tagIDs, t.ID)
	}

	q := r.db.Model(&models.BlogPost{}).
		Where("blog_posts.status = ? AND blog_posts.id <> ?", models.StatusPublished, post.ID)

	switch {
	case post.CategoryID != nil && len(tagIDs) > 0:
		q = q.Joins("LEFT JOIN blog_post_tags ON blog_post_tags.blog_post_id = blog_posts.id").
			Where("blog_posts.category_id = ? OR blog_post_tags.tag_id IN ?", *post.CategoryID, tagIDs)
	case post.CategoryID != nil:
		q = q.Where("blog_posts.category_id = ?", *post.CategoryID)
	case len(tagIDs) > 0:
		q = q.Joins("LEFT JOIN blog_post_tags ON blog_post_tags.blog_post_id = blog_posts.id").
			Where("blog_post_tags.tag_id IN ?", tagIDs)
	default:
		return nil, nil
	}

	var posts []models.BlogPost
	err := q.Distinct("blog_posts.*").
		Order("blog_posts.published_at DESC").Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *PostgresPostRepository) ListByAuthor(authorID uint, limit int) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	err := r.db.Where("author_id = ? AND status = ?", authorID, models.StatusPublished).
		Order("published_at DESC").Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *PostgresPostRepository) CountPublishedByAuthor(authorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.BlogPost{}).
		Where("author_id = ? AND status = ?", authorID, models.StatusPublished).
		Count(&count).Error
	return count, err
}

func (r *PostgresPostRepository) UpdatePost(post *models.BlogPost) error {
	return r.db.Omit("Tags").Save(post).Error
}

func (r *PostgresPostRepository) ReplaceTags(post *models.BlogPost, tags []models.Tag) error {
	return r.db.Model(post).Association("Tags").Replace(tags)
}

func (r *PostgresPostRepository) DeletePost(id uint) error {
	return r.db.Delete(&models.BlogPost{}, id).Error
}

func (r *PostgresPostRepository) IncrementViews(id uint) error {
	return r.db.Model(&models.BlogPost{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}
