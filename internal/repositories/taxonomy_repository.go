package repositories

import (
	"github.com/gosimple/slug"

	"github.com/arpansahu/portfolio-api/internal/models"
	"gorm.io/gorm"
)

// CategoryWithCount pairs a category with its published post count.
type CategoryWithCount struct {
	models.Category
	PostCount int64 `json:"post_count"`
}

// TagWithCount pairs a tag with its published post count.
type TagWithCount struct {
	models.Tag
	PostCount int64 `json:"post_count"`
}

// TaxonomyRepository defines the interface for category and tag operations
type TaxonomyRepository interface {
	ListCategories() ([]CategoryWithCount, error)
	ListTags() ([]TagWithCount, error)
	GetCategoryBySlug(slug string) (*models.Category, error)
	GetTagBySlug(slug string) (*models.Tag, error)
	GetOrCreateCategory(name string) (*models.Category, error)
	GetOrCreateTags(names []string) ([]models.Tag, error)
}

// PostgresTaxonomyRepository implements TaxonomyRepository for PostgreSQL
type PostgresTaxonomyRepository struct {
	db *gorm.DB
}

// NewPostgresTaxonomyRepository creates a new PostgresTaxonomyRepository
func NewPostgresTaxonomyRepository(db *gorm.DB) *PostgresTaxonomyRepository {
	return &PostgresTaxonomyRepository{db: db}
}

// ListCategories returns categories that have at least one published post.
func (r *PostgresTaxonomyRepository) ListCategories() ([]CategoryWithCount, error) {
	var categories []CategoryWithCount
	err := r.db.Model(&models.Category{}).
		Select("categories.*, COUNT(blog_posts.id) AS post_count").
		Joins("JOIN blog_posts ON blog_posts.category_id = categories.id AND blog_posts.status = ?", models.StatusPublished).
		Group("categories.id").
		Order("categories.name").
		Find(&categories).Error
	return categories, err
}

// ListTags returns tags that have at least one published post.
func (r *PostgresTaxonomyRepository) ListTags() ([]TagWithCount, error) {
	var tags []TagWithCount
	err := r.db.Model(&models.Tag{}).
		Select("tags.*, COUNT(blog_posts.id) AS post_count").
		Joins("JOIN blog_post_tags ON blog_post_tags.tag_id = tags.id").
		Joins("JOIN blog_posts ON blog_posts.id = blog_post_tags.blog_post_id AND blog_posts.status = ?", models.StatusPublished).
		Group("tags.id").
		Order("tags.name").
		Find(&tags).Error
	return tags, err
}

func (r *PostgresTaxonomyRepository) GetCategoryBySlug(s string) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("slug = ?", s).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *PostgresTaxonomyRepository) GetTagBySlug(s string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.Where("slug = ?", s).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *PostgresTaxonomyRepository) GetOrCreateCategory(name string) (*models.Category, error) {
	var category models.Category
	err := r.db.Attrs(models.Category{Slug: slug.Make(name)}).
		FirstOrCreate(&category, models.Category{Name: name}).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *PostgresTaxonomyRepository) GetOrCreateTags(names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		var tag models.Tag
		err := r.db.Attrs(models.Tag{Slug: slug.Make(name)}).
			FirstOrCreate(&tag, models.Tag{Name: name}).Error
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
