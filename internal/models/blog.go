package models

import "time"

// Post status values.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Category groups blog posts.
type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:100;uniqueIndex"`
	Slug        string    `json:"slug" gorm:"size:100;uniqueIndex"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Tag labels blog posts, many-to-many.
type Tag struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:50;uniqueIndex"`
	Slug string `json:"slug" gorm:"size:50;uniqueIndex"`
}

// BlogPost holds Markdown content; HTML is rendered at read time.
type BlogPost struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Title           string    `json:"title" gorm:"size:200"`
	Slug            string    `json:"slug" gorm:"size:200;uniqueIndex"`
	AuthorID        uint      `json:"author_id" gorm:"index"`
	Author          *Account  `json:"author,omitempty"`
	Excerpt         string    `json:"excerpt" gorm:"size:500"`
	Content         string    `json:"content"`
	FeaturedImage   string    `json:"featured_image,omitempty"`
	CategoryID      *uint     `json:"category_id,omitempty"`
	Category        *Category `json:"category,omitempty"`
	Tags            []Tag     `json:"tags,omitempty" gorm:"many2many:blog_post_tags"`
	MetaDescription string    `json:"meta_description,omitempty" gorm:"size:160"`
	MetaKeywords    string    `json:"meta_keywords,omitempty" gorm:"size:255"`
	Status          string    `json:"status" gorm:"size:10;default:draft;index"`
	PublishedAt     *time.Time `json:"published_at,omitempty" gorm:"index"`
	Views           uint      `json:"views"`
	EnableComments  bool      `json:"enable_comments" gorm:"default:true"`
	IsFeatured      bool      `json:"is_featured"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// PostLike is one user's like of one post; the composite unique index is the
// final arbiter under concurrent toggles.
type PostLike struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"index;uniqueIndex:idx_post_user_like"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_post_user_like"`
	CreatedAt time.Time `json:"created_at"`
}

type CreatePostRequest struct {
	Title           string   `json:"title" validate:"required,min=1,max=200"`
	Excerpt         string   `json:"excerpt" validate:"required,max=500"`
	Content         string   `json:"content" validate:"required"`
	FeaturedImage   string   `json:"featured_image,omitempty" validate:"omitempty,url"`
	Category        string   `json:"category,omitempty" validate:"omitempty,max=100"`
	Tags            []string `json:"tags,omitempty" validate:"omitempty,dive,min=1,max=50"`
	MetaDescription string   `json:"meta_description,omitempty" validate:"omitempty,max=160"`
	MetaKeywords    string   `json:"meta_keywords,omitempty" validate:"omitempty,max=255"`
	Status          string   `json:"status,omitempty" validate:"omitempty,oneof=draft published archived"`
	EnableComments  *bool    `json:"enable_comments,omitempty"`
	IsFeatured      *bool    `json:"is_featured,omitempty"`
}

type UpdatePostRequest struct {
	Title           string   `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Excerpt         string   `json:"excerpt,omitempty" validate:"omitempty,max=500"`
	Content         string   `json:"content,omitempty"`
	FeaturedImage   string   `json:"featured_image,omitempty" validate:"omitempty,url"`
	Category        string   `json:"category,omitempty" validate:"omitempty,max=100"`
	Tags            []string `json:"tags,omitempty" validate:"omitempty,dive,min=1,max=50"`
	MetaDescription string   `json:"meta_description,omitempty" validate:"omitempty,max=160"`
	MetaKeywords    string   `json:"meta_keywords,omitempty" validate:"omitempty,max=255"`
	Status          string   `json:"status,omitempty" validate:"omitempty,oneof=draft published archived"`
	EnableComments  *bool    `json:"enable_comments,omitempty"`
	IsFeatured      *bool    `json:"is_featured,omitempty"`
}
