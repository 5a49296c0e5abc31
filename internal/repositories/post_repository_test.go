package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/arpansahu/portfolio-api/internal/models"
)

func publishedPost(t *testing.T, db *gorm.DB, title string, publishedAt time.Time) *models.BlogPost {
	t.Helper()
	post := &models.BlogPost{
		Title:       title,
		Slug:        title,
		AuthorID:    1,
		Content:     "content for " + title,
		Status:      models.StatusPublished,
		PublishedAt: &publishedAt,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func TestListPublishedExcludesDrafts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresPostRepository(db)

	publishedPost(t, db, "visible", time.Now())
	require.NoError(t, db.Create(&models.BlogPost{
		Title: "draft", Slug: "draft", AuthorID: 1, Status: models.StatusDraft,
	}).Error)

	posts, total, err := repo.ListPublished(PostFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, posts, 1)
	assert.Equal(t, "visible", posts[0].Title)
}

func TestListPublishedPaginatesNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresPostRepository(db)

	base := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		publishedPost(t, db, fmt.Sprintf("post-%02d", i), base.Add(time.Duration(i)*time.Hour))
	}

	posts, total, err := repo.ListPublished(PostFilter{Page: 1, Limit: 9})
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
	require.Len(t, posts, 9)
	assert.Equal(t, "post-11", posts[0].Title)

	posts, _, err = repo.ListPublished(PostFilter{Page: 2, Limit: 9})
	require.NoError(t, err)
	assert.Len(t, posts, 3)
	assert.Equal(t, "post-02", posts[0].Title)
}

func TestListPublishedFiltersByCategoryAndTag(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresPostRepository(db)

	category := &models.Category{Name: "Go", Slug: "go"}
	require.NoError(t, db.Create(category).Error)
	tag := &models.Tag{Name: "testing", Slug: "testing"}
	require.NoError(t, db.Create(tag).Error)

	now := time.Now()
	inCategory := publishedPost(t, db, "in-category", now)
	require.NoError(t, db.Model(inCategory).Update("category_id", category.ID).Error)

	tagged := publishedPost(t, db, "tagged", now)
	require.NoError(t, db.Model(tagged).Association("Tags").Append(tag))

	publishedPost(t, db, "plain", now)

	posts, total, err := repo.ListPublished(PostFilter{CategorySlug: "go"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, posts, 1)
	assert.Equal(t, "in-category", posts[0].Title)

	posts, total, err = repo.ListPublished(PostFilter{TagSlug: "testing"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, posts, 1)
	assert.Equal(t, "tagged", posts[0].Title)
}

func TestListPublishedSearch(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresPostRepository(db)

	now := time.Now()
	publishedPost(t, db, "Generics in practice", now)
	publishedPost(t, db, "Profiling services", now)

	posts, total, err := repo.ListPublished(PostFilter{Search: "Generics"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, posts, 1)
	assert.Equal(t, "Generics in practice", posts[0].Title)

	// Matching ignores case, like the site's search box always has.
	for _, q := range []string{"generics", "GENERICS", "gEnErIcS"} {
		posts, total, err = repo.ListPublished(PostFilter{Search: q})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total, q)
		require.Len(t, posts, 1, q)
		assert.Equal(t, "Generics in practice", posts[0].Title)
	}
}

func TestGetPublishedBySlugIgnoresDrafts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresPostRepository(db)

	require.NoError(t, db.Create(&models.BlogPost{
		Title: "draft", Slug: "draft-slug", AuthorID: 1, Status: models.StatusDraft,
	}).Error)

	_, err := repo.GetPublishedBySlug("draft-slug")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestIncrementViews(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresPostRepository(db)

	post := publishedPost(t, db, "counted", time.Now())
	require.NoError(t, repo.IncrementViews(post.ID))
	require.NoError(t, repo.IncrementViews(post.ID))

	got, err := repo.GetPostByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(2), got.Views)
}

func TestListRelatedSharesCategoryOrTag(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresPostRepository(db)

	category := &models.Category{Name: "Go", Slug: "go"}
	require.NoError(t, db.Create(category).Error)

	now := time.Now()
	subject := publishedPost(t, db, "subject", now)
	require.NoError(t, db.Model(subject).Update("category_id", category.ID).Error)
	subject.CategoryID = &category.ID

	sibling := publishedPost(t, db, "sibling", now)
	require.NoError(t, db.Model(sibling).Update("category_id", category.ID).Error)
	publishedPost(t, db, "unrelated", now)

	related, err := repo.ListRelated(subject, 5)
	require.NoError(t, err)
	require.Len(t, related, 1)
	assert.Equal(t, "sibling", related[0].Title)
}
