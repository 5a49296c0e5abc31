package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/arpansahu/portfolio-api/internal/events"
	"github.com/arpansahu/portfolio-api/internal/models"
	"github.com/arpansahu/portfolio-api/internal/repositories"
	"github.com/arpansahu/portfolio-api/internal/services"
)

func newBlogHandler(t *testing.T) (*BlogHandler, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)

	accountRepo := repositories.NewPostgresAccountRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	taxonomyRepo := repositories.NewPostgresTaxonomyRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	commentLikeRepo := repositories.NewPostgresCommentLikeRepository(db)
	postLikeRepo := repositories.NewPostgresPostLikeRepository(db)
	notificationRepo := repositories.NewPostgresNotificationRepository(db)

	commentService := services.NewCommentService(commentRepo, commentLikeRepo, accountRepo)
	likeService := services.NewLikeService(postLikeRepo, commentLikeRepo, postRepo, commentRepo, accountRepo)
	notifier := events.NewNotifier(commentRepo, postRepo, notificationRepo)

	return NewBlogHandler(postRepo, taxonomyRepo, postLikeRepo, commentService, likeService, notifier), db
}

func getPost(t *testing.T, h *BlogHandler, slug string, userID uint) *httptest.ResponseRecorder {
	t.Helper()
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/blog/posts/"+slug, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/blog/posts/:slug")
	c.SetParamNames("slug")
	c.SetParamValues(slug)
	if userID != 0 {
		c.Set("user", &models.JwtCustomClaims{UserID: userID})
	}

	if err := h.GetPost(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestGetPostLikeStatePerViewer(t *testing.T) {
	h, db := newBlogHandler(t)

	author := &models.Account{Email: "alice@example.com", Username: "alice", IsActive: true}
	require.NoError(t, db.Create(author).Error)
	reader := &models.Account{Email: "bob@example.com", Username: "bob", IsActive: true}
	require.NoError(t, db.Create(reader).Error)
	post := seedPublishedPost(t, db, "a-post", true)
	require.NoError(t, db.Create(&models.PostLike{PostID: post.ID, UserID: reader.ID}).Error)

	rec := getPost(t, h, "a-post", reader.ID)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["liked"])
	assert.Equal(t, float64(1), body["like_count"])

	// Anonymous viewers never show a like.
	rec = getPost(t, h, "a-post", 0)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeBody(t, rec)
	assert.Equal(t, false, body["liked"])
}

func TestGetPostIncrementsViews(t *testing.T) {
	h, db := newBlogHandler(t)
	seedPublishedPost(t, db, "a-post", true)

	rec := getPost(t, h, "a-post", 0)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = getPost(t, h, "a-post", 0)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	postBody := body["post"].(map[string]any)
	assert.Equal(t, float64(2), postBody["views"])
}

func TestGetPostUnknownSlug(t *testing.T) {
	h, _ := newBlogHandler(t)
	rec := getPost(t, h, "missing", 0)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
