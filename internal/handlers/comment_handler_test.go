package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/arpansahu/portfolio-api/internal/events"
	"github.com/arpansahu/portfolio-api/internal/models"
	"github.com/arpansahu/portfolio-api/internal/repositories"
	"github.com/arpansahu/portfolio-api/internal/services"
)

func newCommentHandler(t *testing.T) (*CommentHandler, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)

	accountRepo := repositories.NewPostgresAccountRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	commentLikeRepo := repositories.NewPostgresCommentLikeRepository(db)
	postLikeRepo := repositories.NewPostgresPostLikeRepository(db)
	notificationRepo := repositories.NewPostgresNotificationRepository(db)

	commentService := services.NewCommentService(commentRepo, commentLikeRepo, accountRepo)
	likeService := services.NewLikeService(postLikeRepo, commentLikeRepo, postRepo, commentRepo, accountRepo)
	notifier := events.NewNotifier(commentRepo, postRepo, notificationRepo)

	return NewCommentHandler(postRepo, commentRepo, commentService, likeService, notifier), db
}

func seedPublishedPost(t *testing.T, db *gorm.DB, slug string, enableComments bool) *models.BlogPost {
	t.Helper()
	post := &models.BlogPost{
		Title:          slug,
		Slug:           slug,
		AuthorID:       1,
		Content:        "content",
		Status:         models.StatusPublished,
		EnableComments: enableComments,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func postComment(t *testing.T, h *CommentHandler, slug, body string, ajax bool) *httptest.ResponseRecorder {
	t.Helper()
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/blog/posts/"+slug+"/comments", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if ajax {
		req.Header.Set("X-Requested-With", "XMLHttpRequest")
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/blog/posts/:slug/comments")
	c.SetParamNames("slug")
	c.SetParamValues(slug)

	if err := h.AddComment(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAddCommentGuest(t *testing.T) {
	h, db := newCommentHandler(t)
	seedPublishedPost(t, db, "a-post", true)

	rec := postComment(t, h, "a-post",
		`{"content":"great read","guest_name":"Visitor","guest_email":"visitor@example.com"}`, true)
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	comment := body["comment"].(map[string]any)
	assert.Equal(t, "Visitor", comment["author"])
	assert.Equal(t, false, comment["is_approved"])
	assert.Equal(t, false, comment["is_logged_in"])
}

func TestAddCommentEmptyContentAJAX(t *testing.T) {
	h, db := newCommentHandler(t)
	seedPublishedPost(t, db, "a-post", true)

	rec := postComment(t, h, "a-post", `{"content":"   ","guest_name":"Visitor"}`, true)
	require.Equal(t, http.StatusOK, rec.Code, "AJAX validation failures come back as 200")

	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["error"])
}

func TestAddCommentEmptyContentPlainForm(t *testing.T) {
	h, db := newCommentHandler(t)
	seedPublishedPost(t, db, "a-post", true)

	rec := postComment(t, h, "a-post", `{"content":"   ","guest_name":"Visitor"}`, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddCommentDisabledPost(t *testing.T) {
	h, db := newCommentHandler(t)
	seedPublishedPost(t, db, "quiet-post", false)

	rec := postComment(t, h, "quiet-post", `{"content":"hi","guest_name":"Visitor"}`, false)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAddCommentUnknownPost(t *testing.T) {
	h, _ := newCommentHandler(t)

	// Not-found is a real 404 even for AJAX callers; only validation
	// problems come back as 200 with success=false.
	rec := postComment(t, h, "no-such-post", `{"content":"hi","guest_name":"Visitor"}`, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = postComment(t, h, "no-such-post", `{"content":"hi","guest_name":"Visitor"}`, false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddCommentUnknownParent(t *testing.T) {
	h, db := newCommentHandler(t)
	seedPublishedPost(t, db, "a-post", true)

	rec := postComment(t, h, "a-post",
		`{"content":"reply","guest_name":"Visitor","parent_id":999}`, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddCommentReplyNotifiesParentAuthor(t *testing.T) {
	h, db := newCommentHandler(t)
	post := seedPublishedPost(t, db, "a-post", true)

	author := &models.Account{Email: "alice@example.com", Username: "alice", IsActive: true}
	require.NoError(t, db.Create(author).Error)
	parent := &models.Comment{
		TargetType: models.TargetPost, TargetID: post.ID,
		AuthorID: &author.ID, Content: "root", IsApproved: true,
	}
	require.NoError(t, db.Create(parent).Error)

	rec := postComment(t, h, "a-post",
		`{"content":"replying","guest_name":"Visitor","parent_id":`+jsonUint(parent.ID)+`}`, true)
	require.Equal(t, http.StatusCreated, rec.Code)

	var notifications []models.Notification
	require.NoError(t, db.Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, author.ID, notifications[0].RecipientID)
	assert.Equal(t, models.NotificationCommentReply, notifications[0].Type)
}

func jsonUint(v uint) string {
	b, _ := json.Marshal(v)
	return string(b)
}
