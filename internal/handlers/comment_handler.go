package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/arpansahu/portfolio-api/internal/events"
	"github.com/arpansahu/portfolio-api/internal/models"
	"github.com/arpansahu/portfolio-api/internal/repositories"
	"github.com/arpansahu/portfolio-api/internal/services"
)

// commentTimeLayout matches the timestamp format the comment widget renders.
const commentTimeLayout = "January 2, 2006 at 3:04 PM"

// CommentHandler handles comment submission, editing, history and likes.
type CommentHandler struct {
	postRepository    repositories.PostRepository
	commentRepository repositories.CommentRepository
	commentService    *services.CommentService
	likeService       *services.LikeService
	notifier          *events.Notifier
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(
	postRepo repositories.PostRepository,
	commentRepo repositories.CommentRepository,
	commentService *services.CommentService,
	likeService *services.LikeService,
	notifier *events.Notifier,
) *CommentHandler {
	return &CommentHandler{
		postRepository:    postRepo,
		commentRepository: commentRepo,
		commentService:    commentService,
		likeService:       likeService,
		notifier:          notifier,
	}
}

// RegisterPublicRoutes registers routes open to guests. Comment submission
// sits here behind optional auth so guests and members share the endpoint.
func (h *CommentHandler) RegisterPublicRoutes(g *echo.Group) {
	g.POST("/blog/posts/:slug/comments", h.AddComment)
	g.GET("/comments/:id/history", h.CommentHistory)
}

// RegisterAuthRoutes registers routes that require a session
func (h *CommentHandler) RegisterAuthRoutes(g *echo.Group) {
	g.PUT("/comments/:id", h.EditComment)
	g.POST("/comments/:id/like", h.ToggleCommentLike)
}

// RegisterAdminRoutes registers moderation routes
func (h *CommentHandler) RegisterAdminRoutes(g *echo.Group) {
	g.PUT("/comments/:id/approve", h.ApproveComment)
	g.PUT("/comments/:id/pin", h.PinComment)
}

// AddComment attaches a comment (or reply) to a post. Registered users are
// published immediately; guest submissions are held for moderation. The
// browser widget posts with XMLHttpRequest and expects a 200 with
// success=false on validation problems rather than an error status.
func (h *CommentHandler) AddComment(c echo.Context) error {
	post, err := h.postRepository.GetPublishedBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !post.EnableComments {
		return h.commentFailure(c, http.StatusForbidden, "Comments are disabled on this post")
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return h.commentFailure(c, http.StatusBadRequest, "Invalid request payload")
	}

	input := services.CreateCommentInput{
		TargetType: models.TargetPost,
		TargetID:   post.ID,
		Content:    req.Content,
		GuestName:  req.GuestName,
		GuestEmail: req.GuestEmail,
		ParentID:   req.ParentID,
	}
	if userID := getUserIDFromContext(c); userID != 0 {
		input.AuthorID = &userID
	}

	comment, evs, err := h.commentService.Create(input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyContent):
			return h.commentFailure(c, http.StatusBadRequest, "Comment cannot be empty")
		case errors.Is(err, services.ErrGuestNameRequired):
			return h.commentFailure(c, http.StatusBadRequest, "Please provide your name")
		case errors.Is(err, gorm.ErrRecordNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "The comment you are replying to does not exist")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	h.notifier.Dispatch(evs)

	message := "Your comment has been posted"
	if !comment.IsApproved {
		message = "Your comment is awaiting moderation"
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": message,
		"comment": echo.Map{
			"id":           comment.ID,
			"author":       comment.AuthorDisplayName(),
			"content":      comment.Content,
			"created_at":   comment.CreatedAt.Format(commentTimeLayout),
			"is_approved":  comment.IsApproved,
			"is_logged_in": comment.AuthorID != nil,
		},
	})
}

// EditComment rewrites the caller's own comment. Re-submitting the current
// content is accepted but records nothing.
func (h *CommentHandler) EditComment(c echo.Context) error {
	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	var req models.EditCommentRequest
	if err := c.Bind(&req); err != nil {
		return h.commentFailure(c, http.StatusBadRequest, "Invalid request payload")
	}

	comment, changed, err := h.commentService.Edit(uint(commentID), getUserIDFromContext(c), req.Content)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		case errors.Is(err, services.ErrNotAuthor):
			return echo.NewHTTPError(http.StatusForbidden, "You can only edit your own comments")
		case errors.Is(err, services.ErrEmptyContent):
			return h.commentFailure(c, http.StatusBadRequest, "Comment cannot be empty")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":   true,
		"changed":   changed,
		"content":   comment.Content,
		"is_edited": comment.IsEdited,
	})
}

// CommentHistory returns a comment's last ten edits, newest first.
func (h *CommentHandler) CommentHistory(c echo.Context) error {
	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	comment, history, err := h.commentService.History(uint(commentID), 10)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	entries := make([]echo.Map, 0, len(history))
	for _, entry := range history {
		entries = append(entries, echo.Map{
			"previous_content": entry.PreviousContent,
			"edited_at":        entry.EditedAt.Format(commentTimeLayout),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"comment_id":      comment.ID,
		"current_content": comment.Content,
		"history":         entries,
	})
}

// ToggleCommentLike likes or unlikes an approved comment.
func (h *CommentHandler) ToggleCommentLike(c echo.Context) error {
	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	liked, count, evs, err := h.likeService.ToggleCommentLike(uint(commentID), getUserIDFromContext(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	h.notifier.Dispatch(evs)

	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"liked":      liked,
		"like_count": count,
	})
}

// ApproveComment publishes a held guest comment (admin).
func (h *CommentHandler) ApproveComment(c echo.Context) error {
	return h.setCommentFlag(c, func(id uint) error {
		return h.commentRepository.SetApproved(id, true)
	})
}

// PinComment pins or unpins a comment to the top of its thread (admin).
func (h *CommentHandler) PinComment(c echo.Context) error {
	var req struct {
		Pinned bool `json:"pinned"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	return h.setCommentFlag(c, func(id uint) error {
		return h.commentRepository.SetPinned(id, req.Pinned)
	})
}

func (h *CommentHandler) setCommentFlag(c echo.Context, update func(id uint) error) error {
	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}
	if _, err := h.commentRepository.GetCommentByID(uint(commentID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := update(uint(commentID)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// commentFailure reports a validation problem. AJAX callers get a 200 with
// success=false so the widget can render the message inline; everyone else
// gets a regular HTTP error. Missing resources are not validation problems
// and always surface as 404.
func (h *CommentHandler) commentFailure(c echo.Context, status int, message string) error {
	if isAJAX(c) {
		return c.JSON(http.StatusOK, echo.Map{"success": false, "error": message})
	}
	return echo.NewHTTPError(status, message)
}
