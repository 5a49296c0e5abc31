package handlers

import (
	"errors"
	"net/http"

	"github.com/arpansahu/portfolio-api/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/arpansahu/portfolio-api/internal/models"
)

// ProfileHandler handles HTTP requests related to account profiles
type ProfileHandler struct {
	accountRepository repositories.AccountRepository
	postRepository    repositories.PostRepository
	commentRepository repositories.CommentRepository
	postLikeRepo      repositories.PostLikeRepository
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(
	accountRepo repositories.AccountRepository,
	postRepo repositories.PostRepository,
	commentRepo repositories.CommentRepository,
	postLikeRepo repositories.PostLikeRepository,
) *ProfileHandler {
	return &ProfileHandler{
		accountRepository: accountRepo,
		postRepository:    postRepo,
		commentRepository: commentRepo,
		postLikeRepo:      postLikeRepo,
	}
}

// RegisterProfileRoutes registers authenticated profile routes
func (h *ProfileHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile", h.GetProfile)
	g.PUT("/profile", h.UpdateProfile)
}

// RegisterPublicRoutes registers the public profile route
func (h *ProfileHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/users/:username", h.PublicProfile)
}

// GetProfile retrieves the authenticated account's profile
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	account, err := h.accountRepository.GetAccountByID(getUserIDFromContext(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Account not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, account)
}

// UpdateProfile updates the authenticated account's profile fields
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	account, err := h.accountRepository.GetAccountByID(getUserIDFromContext(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Account not found")
	}

	if req.Username != "" && req.Username != account.Username {
		if _, err := h.accountRepository.GetAccountByUsername(req.Username); err == nil {
			return echo.NewHTTPError(http.StatusConflict, "This username is taken")
		}
		account.Username = req.Username
	}
	if req.FirstName != "" {
		account.FirstName = req.FirstName
	}
	if req.LastName != "" {
		account.LastName = req.LastName
	}

	if err := h.accountRepository.UpdateAccount(account); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, account)
}

// PublicProfile returns an account's public activity: recent posts and
// comments plus lifetime stats.
func (h *ProfileHandler) PublicProfile(c echo.Context) error {
	account, err := h.accountRepository.GetAccountByUsername(c.Param("username"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	posts, err := h.postRepository.ListByAuthor(account.ID, 10)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	comments, err := h.commentRepository.ListByAuthor(account.ID, 20)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	totalPosts, _ := h.postRepository.CountPublishedByAuthor(account.ID)
	totalComments, _ := h.commentRepository.CountApprovedByAuthor(account.ID)
	likesReceived, _ := h.postLikeRepo.CountLikesReceivedByAuthor(account.ID)

	return c.JSON(http.StatusOK, echo.Map{
		"user":     account.ToCompact(),
		"posts":    posts,
		"comments": comments,
		"stats": echo.Map{
			"total_posts":    totalPosts,
			"total_comments": totalComments,
			"likes_received": likesReceived,
		},
	})
}
