package handlers

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gosimple/slug"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/arpansahu/portfolio-api/internal/events"
	"github.com/arpansahu/portfolio-api/internal/models"
	"github.com/arpansahu/portfolio-api/internal/repositories"
	"github.com/arpansahu/portfolio-api/internal/services"
	"github.com/arpansahu/portfolio-api/pkg/render"
)

// BlogHandler handles HTTP requests for blog posts, categories and tags
type BlogHandler struct {
	postRepository repositories.PostRepository
	taxonomyRepo   repositories.TaxonomyRepository
	postLikeRepo   repositories.PostLikeRepository
	commentService *services.CommentService
	likeService    *services.LikeService
	notifier       *events.Notifier
}

// NewBlogHandler creates a new BlogHandler
func NewBlogHandler(
	postRepo repositories.PostRepository,
	taxonomyRepo repositories.TaxonomyRepository,
	postLikeRepo repositories.PostLikeRepository,
	commentService *services.CommentService,
	likeService *services.LikeService,
	notifier *events.Notifier,
) *BlogHandler {
	return &BlogHandler{
		postRepository: postRepo,
		taxonomyRepo:   taxonomyRepo,
		postLikeRepo:   postLikeRepo,
		commentService: commentService,
		likeService:    likeService,
		notifier:       notifier,
	}
}

// RegisterPublicRoutes registers unauthenticated blog routes
func (h *BlogHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/blog/posts", h.ListPosts)
	g.GET("/blog/posts/:slug", h.GetPost)
	g.GET("/blog/categories", h.ListCategories)
	g.GET("/blog/tags", h.ListTags)
}

// RegisterAuthRoutes registers routes that require a session
func (h *BlogHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/blog/posts/:slug/like", h.TogglePostLike)
}

// RegisterAdminRoutes registers moderation/authoring routes
func (h *BlogHandler) RegisterAdminRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
}

// ListPosts returns published posts, newest first, with optional category,
// tag and free-text filters. Nine posts per page, like the site's grid.
func (h *BlogHandler) ListPosts(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	filter := repositories.PostFilter{
		CategorySlug: c.QueryParam("category"),
		TagSlug:      c.QueryParam("tag"),
		Search:       c.QueryParam("q"),
		Page:         page,
		Limit:        9,
	}

	posts, total, err := h.postRepository.ListPublished(filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	featured, err := h.postRepository.ListFeatured(3)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	return c.JSON(http.StatusOK, echo.Map{
		"posts":    posts,
		"featured": featured,
		"meta": echo.Map{
			"currentPage": max(page, 1),
			"totalPages":  totalPages,
			"totalItems":  total,
		},
	})
}

// GetPost returns a published post with rendered HTML, its approved comment
// thread, like data and related posts. Each request bumps the view counter.
func (h *BlogHandler) GetPost(c echo.Context) error {
	post, err := h.postRepository.GetPublishedBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.postRepository.IncrementViews(post.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	post.Views++

	contentHTML, err := render.Markdown(post.Content)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	thread, err := h.commentService.Thread(models.TargetPost, post.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	related, err := h.postRepository.ListRelated(post, 5)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	likeCount, err := h.postLikeRepo.GetLikesCount(post.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	liked := false
	if userID := getUserIDFromContext(c); userID != 0 {
		liked, err = h.postLikeRepo.HasUserLikedPost(post.ID, userID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"post":          post,
		"content_html":  contentHTML,
		"reading_time":  render.ReadingTime(post.Content),
		"comments":      thread,
		"related_posts": related,
		"like_count":    likeCount,
		"liked":         liked,
	})
}

// TogglePostLike likes or unlikes the post for the authenticated user.
func (h *BlogHandler) TogglePostLike(c echo.Context) error {
	post, err := h.postRepository.GetPublishedBySlug(c.Param("slug"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	liked, count, evs, err := h.likeService.TogglePostLike(post.ID, getUserIDFromContext(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	h.notifier.Dispatch(evs)

	return c.JSON(http.StatusOK, echo.Map{"liked": liked, "like_count": count})
}

// ListCategories returns categories holding at least one published post.
func (h *BlogHandler) ListCategories(c echo.Context) error {
	categories, err := h.taxonomyRepo.ListCategories()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"categories": categories})
}

// ListTags returns tags holding at least one published post.
func (h *BlogHandler) ListTags(c echo.Context) error {
	tags, err := h.taxonomyRepo.ListTags()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"tags": tags})
}

// CreatePost creates a blog post (admin). The slug is derived from the
// title; publishing stamps the published date.
func (h *BlogHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post := &models.BlogPost{
		Title:           req.Title,
		Slug:            slug.Make(req.Title),
		AuthorID:        getUserIDFromContext(c),
		Excerpt:         req.Excerpt,
		Content:         req.Content,
		FeaturedImage:   req.FeaturedImage,
		MetaDescription: req.MetaDescription,
		MetaKeywords:    req.MetaKeywords,
		Status:          models.StatusDraft,
		EnableComments:  true,
	}
	if req.Status != "" {
		post.Status = req.Status
	}
	if post.Status == models.StatusPublished {
		now := time.Now()
		post.PublishedAt = &now
	}
	if req.EnableComments != nil {
		post.EnableComments = *req.EnableComments
	}
	if req.IsFeatured != nil {
		post.IsFeatured = *req.IsFeatured
	}

	if req.Category != "" {
		category, err := h.taxonomyRepo.GetOrCreateCategory(req.Category)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		post.CategoryID = &category.ID
	}
	if len(req.Tags) > 0 {
		tags, err := h.taxonomyRepo.GetOrCreateTags(req.Tags)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		post.Tags = tags
	}

	if err := h.postRepository.CreatePost(post); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return echo.NewHTTPError(http.StatusConflict, "A post with this title already exists")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, post)
}

// UpdatePost updates an existing post (admin).
func (h *BlogHandler) UpdatePost(c echo.Context) error {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(uint(postID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if req.Title != "" && req.Title != post.Title {
		post.Title = req.Title
		post.Slug = slug.Make(req.Title)
	}
	if req.Excerpt != "" {
		post.Excerpt = req.Excerpt
	}
	if req.Content != "" {
		post.Content = req.Content
	}
	if req.FeaturedImage != "" {
		post.FeaturedImage = req.FeaturedImage
	}
	if req.MetaDescription != "" {
		post.MetaDescription = req.MetaDescription
	}
	if req.MetaKeywords != "" {
		post.MetaKeywords = req.MetaKeywords
	}
	if req.Status != "" {
		if req.Status == models.StatusPublished && post.PublishedAt == nil {
			now := time.Now()
			post.PublishedAt = &now
		}
		post.Status = req.Status
	}
	if req.EnableComments != nil {
		post.EnableComments = *req.EnableComments
	}
	if req.IsFeatured != nil {
		post.IsFeatured = *req.IsFeatured
	}

	if req.Category != "" {
		category, err := h.taxonomyRepo.GetOrCreateCategory(req.Category)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		post.CategoryID = &category.ID
	}

	if err := h.postRepository.UpdatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if req.Tags != nil {
		tags, err := h.taxonomyRepo.GetOrCreateTags(req.Tags)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		if err := h.postRepository.ReplaceTags(post, tags); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		post.Tags = tags
	}

	return c.JSON(http.StatusOK, post)
}

// DeletePost removes a post (admin).
func (h *BlogHandler) DeletePost(c echo.Context) error {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}
	if _, err := h.postRepository.GetPostByID(uint(postID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.postRepository.DeletePost(uint(postID)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
