package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/arpansahu/portfolio-api/internal/models"
	"github.com/arpansahu/portfolio-api/internal/repositories"
	"github.com/arpansahu/portfolio-api/pkg/storage"
)

// presignTTL is how long a generated resume download link stays valid.
const presignTTL = 15 * time.Minute

// ResumeHandler serves the downloadable resume backed by S3.
type ResumeHandler struct {
	resumeRepo repositories.ResumeRepository
	store      *storage.S3Storage
}

// NewResumeHandler creates a new ResumeHandler
func NewResumeHandler(resumeRepo repositories.ResumeRepository, store *storage.S3Storage) *ResumeHandler {
	return &ResumeHandler{resumeRepo: resumeRepo, store: store}
}

// RegisterPublicRoutes registers the public download route
func (h *ResumeHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/download/resume", h.DownloadResume)
}

// RegisterAdminRoutes registers the upload route
func (h *ResumeHandler) RegisterAdminRoutes(g *echo.Group) {
	g.POST("/resume", h.UploadResume)
}

// DownloadResume redirects to a short-lived presigned URL for the newest
// uploaded resume.
func (h *ResumeHandler) DownloadResume(c echo.Context) error {
	if h.store == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Resume downloads are not configured")
	}

	resume, err := h.resumeRepo.GetLatestResume()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "No resume has been uploaded yet")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	url, err := h.store.PresignDownload(c.Request().Context(), resume.FileKey, presignTTL)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.Redirect(http.StatusFound, url)
}

// UploadResume stores a new resume file in S3 and records it as the current
// one (admin, multipart form field "file").
func (h *ResumeHandler) UploadResume(c echo.Context) error {
	if h.store == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Resume uploads are not configured")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing file upload")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	defer src.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := fmt.Sprintf("resumes/%s%s", uuid.NewString(), filepath.Ext(fileHeader.Filename))
	if err := h.store.Upload(c.Request().Context(), key, contentType, src); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resume := &models.Resume{
		FileKey:     key,
		FileName:    fileHeader.Filename,
		ContentType: contentType,
		Size:        fileHeader.Size,
	}
	if err := h.resumeRepo.CreateResume(resume); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, resume)
}
