package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arpansahu/portfolio-api/internal/models"
	"github.com/arpansahu/portfolio-api/internal/services"
)

// ContactHandler handles the OTP-gated contact form.
type ContactHandler struct {
	otpService     *services.OTPService
	contactService *services.ContactService
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(otpService *services.OTPService, contactService *services.ContactService) *ContactHandler {
	return &ContactHandler{
		otpService:     otpService,
		contactService: contactService,
	}
}

// RegisterContactRoutes registers the public contact routes
func (h *ContactHandler) RegisterContactRoutes(g *echo.Group) {
	g.POST("/get-otp", h.IssueOTP)
	g.POST("/contact", h.SubmitContact)
}

// IssueOTP emails a six-digit code to the visitor. Only the site's own
// JavaScript calls this, so plain form posts are turned away.
func (h *ContactHandler) IssueOTP(c echo.Context) error {
	if !isAJAX(c) {
		return echo.NewHTTPError(http.StatusForbidden, "Invalid request")
	}

	var req models.IssueOTPRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusOK, echo.Map{"status": "error", "message": "Invalid request payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusOK, echo.Map{"status": "error", "message": "Please provide a valid email address"})
	}

	if err := h.otpService.Issue(req.Email); err != nil {
		if errors.Is(err, services.ErrRateLimited) {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"status":  "error",
				"message": "Daily OTP limit reached for this email, try again tomorrow",
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"message": "OTP sent to your email",
	})
}

// SubmitContact accepts the contact form once the visitor's OTP checks out.
func (h *ContactHandler) SubmitContact(c echo.Context) error {
	var req models.ContactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		if isAJAX(c) {
			return c.JSON(http.StatusOK, echo.Map{"success": false, "error": "Please fill in all required fields"})
		}
		return err
	}

	msg, err := h.contactService.Submit(req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidOTP) {
			if isAJAX(c) {
				return c.JSON(http.StatusOK, echo.Map{"success": false, "error": "Invalid or expired OTP"})
			}
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid or expired OTP")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":   true,
		"message":   "Thanks for reaching out, I will get back to you soon",
		"reference": msg.Reference,
	})
}
