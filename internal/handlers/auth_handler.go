package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/arpansahu/portfolio-api/internal/models"
	"github.com/arpansahu/portfolio-api/internal/repositories"
	"github.com/arpansahu/portfolio-api/pkg/mailer"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Action-token purposes.
const (
	purposeActivate = "activate"
	purposeReset    = "password_reset"
)

// AuthHandler handles registration, login and account-lifecycle emails.
type AuthHandler struct {
	accountRepository repositories.AccountRepository
	firebaseAuth      *auth.Client // nil disables /firebase-login
	mailer            *mailer.Mailer
	jwtSecret         string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(accountRepo repositories.AccountRepository, firebaseAuthClient *auth.Client, m *mailer.Mailer, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		accountRepository: accountRepo,
		firebaseAuth:      firebaseAuthClient,
		mailer:            m,
		jwtSecret:         jwtSecret,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/signup", h.Signup)
	g.GET("/activate", h.Activate)
	g.POST("/signin", h.SignIn)
	g.POST("/firebase-login", h.FirebaseLogin)
	g.POST("/password-reset", h.RequestPasswordReset)
	g.POST("/password-reset/confirm", h.ConfirmPasswordReset)
}

// Signup registers a local account. The account stays inactive until the
// emailed activation link is followed.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.accountRepository.GetAccountByEmail(req.Email); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "An account with this email already exists")
	}
	if _, err := h.accountRepository.GetAccountByUsername(req.Username); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "This username is taken")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	account := &models.Account{
		Username:  req.Username,
		Email:     strings.ToLower(req.Email),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  string(hashed),
		IsActive:  false,
	}
	if err := h.accountRepository.CreateAccount(account); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	token, err := h.generateActionToken(account.ID, purposeActivate, 24*time.Hour)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate activation token")
	}
	if err := h.mailer.SendActivationEmail(account.Email, account.DisplayName(), token); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to send activation email")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Account created. Check your email to activate it.",
	})
}

// Activate flips the account active after verifying the emailed token, then
// sends the welcome email.
func (h *AuthHandler) Activate(c echo.Context) error {
	tokenString := c.QueryParam("token")
	if tokenString == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing activation token")
	}

	claims, err := h.parseActionToken(tokenString, purposeActivate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid or expired activation link")
	}

	account, err := h.accountRepository.GetAccountByID(claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Account not found")
	}
	if !account.IsActive {
		if err := h.accountRepository.ActivateAccount(account.ID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		if err := h.mailer.SendWelcomeEmail(account.Email, account.DisplayName()); err != nil {
			log.Printf("welcome email to %s failed: %v", account.Email, err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Account activated."})
}

// SignIn authenticates an active local account and returns a session JWT.
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req models.SigninRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	account, err := h.accountRepository.GetAccountByEmail(strings.ToLower(req.Email))
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}
	if account.Password == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "This account uses social login")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(req.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}
	if !account.IsActive {
		return echo.NewHTTPError(http.StatusForbidden, "Account is not activated. Check your email.")
	}

	token, err := h.generateSessionToken(account)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}
	return c.JSON(http.StatusOK, echo.Map{"token": token, "user": account.ToCompact()})
}

// FirebaseLogin verifies a Firebase ID token (Google or GitHub sign-in) and
// exchanges it for a local session JWT, creating the account on first login.
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	if h.firebaseAuth == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Social login is not configured")
	}

	var req models.FirebaseLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	decoded, err := h.firebaseAuth.VerifyIDToken(c.Request().Context(), req.IDToken)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid ID token")
	}

	account, err := h.accountRepository.GetAccountByFirebaseUID(decoded.UID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		account, err = h.createFirebaseAccount(decoded)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	token, err := h.generateSessionToken(account)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}
	return c.JSON(http.StatusOK, echo.Map{"token": token, "user": account.ToCompact()})
}

// createFirebaseAccount provisions a local account from verified token
// claims. Social accounts are active immediately; the provider already
// verified the email.
func (h *AuthHandler) createFirebaseAccount(decoded *auth.Token) (*models.Account, error) {
	email, _ := decoded.Claims["email"].(string)
	name, _ := decoded.Claims["name"].(string)

	username := strings.Split(email, "@")[0]
	if username == "" {
		username = "user_" + decoded.UID[:8]
	}
	// Avoid username collisions with existing accounts.
	if _, err := h.accountRepository.GetAccountByUsername(username); err == nil {
		username = username + "_" + decoded.UID[:6]
	}

	first, last := splitName(name)
	account := &models.Account{
		Username:    username,
		Email:       strings.ToLower(email),
		FirstName:   first,
		LastName:    last,
		FirebaseUID: decoded.UID,
		IsActive:    true,
	}
	if err := h.accountRepository.CreateAccount(account); err != nil {
		return nil, err
	}
	return account, nil
}

// RequestPasswordReset emails a reset link. Responds identically whether or
// not the email is registered.
func (h *AuthHandler) RequestPasswordReset(c echo.Context) error {
	var req models.PasswordResetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	account, err := h.accountRepository.GetAccountByEmail(strings.ToLower(req.Email))
	if err == nil && account.Password != "" {
		token, err := h.generateActionToken(account.ID, purposeReset, time.Hour)
		if err == nil {
			if err := h.mailer.SendPasswordResetEmail(account.Email, account.DisplayName(), token); err != nil {
				log.Printf("password reset email to %s failed: %v", account.Email, err)
			}
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "If that email is registered, a reset link has been sent.",
	})
}

// ConfirmPasswordReset sets a new password after verifying the reset token.
func (h *AuthHandler) ConfirmPasswordReset(c echo.Context) error {
	var req models.PasswordResetConfirmRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	claims, err := h.parseActionToken(req.Token, purposeReset)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid or expired reset link")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}
	if err := h.accountRepository.UpdatePassword(claims.UserID, string(hashed)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Password updated."})
}

func (h *AuthHandler) generateSessionToken(account *models.Account) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID:  account.ID,
		Email:   account.Email,
		IsAdmin: account.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(72 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}

func (h *AuthHandler) generateActionToken(userID uint, purpose string, ttl time.Duration) (string, error) {
	claims := &models.ActionTokenClaims{
		UserID:  userID,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}

func (h *AuthHandler) parseActionToken(tokenString, purpose string) (*models.ActionTokenClaims, error) {
	claims := &models.ActionTokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(h.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Purpose != purpose {
		return nil, errors.New("token purpose mismatch")
	}
	return claims, nil
}

func splitName(full string) (string, string) {
	full = strings.TrimSpace(full)
	if full == "" {
		return "", ""
	}
	parts := strings.SplitN(full, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}
