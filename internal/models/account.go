package models

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Account is a registered user of the site. Social-login accounts carry a
// FirebaseUID and no password hash.
type Account struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Email       string    `json:"email" gorm:"size:254;uniqueIndex"`
	Username    string    `json:"username" gorm:"size:30;uniqueIndex"`
	FirstName   string    `json:"first_name" gorm:"size:30"`
	LastName    string    `json:"last_name" gorm:"size:30"`
	Password    string    `json:"-"` // bcrypt hash, empty for social-login accounts
	FirebaseUID string    `json:"-" gorm:"size:128;index"`
	IsActive    bool      `json:"is_active"`
	IsAdmin     bool      `json:"-"`
	CreatedAt   time.Time `json:"date_joined"`
	UpdatedAt   time.Time `json:"-"`
}

// DisplayName returns the name shown next to the account's comments and
// notifications: full name when set, otherwise the username.
func (a *Account) DisplayName() string {
	full := strings.TrimSpace(a.FirstName + " " + a.LastName)
	if full != "" {
		return full
	}
	return a.Username
}

// AccountCompact is the public projection embedded in comments and profiles.
type AccountCompact struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

func (a *Account) ToCompact() AccountCompact {
	return AccountCompact{ID: a.ID, Username: a.Username, Name: a.DisplayName()}
}

type SignupRequest struct {
	Username  string `json:"username" validate:"required,min=2,max=30"`
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"omitempty,max=30"`
	LastName  string `json:"last_name" validate:"omitempty,max=30"`
	Password  string `json:"password" validate:"required,min=8"`
}

type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type FirebaseLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type PasswordResetConfirmRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type UpdateProfileRequest struct {
	Username  string `json:"username,omitempty" validate:"omitempty,min=2,max=30"`
	FirstName string `json:"first_name,omitempty" validate:"omitempty,max=30"`
	LastName  string `json:"last_name,omitempty" validate:"omitempty,max=30"`
}

// JwtCustomClaims are the session claims issued at signin.
type JwtCustomClaims struct {
	UserID  uint   `json:"user_id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin,omitempty"`
	jwt.RegisteredClaims
}

// ActionTokenClaims back single-purpose links sent by email (account
// activation, password reset). Purpose prevents cross-use of the two.
type ActionTokenClaims struct {
	UserID  uint   `json:"user_id"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}
