package services

import "errors"

// Sentinel errors surfaced by the services; handlers map these onto the
// HTTP error contract.
var (
	ErrEmptyContent      = errors.New("comment cannot be empty")
	ErrGuestNameRequired = errors.New("please provide your name")
	ErrNotAuthor         = errors.New("you can only edit your own comments")
	ErrRateLimited       = errors.New("maximum OTP requests reached for today")
	ErrInvalidOTP        = errors.New("invalid or expired OTP")
)
