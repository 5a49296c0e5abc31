package models

import "time"

// EmailOTPRecord counts OTP issuances per email per calendar day. The unique
// (email, date) pair keeps one counter row per day.
type EmailOTPRecord struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"size:254;uniqueIndex:idx_otp_email_date"`
	Date      string    `json:"date" gorm:"size:10;uniqueIndex:idx_otp_email_date"` // YYYY-MM-DD
	Count     int       `json:"count" gorm:"default:1"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ContactMessage is a stored contact-form submission. Reference is the UUID
// echoed back to the visitor and quoted in the admin email.
type ContactMessage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Reference string    `json:"reference" gorm:"size:36;uniqueIndex"`
	Name      string    `json:"name" gorm:"size:100"`
	Email     string    `json:"email" gorm:"size:254;index"`
	Phone     string    `json:"phone" gorm:"size:20"`
	Subject   string    `json:"subject" gorm:"size:200"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type IssueOTPRequest struct {
	Email string `json:"email" form:"email" validate:"required,email"`
}

type ContactRequest struct {
	Name    string `json:"name" form:"name" validate:"required,max=100"`
	Email   string `json:"email" form:"email" validate:"required,email"`
	Phone   string `json:"contact" form:"contact" validate:"omitempty,max=20"`
	Subject string `json:"subject" form:"subject" validate:"required,max=200"`
	Message string `json:"message" form:"message" validate:"required"`
	OTP     string `json:"otp" form:"otp" validate:"required,len=6"`
}
