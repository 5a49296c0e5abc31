package models

import "time"

// Notification types.
const (
	NotificationCommentReply = "comment_reply"
	NotificationPostLike     = "post_like"
	NotificationCommentLike  = "comment_like"
)

// Notification is a recipient-facing record created synchronously when a
// comment or like is written. The recipient is always a registered account;
// the sender is nil when a guest triggered the event. SenderName caches the
// display name at creation time so renames don't rewrite history.
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Type        string    `json:"type" gorm:"size:30;index"`
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	SenderID    *uint     `json:"sender_id,omitempty"`
	SenderName  string    `json:"sender_name" gorm:"size:100"`
	TargetType  string    `json:"target_type,omitempty" gorm:"size:20"`
	TargetID    uint      `json:"target_id,omitempty"`
	CommentID   *uint     `json:"comment_id,omitempty"`
	Message     string    `json:"message"`
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}
