package models

import "time"

// Taggable target kinds. Comments and notifications attach to content rows
// through a (kind, id) pair instead of a foreign key per content type; the
// set of kinds is closed and each kind has its own lookup in the services.
const (
	TargetPost    = "post"
	TargetComment = "comment"
)

// Comment is attached to a taggable target and optionally to a parent
// comment, forming an unbounded-depth reply tree. Either AuthorID (registered
// account) or GuestName identifies the writer.
type Comment struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	TargetType string    `json:"target_type" gorm:"size:20;index:idx_comments_target,priority:1"`
	TargetID   uint      `json:"target_id" gorm:"index:idx_comments_target,priority:2"`
	AuthorID   *uint     `json:"author_id,omitempty" gorm:"index"`
	Author     *Account  `json:"author,omitempty"`
	GuestName  string    `json:"guest_name,omitempty" gorm:"size:100"`
	GuestEmail string    `json:"-" gorm:"size:254"` // for notifications, never displayed
	ParentID   *uint     `json:"parent_id,omitempty" gorm:"index"`
	Content    string    `json:"content"`
	IsApproved bool      `json:"is_approved" gorm:"index"`
	IsEdited   bool      `json:"is_edited"`
	IsPinned   bool      `json:"is_pinned"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// AuthorDisplayName resolves the name shown for the comment: account full
// name, then username, then guest name, then "Anonymous".
func (c *Comment) AuthorDisplayName() string {
	if c.Author != nil {
		return c.Author.DisplayName()
	}
	if c.GuestName != "" {
		return c.GuestName
	}
	return "Anonymous"
}

// CommentLike is one user's like of one comment, at most one row per pair.
type CommentLike struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CommentID uint      `json:"comment_id" gorm:"index;uniqueIndex:idx_comment_user_like"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_comment_user_like"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentEditHistory is an append-only record of the content a comment held
// before each edit. Rows are never updated or deleted.
type CommentEditHistory struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	CommentID       uint      `json:"comment_id" gorm:"index"`
	PreviousContent string    `json:"previous_content"`
	EditedByID      *uint     `json:"edited_by_id,omitempty"`
	EditedBy        *Account  `json:"edited_by,omitempty" gorm:"foreignKey:EditedByID"`
	EditedAt        time.Time `json:"edited_at" gorm:"autoCreateTime"`
}

type CreateCommentRequest struct {
	Content    string `json:"content" form:"content" validate:"required,min=1"`
	ParentID   *uint  `json:"parent_id,omitempty" form:"parent_id"`
	GuestName  string `json:"guest_name,omitempty" form:"guest_name" validate:"omitempty,max=100"`
	GuestEmail string `json:"guest_email,omitempty" form:"guest_email" validate:"omitempty,email"`
}

type EditCommentRequest struct {
	Content string `json:"content" form:"content" validate:"required,min=1"`
}
