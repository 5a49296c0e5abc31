package events

import (
	"fmt"
	"log"
	"strings"

	"github.com/arpansahu/portfolio-api/internal/models"
	"github.com/arpansahu/portfolio-api/internal/repositories"
)

// Notifier translates domain events into notification rows for registered
// accounts. Dispatch is synchronous and best-effort: a failed insert is
// logged and never fails the request that emitted the event.
type Notifier struct {
	comments      repositories.CommentRepository
	posts         repositories.PostRepository
	notifications repositories.NotificationRepository
}

func NewNotifier(
	commentRepo repositories.CommentRepository,
	postRepo repositories.PostRepository,
	notificationRepo repositories.NotificationRepository,
) *Notifier {
	return &Notifier{
		comments:      commentRepo,
		posts:         postRepo,
		notifications: notificationRepo,
	}
}

// Dispatch evaluates each event's notification rules in order.
func (n *Notifier) Dispatch(events []Event) {
	for _, ev := range events {
		var err error
		switch e := ev.(type) {
		case CommentCreated:
			err = n.onCommentCreated(e)
		case PostLiked:
			err = n.onPostLiked(e)
		case CommentLiked:
			err = n.onCommentLiked(e)
		}
		if err != nil {
			log.Printf("notifier: %s: %v", ev.Name(), err)
		}
	}
}

// onCommentCreated notifies the parent comment's author when someone else
// replies. Guests never receive notifications; a guest replying to their own
// comment (matched by email, case-insensitive) is ignored.
func (n *Notifier) onCommentCreated(e CommentCreated) error {
	comment := e.Comment
	if comment.ParentID == nil {
		return nil
	}

	parent, err := n.comments.GetCommentByID(*comment.ParentID)
	if err != nil {
		return fmt.Errorf("load parent comment %d: %w", *comment.ParentID, err)
	}
	if parent.AuthorID == nil {
		return nil // recipient must be a registered account
	}
	if sameCommenter(comment, parent) {
		return nil
	}

	title := n.targetTitle(comment.TargetType, comment.TargetID)
	senderName := comment.AuthorDisplayName()

	return n.notifications.CreateNotification(&models.Notification{
		Type:        models.NotificationCommentReply,
		RecipientID: *parent.AuthorID,
		SenderID:    comment.AuthorID,
		SenderName:  senderName,
		TargetType:  comment.TargetType,
		TargetID:    comment.TargetID,
		CommentID:   comment.ParentID,
		Message:     fmt.Sprintf("%s replied to your comment on %q", senderName, title),
	})
}

func (n *Notifier) onPostLiked(e PostLiked) error {
	if e.Actor.ID == e.Post.AuthorID {
		return nil // no self-notifications
	}
	senderName := e.Actor.DisplayName()
	senderID := e.Actor.ID
	return n.notifications.CreateNotification(&models.Notification{
		Type:        models.NotificationPostLike,
		RecipientID: e.Post.AuthorID,
		SenderID:    &senderID,
		SenderName:  senderName,
		TargetType:  models.TargetPost,
		TargetID:    e.Post.ID,
		Message:     fmt.Sprintf("%s liked your post %q", senderName, e.Post.Title),
	})
}

func (n *Notifier) onCommentLiked(e CommentLiked) error {
	comment := e.Comment
	if comment.AuthorID == nil || e.Actor.ID == *comment.AuthorID {
		return nil
	}
	title := n.targetTitle(comment.TargetType, comment.TargetID)
	senderName := e.Actor.DisplayName()
	senderID := e.Actor.ID
	commentID := comment.ID
	return n.notifications.CreateNotification(&models.Notification{
		Type:        models.NotificationCommentLike,
		RecipientID: *comment.AuthorID,
		SenderID:    &senderID,
		SenderName:  senderName,
		TargetType:  comment.TargetType,
		TargetID:    comment.TargetID,
		CommentID:   &commentID,
		Message:     fmt.Sprintf("%s liked your comment on %q", senderName, title),
	})
}

// targetTitle resolves the human-readable title of a tagged target, one
// lookup per known kind.
func (n *Notifier) targetTitle(targetType string, targetID uint) string {
	switch targetType {
	case models.TargetPost:
		if post, err := n.posts.GetPostByID(targetID); err == nil {
			return post.Title
		}
	}
	return "a post"
}

// sameCommenter reports whether two comments were written by the same
// person: identical account IDs for registered users, case-insensitive
// email equality for guest-to-guest.
func sameCommenter(a, b *models.Comment) bool {
	if a.AuthorID != nil && b.AuthorID != nil {
		return *a.AuthorID == *b.AuthorID
	}
	if a.AuthorID == nil && b.AuthorID == nil {
		if a.GuestEmail != "" && b.GuestEmail != "" {
			return strings.EqualFold(a.GuestEmail, b.GuestEmail)
		}
	}
	return false
}
