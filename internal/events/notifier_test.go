package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/arpansahu/portfolio-api/internal/models"
	"github.com/arpansahu/portfolio-api/internal/repositories"
)

func setupNotifier(t *testing.T) (*Notifier, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Account{},
		&models.BlogPost{},
		&models.Comment{},
		&models.Notification{},
	))

	n := NewNotifier(
		repositories.NewPostgresCommentRepository(db),
		repositories.NewPostgresPostRepository(db),
		repositories.NewPostgresNotificationRepository(db),
	)
	return n, db
}

func seedAccount(t *testing.T, db *gorm.DB, username, first, last string) *models.Account {
	t.Helper()
	account := &models.Account{
		Email:     username + "@example.com",
		Username:  username,
		FirstName: first,
		LastName:  last,
		IsActive:  true,
	}
	require.NoError(t, db.Create(account).Error)
	return account
}

func seedPost(t *testing.T, db *gorm.DB, authorID uint, title string) *models.BlogPost {
	t.Helper()
	post := &models.BlogPost{
		Title:    title,
		Slug:     title,
		AuthorID: authorID,
		Status:   models.StatusPublished,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func seedComment(t *testing.T, db *gorm.DB, c *models.Comment) *models.Comment {
	t.Helper()
	require.NoError(t, db.Create(c).Error)
	return c
}

func allNotifications(t *testing.T, db *gorm.DB) []models.Notification {
	t.Helper()
	var rows []models.Notification
	require.NoError(t, db.Find(&rows).Error)
	return rows
}

func TestReplyNotifiesParentAuthor(t *testing.T) {
	n, db := setupNotifier(t)
	alice := seedAccount(t, db, "alice", "Alice", "Smith")
	bob := seedAccount(t, db, "bob", "", "")
	post := seedPost(t, db, alice.ID, "Go Concurrency Patterns")

	parent := seedComment(t, db, &models.Comment{
		TargetType: models.TargetPost, TargetID: post.ID,
		AuthorID: &alice.ID, Content: "root", IsApproved: true,
	})
	reply := seedComment(t, db, &models.Comment{
		TargetType: models.TargetPost, TargetID: post.ID,
		AuthorID: &bob.ID, Author: bob, ParentID: &parent.ID,
		Content: "reply", IsApproved: true,
	})

	n.Dispatch([]Event{CommentCreated{Comment: reply}})

	rows := allNotifications(t, db)
	require.Len(t, rows, 1)
	assert.Equal(t, alice.ID, rows[0].RecipientID)
	assert.Equal(t, models.NotificationCommentReply, rows[0].Type)
	assert.Equal(t, `bob replied to your comment on "Go Concurrency Patterns"`, rows[0].Message)
	assert.False(t, rows[0].IsRead)
}

func TestNoNotificationForSelfReply(t *testing.T) {
	n, db := setupNotifier(t)
	alice := seedAccount(t, db, "alice", "", "")
	post := seedPost(t, db, alice.ID, "a-post")

	parent := seedComment(t, db, &models.Comment{
		TargetType: models.TargetPost, TargetID: post.ID,
		AuthorID: &alice.ID, Content: "root", IsApproved: true,
	})
	reply := seedComment(t, db, &models.Comment{
		TargetType: models.TargetPost, TargetID: post.ID,
		AuthorID: &alice.ID, Author: alice, ParentID: &parent.ID,
		Content: "adding to my own point", IsApproved: true,
	})

	n.Dispatch([]Event{CommentCreated{Comment: reply}})
	assert.Empty(t, allNotifications(t, db))
}

func TestNoNotificationForGuestParent(t *testing.T) {
	n, db := setupNotifier(t)
	alice := seedAccount(t, db, "alice", "", "")
	post := seedPost(t, db, alice.ID, "a-post")

	parent := seedComment(t, db, &models.Comment{
		TargetType: models.TargetPost, TargetID: post.ID,
		GuestName: "Visitor", GuestEmail: "visitor@example.com",
		Content: "guest root", IsApproved: true,
	})
	reply := seedComment(t, db, &models.Comment{
		TargetType: models.TargetPost, TargetID: post.ID,
		AuthorID: &alice.ID, Author: alice, ParentID: &parent.ID,
		Content: "reply", IsApproved: true,
	})

	n.Dispatch([]Event{CommentCreated{Comment: reply}})
	assert.Empty(t, allNotifications(t, db), "guests cannot receive notifications")
}

func TestGuestSelfReplyMatchedByEmail(t *testing.T) {
	n, db := setupNotifier(t)
	alice := seedAccount(t, db, "alice", "", "")
	post := seedPost(t, db, alice.ID, "a-post")

	parent := seedComment(t, db, &models.Comment{
		TargetType: models.TargetPost, TargetID: post.ID,
		GuestName: "Visitor", GuestEmail: "Visitor@Example.com",
		Content: "guest root", IsApproved: true,
	})
	reply := seedComment(t, db, &models.Comment{
		TargetType: models.TargetPost, TargetID: post.ID,
		GuestName: "Visitor", GuestEmail: "visitor@example.com",
		ParentID: &parent.ID, Content: "me again", IsApproved: true,
	})

	n.Dispatch([]Event{CommentCreated{Comment: reply}})
	assert.Empty(t, allNotifications(t, db))
}

func TestPostLikeNotification(t *testing.T) {
	n, db := setupNotifier(t)
	alice := seedAccount(t, db, "alice", "Alice", "Smith")
	bob := seedAccount(t, db, "bob", "Bob", "Jones")
	post := seedPost(t, db, alice.ID, "Go Concurrency Patterns")

	n.Dispatch([]Event{PostLiked{Post: post, Actor: bob}})

	rows := allNotifications(t, db)
	require.Len(t, rows, 1)
	assert.Equal(t, alice.ID, rows[0].RecipientID)
	assert.Equal(t, models.NotificationPostLike, rows[0].Type)
	assert.Equal(t, `Bob Jones liked your post "Go Concurrency Patterns"`, rows[0].Message)

	// Liking your own post is silent.
	n.Dispatch([]Event{PostLiked{Post: post, Actor: alice}})
	assert.Len(t, allNotifications(t, db), 1)
}

func TestCommentLikeNotification(t *testing.T) {
	n, db := setupNotifier(t)
	alice := seedAccount(t, db, "alice", "", "")
	bob := seedAccount(t, db, "bob", "", "")
	post := seedPost(t, db, alice.ID, "Go Concurrency Patterns")

	comment := seedComment(t, db, &models.Comment{
		TargetType: models.TargetPost, TargetID: post.ID,
		AuthorID: &alice.ID, Content: "a comment", IsApproved: true,
	})

	n.Dispatch([]Event{CommentLiked{Comment: comment, Actor: bob}})

	rows := allNotifications(t, db)
	require.Len(t, rows, 1)
	assert.Equal(t, alice.ID, rows[0].RecipientID)
	assert.Equal(t, models.NotificationCommentLike, rows[0].Type)
	assert.Equal(t, `bob liked your comment on "Go Concurrency Patterns"`, rows[0].Message)

	// Your own like on your own comment is silent.
	n.Dispatch([]Event{CommentLiked{Comment: comment, Actor: alice}})
	assert.Len(t, allNotifications(t, db), 1)
}
