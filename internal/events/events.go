// Package events carries the domain events emitted by write operations and
// the synchronous dispatcher that turns them into notification rows. Write
// paths return an explicit []Event; nothing fires implicitly on save.
package events

import "github.com/arpansahu/portfolio-api/internal/models"

// Event is a fact about a completed write, dispatched in-process within the
// same request that produced it.
type Event interface {
	Name() string
}

// CommentCreated is emitted after a comment row is inserted. The comment
// carries its preloaded Author when one exists.
type CommentCreated struct {
	Comment *models.Comment
}

func (CommentCreated) Name() string { return "comment.created" }

// PostLiked is emitted after a post-like row is inserted (not on unlike).
type PostLiked struct {
	Post  *models.BlogPost
	Actor *models.Account
}

func (PostLiked) Name() string { return "post.liked" }

// CommentLiked is emitted after a comment-like row is inserted.
type CommentLiked struct {
	Comment *models.Comment
	Actor   *models.Account
}

func (CommentLiked) Name() string { return "comment.liked" }
