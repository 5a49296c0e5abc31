package services

import (
	"errors"

	"github.com/arpansahu/portfolio-api/internal/events"
	"github.com/arpansahu/portfolio-api/internal/models"
	"github.com/arpansahu/portfolio-api/internal/repositories"
	"gorm.io/gorm"
)

// LikeService implements the idempotent like toggle for posts and comments.
// A single call either creates or removes the like row; concurrent duplicate
// inserts are settled by the database unique constraint.
type LikeService struct {
	postLikes    repositories.PostLikeRepository
	commentLikes repositories.CommentLikeRepository
	posts        repositories.PostRepository
	comments     repositories.CommentRepository
	accounts     repositories.AccountRepository
}

func NewLikeService(
	postLikeRepo repositories.PostLikeRepository,
	commentLikeRepo repositories.CommentLikeRepository,
	postRepo repositories.PostRepository,
	commentRepo repositories.CommentRepository,
	accountRepo repositories.AccountRepository,
) *LikeService {
	return &LikeService{
		postLikes:    postLikeRepo,
		commentLikes: commentLikeRepo,
		posts:        postRepo,
		comments:     commentRepo,
		accounts:     accountRepo,
	}
}

// TogglePostLike likes the post if the user hasn't, unlikes it otherwise.
// Returns the resulting state and total like count. A PostLiked event is
// emitted only on the like half of the toggle.
func (s *LikeService) TogglePostLike(postID, userID uint) (bool, int64, []events.Event, error) {
	post, err := s.posts.GetPostByID(postID)
	if err != nil {
		return false, 0, nil, err
	}
	actor, err := s.accounts.GetAccountByID(userID)
	if err != nil {
		return false, 0, nil, err
	}

	liked := true
	var evs []events.Event

	removed, err := s.postLikes.DeletePostLike(postID, userID)
	if err != nil {
		return false, 0, nil, err
	}
	if removed {
		liked = false
	} else {
		err := s.postLikes.CreatePostLike(&models.PostLike{PostID: postID, UserID: userID})
		switch {
		case err == nil:
			evs = append(evs, events.PostLiked{Post: post, Actor: actor})
		case errors.Is(err, gorm.ErrDuplicatedKey):
			// A concurrent request inserted the row first; the like stands.
		default:
			return false, 0, nil, err
		}
	}

	count, err := s.postLikes.GetLikesCount(postID)
	if err != nil {
		return false, 0, nil, err
	}
	return liked, count, evs, nil
}

// ToggleCommentLike is TogglePostLike for comments. Only approved comments
// can be liked.
func (s *LikeService) ToggleCommentLike(commentID, userID uint) (bool, int64, []events.Event, error) {
	comment, err := s.comments.GetCommentByID(commentID)
	if err != nil {
		return false, 0, nil, err
	}
	if !comment.IsApproved {
		return false, 0, nil, gorm.ErrRecordNotFound
	}
	actor, err := s.accounts.GetAccountByID(userID)
	if err != nil {
		return false, 0, nil, err
	}

	liked := true
	var evs []events.Event

	removed, err := s.commentLikes.DeleteCommentLike(commentID, userID)
	if err != nil {
		return false, 0, nil, err
	}
	if removed {
		liked = false
	} else {
		err := s.commentLikes.CreateCommentLike(&models.CommentLike{CommentID: commentID, UserID: userID})
		switch {
		case err == nil:
			evs = append(evs, events.CommentLiked{Comment: comment, Actor: actor})
		case errors.Is(err, gorm.ErrDuplicatedKey):
			// A concurrent request inserted the row first; the like stands.
		default:
			return false, 0, nil, err
		}
	}

	count, err := s.commentLikes.GetLikesCount(commentID)
	if err != nil {
		return false, 0, nil, err
	}
	return liked, count, evs, nil
}
