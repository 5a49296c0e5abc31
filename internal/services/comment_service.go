package services

import (
	"strings"

	"github.com/arpansahu/portfolio-api/internal/events"
	"github.com/arpansahu/portfolio-api/internal/models"
	"github.com/arpansahu/portfolio-api/internal/repositories"
)

// CreateCommentInput carries everything needed to attach a comment to a
// tagged target. AuthorID nil means a guest submission.
type CreateCommentInput struct {
	TargetType string
	TargetID   uint
	Content    string
	AuthorID   *uint
	GuestName  string
	GuestEmail string
	ParentID   *uint
}

// CommentNode is one comment in an assembled reply tree.
type CommentNode struct {
	models.Comment
	AuthorName string         `json:"author_name"`
	LikeCount  int64          `json:"like_count"`
	Depth      int            `json:"depth"`
	Replies    []*CommentNode `json:"replies"`
}

// CommentService owns comment writes and thread assembly. Write operations
// return the domain events they produced; the caller dispatches them.
type CommentService struct {
	comments repositories.CommentRepository
	likes    repositories.CommentLikeRepository
	accounts repositories.AccountRepository
}

func NewCommentService(
	commentRepo repositories.CommentRepository,
	likeRepo repositories.CommentLikeRepository,
	accountRepo repositories.AccountRepository,
) *CommentService {
	return &CommentService{
		comments: commentRepo,
		likes:    likeRepo,
		accounts: accountRepo,
	}
}

// Create validates and inserts a comment. Comments from registered accounts
// are approved immediately; guest comments wait for moderation.
func (s *CommentService) Create(in CreateCommentInput) (*models.Comment, []events.Event, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, nil, ErrEmptyContent
	}

	comment := &models.Comment{
		TargetType: in.TargetType,
		TargetID:   in.TargetID,
		Content:    content,
		ParentID:   in.ParentID,
	}

	if in.AuthorID != nil {
		author, err := s.accounts.GetAccountByID(*in.AuthorID)
		if err != nil {
			return nil, nil, err
		}
		comment.AuthorID = in.AuthorID
		comment.Author = author
		comment.IsApproved = true
	} else {
		guestName := strings.TrimSpace(in.GuestName)
		if guestName == "" {
			return nil, nil, ErrGuestNameRequired
		}
		comment.GuestName = guestName
		comment.GuestEmail = strings.TrimSpace(in.GuestEmail)
		comment.IsApproved = false
	}

	if in.ParentID != nil {
		if _, err := s.comments.GetCommentByID(*in.ParentID); err != nil {
			return nil, nil, err
		}
	}

	if err := s.comments.CreateComment(comment); err != nil {
		return nil, nil, err
	}

	return comment, []events.Event{events.CommentCreated{Comment: comment}}, nil
}

// Edit replaces a comment's content on behalf of its author. Submitting the
// current content unchanged is a no-op and writes no history row; otherwise
// the prior content is appended to the edit history.
func (s *CommentService) Edit(commentID, accountID uint, newContent string) (*models.Comment, bool, error) {
	comment, err := s.comments.GetCommentByID(commentID)
	if err != nil {
		return nil, false, err
	}
	if comment.AuthorID == nil || *comment.AuthorID != accountID {
		return nil, false, ErrNotAuthor
	}

	newContent = strings.TrimSpace(newContent)
	if newContent == "" {
		return nil, false, ErrEmptyContent
	}
	if newContent == comment.Content {
		return comment, false, nil
	}

	history := &models.CommentEditHistory{
		CommentID:       comment.ID,
		PreviousContent: comment.Content,
		EditedByID:      &accountID,
	}
	if err := s.comments.CreateEditHistory(history); err != nil {
		return nil, false, err
	}

	comment.Content = newContent
	comment.IsEdited = true
	if err := s.comments.UpdateComment(comment); err != nil {
		return nil, false, err
	}
	return comment, true, nil
}

// History returns the last `limit` edits of a comment, newest first.
func (s *CommentService) History(commentID uint, limit int) (*models.Comment, []models.CommentEditHistory, error) {
	comment, err := s.comments.GetCommentByID(commentID)
	if err != nil {
		return nil, nil, err
	}
	history, err := s.comments.ListEditHistory(commentID, limit)
	if err != nil {
		return nil, nil, err
	}
	return comment, history, nil
}

// ThreadDepth counts parent hops to the root; a top-level comment has depth 0.
func (s *CommentService) ThreadDepth(comment *models.Comment) (int, error) {
	depth := 0
	current := comment
	for current.ParentID != nil {
		parent, err := s.comments.GetCommentByID(*current.ParentID)
		if err != nil {
			return 0, err
		}
		depth++
		current = parent
	}
	return depth, nil
}

// ReplyCount counts approved direct replies.
func (s *CommentService) ReplyCount(commentID uint) (int64, error) {
	return s.comments.CountApprovedReplies(commentID)
}

// Thread loads every approved comment on the target and assembles the reply
// tree: pinned roots first, then oldest first, replies oldest first at every
// level. A reply whose parent is unapproved is parked at the top level
// rather than dropped.
func (s *CommentService) Thread(targetType string, targetID uint) ([]*CommentNode, error) {
	comments, err := s.comments.ListApprovedForTarget(targetType, targetID)
	if err != nil {
		return nil, err
	}

	nodes := make(map[uint]*CommentNode, len(comments))
	for i := range comments {
		c := comments[i]
		likeCount, err := s.likes.GetLikesCount(c.ID)
		if err != nil {
			return nil, err
		}
		nodes[c.ID] = &CommentNode{
			Comment:    c,
			AuthorName: c.AuthorDisplayName(),
			LikeCount:  likeCount,
		}
	}

	var roots []*CommentNode
	for i := range comments {
		node := nodes[comments[i].ID]
		if pid := comments[i].ParentID; pid != nil {
			if parent, ok := nodes[*pid]; ok {
				parent.Replies = append(parent.Replies, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	var setDepth func(node *CommentNode, depth int)
	setDepth = func(node *CommentNode, depth int) {
		node.Depth = depth
		for _, reply := range node.Replies {
			setDepth(reply, depth+1)
		}
	}
	for _, root := range roots {
		setDepth(root, 0)
	}
	return roots, nil
}
