package service

import (
	"context"

	"campusforum/internal/models"
	"campusforum/internal/observability"
	"campusforum/internal/repository"
)

// CommentsPerPage is the page size of comment listings.
const CommentsPerPage = 7

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

type AddCommentInput struct {
	UserID  uint
	PostID  uint
	Content string
}

type AddReplyInput struct {
	UserID   uint
	PostID   uint
	ParentID uint
	Content  string
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// AddComment creates a top-level comment. Empty content is a no-op returning a nil comment.
func (s *CommentService) AddComment(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	if in.Content == "" {
		return nil, nil
	}
	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:  in.PostID,
		UserID:  in.UserID,
		Content: in.Content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	observability.RecordWrite("comment")
	return comment, nil
}

// AddReply creates a reply to the comment ParentID, which must belong to the
// same post. Empty content is a no-op returning a nil comment.
func (s *CommentService) AddReply(ctx context.Context, in AddReplyInput) (*models.Comment, error) {
	if in.Content == "" {
		return nil, nil
	}
	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return nil, err
	}

	parent, err := s.commentRepo.GetByID(ctx, in.ParentID)
	if err != nil {
		return nil, err
	}
	if parent.PostID != in.PostID {
		return nil, models.NewValidationError("Le commentaire ne fait pas partie de ce post.")
	}

	parentID := parent.ID
	reply := &models.Comment{
		PostID:   in.PostID,
		UserID:   in.UserID,
		Content:  in.Content,
		ParentID: &parentID,
	}
	if err := s.commentRepo.Create(ctx, reply); err != nil {
		return nil, err
	}
	observability.RecordWrite("reply")
	return reply, nil
}

// ListComments returns the comments of postID, replies included, newest first.
func (s *CommentService) ListComments(ctx context.Context, postID uint, page int) (models.Page[models.Comment], error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return models.Page[models.Comment]{}, err
	}
	return s.commentRepo.ListByPost(ctx, postID, page, CommentsPerPage)
}

// ListUserComments returns the comments and replies written by userID, newest first.
func (s *CommentService) ListUserComments(ctx context.Context, userID uint, page int) (models.Page[models.Comment], error) {
	return s.commentRepo.ListByUser(ctx, userID, page, CommentsPerPage)
}
