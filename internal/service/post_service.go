package service

import (
	"context"
	"strings"

	"campusforum/internal/models"
	"campusforum/internal/observability"
	"campusforum/internal/repository"
	"campusforum/internal/validation"
)

// Page sizes of the post listings.
const (
	DiscussionPerPage = 10
	ListPerPage       = 7
)

type PostService struct {
	postRepo repository.PostRepository
}

type CreatePostInput struct {
	UserID  uint
	Title   string
	Content string
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// CreatePost stores a new post. An empty title or content is not an error: the
// call is a no-op and returns a nil post.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.Title == "" || in.Content == "" {
		return nil, nil
	}
	if err := validation.ValidateTitle(in.Title); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	post := &models.Post{
		Title:   in.Title,
		Content: in.Content,
		UserID:  in.UserID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	observability.RecordWrite("post")
	return post, nil
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// ListPosts returns every post, newest first.
func (s *PostService) ListPosts(ctx context.Context, page int) (models.Page[models.Post], error) {
	return s.postRepo.List(ctx, page, DiscussionPerPage)
}

// ListUserPosts returns the posts written by userID, newest first.
func (s *PostService) ListUserPosts(ctx context.Context, userID uint, page int) (models.Page[models.Post], error) {
	return s.postRepo.ListByUser(ctx, userID, page, ListPerPage)
}

// SearchPosts returns posts whose title or content contains keyword.
func (s *PostService) SearchPosts(ctx context.Context, keyword string, page int) (models.Page[models.Post], error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return models.Page[models.Post]{}, models.NewValidationError("Search query is required")
	}
	return s.postRepo.Search(ctx, keyword, page, ListPerPage)
}
