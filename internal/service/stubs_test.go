package service

import (
	"context"
	"errors"
	"testing"

	"campusforum/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn        func(context.Context, *models.User) error
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}

// memUserRepo returns a stub backed by a map keyed by username.
func memUserRepo() *userRepoStub {
	users := map[string]*models.User{}
	var nextID uint
	return &userRepoStub{
		createFn: func(_ context.Context, u *models.User) error {
			if _, ok := users[u.Username]; ok {
				return models.NewConflictError("username already taken")
			}
			nextID++
			u.ID = nextID
			users[u.Username] = u
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			for _, u := range users {
				if u.ID == id {
					return u, nil
				}
			}
			return nil, models.NewNotFoundError("User", id)
		},
		getByUsernameFn: func(_ context.Context, name string) (*models.User, error) {
			return users[name], nil
		},
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn     func(context.Context, *models.Post) error
	getByIDFn    func(context.Context, uint) (*models.Post, error)
	listFn       func(context.Context, int, int) (models.Page[models.Post], error)
	listByUserFn func(context.Context, uint, int, int) (models.Page[models.Post], error)
	searchFn     func(context.Context, string, int, int) (models.Page[models.Post], error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context, page, perPage int) (models.Page[models.Post], error) {
	return s.listFn(ctx, page, perPage)
}
func (s *postRepoStub) ListByUser(ctx context.Context, userID uint, page, perPage int) (models.Page[models.Post], error) {
	return s.listByUserFn(ctx, userID, page, perPage)
}
func (s *postRepoStub) Search(ctx context.Context, keyword string, page, perPage int) (models.Page[models.Post], error) {
	return s.searchFn(ctx, keyword, page, perPage)
}

func noopPostRepo() *postRepoStub {
	empty := func() (models.Page[models.Post], error) { return models.NewPage[models.Post](nil, 1, 7, 0), nil }
	return &postRepoStub{
		createFn:  func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		listFn:    func(_ context.Context, _, _ int) (models.Page[models.Post], error) { return empty() },
		listByUserFn: func(_ context.Context, _ uint, _, _ int) (models.Page[models.Post], error) {
			return empty()
		},
		searchFn: func(_ context.Context, _ string, _, _ int) (models.Page[models.Post], error) {
			return empty()
		},
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint, int, int) (models.Page[models.Comment], error)
	listByUserFn func(context.Context, uint, int, int) (models.Page[models.Comment], error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint, page, perPage int) (models.Page[models.Comment], error) {
	return s.listByPostFn(ctx, postID, page, perPage)
}
func (s *commentRepoStub) ListByUser(ctx context.Context, userID uint, page, perPage int) (models.Page[models.Comment], error) {
	return s.listByUserFn(ctx, userID, page, perPage)
}

func noopCommentRepo() *commentRepoStub {
	empty := models.NewPage[models.Comment](nil, 1, 7, 0)
	return &commentRepoStub{
		createFn:  func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		listByPostFn: func(_ context.Context, _ uint, _, _ int) (models.Page[models.Comment], error) {
			return empty, nil
		},
		listByUserFn: func(_ context.Context, _ uint, _, _ int) (models.Page[models.Comment], error) {
			return empty, nil
		},
	}
}

func assertAppError(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, models.CodeValidation)
}
