package repository

import (
	"context"
	"errors"

	"campusforum/internal/cache"
	"campusforum/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, page, perPage int) (models.Page[models.Post], error)
	ListByUser(ctx context.Context, userID uint, page, perPage int) (models.Page[models.Post], error)
	Search(ctx context.Context, keyword string, page, perPage int) (models.Page[models.Post], error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) (err error) {
	ctx, end := track(ctx, "Create", "posts")
	defer func() { end(err) }()

	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// GetByID returns the post with its author. Posts are immutable, so the result
// is served through the cache.
func (r *postRepository) GetByID(ctx context.Context, id uint) (_ *models.Post, err error) {
	ctx, end := track(ctx, "GetByID", "posts")
	defer func() { end(err) }()

	var post models.Post
	err = cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, func() error {
		if err := r.db.WithContext(ctx).Preload("User").First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, page, perPage int) (_ models.Page[models.Post], err error) {
	ctx, end := track(ctx, "List", "posts")
	defer func() { end(err) }()

	base := r.db.WithContext(ctx).Model(&models.Post{})
	return Paginate[models.Post](base, page, perPage, orderBy(newestFirst), preload("User"))
}

func (r *postRepository) ListByUser(ctx context.Context, userID uint, page, perPage int) (_ models.Page[models.Post], err error) {
	ctx, end := track(ctx, "ListByUser", "posts")
	defer func() { end(err) }()

	base := r.db.WithContext(ctx).Model(&models.Post{}).Where("user_id = ?", userID)
	return Paginate[models.Post](base, page, perPage, orderBy(newestFirst), preload("User"))
}

// Search matches keyword case-insensitively and literally against title and content.
func (r *postRepository) Search(ctx context.Context, keyword string, page, perPage int) (_ models.Page[models.Post], err error) {
	ctx, end := track(ctx, "Search", "posts")
	defer func() { end(err) }()

	pattern := containsPattern(keyword)
	base := r.db.WithContext(ctx).Model(&models.Post{}).
		Where(`LOWER(title) LIKE LOWER(?) ESCAPE '\' OR LOWER(content) LIKE LOWER(?) ESCAPE '\'`, pattern, pattern)
	return Paginate[models.Post](base, page, perPage, orderBy(newestFirst), preload("User"))
}
