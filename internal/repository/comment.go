package repository

import (
	"context"
	"errors"

	"campusforum/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByPost(ctx context.Context, postID uint, page, perPage int) (models.Page[models.Comment], error)
	ListByUser(ctx context.Context, userID uint, page, perPage int) (models.Page[models.Comment], error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) (err error) {
	ctx, end := track(ctx, "Create", "comments")
	defer func() { end(err) }()

	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (_ *models.Comment, err error) {
	ctx, end := track(ctx, "GetByID", "comments")
	defer func() { end(err) }()

	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("User").First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &comment, nil
}

// ListByPost returns every comment of the post, replies included, flattened in
// recency order. Each comment carries its author and its direct replies.
func (r *commentRepository) ListByPost(ctx context.Context, postID uint, page, perPage int) (_ models.Page[models.Comment], err error) {
	ctx, end := track(ctx, "ListByPost", "comments")
	defer func() { end(err) }()

	base := r.db.WithContext(ctx).Model(&models.Comment{}).Where("post_id = ?", postID)
	return Paginate[models.Comment](base, page, perPage,
		orderBy(newestFirst),
		preload("User"),
		preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}),
		preload("Replies.User"),
	)
}

// ListByUser returns the user's comments and replies newest first, each with its post.
func (r *commentRepository) ListByUser(ctx context.Context, userID uint, page, perPage int) (_ models.Page[models.Comment], err error) {
	ctx, end := track(ctx, "ListByUser", "comments")
	defer func() { end(err) }()

	base := r.db.WithContext(ctx).Model(&models.Comment{}).Where("user_id = ?", userID)
	return Paginate[models.Comment](base, page, perPage, orderBy(newestFirst), preload("Post"), preload("User"))
}
