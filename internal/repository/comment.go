package repository

import (
	"context"

	"quill/internal/cache"
	"quill/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentRepository defines interface for comment operations.
// UpdateOwned/DeleteOwned follow the same ownership-scoped write contract as
// PostRepository.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error)
	UpdateOwned(ctx context.Context, commentID, ownerID uint, content string) (int64, error)
	DeleteOwned(ctx context.Context, commentID, ownerID uint) (int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return err
	}
	// The cached post detail embeds comments_count.
	cache.InvalidatePost(ctx, comment.PostID)
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Post").
		First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ?", postID).
		Order("created_at desc").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) UpdateOwned(ctx context.Context, commentID, ownerID uint, content string) (int64, error) {
	// RETURNING post_id identifies the cached post to invalidate without a
	// separate lookup.
	var updated models.Comment
	res := r.db.WithContext(ctx).
		Model(&updated).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "post_id"}}}).
		Where("id = ? AND user_id = ?", commentID, ownerID).
		Update("content", content)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		cache.InvalidatePost(ctx, updated.PostID)
	}
	return res.RowsAffected, nil
}

func (r *commentRepository) DeleteOwned(ctx context.Context, commentID, ownerID uint) (int64, error) {
	var deleted models.Comment
	res := r.db.WithContext(ctx).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "post_id"}}}).
		Where("id = ? AND user_id = ?", commentID, ownerID).
		Delete(&deleted)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		cache.InvalidatePost(ctx, deleted.PostID)
	}
	return res.RowsAffected, nil
}
