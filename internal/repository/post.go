package repository

import (
	"context"

	"quill/internal/cache"
	"quill/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations.
//
// UpdateOwned and DeleteOwned implement the ownership-scoped write: a single
// conditional statement filtered by both the post id and the owning user id.
// Zero affected rows means "absent or not yours" and the caller cannot tell
// which.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error)
	List(ctx context.Context, search string, limit, offset int, currentUserID uint) ([]*models.Post, error)
	Count(ctx context.Context, search string) (int64, error)
	UpdateOwned(ctx context.Context, postID, ownerID uint, title, content string) (int64, error)
	DeleteOwned(ctx context.Context, postID, ownerID uint) (int64, error)
	IsLiked(ctx context.Context, userID, postID uint) (bool, error)
	Like(ctx context.Context, userID, postID uint) error
	Unlike(ctx context.Context, userID, postID uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// applyPostDetails adds subqueries to fetch counts and liked status in a single query.
func (r *postRepository) applyPostDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "posts.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.deleted_at IS NULL) as comments_count, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) as likes_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) as liked", currentUserID)
	}

	return db.Select(selectQuery + ", false as liked")
}

func (r *postRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	var post models.Post

	var err error
	if currentUserID == 0 {
		// Anonymous reads share one cache entry; liked is always false for
		// them. Project before the cache write so cached entries carry the
		// author summary.
		err = cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, func() error {
			if err := r.applyPostDetails(r.db.WithContext(ctx), 0).
				Preload("User").
				First(&post, id).Error; err != nil {
				return err
			}
			post.Project()
			return nil
		})
	} else {
		err = r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
			Preload("User").
			First(&post, id).Error
		if err == nil {
			post.Project()
		}
	}

	if err != nil {
		return nil, err
	}
	return &post, nil
}

// applySearch appends the case-insensitive title/content filter when a search
// term is present.
func applySearch(db *gorm.DB, search string) *gorm.DB {
	if search == "" {
		return db
	}
	like := "%" + search + "%"
	return db.Where("title ILIKE ? OR content ILIKE ?", like, like)
}

func (r *postRepository) List(ctx context.Context, search string, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := applySearch(r.applyPostDetails(r.db.WithContext(ctx), currentUserID), search).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		p.Project()
	}
	return posts, nil
}

func (r *postRepository) Count(ctx context.Context, search string) (int64, error) {
	var total int64
	err := applySearch(r.db.WithContext(ctx).Model(&models.Post{}), search).
		Count(&total).Error
	return total, err
}

func (r *postRepository) UpdateOwned(ctx context.Context, postID, ownerID uint, title, content string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ? AND user_id = ?", postID, ownerID).
		Updates(map[string]any{"title": title, "content": content})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		cache.InvalidatePost(ctx, postID)
	}
	return res.RowsAffected, nil
}

func (r *postRepository) DeleteOwned(ctx context.Context, postID, ownerID uint) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", postID, ownerID).Delete(&models.Post{})
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		if affected == 0 {
			// Nothing matched; leave comments and likes untouched.
			return nil
		}

		// Cascade: orphaned comments and likes go with the post.
		if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Where("post_id = ?", postID).Delete(&models.Like{}).Error
	})
	if err != nil {
		return 0, err
	}
	if affected > 0 {
		cache.InvalidatePost(ctx, postID)
	}
	return affected, nil
}

func (r *postRepository) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *postRepository) Like(ctx context.Context, userID, postID uint) error {
	// INSERT ... ON CONFLICT DO NOTHING rides the unique (user_id, post_id)
	// index so concurrent double-submits cannot create duplicate likes.
	err := r.db.WithContext(ctx).Exec(
		`INSERT INTO likes (user_id, post_id, created_at)
		 VALUES (?, ?, NOW())
		 ON CONFLICT (user_id, post_id) DO NOTHING`,
		userID, postID,
	).Error
	if err == nil {
		cache.InvalidatePost(ctx, postID)
	}
	return err
}

func (r *postRepository) Unlike(ctx context.Context, userID, postID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{}).Error
	if err == nil {
		cache.InvalidatePost(ctx, postID)
	}
	return err
}
