// Package service contains the business rules for posts, comments, and users.
package service

import (
	"context"
	"errors"
	"strings"

	"quill/internal/models"
	"quill/internal/repository"

	"gorm.io/gorm"
)

const (
	maxTitleLen   = 300
	maxContentLen = 50000
)

type PostService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
}

type CreatePostInput struct {
	UserID  uint
	Title   string
	Content string
}

type UpdatePostInput struct {
	UserID  uint
	PostID  uint
	Title   string
	Content string
}

type ListPostsInput struct {
	Page          int
	Limit         int
	Search        string
	CurrentUserID uint
}

// PostPage is a window of posts plus the pagination metadata for it.
type PostPage struct {
	Posts   []*models.Post `json:"posts"`
	Total   int64          `json:"total"`
	Page    int            `json:"page"`
	Pages   int            `json:"pages"`
	HasMore bool           `json:"has_more"`
}

func NewPostService(postRepo repository.PostRepository, commentRepo repository.CommentRepository) *PostService {
	return &PostService{postRepo: postRepo, commentRepo: commentRepo}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)

	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 50000 characters)")
	}

	post := &models.Post{
		Title:   title,
		Content: content,
		UserID:  in.UserID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}

	return s.getPost(ctx, post.ID, in.UserID)
}

func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) (*PostPage, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit <= 0 {
		limit = 10
	}

	total, err := s.postRepo.Count(ctx, in.Search)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	offset := (page - 1) * limit
	posts, err := s.postRepo.List(ctx, in.Search, limit, offset, in.CurrentUserID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	pages := int((total + int64(limit) - 1) / int64(limit))

	return &PostPage{
		Posts:   posts,
		Total:   total,
		Page:    page,
		Pages:   pages,
		HasMore: int64(page)*int64(limit) < total,
	}, nil
}

// GetPost returns the post with its comments, newest comment first.
func (s *PostService) GetPost(ctx context.Context, id uint, currentUserID uint) (*models.Post, []*models.Comment, error) {
	post, err := s.getPost(ctx, id, currentUserID)
	if err != nil {
		return nil, nil, err
	}

	comments, err := s.commentRepo.ListByPost(ctx, id)
	if err != nil {
		return nil, nil, models.NewInternalError(err)
	}
	for _, c := range comments {
		c.Project()
	}

	return post, comments, nil
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)

	if title == "" || content == "" {
		return nil, models.NewValidationError("Title and content are required")
	}
	if len(title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if len(content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 50000 characters)")
	}

	// One conditional write checks existence and ownership together; the 404
	// deliberately does not reveal which condition failed.
	affected, err := s.postRepo.UpdateOwned(ctx, in.PostID, in.UserID, title, content)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if affected == 0 {
		return nil, models.NewNotFoundError("Post not found or unauthorized")
	}

	return s.getPost(ctx, in.PostID, in.UserID)
}

func (s *PostService) DeletePost(ctx context.Context, postID, userID uint) error {
	affected, err := s.postRepo.DeleteOwned(ctx, postID, userID)
	if err != nil {
		return models.NewInternalError(err)
	}
	if affected == 0 {
		return models.NewNotFoundError("Post not found or unauthorized")
	}
	return nil
}

// ToggleLike flips the caller's like on the post. It returns true when the
// call created a like and false when it removed one.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint) (bool, error) {
	if _, err := s.getPost(ctx, postID, userID); err != nil {
		return false, err
	}

	liked, err := s.postRepo.IsLiked(ctx, userID, postID)
	if err != nil {
		return false, models.NewInternalError(err)
	}

	if liked {
		if err := s.postRepo.Unlike(ctx, userID, postID); err != nil {
			return false, models.NewInternalError(err)
		}
		return false, nil
	}

	if err := s.postRepo.Like(ctx, userID, postID); err != nil {
		return false, models.NewInternalError(err)
	}
	return true, nil
}

func (s *PostService) getPost(ctx context.Context, id, currentUserID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id, currentUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post not found")
		}
		return nil, models.NewInternalError(err)
	}
	return post, nil
}
