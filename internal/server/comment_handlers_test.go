package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"quill/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGetComments(t *testing.T) {
	mockComments := new(MockCommentRepository)
	mockComments.On("ListByPost", mock.Anything, uint(1)).
		Return([]*models.Comment{
			{ID: 2, Content: "newest", User: models.User{ID: 3, Username: "alice"}},
			{ID: 1, Content: "oldest", User: models.User{ID: 4, Username: "bob"}},
		}, nil)

	s := newTestServer(nil, new(MockPostRepository), mockComments)
	app := fiber.New()
	app.Get("/comments/post/:postId", s.GetComments)

	req := httptest.NewRequest(http.MethodGet, "/comments/post/1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Comments []struct {
			Content string `json:"content"`
			Author  struct {
				Username string `json:"username"`
			} `json:"author"`
		} `json:"comments"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Comments, 2)
	assert.Equal(t, "newest", out.Comments[0].Content)
	assert.Equal(t, "alice", out.Comments[0].Author.Username)
	mockComments.AssertExpectations(t)
}

func TestCreateComment(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockPosts := new(MockPostRepository)
		mockComments := new(MockCommentRepository)

		mockPosts.On("GetByID", mock.Anything, uint(1), uint(0)).
			Return(&models.Post{ID: 1, UserID: 2}, nil)
		mockComments.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Comment) bool {
			return c.Content == "hello" && c.UserID == 7 && c.PostID == 1
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*models.Comment).ID = 5
		}).Return(nil)
		mockComments.On("GetByID", mock.Anything, uint(5)).
			Return(&models.Comment{
				ID:      5,
				Content: "hello",
				UserID:  7,
				PostID:  1,
				User:    models.User{ID: 7, Username: "carol"},
				Post:    models.Post{ID: 1, Title: "Post"},
			}, nil)

		s := newTestServer(nil, mockPosts, mockComments)
		app := fiber.New()
		app.Post("/comments", withUser(7), s.CreateComment)

		body, _ := json.Marshal(map[string]any{"content": "hello", "postId": 1})
		req := httptest.NewRequest(http.MethodPost, "/comments", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var out struct {
			Comment struct {
				Content string `json:"content"`
				Author  struct {
					Username string `json:"username"`
				} `json:"author"`
				Post struct {
					Title string `json:"title"`
				} `json:"post"`
			} `json:"comment"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, "hello", out.Comment.Content)
		assert.Equal(t, "carol", out.Comment.Author.Username)
		assert.Equal(t, "Post", out.Comment.Post.Title)
		mockPosts.AssertExpectations(t)
		mockComments.AssertExpectations(t)
	})

	t.Run("Missing Post", func(t *testing.T) {
		mockPosts := new(MockPostRepository)
		mockPosts.On("GetByID", mock.Anything, uint(99), uint(0)).
			Return(nil, gorm.ErrRecordNotFound)

		s := newTestServer(nil, mockPosts, new(MockCommentRepository))
		app := fiber.New()
		app.Post("/comments", withUser(7), s.CreateComment)

		body, _ := json.Marshal(map[string]any{"content": "hello", "postId": 99})
		req := httptest.NewRequest(http.MethodPost, "/comments", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Missing PostID", func(t *testing.T) {
		s := newTestServer(nil, new(MockPostRepository), new(MockCommentRepository))
		app := fiber.New()
		app.Post("/comments", withUser(7), s.CreateComment)

		body, _ := json.Marshal(map[string]any{"content": "hello"})
		req := httptest.NewRequest(http.MethodPost, "/comments", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Empty Content", func(t *testing.T) {
		s := newTestServer(nil, new(MockPostRepository), new(MockCommentRepository))
		app := fiber.New()
		app.Post("/comments", withUser(7), s.CreateComment)

		body, _ := json.Marshal(map[string]any{"content": "   ", "postId": 1})
		req := httptest.NewRequest(http.MethodPost, "/comments", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestUpdateComment(t *testing.T) {
	t.Run("Non-Owner Gets Ambiguous 404", func(t *testing.T) {
		mockComments := new(MockCommentRepository)
		mockComments.On("UpdateOwned", mock.Anything, uint(1), uint(99), "edit").
			Return(int64(0), nil)

		s := newTestServer(nil, new(MockPostRepository), mockComments)
		app := fiber.New()
		app.Put("/comments/:id", withUser(99), s.UpdateComment)

		body, _ := json.Marshal(map[string]string{"content": "edit"})
		req := httptest.NewRequest(http.MethodPut, "/comments/1", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)

		var out models.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Contains(t, out.Error, "not found or unauthorized")
		mockComments.AssertExpectations(t)
	})

	t.Run("Owner Updates", func(t *testing.T) {
		mockComments := new(MockCommentRepository)
		mockComments.On("UpdateOwned", mock.Anything, uint(1), uint(7), "edit").
			Return(int64(1), nil)
		mockComments.On("GetByID", mock.Anything, uint(1)).
			Return(&models.Comment{ID: 1, Content: "edit", UserID: 7}, nil)

		s := newTestServer(nil, new(MockPostRepository), mockComments)
		app := fiber.New()
		app.Put("/comments/:id", withUser(7), s.UpdateComment)

		body, _ := json.Marshal(map[string]string{"content": "edit"})
		req := httptest.NewRequest(http.MethodPut, "/comments/1", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockComments.AssertExpectations(t)
	})
}

func TestDeleteComment(t *testing.T) {
	t.Run("Owner Deletes", func(t *testing.T) {
		mockComments := new(MockCommentRepository)
		mockComments.On("DeleteOwned", mock.Anything, uint(1), uint(7)).
			Return(int64(1), nil)

		s := newTestServer(nil, new(MockPostRepository), mockComments)
		app := fiber.New()
		app.Delete("/comments/:id", withUser(7), s.DeleteComment)

		req := httptest.NewRequest(http.MethodDelete, "/comments/1", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockComments.AssertExpectations(t)
	})

	t.Run("Non-Owner Gets Ambiguous 404", func(t *testing.T) {
		mockComments := new(MockCommentRepository)
		mockComments.On("DeleteOwned", mock.Anything, uint(1), uint(99)).
			Return(int64(0), nil)

		s := newTestServer(nil, new(MockPostRepository), mockComments)
		app := fiber.New()
		app.Delete("/comments/:id", withUser(99), s.DeleteComment)

		req := httptest.NewRequest(http.MethodDelete, "/comments/1", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockComments.AssertExpectations(t)
	})
}
