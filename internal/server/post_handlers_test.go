package server

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"testing"

	"campusforum/internal/models"
	"campusforum/internal/service"
	"campusforum/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) createPost(t *testing.T, userID uint, title, content string) *models.Post {
	t.Helper()
	p, err := e.server.postService.CreatePost(context.Background(), service.CreatePostInput{
		UserID:  userID,
		Title:   title,
		Content: content,
	})
	require.NoError(t, err)
	require.NotNil(t, p)
	return p
}

func TestCreatePost_AppearsFirstInDiscussion(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice", "secret")
	token := env.login(t, "alice", "secret")
	env.createPost(t, alice.ID, "Older", "first")

	resp := env.postForm(t, "/dashboard/discussion/new_post", token,
		url.Values{"title": {"Hello"}, "content": {"World"}})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/dashboard/discussion", resp.Header.Get(fiber.HeaderLocation))

	resp = env.get(t, "/dashboard/discussion", token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	doc := decode[postsDocument](t, resp)
	require.Len(t, doc.Posts.Items, 2)
	first := doc.Posts.Items[0]
	assert.Equal(t, "Hello", first.Title)
	assert.Equal(t, "World", first.Content)
	assert.Equal(t, alice.ID, first.UserID)
	assert.Equal(t, "alice", first.User.Username)
	assert.Equal(t, service.DiscussionPerPage, doc.Posts.PerPage)
}

func TestCreatePost_Validation(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", "secret")
	token := env.login(t, "alice", "secret")

	t.Run("empty fields redirect back to the form", func(t *testing.T) {
		for _, form := range []url.Values{
			{"title": {""}, "content": {"body"}},
			{"title": {"title"}, "content": {""}},
		} {
			resp := env.postForm(t, "/dashboard/discussion/new_post", token, form)
			require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
			assert.Equal(t, "/dashboard/discussion/new_post", resp.Header.Get(fiber.HeaderLocation))
		}
	})

	t.Run("title over 50 characters", func(t *testing.T) {
		resp := env.postForm(t, "/dashboard/discussion/new_post", token,
			url.Values{"title": {strings.Repeat("é", 51)}, "content": {"body"}})
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		body := decode[models.ErrorResponse](t, resp)
		assert.Equal(t, validation.ErrTitleTooLong, body.Error)
	})

	t.Run("title of exactly 50 characters", func(t *testing.T) {
		resp := env.postForm(t, "/dashboard/discussion/new_post", token,
			url.Values{"title": {strings.Repeat("é", 50)}, "content": {"body"}})
		assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	})

	var count int64
	require.NoError(t, env.server.db.Model(&models.Post{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestNewPostForm(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", "secret")
	token := env.login(t, "alice", "secret")

	for _, target := range []string{"/dashboard/discussion/new_post", "/dashboard/discussion/pending"} {
		resp := env.get(t, target, token)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "new_post", decode[map[string]string](t, resp)["page"])
	}
}

func TestDiscussionPagination(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice", "secret")
	token := env.login(t, "alice", "secret")
	for i := 0; i < 12; i++ {
		env.createPost(t, alice.ID, fmt.Sprintf("post %d", i), "body")
	}

	tests := []struct {
		name   string
		query  string
		status int
		items  int
		page   int
	}{
		{"default page", "", fiber.StatusOK, 10, 1},
		{"second page", "?page=2", fiber.StatusOK, 2, 2},
		{"page zero means first", "?page=0", fiber.StatusOK, 10, 1},
		{"non numeric means first", "?page=abc", fiber.StatusOK, 10, 1},
		{"beyond last page", "?page=3", fiber.StatusNotFound, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := env.get(t, "/dashboard/discussion"+tt.query, token)
			require.Equal(t, tt.status, resp.StatusCode)
			if tt.status != fiber.StatusOK {
				return
			}
			doc := decode[postsDocument](t, resp)
			assert.Len(t, doc.Posts.Items, tt.items)
			assert.Equal(t, tt.page, doc.Posts.Page)
			assert.EqualValues(t, 12, doc.Posts.Total)
			assert.Equal(t, 2, doc.Posts.Pages)
		})
	}
}

func TestSearchPosts(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice", "secret")
	token := env.login(t, "alice", "secret")

	env.createPost(t, alice.ID, "Golang tips", "channels")
	env.createPost(t, alice.ID, "Cooking", "a GOLANG themed cake")
	env.createPost(t, alice.ID, "100% sure", "percent")
	env.createPost(t, alice.ID, "Unrelated", "nothing")

	t.Run("case-insensitive on title and content", func(t *testing.T) {
		resp := env.postForm(t, "/dashboard/discussion/recherche", token, url.Values{"query": {"golang"}})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		doc := decode[postsDocument](t, resp)
		require.Len(t, doc.Posts.Items, 2)
		assert.Equal(t, "Cooking", doc.Posts.Items[0].Title)
		assert.Equal(t, "Golang tips", doc.Posts.Items[1].Title)
		assert.Equal(t, service.ListPerPage, doc.Posts.PerPage)
	})

	t.Run("wildcards are literal", func(t *testing.T) {
		resp := env.get(t, "/dashboard/discussion/recherche?query=%25", token)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		doc := decode[postsDocument](t, resp)
		require.Len(t, doc.Posts.Items, 1)
		assert.Equal(t, "100% sure", doc.Posts.Items[0].Title)
	})

	t.Run("empty keyword redirects to the listing", func(t *testing.T) {
		resp := env.postForm(t, "/dashboard/discussion/recherche", token, url.Values{"query": {"   "}})
		require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/dashboard/discussion", resp.Header.Get(fiber.HeaderLocation))
	})
}

func TestMyPosts_OnlyOwnPosts(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice", "secret")
	bob := env.register(t, "bob", "secret")
	token := env.login(t, "alice", "secret")

	env.createPost(t, alice.ID, "mine", "a")
	env.createPost(t, bob.ID, "theirs", "b")

	resp := env.get(t, "/dashboard/mes-posts", token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	doc := decode[postsDocument](t, resp)
	assert.Equal(t, "post_viewer", doc.Page)
	require.Len(t, doc.Posts.Items, 1)
	assert.Equal(t, "mine", doc.Posts.Items[0].Title)

	resp = env.get(t, "/dashboard/mes-posts-et-commentaires", token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "p_v_viewer", decode[map[string]string](t, resp)["page"])
}

func TestPostDetail_UnknownPost(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", "secret")
	token := env.login(t, "alice", "secret")

	resp := env.get(t, "/dashboard/discussion/999", token)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = env.get(t, "/dashboard/discussion/0", token)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid post ID", decode[models.ErrorResponse](t, resp).Error)
}
