package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"campusforum/internal/cache"
	"campusforum/internal/config"
	"campusforum/internal/database"
	"campusforum/internal/middleware"
	"campusforum/internal/models"
	"campusforum/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testRankingURL = "https://rankings.example.test/league-tables/rankings"

var dbSeq atomic.Int64

type testEnv struct {
	server *Server
	app    *fiber.App
	redis  *miniredis.Miniredis
}

func testConfig() *config.Config {
	return &config.Config{
		Port:                   "0",
		Env:                    "test",
		JWTSecret:              "test-secret-key-12345678901234567890123456789012",
		SessionTTLHours:        1,
		DBDriver:               "sqlite",
		DBSQLitePath:           fmt.Sprintf("file:server_test_%d?mode=memory&cache=shared", dbSeq.Add(1)),
		DBMaxOpenConns:         1,
		AllowedOrigins:         "http://localhost:5173",
		FeatureFlags:           "ranking=on",
		RankingBaseURL:         testRankingURL,
		RankingTimeoutSeconds:  2,
		RankingCacheTTLMinutes: 60,
	}
}

func newTestEnv(t *testing.T, mutate ...func(*config.Config)) *testEnv {
	t.Helper()
	cfg := testConfig()
	for _, m := range mutate {
		m(cfg)
	}

	db, err := database.Connect(cfg)
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	s, err := NewServerWithDeps(cfg, db, rdb)
	require.NoError(t, err)
	s.authService.WithBcryptCost(bcrypt.MinCost)

	t.Cleanup(func() {
		cache.SetClient(nil)
		_ = rdb.Close()
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return &testEnv{server: s, app: s.NewApp(), redis: mr}
}

func (e *testEnv) do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (e *testEnv) get(t *testing.T, target, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	withSession(req, token)
	return e.do(t, req)
}

func (e *testEnv) postForm(t *testing.T, target, token string, form url.Values) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	withSession(req, token)
	return e.do(t, req)
}

func withSession(req *http.Request, token string) {
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})
	}
}

// register creates a user through the auth service and returns it.
func (e *testEnv) register(t *testing.T, username, password string) *models.User {
	t.Helper()
	u, err := e.server.authService.Signup(context.Background(), service.SignupInput{
		Username:        username,
		Password:        password,
		ConfirmPassword: password,
	})
	require.NoError(t, err)
	return u
}

// login posts credentials and returns the session token from the cookie.
func (e *testEnv) login(t *testing.T, username, password string) string {
	t.Helper()
	resp := e.postForm(t, "/login", "", url.Values{"username": {username}, "password": {password}})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	token := sessionCookie(resp)
	require.NotEmpty(t, token)
	return token
}

func sessionCookie(resp *http.Response) string {
	for _, c := range resp.Cookies() {
		if c.Name == middleware.SessionCookie {
			return c.Value
		}
	}
	return ""
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out T
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return out
}

type postsDocument struct {
	Page  string                   `json:"page"`
	Query string                   `json:"query"`
	Posts models.Page[models.Post] `json:"posts"`
}

type commentsDocument struct {
	Page     string                      `json:"page"`
	Post     models.Post                 `json:"post"`
	PostID   uint                        `json:"post_id"`
	Comments models.Page[models.Comment] `json:"comments"`
}
