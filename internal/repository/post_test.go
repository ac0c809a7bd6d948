package repository

import (
	"context"
	"regexp"
	"testing"

	"campusforum/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(posts []models.Post) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Title)
	}
	return out
}

func TestPostRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	u := createUser(t, db, "alice")

	post := &models.Post{Title: "Hello", Content: "World", UserID: u.ID}
	require.NoError(t, repo.Create(ctx, post))
	assert.NotZero(t, post.ID)
	assert.False(t, post.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello", got.Title)
	assert.Equal(t, "alice", got.User.Username)

	_, err = repo.GetByID(ctx, post.ID+100)
	assert.True(t, models.HasCode(err, models.CodeNotFound))
}

func TestPostRepository_ListNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	createPost(t, db, alice.ID, "old", "x", 1)
	createPost(t, db, bob.ID, "middle", "x", 2)
	createPost(t, db, alice.ID, "Hello", "World", 3)

	page, err := repo.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Hello", "middle", "old"}, titles(page.Items))
	assert.Equal(t, "alice", page.Items[0].User.Username)

	mine, err := repo.ListByUser(ctx, alice.ID, 1, 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"Hello", "old"}, titles(mine.Items))
	assert.Equal(t, int64(2), mine.Total)
}

func TestPostRepository_TiesBrokenByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	u := createUser(t, db, "alice")

	createPost(t, db, u.ID, "first", "x", 5)
	createPost(t, db, u.ID, "second", "x", 5)

	page, err := repo.List(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"second", "first"}, titles(page.Items))
}

func TestPostRepository_Search(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	u := createUser(t, db, "alice")

	createPost(t, db, u.ID, "Golang tips", "channels", 1)
	createPost(t, db, u.ID, "Cooking", "I love GOLANG", 2)
	createPost(t, db, u.ID, "Discount", "100% off", 3)
	createPost(t, db, u.ID, "snake_case", "naming", 4)
	createPost(t, db, u.ID, "Unrelated", "nothing here", 5)
	createPost(t, db, u.ID, "Études Commerciales", "classement", 6)

	tests := []struct {
		name    string
		keyword string
		want    []string
	}{
		{"case insensitive across title and content", "golang", []string{"Cooking", "Golang tips"}},
		{"percent is literal", "%", []string{"Discount"}},
		{"underscore is literal", "_", []string{"snake_case"}},
		{"no match", "rust", []string{}},
		{"accented lower keyword", "études", []string{"Études Commerciales"}},
		{"accented upper keyword", "ÉTUDES", []string{"Études Commerciales"}},
		{"accented exact keyword", "Études", []string{"Études Commerciales"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := repo.Search(ctx, tt.keyword, 1, 7)
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(page.Items))
		})
	}
}

func TestPostRepository_SearchPaginatesAtSeven(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	u := createUser(t, db, "alice")
	for i := 0; i < 9; i++ {
		createPost(t, db, u.ID, "match", "x", i)
	}

	page, err := repo.Search(context.Background(), "MATCH", 2, 7)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.Pages)
	assert.False(t, page.HasNext)
}

func TestPostRepository_Create_SQL(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "posts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(context.Background(), &models.Post{Title: "Hello", Content: "World", UserID: 1})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Search_SQL(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "posts" WHERE LOWER(title) LIKE LOWER($1) ESCAPE '\' OR LOWER(content) LIKE LOWER($2) ESCAPE '\'`)).
		WithArgs(`%50\%%`, `%50\%%`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	page, err := repo.Search(context.Background(), "50%", 1, 7)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.NoError(t, mock.ExpectationsWereMet())
}
