package repository

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"campusforum/internal/database"
	"campusforum/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// setupTestDB returns a migrated, private in-memory sqlite database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:repo_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(database.SQLiteDialector(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return gormDB, mock
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, Password: "hash"}
	require.NoError(t, db.Create(u).Error)
	return u
}

// createPost inserts a post whose created_at is offset from a fixed base so
// recency ordering is deterministic.
func createPost(t *testing.T, db *gorm.DB, userID uint, title, content string, minute int) *models.Post {
	t.Helper()
	p := &models.Post{
		Title:     title,
		Content:   content,
		UserID:    userID,
		CreatedAt: baseTime.Add(time.Duration(minute) * time.Minute),
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func createComment(t *testing.T, db *gorm.DB, postID, userID uint, parentID *uint, content string, minute int) *models.Comment {
	t.Helper()
	c := &models.Comment{
		PostID:    postID,
		UserID:    userID,
		ParentID:  parentID,
		Content:   content,
		CreatedAt: baseTime.Add(time.Duration(minute) * time.Minute),
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
