// Package testutil provides fixtures shared by package tests.
package testutil

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"articlelike/config"
	"articlelike/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB opens a private in-memory SQLite database with the schema migrated.
// A single connection keeps the shared-cache database alive for the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := config.OpenDB(config.DatabaseConfig{
		Driver:       "sqlite",
		Dsn:          dsn,
		MaxIdleConns: 1,
		MaxOpenConns: 1,
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// NewFileDB opens a migrated SQLite database file under t.TempDir with conns
// pooled connections, so concurrent callers reach the database in parallel.
// Writers take the lock at BEGIN and wait up to five seconds for it.
func NewFileDB(t *testing.T, conns int) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "likes.db")
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL&_txlock=immediate", path)
	db, err := config.OpenDB(config.DatabaseConfig{
		Driver:       "sqlite",
		Dsn:          dsn,
		MaxIdleConns: conns,
		MaxOpenConns: conns,
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func CreateUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	user := &models.User{Name: name}
	require.NoError(t, db.WithContext(context.Background()).Create(user).Error)
	return user
}

func CreateArticle(t *testing.T, db *gorm.DB, title string) *models.Article {
	t.Helper()
	article := &models.Article{Title: title}
	require.NoError(t, db.WithContext(context.Background()).Create(article).Error)
	return article
}

// CreateArticles inserts n articles in increasing id order.
func CreateArticles(t *testing.T, db *gorm.DB, n int) []*models.Article {
	t.Helper()
	articles := make([]*models.Article, 0, n)
	for i := 1; i <= n; i++ {
		articles = append(articles, CreateArticle(t, db, fmt.Sprintf("article %d", i)))
	}
	return articles
}

// CountQueries counts every SELECT issued through db, nested preload queries included.
func CountQueries(t *testing.T, db *gorm.DB) *int {
	t.Helper()
	n := 0
	err := db.Callback().Query().After("gorm:query").Register("testutil:count_queries", func(*gorm.DB) {
		n++
	})
	require.NoError(t, err)
	return &n
}
