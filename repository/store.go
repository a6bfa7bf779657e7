package repository

import (
	"context"

	"articlelike/models"
)

// Store is the data access surface the services depend on.
type Store interface {
	// WithTx runs fn inside one transaction. A non-nil error from fn rolls it back.
	WithTx(ctx context.Context, fn func(tx Store) error) error

	CreateUser(ctx context.Context, user *models.User) error
	CreateArticle(ctx context.Context, article *models.Article) error

	CreateLike(ctx context.Context, like *models.Like) error
	// DeleteLikes removes every like of userID on articleID and reports how many rows went away.
	DeleteLikes(ctx context.Context, userID, articleID uint) (int64, error)
	GetLike(ctx context.Context, id uint) (*models.Like, error)
	LikeExists(ctx context.Context, userID, articleID uint) (bool, error)
	CountLikes(ctx context.Context, articleID uint) (int64, error)

	GetArticle(ctx context.Context, id uint) (*models.Article, error)
	// FindArticles loads the articles with the given ids; unknown ids are skipped.
	FindArticles(ctx context.Context, ids []uint) ([]models.Article, error)
	// ListArticles returns articles newest first. With withLikes set, the likes
	// of the whole page are loaded by a single extra query.
	ListArticles(ctx context.Context, offset, limit int, withLikes bool) ([]models.Article, error)
	// SearchArticles returns articles whose title or content contains every keyword.
	SearchArticles(ctx context.Context, keywords []string, limit int) ([]models.Article, error)
}
