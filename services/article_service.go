package services

import (
	"context"

	"articlelike/models"
	"articlelike/repository"
)

type ArticleService struct {
	store repository.Store
}

func NewArticleService(store repository.Store) *ArticleService {
	return &ArticleService{store: store}
}

// GetArticle returns repository.ErrNotFound when no article has the given id.
func (s *ArticleService) GetArticle(ctx context.Context, id uint) (*models.Article, error) {
	return s.store.GetArticle(ctx, id)
}

// ListArticles returns at most limit articles, newest first, skipping the
// first offset. Every article comes with its likes. A negative offset counts
// as zero and a non-positive limit gives an empty page.
func (s *ArticleService) ListArticles(ctx context.Context, offset, limit int) ([]models.Article, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		return []models.Article{}, nil
	}
	return s.store.ListArticles(ctx, offset, limit, true)
}

// TitlesByID maps the given article ids to their titles. Missing articles are absent.
func (s *ArticleService) TitlesByID(ctx context.Context, ids []uint) (map[uint]string, error) {
	articles, err := s.store.FindArticles(ctx, ids)
	if err != nil {
		return nil, err
	}
	titles := make(map[uint]string, len(articles))
	for _, a := range articles {
		titles[a.ID] = a.Title
	}
	return titles, nil
}
