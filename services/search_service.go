package services

import (
	"context"
	"strings"

	"articlelike/models"
)

const (
	defaultSearchTopK = 3
	maxSearchTopK     = 100
)

type ArticleSummary struct {
	ID      uint   `json:"id"`
	Title   string `json:"title"`
	Preview string `json:"preview"`
	Likes   int    `json:"likes"`
}

// Search: 简单的基于关键词检索，按空白切分问题，
// 返回标题或正文包含全部关键词的最多 topK 篇文章
func (s *ArticleService) Search(ctx context.Context, question string, topK int) ([]ArticleSummary, error) {
	keywords := strings.Fields(question)
	if len(keywords) == 0 {
		return []ArticleSummary{}, nil
	}
	if topK <= 0 {
		topK = defaultSearchTopK
	}
	if topK > maxSearchTopK {
		topK = maxSearchTopK
	}

	articles, err := s.store.SearchArticles(ctx, keywords, topK)
	if err != nil {
		return nil, err
	}

	sources := make([]ArticleSummary, 0, len(articles))
	for i := range articles {
		sources = append(sources, summarize(&articles[i]))
	}
	return sources, nil
}

func summarize(a *models.Article) ArticleSummary {
	preview := a.Preview
	if preview == "" {
		preview = truncate(a.Content, 140)
	}
	return ArticleSummary{ID: a.ID, Title: a.Title, Preview: preview, Likes: a.LikeCount()}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
