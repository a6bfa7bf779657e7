package repository

import (
	"context"
	"strings"

	"articlelike/models"

	"gorm.io/gorm"
)

// GormStore implements Store on top of a gorm handle.
type GormStore struct {
	db *gorm.DB
}

var _ Store = (*GormStore)(nil)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	return translate(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	}))
}

func (s *GormStore) CreateUser(ctx context.Context, user *models.User) error {
	return translate(s.db.WithContext(ctx).Create(user).Error)
}

func (s *GormStore) CreateArticle(ctx context.Context, article *models.Article) error {
	return translate(s.db.WithContext(ctx).Create(article).Error)
}

func (s *GormStore) CreateLike(ctx context.Context, like *models.Like) error {
	return translate(s.db.WithContext(ctx).Omit("User", "Article").Create(like).Error)
}

func (s *GormStore) DeleteLikes(ctx context.Context, userID, articleID uint) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND article_id = ?", userID, articleID).
		Delete(&models.Like{})
	return res.RowsAffected, translate(res.Error)
}

func (s *GormStore) GetLike(ctx context.Context, id uint) (*models.Like, error) {
	var like models.Like
	err := s.db.WithContext(ctx).
		Preload("User").
		Preload("Article").
		First(&like, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &like, nil
}

func (s *GormStore) LikeExists(ctx context.Context, userID, articleID uint) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND article_id = ?", userID, articleID).
		Count(&n).Error
	return n > 0, translate(err)
}

func (s *GormStore) CountLikes(ctx context.Context, articleID uint) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Like{}).
		Where("article_id = ?", articleID).
		Count(&n).Error
	return n, translate(err)
}

func (s *GormStore) GetArticle(ctx context.Context, id uint) (*models.Article, error) {
	var article models.Article
	if err := s.db.WithContext(ctx).First(&article, id).Error; err != nil {
		return nil, translate(err)
	}
	return &article, nil
}

func (s *GormStore) FindArticles(ctx context.Context, ids []uint) ([]models.Article, error) {
	if len(ids) == 0 {
		return []models.Article{}, nil
	}
	var articles []models.Article
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&articles).Error; err != nil {
		return nil, translate(err)
	}
	return articles, nil
}

func (s *GormStore) ListArticles(ctx context.Context, offset, limit int, withLikes bool) ([]models.Article, error) {
	if limit <= 0 {
		return []models.Article{}, nil
	}
	if offset < 0 {
		offset = 0
	}

	query := s.db.WithContext(ctx).
		Order("id DESC").
		Offset(offset).
		Limit(limit)
	if withLikes {
		query = preloadLikes(query)
	}

	articles := make([]models.Article, 0, limit)
	if err := query.Find(&articles).Error; err != nil {
		return nil, translate(err)
	}
	return articles, nil
}

func (s *GormStore) SearchArticles(ctx context.Context, keywords []string, limit int) ([]models.Article, error) {
	query := preloadLikes(s.db.WithContext(ctx).Model(&models.Article{}))
	for _, kw := range keywords {
		pattern := "%" + likeEscaper.Replace(kw) + "%"
		query = query.Where("title LIKE ? ESCAPE '!' OR content LIKE ? ESCAPE '!'", pattern, pattern)
	}

	var articles []models.Article
	if err := query.Order("id DESC").Limit(limit).Find(&articles).Error; err != nil {
		return nil, translate(err)
	}
	return articles, nil
}

// '!' escapes LIKE wildcards. A backslash would need doubling under MySQL's
// default sql_mode but not under SQLite.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// preloadLikes batches the likes of every loaded article into one
// "article_id IN (...)" query.
func preloadLikes(db *gorm.DB) *gorm.DB {
	return db.Preload("Likes", func(db *gorm.DB) *gorm.DB {
		return db.Order("likes.id ASC")
	})
}
