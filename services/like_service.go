package services

import (
	"context"

	"articlelike/models"
	"articlelike/repository"
)

// LikeService creates and removes likes. Uniqueness of a (user, article) pair
// and the existence of both sides are left to the store's constraints.
type LikeService struct {
	store repository.Store
}

func NewLikeService(store repository.Store) *LikeService {
	return &LikeService{store: store}
}

// Like records that userID likes articleID. It fails with
// repository.ErrDuplicate when the pair is already liked and with
// repository.ErrInvalidReference when the user or the article does not exist.
func (s *LikeService) Like(ctx context.Context, userID, articleID uint) (*models.Like, error) {
	like := &models.Like{UserID: userID, ArticleID: articleID}
	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		return tx.CreateLike(ctx, like)
	})
	if err != nil {
		return nil, err
	}
	return like, nil
}

// Unlike removes the like of userID on articleID if there is one. Removing a
// like that does not exist succeeds.
func (s *LikeService) Unlike(ctx context.Context, userID, articleID uint) error {
	_, err := s.store.DeleteLikes(ctx, userID, articleID)
	return err
}

func (s *LikeService) GetLike(ctx context.Context, id uint) (*models.Like, error) {
	return s.store.GetLike(ctx, id)
}

func (s *LikeService) HasLiked(ctx context.Context, userID, articleID uint) (bool, error) {
	return s.store.LikeExists(ctx, userID, articleID)
}

func (s *LikeService) CountLikes(ctx context.Context, articleID uint) (int64, error) {
	return s.store.CountLikes(ctx, articleID)
}
