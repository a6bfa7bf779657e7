package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"articlelike/cache"
	"articlelike/events"
	"articlelike/metrics"
	"articlelike/middlewares"
	"articlelike/repository"
	"articlelike/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LikeCounter: Redis 点赞计数缓存，由 *cache.LikeCounter 实现
type LikeCounter interface {
	RecordLike(userID, articleID uint) error
	RecordUnlike(userID, articleID uint) error
	Count(articleID uint) (int64, bool, error)
	Warm(articleID uint, n int64) error
	Top(n int) ([]cache.RankEntry, error)
}

// LikeController: 点赞、取消点赞、点赞数与排行榜
// 以数据库写入结果为准，Redis 计数与 MQ 事件失败只记日志，不影响主流程
type LikeController struct {
	likes    *services.LikeService
	articles *services.ArticleService
	counter  LikeCounter
	events   events.Publisher
	logger   *zap.Logger
}

// NewLikeController: 未配置 Redis 时 counter 可以为 nil
func NewLikeController(likes *services.LikeService, articles *services.ArticleService, counter LikeCounter, publisher events.Publisher, logger *zap.Logger) *LikeController {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &LikeController{likes: likes, articles: articles, counter: counter, events: publisher, logger: logger}
}

// LikeArticle: 在事务中写入点赞记录，重复点赞返回 409，用户或文章不存在返回 422
func (c *LikeController) LikeArticle(ctx *gin.Context) {
	articleID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	userID, ok := middlewares.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	like, err := c.likes.Like(ctx.Request.Context(), userID, articleID)
	if err != nil {
		metrics.LikeRequests.WithLabelValues(string(events.ActionLike), likeResult(err)).Inc()
		if !errors.Is(err, repository.ErrDuplicate) && !errors.Is(err, repository.ErrInvalidReference) {
			c.logger.Error("like failed", zap.Uint("user_id", userID), zap.Uint("article_id", articleID), zap.Error(err))
		}
		respondError(ctx, err)
		return
	}
	metrics.LikeRequests.WithLabelValues(string(events.ActionLike), metrics.ResultOK).Inc()

	// 已提交，缓存和事件失败不影响返回
	if c.counter != nil {
		if err := c.counter.RecordLike(userID, articleID); err != nil {
			c.sideEffectFailed("counter", articleID, err)
		}
	}
	c.publish(ctx, events.LikeEvent{Action: events.ActionLike, UserID: userID, ArticleID: articleID, LikeID: like.ID})

	ctx.JSON(http.StatusCreated, gin.H{"message": "Successfully liked the article", "like": like})
}

// UnlikeArticle: 取消点赞，幂等，未点赞过也返回 204
func (c *LikeController) UnlikeArticle(ctx *gin.Context) {
	articleID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	userID, ok := middlewares.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := c.likes.Unlike(ctx.Request.Context(), userID, articleID); err != nil {
		metrics.LikeRequests.WithLabelValues(string(events.ActionUnlike), metrics.ResultError).Inc()
		c.logger.Error("unlike failed", zap.Uint("user_id", userID), zap.Uint("article_id", articleID), zap.Error(err))
		respondError(ctx, err)
		return
	}
	metrics.LikeRequests.WithLabelValues(string(events.ActionUnlike), metrics.ResultOK).Inc()

	if c.counter != nil {
		if err := c.counter.RecordUnlike(userID, articleID); err != nil {
			c.sideEffectFailed("counter", articleID, err)
		}
	}
	c.publish(ctx, events.LikeEvent{Action: events.ActionUnlike, UserID: userID, ArticleID: articleID})

	ctx.Status(http.StatusNoContent)
}

// GetArticleLikes: 获取单篇文章点赞数，优先读 Redis
func (c *LikeController) GetArticleLikes(ctx *gin.Context) {
	articleID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	n, err := c.likeCount(ctx, articleID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"article_id": articleID, "likes": n})
}

// GetTopArticles: 返回 Top N 排行（从 Redis ZSET 获取，并尝试查询文章标题）
func (c *LikeController) GetTopArticles(ctx *gin.Context) {
	top, err := strconv.Atoi(ctx.DefaultQuery("top", "10"))
	if err != nil || top <= 0 {
		top = 10
	}
	if top > maxPageSize {
		top = maxPageSize
	}

	if c.counter == nil {
		ctx.JSON(http.StatusOK, gin.H{"list": []gin.H{}})
		return
	}

	ranking, err := c.counter.Top(top)
	if err != nil {
		c.logger.Error("ranking unavailable", zap.Error(err))
		respondError(ctx, err)
		return
	}

	ids := make([]uint, 0, len(ranking))
	for _, e := range ranking {
		ids = append(ids, e.ArticleID)
	}
	titles, err := c.articles.TitlesByID(ctx.Request.Context(), ids)
	if err != nil {
		c.logger.Warn("ranking titles unavailable", zap.Error(err))
		titles = map[uint]string{}
	}

	list := make([]gin.H, 0, len(ranking))
	for _, e := range ranking {
		item := gin.H{"id": e.ArticleID, "score": e.Score, "rank": e.Rank}
		if title, ok := titles[e.ArticleID]; ok {
			item["title"] = title
		}
		list = append(list, item)
	}
	ctx.JSON(http.StatusOK, gin.H{"list": list})
}

// likeCount: 缓存未命中时回源数据库，并把结果写回 Redis
func (c *LikeController) likeCount(ctx *gin.Context, articleID uint) (int64, error) {
	if c.counter != nil {
		n, hit, err := c.counter.Count(articleID)
		if err == nil && hit {
			return n, nil
		}
		if err != nil {
			c.sideEffectFailed("counter", articleID, err)
		}
	}

	n, err := c.likes.CountLikes(ctx.Request.Context(), articleID)
	if err != nil {
		return 0, err
	}
	if c.counter != nil {
		if err := c.counter.Warm(articleID, n); err != nil {
			c.sideEffectFailed("counter", articleID, err)
		}
	}
	return n, nil
}

func (c *LikeController) publish(ctx *gin.Context, event events.LikeEvent) {
	if err := c.events.Publish(ctx.Request.Context(), event); err != nil {
		c.sideEffectFailed("event", event.ArticleID, err)
	}
}

func (c *LikeController) sideEffectFailed(kind string, articleID uint, err error) {
	metrics.SideEffectFailures.WithLabelValues(kind).Inc()
	c.logger.Warn("side effect failed", zap.String("kind", kind), zap.Uint("article_id", articleID), zap.Error(err))
}

func likeResult(err error) string {
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return metrics.ResultDuplicate
	case errors.Is(err, repository.ErrInvalidReference):
		return metrics.ResultInvalidReference
	default:
		return metrics.ResultError
	}
}
