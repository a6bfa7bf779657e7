package controllers

import (
	"net/http"
	"strconv"

	"articlelike/models"
	"articlelike/services"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// articleView: 对外返回的文章结构，附带点赞数
type articleView struct {
	models.Article
	LikeCount int64 `json:"like_count"`
}

type ArticleController struct {
	articles *services.ArticleService
	likes    *LikeController
}

// NewArticleController: 单篇文章的点赞数复用 LikeController 的缓存读取
func NewArticleController(articles *services.ArticleService, likes *LikeController) *ArticleController {
	return &ArticleController{articles: articles, likes: likes}
}

func (c *ArticleController) GetArticle(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	article, err := c.articles.GetArticle(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	n, err := c.likes.likeCount(ctx, id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, articleView{Article: *article, LikeCount: n})
}

// ListArticles: 按 id 倒序分页返回文章（?offset=&limit=），点赞记录一次性预加载
func (c *ArticleController) ListArticles(ctx *gin.Context) {
	offset, err := strconv.Atoi(ctx.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "offset must be a non-negative integer"})
		return
	}
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if err != nil || limit <= 0 || limit > maxPageSize {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and " + strconv.Itoa(maxPageSize)})
		return
	}

	articles, err := c.articles.ListArticles(ctx.Request.Context(), offset, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}

	list := make([]articleView, 0, len(articles))
	for _, a := range articles {
		list = append(list, articleView{Article: a, LikeCount: int64(a.LikeCount())})
	}
	ctx.JSON(http.StatusOK, gin.H{"offset": offset, "limit": limit, "list": list})
}
