package controllers

import (
	"net/http"

	"articlelike/services"

	"github.com/gin-gonic/gin"
)

type SearchRequest struct {
	Question string `json:"question" binding:"required"`
	TopK     int    `json:"topk"`
}

type SearchResponse struct {
	Sources []services.ArticleSummary `json:"sources"`
}

type SearchController struct {
	articles *services.ArticleService
}

func NewSearchController(articles *services.ArticleService) *SearchController {
	return &SearchController{articles: articles}
}

func (c *SearchController) SearchArticles(ctx *gin.Context) {
	var req SearchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.TopK <= 0 {
		req.TopK = 3
	}
	if req.TopK > maxPageSize {
		req.TopK = maxPageSize
	}

	sources, err := c.articles.Search(ctx.Request.Context(), req.Question, req.TopK)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, SearchResponse{Sources: sources})
}
