package router

import (
	"net/http"
	"time"

	"articlelike/controllers"
	"articlelike/events"
	"articlelike/middlewares"
	"articlelike/repository"
	"articlelike/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps carries what SetupRouter wires together. Counter and Events may be nil.
type Deps struct {
	DB        *gorm.DB
	Counter   controllers.LikeCounter
	Events    events.Publisher
	Logger    *zap.Logger
	JWTSecret string
}

func SetupRouter(deps Deps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	store := repository.NewGormStore(deps.DB)
	likeService := services.NewLikeService(store)
	articleService := services.NewArticleService(store)

	likeController := controllers.NewLikeController(likeService, articleService, deps.Counter, deps.Events, logger)
	articleController := controllers.NewArticleController(articleService, likeController)
	searchController := controllers.NewSearchController(articleService)

	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestID(), middlewares.Logger(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-User-Id", middlewares.RequestIDHeader},
		ExposeHeaders:    []string{middlewares.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		articles := api.Group("/articles")
		articles.GET("", articleController.ListArticles)
		articles.GET("/:id", articleController.GetArticle)
		articles.GET("/:id/likes", likeController.GetArticleLikes)

		auth := middlewares.Auth(deps.JWTSecret)
		articles.POST("/:id/like", auth, likeController.LikeArticle)
		articles.DELETE("/:id/like", auth, likeController.UnlikeArticle)

		api.GET("/rank/articles", likeController.GetTopArticles)
		api.POST("/search", searchController.SearchArticles)
	}

	return r
}
