package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"articlelike/cache"
	"articlelike/config"
	"articlelike/controllers"
	"articlelike/events"
	"articlelike/global"
	"articlelike/router"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.InitConfig(configPath); err != nil {
			return err
		}
		logger := global.Logger
		defer logger.Sync()
		defer closeGlobals()

		gin.SetMode(config.AppConfig.App.Mode)

		var counter controllers.LikeCounter
		if global.RedisDB != nil {
			counter = cache.NewLikeCounter(global.RedisDB)
		}
		var publisher events.Publisher = events.NopPublisher{}
		if global.RabbitChannel != nil {
			publisher = events.NewAMQPPublisher(global.RabbitChannel, config.AppConfig.RabbitMQ.Queue)
		}

		engine := router.SetupRouter(router.Deps{
			DB:        global.Db,
			Counter:   counter,
			Events:    publisher,
			Logger:    logger,
			JWTSecret: config.AppConfig.Auth.JwtSecret,
		})

		srv := &http.Server{
			Addr:              config.AppConfig.App.Port,
			Handler:           engine,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       90 * time.Second,
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			logger.Info("server listening", zap.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func closeGlobals() {
	if global.RabbitChannel != nil {
		global.RabbitChannel.Close()
	}
	if global.RabbitConn != nil {
		global.RabbitConn.Close()
	}
	if global.RedisDB != nil {
		global.RedisDB.Close()
	}
	if global.Db != nil {
		closeDB(global.Db)
	}
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
