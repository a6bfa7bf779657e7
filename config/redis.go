package config

import (
	"fmt"

	"articlelike/global"

	"github.com/go-redis/redis"
	"go.uber.org/zap"
)

func initRedis() error {
	addr := AppConfig.Redis.Addr
	if addr == "" {
		global.Logger.Info("redis addr empty, like counter cache disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		DB:       AppConfig.Redis.DB,
		Password: AppConfig.Redis.Password,
	})
	if _, err := client.Ping().Result(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	global.RedisDB = client
	global.Logger.Info("redis initialized", zap.String("addr", addr))
	return nil
}
