package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "ARTICLELIKE"

type Config struct {
	App struct {
		Name string
		Port string
		Mode string
	}
	Database DatabaseConfig
	Redis    struct {
		Addr     string
		DB       int
		Password string
	}
	RabbitMQ struct {
		Url   string
		Queue string
	}
	Auth struct {
		JwtSecret string
		TokenTTL  time.Duration
	}
	Log struct {
		Level       string
		Development bool
	}
}

type DatabaseConfig struct {
	Driver       string
	Dsn          string
	MaxIdleConns int
	MaxOpenConns int
	AutoMigrate  bool
}

var AppConfig *Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "articlelike")
	v.SetDefault("app.port", ":8080")
	v.SetDefault("app.mode", "release")
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.maxIdleConns", 10)
	v.SetDefault("database.maxOpenConns", 100)
	v.SetDefault("database.autoMigrate", false)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.password", "")
	v.SetDefault("rabbitmq.url", "")
	v.SetDefault("rabbitmq.queue", "like.queue")
	v.SetDefault("auth.jwtSecret", "")
	v.SetDefault("auth.tokenTTL", "24h")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
}

// LoadConfig: 读取 path 指定的 YAML 配置，path 为空时读取 ./config/config.yml。
// 默认文件不存在不算错误，默认值和 ARTICLELIKE_* 环境变量仍然生效
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yml")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	return cfg, nil
}

// InitConfig: 加载配置到 AppConfig，并依次初始化日志、数据库、Redis 和 RabbitMQ
func InitConfig(path string) error {
	cfg, err := LoadConfig(path)
	if err != nil {
		return err
	}
	AppConfig = cfg

	if err := initLogger(); err != nil {
		return err
	}
	if err := initDB(); err != nil {
		return err
	}
	if err := initRedis(); err != nil {
		return err
	}
	return initRabbit()
}
