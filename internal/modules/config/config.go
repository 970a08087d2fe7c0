package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	configFilePathENV = "CONFIG_FILE"
	tokenTelegramENV  = "TELEGRAM_TOKEN"
	chatTelegramENV   = "TELEGRAM_CHAT_ID"
	databaseDSNENV    = "DATABASE_DSN"
)

// Config ...
type Config struct {
	DB       string // postgres DSN
	Workers  int    // parallel record pipelines
	Manifest string // batch manifest path (models + TSV input)

	Telegram struct {
		Token  string
		ChatID int64
	}

	Jaeger struct {
		Host string
		Port int
	}

	Feed struct {
		URL     string
		Symbols []string
	}
}

func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	name := os.Getenv(configFilePathENV)
	if name == "" {
		name = "values_local.yaml"
	}
	v.SetConfigFile("configs/" + name)

	v.SetDefault("workers", 8)
	v.SetDefault("manifest", "configs/manifest.yaml")
	v.SetDefault("jaeger.host", "127.0.0.1")
	v.SetDefault("jaeger.port", 6831)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", name, err)
	}

	cfg := &Config{
		DB:       v.GetString("db_dsn"),
		Workers:  v.GetInt("workers"),
		Manifest: v.GetString("manifest"),
	}
	cfg.Telegram.Token = v.GetString("telegram.token")
	cfg.Telegram.ChatID = v.GetInt64("telegram.chat_id")
	cfg.Jaeger.Host = v.GetString("jaeger.host")
	cfg.Jaeger.Port = v.GetInt("jaeger.port")
	cfg.Feed.URL = v.GetString("feed.url")
	cfg.Feed.Symbols = v.GetStringSlice("feed.symbols")

	if dsn := os.Getenv(databaseDSNENV); dsn != "" {
		cfg.DB = dsn
	}
	if token := os.Getenv(tokenTelegramENV); token != "" {
		cfg.Telegram.Token = token
	}
	if raw := os.Getenv(chatTelegramENV); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			cfg.Telegram.ChatID = id
		}
	}

	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}

	return cfg, nil
}
