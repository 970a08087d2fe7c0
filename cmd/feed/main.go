package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"earnsim/internal/marketdata"
	"earnsim/internal/modules/config"
	"earnsim/pkg/db"
	"earnsim/pkg/logger"
)

func main() {
	if err := logger.Init("feed"); err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatal("config: %v", err)
	}
	if cfg.Feed.URL == "" || len(cfg.Feed.Symbols) == 0 {
		logger.Fatal("feed.url and feed.symbols must be configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, db.PoolConfig{DSN: cfg.DB})
	if err != nil {
		logger.Fatal("pool: %v", err)
	}
	m := db.NewPgTxManager(pool)
	defer m.Close()

	feed := marketdata.NewFeed(cfg.Feed.URL, marketdata.NewRepo(m))
	if err := feed.Run(ctx, cfg.Feed.Symbols); err != nil && ctx.Err() == nil {
		logger.Fatal("feed: %v", err)
	}
}
