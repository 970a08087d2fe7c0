package main

import (
	"context"
	"log"

	"go.uber.org/fx"

	"earnsim/internal/modules/config"
	"earnsim/internal/modules/postgres"
	"earnsim/internal/runner"
	"earnsim/pkg/logger"
)

func main() {
	if err := logger.Init("sim"); err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	app := fx.New(
		fx.Provide(
			func() context.Context {
				return context.Background()
			},
		),
		config.Module(),
		postgres.Module(),
		runner.Module(),
	)
	app.Run()
}
