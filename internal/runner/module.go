package runner

import (
	"context"

	"go.uber.org/fx"

	"earnsim/internal/marketdata"
	"earnsim/internal/modules/config"
	"earnsim/internal/notify"
	"earnsim/internal/sim"
	"earnsim/pkg/logger"
	"earnsim/pkg/tracing"
)

func Module() fx.Option {
	return fx.Module("runner",
		fx.Provide(
			marketdata.NewRepo, // *marketdata.Repo
			func(repo *marketdata.Repo) *sim.Simulator { return sim.New(repo) },
			func(cfg *config.Config) notify.Notifier {
				if cfg.Telegram.Token != "" {
					t, err := notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID)
					if err == nil {
						return t
					}
					logger.Warn("telegram notifier unavailable: %v", err)
				}
				return notify.NewStdout()
			},
			func(cfg *config.Config) (*Manifest, error) {
				return LoadManifest(cfg.Manifest)
			},
			func(repo *marketdata.Repo, s *sim.Simulator, n notify.Notifier, m *Manifest, cfg *config.Config) *Runner {
				return New(repo, s, n, m, cfg.Workers)
			},
		),
		fx.Invoke(func(lc fx.Lifecycle, cfg *config.Config) error {
			_, closeTracer, err := tracing.InitTracer(tracing.Config{
				Host: cfg.Jaeger.Host,
				Port: cfg.Jaeger.Port,
			})
			if err != nil {
				return err
			}
			lc.Append(fx.Hook{
				OnStop: func(context.Context) error {
					closeTracer()
					return nil
				},
			})
			return nil
		}),
		fx.Invoke(func(lc fx.Lifecycle, sh fx.Shutdowner, r *Runner, ctx context.Context) {
			lc.Append(fx.Hook{
				OnStart: func(context.Context) error {
					go func() {
						if err := r.Run(ctx); err != nil {
							logger.Error("batch failed: %v", err)
						}
						_ = sh.Shutdown()
					}()
					return nil
				},
			})
		}),
	)
}
