package app

import (
	"context"
	"os"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

type hookParams struct {
	fx.In

	Logger    *zap.Logger
	Lifecycle fx.Lifecycle
}

// registerHooks logs where the application runs from; settings.json and the
// game executable are both resolved against the working directory.
func registerHooks(name string) func(hookParams) {
	return func(p hookParams) {
		logger := p.Logger.With(zap.String("application", name))
		var started time.Time

		p.Lifecycle.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				started = time.Now()
				fields := []zap.Field{zap.Int("pid", os.Getpid())}
				if dir, err := os.Getwd(); err != nil {
					logger.Warn("can't determine the working directory", zap.Error(err))
				} else {
					fields = append(fields, zap.String("working_dir", dir))
				}
				logger.Info("starting application", fields...)
				return nil
			},
			OnStop: func(ctx context.Context) error {
				logger.Info("stopping application", zap.Duration("uptime", time.Since(started)))
				return nil
			},
		})
	}
}
