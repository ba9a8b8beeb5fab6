package app

import (
	"context"
	"errors"
	"time"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"alicia-launcher/internal/bridge"
	"alicia-launcher/internal/common"
	"alicia-launcher/internal/config"
	"alicia-launcher/internal/domain"
	"alicia-launcher/internal/installdir"
	"alicia-launcher/internal/launcher"
	"alicia-launcher/internal/link"
	"alicia-launcher/internal/metrics"
	"alicia-launcher/internal/process"
	"alicia-launcher/internal/webinfo"
)

// Runner is the one-shot work an application performs between start and stop.
type Runner interface {
	Run(ctx context.Context) error
}

type Application struct {
	app    *fx.App
	logger *zap.Logger
	runner Runner
}

// NewLauncherApplication hosts the web info and runs the game.
func NewLauncherApplication(opts ...common.Option) *Application {
	options := common.NewServiceOptions(opts...)
	a := &Application{logger: options.Logger}

	var service *launcher.Service
	a.app = fx.New(
		launcherModules(options),
		baseOptions("launcher", options),
		fx.Populate(&service),
	)
	if service != nil {
		a.runner = service
	}

	return a
}

// NewBridgeApplication hands the launch url credentials to the launcher.
func NewBridgeApplication(opts ...common.Option) *Application {
	options := common.NewServiceOptions(opts...)
	a := &Application{logger: options.Logger}

	var service *bridge.Service
	a.app = fx.New(
		bridgeModules(options),
		baseOptions("launcher-bridge", options),
		fx.Populate(&service),
	)
	if service != nil {
		a.runner = service
	}

	return a
}

func launcherModules(options *common.ServiceOptions) fx.Option {
	return fx.Options(
		// Core modules
		config.Module,
		metrics.Module,
		webinfo.Module,
		process.Module,
		launcher.Module,

		// Provide base dependencies
		fx.Provide(
			func() *zap.Logger { return options.Logger },
			func() launcher.Args { return options.Args },
		),
	)
}

func bridgeModules(options *common.ServiceOptions) fx.Option {
	return fx.Options(
		// Core modules
		link.Module,
		installdir.Module,
		process.Module,
		bridge.Module,

		// Provide base dependencies
		fx.Provide(
			func() *zap.Logger { return options.Logger },
			func() domain.RawLaunchURL { return domain.RawLaunchURL(options.LaunchURL) },
		),
	)
}

func baseOptions(name string, options *common.ServiceOptions) fx.Option {
	return fx.Options(
		// Configure fx
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),

		// Set timeouts
		fx.StopTimeout(30*time.Second),
		fx.StartTimeout(30*time.Second),

		// Register lifecycle hooks
		fx.Invoke(registerHooks(name)),

		fx.Options(options.FxOptions...),
	)
}

func (a *Application) Err() error {
	return a.app.Err()
}

func (a *Application) Start(ctx context.Context) error {
	return a.app.Start(ctx)
}

func (a *Application) Stop(ctx context.Context) error {
	return a.app.Stop(ctx)
}

// Run starts the application, performs its work and stops it again. Stop hooks
// run even when the work fails, so published resources are always released.
func (a *Application) Run(ctx context.Context) error {
	if err := a.app.Err(); err != nil {
		return err
	}

	if err := a.Start(ctx); err != nil {
		return err
	}

	runErr := a.runner.Run(ctx)
	if runErr != nil {
		a.logger.Error("application run failed", zap.Error(runErr))
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return errors.Join(runErr, a.Stop(stopCtx))
}
