package launcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"alicia-launcher/internal/config"
	"alicia-launcher/internal/domain"
	"alicia-launcher/internal/interfaces"
	"alicia-launcher/internal/process"
)

var Module = fx.Options(
	fx.Provide(NewService),
)

// Args are the positional command-line arguments of the launcher.
type Args []string

type Service struct {
	cfg       *config.Config
	creds     domain.Credentials
	publisher interfaces.WebInfoPublisher
	runner    process.Runner
	metrics   domain.MetricsCollector
	logger    *zap.Logger
}

type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Args      Args
	Publisher interfaces.WebInfoPublisher
	Runner    process.Runner
	Metrics   domain.MetricsCollector
	Logger    *zap.Logger
}

func NewService(p Params) *Service {
	s := &Service{
		cfg:       p.Config,
		publisher: p.Publisher,
		runner:    p.Runner,
		metrics:   p.Metrics,
		logger:    p.Logger.With(zap.String("component", "launcher")),
	}

	if creds, ok := config.Credentials(p.Args); ok {
		s.creds = creds
		s.logger.Info("credentials loaded from command-line")
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return s.Publish()
		},
		OnStop: func(ctx context.Context) error {
			s.Release()
			return nil
		},
	})

	return s
}

// Publish hosts the configured web info, with the command-line credentials
// applied, under the configured region name.
func (s *Service) Publish() error {
	info := s.cfg.WebInfo(s.creds)

	start := time.Now()
	err := s.publisher.Publish(s.cfg.WebInfoID, info)
	s.metrics.RecordPublication(time.Since(start), err)
	if err != nil {
		s.logger.Error("failed to host web info",
			zap.String("web_info_id", s.cfg.WebInfoID),
			zap.Error(err))
		return fmt.Errorf("%w: %w", ErrHostWebInfo, err)
	}

	s.logger.Info("hosted the web info", zap.String("web_info_id", s.cfg.WebInfoID))
	return nil
}

func (s *Service) Release() {
	if s.publisher.ID() == "" {
		return
	}
	s.publisher.Release()
	s.metrics.RecordRelease()
	s.logger.Info("released the web info")
}

// Run starts the game and waits for it to exit. When launching is disabled it
// keeps the web info hosted until ctx is done.
func (s *Service) Run(ctx context.Context) error {
	if !s.cfg.Launch {
		s.logger.Info("not launching the game, waiting for shutdown")
		<-ctx.Done()
		return nil
	}

	s.logger.Info("launching the game",
		zap.String("program", s.cfg.ExecutableProgram),
		zap.String("arguments", s.cfg.ExecutableArguments))

	game, err := s.runner.Start(process.Command{
		Program:   s.cfg.ExecutableProgram,
		Arguments: s.cfg.ExecutableArguments,
	})
	s.metrics.RecordLaunch(err)
	if err != nil {
		s.logLaunchError(err)
		return fmt.Errorf("%w: %w", ErrLaunchGame, err)
	}

	s.logger.Info("game launched, idling until the process exits", zap.Int("pid", game.Pid()))

	code, err := game.Wait(ctx)
	if err != nil {
		if ctx.Err() != nil {
			s.logger.Info("shutdown requested before the game exited, stopping it", zap.Int("pid", game.Pid()))
			if stopErr := game.Stop(); stopErr != nil {
				return fmt.Errorf("failed to stop the game: %w", stopErr)
			}
			return nil
		}
		return fmt.Errorf("failed waiting for the game: %w", err)
	}

	s.metrics.RecordGameExit(code)
	s.logger.Info("game exited", zap.Int("exit_code", code))
	return nil
}

func (s *Service) logLaunchError(err error) {
	switch {
	case errors.Is(err, process.ErrElevationRequired):
		s.logger.Error("can't launch the game, elevation is required", zap.Error(err))
	case errors.Is(err, process.ErrExecutableNotFound):
		s.logger.Error("can't launch the game, the executable file was not found", zap.Error(err))
	default:
		var startErr *process.StartError
		if errors.As(err, &startErr) {
			s.logger.Error("can't launch the game",
				zap.Uint64("os_error", uint64(startErr.Code)),
				zap.Error(err))
			return
		}
		s.logger.Error("can't launch the game", zap.Error(err))
	}
}
