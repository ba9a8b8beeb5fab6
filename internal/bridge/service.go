package bridge

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"alicia-launcher/internal/domain"
	"alicia-launcher/internal/installdir"
	"alicia-launcher/internal/link"
	"alicia-launcher/internal/process"
)

var Module = fx.Options(
	fx.Provide(NewService),
)

var ErrBridge = errors.New("failed to bridge to the launcher")

// LauncherExecutable is the launcher binary expected in the install directory.
func LauncherExecutable() string {
	if runtime.GOOS == "windows" {
		return "alicia-launcher-cli.exe"
	}
	return "alicia-launcher-cli"
}

type Service struct {
	url      *domain.LaunchURL
	creds    domain.Credentials
	resolver installdir.Resolver
	runner   process.Runner
	logger   *zap.Logger
}

func NewService(
	url *domain.LaunchURL,
	creds domain.Credentials,
	resolver installdir.Resolver,
	runner process.Runner,
	logger *zap.Logger,
) *Service {
	return &Service{
		url:      url,
		creds:    creds,
		resolver: resolver,
		runner:   runner,
		logger:   logger.With(zap.String("component", "bridge")),
	}
}

// Run resolves the install directory and starts the launcher elevated with
// the credentials carried by the launch url.
func (s *Service) Run(ctx context.Context) error {
	dir, err := s.resolver.Resolve()
	if err != nil {
		s.logger.Error("the game install directory is empty or does not exist", zap.Error(err))
		return err
	}
	s.logger.Info("game install directory", zap.String("dir", dir))

	if err := ctx.Err(); err != nil {
		return err
	}

	_, err = s.runner.Start(process.Command{
		Program:  filepath.Join(dir, LauncherExecutable()),
		Args:     []string{s.creds.LoginID, s.creds.AuthKey},
		Dir:      dir,
		Elevated: true,
	})
	if err != nil {
		s.logger.Error("failed to bridge to the launcher",
			zap.String("path", s.url.Path),
			zap.Error(err))
		return fmt.Errorf("%w: %w", ErrBridge, err)
	}

	s.logger.Info("started the launcher")
	return nil
}

// UserMessage maps a bridge failure to the text shown to the player.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, installdir.ErrNotInstalled):
		return "The game install directory is empty or does not exist. The game is not correctly installed."
	case errors.Is(err, link.ErrMalformedURL),
		errors.Is(err, link.ErrMissingUser), errors.Is(err, link.ErrMissingToken):
		return "Failed to parse the launch URI. Check the console."
	default:
		return "Failed to start the launcher. Check the console."
	}
}

// ExitCode is the process status for a bridge failure. Only a missing install
// is fatal; other failures are reported to the player and exit cleanly.
func ExitCode(err error) int {
	if errors.Is(err, installdir.ErrNotInstalled) {
		return 1
	}
	return 0
}
