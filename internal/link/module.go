package link

import (
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"alicia-launcher/internal/domain"
)

var Module = fx.Provide(
	ProvideLaunchURL,
	ProvideCredentials,
)

func ProvideLaunchURL(raw domain.RawLaunchURL, logger *zap.Logger) (*domain.LaunchURL, error) {
	parsed, err := Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse launch url: %w", err)
	}

	logger.Info("parsed the launch url",
		zap.String("schema", parsed.Schema),
		zap.String("path", parsed.Path),
		zap.Int("params", len(parsed.Query)))

	return parsed, nil
}

func ProvideCredentials(u *domain.LaunchURL) (domain.Credentials, error) {
	creds, err := Credentials(u)
	if err != nil {
		return domain.Credentials{}, fmt.Errorf("invalid launch url credentials: %w", err)
	}
	return creds, nil
}
