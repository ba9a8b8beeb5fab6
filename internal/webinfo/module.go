package webinfo

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"alicia-launcher/internal/config"
	"alicia-launcher/internal/interfaces"
)

var Module = fx.Options(
	fx.Provide(ProvideHost),
	fx.Provide(func(h *Host) interfaces.WebInfoPublisher { return h }),
)

// ProvideHost builds the host and guarantees its publication is released when
// the application stops, whichever path led there.
func ProvideHost(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) *Host {
	var opts []HostOption
	if cfg.WebInfoDirectory != "" {
		opts = append(opts, WithDirectory(cfg.WebInfoDirectory))
	}
	host := NewHost(opts...)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if id := host.ID(); id != "" {
				logger.Debug("releasing web info", zap.String("web_info_id", id))
			}
			return host.Close()
		},
	})

	return host
}

// Ensure required interfaces are implemented
var _ interfaces.WebInfoPublisher = (*Host)(nil)
