package config

import (
	"errors"
	"fmt"

	"go.uber.org/fx"
)

var ErrSettings = errors.New("couldn't load the settings file")

var Module = fx.Provide(ProvideConfig)

func ProvideConfig() (*Config, error) {
	cfg, err := NewConfig()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSettings, err)
	}
	return cfg, nil
}
