package installdir

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/fx"
)

var Module = fx.Provide(NewResolver)

// EnvVar overrides the install directory on every platform.
const EnvVar = "ALICIA_INSTALL_DIR"

var ErrNotInstalled = errors.New("the game install directory is empty or does not exist")

type Resolver interface {
	Resolve() (string, error)
}

type resolver struct {
	lookup func() (string, error)
}

func NewResolver() Resolver {
	return &resolver{lookup: lookupInstallDir}
}

func (r *resolver) Resolve() (string, error) {
	dir := os.Getenv(EnvVar)
	if dir == "" {
		var err error
		if dir, err = r.lookup(); err != nil {
			return "", fmt.Errorf("%w: %w", ErrNotInstalled, err)
		}
	}

	if dir == "" {
		return "", ErrNotInstalled
	}

	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNotInstalled, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrNotInstalled, dir)
	}

	return dir, nil
}
