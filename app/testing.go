package app

import (
	"context"
	"testing"
	"time"

	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"alicia-launcher/internal/common"
	"alicia-launcher/internal/launcher"
)

// TestApplication runs the launcher modules under fxtest.
type TestApplication struct {
	tb      testing.TB
	testApp *fxtest.App
	options []fx.Option
	common  *common.ServiceOptions

	Service *launcher.Service
}

func NewTestApplication(tb testing.TB, opts ...common.Option) *TestApplication {
	return &TestApplication{
		tb:     tb,
		common: common.NewServiceOptions(opts...),
	}
}

func (ta *TestApplication) WithOption(opt fx.Option) *TestApplication {
	ta.options = append(ta.options, opt)
	return ta
}

func (ta *TestApplication) Start(ctx context.Context) error {
	testOptions := []fx.Option{
		launcherModules(ta.common),
		fx.Options(ta.common.FxOptions...),
		fx.Populate(&ta.Service),
	}

	// Add user-provided options
	testOptions = append(testOptions, ta.options...)

	// Configure test app
	testOptions = append(testOptions,
		fx.StartTimeout(10*time.Second),
		fx.StopTimeout(10*time.Second),
	)

	// Create test app
	ta.testApp = fxtest.New(
		ta.tb,
		testOptions...,
	)

	return ta.testApp.Start(ctx)
}

func (ta *TestApplication) Stop(ctx context.Context) error {
	if ta.testApp != nil {
		return ta.testApp.Stop(ctx)
	}
	return nil
}
