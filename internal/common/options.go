package common

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ServiceOptions defines common options for application constructors
type ServiceOptions struct {
	Logger    *zap.Logger
	Args      []string
	LaunchURL string
	FxOptions []fx.Option
}

// Option defines a service option modifier
type Option func(*ServiceOptions)

func WithLogger(logger *zap.Logger) Option {
	return func(o *ServiceOptions) {
		o.Logger = logger
	}
}

// WithArgs sets the positional command-line arguments, without the program name.
func WithArgs(args []string) Option {
	return func(o *ServiceOptions) {
		o.Args = args
	}
}

func WithLaunchURL(raw string) Option {
	return func(o *ServiceOptions) {
		o.LaunchURL = raw
	}
}

// WithFxOptions appends extra fx options, typically fx.Decorate or fx.Replace in tests.
func WithFxOptions(opts ...fx.Option) Option {
	return func(o *ServiceOptions) {
		o.FxOptions = append(o.FxOptions, opts...)
	}
}

func NewServiceOptions(opts ...Option) *ServiceOptions {
	options := &ServiceOptions{}
	for _, opt := range opts {
		opt(options)
	}

	// Ensure required options are set
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}

	return options
}
