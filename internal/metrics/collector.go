package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"alicia-launcher/internal/config"
	"alicia-launcher/internal/domain"
)

// Module provides the metrics collector
var Module = fx.Options(
	fx.Provide(prometheus.NewRegistry),
	fx.Provide(NewCollector),
	fx.Provide(func(c *Collector) domain.MetricsCollector { return c }),
	fx.Invoke(registerHooks),
)

const (
	resultSuccess = "success"
	resultFailure = "failure"
)

type Collector struct {
	logger          *zap.Logger
	registry        *prometheus.Registry
	publications    *prometheus.CounterVec
	publishDuration prometheus.Histogram
	active          prometheus.Gauge
	launches        *prometheus.CounterVec
	gameExitCode    prometheus.Gauge
}

func NewCollector(registry *prometheus.Registry, logger *zap.Logger) *Collector {
	factory := promauto.With(registry)

	return &Collector{
		logger:   logger,
		registry: registry,
		publications: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "alicia_webinfo_publications_total",
				Help: "Total number of web info publications",
			},
			[]string{"result"},
		),
		publishDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "alicia_webinfo_publish_duration_seconds",
				Help:    "Duration of web info publications",
				Buckets: prometheus.DefBuckets,
			},
		),
		active: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "alicia_webinfo_active",
				Help: "Whether a web info region is currently published (1) or not (0)",
			},
		),
		launches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "alicia_game_launches_total",
				Help: "Total number of game launch attempts",
			},
			[]string{"result"},
		),
		gameExitCode: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "alicia_game_exit_code",
				Help: "Exit code of the last game process",
			},
		),
	}
}

func result(err error) string {
	if err != nil {
		return resultFailure
	}
	return resultSuccess
}

func (c *Collector) RecordPublication(duration time.Duration, err error) {
	c.publications.WithLabelValues(result(err)).Inc()
	c.publishDuration.Observe(duration.Seconds())
	if err == nil {
		c.active.Set(1)
	}
}

func (c *Collector) RecordRelease() {
	c.active.Set(0)
}

func (c *Collector) RecordLaunch(err error) {
	c.launches.WithLabelValues(result(err)).Inc()
}

func (c *Collector) RecordGameExit(exitCode int) {
	c.gameExitCode.Set(float64(exitCode))
}

// WriteTextfile dumps the registry in the text exposition format, suitable for
// the node exporter textfile collector.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}

func registerHooks(lc fx.Lifecycle, cfg *config.Config, c *Collector) {
	if cfg.MetricsFile == "" {
		return
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if err := c.WriteTextfile(cfg.MetricsFile); err != nil {
				c.logger.Warn("failed to write metrics file", zap.Error(err))
				return nil
			}
			c.logger.Debug("wrote metrics file", zap.String("path", cfg.MetricsFile))
			return nil
		},
	})
}
