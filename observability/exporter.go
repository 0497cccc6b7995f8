package observability

// https://opentelemetry.io/docs/languages/go/exporters/

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/benz9527/xlist/lib/infra"
)

type MetricsExporterType string

const (
	NoneMetricsExporter    MetricsExporterType = "none"
	ConsoleMetricsExporter MetricsExporterType = "stdout"
)

type ShutdownFunc func(ctx context.Context) error

type exporterCfg struct {
	writer   io.Writer
	interval time.Duration
	timeout  time.Duration
	global   bool
}

type ExporterOption func(cfg *exporterCfg)

func WithExporterWriter(w io.Writer) ExporterOption {
	return func(cfg *exporterCfg) {
		cfg.writer = w
	}
}

func WithExporterInterval(interval, timeout time.Duration) ExporterOption {
	return func(cfg *exporterCfg) {
		cfg.interval, cfg.timeout = interval, timeout
	}
}

// WithGlobalMeterProvider registers the provider by otel.SetMeterProvider.
func WithGlobalMeterProvider() ExporterOption {
	return func(cfg *exporterCfg) {
		cfg.global = true
	}
}

// NewMeterProvider builds the meter provider of typ. The returned
// shutdown flushes the pending metrics.
func NewMeterProvider(typ MetricsExporterType, opts ...ExporterOption) (metric.MeterProvider, ShutdownFunc, error) {
	cfg := &exporterCfg{
		writer:   os.Stdout,
		interval: 10 * time.Second,
		timeout:  5 * time.Second,
	}
	for _, o := range opts {
		if o != nil {
			o(cfg)
		}
	}

	var (
		mp       metric.MeterProvider
		shutdown ShutdownFunc
		err      error
	)
	switch MetricsExporterType(strings.ToLower(string(typ))) {
	case NoneMetricsExporter, "":
		mp, shutdown = noop.NewMeterProvider(), func(context.Context) error { return nil }
	case ConsoleMetricsExporter:
		mp, shutdown, err = newConsoleMetricsExporter(cfg)
	default:
		return nil, nil, infra.NewErrorStack("[observability] unknown metrics exporter " + string(typ))
	}
	if err != nil {
		return nil, nil, infra.WrapErrorStackWithMessage(err, "[observability] build metrics exporter")
	}
	if cfg.global {
		otel.SetMeterProvider(mp)
	}
	return mp, shutdown, nil
}

// Serves for test/dev environment.
func newConsoleMetricsExporter(cfg *exporterCfg) (metric.MeterProvider, ShutdownFunc, error) {
	exporter, err := stdoutmetric.New(
		stdoutmetric.WithWriter(cfg.writer),
		stdoutmetric.WithoutTimestamps(),
	)
	if err != nil {
		return nil, nil, err
	}
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(sdkmetric.NewPeriodicReader(
		exporter,
		sdkmetric.WithInterval(cfg.interval),
		sdkmetric.WithTimeout(cfg.timeout),
	)))
	return mp, mp.Shutdown, nil
}
