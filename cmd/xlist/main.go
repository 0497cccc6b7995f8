package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/benz9527/xlist/lib/infra"
	"github.com/benz9527/xlist/observability"
	"github.com/benz9527/xlist/opscript"
	"github.com/benz9527/xlist/xlog"
)

const (
	appName        = "xlist"
	startStopLimit = 10 * time.Second
)

type config struct {
	kind       opscript.Kind
	script     string
	logLevel   xlog.LogLevel
	logEncoder xlog.LogEncoderType
	metrics    observability.MetricsExporterType
	global     bool
	threadSafe bool
}

type stdio struct {
	in       io.Reader
	out, err io.Writer
}

func parseFlags(args []string, stderr io.Writer) (*config, error) {
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		kind       = fs.String("kind", string(opscript.KindDoubly), "list kind, singly or doubly")
		script     = fs.String("script", "", "operation script path, stdin if empty")
		logLevel   = fs.String("log-level", os.Getenv("XLOG_LVL"), "log level: debug, info, warn, error")
		logEncoder = fs.String("log-encoder", "json", "log encoder: json or text")
		metrics    = fs.String("metrics", string(observability.NoneMetricsExporter), "metrics exporter: none or stdout")
		global     = fs.Bool("metrics-global", false, "register the meter provider as the otel global one")
		threadSafe = fs.Bool("thread-safe", false, "wrap the list by a mutex")
	)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, infra.NewErrorStack("unexpected arguments: " + strings.Join(fs.Args(), " "))
	}

	cfg := &config{
		script:     *script,
		logLevel:   xlog.LogLevelInfo,
		metrics:    observability.MetricsExporterType(*metrics),
		global:     *global,
		threadSafe: *threadSafe,
	}
	var err error
	if cfg.kind, err = opscript.ParseKind(*kind); err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(*logLevel)) > 0 {
		if cfg.logLevel, err = xlog.ParseLogLevel(*logLevel); err != nil {
			return nil, err
		}
	}
	switch strings.ToLower(*logEncoder) {
	case "json":
		cfg.logEncoder = xlog.JSON
	case "text", "plain":
		cfg.logEncoder = xlog.PlainText
	default:
		return nil, infra.NewErrorStack("unknown log encoder " + *logEncoder)
	}
	return cfg, nil
}

func newLogger(lc fx.Lifecycle, cfg *config, std stdio) xlog.XLogger {
	logger := xlog.NewXLogger(
		xlog.WithXLoggerWriter(zapcore.Lock(zapcore.AddSync(std.err))),
		xlog.WithXLoggerLevel(cfg.logLevel),
		xlog.WithXLoggerEncoder(cfg.logEncoder),
		xlog.WithXLoggerContextFieldExtract("script"),
	)
	lc.Append(fx.StopHook(func() {
		_ = logger.Sync()
	}))
	return logger
}

func newMeterProvider(lc fx.Lifecycle, cfg *config, std stdio) (metric.MeterProvider, error) {
	opts := []observability.ExporterOption{
		observability.WithExporterWriter(std.err),
	}
	if cfg.global {
		opts = append(opts, observability.WithGlobalMeterProvider())
	}
	mp, shutdown, err := observability.NewMeterProvider(cfg.metrics, opts...)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{OnStop: shutdown})
	return mp, nil
}

func newRunner(cfg *config, logger xlog.XLogger, mp metric.MeterProvider) (*opscript.Runner, error) {
	opts := []opscript.RunnerOption{
		opscript.WithRunnerLogger(logger),
		opscript.WithRunnerMeterProvider(mp),
	}
	if cfg.threadSafe {
		opts = append(opts, opscript.WithRunnerThreadSafeList())
	}
	return opscript.NewRunner(cfg.kind, opts...)
}

func readScript(cfg *config, std stdio) (ops []opscript.Op, err error) {
	in := std.in
	if len(cfg.script) > 0 {
		f, openErr := os.Open(cfg.script)
		if openErr != nil {
			return nil, infra.WrapErrorStackWithMessage(openErr, "open script")
		}
		defer func() {
			err = multierr.Append(err, f.Close())
		}()
		in = f
	}
	return opscript.Parse(in)
}

func run(args []string, std stdio) (err error) {
	cfg, err := parseFlags(args, std.err)
	if err != nil {
		return err
	}

	var (
		runner *opscript.Runner
		logger xlog.XLogger
	)
	app := fx.New(
		fx.Supply(cfg, std),
		fx.Provide(newLogger, newMeterProvider, newRunner),
		fx.WithLogger(func(logger xlog.XLogger) fxevent.Logger {
			return xlog.NewFxXLogger(logger)
		}),
		fx.Populate(&runner, &logger),
	)
	if err = app.Err(); err != nil {
		return err
	}

	startCtx, cancel := context.WithTimeout(context.Background(), startStopLimit)
	defer cancel()
	if err = app.Start(startCtx); err != nil {
		return err
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), startStopLimit)
		defer cancel()
		err = multierr.Append(err, app.Stop(stopCtx))
	}()

	ops, err := readScript(cfg, std)
	if err != nil {
		logger.ErrorStack(err, "failed to read the operation script", zap.String("script", cfg.script))
		return err
	}
	ctx := xlog.ContextWithField(context.Background(), "script", cfg.script)
	outputs, err := runner.Run(ctx, ops)
	for _, line := range outputs {
		if _, werr := fmt.Fprintln(std.out, line); werr != nil {
			return multierr.Append(err, werr)
		}
	}
	return err
}

func main() {
	if err := run(os.Args[1:], stdio{in: os.Stdin, out: os.Stdout, err: os.Stderr}); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(1)
	}
}
