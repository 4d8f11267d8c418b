// Package observability wires optional OTLP metrics and tracing for the
// client and owns the slog setup. Counters stay nil-safe: recording before
// InitMetrics, or with metrics disabled, is a no-op.
package observability

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"pawnbook/internal/config"
)

type Runtime struct {
	MeterProvider  *sdkmetric.MeterProvider
	TracerProvider *sdktrace.TracerProvider
}

func InitRuntime(ctx context.Context, cfg config.OTELConfig, logger *slog.Logger) (*Runtime, error) {
	mp, err := InitMetrics(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	tp, err := InitTracing(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return &Runtime{MeterProvider: mp, TracerProvider: tp}, nil
}

func (r *Runtime) Shutdown(ctx context.Context) error {
	if r == nil {
		return nil
	}
	var shutdowns []func(context.Context) error
	if r.MeterProvider != nil {
		shutdowns = append(shutdowns, r.MeterProvider.Shutdown)
	}
	if r.TracerProvider != nil {
		shutdowns = append(shutdowns, r.TracerProvider.Shutdown)
	}
	var errs []error
	for _, shutdown := range shutdowns {
		if err := shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Transport instruments outbound HTTP when observability is enabled.
func Transport(cfg config.OTELConfig) http.RoundTripper {
	if !cfg.Enabled {
		return nil
	}
	return otelhttp.NewTransport(http.DefaultTransport)
}

// NewLogger builds the process logger writing to stderr.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
