package observability

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"

	"pawnbook/internal/config"
)

// The three counters the client emits: sign-in and refresh outcomes on the
// token endpoints, and replays performed after a mid-session token refresh.
const (
	counterSignIn  = "auth.signin.attempts"
	counterRefresh = "auth.refresh.attempts"
	counterReplay  = "api.request.replays"
)

var (
	countersMu sync.RWMutex
	counters   map[string]metric.Int64Counter
)

func newResource(ctx context.Context, cfg config.OTELConfig) (*resource.Resource, error) {
	return resource.New(ctx, resource.WithAttributes(
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("deployment.environment", cfg.Environment),
	))
}

func InitMetrics(ctx context.Context, cfg config.OTELConfig, logger *slog.Logger) (*sdkmetric.MeterProvider, error) {
	if !cfg.Enabled {
		mp := sdkmetric.NewMeterProvider()
		otel.SetMeterProvider(mp)
		logger.Debug("otel metrics disabled")
		return mp, nil
	}

	opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}
	exporter, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create otlp metric exporter: %w", err)
	}
	res, err := newResource(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create metric resource: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(cfg.MetricsInterval))),
	)
	otel.SetMeterProvider(mp)

	meter := mp.Meter("pawnbook")
	registered := make(map[string]metric.Int64Counter, 3)
	for _, name := range []string{counterSignIn, counterRefresh, counterReplay} {
		c, err := meter.Int64Counter(name)
		if err != nil {
			return nil, fmt.Errorf("register counter %s: %w", name, err)
		}
		registered[name] = c
	}
	countersMu.Lock()
	counters = registered
	countersMu.Unlock()

	logger.Info("otel metrics initialized", "endpoint", cfg.Endpoint)
	return mp, nil
}

// record adds one to the named counter. Before InitMetrics, or with metrics
// disabled, it is a no-op.
func record(name string, attrs ...attribute.KeyValue) {
	countersMu.RLock()
	c, ok := counters[name]
	countersMu.RUnlock()
	if !ok {
		return
	}
	c.Add(context.Background(), 1, metric.WithAttributes(attrs...))
}

func RecordSignIn(status string) {
	record(counterSignIn, attribute.String("status", status))
}

func RecordRefresh(status string) {
	record(counterRefresh, attribute.String("status", status))
}

func RecordReplay() {
	record(counterReplay)
}
