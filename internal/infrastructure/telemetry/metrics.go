package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"
)

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Enabled           bool
	CollectorEndpoint string
	ExportInterval    time.Duration
	ServiceName       string
	Insecure          bool
}

// MeterProvider wraps the OpenTelemetry MeterProvider with lifecycle management.
type MeterProvider struct {
	provider *sdkmetric.MeterProvider
	logger   *zap.Logger
}

// NewMeterProvider creates a MeterProvider exporting over OTLP gRPC.
// When disabled, meters come from the global no-op provider.
func NewMeterProvider(ctx context.Context, cfg MetricsConfig, logger *zap.Logger) (*MeterProvider, error) {
	mp := &MeterProvider{logger: logger}
	if !cfg.Enabled {
		logger.Info("Metrics disabled, using no-op meter provider")
		return mp, nil
	}

	interval := cfg.ExportInterval
	if interval == 0 {
		interval = 60 * time.Second
	}

	exporterOpts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.CollectorEndpoint)}
	if cfg.Insecure {
		exporterOpts = append(exporterOpts, otlpmetricgrpc.WithInsecure())
	}
	exporter, err := otlpmetricgrpc.New(ctx, exporterOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP metrics exporter: %w", err)
	}

	res, err := newResource(cfg.ServiceName)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	mp.provider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval))),
	)
	otel.SetMeterProvider(mp.provider)

	logger.Info("OpenTelemetry MeterProvider initialized",
		zap.String("collector_endpoint", cfg.CollectorEndpoint),
		zap.Duration("export_interval", interval),
	)
	return mp, nil
}

// NewMeterProviderWithReader builds a provider on an explicit reader. Tests use
// it with sdkmetric.NewManualReader.
func NewMeterProviderWithReader(reader sdkmetric.Reader, logger *zap.Logger) *MeterProvider {
	return &MeterProvider{
		provider: sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)),
		logger:   logger,
	}
}

// Meter returns a named meter.
func (mp *MeterProvider) Meter(name string) metric.Meter {
	if mp.provider == nil {
		return otel.GetMeterProvider().Meter(name)
	}
	return mp.provider.Meter(name)
}

// Shutdown flushes pending metrics and stops the provider.
func (mp *MeterProvider) Shutdown(ctx context.Context) error {
	if mp.provider == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := mp.provider.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown meter provider: %w", err)
	}
	return nil
}

// Metric attribute keys
var (
	AttrAction    = attribute.Key("action")
	AttrOperation = attribute.Key("operation")
	AttrMethod    = attribute.Key("method")
)

// LinkMetrics records how the project linkage is used.
type LinkMetrics struct {
	actionsOpened   metric.Int64Counter
	computeDuration metric.Float64Histogram
	downPayments    metric.Int64Counter
}

// NewLinkMetrics registers the linkage instruments on meter.
func NewLinkMetrics(meter metric.Meter) (*LinkMetrics, error) {
	actions, err := meter.Int64Counter("projectlink.actions.opened",
		metric.WithDescription("Navigation actions built, by action"),
		metric.WithUnit("{action}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create actions counter: %w", err)
	}
	duration, err := meter.Float64Histogram("projectlink.compute.duration",
		metric.WithDescription("Duration of project counter computations"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(1, 5, 10, 25, 50, 100, 250, 500, 1000))
	if err != nil {
		return nil, fmt.Errorf("failed to create compute histogram: %w", err)
	}
	downPayments, err := meter.Int64Counter("projectlink.down_payments.created",
		metric.WithDescription("Down payment invoices created, by method"),
		metric.WithUnit("{invoice}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create down payment counter: %w", err)
	}
	return &LinkMetrics{
		actionsOpened:   actions,
		computeDuration: duration,
		downPayments:    downPayments,
	}, nil
}

// NoopLinkMetrics returns metrics backed by the global provider; used where
// no provider is wired.
func NoopLinkMetrics() *LinkMetrics {
	m, _ := NewLinkMetrics(otel.GetMeterProvider().Meter(TracerName))
	return m
}

// ActionOpened counts one built navigation action.
func (m *LinkMetrics) ActionOpened(ctx context.Context, action string) {
	if m == nil {
		return
	}
	m.actionsOpened.Add(ctx, 1, metric.WithAttributes(AttrAction.String(action)))
}

// ObserveCompute records the duration of a counter computation started at start.
func (m *LinkMetrics) ObserveCompute(ctx context.Context, operation string, start time.Time) {
	if m == nil {
		return
	}
	m.computeDuration.Record(ctx, float64(time.Since(start).Microseconds())/1000,
		metric.WithAttributes(AttrOperation.String(operation)))
}

// DownPaymentsCreated counts created down payment invoices.
func (m *LinkMetrics) DownPaymentsCreated(ctx context.Context, method string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.downPayments.Add(ctx, int64(n), metric.WithAttributes(AttrMethod.String(method)))
}
