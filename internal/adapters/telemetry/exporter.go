package telemetry

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/comitanigiacomo/kyool-companion/internal/core/events"
)

const (
	serviceName    = "kyool-companion"
	serviceVersion = "1.0.0"
)

var ErrDisabled = errors.New("telemetry: exporter disabled or endpoint not configured")

// Recorder is what the rest of the companion reports to.
type Recorder interface {
	RecordAPICall(ctx context.Context, op string, status int, elapsed time.Duration)
	RecordEvent(ctx context.Context, topic string)
	Close(ctx context.Context) error
}

var _ Recorder = (*Exporter)(nil)

// Exporter pushes companion metrics to an OTEL collector.
type Exporter struct {
	provider   *sdkmetric.MeterProvider
	apiCalls   metric.Int64Counter
	apiLatency metric.Float64Histogram
	events     metric.Int64Counter
}

func NewExporter(ctx context.Context, cfg Config) (*Exporter, error) {
	if !cfg.Enabled || cfg.Endpoint == "" {
		return nil, ErrDisabled
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	return newExporter(provider)
}

func newExporter(provider *sdkmetric.MeterProvider) (*Exporter, error) {
	meter := provider.Meter(serviceName)

	apiCalls, err := meter.Int64Counter(
		"kyool_api_calls_total",
		metric.WithDescription("Backend REST calls by operation and status"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating api calls counter: %w", err)
	}

	apiLatency, err := meter.Float64Histogram(
		"kyool_api_call_duration_seconds",
		metric.WithDescription("Backend REST call latency"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating api latency histogram: %w", err)
	}

	evts, err := meter.Int64Counter(
		"kyool_bus_events_total",
		metric.WithDescription("Events published on the in-process bus"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating events counter: %w", err)
	}

	return &Exporter{
		provider:   provider,
		apiCalls:   apiCalls,
		apiLatency: apiLatency,
		events:     evts,
	}, nil
}

func (e *Exporter) RecordAPICall(ctx context.Context, op string, status int, elapsed time.Duration) {
	opt := metric.WithAttributes(
		attribute.String("op", op),
		attribute.String("status", strconv.Itoa(status)),
	)
	e.apiCalls.Add(ctx, 1, opt)
	e.apiLatency.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attribute.String("op", op)))
}

func (e *Exporter) RecordEvent(ctx context.Context, topic string) {
	e.events.Add(ctx, 1, metric.WithAttributes(attribute.String("topic", topic)))
}

// Close flushes pending metrics.
func (e *Exporter) Close(ctx context.Context) error {
	return e.provider.Shutdown(ctx)
}

// Observe counts every event published on bus until the returned
// subscription is cancelled.
func Observe(r Recorder, bus *events.Bus) *events.Subscription {
	return bus.Subscribe(events.Wildcard, func(evt events.Event) {
		r.RecordEvent(context.Background(), evt.Topic)
	})
}
