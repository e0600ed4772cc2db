// Package telemetry installs the global OpenTelemetry tracer provider used by
// the traced API transport.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"google.golang.org/grpc"

	"github.com/dmitrijs2005/communityfeed/internal/logging"
)

// ShutdownFunc flushes and stops tracing.
type ShutdownFunc func(context.Context) error

func noop(context.Context) error { return nil }

// Options configure Setup. An empty Endpoint disables tracing.
type Options struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Insecure       bool
}

// Setup exports spans over OTLP/gRPC to opts.Endpoint and makes the provider
// global. With no endpoint it does nothing and returns a no-op shutdown.
func Setup(ctx context.Context, opts Options, log logging.Logger) (ShutdownFunc, error) {
	log = logging.OrNop(log)
	if opts.Endpoint == "" {
		log.Debug(ctx, "tracing disabled")
		return noop, nil
	}

	exporterOpts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(opts.Endpoint),
		otlptracegrpc.WithDialOption(grpc.WithUserAgent(opts.ServiceName)),
	}
	if opts.Insecure {
		exporterOpts = append(exporterOpts, otlptracegrpc.WithInsecure())
	}

	exporter, err := otlptracegrpc.New(ctx, exporterOpts...)
	if err != nil {
		return noop, fmt.Errorf("otlp exporter: %w", err)
	}

	attrs := []resource.Option{resource.WithAttributes(semconv.ServiceName(opts.ServiceName))}
	if opts.ServiceVersion != "" {
		attrs = append(attrs, resource.WithAttributes(semconv.ServiceVersion(opts.ServiceVersion)))
	}
	res, err := resource.New(ctx, attrs...)
	if err != nil {
		log.Warn(ctx, "otel resource incomplete", "error", err)
	}

	provider := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(provider)

	log.Info(ctx, "tracing enabled", "endpoint", opts.Endpoint)
	return provider.Shutdown, nil
}
