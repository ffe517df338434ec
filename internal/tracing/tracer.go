// Package tracing wires OpenTelemetry spans around file loads and searches.
// It is off by default; when disabled every span comes from a no-op tracer.
package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/azario0/prototypes-txt-reader/internal/config"
	"github.com/azario0/prototypes-txt-reader/internal/log"
	"github.com/azario0/prototypes-txt-reader/internal/paths"
)

// ServiceName identifies txtreader in exported traces.
const ServiceName = "txtreader"

// Provider owns the tracer provider for the process.
type Provider struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
	enabled  bool
}

// Noop returns a disabled provider.
func Noop() *Provider {
	return &Provider{tracer: noop.NewTracerProvider().Tracer("noop")}
}

// NewProvider builds a provider from cfg. A disabled config yields Noop().
func NewProvider(cfg config.TracingConfig) (*Provider, error) {
	if !cfg.Enabled {
		return Noop(), nil
	}

	exporter, err := newExporter(cfg)
	if err != nil {
		return nil, err
	}

	sampleRate := cfg.SampleRate
	if sampleRate <= 0 {
		sampleRate = 1.0
	}
	opts := []sdktrace.TracerProviderOption{
		// NewSchemaless avoids schema URL conflicts with resource.Default()
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", ServiceName))),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRate))),
	}
	if exporter != nil {
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}
	return newFromOptions(opts...), nil
}

// NewWithExporter builds an enabled provider that exports synchronously to
// exp. Tests use it with an in-memory exporter.
func NewWithExporter(exp sdktrace.SpanExporter) *Provider {
	return newFromOptions(sdktrace.WithSyncer(exp), sdktrace.WithSampler(sdktrace.AlwaysSample()))
}

func newFromOptions(opts ...sdktrace.TracerProviderOption) *Provider {
	provider := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(provider)
	log.Debug(log.CatTrace, "tracing enabled")
	return &Provider{
		provider: provider,
		tracer:   provider.Tracer(ServiceName),
		enabled:  true,
	}
}

func newExporter(cfg config.TracingConfig) (sdktrace.SpanExporter, error) {
	switch cfg.Exporter {
	case "file":
		path := paths.Expand(cfg.FilePath)
		if path == "" {
			path = config.DefaultTracesFilePath()
		}
		if path == "" {
			return nil, fmt.Errorf("file_path required for file exporter")
		}
		exp, err := NewFileExporter(path)
		if err != nil {
			return nil, fmt.Errorf("create file exporter: %w", err)
		}
		return exp, nil
	case "stdout":
		exp, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("create stdout exporter: %w", err)
		}
		return exp, nil
	case "otlp":
		endpoint := cfg.OTLPEndpoint
		if endpoint == "" {
			endpoint = "localhost:4317"
		}
		exp, err := otlptracegrpc.New(context.Background(),
			otlptracegrpc.WithEndpoint(endpoint),
			otlptracegrpc.WithInsecure(),
		)
		if err != nil {
			return nil, fmt.Errorf("create otlp exporter: %w", err)
		}
		return exp, nil
	case "none", "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported exporter type: %s", cfg.Exporter)
	}
}

// Tracer is safe to use when tracing is disabled.
func (p *Provider) Tracer() trace.Tracer { return p.tracer }

// Enabled reports whether spans are recorded.
func (p *Provider) Enabled() bool { return p.enabled }

// Shutdown flushes pending spans.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.provider == nil {
		return nil
	}
	return p.provider.Shutdown(ctx)
}
