package tracing

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/azario0/prototypes-txt-reader/internal/config"
)

func TestNewProvider_DisabledIsNoop(t *testing.T) {
	p, err := NewProvider(config.TracingConfig{Enabled: false, Exporter: "otlp"})

	require.NoError(t, err)
	require.False(t, p.Enabled())
	require.NotNil(t, p.Tracer())
	_, span := p.Tracer().Start(context.Background(), SpanOpenFile)
	require.False(t, span.SpanContext().IsValid())
	span.End()
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestNewProvider_RejectsUnknownExporter(t *testing.T) {
	_, err := NewProvider(config.TracingConfig{Enabled: true, Exporter: "zipkin"})

	require.ErrorContains(t, err, "unsupported exporter")
}

func TestNewProvider_NoneExporterStillTraces(t *testing.T) {
	p, err := NewProvider(config.TracingConfig{Enabled: true, Exporter: "none"})
	require.NoError(t, err)
	defer func() { _ = p.Shutdown(context.Background()) }()

	_, span := p.Tracer().Start(context.Background(), SpanSearchNext)
	defer span.End()
	require.True(t, span.SpanContext().IsValid())
}

func TestFileExporter_WritesJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traces", "traces.jsonl")
	p, err := NewProvider(config.TracingConfig{Enabled: true, Exporter: "file", FilePath: path, SampleRate: 1})
	require.NoError(t, err)

	ctx, parent := p.Tracer().Start(context.Background(), SpanOpenFile)
	parent.SetAttributes(attribute.String(AttrFilePath, "/tmp/a.txt"), attribute.Int(AttrDocLines, 3))
	_, child := p.Tracer().Start(ctx, SpanSearchNext)
	child.SetStatus(codes.Error, "bad pattern")
	child.End()
	parent.End()
	require.NoError(t, p.Shutdown(context.Background()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	records := map[string]SpanRecord{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec SpanRecord
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		records[rec.Name] = rec
	}
	require.Len(t, records, 2)
	require.Equal(t, "/tmp/a.txt", records[SpanOpenFile].Attributes[AttrFilePath])
	require.Equal(t, "ERROR", records[SpanSearchNext].Status)
	require.Equal(t, records[SpanOpenFile].SpanID, records[SpanSearchNext].ParentSpanID)
}

func TestNewWithExporter_InMemory(t *testing.T) {
	exp := tracetest.NewInMemoryExporter()
	p := NewWithExporter(exp)

	_, span := p.Tracer().Start(context.Background(), SpanReload)
	span.End()

	require.Len(t, exp.GetSpans(), 1)
	require.Equal(t, SpanReload, exp.GetSpans()[0].Name)
}
