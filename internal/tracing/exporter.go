package tracing

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// FileExporter appends spans to a JSONL file, one span per line, for
// reading with jq.
type FileExporter struct {
	mu   sync.Mutex
	file *os.File
}

// NewFileExporter opens path for appending, creating parent directories.
func NewFileExporter(path string) (*FileExporter, error) {
	clean := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(clean), 0o750); err != nil {
		return nil, fmt.Errorf("create trace directory: %w", err)
	}
	f, err := os.OpenFile(clean, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600) // #nosec G304 -- path is cleaned above
	if err != nil {
		return nil, fmt.Errorf("open trace file: %w", err)
	}
	return &FileExporter{file: f}, nil
}

// SpanRecord is one exported line.
type SpanRecord struct {
	TraceID      string         `json:"trace_id"`
	SpanID       string         `json:"span_id"`
	ParentSpanID string         `json:"parent_span_id,omitempty"`
	Name         string         `json:"name"`
	StartTime    string         `json:"start_time"`
	DurationMs   float64        `json:"duration_ms"`
	Status       string         `json:"status"`
	StatusMsg    string         `json:"status_message,omitempty"`
	Attributes   map[string]any `json:"attributes,omitempty"`
}

// ExportSpans implements sdktrace.SpanExporter.
func (e *FileExporter) ExportSpans(_ context.Context, spans []sdktrace.ReadOnlySpan) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.file == nil {
		return nil
	}
	enc := json.NewEncoder(e.file)
	for _, span := range spans {
		if err := enc.Encode(toRecord(span)); err != nil {
			return fmt.Errorf("encode span: %w", err)
		}
	}
	return nil
}

// Shutdown implements sdktrace.SpanExporter.
func (e *FileExporter) Shutdown(context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.file == nil {
		return nil
	}
	err := e.file.Close()
	e.file = nil
	return err
}

func toRecord(span sdktrace.ReadOnlySpan) SpanRecord {
	rec := SpanRecord{
		TraceID:    span.SpanContext().TraceID().String(),
		SpanID:     span.SpanContext().SpanID().String(),
		Name:       span.Name(),
		StartTime:  span.StartTime().Format(time.RFC3339Nano),
		DurationMs: float64(span.EndTime().Sub(span.StartTime()).Microseconds()) / 1000.0,
		Status:     "UNSET",
		StatusMsg:  span.Status().Description,
	}
	if span.Parent().IsValid() {
		rec.ParentSpanID = span.Parent().SpanID().String()
	}
	switch span.Status().Code {
	case codes.Ok:
		rec.Status = "OK"
	case codes.Error:
		rec.Status = "ERROR"
	}
	if attrs := span.Attributes(); len(attrs) > 0 {
		rec.Attributes = make(map[string]any, len(attrs))
		for _, kv := range attrs {
			rec.Attributes[string(kv.Key)] = kv.Value.AsInterface()
		}
	}
	return rec
}
