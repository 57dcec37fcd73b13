// internal/telemetry/telemetry.go
// Package telemetry wraps covmerge's merge driver calls in OpenTelemetry
// spans so a large merge run can be profiled after the fact. The exporter
// is stdout rather than an OTLP collector: covmerge is an offline tool,
// not a long-lived service with a collector to talk to.
package telemetry

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// ShutdownFunc flushes and stops the installed TracerProvider.
type ShutdownFunc func(ctx context.Context) error

func noopShutdown(context.Context) error { return nil }

var (
	initOnce sync.Once
	tracer   trace.Tracer = otel.Tracer("covmerge")
)

// Init installs a TracerProvider backed by the stdout exporter when
// enabled is true, and the package-level no-op tracer otherwise. Safe to
// call multiple times; only the first call takes effect.
func Init(ctx context.Context, enabled bool) (ShutdownFunc, error) {
	if !enabled {
		return noopShutdown, nil
	}

	var (
		shutdown ShutdownFunc = noopShutdown
		initErr  error
	)
	initOnce.Do(func() {
		exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			initErr = err
			return
		}
		tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
		otel.SetTracerProvider(tp)
		tracer = otel.Tracer("covmerge")
		shutdown = func(ctx context.Context) error { return tp.Shutdown(ctx) }
	})
	return shutdown, initErr
}

// StartSpan opens a span named "covmerge.<op>" (e.g. "covmerge.mergeFunctions")
// around one merge driver call.
func StartSpan(ctx context.Context, op string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "covmerge."+op)
}
