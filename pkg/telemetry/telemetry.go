// Package telemetry holds the engine's Prometheus collectors and
// OpenTelemetry tracing helpers.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/odvcencio/spatialnav/pkg/geometry"
)

const (
	tracerName = "github.com/odvcencio/spatialnav"
)

// Tracer returns the global tracer for spatialnav
func Tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// StartSpan starts a span on tracer, falling back to the global tracer
func StartSpan(ctx context.Context, tracer trace.Tracer, spanName string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if tracer == nil {
		tracer = Tracer()
	}
	return tracer.Start(ctx, spanName, trace.WithAttributes(attrs...))
}

// DirectionAttr labels a span with a navigation direction
func DirectionAttr(d geometry.Direction) attribute.KeyValue {
	return attribute.String("spatialnav.direction", string(d))
}

// SectionAttr labels a span with a section id
func SectionAttr(id string) attribute.KeyValue {
	return attribute.String("spatialnav.section", id)
}

// ResultAttr labels a span with an outcome
func ResultAttr(ok bool) attribute.KeyValue {
	return attribute.Bool("spatialnav.ok", ok)
}
