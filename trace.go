package brochure

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "impractical.co/brochure"

// tracer returns the tracer from the global TracerProvider.
func tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}
