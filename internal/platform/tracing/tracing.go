// Package tracing wraps the OpenTelemetry tracer freightrouted spans with.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/wyfcoding/freightroute"

// Tracer returns the package-wide tracer, matching the teacher's
// OtelGinMiddleware/OtelGRPCUnaryInterceptor convention of pulling a named
// tracer from the global otel provider rather than threading one through
// every constructor.
func Tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// StartSpan opens a span named name as a child of any span already in ctx.
func StartSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return Tracer().Start(ctx, name)
}
