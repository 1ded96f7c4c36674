package telemetry

import (
	"context"
	"fmt"
	"runtime/pprof"

	"github.com/grafana/pyroscope-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the tracer used for service spans
const TracerName = "projectlink"

// Span attribute keys used by the application services
const (
	SpanAttrProjectID    = "project_id"
	SpanAttrProjectCount = "project_count"
	SpanAttrAction       = "action"
	SpanAttrOrderID      = "order_id"
	SpanAttrMoveID       = "move_id"
	SpanAttrMoveType     = "move_type"
	SpanAttrResultCount  = "result_count"
)

// Profiling label keys set while a service span is open
const (
	ProfilingLabelService   = "service"
	ProfilingLabelOperation = "operation"
)

// StartServiceSpan starts a span named {service}.{method}. Attributes are
// given as alternating key/value pairs. Until the span ends the goroutine
// carries service and operation profiling labels, so CPU samples taken by
// the profiler can be filtered per service operation.
//
//	ctx, span := telemetry.StartServiceSpan(ctx, "purchase_link", "compute_purchase_info",
//	    telemetry.SpanAttrProjectCount, len(ids))
//	defer span.End()
func StartServiceSpan(ctx context.Context, service, method string, keyValues ...any) (context.Context, trace.Span) {
	parent := ctx
	ctx = pprof.WithLabels(ctx, pyroscope.Labels(ProfilingLabelService, service, ProfilingLabelOperation, method))
	pprof.SetGoroutineLabels(ctx)

	tracer := otel.GetTracerProvider().Tracer(TracerName)
	ctx, span := tracer.Start(ctx, fmt.Sprintf("%s.%s", service, method),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(toAttributes(keyValues)...),
	)
	return ctx, &labeledSpan{Span: span, parent: parent}
}

// labeledSpan restores the caller's profiling labels when the span ends
type labeledSpan struct {
	trace.Span
	parent context.Context
}

func (s *labeledSpan) End(options ...trace.SpanEndOption) {
	s.Span.End(options...)
	pprof.SetGoroutineLabels(s.parent)
}

// SetAttributes adds alternating key/value attributes to a span.
func SetAttributes(span trace.Span, keyValues ...any) {
	if span == nil {
		return
	}
	span.SetAttributes(toAttributes(keyValues)...)
}

// RecordError records err on the span and marks the span failed.
func RecordError(span trace.Span, err error) {
	if span == nil || err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

func toAttributes(keyValues []any) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(keyValues)/2)
	for i := 0; i+1 < len(keyValues); i += 2 {
		key, ok := keyValues[i].(string)
		if !ok {
			continue
		}
		attrs = append(attrs, toAttribute(key, keyValues[i+1]))
	}
	return attrs
}

func toAttribute(key string, value any) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case float64:
		return attribute.Float64(key, v)
	case bool:
		return attribute.Bool(key, v)
	case []string:
		return attribute.StringSlice(key, v)
	case fmt.Stringer:
		return attribute.String(key, v.String())
	default:
		return attribute.String(key, fmt.Sprintf("%v", v))
	}
}
