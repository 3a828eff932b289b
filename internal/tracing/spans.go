package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Span attribute keys.
const (
	AttrDescriptor   = "defreg.descriptor"
	AttrFilter       = "defreg.filter"
	AttrUID          = "defreg.uid"
	AttrClientUID    = "defreg.client_uid"
	AttrDepCount     = "defreg.dependency_count"
	AttrCached       = "defreg.cached"
	AttrRequestID    = "defreg.request_id"
	AttrSubRegistry  = "defreg.subregistry"
	AttrChangeKind   = "defreg.change_kind"
	AttrForcedSample = "defreg.forced_sample"
	AttrErrorType    = "error.type"
)

// Span names.
const (
	SpanGetUID          = "registry.get_uid"
	SpanGetDef          = "registry.get_def"
	SpanGetDependencies = "registry.get_dependencies"
	SpanFind            = "registry.find"
	SpanExists          = "registry.exists"
	SpanCompile         = "registry.compile"
	SpanInvalidate      = "cache.invalidate"
)

// Events recorded on compile spans.
const (
	EventResolved   = "compile.resolved"
	EventStaged     = "compile.staged"
	EventReferenced = "compile.references_validated"
	EventCommitted  = "compile.committed"
)

// OrNoop returns t, or a no-op tracer when t is nil.
func OrNoop(t trace.Tracer) trace.Tracer {
	if t == nil {
		return noop.NewTracerProvider().Tracer("noop")
	}
	return t
}

// Start opens an internal span with attrs.
func Start(ctx context.Context, t trace.Tracer, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return OrNoop(t).Start(ctx, name, trace.WithSpanKind(trace.SpanKindInternal), trace.WithAttributes(attrs...))
}

// End records err (if any) as the span status and ends the span.
func End(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
