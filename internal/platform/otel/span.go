// Package otel provides OpenTelemetry helpers shared by the recipient packages.
package otel

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys used on recipient spans.
const (
	AttrRecipient    = attribute.Key("recipient.address")
	AttrField        = attribute.Key("mutation.field")
	AttrSeq          = attribute.Key("mutation.seq")
	AttrLane         = attribute.Key("lane.name")
	AttrAttempt      = attribute.Key("lane.attempt")
	AttrChannelState = attribute.Key("channel.state")
	AttrJobKind      = attribute.Key("propagation.kind")
	AttrRepairCount  = attribute.Key("repair.count")
)

// StartSpan starts a span on tracer, or returns the span already in ctx
// when tracer is nil.
func StartSpan(
	ctx context.Context,
	tracer trace.Tracer,
	name string,
	opts ...trace.SpanStartOption,
) (context.Context, trace.Span) {
	if tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return tracer.Start(ctx, name, opts...)
}

// RecordError marks span as failed. The status text stays generic; the error
// itself is attached as a span event.
func RecordError(span trace.Span, err error) {
	if err != nil && span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "operation failed")
	}
}
