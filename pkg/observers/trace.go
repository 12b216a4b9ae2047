package observers

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"errkit/pkg/errx"
)

// Trace records published errors on the span carried by the publish
// context. It only has an effect through PublishAsync, where a context is
// available.
type Trace struct {
	minStatus errx.Severity
}

// NewTrace returns a Trace observer that marks the span as failed for
// errors at or above minStatus.
func NewTrace(minStatus errx.Severity) *Trace {
	return &Trace{minStatus: minStatus}
}

func (t *Trace) OnErrorAsync(ctx context.Context, e *errx.Error) error {
	if ctx == nil || e == nil {
		return nil
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return nil
	}

	attrs := []attribute.KeyValue{
		attribute.String(KeyCode, e.Code().Value()),
		attribute.String(KeySeverity, e.Severity().String()),
	}
	if cat := e.Code().Category(); cat != "" {
		attrs = append(attrs, attribute.String(KeyCategory, cat))
	}
	for _, entry := range e.Context() {
		attrs = append(attrs, attribute.String(contextPrefix+entry.Key, entry.Value))
	}
	if inner := e.InnerError(); inner != nil {
		attrs = append(attrs, attribute.String(KeyInner, inner.Code().Value()))
	}

	span.RecordError(e, trace.WithAttributes(attrs...), trace.WithTimestamp(e.Timestamp()))
	if e.Severity() >= t.minStatus {
		span.SetStatus(codes.Error, e.Message())
	}
	return nil
}
