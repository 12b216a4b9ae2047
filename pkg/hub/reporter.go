package hub

import (
	"context"

	"errkit/pkg/errx"
)

// Publisher is the publishing half of a Hub.
type Publisher interface {
	Publish(e *errx.Error) error
	PublishAsync(ctx context.Context, e *errx.Error) error
}

// Reporter publishes on behalf of callers that should not depend on the
// hub's membership API.
type Reporter struct {
	publisher Publisher
}

// NewReporter returns a Reporter publishing through p.
func NewReporter(p Publisher) (*Reporter, error) {
	if p == nil {
		return nil, errx.NewArgumentError("NewReporter", "publisher", "must not be nil")
	}
	return &Reporter{publisher: p}, nil
}

// Report publishes e synchronously.
func (r *Reporter) Report(e *errx.Error) error {
	return r.publisher.Publish(e)
}

// ReportAsync publishes e to the asynchronous observers.
func (r *Reporter) ReportAsync(ctx context.Context, e *errx.Error) error {
	return r.publisher.PublishAsync(ctx, e)
}
