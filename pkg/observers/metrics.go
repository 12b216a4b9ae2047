package observers

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"errkit/pkg/errx"
)

// Metrics counts published errors by code, severity and category.
type Metrics struct {
	published *prometheus.CounterVec
}

// NewMetrics registers the errkit_errors_published_total counter with reg.
// Registering twice with the same registerer reuses the existing counter.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	published := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "errkit",
		Name:      "errors_published_total",
		Help:      "Number of errors published, by code.",
	}, []string{"code", "severity", "category"})

	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if err := reg.Register(published); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			return nil, err
		}
		existing, ok := already.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, err
		}
		published = existing
	}
	return &Metrics{published: published}, nil
}

func (m *Metrics) OnError(e *errx.Error) error {
	if e == nil {
		return nil
	}
	m.published.WithLabelValues(e.Code().Value(), e.Severity().String(), e.Code().Category()).Inc()
	return nil
}

func (m *Metrics) OnErrorAsync(_ context.Context, e *errx.Error) error {
	return m.OnError(e)
}

// Collector exposes the underlying counter, mainly for tests.
func (m *Metrics) Collector() *prometheus.CounterVec {
	return m.published
}
