package observers

import (
	"context"

	"github.com/go-logr/logr"

	"errkit/pkg/errx"
)

// Logr logs published errors through a logr.Logger. Values of severity
// Error and above go to logger.Error; lower severities go to logger.Info.
type Logr struct {
	logger logr.Logger
}

func NewLogr(logger logr.Logger) *Logr {
	return &Logr{logger: logger}
}

func (l *Logr) OnError(e *errx.Error) error {
	if e == nil {
		return nil
	}
	fields := fieldsOf(e)
	keysAndValues := make([]interface{}, 0, 2*len(fields))
	for _, f := range fields {
		keysAndValues = append(keysAndValues, f.key, f.value)
	}
	if e.Severity() >= errx.SeverityError {
		l.logger.Error(e, e.Message(), keysAndValues...)
		return nil
	}
	l.logger.Info(e.Message(), keysAndValues...)
	return nil
}

func (l *Logr) OnErrorAsync(ctx context.Context, e *errx.Error) error {
	if logger, err := logr.FromContext(ctx); err == nil {
		return NewLogr(logger).OnError(e)
	}
	return l.OnError(e)
}
