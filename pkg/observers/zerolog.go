package observers

import (
	"context"

	"github.com/rs/zerolog"

	"errkit/pkg/errx"
)

// Zerolog logs published errors as zerolog events.
type Zerolog struct {
	logger zerolog.Logger
}

func NewZerolog(logger zerolog.Logger) *Zerolog {
	return &Zerolog{logger: logger}
}

func (z *Zerolog) OnError(e *errx.Error) error {
	if e == nil {
		return nil
	}
	event := z.logger.WithLevel(zerologLevel(e.Severity()))
	if event == nil {
		return nil
	}
	for _, f := range fieldsOf(e) {
		event = event.Interface(f.key, f.value)
	}
	event.Time("error.timestamp", e.Timestamp()).Msg(e.Message())
	return nil
}

// OnErrorAsync prefers a logger attached to ctx with zerolog's WithContext.
func (z *Zerolog) OnErrorAsync(ctx context.Context, e *errx.Error) error {
	if ctx != nil {
		if logger := zerolog.Ctx(ctx); logger.GetLevel() != zerolog.Disabled {
			return NewZerolog(*logger).OnError(e)
		}
	}
	return z.OnError(e)
}

func zerologLevel(s errx.Severity) zerolog.Level {
	switch s {
	case errx.SeverityInfo:
		return zerolog.InfoLevel
	case errx.SeverityWarning:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}
