package observers

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"errkit/pkg/errx"
)

// Zap logs every published error with structured fields.
//
// The entry level follows the error severity and carries:
//   - error.code: "ORD_404"
//   - error.category: "Orders"
//   - error.severity: "Warning"
//   - error.message: "order 42 does not exist"
//   - error.context.<key>, error.metadata.<key>
//   - error.inner: code of the inner error, if any
type Zap struct {
	logger *zap.Logger
	msg    string
}

// NewZap returns a Zap observer. A nil logger logs nothing.
func NewZap(logger *zap.Logger) *Zap {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Zap{logger: logger, msg: "error published"}
}

// WithMessage returns a copy logging msg as the entry message.
func (z *Zap) WithMessage(msg string) *Zap {
	return &Zap{logger: z.logger, msg: msg}
}

func (z *Zap) OnError(e *errx.Error) error {
	if e == nil {
		return nil
	}
	ce := z.logger.Check(zapLevel(e.Severity()), z.msg)
	if ce == nil {
		return nil
	}
	fields := fieldsOf(e)
	zf := make([]zap.Field, 0, len(fields)+1)
	for _, f := range fields {
		zf = append(zf, zap.Any(f.key, f.value))
	}
	zf = append(zf, zap.Time("error.timestamp", e.Timestamp()))
	ce.Write(zf...)
	return nil
}

func (z *Zap) OnErrorAsync(_ context.Context, e *errx.Error) error {
	return z.OnError(e)
}

func zapLevel(s errx.Severity) zapcore.Level {
	switch s {
	case errx.SeverityInfo:
		return zapcore.InfoLevel
	case errx.SeverityWarning:
		return zapcore.WarnLevel
	default:
		// Critical and Fatal stay at error level: the observer must not
		// exit or panic the process.
		return zapcore.ErrorLevel
	}
}
