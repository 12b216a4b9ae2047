package cli

// This file defines error handling for the CLI:
//   - the CLI error code category registered with every kit the CLI builds
//   - construction of errx values for command failures
//   - reporting through the kit reporter so observers see every failure
//   - debug mode management for error output

import (
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"errkit/internal/kit"
	"errkit/pkg/errx"
)

var (
	debugMode   bool
	debugModeMu sync.RWMutex
)

// SetDebugMode sets the global debug mode flag.
// When enabled, reported errors are also logged with structured fields.
func SetDebugMode(enabled bool) {
	debugModeMu.Lock()
	defer debugModeMu.Unlock()
	debugMode = enabled
}

// IsDebugMode returns whether debug mode is enabled.
func IsDebugMode() bool {
	debugModeMu.RLock()
	defer debugModeMu.RUnlock()
	return debugMode
}

const categoryCLI = "CLI"

// CLI error codes.
var (
	CodeCLI             = errx.MustCode("CLI_001", "CLI error", errx.WithCategory(categoryCLI))
	CodeInvalidArgument = errx.MustCode("CLI_002", "Invalid command argument", errx.WithCategory(categoryCLI), errx.WithSeverity(errx.SeverityWarning))
	CodeUnknownCode     = errx.MustCode("CLI_003", "Error code is not registered", errx.WithCategory(categoryCLI), errx.WithSeverity(errx.SeverityWarning))
	CodeCatalogInvalid  = errx.MustCode("CLI_004", "Error code catalog is invalid", errx.WithCategory(categoryCLI))
	CodeConfigInvalid   = errx.MustCode("CLI_005", "Configuration is invalid", errx.WithCategory(categoryCLI))
	CodeServeFailed     = errx.MustCode("CLI_006", "HTTP server failed", errx.WithCategory(categoryCLI), errx.WithSeverity(errx.SeverityCritical))
)

// CLICodes is the category holding the CLI error codes.
var CLICodes errx.Category = errx.CategoryFunc{
	CategoryName: categoryCLI,
	Slots: func() []errx.NamedCode {
		return []errx.NamedCode{
			{Name: "CLI", Code: CodeCLI},
			{Name: "InvalidArgument", Code: CodeInvalidArgument},
			{Name: "UnknownCode", Code: CodeUnknownCode},
			{Name: "CatalogInvalid", Code: CodeCatalogInvalid},
			{Name: "ConfigInvalid", Code: CodeConfigInvalid},
			{Name: "ServeFailed", Code: CodeServeFailed},
		}
	},
}

// kv is shorthand for a context entry on a CLI error.
func kv(key, value string) errx.ContextEntry {
	return errx.ContextEntry{Key: key, Value: value}
}

// fail builds an errx value for a command failure, reports it and returns
// it. A non-nil cause becomes the inner error, converted through the bridge
// when it is not already an errx value.
func (a *App) fail(code *errx.Code, cause error, msg string, entries ...errx.ContextEntry) error {
	k := a.kit
	if k == nil {
		bare, err := kit.New(kit.WithCategories(CLICodes), kit.WithLogger(a.logger))
		if err != nil {
			return errors.Join(errors.New(msg), cause)
		}
		if a.observer != nil {
			_ = bare.Hub.RegisterObserver(a.observer)
		}
		k = bare
	}

	opts := []errx.Option{errx.WithMessage(msg)}
	for _, entry := range entries {
		if strings.TrimSpace(entry.Value) != "" {
			opts = append(opts, errx.WithEntries(entry))
		}
	}
	if cause != nil {
		inner, err := k.Bridge.FromFault(cause)
		if err == nil {
			opts = append(opts, errx.WithCause(inner))
		}
	}

	e, err := k.Factory.Create(code, opts...)
	if err != nil {
		return errors.Join(err, cause)
	}
	a.reportError(k, e)
	return e
}

// reportError publishes e through the kit reporter. Observer failures are
// logged and never replace the command error.
func (a *App) reportError(k *kit.Kit, e *errx.Error) {
	if err := k.Reporter.Report(e); err != nil {
		a.logger.Warn("error observer failed", zap.String("error.code", e.Code().Value()), zap.Error(err))
	}
}
