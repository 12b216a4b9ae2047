package cli

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"errkit/internal/config"
	"errkit/internal/kit"
	"errkit/pkg/observers"
)

// App carries the state shared by the errkit commands: configuration,
// logger, metrics registry and the error kit. Init must run before any
// command uses it; the root command does this in PersistentPreRunE.
type App struct {
	// ConfigFile overrides the default config location when set.
	ConfigFile string
	// EnvFile is loaded before environment variables are read.
	EnvFile string
	Quiet   bool

	cfg      *config.Config
	logger   *zap.Logger
	metrics  *prometheus.Registry
	observer *observers.Metrics
	kit      *kit.Kit
}

// NewApp returns an App with a no-op logger.
func NewApp() *App {
	configureStyling()
	return &App{
		EnvFile: ".env",
		logger:  zap.NewNop(),
	}
}

// Init loads the configuration and builds the logger and metrics
// registry. flags are the executing command's flags; only flags the user
// set override other config sources.
func (a *App) Init(flags *pflag.FlagSet) error {
	opts := []config.Option{
		config.WithEnvFile(a.EnvFile),
		config.WithFlag(flags, "addr", "server.addr"),
	}
	if a.ConfigFile != "" {
		opts = append(opts, config.WithConfigFile(a.ConfigFile))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return a.fail(CodeConfigInvalid, err, "failed to load configuration", kv("file", a.ConfigFile))
	}

	logger, err := NewLogger(LogOptions{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
		Debug:  IsDebugMode(),
	})
	if err != nil {
		return a.fail(CodeConfigInvalid, err, "failed to create logger")
	}

	reg := prometheus.NewRegistry()
	observer, err := observers.NewMetrics(reg)
	if err != nil {
		return a.fail(CodeCLI, err, "failed to register metrics")
	}

	a.cfg = cfg
	a.logger = logger
	a.metrics = reg
	a.observer = observer
	a.logger.Debug("configuration loaded",
		zap.String("fallback_code", cfg.FallbackCode),
		zap.Strings("catalogs", cfg.Catalogs))
	return nil
}

// Kit builds the error kit from the configuration plus extra catalogs. The
// kit is cached; later calls return the first kit built.
func (a *App) Kit(extraCatalogs ...string) (*kit.Kit, error) {
	if a.kit != nil {
		return a.kit, nil
	}
	if a.cfg == nil {
		return nil, a.fail(CodeCLI, nil, "configuration not loaded")
	}

	cfg := *a.cfg
	cfg.Catalogs = append(append([]string{}, a.cfg.Catalogs...), extraCatalogs...)
	k, err := kit.FromConfig(&cfg, a.logger, kit.WithCategories(CLICodes))
	if err != nil {
		return nil, a.fail(CodeCatalogInvalid, err, "failed to load error codes")
	}

	if err := k.Hub.RegisterObserver(a.observer); err != nil {
		return nil, a.fail(CodeCLI, err, "failed to register metrics observer")
	}
	if err := k.Hub.RegisterAsyncObserver(a.observer); err != nil {
		return nil, a.fail(CodeCLI, err, "failed to register metrics observer")
	}
	if IsDebugMode() {
		if err := k.Hub.RegisterObserver(observers.NewZap(a.logger).WithMessage("command failed")); err != nil {
			return nil, a.fail(CodeCLI, err, "failed to register log observer")
		}
	}
	a.kit = k
	return k, nil
}

// Logger returns the configured logger.
func (a *App) Logger() *zap.Logger { return a.logger }

// Metrics returns the registry holding the errkit collectors.
func (a *App) Metrics() *prometheus.Registry { return a.metrics }

// Close flushes the logger.
func (a *App) Close() {
	_ = a.logger.Sync()
}

func (a *App) printer(cmd *cobra.Command) *Printer {
	var out io.Writer = cmd.OutOrStdout()
	return &Printer{Quiet: a.Quiet, Out: out}
}
