// Package kit assembles the errkit components: one registry, one hub, one
// factory, one bridge and a reporter publishing through the hub.
package kit

import (
	"fmt"

	"go.uber.org/zap"

	"errkit/internal/config"
	"errkit/pkg/errx"
	"errkit/pkg/hub"
)

// Kit holds the assembled components. Fields are set by New and must not
// be replaced afterwards.
type Kit struct {
	Registry *errx.Registry
	Hub      *hub.Hub
	Factory  *errx.Factory
	Bridge   *errx.Bridge
	Reporter *hub.Reporter
	Logger   *zap.Logger
}

type options struct {
	registry *errx.Registry
	hub      *hub.Hub
	factory  *errx.Factory
	fallback *errx.Code
	logger   *zap.Logger
	catalogs []errx.Category
}

// Option configures New.
type Option func(*options)

// WithRegistry shares r instead of creating a new registry.
func WithRegistry(r *errx.Registry) Option {
	return func(o *options) { o.registry = r }
}

// WithHub shares h instead of creating a new hub.
func WithHub(h *hub.Hub) Option {
	return func(o *options) { o.hub = h }
}

func WithFactory(f *errx.Factory) Option {
	return func(o *options) { o.factory = f }
}

// WithFallback overrides errx.UnhandledFault as the bridge fallback code.
// The code must be registered by the time New finishes registration.
func WithFallback(code *errx.Code) Option {
	return func(o *options) { o.fallback = code }
}

// WithLogger sets the logger passed to the default hub.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithCategories registers extra categories after the system codes.
func WithCategories(categories ...errx.Category) Option {
	return func(o *options) { o.catalogs = append(o.catalogs, categories...) }
}

// New builds a Kit. The system codes are always registered; registering
// them into a registry that already holds them is not an error.
func New(opts ...Option) (*Kit, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.registry == nil {
		o.registry = errx.NewRegistry()
	}
	if o.hub == nil {
		o.hub = hub.New(hub.WithLogger(o.logger))
	}
	if o.factory == nil {
		o.factory = errx.NewFactory()
	}

	for _, slot := range errx.SystemCodes.Codes() {
		if _, err := o.registry.TryRegister(slot.Code); err != nil {
			return nil, fmt.Errorf("register system codes: %w", err)
		}
	}
	for _, c := range o.catalogs {
		if err := errx.RegisterCategory(o.registry, c); err != nil {
			return nil, err
		}
	}

	if o.fallback == nil {
		o.fallback = errx.UnhandledFault
	} else if err := requireRegistered(o.registry, o.fallback); err != nil {
		return nil, err
	}

	bridge, err := errx.NewBridgeWithFactory(o.fallback, o.factory)
	if err != nil {
		return nil, err
	}
	reporter, err := hub.NewReporter(o.hub)
	if err != nil {
		return nil, err
	}

	o.logger.Debug("error kit ready",
		zap.Int("codes", o.registry.Count()),
		zap.String("fallback", o.fallback.Value()))

	return &Kit{
		Registry: o.registry,
		Hub:      o.hub,
		Factory:  o.factory,
		Bridge:   bridge,
		Reporter: reporter,
		Logger:   o.logger,
	}, nil
}

// requireRegistered fails with errx.ErrValidation unless r holds code
// itself under its value.
func requireRegistered(r *errx.Registry, code *errx.Code) error {
	got, ok, err := r.TryGet(code.Value())
	if err != nil {
		return err
	}
	if !ok {
		return errx.NewArgumentError("New", "fallback", fmt.Sprintf("%q is not registered", code.Value()))
	}
	if got != code {
		return errx.NewArgumentError("New", "fallback", fmt.Sprintf("%q is registered with a different definition", code.Value()))
	}
	return nil
}

// FromConfig loads the configured catalogs and resolves the fallback code
// from the registry. An unknown fallback code fails with errx.ErrValidation.
func FromConfig(cfg *config.Config, logger *zap.Logger, opts ...Option) (*Kit, error) {
	if cfg == nil {
		return nil, errx.NewArgumentError("FromConfig", "config", "must not be nil")
	}
	categories := make([]errx.Category, 0, len(cfg.Catalogs))
	for _, path := range cfg.Catalogs {
		c, err := config.LoadCatalog(path)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	registry := errx.NewRegistry()
	all := append([]Option{WithRegistry(registry), WithLogger(logger), WithCategories(categories...)}, opts...)
	k, err := New(all...)
	if err != nil {
		return nil, err
	}

	fallback, ok, err := k.Registry.TryGet(cfg.FallbackCode)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errx.NewArgumentError("FromConfig", "fallback_code", fmt.Sprintf("%q is not registered", cfg.FallbackCode))
	}
	if fallback != k.Bridge.Fallback() {
		bridge, err := errx.NewBridgeWithFactory(fallback, k.Factory)
		if err != nil {
			return nil, err
		}
		k.Bridge = bridge
	}
	return k, nil
}
