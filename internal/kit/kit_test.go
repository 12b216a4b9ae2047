package kit

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"errkit/internal/config"
	"errkit/pkg/errx"
	"errkit/pkg/hub"
	"errkit/pkg/observers"
)

func TestNew_Defaults(t *testing.T) {
	k, err := New()
	require.NoError(t, err)

	assert.NotNil(t, k.Registry)
	assert.NotNil(t, k.Hub)
	assert.NotNil(t, k.Factory)
	assert.NotNil(t, k.Reporter)
	assert.Same(t, errx.UnhandledFault, k.Bridge.Fallback())

	got, ok, err := k.Registry.TryGet("SYS_001")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Same(t, errx.UnhandledFault, got)
}

func TestNew_SharedRegistry(t *testing.T) {
	r := errx.NewRegistry()
	_, err := New(WithRegistry(r))
	require.NoError(t, err)
	_, err = New(WithRegistry(r))
	require.NoError(t, err, "system codes may already be present")
	assert.Equal(t, 1, r.Count())
}

func TestNew_CategoryConflict(t *testing.T) {
	dupes := errx.CategoryFunc{
		CategoryName: "Dupes",
		Slots: func() []errx.NamedCode {
			return []errx.NamedCode{{Name: "Sys", Code: errx.MustCode("SYS_001", "again")}}
		},
	}
	_, err := New(WithCategories(dupes))
	assert.ErrorIs(t, err, errx.ErrConflict)
}

func TestNew_Fallback(t *testing.T) {
	appCode := errx.MustCode("APP_1", "application fault")

	_, err := New(WithFallback(appCode))
	assert.ErrorIs(t, err, errx.ErrValidation, "fallback must be registered")

	impostor := errx.MustCode("SYS_001", "not the system code")
	_, err = New(WithFallback(impostor))
	assert.ErrorIs(t, err, errx.ErrValidation, "fallback must be the registered definition")

	app := errx.CategoryFunc{
		CategoryName: "App",
		Slots: func() []errx.NamedCode {
			return []errx.NamedCode{{Name: "Fault", Code: appCode}}
		},
	}
	k, err := New(WithCategories(app), WithFallback(appCode))
	require.NoError(t, err)
	assert.Same(t, appCode, k.Bridge.Fallback())
}

func TestKit_ReportThroughHub(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	h := hub.New()
	require.NoError(t, h.RegisterObserver(observers.NewZap(zap.New(core))))

	k, err := New(WithHub(h))
	require.NoError(t, err)

	e, err := k.Bridge.FromFault(errors.New("disk full"))
	require.NoError(t, err)
	require.NoError(t, k.Reporter.Report(e))

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "SYS_001", logs.All()[0].ContextMap()[observers.KeyCode])
}

func TestFromConfig(t *testing.T) {
	dir := t.TempDir()
	catalog := filepath.Join(dir, "app.yaml")
	require.NoError(t, os.WriteFile(catalog, []byte(`
category: App
codes:
  - value: APP_500
    description: Application failure
`), 0o600))

	cfg := &config.Config{FallbackCode: "APP_500", Catalogs: []string{catalog}}
	k, err := FromConfig(cfg, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 2, k.Registry.Count())
	assert.Equal(t, "APP_500", k.Bridge.Fallback().Value())

	e, err := k.Bridge.FromFault(errors.New("boom"))
	require.NoError(t, err)
	assert.Equal(t, "APP_500", e.Code().Value())
}

func TestFromConfig_UnknownFallback(t *testing.T) {
	_, err := FromConfig(&config.Config{FallbackCode: "NOPE"}, nil)
	assert.ErrorIs(t, err, errx.ErrValidation)

	_, err = FromConfig(nil, nil)
	assert.ErrorIs(t, err, errx.ErrValidation)
}

func TestFromConfig_MissingCatalog(t *testing.T) {
	_, err := FromConfig(&config.Config{FallbackCode: "SYS_001", Catalogs: []string{"/nonexistent/catalog.yaml"}}, nil)
	assert.Error(t, err)
}
