package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const ordersCatalog = `
category: Orders
codes:
  - name: NotFound
    value: ORD_404
    description: Order not found
    severity: warning
  - value: ORD_409
    description: Order already exists
`

// newTestApp returns an App isolated from the user's home directory and
// .env file. A non-empty configYAML is written and used as the config file.
func newTestApp(t *testing.T, configYAML string) *App {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)

	app := NewApp()
	app.EnvFile = ""
	if configYAML != "" {
		path := filepath.Join(home, "errkit.yaml")
		require.NoError(t, os.WriteFile(path, []byte(configYAML), 0o600))
		app.ConfigFile = path
	}
	return app
}

func writeCatalog(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// execute runs args against a root command wired like cmd/errkit.
func execute(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := &cobra.Command{
		Use:           "errkit",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.Init(cmd.Flags())
		},
	}
	root.AddCommand(NewCodesCmd(app), NewProblemCmd(app), NewServeCmd(app))

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func withDebugMode(t *testing.T, enabled bool) {
	t.Helper()
	prev := IsDebugMode()
	SetDebugMode(enabled)
	t.Cleanup(func() { SetDebugMode(prev) })
}
