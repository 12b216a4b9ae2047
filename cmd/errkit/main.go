package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"errkit/internal/cli"
	"errkit/pkg/errx"
)

var (
	version    = "dev"
	commit     = "none"
	date       = "unknown"
	debug      = false
	configFile = ""
)

func main() {
	app := cli.NewApp()
	defer app.Close()

	initCommands(app)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", errx.UserString(err))
		if cli.IsDebugMode() {
			fmt.Fprintln(os.Stderr, errx.DebugString(err))
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "errkit",
	Short: "Structured error code toolkit",
	Long: `errkit inspects and serves structured error codes:
- List and show registered error codes
- Validate YAML code catalogs
- Render problem details documents
- Serve the registry over HTTP with metrics`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug mode with structured error logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default $HOME/.errkit/errkit.yaml)")
}

func initCommands(app *cli.App) {
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Set debug mode globally so failures are also logged
		cli.SetDebugMode(debug)
		app.ConfigFile = configFile
		return app.Init(cmd.Flags())
	}

	rootCmd.AddCommand(cli.NewCodesCmd(app))
	rootCmd.AddCommand(cli.NewProblemCmd(app))
	rootCmd.AddCommand(cli.NewServeCmd(app))
}
