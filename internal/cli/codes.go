package cli

// This file implements the "codes" command for inspecting the error code
// registry and validating code catalogs.

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"errkit/internal/config"
	"errkit/pkg/errx"
)

// NewCodesCmd builds the codes subcommand.
func NewCodesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "codes",
		Short: "Inspect error codes",
		Long:  "Commands for listing, showing and validating registered error codes",
	}

	cmd.AddCommand(newCodesListCmd(app))
	cmd.AddCommand(newCodesShowCmd(app))
	cmd.AddCommand(newCodesCheckCmd(app))

	return cmd
}

func newCodesListCmd(app *App) *cobra.Command {
	var catalogs []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered error codes",
		Long:  "List the system, CLI and configured catalog error codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := app.Kit(catalogs...)
			if err != nil {
				return err
			}
			app.printer(cmd).Table(codeRows(k.Registry.Codes()))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&catalogs, "catalog", nil, "Additional catalog file (repeatable)")

	return cmd
}

func newCodesShowCmd(app *App) *cobra.Command {
	var catalogs []string

	cmd := &cobra.Command{
		Use:   "show <code>",
		Short: "Show one error code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := app.Kit(catalogs...)
			if err != nil {
				return err
			}
			code, ok, err := k.Registry.TryGet(args[0])
			if err != nil {
				return app.fail(CodeInvalidArgument, err, "invalid error code", kv("code", args[0]))
			}
			if !ok {
				return app.fail(CodeUnknownCode, nil, fmt.Sprintf("error code %q is not registered", args[0]), kv("code", args[0]))
			}
			app.printer(cmd).TableBoxed(codeDetailRows(code))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&catalogs, "catalog", nil, "Additional catalog file (repeatable)")

	return cmd
}

func newCodesCheckCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <catalog>...",
		Short: "Validate code catalogs",
		Long:  "Load catalogs into a fresh registry and report invalid entries or duplicate codes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.CheckCatalogs(app.printer(cmd), args)
		},
	}

	return cmd
}

// CheckCatalogs registers every catalog, together with the system codes,
// in a fresh registry. It stops at the first invalid catalog.
func (a *App) CheckCatalogs(p *Printer, paths []string) error {
	registry := errx.NewRegistry()
	if err := errx.RegisterCategory(registry, errx.SystemCodes); err != nil {
		return a.fail(CodeCLI, err, "failed to register system codes")
	}

	p.Section("Checking catalogs")
	for _, path := range paths {
		stop := p.SpinnerStart(fmt.Sprintf("Checking %s", path))
		catalog, err := config.LoadCatalog(path)
		if err == nil {
			err = errx.RegisterCategory(registry, catalog)
		}
		if err != nil {
			stop(false, fmt.Sprintf("%s is invalid", path))
			return a.fail(CodeCatalogInvalid, err, fmt.Sprintf("catalog %s is invalid", path), kv("catalog", path))
		}
		stop(true, fmt.Sprintf("%s: %d codes", path, len(catalog.Codes())))
		a.logger.Debug("catalog checked", zap.String("catalog", path), zap.String("category", catalog.Name()))
	}
	p.Printf("%d codes in %d catalogs\n", registry.Count()-len(errx.SystemCodes.Codes()), len(paths))
	return nil
}

func codeRows(codes []*errx.Code) [][]string {
	rows := make([][]string, 0, len(codes)+1)
	rows = append(rows, []string{"CODE", "SEVERITY", "CATEGORY", "DESCRIPTION"})
	for _, c := range codes {
		rows = append(rows, []string{c.Value(), severityLabel(c.Severity()), c.Category(), c.Description()})
	}
	return rows
}

func codeDetailRows(c *errx.Code) [][]string {
	rows := [][]string{
		{"FIELD", "VALUE"},
		{"Code", c.Value()},
		{"Description", c.Description()},
		{"Severity", severityLabel(c.Severity())},
	}
	if cat := c.Category(); cat != "" {
		rows = append(rows, []string{"Category", cat})
	}
	if link := c.DocumentationLink(); link != "" {
		rows = append(rows, []string{"Documentation", link})
	}
	return rows
}

func severityLabel(s errx.Severity) string {
	switch {
	case s >= errx.SeverityCritical:
		return Red(s.String())
	case s == errx.SeverityError:
		return Yellow(s.String())
	case s == errx.SeverityWarning:
		return Cyan(s.String())
	default:
		return Green(s.String())
	}
}
