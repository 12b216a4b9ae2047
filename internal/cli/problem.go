package cli

// This file implements the "problem" command, which renders a problem
// details document for a registered error code.

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"errkit/pkg/errx"
	"errkit/pkg/problem"
)

// ProblemOptions holds the inputs of the problem command.
type ProblemOptions struct {
	Code     string
	Message  string
	Status   int
	Instance string
	Context  []string
}

// NewProblemCmd builds the problem subcommand.
func NewProblemCmd(app *App) *cobra.Command {
	var opts ProblemOptions

	cmd := &cobra.Command{
		Use:   "problem <code>",
		Short: "Render a problem details document",
		Long:  "Create an error for a registered code and print it as application/problem+json",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Code = args[0]
			d, err := app.Problem(opts)
			if err != nil {
				return err
			}
			data, err := problem.Marshal(d)
			if err != nil {
				return app.fail(CodeCLI, err, "failed to encode problem details")
			}
			app.printer(cmd).Printf("%s\n", data)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Message, "message", "", "Error message (defaults to the code description)")
	cmd.Flags().IntVar(&opts.Status, "status", 0, "HTTP status to include")
	cmd.Flags().StringVar(&opts.Instance, "instance", "", "URI reference of the occurrence")
	cmd.Flags().StringArrayVar(&opts.Context, "context", nil, "Context entry as key=value (repeatable, ordered)")

	return cmd
}

// Problem builds the problem details document described by opts.
func (a *App) Problem(opts ProblemOptions) (*problem.Details, error) {
	k, err := a.Kit()
	if err != nil {
		return nil, err
	}
	code, ok, err := k.Registry.TryGet(opts.Code)
	if err != nil {
		return nil, a.fail(CodeInvalidArgument, err, "invalid error code", kv("code", opts.Code))
	}
	if !ok {
		return nil, a.fail(CodeUnknownCode, nil, fmt.Sprintf("error code %q is not registered", opts.Code), kv("code", opts.Code))
	}

	createOpts := []errx.Option{}
	if opts.Message != "" {
		createOpts = append(createOpts, errx.WithMessage(opts.Message))
	}
	for _, pair := range opts.Context {
		key, value, found := strings.Cut(pair, "=")
		if !found {
			return nil, a.fail(CodeInvalidArgument, nil, fmt.Sprintf("context %q must be key=value", pair), kv("context", pair))
		}
		entry, err := errx.NewContextEntry(key, value)
		if err != nil {
			return nil, a.fail(CodeInvalidArgument, err, fmt.Sprintf("invalid context %q", pair), kv("context", pair))
		}
		createOpts = append(createOpts, errx.WithEntries(entry))
	}

	e, err := k.Factory.Create(code, createOpts...)
	if err != nil {
		return nil, a.fail(CodeInvalidArgument, err, "failed to create error")
	}

	problemOpts := []problem.Option{}
	if opts.Status != 0 {
		problemOpts = append(problemOpts, problem.WithStatus(opts.Status))
	}
	if opts.Instance != "" {
		problemOpts = append(problemOpts, problem.WithInstance(opts.Instance))
	}
	d, err := problem.FromError(e, problemOpts...)
	if err != nil {
		return nil, a.fail(CodeCLI, err, "failed to build problem details")
	}
	return d, nil
}
