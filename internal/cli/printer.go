package cli

// This file implements terminal output: tables, colours, sections and
// spinners. Colour and animation are only used when stdout is a terminal.

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/pterm/pterm"
	"golang.org/x/term"
)

var stylingOnce sync.Once

// configureStyling disables pterm colours when stdout is not a terminal.
func configureStyling() {
	stylingOnce.Do(func() {
		if !isTerminal(os.Stdout) {
			pterm.DisableStyling()
		}
	})
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func Green(s string) string  { return pterm.Green(s) }
func Yellow(s string) string { return pterm.Yellow(s) }
func Red(s string) string    { return pterm.Red(s) }
func Cyan(s string) string   { return pterm.Cyan(s) }

// Printer writes command output. Quiet suppresses decoration (sections,
// steps, info lines and spinners) but never data written with Printf or
// the table methods.
type Printer struct {
	Quiet bool
	Out   io.Writer
}

// DefaultPrinter writes to stdout.
var DefaultPrinter = &Printer{}

func (p *Printer) out() io.Writer {
	if p.Out == nil {
		return os.Stdout
	}
	return p.Out
}

func (p *Printer) Printf(format string, args ...any) {
	fmt.Fprintf(p.out(), format, args...)
}

func (p *Printer) Section(title string) {
	if p.Quiet {
		return
	}
	fmt.Fprint(p.out(), pterm.DefaultSection.Sprintln(title))
}

func (p *Printer) Step(msg string) {
	if p.Quiet {
		return
	}
	fmt.Fprintf(p.out(), "%s %s\n", Cyan("»"), msg)
}

func (p *Printer) Info(msg string) {
	if p.Quiet {
		return
	}
	fmt.Fprint(p.out(), pterm.Info.Sprintln(msg))
}

func (p *Printer) Success(msg string) {
	if p.Quiet {
		return
	}
	fmt.Fprint(p.out(), pterm.Success.Sprintln(msg))
}

func (p *Printer) Warn(msg string) {
	if p.Quiet {
		return
	}
	fmt.Fprint(p.out(), pterm.Warning.Sprintln(msg))
}

// SpinnerStart shows a spinner on a terminal and a plain step line
// elsewhere. The returned function stops it with a final status line.
func (p *Printer) SpinnerStart(msg string) func(ok bool, final string) {
	if p.Quiet {
		return func(bool, string) {}
	}
	if !isTerminal(p.out()) {
		p.Step(msg)
		return func(ok bool, final string) {
			if ok {
				p.Success(final)
				return
			}
			fmt.Fprint(p.out(), pterm.Error.Sprintln(final))
		}
	}
	spinner, err := pterm.DefaultSpinner.Start(msg)
	if err != nil {
		p.Step(msg)
		return func(bool, string) {}
	}
	return func(ok bool, final string) {
		if ok {
			spinner.Success(final)
			return
		}
		spinner.Fail(final)
	}
}

// Table renders data with the first row as header.
func (p *Printer) Table(data [][]string) {
	if len(data) == 0 {
		return
	}
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return
	}
	fmt.Fprintln(p.out(), out)
}

// TableBoxed renders data as Table does, inside a box.
func (p *Printer) TableBoxed(data [][]string) {
	if len(data) == 0 {
		return
	}
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return
	}
	fmt.Fprintln(p.out(), pterm.DefaultBox.Sprint(out))
}

func Table(data [][]string)      { DefaultPrinter.Table(data) }
func TableBoxed(data [][]string) { DefaultPrinter.TableBoxed(data) }
