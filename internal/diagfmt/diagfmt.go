// Package diagfmt renders compiler and runtime failures for a terminal,
// colorizing output when the destination is a TTY.
package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	errorLabel   = color.New(color.FgRed, color.Bold)
	warnLabel    = color.New(color.FgYellow, color.Bold)
	locationText = color.New(color.FgCyan)
)

// Printer writes diagnostics to an io.Writer, honoring a color toggle that
// the CLI derives from --color and an x/term TTY check.
type Printer struct {
	out   io.Writer
	color bool
}

// New creates a Printer. Pass color=false to force plain text, e.g. when the
// destination isn't a terminal or the user passed --color=off.
func New(out io.Writer, color bool) *Printer {
	return &Printer{out: out, color: color}
}

// Stage names the pipeline phase a failure came from, for the "juno: <stage>
// error:" prefix.
type Stage string

const (
	StageLex     Stage = "lex"
	StageParse   Stage = "parse"
	StageCompile Stage = "compile"
	StageRuntime Stage = "runtime"
)

// Report prints a single fatal error. The error of every pipeline stage
// (lex, parse, compile, runtime) is unrecoverable, so Report is only ever
// called once per run.
func (p *Printer) Report(stage Stage, err error) {
	label := fmt.Sprintf("juno: %s error", stage)
	if p.color {
		fmt.Fprintf(p.out, "%s: %s\n", errorLabel.Sprint(label), err)
		return
	}
	fmt.Fprintf(p.out, "%s: %s\n", label, err)
}

// Warn prints a non-fatal advisory, e.g. a dropped --vm-trace flag when
// tracing is unavailable.
func (p *Printer) Warn(message string) {
	if p.color {
		fmt.Fprintf(p.out, "%s: %s\n", warnLabel.Sprint("juno: warning"), message)
		return
	}
	fmt.Fprintf(p.out, "juno: warning: %s\n", message)
}

// Location formats a file:line:column prefix, colorized when enabled.
func (p *Printer) Location(file string, line, column int) string {
	text := fmt.Sprintf("%s:%d:%d", file, line, column)
	if p.color {
		return locationText.Sprint(text)
	}
	return text
}
