// Package output renders CLI output in terminal, plain, and JSON modes.
//
// Mode "auto" picks styled terminal output when stdout is a TTY and plain
// text otherwise, so piped and scripted invocations stay machine-friendly
// without flags.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
)

// Mode selects the output format.
type Mode string

const (
	// ModeAuto detects: TTY gets styled text, pipes get plain text.
	ModeAuto Mode = "auto"
	// ModeText is styled terminal output.
	ModeText Mode = "text"
	// ModePlain is unstyled text for pipes and logs.
	ModePlain Mode = "plain"
	// ModeJSON is machine-readable output.
	ModeJSON Mode = "json"
)

// Renderer writes command output in a single resolved mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	styles *Styles
}

// NewRenderer creates a renderer. An auto mode is resolved immediately
// against the current terminal.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	resolved := mode
	if resolved == ModeAuto || resolved == "" {
		if isTerminal(out) {
			resolved = ModeText
		} else {
			resolved = ModePlain
		}
	}
	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   resolved,
		styles: NewStyles(resolved == ModeText),
	}
}

// isTerminal reports whether w is an interactive terminal with color
// enabled. NO_COLOR and friends force plain output.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	o := termenv.NewOutput(f)
	return o.TTY() != nil && !o.EnvNoColor()
}

// EffectiveMode returns the resolved mode.
func (r *Renderer) EffectiveMode() Mode { return r.mode }

// Writer returns the underlying output writer.
func (r *Renderer) Writer() io.Writer { return r.out }

// Styles returns the style set matching the resolved mode. In plain and
// JSON modes every style renders as bare text.
func (r *Renderer) Styles() *Styles { return r.styles }

// Println writes a line to the output writer.
func (r *Renderer) Println(s string) {
	fmt.Fprintln(r.out, s)
}

// Printf writes formatted text to the output writer.
func (r *Renderer) Printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

// Header writes a styled section header.
func (r *Renderer) Header(s string) {
	r.Println(r.styles.Header1.Render(s))
}

// Success writes a styled success line.
func (r *Renderer) Success(s string) {
	r.Println(r.styles.Success.Render(s))
}

// Muted writes a styled secondary line.
func (r *Renderer) Muted(s string) {
	r.Println(r.styles.Muted.Render(s))
}

// Error writes a styled line to the error writer.
func (r *Renderer) Error(s string) {
	fmt.Fprintln(r.errOut, r.styles.Error.Render(s))
}

// JSON writes v as indented JSON to the output writer.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
