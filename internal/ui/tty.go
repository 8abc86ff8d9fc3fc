package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// IsTerminal reports whether f is connected to a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// IsStdoutTTY returns true when stdout is connected to a terminal.
func IsStdoutTTY() bool {
	return IsTerminal(os.Stdout)
}

// IsStdinTTY returns true when stdin is connected to a terminal.
func IsStdinTTY() bool {
	return IsTerminal(os.Stdin)
}

// NewRenderer returns a lipgloss renderer bound to f, with the colour
// profile detected from f and the environment (NO_COLOR, CLICOLOR_FORCE).
func NewRenderer(f *os.File) *lipgloss.Renderer {
	out := termenv.NewOutput(f, termenv.WithColorCache(true))
	r := lipgloss.NewRenderer(f)
	r.SetOutput(out)
	r.SetColorProfile(out.EnvColorProfile())
	return r
}
