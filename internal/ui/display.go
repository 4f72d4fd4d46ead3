package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"
)

// DefaultTermWidth is the fallback terminal width when detection fails.
const DefaultTermWidth = 120

// DisplayContext decides between styled terminal output and plain text.
type DisplayContext struct {
	TermWidth int  // detected or fallback terminal width
	IsTTY     bool // whether the output is a terminal
}

// NewDisplayContext inspects stdout.
func NewDisplayContext() *DisplayContext {
	return NewDisplayContextFor(os.Stdout)
}

// NewDisplayContextFor inspects w. Anything other than a terminal file is
// plain output at DefaultTermWidth.
func NewDisplayContextFor(w io.Writer) *DisplayContext {
	dc := &DisplayContext{TermWidth: DefaultTermWidth}

	f, ok := w.(*os.File)
	if !ok {
		return dc
	}
	fd := f.Fd()
	dc.IsTTY = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	if dc.IsTTY {
		if width, _, err := term.GetSize(fd); err == nil && width > 0 {
			dc.TermWidth = width
		}
	}
	return dc
}

// NewDisplayContextWithWidth creates a terminal DisplayContext with a fixed
// width (for testing).
func NewDisplayContextWithWidth(width int) *DisplayContext {
	return &DisplayContext{
		TermWidth: width,
		IsTTY:     true,
	}
}

// AvailableWidth returns the usable width after accounting for left margin.
func (d *DisplayContext) AvailableWidth(leftMargin int) int {
	return d.TermWidth - leftMargin
}
