package frame

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Palette colorizes directory and file labels. The zero value applies no
// styling at all, which keeps labels on the terminal's default colors when
// no override is configured.
type Palette struct {
	dir  termenv.Color
	file termenv.Color
	out  *termenv.Output
}

// NewPalette builds a Palette from configured color overrides ("33",
// "#89b4fa", ...). Empty specs stay unstyled, and everything stays unstyled
// when stderr is not a terminal (the picker renders on the tty carried by
// stderr, stdout being the result channel).
func NewPalette(dirColor, fileColor string) Palette {
	if dirColor == "" && fileColor == "" {
		return Palette{}
	}
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return Palette{}
	}

	out := termenv.NewOutput(os.Stderr)
	p := Palette{out: out}
	if dirColor != "" {
		p.dir = out.Color(dirColor)
	}
	if fileColor != "" {
		p.file = out.Color(fileColor)
	}
	return p
}

// Dir styles a directory label, or returns it untouched for the zero Palette.
func (p Palette) Dir(label string) string {
	return p.apply(label, p.dir)
}

// File styles a file label, or returns it untouched for the zero Palette.
func (p Palette) File(label string) string {
	return p.apply(label, p.file)
}

func (p Palette) apply(label string, c termenv.Color) string {
	if p.out == nil || c == nil {
		return label
	}
	return p.out.String(label).Foreground(c).String()
}
