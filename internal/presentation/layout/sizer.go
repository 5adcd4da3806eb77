package layout

import (
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

const (
	fallbackWidth = 80
	minWidth      = 40
	maxWidth      = 120
)

// Sizer measures and pads text by display width so emoji icons and wide
// runes line up in columns.
type Sizer struct {
	// Width overrides terminal detection when positive.
	Width int
}

// DisplayWidth returns the number of terminal cells text occupies.
func (s Sizer) DisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// PadString pads text to width cells.
func (s Sizer) PadString(text string, width int, leftAlign bool) string {
	actual := s.DisplayWidth(text)
	if actual >= width {
		return text
	}

	padding := strings.Repeat(" ", width-actual)
	if leftAlign {
		return text + padding
	}
	return padding + text
}

// Truncate shortens text to width cells, marking the cut with an ellipsis.
func (s Sizer) Truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(text, width, "…")
}

// MaxWidth returns the usable output width, clamped to a readable range.
func (s Sizer) MaxWidth() int {
	width := s.Width
	if width <= 0 {
		w, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil {
			w = fallbackWidth
		}
		width = w
	}
	if width < minWidth {
		width = minWidth
	}
	if width > maxWidth {
		width = maxWidth
	}
	return width
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
