package display

import (
	"fmt"
	"io"
	"sync"

	"github.com/penwyp/go-project-clock/internal/presentation/layout"
)

const clearLine = "\r\033[2K"

// StatusLine renders the display text for a project. On a terminal the line
// is rewritten in place; otherwise each update is printed on its own line.
type StatusLine struct {
	mu       sync.Mutex
	out      io.Writer
	inPlace  bool
	sizer    layout.Sizer
	lastText string
	drawn    bool
}

func NewStatusLine(out io.Writer, inPlace bool, width int) *StatusLine {
	return &StatusLine{
		out:     out,
		inPlace: inPlace,
		sizer:   layout.Sizer{Width: width},
	}
}

// Render draws text unless it equals the last rendered text. It reports
// whether anything was written.
func (s *StatusLine) Render(text string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.drawn && text == s.lastText {
		return false, nil
	}

	line := s.sizer.Truncate(text, s.sizer.MaxWidth())
	var err error
	if s.inPlace {
		_, err = fmt.Fprint(s.out, clearLine+line)
	} else {
		_, err = fmt.Fprintln(s.out, line)
	}
	if err != nil {
		return false, err
	}

	s.lastText = text
	s.drawn = true
	return true, nil
}

// Finish ends an in-place line so the shell prompt starts on a fresh row.
func (s *StatusLine) Finish() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.inPlace || !s.drawn {
		return nil
	}
	_, err := fmt.Fprintln(s.out)
	return err
}
