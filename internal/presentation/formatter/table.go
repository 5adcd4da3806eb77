package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-project-clock/internal/presentation/layout"
	"github.com/penwyp/go-project-clock/internal/util"
)

const (
	labelColumn    = 10
	durationColumn = 12
	barFull        = "█"
	barEmpty       = "░"
)

// TableFormatter draws one horizontal bar per weekday.
type TableFormatter struct {
	sizer layout.Sizer
}

// NewTableFormatter creates a table formatter. width <= 0 uses the terminal
// width.
func NewTableFormatter(width int) *TableFormatter {
	return &TableFormatter{sizer: layout.Sizer{Width: width}}
}

func (f *TableFormatter) barWidth() int {
	width := f.sizer.MaxWidth() - labelColumn - durationColumn - 4
	if width < 10 {
		width = 10
	}
	return width
}

func (f *TableFormatter) Format(w io.Writer, report WeeklyReport) error {
	width := f.sizer.MaxWidth()
	barWidth := f.barWidth()

	peak := report.PeakSeconds

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", f.sizer.Truncate("Project: "+report.Project, width))
	b.WriteString(strings.Repeat("─", width) + "\n")

	for i, label := range report.Labels {
		var value uint64
		if i < len(report.Values) {
			value = report.Values[i]
		}

		filled := 0
		if peak > 0 {
			filled = int(value * uint64(barWidth) / peak)
		}
		if value > 0 && filled == 0 {
			filled = 1
		}
		if filled > barWidth {
			filled = barWidth
		}

		fmt.Fprintf(&b, "%s  %s%s  %s\n",
			f.sizer.PadString(weekdayLabel(label), labelColumn, true),
			strings.Repeat(barFull, filled),
			strings.Repeat(barEmpty, barWidth-filled),
			f.sizer.PadString(util.FormatDuration(value), durationColumn, false))
	}

	b.WriteString(strings.Repeat("─", width) + "\n")
	fmt.Fprintf(&b, "%s  %s\n",
		f.sizer.PadString("Total", labelColumn+barWidth, true),
		f.sizer.PadString(util.FormatDuration(report.TotalSeconds), durationColumn, false))

	_, err := io.WriteString(w, b.String())
	return err
}
