package formatter

import (
	"fmt"
	"io"
	"time"

	"github.com/penwyp/go-project-clock/internal/data/aggregator"
)

// WeeklyReport is the data rendered by the week command.
type WeeklyReport struct {
	Project      string   `json:"project"`
	Labels       []string `json:"labels"`
	Values       []uint64 `json:"values"`
	TotalSeconds uint64   `json:"totalSeconds"`
	PeakSeconds  uint64   `json:"peakSeconds"`
}

// NewWeeklyReport builds a report from chart data.
func NewWeeklyReport(project string, chart aggregator.ChartData) WeeklyReport {
	return WeeklyReport{
		Project:      project,
		Labels:       chart.Labels,
		Values:       chart.Values,
		TotalSeconds: chart.TotalSeconds(),
		PeakSeconds:  chart.MaxSeconds(),
	}
}

// Formatter writes a weekly report in one output format.
type Formatter interface {
	Format(w io.Writer, report WeeklyReport) error
}

// New returns the formatter for format: table, json or csv.
func New(format string, width int) (Formatter, error) {
	switch format {
	case "", "table":
		return NewTableFormatter(width), nil
	case "json":
		return NewJSONFormatter(), nil
	case "csv":
		return NewCSVFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported output format '%s': must be table, json or csv", format)
	}
}

func weekdayLabel(day string) string {
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		return day
	}
	return t.Format("Mon 01-02")
}
