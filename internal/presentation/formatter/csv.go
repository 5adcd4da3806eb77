package formatter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/penwyp/go-project-clock/internal/util"
)

type CSVFormatter struct{}

func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

func (f *CSVFormatter) Format(w io.Writer, report WeeklyReport) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Date", "Seconds", "Duration"}); err != nil {
		return err
	}
	for i, label := range report.Labels {
		var value uint64
		if i < len(report.Values) {
			value = report.Values[i]
		}
		record := []string{label, strconv.FormatUint(value, 10), util.FormatDuration(value)}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
