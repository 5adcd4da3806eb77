package formatter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-project-clock/internal/data/aggregator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() WeeklyReport {
	return NewWeeklyReport("/work/alpha", aggregator.ChartData{
		Labels: []string{
			"2026-10-11", "2026-10-12", "2026-10-13", "2026-10-14",
			"2026-10-15", "2026-10-16", "2026-10-17",
		},
		Values: []uint64{0, 65, 0, 0, 3600, 0, 0},
	})
}

func TestNewFormatter(t *testing.T) {
	for _, format := range []string{"", "table", "json", "csv"} {
		f, err := New(format, 80)
		require.NoError(t, err, format)
		assert.NotNil(t, f)
	}

	_, err := New("xml", 80)
	assert.Error(t, err)
}

func TestNewWeeklyReportTotals(t *testing.T) {
	report := sampleReport()
	assert.Equal(t, uint64(3665), report.TotalSeconds)
	assert.Equal(t, uint64(3600), report.PeakSeconds)
}

func TestTableFormatter(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, NewTableFormatter(60).Format(buf, sampleReport()))

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 11)

	assert.Equal(t, "Project: /work/alpha", lines[0])
	assert.True(t, strings.HasPrefix(lines[2], "Sun 10-11"), lines[2])
	assert.Contains(t, lines[2], "0h 0m 0s")
	assert.NotContains(t, lines[2], barFull)

	// The busiest day gets a full bar, small values still show one cell.
	assert.NotContains(t, lines[6], barEmpty)
	assert.Contains(t, lines[6], "1h 0m 0s")
	assert.Equal(t, 1, strings.Count(lines[3], barFull))
	assert.Contains(t, lines[10], "1h 1m 5s")
}

func TestTableFormatterEmptyWeek(t *testing.T) {
	report := NewWeeklyReport("default", aggregator.ChartData{
		Labels: []string{"2026-10-11"},
		Values: []uint64{0},
	})
	buf := &bytes.Buffer{}

	require.NoError(t, NewTableFormatter(60).Format(buf, report))
	assert.NotContains(t, buf.String(), barFull)
}

func TestJSONFormatter(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, NewJSONFormatter().Format(buf, sampleReport()))

	var decoded WeeklyReport
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, sampleReport(), decoded)
}

func TestCSVFormatter(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, NewCSVFormatter().Format(buf, sampleReport()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, "Date,Seconds,Duration", lines[0])
	assert.Equal(t, "2026-10-12,65,0h 1m 5s", lines[2])
	assert.Equal(t, "2026-10-15,3600,1h 0m 0s", lines[5])
}

func TestWeekdayLabel(t *testing.T) {
	assert.Equal(t, "Thu 10-15", weekdayLabel("2026-10-15"))
	assert.Equal(t, "garbage", weekdayLabel("garbage"))
}
