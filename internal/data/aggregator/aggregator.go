package aggregator

import (
	"sort"
	"time"

	"github.com/penwyp/go-project-clock/internal/core/constants"
	"github.com/penwyp/go-project-clock/internal/core/model"
	"github.com/penwyp/go-project-clock/internal/util"
)

// ChartData is the weekly activity series handed to the presentation layer.
type ChartData struct {
	Labels []string `json:"labels"`
	Values []uint64 `json:"values"` // seconds per day
}

// DayRow is one day bucket of a record.
type DayRow struct {
	Date    string `json:"date"`
	Millis  uint64 `json:"millis"`
	Seconds uint64 `json:"seconds"`
}

// Aggregator groups day buckets in a fixed zone.
type Aggregator struct {
	location *time.Location
}

func New(location *time.Location) *Aggregator {
	if location == nil {
		location = time.Local
	}
	return &Aggregator{location: location}
}

// WeekStart returns local midnight of the Sunday on or before now.
func (a *Aggregator) WeekStart(now time.Time) time.Time {
	local := now.In(a.location)
	offset := int(local.Weekday())
	return time.Date(local.Year(), local.Month(), local.Day()-offset, 0, 0, 0, 0, a.location)
}

// WeeklyChart covers Sunday through Saturday of the week containing now.
// Days without activity are zero. A nil record yields an all-zero week.
func (a *Aggregator) WeeklyChart(record *model.ProjectRecord, now time.Time) ChartData {
	start := a.WeekStart(now)
	chart := ChartData{
		Labels: make([]string, 0, constants.DaysPerWeek),
		Values: make([]uint64, 0, constants.DaysPerWeek),
	}

	for i := 0; i < constants.DaysPerWeek; i++ {
		// AddDate keeps calendar days correct across DST changes.
		day := start.AddDate(0, 0, i).Format(util.DayKeyLayout)
		var ms uint64
		if record != nil {
			ms = record.DailyTimesMs[day]
		}
		chart.Labels = append(chart.Labels, day)
		chart.Values = append(chart.Values, ms/constants.MillisPerSecond)
	}
	return chart
}

// DailyRows lists every day bucket in ascending date order.
func DailyRows(record *model.ProjectRecord) []DayRow {
	if record == nil {
		return nil
	}

	rows := make([]DayRow, 0, len(record.DailyTimesMs))
	for day, ms := range record.DailyTimesMs {
		rows = append(rows, DayRow{Date: day, Millis: ms, Seconds: ms / constants.MillisPerSecond})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date < rows[j].Date })
	return rows
}

// TotalSeconds sums a chart's values.
func (c ChartData) TotalSeconds() uint64 {
	var total uint64
	for _, v := range c.Values {
		total += v
	}
	return total
}

// MaxSeconds returns the largest daily value.
func (c ChartData) MaxSeconds() uint64 {
	var peak uint64
	for _, v := range c.Values {
		if v > peak {
			peak = v
		}
	}
	return peak
}
