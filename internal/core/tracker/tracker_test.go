package tracker

import (
	"testing"
	"time"

	"github.com/penwyp/go-project-clock/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

func at(ms int64) time.Time {
	return base.Add(time.Duration(ms) * time.Millisecond)
}

func newUTCTracker() *Tracker {
	return New(nil, Options{Location: time.UTC})
}

func TestStartStopCreditsInterval(t *testing.T) {
	tr := newUTCTracker()

	tr.Start("alpha", at(0))
	assert.Equal(t, StateRunning, tr.StateOf("alpha"))

	assert.True(t, tr.Stop("alpha", at(65000)))

	record, ok := tr.Record("alpha")
	require.True(t, ok)
	assert.Equal(t, uint64(65000), record.TotalTimeMs)
	assert.Equal(t, uint64(65000), record.DailyTimesMs["2026-10-15"])
	assert.Nil(t, record.LastStartTimeMs)

	seconds, ok := tr.CurrentTotalSeconds("alpha")
	require.True(t, ok)
	assert.Equal(t, uint64(65), seconds)
}

func TestStopWhileStoppedIsNoop(t *testing.T) {
	tr := newUTCTracker()

	assert.False(t, tr.Stop("missing", at(10)))

	tr.Start("alpha", at(0))
	tr.Stop("alpha", at(1000))
	before, _ := tr.Record("alpha")

	assert.False(t, tr.Stop("alpha", at(5000)))
	after, _ := tr.Record("alpha")
	assert.Equal(t, before, after)
}

func TestRepeatedStartKeepsOriginalStart(t *testing.T) {
	tr := newUTCTracker()

	tr.Start("alpha", at(0))
	tr.Start("alpha", at(4000))
	tr.Stop("alpha", at(10000))

	record, _ := tr.Record("alpha")
	assert.Equal(t, uint64(10000), record.TotalTimeMs)
}

func TestBackwardsClockIsClampedToZero(t *testing.T) {
	tr := newUTCTracker()

	tr.Start("alpha", at(10000))
	assert.True(t, tr.Stop("alpha", at(2000)))

	record, _ := tr.Record("alpha")
	assert.Equal(t, uint64(0), record.TotalTimeMs)
	assert.False(t, record.IsRunning())
}

func TestTotalEqualsSumOfIntervals(t *testing.T) {
	tr := newUTCTracker()
	intervals := [][2]int64{{0, 1500}, {2000, 2000}, {3000, 9000}, {20000, 20999}}

	var want uint64
	for _, iv := range intervals {
		tr.Start("alpha", at(iv[0]))
		tr.Stop("alpha", at(iv[1]))
		want += uint64(iv[1] - iv[0])
	}

	record, _ := tr.Record("alpha")
	assert.Equal(t, want, record.TotalTimeMs)
	assert.Equal(t, record.TotalTimeMs, record.DailySumMs())
}

func TestMidnightSpanCreditedToEndDay(t *testing.T) {
	tr := newUTCTracker()
	beforeMidnight := time.Date(2026, 10, 14, 23, 59, 0, 0, time.UTC)
	afterMidnight := time.Date(2026, 10, 15, 0, 1, 0, 0, time.UTC)

	tr.Start("alpha", beforeMidnight)
	tr.Stop("alpha", afterMidnight)

	record, _ := tr.Record("alpha")
	assert.Equal(t, map[string]uint64{"2026-10-15": 120000}, record.DailyTimesMs)
}

func TestDayKeyUsesLocation(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	tr := New(nil, Options{Location: tokyo})

	assert.Equal(t, "2026-10-15", tr.DayKey(time.Date(2026, 10, 14, 20, 0, 0, 0, time.UTC)))
}

func TestSwitchProject(t *testing.T) {
	tr := newUTCTracker()

	tr.Start("a", at(0))
	tr.SwitchProject("a", "b", at(10000))

	a, _ := tr.Record("a")
	assert.Equal(t, uint64(10000), a.TotalTimeMs)
	assert.Equal(t, StateStopped, tr.StateOf("a"))

	b, ok := tr.Record("b")
	require.True(t, ok)
	require.NotNil(t, b.LastStartTimeMs)
	assert.Equal(t, at(10000).UnixMilli(), *b.LastStartTimeMs)
	assert.Equal(t, uint64(0), b.TotalTimeMs)

	active, running := tr.Active()
	assert.True(t, running)
	assert.Equal(t, model.ProjectKey("b"), active)
}

func TestStartingAnotherProjectStopsActive(t *testing.T) {
	tr := newUTCTracker()

	tr.Start("a", at(0))
	tr.Start("b", at(3000))

	a, _ := tr.Record("a")
	assert.Equal(t, uint64(3000), a.TotalTimeMs)
	assert.Equal(t, StateStopped, tr.StateOf("a"))
	assert.Equal(t, StateRunning, tr.StateOf("b"))
}

func TestCurrentTotalExcludesOpenInterval(t *testing.T) {
	tr := newUTCTracker()

	_, ok := tr.CurrentTotalSeconds("alpha")
	assert.False(t, ok)

	tr.Start("alpha", at(0))
	seconds, ok := tr.CurrentTotalSeconds("alpha")
	assert.True(t, ok)
	assert.Equal(t, uint64(0), seconds)
}

func TestNewAdoptsRunningRecordFromSnapshot(t *testing.T) {
	start := at(0).UnixMilli()
	other := at(0).UnixMilli()
	snapshot := model.Snapshot{
		"a": {LastStartTimeMs: &start, DailyTimesMs: map[string]uint64{}},
		"b": {LastStartTimeMs: &other, DailyTimesMs: map[string]uint64{}},
	}

	tr := New(snapshot, Options{Location: time.UTC})

	active, running := tr.Active()
	assert.True(t, running)
	assert.Equal(t, model.ProjectKey("a"), active)
	assert.Equal(t, StateStopped, tr.StateOf("b"))
}

func TestNewDropsNilRecords(t *testing.T) {
	tr := New(model.Snapshot{"ghost": nil}, Options{Location: time.UTC})

	_, ok := tr.CurrentTotalSeconds("ghost")
	assert.False(t, ok)

	assert.NotPanics(t, func() {
		tr.Start("ghost", base)
		tr.Stop("ghost", base.Add(time.Second))
	})
	seconds, ok := tr.CurrentTotalSeconds("ghost")
	assert.True(t, ok)
	assert.Equal(t, uint64(1), seconds)
}

func TestSnapshotIsACopy(t *testing.T) {
	tr := newUTCTracker()
	tr.Start("alpha", at(0))
	tr.Stop("alpha", at(1000))

	snapshot := tr.Snapshot()
	snapshot["alpha"].TotalTimeMs = 0

	record, _ := tr.Record("alpha")
	assert.Equal(t, uint64(1000), record.TotalTimeMs)
}
