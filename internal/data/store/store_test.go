package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/penwyp/go-project-clock/internal/core/model"
	"github.com/penwyp/go-project-clock/internal/core/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 15, 18, 30, 0, 0, time.UTC)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "data"), "", time.UTC)
}

func TestLoadMissingSnapshotIsEmpty(t *testing.T) {
	s := newTestStore(t)

	snapshot := s.Load()

	assert.NotNil(t, snapshot)
	assert.Empty(t, snapshot)
	_, ok := s.LoadRecord("alpha")
	assert.False(t, ok)
}

func TestLoadCorruptSnapshotIsEmpty(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.SnapshotPath()), 0755))
	require.NoError(t, os.WriteFile(s.SnapshotPath(), []byte("{not json"), 0644))

	assert.Empty(t, s.Load())

	kept, err := os.ReadFile(s.SnapshotPath() + CorruptSuffix)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(kept))
	_, err = os.Stat(s.SnapshotPath())
	assert.True(t, os.IsNotExist(err))
}

func TestLoadKeepsGoodRecordsNextToBadOnes(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.SnapshotPath()), 0755))
	content := `{
  "/a": {"totalTime": 3600000, "lastStartTime": null, "dailyTimes": {"2026-10-14": 3600000}},
  "/b": {"totalTime": -5, "lastStartTime": null, "dailyTimes": {"2026-10-14": -5}},
  "/c": {"totalTime": "soon"},
  "/d": null
}`
	require.NoError(t, os.WriteFile(s.SnapshotPath(), []byte(content), 0644))

	loaded := s.Load()

	require.Len(t, loaded, 2)
	assert.Equal(t, uint64(3600000), loaded["/a"].TotalTimeMs)
	assert.Equal(t, uint64(3600000), loaded["/a"].DailyTimesMs["2026-10-14"])
	assert.Equal(t, uint64(0), loaded["/b"].TotalTimeMs)
	assert.Equal(t, uint64(0), loaded["/b"].DailyTimesMs["2026-10-14"])

	_, err := os.Stat(s.SnapshotPath() + CorruptSuffix)
	assert.True(t, os.IsNotExist(err))
}

func TestSaveCreatesDirectoriesAndRoundTrips(t *testing.T) {
	s := newTestStore(t)
	tr := tracker.New(nil, tracker.Options{Location: time.UTC})
	tr.Start("/work/alpha", now)
	tr.Stop("/work/alpha", now.Add(65*time.Second))
	tr.Start("/work/beta", now.Add(time.Minute))
	tr.Stop("/work/beta", now.Add(2*time.Minute))

	require.NoError(t, s.Save("/work/alpha", tr.Snapshot(), now))

	// A fresh store instance plays the part of a new process.
	loaded := New(filepath.Dir(s.SnapshotPath()), "", time.UTC).Load()
	require.Len(t, loaded, 2)

	want, _ := tr.Record("/work/alpha")
	got := loaded["/work/alpha"]
	require.NotNil(t, got)
	assert.Equal(t, want.TotalTimeMs, got.TotalTimeMs)
	assert.Equal(t, want.DailyTimesMs, got.DailyTimesMs)
	assert.Equal(t, uint64(65000), got.TotalTimeMs)

	_, err := os.Stat(s.ReportPath("/work/alpha"))
	assert.NoError(t, err)
}

func TestLoadClearsRunningMarkers(t *testing.T) {
	s := newTestStore(t)
	start := now.UnixMilli()
	require.NoError(t, s.SaveSnapshot(model.Snapshot{
		"alpha": {TotalTimeMs: 1000, LastStartTimeMs: &start},
	}))

	loaded := s.Load()

	require.Contains(t, loaded, model.ProjectKey("alpha"))
	assert.False(t, loaded["alpha"].IsRunning())
	assert.Equal(t, uint64(1000), loaded["alpha"].TotalTimeMs)
	assert.NotNil(t, loaded["alpha"].DailyTimesMs)
}

func TestLoadLegacySnapshotWithoutDailyTimes(t *testing.T) {
	s := newTestStore(t)
	legacy := `{
  "/home/me/app": {"totalTime": 123456, "lastStartTime": null},
  "default": {"totalTime": 0, "lastStartTime": 1700000000000}
}`
	require.NoError(t, os.MkdirAll(filepath.Dir(s.SnapshotPath()), 0755))
	require.NoError(t, os.WriteFile(s.SnapshotPath(), []byte(legacy), 0644))

	loaded := s.Load()

	require.Len(t, loaded, 2)
	assert.Equal(t, uint64(123456), loaded["/home/me/app"].TotalTimeMs)
	assert.Empty(t, loaded["/home/me/app"].DailyTimesMs)
	assert.False(t, loaded[model.DefaultProject].IsRunning())
}

func TestSnapshotFileFormat(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SaveSnapshot(model.Snapshot{
		"alpha": {TotalTimeMs: 5000, DailyTimesMs: map[string]uint64{"2026-10-15": 5000}},
	}))

	data, err := os.ReadFile(s.SnapshotPath())
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `"totalTime": 5000`)
	assert.Contains(t, text, `"lastStartTime": null`)
	assert.Contains(t, text, `"2026-10-15": 5000`)

	_, err = os.Stat(s.SnapshotPath() + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestSaveReportOverwrites(t *testing.T) {
	s := newTestStore(t)
	record := &model.ProjectRecord{
		TotalTimeMs: 3661000,
		DailyTimesMs: map[string]uint64{
			"2026-10-15": 61000,
			"2026-10-13": 3600000,
		},
	}

	require.NoError(t, s.SaveReport("/work/alpha", record, now))
	record.TotalTimeMs = 5000
	record.DailyTimesMs = map[string]uint64{"2026-10-15": 5000}
	require.NoError(t, s.SaveReport("/work/alpha", record, now))

	data, err := os.ReadFile(s.ReportPath("/work/alpha"))
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "Total time: 0h 0m 5s")
	assert.NotContains(t, text, "1h 1m 1s")
	assert.Equal(t, 1, strings.Count(text, "Project: alpha"))
}

func TestSaveReportRejectsNilRecord(t *testing.T) {
	assert.Error(t, newTestStore(t).SaveReport("alpha", nil, now))
}

func TestSaveWithoutRecordOnlyWritesSnapshot(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Save("ghost", model.Snapshot{}, now))

	_, err := os.Stat(s.SnapshotPath())
	assert.NoError(t, err)
	_, err = os.Stat(s.ReportPath("ghost"))
	assert.True(t, os.IsNotExist(err))
}

func TestSaveSnapshotFailsWhenDirIsAFile(t *testing.T) {
	root := t.TempDir()
	blocker := filepath.Join(root, "data")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	s := New(blocker, "", time.UTC)
	assert.Error(t, s.SaveSnapshot(model.Snapshot{}))
}
