package tracker

import (
	"time"

	"github.com/penwyp/go-project-clock/internal/core/model"
	"github.com/penwyp/go-project-clock/internal/util"
)

// State is the tracking state of one project.
type State string

const (
	StateStopped State = "stopped"
	StateRunning State = "running"
)

// Options configures a Tracker.
type Options struct {
	// Location is the zone used for day bucket keys. Defaults to time.Local.
	Location *time.Location
}

// Tracker is the per-project start/stop state machine.
//
// A Tracker is not safe for concurrent use. The application loop owns it and
// serializes every host signal through a single goroutine.
type Tracker struct {
	records  model.Snapshot
	active   model.ProjectKey
	running  bool
	location *time.Location
}

// New creates a tracker over an existing snapshot. The snapshot is taken over
// by the tracker; callers must not keep mutating it. Nil records are dropped.
func New(snapshot model.Snapshot, options Options) *Tracker {
	if snapshot == nil {
		snapshot = make(model.Snapshot)
	}
	if options.Location == nil {
		options.Location = time.Local
	}

	t := &Tracker{records: snapshot, location: options.Location}
	for _, key := range snapshot.Keys() {
		if snapshot[key] == nil {
			delete(snapshot, key)
			continue
		}
		if snapshot[key].IsRunning() {
			// Keep the first running record, close the rest without credit.
			if t.running {
				snapshot[key].LastStartTimeMs = nil
				continue
			}
			t.active = key
			t.running = true
		}
	}
	return t
}

// DayKey returns the bucket key for an instant.
func (t *Tracker) DayKey(at time.Time) string {
	return at.In(t.location).Format(util.DayKeyLayout)
}

// Start opens an interval for key. A record is created on first use. Starting
// a running project is a no-op so the original start time is preserved. If
// another project is running it is stopped at now first.
func (t *Tracker) Start(key model.ProjectKey, now time.Time) {
	if t.running && t.active != key {
		t.Stop(t.active, now)
	}

	record, ok := t.records[key]
	if !ok {
		record = model.NewProjectRecord()
		t.records[key] = record
		util.LogDebugf("Created record for project %s", key)
	}
	if record.IsRunning() {
		return
	}

	start := now.UnixMilli()
	record.LastStartTimeMs = &start
	t.active = key
	t.running = true
	util.LogDebugf("Started tracking %s at %d", key, start)
}

// Stop closes the open interval for key and credits it to the total and to
// the day bucket of now. It returns false when nothing was running.
func (t *Tracker) Stop(key model.ProjectKey, now time.Time) bool {
	record, ok := t.records[key]
	if !ok || !record.IsRunning() {
		return false
	}

	elapsed := now.UnixMilli() - *record.LastStartTimeMs
	if elapsed < 0 {
		util.LogWarnf("Clock moved backwards for %s by %dms, crediting nothing", key, -elapsed)
		elapsed = 0
	}

	credit := uint64(elapsed)
	record.TotalTimeMs += credit
	if record.DailyTimesMs == nil {
		record.DailyTimesMs = make(map[string]uint64)
	}
	// Intervals spanning midnight are credited entirely to the end day.
	record.DailyTimesMs[t.DayKey(now)] += credit
	record.LastStartTimeMs = nil

	if t.active == key {
		t.running = false
	}
	util.LogDebugf("Stopped tracking %s, credited %dms", key, credit)
	return true
}

// SwitchProject stops oldKey and starts newKey at the same instant.
func (t *Tracker) SwitchProject(oldKey, newKey model.ProjectKey, now time.Time) {
	t.Stop(oldKey, now)
	t.Start(newKey, now)
}

// CurrentTotalSeconds returns the completed total in whole seconds. ok is
// false when the project has never been tracked. Time of an open interval is
// not included.
func (t *Tracker) CurrentTotalSeconds(key model.ProjectKey) (seconds uint64, ok bool) {
	record, ok := t.records[key]
	if !ok {
		return 0, false
	}
	return record.TotalSeconds(), true
}

// StateOf reports whether key is running.
func (t *Tracker) StateOf(key model.ProjectKey) State {
	if t.records[key].IsRunning() {
		return StateRunning
	}
	return StateStopped
}

// Active returns the running project, if any.
func (t *Tracker) Active() (model.ProjectKey, bool) {
	return t.active, t.running
}

// Record returns a copy of the record for key.
func (t *Tracker) Record(key model.ProjectKey) (*model.ProjectRecord, bool) {
	record, ok := t.records[key]
	if !ok {
		return nil, false
	}
	return record.Clone(), true
}

// Snapshot returns a deep copy of every record for persistence.
func (t *Tracker) Snapshot() model.Snapshot {
	return t.records.Clone()
}
