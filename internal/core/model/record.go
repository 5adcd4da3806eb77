package model

import "github.com/penwyp/go-project-clock/internal/core/constants"

// ProjectRecord is the persisted tracking state of one project.
//
// The JSON field names are the on-disk snapshot format. Records written
// before day buckets existed load with an empty DailyTimesMs.
type ProjectRecord struct {
	TotalTimeMs     uint64            `json:"totalTime"`
	LastStartTimeMs *int64            `json:"lastStartTime"`
	DailyTimesMs    map[string]uint64 `json:"dailyTimes,omitempty"`
}

// NewProjectRecord returns a stopped record with no time.
func NewProjectRecord() *ProjectRecord {
	return &ProjectRecord{DailyTimesMs: make(map[string]uint64)}
}

// IsRunning reports whether an interval is open.
func (r *ProjectRecord) IsRunning() bool {
	return r != nil && r.LastStartTimeMs != nil
}

// TotalSeconds floors the total to whole seconds.
func (r *ProjectRecord) TotalSeconds() uint64 {
	return r.TotalTimeMs / constants.MillisPerSecond
}

// DailySumMs adds up every day bucket.
func (r *ProjectRecord) DailySumMs() uint64 {
	var sum uint64
	for _, ms := range r.DailyTimesMs {
		sum += ms
	}
	return sum
}

// Clone returns a deep copy.
func (r *ProjectRecord) Clone() *ProjectRecord {
	if r == nil {
		return nil
	}
	clone := &ProjectRecord{
		TotalTimeMs:  r.TotalTimeMs,
		DailyTimesMs: make(map[string]uint64, len(r.DailyTimesMs)),
	}
	if r.LastStartTimeMs != nil {
		start := *r.LastStartTimeMs
		clone.LastStartTimeMs = &start
	}
	for day, ms := range r.DailyTimesMs {
		clone.DailyTimesMs[day] = ms
	}
	return clone
}
