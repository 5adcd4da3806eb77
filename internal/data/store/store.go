package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-project-clock/internal/core/model"
	"github.com/penwyp/go-project-clock/internal/util"
)

// Store persists the snapshot of all projects and the per-project reports.
type Store struct {
	dataDir      string
	reportDir    string
	snapshotPath string
	location     *time.Location
}

// New creates a store rooted at dataDir. An empty reportDir places reports in
// dataDir/reports. Directories are created on the first write.
func New(dataDir, reportDir string, location *time.Location) *Store {
	if reportDir == "" {
		reportDir = filepath.Join(dataDir, model.ReportDirName)
	}
	if location == nil {
		location = time.Local
	}
	return &Store{
		dataDir:      dataDir,
		reportDir:    reportDir,
		snapshotPath: filepath.Join(dataDir, model.SnapshotFileName),
		location:     location,
	}
}

func (s *Store) SnapshotPath() string { return s.snapshotPath }

func (s *Store) ReportDir() string { return s.reportDir }

// ReportPath returns where the report of key is written.
func (s *Store) ReportPath(key model.ProjectKey) string {
	return filepath.Join(s.reportDir, SanitizeName(key)+model.ReportExtension)
}

// CorruptSuffix is appended to a snapshot that cannot be parsed at all.
const CorruptSuffix = ".corrupt"

// errCorrupt marks a snapshot file that is not a JSON object.
var errCorrupt = errors.New("corrupt snapshot")

// wireRecord is the lenient on-disk shape of a record. Older writers stored
// unclamped, possibly negative, millisecond values.
type wireRecord struct {
	TotalTime     float64            `json:"totalTime"`
	LastStartTime *float64           `json:"lastStartTime"`
	DailyTimes    map[string]float64 `json:"dailyTimes"`
}

// Load reads the snapshot. A missing or unreadable snapshot yields an empty
// one; the caller always gets a usable value. A file that is not a JSON
// object is moved aside so the next save cannot overwrite it.
func (s *Store) Load() model.Snapshot {
	snapshot, err := s.readSnapshot()
	if err != nil {
		if errors.Is(err, errCorrupt) {
			s.quarantine()
		}
		util.LogWarnf("Starting with empty project times: %v", err)
		return make(model.Snapshot)
	}

	for _, key := range snapshot.Normalize() {
		util.LogWarnf("Discarded unfinished interval for project %s", key)
	}
	util.LogInfof("Loaded %d project records from %s", len(snapshot), s.snapshotPath)
	return snapshot
}

// LoadRecord returns the persisted record of key.
func (s *Store) LoadRecord(key model.ProjectKey) (*model.ProjectRecord, bool) {
	record, ok := s.Load()[key]
	return record, ok
}

func (s *Store) readSnapshot() (model.Snapshot, error) {
	data, err := os.ReadFile(s.snapshotPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("no snapshot at %s", s.snapshotPath)
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w %s: %v", errCorrupt, s.snapshotPath, err)
	}

	snapshot := make(model.Snapshot, len(raw))
	for key, body := range raw {
		record, err := decodeRecord(body)
		if err != nil {
			util.LogWarnf("Skip unreadable record for project %s: %v", key, err)
			continue
		}
		snapshot[model.ProjectKey(key)] = record
	}
	return snapshot, nil
}

// decodeRecord parses one record, clamping negative values to zero.
func decodeRecord(body []byte) (*model.ProjectRecord, error) {
	var wire *wireRecord
	if err := sonic.Unmarshal(body, &wire); err != nil {
		return nil, err
	}
	if wire == nil {
		return nil, nil
	}

	record := model.NewProjectRecord()
	record.TotalTimeMs = clampMillis(wire.TotalTime)
	if wire.LastStartTime != nil {
		start := int64(*wire.LastStartTime)
		record.LastStartTimeMs = &start
	}
	for day, ms := range wire.DailyTimes {
		record.DailyTimesMs[day] = clampMillis(ms)
	}
	return record, nil
}

func clampMillis(ms float64) uint64 {
	if ms <= 0 {
		return 0
	}
	return uint64(ms)
}

func (s *Store) quarantine() {
	target := s.snapshotPath + CorruptSuffix
	if err := os.Rename(s.snapshotPath, target); err != nil {
		util.LogErrorf("Failed to move corrupt snapshot aside: %v", err)
		return
	}
	util.LogWarnf("Moved corrupt snapshot to %s", target)
}

// SaveSnapshot writes every record atomically.
func (s *Store) SaveSnapshot(snapshot model.Snapshot) error {
	raw := make(map[string]*model.ProjectRecord, len(snapshot))
	for key, record := range snapshot {
		if record != nil {
			raw[string(key)] = record
		}
	}

	data, err := sonic.ConfigStd.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := writeFileAtomic(s.snapshotPath, data); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	util.LogDebugf("Saved %d project records to %s", len(raw), s.snapshotPath)
	return nil
}

// SaveReport overwrites the human-readable report of key.
func (s *Store) SaveReport(key model.ProjectKey, record *model.ProjectRecord, now time.Time) error {
	if record == nil {
		return fmt.Errorf("no record for project %s", key)
	}

	content := RenderReport(key, record, now.In(s.location))
	if err := writeFileAtomic(s.ReportPath(key), []byte(content)); err != nil {
		return fmt.Errorf("failed to save report for %s: %w", key, err)
	}
	return nil
}

// Save writes the snapshot and then the report of key.
func (s *Store) Save(key model.ProjectKey, snapshot model.Snapshot, now time.Time) error {
	if err := s.SaveSnapshot(snapshot); err != nil {
		return err
	}
	record, ok := snapshot[key]
	if !ok {
		return nil
	}
	return s.SaveReport(key, record, now)
}

func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return err
	}
	return nil
}
