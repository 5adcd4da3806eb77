package clock

import (
	"time"

	"github.com/penwyp/go-project-clock/internal/core/model"
)

// SnapshotStore persists tracker state.
type SnapshotStore interface {
	// Load returns the persisted snapshot, empty when none is usable
	Load() model.Snapshot
	// Save writes the snapshot and the report of key
	Save(key model.ProjectKey, snapshot model.Snapshot, now time.Time) error
}

// HostNotifier delivers output to the editor.
type HostNotifier interface {
	// Status replaces the status bar text
	Status(text string) error
	// Notify shows a transient notification
	Notify(text string) error
}
