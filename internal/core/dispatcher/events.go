package dispatcher

import (
	"time"

	"github.com/penwyp/go-project-clock/internal/core/model"
)

// EventKind names a host signal.
type EventKind string

const (
	EventFocusGained    EventKind = "focus_gained"
	EventFocusLost      EventKind = "focus_lost"
	EventProjectChanged EventKind = "project_changed"
	EventTick           EventKind = "tick"
	EventShowStats      EventKind = "show_stats"
	EventShutdown       EventKind = "shutdown"
)

// Kinds lists every kind the tracker understands.
var Kinds = []EventKind{
	EventFocusGained,
	EventFocusLost,
	EventProjectChanged,
	EventTick,
	EventShowStats,
	EventShutdown,
}

// Valid reports whether k is a known kind.
func (k EventKind) Valid() bool {
	for _, kind := range Kinds {
		if kind == k {
			return true
		}
	}
	return false
}

// Event is one host signal. Project is only set for EventProjectChanged.
type Event struct {
	Kind    EventKind
	Project model.ProjectKey
	At      time.Time
}
