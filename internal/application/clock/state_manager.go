package clock

import (
	"sync"
	"time"

	"github.com/penwyp/go-project-clock/internal/core/model"
)

// StateManager holds the values the presentation side reads while the loop
// runs.
type StateManager struct {
	mu sync.RWMutex

	project     model.ProjectKey
	displayText string
	lastPersist time.Time
}

func NewStateManager(project model.ProjectKey) *StateManager {
	return &StateManager{project: project}
}

// Project returns the workspace currently in focus.
func (sm *StateManager) Project() model.ProjectKey {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.project
}

func (sm *StateManager) SetProject(project model.ProjectKey) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.project = project
}

// SetDisplayText stores text and reports whether it changed.
func (sm *StateManager) SetDisplayText(text string) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.displayText == text {
		return false
	}
	sm.displayText = text
	return true
}

func (sm *StateManager) LastPersist() time.Time {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.lastPersist
}

func (sm *StateManager) SetLastPersist(at time.Time) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.lastPersist = at
}
