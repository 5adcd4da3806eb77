package clock

import (
	"fmt"

	"github.com/penwyp/go-project-clock/internal/core/dispatcher"
	"github.com/penwyp/go-project-clock/internal/util"
)

const noDataMessage = "No data for the current project."

func (a *App) registerHandlers() error {
	handlers := map[dispatcher.EventKind]dispatcher.HandlerFunc{
		dispatcher.EventFocusGained:    a.onFocusGained,
		dispatcher.EventFocusLost:      a.onFocusLost,
		dispatcher.EventProjectChanged: a.onProjectChanged,
		dispatcher.EventTick:           a.onTick,
		dispatcher.EventShowStats:      a.onShowStats,
		dispatcher.EventShutdown:       a.onShutdown,
	}
	for _, kind := range dispatcher.Kinds {
		if err := a.dispatcher.RegisterHandler(kind, handlers[kind]); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) onFocusGained(e dispatcher.Event) {
	a.tracker.Start(a.state.Project(), e.At)
	a.refreshDisplay()
}

func (a *App) onFocusLost(e dispatcher.Event) {
	project := a.state.Project()
	if a.tracker.Stop(project, e.At) {
		a.persist(project, e.At)
	}
	a.refreshDisplay()
}

func (a *App) onProjectChanged(e dispatcher.Event) {
	previous := a.state.Project()
	util.LogInfof("Active project changed from %s to %s", previous, e.Project)

	// Stop and persist before the new project starts so the snapshot never
	// holds two running records.
	if a.tracker.Stop(previous, e.At) {
		a.persist(previous, e.At)
	}
	a.tracker.Start(e.Project, e.At)
	a.state.SetProject(e.Project)
	a.refreshDisplay()
}

// onTick only re-renders; starting or stopping here would move the open
// interval's start time.
func (a *App) onTick(dispatcher.Event) {
	a.refreshDisplay()
}

// onShowStats reports the up-to-date total without losing the running
// interval: stop, report, start again. A stopped project stays stopped.
func (a *App) onShowStats(e dispatcher.Event) {
	project := a.state.Project()
	wasRunning := a.tracker.Stop(project, e.At)
	if wasRunning {
		a.persist(project, e.At)
	}

	message := noDataMessage
	if seconds, ok := a.tracker.CurrentTotalSeconds(project); ok {
		message = fmt.Sprintf("You spent %s in project %s", util.FormatDuration(seconds), project)
	}
	if err := a.notifier.Notify(message); err != nil {
		util.LogWarnf("Failed to send notification to host: %v", err)
	}

	if wasRunning {
		a.tracker.Start(project, e.At)
	}
	a.refreshDisplay()
}

func (a *App) onShutdown(e dispatcher.Event) {
	project := a.state.Project()
	if active, running := a.tracker.Active(); running {
		project = active
	}
	a.tracker.Stop(project, e.At)
	a.persist(project, e.At)
	a.refreshDisplay()

	if a.state.LastPersist().IsZero() {
		util.LogWarnf("Tracker shut down without saving project times for %s", project)
		return
	}
	util.LogInfof("Tracker shut down, project %s saved", project)
}
