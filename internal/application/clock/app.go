package clock

import (
	"context"
	"fmt"
	"time"

	"github.com/penwyp/go-project-clock/internal/core/dispatcher"
	"github.com/penwyp/go-project-clock/internal/core/model"
	"github.com/penwyp/go-project-clock/internal/core/tracker"
	"github.com/penwyp/go-project-clock/internal/data/aggregator"
	"github.com/penwyp/go-project-clock/internal/util"
)

// App wires host signals to the tracker and persists its state.
type App struct {
	config *Config

	tracker    *tracker.Tracker
	dispatcher *dispatcher.Dispatcher
	aggregator *aggregator.Aggregator
	state      *StateManager

	store    SnapshotStore
	notifier HostNotifier
	location *time.Location
	now      func() time.Time
}

// NewApp loads the persisted snapshot and registers the event handlers.
func NewApp(config *Config, store SnapshotStore, notifier HostNotifier) (*App, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	provider, err := util.NewTimeProvider(config.Timezone)
	if err != nil {
		return nil, err
	}
	location := provider.Location()

	app := &App{
		config:     config,
		tracker:    tracker.New(store.Load(), tracker.Options{Location: location}),
		dispatcher: dispatcher.New(),
		aggregator: aggregator.New(location),
		state:      NewStateManager(config.Project),
		store:      store,
		notifier:   notifier,
		location:   location,
		now:        time.Now,
	}

	if err := app.registerHandlers(); err != nil {
		return nil, err
	}
	return app, nil
}

// SetClock replaces the time source. Tests use it to drive the loop.
func (a *App) SetClock(now func() time.Time) {
	a.now = now
}

func (a *App) State() *StateManager { return a.state }

func (a *App) Tracker() *tracker.Tracker { return a.tracker }

func (a *App) Dispatcher() *dispatcher.Dispatcher { return a.dispatcher }

// Activate starts tracking the configured project, as the editor does when
// the extension loads.
func (a *App) Activate() {
	project := a.state.Project()
	util.LogInfof("Activating tracker for project %s", project)
	a.tracker.Start(project, a.now())
	a.refreshDisplay()
}

// Run processes events until a shutdown event arrives, the events channel is
// closed, or ctx is done. Every path ends with the teardown sequence.
func (a *App) Run(ctx context.Context, events <-chan dispatcher.Event) error {
	a.Activate()

	ticker := time.NewTicker(a.config.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			util.LogInfo("Context cancelled, shutting down tracker")
			a.Handle(dispatcher.Event{Kind: dispatcher.EventShutdown})
			return nil

		case event, ok := <-events:
			if !ok {
				a.Handle(dispatcher.Event{Kind: dispatcher.EventShutdown})
				return nil
			}
			a.Handle(event)
			if event.Kind == dispatcher.EventShutdown {
				return nil
			}

		case <-ticker.C:
			a.Handle(dispatcher.Event{Kind: dispatcher.EventTick})
		}
	}
}

// Handle stamps event with the current time when needed and dispatches it.
func (a *App) Handle(event dispatcher.Event) {
	if event.At.IsZero() {
		event.At = a.now()
	}
	a.dispatcher.Dispatch(event)
}

// GetDisplayText renders the status text for key from completed time.
func (a *App) GetDisplayText(key model.ProjectKey) string {
	seconds, ok := a.tracker.CurrentTotalSeconds(key)
	return util.FormatDisplayText(a.config.Icon, seconds, ok)
}

// GetWeeklyChartData returns Sunday..Saturday of the current week for key.
func (a *App) GetWeeklyChartData(key model.ProjectKey) aggregator.ChartData {
	record, _ := a.tracker.Record(key)
	return a.aggregator.WeeklyChart(record, a.now())
}

func (a *App) refreshDisplay() {
	text := a.GetDisplayText(a.state.Project())
	if !a.state.SetDisplayText(text) {
		return
	}
	if err := a.notifier.Status(text); err != nil {
		util.LogWarnf("Failed to send status to host: %v", err)
	}
}

// persist never fails the caller; a failed write is logged and the in-memory
// state stays authoritative until the next save.
func (a *App) persist(key model.ProjectKey, at time.Time) {
	if err := a.store.Save(key, a.tracker.Snapshot(), at); err != nil {
		util.LogErrorf("Failed to persist project times for %s: %v", key, err)
		return
	}
	a.state.SetLastPersist(at)
}
