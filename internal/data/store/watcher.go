package store

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/penwyp/go-project-clock/internal/util"
)

// SnapshotEvent reports a change of the snapshot file.
type SnapshotEvent struct {
	Path      string
	Operation string
}

// SnapshotWatcher notifies when the snapshot file is rewritten. The data
// directory is watched rather than the file because saves replace the file
// through a rename.
type SnapshotWatcher struct {
	watcher *fsnotify.Watcher
	target  string
	events  chan SnapshotEvent
	done    chan struct{}

	closeOnce sync.Once
	closeErr  error
}

// NewSnapshotWatcher starts watching the directory of the store's snapshot.
func (s *Store) NewSnapshotWatcher() (*SnapshotWatcher, error) {
	if err := os.MkdirAll(s.dataDir, 0755); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(s.dataDir); err != nil {
		watcher.Close()
		return nil, err
	}

	sw := &SnapshotWatcher{
		watcher: watcher,
		target:  filepath.Clean(s.snapshotPath),
		events:  make(chan SnapshotEvent, 16),
		done:    make(chan struct{}),
	}
	go sw.processEvents()
	return sw, nil
}

func (sw *SnapshotWatcher) processEvents() {
	defer close(sw.events)
	for {
		select {
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != sw.target {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
				continue
			}
			select {
			case sw.events <- SnapshotEvent{Path: event.Name, Operation: event.Op.String()}:
			case <-sw.done:
				return
			default:
				// A pending notification already covers this change.
			}

		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			util.LogError("Snapshot watch error: " + err.Error())

		case <-sw.done:
			return
		}
	}
}

// Events is closed after Close.
func (sw *SnapshotWatcher) Events() <-chan SnapshotEvent {
	return sw.events
}

// Close stops the watcher. Later calls return the first result.
func (sw *SnapshotWatcher) Close() error {
	sw.closeOnce.Do(func() {
		close(sw.done)
		sw.closeErr = sw.watcher.Close()
	})
	return sw.closeErr
}
