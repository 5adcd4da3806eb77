package store

import (
	"testing"
	"time"

	"github.com/penwyp/go-project-clock/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotWatcherSeesSave(t *testing.T) {
	s := newTestStore(t)
	sw, err := s.NewSnapshotWatcher()
	require.NoError(t, err)
	defer sw.Close()

	require.NoError(t, s.SaveSnapshot(model.Snapshot{"alpha": model.NewProjectRecord()}))

	select {
	case event, ok := <-sw.Events():
		require.True(t, ok)
		assert.Equal(t, s.SnapshotPath(), event.Path)
	case <-time.After(5 * time.Second):
		t.Fatal("no snapshot event received")
	}
}

func TestSnapshotWatcherCloseEndsEvents(t *testing.T) {
	sw, err := newTestStore(t).NewSnapshotWatcher()
	require.NoError(t, err)

	require.NoError(t, sw.Close())

	select {
	case _, ok := <-sw.Events():
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("events channel not closed")
	}
}

func TestSnapshotWatcherCloseTwice(t *testing.T) {
	sw, err := newTestStore(t).NewSnapshotWatcher()
	require.NoError(t, err)

	require.NoError(t, sw.Close())
	assert.NotPanics(t, func() {
		assert.NoError(t, sw.Close())
	})
}
