package watch

import (
	"testing"

	"github.com/fsnotify/fsnotify"

	"github.com/c360studio/semlint/config"
)

func newTestWatcher(t *testing.T) *Watcher {
	t.Helper()
	w, err := New(config.DefaultConfig().Watch, t.TempDir(), nil, nil, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = w.watcher.Close() })
	return w
}

func TestHandleFSEventMarksJSONWritesPending(t *testing.T) {
	w := newTestWatcher(t)

	w.handleFSEvent(fsnotify.Event{Name: "api/a.model.json", Op: fsnotify.Write})

	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()
	if !w.pending {
		t.Error("expected pending lint after .json write")
	}
}

func TestHandleFSEventIgnoresOtherFiles(t *testing.T) {
	w := newTestWatcher(t)

	w.handleFSEvent(fsnotify.Event{Name: "notes/readme.md", Op: fsnotify.Write})
	w.handleFSEvent(fsnotify.Event{Name: "api/a.model.json", Op: fsnotify.Chmod})

	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()
	if w.pending {
		t.Error("unexpected pending lint for irrelevant events")
	}
}

func TestFlushPendingClearsFlag(t *testing.T) {
	w := newTestWatcher(t)

	// No pending change: flush must not invoke the (nil) runner.
	w.flushPending()

	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()
	if w.pending {
		t.Error("pending should stay clear")
	}
}
