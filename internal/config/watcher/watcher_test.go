package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func newWatcher(t *testing.T, opts ...Option) *Watcher {
	t.Helper()
	w, err := New(opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = w.Close() })
	return w
}

// collect records delivered events.
type collect struct {
	mu     sync.Mutex
	events []Event
	ch     chan struct{}
}

func newCollect() *collect {
	return &collect{ch: make(chan struct{}, 16)}
}

func (c *collect) handle(e Event) {
	c.mu.Lock()
	c.events = append(c.events, e)
	c.mu.Unlock()
	select {
	case c.ch <- struct{}{}:
	default:
	}
}

func (c *collect) wait(t *testing.T) {
	t.Helper()
	select {
	case <-c.ch:
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func (c *collect) snapshot() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Event(nil), c.events...)
}

func TestOperation_String(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OpWrite, "write"},
		{OpCreate, "create"},
		{OpRemove, "remove"},
		{OpRename, "rename"},
		{Operation(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestConvertOp(t *testing.T) {
	tests := []struct {
		in     fsnotify.Op
		want   Operation
		wantOK bool
	}{
		{fsnotify.Write, OpWrite, true},
		{fsnotify.Create, OpCreate, true},
		{fsnotify.Create | fsnotify.Write, OpCreate, true},
		{fsnotify.Remove, OpRemove, true},
		{fsnotify.Rename, OpRename, true},
		{fsnotify.Chmod, 0, false},
	}

	for _, tt := range tests {
		got, ok := convertOp(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("convertOp(%v) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestWatcher_WatchUnwatch(t *testing.T) {
	tmpDir := t.TempDir()
	w := newWatcher(t)

	a := filepath.Join(tmpDir, "a.json")
	b := filepath.Join(tmpDir, "b.md")
	if err := w.Watch(a); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	if err := w.Watch(b); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	if err := w.Watch(a); err != nil {
		t.Fatalf("Watch() twice error = %v", err)
	}

	if got := len(w.WatchedFiles()); got != 2 {
		t.Errorf("WatchedFiles() = %d files, want 2", got)
	}
	if got := w.dirs[filepath.Clean(tmpDir)]; got != 2 {
		t.Errorf("dir refcount = %d, want 2", got)
	}

	if err := w.Unwatch(a); err != nil {
		t.Errorf("Unwatch() error = %v", err)
	}
	if err := w.Unwatch(b); err != nil {
		t.Errorf("Unwatch() error = %v", err)
	}
	if len(w.dirs) != 0 {
		t.Errorf("dirs = %v, want empty", w.dirs)
	}
}

func TestWatcher_WatchMissingDir(t *testing.T) {
	w := newWatcher(t)
	if err := w.Watch(filepath.Join(t.TempDir(), "nope", "x.json")); err == nil {
		t.Error("Watch() in a missing directory should fail")
	}
}

func TestWatcher_Closed(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if err := w.Watch("x"); !errors.Is(err, ErrClosed) {
		t.Errorf("Watch() after Close = %v, want ErrClosed", err)
	}
}

func TestWatcher_Write(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "data.json")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	w := newWatcher(t, WithDebounce(0))
	c := newCollect()
	w.OnChange(c.handle)
	if err := w.Watch(path); err != nil {
		t.Fatal(err)
	}

	// Unrelated files in the same directory are ignored.
	if err := os.WriteFile(filepath.Join(tmpDir, "other.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(`{"a": 1}`), 0o644); err != nil {
		t.Fatal(err)
	}
	c.wait(t)

	for _, e := range c.snapshot() {
		if filepath.Base(e.Path) != "data.json" {
			t.Errorf("event for unwatched file %s", e.Path)
		}
	}
}

func TestWatcher_DebounceCoalesces(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "notes.md")

	w := newWatcher(t, WithDebounce(50*time.Millisecond))
	c := newCollect()
	w.OnChange(c.handle)
	if err := w.Watch(path); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte{byte('a' + i)}, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	c.wait(t)
	time.Sleep(150 * time.Millisecond)

	events := c.snapshot()
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1: %v", len(events), events)
	}
	if events[0].Op != OpCreate {
		t.Errorf("Op = %v, want create", events[0].Op)
	}
}

func TestWatcher_AtomicSave(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "data.json")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	w := newWatcher(t, WithDebounce(50*time.Millisecond))
	c := newCollect()
	w.OnChange(c.handle)
	if err := w.Watch(path); err != nil {
		t.Fatal(err)
	}

	tmp := filepath.Join(tmpDir, ".data.json.tmp")
	if err := os.WriteFile(tmp, []byte(`{"x": true}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}
	c.wait(t)

	events := c.snapshot()
	if events[len(events)-1].Op == OpRemove {
		t.Errorf("atomic save reported as remove")
	}
}

func TestQueueEvent(t *testing.T) {
	tests := []struct {
		name string
		ops  []Operation
		want Operation
	}{
		{"create write", []Operation{OpCreate, OpWrite}, OpCreate},
		{"write write", []Operation{OpWrite, OpWrite}, OpWrite},
		{"remove create", []Operation{OpRemove, OpCreate}, OpCreate},
		{"rename create", []Operation{OpRename, OpCreate}, OpCreate},
		{"write remove", []Operation{OpWrite, OpRemove}, OpRemove},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &Watcher{pending: make(map[string]queued)}
			for _, op := range tt.ops {
				w.enqueue(Event{Path: "/f", Op: op, Time: time.Now()})
			}
			if got := w.pending["/f"].Op; got != tt.want {
				t.Errorf("coalesced op = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDeliverRecoversPanics(t *testing.T) {
	w := &Watcher{}
	called := false
	w.handlers = []Handler{
		func(Event) { panic("boom") },
		func(Event) { called = true },
	}

	w.deliver(Event{Path: "/f"})
	if !called {
		t.Error("handler after a panicking handler was not called")
	}
}
