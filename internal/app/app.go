package app

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/dshills/compactlinks/internal/compact"
	"github.com/dshills/compactlinks/internal/config"
	"github.com/dshills/compactlinks/internal/config/watcher"
	"github.com/dshills/compactlinks/internal/logging"
	"github.com/dshills/compactlinks/internal/renderer"
	"github.com/dshills/compactlinks/internal/renderer/backend"
	"github.com/dshills/compactlinks/internal/syntax"
	"github.com/dshills/compactlinks/internal/view"
	"github.com/dshills/compactlinks/internal/view/adapter"
	"github.com/dshills/compactlinks/internal/viewport"
)

// Options configures the application.
type Options struct {
	// Config is the loaded tool configuration.
	Config config.FileConfig

	// ConfigPath is the file Config was loaded from. When Config has no
	// SettingsPath, changes to this file reload the link settings.
	ConfigPath string

	// Logger receives application logs. Nil discards them.
	Logger *logging.Logger

	// SourceMode starts the view in raw source mode.
	SourceMode bool

	// Watch reloads the document and settings when their files change.
	Watch bool

	// Theme styles the decorations. The zero value uses DefaultTheme.
	Theme *renderer.Theme
}

// Interrupt payloads posted to the event loop from other goroutines.
type (
	reloadDocument struct{}
	reloadSettings struct{}
)

// Application is a single-document terminal viewer. It implements
// view.View for its adapter.
type Application struct {
	backend backend.Backend
	painter *renderer.Painter
	scroll  *renderer.Scroller
	doc     *Document
	adapter *adapter.Adapter
	watcher *watcher.Watcher

	opts    Options
	logger  *logging.Logger
	metrics *Metrics

	sel     view.Selection
	pending view.Update

	// cols holds the column map of every drawn row from the last frame.
	cols    [][]int
	message string

	running atomic.Bool
}

// New creates an application showing doc on b. The backend must already
// be initialized; the caller shuts it down.
func New(b backend.Backend, doc *Document, opts Options) (*Application, error) {
	if b == nil {
		return nil, ErrNoBackend
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Null()
	}
	theme := renderer.DefaultTheme()
	if opts.Theme != nil {
		theme = *opts.Theme
	}

	_, h := b.Size()
	app := &Application{
		backend: b,
		painter: renderer.NewPainter(b, theme),
		scroll:  renderer.NewScroller(h-1, doc.LineCount()),
		doc:     doc,
		opts:    opts,
		logger:  logger.WithComponent("app"),
		metrics: NewMetrics(),
		sel:     view.Cursor(0),
	}

	a, err := adapter.New(app, opts.Config.Settings,
		adapter.WithLogger(logger),
		adapter.WithEngineOptions(
			compact.WithLogger(logger),
			compact.WithThreshold(opts.Config.Threshold),
			compact.WithCapacity(opts.Config.CacheCapacity),
		),
	)
	if err != nil {
		return nil, &InitError{Component: "adapter", Err: err}
	}
	app.adapter = a

	if opts.SourceMode {
		if err := a.SetSourceMode(true); err != nil {
			a.Close()
			return nil, &InitError{Component: "adapter", Err: err}
		}
	}

	if opts.Watch {
		if err := app.startWatcher(); err != nil {
			a.Close()
			return nil, &InitError{Component: "watcher", Err: err}
		}
	}

	app.logger.Info("opened %s", doc)
	return app, nil
}

// startWatcher watches the document and the settings source. Change
// notifications are posted to the event loop so reloads run on its
// goroutine.
func (app *Application) startWatcher() error {
	w, err := watcher.New(watcher.WithErrorHandler(func(err error) {
		app.logger.Warn("watcher: %v", err)
	}))
	if err != nil {
		return err
	}

	settingsPath := app.settingsSource()
	if settingsPath != "" {
		if abs, err := filepath.Abs(settingsPath); err == nil {
			settingsPath = abs
		}
	}
	w.OnChange(func(ev watcher.Event) {
		if ev.Op == watcher.OpRemove || ev.Op == watcher.OpRename {
			return
		}
		var data any
		switch ev.Path {
		case app.doc.Path:
			data = reloadDocument{}
		case settingsPath:
			data = reloadSettings{}
		default:
			return
		}
		if err := app.backend.PostEvent(data); err != nil {
			app.logger.Warn("dropped %s notification for %s: %v", ev.Op, ev.Path, err)
		}
	})

	for _, p := range []string{app.doc.Path, settingsPath} {
		if p == "" {
			continue
		}
		if err := w.Watch(p); err != nil {
			w.Close()
			return err
		}
	}
	app.watcher = w
	return nil
}

// settingsSource returns the file the link settings come from.
func (app *Application) settingsSource() string {
	if app.opts.Config.SettingsPath != "" {
		return app.opts.Config.SettingsPath
	}
	return app.opts.ConfigPath
}

// Run runs the event loop until the user quits or ctx is cancelled.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	stop := context.AfterFunc(ctx, func() {
		_ = app.backend.PostEvent(ctx.Err())
	})
	defer stop()

	app.Render()
	for {
		ev := app.backend.PollEvent()
		if ev.Type == backend.EventInterrupt {
			if err, ok := ev.Data.(error); ok && ctx.Err() != nil {
				app.logger.Info("stopping: %v", err)
				return nil
			}
		}

		err := app.HandleEvent(ev)
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			app.logger.Error("%v", err)
			app.message = err.Error()
		}
		app.Render()
	}
}

// Close releases the adapter and the file watcher.
func (app *Application) Close() {
	if app.watcher != nil {
		if err := app.watcher.Close(); err != nil {
			app.logger.Warn("closing watcher: %v", err)
		}
		app.watcher = nil
	}
	app.adapter.Close()
	app.logger.Info("session: %s", app.metrics.Snapshot())
}

// Document returns the open document.
func (app *Application) Document() *Document {
	return app.doc
}

// Adapter returns the decoration adapter.
func (app *Application) Adapter() *adapter.Adapter {
	return app.adapter
}

// Metrics returns the application's metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// Message returns the status message shown on the last frame.
func (app *Application) Message() string {
	return app.message
}

// VisibleRanges returns the document range of the lines on screen.
func (app *Application) VisibleRanges() viewport.Ranges {
	first, end := app.scroll.Visible()
	if end <= first {
		return nil
	}
	return viewport.Ranges{{From: app.doc.LineStart(first), To: app.doc.LineEnd(end - 1)}}
}

// Selection returns the main selection.
func (app *Application) Selection() view.Selection {
	return app.sel
}

// SliceString returns document text.
func (app *Application) SliceString(from, to int) string {
	return app.doc.SliceString(from, to)
}

// Tree returns the document's syntax tree.
func (app *Application) Tree() syntax.Tree {
	return app.doc.Tree()
}

// Dispatch applies a transaction from the adapter.
func (app *Application) Dispatch(tr view.Transaction) {
	if tr.Selection == nil {
		return
	}
	app.setSelection(*tr.Selection)
	if tr.ScrollIntoView {
		app.reveal(app.sel.Head)
	}
}

// flush sends the changes accumulated while handling an event to the adapter.
func (app *Application) flush() {
	u := app.pending
	app.pending = view.Update{}
	if !u.DocChanged && !u.SelectionSet && !u.ViewportChanged {
		return
	}
	u.View = app

	start := time.Now()
	rebuilt := app.adapter.Update(u)
	app.metrics.RecordUpdate(time.Since(start), rebuilt)
}

func (app *Application) setSelection(sel view.Selection) {
	app.sel = sel
	app.pending.SelectionSet = true
}

// reveal scrolls pos into view.
func (app *Application) reveal(pos int) {
	if app.scroll.Reveal(app.doc.LineOf(pos)) {
		app.pending.ViewportChanged = true
	}
}
