// Package adapter binds the per-kind decoration engines to one editor view.
//
// The host calls Update from its update loop and paints Decorations. A
// click on a decoration is turned into a selection over the decorated
// span, which moves the cursor inside it and so reveals the raw text on
// the next rebuild.
package adapter

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/compactlinks/internal/compact"
	"github.com/dshills/compactlinks/internal/config"
	"github.com/dshills/compactlinks/internal/decoration"
	"github.com/dshills/compactlinks/internal/logging"
	"github.com/dshills/compactlinks/internal/script"
	"github.com/dshills/compactlinks/internal/view"
)

// Adapter owns one engine per enabled span kind for a single view.
type Adapter struct {
	id       uuid.UUID
	view     view.View
	settings config.Settings

	engines []*compact.Engine
	scripts []*script.Formatter

	sourceMode bool
	altText    bool
	engineOpts []compact.Option
	logger     *logging.Logger

	decorations decoration.Set
	closed      bool
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the logger passed to the engines.
func WithLogger(l *logging.Logger) Option {
	return func(a *Adapter) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithEngineOptions passes options to every engine the adapter creates.
func WithEngineOptions(opts ...compact.Option) Option {
	return func(a *Adapter) {
		a.engineOpts = append(a.engineOpts, opts...)
	}
}

// WithTextAltScan finds alt text by scanning raw text instead of the tree.
func WithTextAltScan() Option {
	return func(a *Adapter) {
		a.altText = true
	}
}

// New creates an adapter for v and builds the initial decorations. It
// fails only when a custom display script cannot be compiled.
func New(v view.View, s config.Settings, opts ...Option) (*Adapter, error) {
	a := &Adapter{
		id:          uuid.New(),
		view:        v,
		settings:    s,
		logger:      logging.Null(),
		decorations: decoration.Empty,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.WithComponent("adapter").WithField("view", a.id.String()[:8])

	if err := a.register(); err != nil {
		return nil, err
	}
	return a, nil
}

// ID returns the adapter's instance ID.
func (a *Adapter) ID() uuid.UUID {
	return a.id
}

// Settings returns the settings snapshot in use.
func (a *Adapter) Settings() config.Settings {
	return a.settings
}

// Engines returns the running engines.
func (a *Adapter) Engines() []*compact.Engine {
	return a.engines
}

// Decorations returns the merged decorations of every engine.
func (a *Adapter) Decorations() decoration.Set {
	return a.decorations
}

// Update forwards a view update to every engine and reports whether any
// of them rebuilt.
func (a *Adapter) Update(u view.Update) bool {
	if a.closed {
		return false
	}
	if u.View != nil {
		a.view = u.View
	}

	changed := false
	for _, e := range a.engines {
		if e.Update(u) {
			changed = true
		}
	}
	if changed {
		a.merge()
	}
	return changed
}

// Reveal handles a click at pos. When a decoration covers pos, the view's
// selection is set to the decorated span without scrolling and Reveal
// returns true.
func (a *Adapter) Reveal(pos int) bool {
	if a.closed {
		return false
	}
	d, ok := a.decorations.Find(pos)
	if !ok {
		return false
	}
	sel := view.Selection{From: d.Reveal.Start, To: d.Reveal.End, Head: d.Reveal.End}
	a.view.Dispatch(view.Transaction{Selection: &sel, ScrollIntoView: false})
	a.logger.Debug("revealed %s at %d-%d", d.Kind, d.Reveal.Start, d.Reveal.End)
	return true
}

// Reconfigure replaces the settings. Engines are destroyed and created
// again for the kinds enabled in s. On error the previous configuration
// stays in place.
func (a *Adapter) Reconfigure(s config.Settings) error {
	if a.closed {
		return nil
	}
	prev := a.settings
	a.settings = s

	oldEngines, oldScripts := a.engines, a.scripts
	a.engines, a.scripts = nil, nil
	if err := a.register(); err != nil {
		a.settings = prev
		a.engines, a.scripts = oldEngines, oldScripts
		return err
	}
	teardown(oldEngines, oldScripts)
	a.logger.Info("reconfigured with %d engines", len(a.engines))
	return nil
}

// SetSourceMode tells the adapter whether the view shows raw source. With
// DisableInSourceMode set, source mode removes every engine.
func (a *Adapter) SetSourceMode(on bool) error {
	if a.closed || a.sourceMode == on {
		return nil
	}
	a.sourceMode = on
	if !a.settings.DisableInSourceMode {
		return nil
	}
	return a.Reconfigure(a.settings)
}

// SourceMode reports whether the view is in source mode.
func (a *Adapter) SourceMode() bool {
	return a.sourceMode
}

// Close destroys every engine and releases script states.
func (a *Adapter) Close() {
	if a.closed {
		return
	}
	teardown(a.engines, a.scripts)
	a.engines, a.scripts = nil, nil
	a.decorations = decoration.Empty
	a.view = nil
	a.closed = true
}

// register creates the engines for the current settings.
func (a *Adapter) register() error {
	if a.sourceMode && a.settings.DisableInSourceMode {
		a.decorations = decoration.Empty
		return nil
	}

	opts := append([]compact.Option{compact.WithLogger(a.logger)}, a.engineOpts...)
	for _, kind := range decoration.Kinds {
		l := a.settings.For(kind)
		if !l.Enable {
			continue
		}

		var f compact.Formatter
		if l.DisplayMode == config.DisplayCustom {
			sf, err := script.Compile(l.Script)
			if err != nil {
				teardown(a.engines, a.scripts)
				a.engines, a.scripts = nil, nil
				return fmt.Errorf("compiling %s display script: %w", kind, err)
			}
			a.scripts = append(a.scripts, sf)
			f = sf
		}

		a.engines = append(a.engines, compact.New(a.builder(kind, f), a.settings, a.view, opts...))
	}
	a.merge()
	return nil
}

func (a *Adapter) builder(kind decoration.Kind, f compact.Formatter) compact.Builder {
	switch kind {
	case decoration.KindURL:
		return compact.URLBuilder{Script: f}
	case decoration.KindAltText:
		return compact.AltBuilder{UseText: a.altText, Script: f}
	default:
		return compact.AliasBuilder{Script: f}
	}
}

func (a *Adapter) merge() {
	sets := make([]decoration.Set, 0, len(a.engines))
	for _, e := range a.engines {
		sets = append(sets, e.Decorations())
	}
	a.decorations = decoration.Merge(sets...)
}

func teardown(engines []*compact.Engine, scripts []*script.Formatter) {
	for _, e := range engines {
		e.Destroy()
	}
	for _, s := range scripts {
		_ = s.Close()
	}
}
