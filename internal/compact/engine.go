package compact

import (
	"fmt"

	"github.com/dshills/compactlinks/internal/config"
	"github.com/dshills/compactlinks/internal/decoration"
	"github.com/dshills/compactlinks/internal/finder"
	"github.com/dshills/compactlinks/internal/logging"
	"github.com/dshills/compactlinks/internal/view"
	"github.com/dshills/compactlinks/internal/viewport"
)

// Engine maintains the decorations of one span kind for one view.
type Engine struct {
	builder  Builder
	settings config.Settings
	view     view.View

	tracker *viewport.Tracker
	cache   *decoration.Cache

	// spans maps an anchor position to its resolved span.
	spans map[int]finder.Span

	decorations decoration.Set

	logger    *logging.Logger
	threshold int
	capacity  int

	stats     Stats
	destroyed bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. Engines log at debug level only.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithThreshold sets the viewport significance threshold.
func WithThreshold(n int) Option {
	return func(e *Engine) {
		e.threshold = n
	}
}

// WithCapacity sets the decoration cache capacity.
func WithCapacity(n int) Option {
	return func(e *Engine) {
		e.capacity = n
	}
}

// New creates an engine and performs the initial build over v's visible
// ranges.
func New(b Builder, s config.Settings, v view.View, opts ...Option) *Engine {
	e := &Engine{
		builder:     b,
		settings:    s,
		view:        v,
		spans:       make(map[int]finder.Span),
		decorations: decoration.Empty,
		logger:      logging.Null(),
		threshold:   viewport.DefaultThreshold,
		capacity:    decoration.DefaultCapacity,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.logger = e.logger.WithComponent("compact").WithField("kind", b.Kind().String())
	e.cache = decoration.NewCache(e.capacity)
	e.tracker = viewport.NewTracker(e.threshold, visibleRanges(v))
	e.rebuild()
	return e
}

// Kind returns the span kind of the engine's builder.
func (e *Engine) Kind() decoration.Kind {
	return e.builder.Kind()
}

// Decorations returns the current decoration set.
func (e *Engine) Decorations() decoration.Set {
	return e.decorations
}

// Settings returns the settings snapshot in use.
func (e *Engine) Settings() config.Settings {
	return e.settings
}

// Update reacts to a view update and reports whether it rebuilt.
func (e *Engine) Update(u view.Update) bool {
	if e.destroyed {
		return false
	}
	if u.View != nil {
		e.view = u.View
	}
	ranges := visibleRanges(e.view)

	switch {
	case u.DocChanged:
		e.clearCaches()
		e.tracker.Reset(ranges)
		e.rebuild()
		return true

	case u.SelectionSet:
		significant := u.ViewportChanged && e.tracker.Observe(ranges)
		e.rebuild()
		if significant {
			e.prune(ranges)
		}
		return true

	case u.ViewportChanged:
		if !e.tracker.Observe(ranges) {
			e.stats.Ignored++
			return false
		}
		e.rebuild()
		e.prune(ranges)
		return true
	}
	return false
}

// Reconfigure installs a new settings snapshot and view, drops everything
// cached under the old settings, and rebuilds.
func (e *Engine) Reconfigure(s config.Settings, v view.View) {
	if e.destroyed {
		return
	}
	e.settings = s
	if v != nil {
		e.view = v
	}
	e.clearCaches()
	e.tracker.Reset(visibleRanges(e.view))
	e.rebuild()
}

// Destroy releases the caches and the view. The engine ignores further
// updates and reports an empty set.
func (e *Engine) Destroy() {
	if e.destroyed {
		return
	}
	e.clearCaches()
	e.view = nil
	e.decorations = decoration.Empty
	e.destroyed = true
	e.logger.Debug("destroyed")
}

// rebuild recomputes the decoration set over the current visible ranges.
func (e *Engine) rebuild() {
	e.stats.Rebuilds++

	v := e.view
	if v == nil || !e.builder.Enabled(e.settings) {
		e.decorations = decoration.Empty
		return
	}

	sel := v.Selection()
	if !sel.Empty() && e.settings.DisableWhenSelected {
		e.decorations = decoration.Empty
		return
	}
	cursor := sel.Head

	var (
		out    []decoration.Decoration
		seen   = make(map[decoration.Key]struct{})
		sorted = true
	)

	visit := func(anchor int, resolve func() (finder.Span, bool)) {
		span, ok := e.spanAt(anchor, resolve)
		if !ok || span.Empty() {
			return
		}
		if span.Contains(cursor) {
			return
		}

		key := e.cache.GenerateKey(span.Start, span.End)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}

		d, ok := e.cache.Get(key)
		if !ok {
			d, ok = e.build(v, span)
			if !ok {
				return
			}
			e.cache.Set(key, d)
		}

		if n := len(out); n > 0 && less(d, out[n-1]) {
			sorted = false
		}
		out = append(out, d)
	}

	for _, r := range v.VisibleRanges() {
		e.scan(v, r, visit)
	}

	e.decorations = decoration.NewSet(out, sorted)
	e.logger.Debug("rebuilt %d decorations (cache %d, spans %d)", len(out), e.cache.Len(), len(e.spans))
}

// spanAt returns the cached span for anchor, resolving and caching it on
// first sight.
func (e *Engine) spanAt(anchor int, resolve func() (finder.Span, bool)) (finder.Span, bool) {
	if span, ok := e.spans[anchor]; ok {
		return span, true
	}
	span, ok := resolve()
	if !ok {
		return finder.Span{}, false
	}
	e.spans[anchor] = span
	return span, true
}

// scan runs the builder's scan over r. A panicking tree walk ends the
// scan of that range only.
func (e *Engine) scan(v view.View, r viewport.Range, visit Visitor) {
	defer func() {
		if p := recover(); p != nil {
			e.stats.Recovered++
			e.logger.Debug("scan of [%d,%d] panicked: %v", r.From, r.To, p)
		}
	}()
	e.builder.Scan(v, r, visit)
}

// build constructs one decoration. A panicking builder counts as "not
// decoratable".
func (e *Engine) build(v view.View, span finder.Span) (d decoration.Decoration, ok bool) {
	defer func() {
		if p := recover(); p != nil {
			e.stats.Recovered++
			e.logger.Debug("build of %d-%d panicked: %v", span.Start, span.End, p)
			d, ok = decoration.Decoration{}, false
		}
	}()
	e.stats.Built++
	return e.builder.Build(v, span, e.settings)
}

// prune drops spans and decorations anchored outside every range in rs.
func (e *Engine) prune(rs viewport.Ranges) {
	m := viewport.NewMembership(rs)
	removed := 0
	for anchor, span := range e.spans {
		if m.Contains(anchor) {
			continue
		}
		delete(e.spans, anchor)
		removed += e.cache.DeleteByPosition(span.Start)
	}
	e.stats.Prunes++
	e.stats.Pruned += uint64(removed)
	if removed > 0 {
		e.logger.Debug("pruned %d cached decorations", removed)
	}
}

func (e *Engine) clearCaches() {
	e.cache.Clear()
	clear(e.spans)
	e.stats.Clears++
}

// Stats returns engine statistics.
func (e *Engine) Stats() Stats {
	s := e.stats
	s.Cache = e.cache.Stats()
	s.Spans = len(e.spans)
	s.Decorations = e.decorations.Len()
	return s
}

// Stats contains engine statistics.
type Stats struct {
	// Rebuilds counts decoration passes, including disabled ones.
	Rebuilds uint64
	// Built counts decorations constructed (cache misses that reached Build).
	Built uint64
	// Clears counts full cache clears.
	Clears uint64
	// Prunes counts viewport prunes; Pruned the cache entries they removed.
	Prunes uint64
	Pruned uint64
	// Ignored counts insignificant viewport changes.
	Ignored uint64
	// Recovered counts panics recovered from builders and tree walks.
	Recovered uint64

	Spans       int
	Decorations int
	Cache       decoration.CacheStats
}

// String returns a one-line summary.
func (s Stats) String() string {
	return fmt.Sprintf("rebuilds=%d built=%d clears=%d prunes=%d pruned=%d ignored=%d decorations=%d hit_rate=%.2f",
		s.Rebuilds, s.Built, s.Clears, s.Prunes, s.Pruned, s.Ignored, s.Decorations, s.Cache.HitRate)
}

func visibleRanges(v view.View) viewport.Ranges {
	if v == nil {
		return nil
	}
	return v.VisibleRanges()
}

func less(a, b decoration.Decoration) bool {
	if a.From != b.From {
		return a.From < b.From
	}
	return a.To < b.To
}
