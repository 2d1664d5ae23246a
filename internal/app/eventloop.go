package app

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/dshills/compactlinks/internal/config"
	"github.com/dshills/compactlinks/internal/renderer"
	"github.com/dshills/compactlinks/internal/renderer/backend"
	"github.com/dshills/compactlinks/internal/view"
)

// wheelLines is how far one mouse wheel step scrolls.
const wheelLines = 3

// HandleEvent processes a backend event and updates the decorations.
// Returns ErrQuit if the application should exit.
func (app *Application) HandleEvent(ev backend.Event) error {
	var err error
	switch ev.Type {
	case backend.EventResize:
		app.handleResize(ev)
	case backend.EventKey:
		err = app.handleKeyEvent(ev)
	case backend.EventMouse:
		app.handleMouseEvent(ev)
	case backend.EventInterrupt:
		err = app.handleInterrupt(ev)
	}
	app.flush()
	return err
}

// handleResize processes terminal resize events.
func (app *Application) handleResize(ev backend.Event) {
	app.scroll.Resize(ev.Height - 1)
	app.reveal(app.sel.Head)
	app.pending.ViewportChanged = true
}

// handleKeyEvent processes keyboard input events.
func (app *Application) handleKeyEvent(ev backend.Event) error {
	app.message = ""
	extend := ev.Mod.Has(backend.ModShift)

	switch ev.Key {
	case backend.KeyEscape, backend.KeyCtrlC:
		return ErrQuit
	case backend.KeyRune:
		return app.handleRune(ev.Rune)
	case backend.KeyLeft:
		app.moveTo(app.prevPos(app.sel.Head), extend)
	case backend.KeyRight:
		app.moveTo(app.nextPos(app.sel.Head), extend)
	case backend.KeyUp:
		app.moveTo(app.verticalPos(app.sel.Head, -1), extend)
	case backend.KeyDown:
		app.moveTo(app.verticalPos(app.sel.Head, 1), extend)
	case backend.KeyHome:
		app.moveTo(app.doc.LineStart(app.doc.LineOf(app.sel.Head)), extend)
	case backend.KeyEnd:
		app.moveTo(app.doc.LineEnd(app.doc.LineOf(app.sel.Head)), extend)
	case backend.KeyPageUp:
		app.page(-1, extend)
	case backend.KeyPageDown:
		app.page(1, extend)
	case backend.KeyEnter:
		if !app.adapter.Reveal(app.sel.Head) {
			app.message = "no link at cursor"
		}
	case backend.KeyCtrlL:
		app.backend.Clear()
	}
	return nil
}

func (app *Application) handleRune(r rune) error {
	switch r {
	case 'q':
		return ErrQuit
	case 's':
		on := !app.adapter.SourceMode()
		if err := app.adapter.SetSourceMode(on); err != nil {
			return NewOperationError("toggle source mode", "", err)
		}
		app.message = fmt.Sprintf("source mode %s", onOff(on))
	case 'r':
		return app.reloadDocument()
	}
	return nil
}

// handleMouseEvent reveals the decoration under a click, or moves the
// cursor there when there is none.
func (app *Application) handleMouseEvent(ev backend.Event) {
	switch ev.MouseButton {
	case backend.MouseWheelUp:
		if app.scroll.ScrollBy(-wheelLines) {
			app.pending.ViewportChanged = true
		}
	case backend.MouseWheelDown:
		if app.scroll.ScrollBy(wheelLines) {
			app.pending.ViewportChanged = true
		}
	case backend.MouseLeft:
		pos, ok := app.offsetAt(ev.MouseX, ev.MouseY)
		if !ok {
			return
		}
		if !app.adapter.Reveal(pos) {
			app.setSelection(view.Cursor(pos))
		}
	}
}

// handleInterrupt runs work posted by the file watcher.
func (app *Application) handleInterrupt(ev backend.Event) error {
	switch ev.Data.(type) {
	case reloadDocument:
		return app.reloadDocument()
	case reloadSettings:
		return app.reloadSettings()
	}
	return nil
}

// reloadDocument rereads the document file and rebuilds from scratch.
func (app *Application) reloadDocument() error {
	err := app.doc.Reload(context.Background())
	app.metrics.RecordReload(err)
	if err != nil {
		return err
	}

	app.scroll.SetLines(app.doc.LineCount())
	head := min(app.sel.Head, app.doc.Len())
	app.sel = view.Cursor(head)
	app.pending.DocChanged = true
	app.pending.SelectionSet = true
	app.message = "reloaded " + app.doc.Name
	app.logger.Info("reloaded %s", app.doc)
	return nil
}

// reloadSettings rereads the settings source and reconfigures the adapter.
// The previous settings stay in effect when the new ones are invalid.
func (app *Application) reloadSettings() error {
	path := app.settingsSource()
	var (
		s   config.Settings
		err error
	)
	if app.opts.Config.SettingsPath != "" {
		s, err = config.LoadSettings(path)
	} else {
		var cfg config.FileConfig
		cfg, err = config.Load(path)
		s = cfg.Settings
	}
	if err == nil {
		err = s.Validate()
	}
	if err == nil {
		err = app.adapter.Reconfigure(s)
	}
	app.metrics.RecordReload(err)
	if err != nil {
		return NewOperationError("reload settings", path, err)
	}
	app.message = "settings reloaded"
	app.logger.Info("settings reloaded from %s", path)
	return nil
}

// moveTo moves the cursor to pos, extending the selection when asked, and
// scrolls it into view.
func (app *Application) moveTo(pos int, extend bool) {
	app.selectTo(pos, extend)
	app.reveal(app.sel.Head)
}

func (app *Application) selectTo(pos int, extend bool) {
	pos = min(max(pos, 0), app.doc.Len())
	if !extend {
		app.setSelection(view.Cursor(pos))
		return
	}
	anchor := app.sel.From
	if app.sel.Head == app.sel.From {
		anchor = app.sel.To
	}
	app.setSelection(view.Selection{From: min(anchor, pos), To: max(anchor, pos), Head: pos})
}

// page scrolls one page and keeps the cursor on the same screen row.
func (app *Application) page(dir int, extend bool) {
	n := app.scroll.PageSize() * dir
	if app.scroll.ScrollBy(n) {
		app.pending.ViewportChanged = true
	}
	app.selectTo(app.verticalPos(app.sel.Head, n), extend)
	if app.scroll.Row(app.doc.LineOf(app.sel.Head)) < 0 {
		app.reveal(app.sel.Head)
	}
}

func (app *Application) prevPos(pos int) int {
	if pos <= 0 {
		return 0
	}
	_, size := utf8.DecodeLastRuneInString(app.doc.Text()[:pos])
	return pos - size
}

func (app *Application) nextPos(pos int) int {
	text := app.doc.Text()
	if pos >= len(text) {
		return len(text)
	}
	_, size := utf8.DecodeRuneInString(text[pos:])
	return pos + size
}

// verticalPos returns the position delta lines away from pos, keeping the
// byte column where the target line is long enough.
func (app *Application) verticalPos(pos, delta int) int {
	line := app.doc.LineOf(pos)
	col := pos - app.doc.LineStart(line)
	target := min(max(line+delta, 0), app.doc.LineCount()-1)
	p := min(app.doc.LineStart(target)+col, app.doc.LineEnd(target))

	text := app.doc.Text()
	for p > app.doc.LineStart(target) && p < len(text) && !utf8.RuneStart(text[p]) {
		p--
	}
	return p
}

// offsetAt maps a screen cell to a document offset using the last frame.
func (app *Application) offsetAt(x, y int) (int, bool) {
	if y < 0 || y >= len(app.cols) {
		return 0, false
	}
	line := app.scroll.Top() + y
	if line >= app.doc.LineCount() {
		return 0, false
	}
	return renderer.Offset(app.cols[y], x, app.doc.LineEnd(line)), true
}

// Render draws the visible lines and the status line.
func (app *Application) Render() {
	start := time.Now()
	decos := app.adapter.Decorations()
	first, _ := app.scroll.Visible()
	height := app.scroll.Height()

	app.cols = app.cols[:0]
	cursorX, cursorY := -1, -1
	headLine := app.doc.LineOf(app.sel.Head)

	for row := 0; row < height; row++ {
		line := first + row
		if line >= app.doc.LineCount() {
			app.painter.Line(row, nil, app.sel)
			continue
		}
		segs := renderer.Compose(app.doc.Line(line), app.doc.LineStart(line), decos)
		cols := app.painter.Line(row, segs, app.sel)
		app.cols = append(app.cols, cols)
		if line == headLine {
			cursorX, cursorY = renderer.Column(cols, app.sel.Head), row
		}
	}

	app.painter.Status(height, app.statusText())
	if cursorY >= 0 {
		app.backend.ShowCursor(cursorX, cursorY)
	} else {
		app.backend.HideCursor()
	}
	app.backend.Show()
	app.metrics.RecordFrame(time.Since(start))
}

// statusText describes the cursor position, the number of decorations and
// the full text of the next decoration on the cursor line.
func (app *Application) statusText() string {
	line := app.doc.LineOf(app.sel.Head)
	col := app.sel.Head - app.doc.LineStart(line)
	decos := app.adapter.Decorations()

	text := fmt.Sprintf(" %s  %d:%d  %d links", app.doc.Name, line+1, col+1, decos.Len())
	if app.adapter.SourceMode() {
		text += "  [source]"
	}
	if app.message != "" {
		return text + "  " + app.message
	}
	for _, d := range decos.Overlapping(app.sel.Head, app.doc.LineEnd(line)) {
		if d.Tooltip != "" {
			return text + "  " + d.Tooltip
		}
	}
	return text
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
