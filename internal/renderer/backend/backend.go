// Package backend provides the terminal abstraction the link viewer draws on.
package backend

import "github.com/gdamore/tcell/v2"

// Cell is one terminal cell.
type Cell struct {
	// Rune is the base character. Zero marks the trailing half of a wide
	// character.
	Rune rune

	// Combining holds the remaining runes of the grapheme cluster.
	Combining []rune

	// Width is the display width of the cluster: 0, 1 or 2.
	Width int

	Style tcell.Style
}

// EmptyCell returns a blank cell with the default style.
func EmptyCell() Cell {
	return Cell{Rune: ' ', Width: 1, Style: tcell.StyleDefault}
}

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventMouse
	EventResize
	EventInterrupt
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key event fields
	Key  Key
	Rune rune
	Mod  ModMask

	// Mouse event fields
	MouseX, MouseY int
	MouseButton    MouseButton

	// Resize event fields
	Width, Height int

	// Interrupt payload, posted by other goroutines to wake the loop.
	Data any
}

// Key represents a keyboard key.
type Key int

// Keys the viewer binds.
const (
	KeyNone Key = iota
	KeyRune     // Regular character (use Rune field)
	KeyEscape
	KeyEnter
	KeyTab
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlC
	KeyCtrlL
)

// ModMask represents modifier key state.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
)

// Has reports whether m includes mod.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}

// MouseButton represents mouse button state.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseRight
	MouseWheelUp
	MouseWheelDown
)

// Backend is a cell grid with an event source.
type Backend interface {
	// Init prepares the screen for drawing.
	Init() error

	// Shutdown restores the terminal.
	Shutdown()

	// Size returns the grid dimensions.
	Size() (width, height int)

	// SetCell writes a cell. Out of range positions are ignored.
	SetCell(x, y int, c Cell)

	// GetCell reads back a cell.
	GetCell(x, y int) Cell

	// Clear blanks the grid.
	Clear()

	// Show flushes pending changes to the terminal.
	Show()

	// ShowCursor places the terminal cursor.
	ShowCursor(x, y int)

	// HideCursor hides the terminal cursor.
	HideCursor()

	// PollEvent blocks until the next event. It returns EventNone after
	// Shutdown.
	PollEvent() Event

	// PostEvent queues an interrupt event carrying data.
	PostEvent(data any) error
}
