package backend

import (
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Terminal implements Backend using tcell for terminal output.
type Terminal struct {
	screen tcell.Screen
	mouse  bool
	done   bool
	mu     sync.Mutex
}

// NewTerminal creates a terminal backend on the controlling tty.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen, mouse: true}, nil
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	if t.mouse {
		// Clicks reveal decorations.
		t.screen.EnableMouse()
	}
	return nil
}

// Shutdown restores the terminal. Later calls do nothing.
func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.done {
		return
	}
	t.done = true
	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

func (t *Terminal) SetCell(x, y int, c Cell) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.SetContent(x, y, c.Rune, c.Combining, c.Style)
}

func (t *Terminal) GetCell(x, y int) Cell {
	t.mu.Lock()
	defer t.mu.Unlock()

	mainc, combc, style, width := t.screen.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
	return Cell{Rune: mainc, Combining: combc, Width: width, Style: style}
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}

func (t *Terminal) ShowCursor(x, y int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.ShowCursor(x, y)
}

func (t *Terminal) HideCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.HideCursor()
}

// PollEvent does not hold the lock; tcell's queue is safe for concurrent use
// and holding it would block drawing while waiting for input.
func (t *Terminal) PollEvent() Event {
	ev := t.screen.PollEvent()
	if ev == nil {
		return Event{Type: EventNone}
	}
	return convertEvent(ev)
}

func (t *Terminal) PostEvent(data any) error {
	return t.screen.PostEvent(tcell.NewEventInterrupt(data))
}

// Simulation is a Terminal over tcell's in-memory screen.
type Simulation struct {
	*Terminal
	sim tcell.SimulationScreen
}

// NewSimulation creates an initialized in-memory terminal of the given size.
func NewSimulation(width, height int) (*Simulation, error) {
	sim := tcell.NewSimulationScreen("UTF-8")
	s := &Simulation{Terminal: &Terminal{screen: sim}, sim: sim}
	if err := s.Init(); err != nil {
		return nil, err
	}
	sim.SetSize(width, height)
	return s, nil
}

// InjectKey queues a key press.
func (s *Simulation) InjectKey(k Key, r rune, mod ModMask) {
	s.sim.InjectKey(convertToTcellKey(k), r, convertToTcellMod(mod))
}

// InjectClick queues a left click at (x, y).
func (s *Simulation) InjectClick(x, y int) {
	s.sim.InjectMouse(x, y, tcell.Button1, tcell.ModNone)
}

// Row returns the text of row y with trailing blanks removed.
func (s *Simulation) Row(y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		c := s.GetCell(x, y)
		if c.Rune == 0 {
			continue
		}
		b.WriteRune(c.Rune)
		for _, r := range c.Combining {
			b.WriteRune(r)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// convertEvent converts tcell events to our Event type.
func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return Event{
			Type: EventKey,
			Key:  convertKey(e.Key()),
			Rune: e.Rune(),
			Mod:  convertMod(e.Modifiers()),
		}

	case *tcell.EventMouse:
		x, y := e.Position()
		return Event{
			Type:        EventMouse,
			MouseX:      x,
			MouseY:      y,
			MouseButton: convertMouseButton(e.Buttons()),
			Mod:         convertMod(e.Modifiers()),
		}

	case *tcell.EventResize:
		w, h := e.Size()
		return Event{
			Type:   EventResize,
			Width:  w,
			Height: h,
		}

	case *tcell.EventInterrupt:
		return Event{Type: EventInterrupt, Data: e.Data()}

	default:
		return Event{Type: EventNone}
	}
}

var tcellKeys = map[tcell.Key]Key{
	tcell.KeyRune:   KeyRune,
	tcell.KeyEscape: KeyEscape,
	tcell.KeyEnter:  KeyEnter,
	tcell.KeyTab:    KeyTab,
	tcell.KeyHome:   KeyHome,
	tcell.KeyEnd:    KeyEnd,
	tcell.KeyPgUp:   KeyPageUp,
	tcell.KeyPgDn:   KeyPageDown,
	tcell.KeyUp:     KeyUp,
	tcell.KeyDown:   KeyDown,
	tcell.KeyLeft:   KeyLeft,
	tcell.KeyRight:  KeyRight,
	tcell.KeyCtrlC:  KeyCtrlC,
	tcell.KeyCtrlL:  KeyCtrlL,
}

// convertKey converts a tcell key to our Key type.
func convertKey(k tcell.Key) Key {
	if key, ok := tcellKeys[k]; ok {
		return key
	}
	return KeyNone
}

// convertToTcellKey converts our Key to a tcell key.
func convertToTcellKey(k Key) tcell.Key {
	for tk, key := range tcellKeys {
		if key == k {
			return tk
		}
	}
	return tcell.KeyRune
}

// convertMod converts a tcell modifier mask to our ModMask.
func convertMod(m tcell.ModMask) ModMask {
	var result ModMask
	if m&tcell.ModShift != 0 {
		result |= ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= ModAlt
	}
	return result
}

// convertToTcellMod converts our ModMask to a tcell modifier mask.
func convertToTcellMod(m ModMask) tcell.ModMask {
	var result tcell.ModMask
	if m&ModShift != 0 {
		result |= tcell.ModShift
	}
	if m&ModCtrl != 0 {
		result |= tcell.ModCtrl
	}
	if m&ModAlt != 0 {
		result |= tcell.ModAlt
	}
	return result
}

// convertMouseButton converts a tcell button mask to our MouseButton.
func convertMouseButton(b tcell.ButtonMask) MouseButton {
	switch {
	case b&tcell.Button1 != 0:
		return MouseLeft
	case b&tcell.Button2 != 0:
		return MouseRight
	case b&tcell.WheelUp != 0:
		return MouseWheelUp
	case b&tcell.WheelDown != 0:
		return MouseWheelDown
	default:
		return MouseNone
	}
}
