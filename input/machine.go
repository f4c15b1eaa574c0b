package input

import (
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/petdeck/parameter"
)

// Machine is the input state machine
// tcell reports button masks rather than transitions, so the machine remembers the primary button
// to derive press, drag and release
type Machine struct {
	mode     Mode
	keyTable *KeyTable

	pressed bool
	lastCol int
	lastRow int
	focused bool
}

func NewMachine() *Machine {
	return &Machine{keyTable: DefaultKeyTable(), focused: true}
}

// NewMachineWithTable uses custom bindings
func NewMachineWithTable(kt *KeyTable) *Machine {
	return &Machine{keyTable: kt, focused: true}
}

// SetMode switches key bindings between the deck and the sheet
func (m *Machine) SetMode(mode Mode) {
	m.mode = mode
}

func (m *Machine) Mode() Mode {
	return m.mode
}

// Pressed reports whether the primary button is held
func (m *Machine) Pressed() bool {
	return m.pressed
}

// Reset forgets the held button, used when focus is lost mid-drag
func (m *Machine) Reset() {
	m.pressed = false
}

// Process parses a terminal event, nil when it carries no action
func (m *Machine) Process(ev tcell.Event) *Intent {
	now := ev.When()
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		return &Intent{Type: IntentResize, Width: w, Height: h, Time: now}
	case *tcell.EventKey:
		return m.processKey(ev, now)
	case *tcell.EventMouse:
		return m.processMouse(ev, now)
	case *tcell.EventFocus:
		return m.processFocus(ev, now)
	case *tcell.EventInterrupt:
		return nil
	case *tcell.EventError:
		return &Intent{Type: IntentQuit, Time: now}
	}
	return nil
}

func (m *Machine) processKey(ev *tcell.EventKey, now time.Time) *Intent {
	e, ok := m.keyTable.lookup(m.mode, ev)
	if !ok {
		return nil
	}
	return &Intent{Type: e.Intent, Delta: e.Delta, Time: now}
}

func (m *Machine) processMouse(ev *tcell.EventMouse, now time.Time) *Intent {
	col, row := ev.Position()
	btn := ev.Buttons()
	it := &Intent{Col: col, Row: row, Time: now}
	it.X, it.Y = CellToPx(col, row)

	switch {
	case btn&tcell.WheelUp != 0:
		it.Type, it.Delta = IntentWheel, -parameter.ScrollLineRows
		return it
	case btn&tcell.WheelDown != 0:
		it.Type, it.Delta = IntentWheel, parameter.ScrollLineRows
		return it
	}

	held := btn&tcell.Button1 != 0
	switch {
	case held && !m.pressed:
		m.pressed = true
		it.Type = IntentPointerDown
	case held && m.pressed:
		if col == m.lastCol && row == m.lastRow {
			return nil
		}
		it.Type = IntentPointerMove
	case !held && m.pressed:
		m.pressed = false
		it.Type = IntentPointerUp
	default:
		// hover
		return nil
	}
	m.lastCol, m.lastRow = col, row
	return it
}

func (m *Machine) processFocus(ev *tcell.EventFocus, now time.Time) *Intent {
	if ev.Focused == m.focused {
		return nil
	}
	m.focused = ev.Focused
	if !ev.Focused {
		return &Intent{Type: IntentBlur, Time: now}
	}
	return &Intent{Type: IntentFocus, Time: now}
}

// CellToPx returns the px center of a cell
func CellToPx(col, row int) (x, y float64) {
	return (float64(col) + 0.5) * parameter.CellWidthPx, (float64(row) + 0.5) * parameter.CellHeightPx
}

// PxToCell returns the cell containing a px position
func PxToCell(x, y float64) (col, row int) {
	return int(math.Floor(x / parameter.CellWidthPx)), int(math.Floor(y / parameter.CellHeightPx))
}
