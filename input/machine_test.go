package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/petdeck/parameter"
)

func mouse(col, row int, btn tcell.ButtonMask) *tcell.EventMouse {
	return tcell.NewEventMouse(col, row, btn, tcell.ModNone)
}

// TestMouseTransitions verifies button masks become down, move and up
func TestMouseTransitions(t *testing.T) {
	m := NewMachine()

	steps := []struct {
		ev   *tcell.EventMouse
		want IntentType // IntentNone means nil
	}{
		{mouse(3, 3, tcell.ButtonNone), IntentNone},
		{mouse(4, 5, tcell.Button1), IntentPointerDown},
		{mouse(4, 5, tcell.Button1), IntentNone},
		{mouse(6, 5, tcell.Button1), IntentPointerMove},
		{mouse(6, 2, tcell.Button1), IntentPointerMove},
		{mouse(6, 2, tcell.ButtonNone), IntentPointerUp},
		{mouse(7, 2, tcell.ButtonNone), IntentNone},
	}
	for i, s := range steps {
		got := m.Process(s.ev)
		if s.want == IntentNone {
			if got != nil {
				t.Errorf("step %d: got %v, want nil", i, got.Type)
			}
			continue
		}
		if got == nil || got.Type != s.want {
			t.Fatalf("step %d: got %v, want %v", i, got, s.want)
		}
		col, row := s.ev.Position()
		if got.Col != col || got.Row != row {
			t.Errorf("step %d: cell (%d,%d), want (%d,%d)", i, got.Col, got.Row, col, row)
		}
	}
	if m.Pressed() {
		t.Error("button still held after release")
	}
}

func TestWheel(t *testing.T) {
	m := NewMachine()
	up := m.Process(mouse(1, 1, tcell.WheelUp))
	down := m.Process(mouse(1, 1, tcell.WheelDown))
	if up == nil || up.Type != IntentWheel || up.Delta != -parameter.ScrollLineRows {
		t.Errorf("wheel up = %+v", up)
	}
	if down == nil || down.Delta != parameter.ScrollLineRows {
		t.Errorf("wheel down = %+v", down)
	}
	if m.Pressed() {
		t.Error("wheel registered as press")
	}
}

func TestCellPxRoundTrip(t *testing.T) {
	for _, c := range [][2]int{{0, 0}, {10, 3}, {79, 23}, {-1, -2}} {
		x, y := CellToPx(c[0], c[1])
		col, row := PxToCell(x, y)
		if col != c[0] || row != c[1] {
			t.Errorf("cell %v -> px (%v,%v) -> cell (%d,%d)", c, x, y, col, row)
		}
	}
	if x, _ := CellToPx(2, 0); x != 2.5*parameter.CellWidthPx {
		t.Errorf("CellToPx not centered: %v", x)
	}
}

// TestKeyBindingsByMode verifies the same key maps differently on the deck and in the sheet
func TestKeyBindingsByMode(t *testing.T) {
	tests := []struct {
		mode  Mode
		ev    *tcell.EventKey
		want  IntentType
		delta int
	}{
		{ModeDeck, tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), IntentSwipeLeft, 0},
		{ModeDeck, tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), IntentSwipeRight, 0},
		{ModeDeck, tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), IntentSwipeUp, 0},
		{ModeSheet, tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), IntentScroll, -1},
		{ModeSheet, tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), IntentCloseSheet, 0},
		{ModeSheet, tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), IntentTapHandle, 0},
		{ModeDeck, tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), IntentQuit, 0},
		{ModeSheet, tcell.NewEventKey(tcell.KeyRune, 'm', tcell.ModNone), IntentToggleMute, 0},
	}
	for _, tt := range tests {
		m := NewMachine()
		m.SetMode(tt.mode)
		got := m.Process(tt.ev)
		if got == nil || got.Type != tt.want || got.Delta != tt.delta {
			t.Errorf("mode %d key %v: got %+v, want %v/%d", tt.mode, tt.ev.Name(), got, tt.want, tt.delta)
		}
	}

	m := NewMachine()
	if got := m.Process(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)); got != nil {
		t.Errorf("Esc on deck = %v, want unbound", got.Type)
	}
}

func TestResizeAndFocus(t *testing.T) {
	m := NewMachine()
	if got := m.Process(tcell.NewEventResize(100, 40)); got == nil || got.Type != IntentResize || got.Width != 100 || got.Height != 40 {
		t.Errorf("resize = %+v", got)
	}

	m.Process(mouse(1, 1, tcell.Button1))
	if got := m.Process(tcell.NewEventFocus(false)); got == nil || got.Type != IntentBlur {
		t.Fatalf("blur = %+v", got)
	}
	if got := m.Process(tcell.NewEventFocus(false)); got != nil {
		t.Errorf("repeated blur = %v", got.Type)
	}
	if got := m.Process(tcell.NewEventFocus(true)); got == nil || got.Type != IntentFocus {
		t.Errorf("focus = %+v", got)
	}
}

func TestIntentNames(t *testing.T) {
	for it := range intentNames {
		if got, ok := ParseIntentType(it.String()); !ok || got != it {
			t.Errorf("ParseIntentType(%q) = %v, %v", it.String(), got, ok)
		}
	}
}
