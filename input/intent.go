// Package input turns tcell terminal events into pointer events and semantic intents
package input

import "time"

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System
	IntentQuit
	IntentResize
	IntentToggleMute
	IntentFocus // terminal regained focus
	IntentBlur  // terminal lost focus

	// Pointer, coordinates in logical px
	IntentPointerDown
	IntentPointerMove
	IntentPointerUp
	IntentWheel // Delta rows, positive scrolls content down

	// Keyboard fallbacks for gestures
	IntentSwipeLeft
	IntentSwipeRight
	IntentSwipeUp
	IntentTapHandle
	IntentCloseSheet
	IntentScroll // Delta rows
)

var intentNames = map[IntentType]string{
	IntentNone:        "none",
	IntentQuit:        "quit",
	IntentResize:      "resize",
	IntentToggleMute:  "toggle_mute",
	IntentFocus:       "focus",
	IntentBlur:        "blur",
	IntentPointerDown: "pointer_down",
	IntentPointerMove: "pointer_move",
	IntentPointerUp:   "pointer_up",
	IntentWheel:       "wheel",
	IntentSwipeLeft:   "swipe_left",
	IntentSwipeRight:  "swipe_right",
	IntentSwipeUp:     "swipe_up",
	IntentTapHandle:   "tap_handle",
	IntentCloseSheet:  "close_sheet",
	IntentScroll:      "scroll",
}

func (t IntentType) String() string {
	if s, ok := intentNames[t]; ok {
		return s
	}
	return "unknown"
}

// ParseIntentType maps a binding name back to an intent type
func ParseIntentType(s string) (IntentType, bool) {
	for t, name := range intentNames {
		if name == s {
			return t, true
		}
	}
	return IntentNone, false
}

// Intent is one normalized input action
type Intent struct {
	Type IntentType

	// Pointer position in px and the cell it came from
	X, Y     float64
	Col, Row int

	Delta int // wheel or scroll rows

	// Resize dimensions in cells
	Width, Height int

	Time time.Time
}

// IsPointer reports whether the intent carries a pointer position
func (i *Intent) IsPointer() bool {
	switch i.Type {
	case IntentPointerDown, IntentPointerMove, IntentPointerUp, IntentWheel:
		return true
	}
	return false
}
