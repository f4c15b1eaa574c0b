package input

import "github.com/gdamore/tcell/v2"

// Mode selects which bindings apply
// Kept in sync by the engine as the sheet opens and closes
type Mode uint8

const (
	ModeDeck  Mode = iota // card stack has focus
	ModeSheet             // detail sheet is open
)

// KeyEntry binds a key to an intent and an optional scroll delta
type KeyEntry struct {
	Intent IntentType
	Delta  int
}

// KeyTable maps keys to intents per mode, Global applies in every mode
type KeyTable struct {
	GlobalKeys  map[tcell.Key]KeyEntry
	GlobalRunes map[rune]KeyEntry

	DeckKeys  map[tcell.Key]KeyEntry
	DeckRunes map[rune]KeyEntry

	SheetKeys  map[tcell.Key]KeyEntry
	SheetRunes map[rune]KeyEntry
}

// DefaultKeyTable returns the default bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		GlobalKeys: map[tcell.Key]KeyEntry{
			tcell.KeyCtrlC: {Intent: IntentQuit},
			tcell.KeyCtrlQ: {Intent: IntentQuit},
			tcell.KeyCtrlS: {Intent: IntentToggleMute},
		},
		GlobalRunes: map[rune]KeyEntry{
			'q': {Intent: IntentQuit},
			'm': {Intent: IntentToggleMute},
		},
		DeckKeys: map[tcell.Key]KeyEntry{
			tcell.KeyLeft:  {Intent: IntentSwipeLeft},
			tcell.KeyRight: {Intent: IntentSwipeRight},
			tcell.KeyUp:    {Intent: IntentSwipeUp},
			tcell.KeyEnter: {Intent: IntentSwipeUp},
		},
		DeckRunes: map[rune]KeyEntry{
			'h': {Intent: IntentSwipeLeft},
			'l': {Intent: IntentSwipeRight},
			'k': {Intent: IntentSwipeUp},
		},
		SheetKeys: map[tcell.Key]KeyEntry{
			tcell.KeyEscape: {Intent: IntentCloseSheet},
			tcell.KeyUp:     {Intent: IntentScroll, Delta: -1},
			tcell.KeyDown:   {Intent: IntentScroll, Delta: 1},
			tcell.KeyPgUp:   {Intent: IntentScroll, Delta: -10},
			tcell.KeyPgDn:   {Intent: IntentScroll, Delta: 10},
		},
		SheetRunes: map[rune]KeyEntry{
			' ': {Intent: IntentTapHandle},
			'k': {Intent: IntentScroll, Delta: -1},
			'j': {Intent: IntentScroll, Delta: 1},
			'x': {Intent: IntentCloseSheet},
		},
	}
}

func (kt *KeyTable) lookup(mode Mode, ev *tcell.EventKey) (KeyEntry, bool) {
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if e, ok := kt.modeRunes(mode)[r]; ok {
			return e, true
		}
		e, ok := kt.GlobalRunes[r]
		return e, ok
	}
	if e, ok := kt.modeKeys(mode)[ev.Key()]; ok {
		return e, true
	}
	e, ok := kt.GlobalKeys[ev.Key()]
	return e, ok
}

func (kt *KeyTable) modeKeys(mode Mode) map[tcell.Key]KeyEntry {
	if mode == ModeSheet {
		return kt.SheetKeys
	}
	return kt.DeckKeys
}

func (kt *KeyTable) modeRunes(mode Mode) map[rune]KeyEntry {
	if mode == ModeSheet {
		return kt.SheetRunes
	}
	return kt.DeckRunes
}
