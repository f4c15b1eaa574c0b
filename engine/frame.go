package engine

import (
	"time"

	"github.com/lixenwraith/petdeck/card"
	"github.com/lixenwraith/petdeck/gesture"
	"github.com/lixenwraith/petdeck/sheet"
)

// Renderer draws one frame; it is called on the loop goroutine
type Renderer interface {
	Draw(f *Frame)
}

// CardFrame is one card to draw
type CardFrame struct {
	Card     card.Candidate
	Visual   card.Visual
	Decision card.Decision // exit direction, Cancelled for the live stack
}

// SheetFrame is the sheet geometry and content to draw
type SheetFrame struct {
	Visible    bool
	Phase      sheet.Phase
	View       sheet.ViewState
	Position   float64 // percent
	Overscroll float64 // px
	Scroll     float64 // px
	Mode       gesture.Mode
	Body       []BodyRow
}

// ModalFrame is the image viewer opened from the sheet
type ModalFrame struct {
	Images []string
	Index  int
	Label  string
}

// Frame is an immutable snapshot of everything the renderer needs
type Frame struct {
	Layout    Layout
	Time      time.Time
	Threshold float64 // commit distance in px, for drag feedback

	Front   *CardFrame
	Next    *CardFrame
	Exits   []CardFrame
	Hint    bool
	Sheet   SheetFrame
	Modal   *ModalFrame
	Status  string
	Message string
	Muted   bool
	Paused  bool
}
