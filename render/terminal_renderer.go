package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/petdeck/card"
	"github.com/lixenwraith/petdeck/engine"
	"github.com/lixenwraith/petdeck/parameter"
)

const (
	hintPulsePeriod = 1.6 // seconds
	scrimAlpha      = 0.55
	maxDrawnTilt    = 50.0 // degrees, terminal shear degenerates past this
)

// TerminalRenderer draws engine frames with tcell
type TerminalRenderer struct {
	screen tcell.Screen
}

func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	return &TerminalRenderer{screen: screen}
}

// Draw renders a complete frame and shows it
func (r *TerminalRenderer) Draw(f *engine.Frame) {
	r.screen.Fill(' ', style(RgbText, RgbBackground))

	if f.Next != nil {
		r.drawCard(f, f.Next, RgbNextCard, RgbTextDim, false)
	}
	if f.Front != nil {
		r.drawCard(f, f.Front, RgbCard, RgbText, true)
	} else {
		r.drawEmpty(f)
	}
	for i := range f.Exits {
		r.drawCard(f, &f.Exits[i], RgbCard, RgbText, true)
	}
	if f.Hint && f.Front != nil {
		r.drawHint(f)
	}
	if f.Sheet.Visible {
		r.drawSheet(f)
	}
	if f.Modal != nil {
		r.drawModal(f)
	}
	r.drawStatusBar(f)

	r.screen.Show()
}

// --- Cards ---

// cardGeometry maps a visual transform onto the resting card rect
func cardGeometry(l engine.Layout, v card.Visual) (x, y, w, h int) {
	rest := l.CardRect()
	w = max(4, int(math.Round(float64(rest.W)*v.Scale)))
	h = max(3, int(math.Round(float64(rest.H)*v.Scale)))
	cx := float64(rest.X) + float64(rest.W)/2 + v.X/parameter.CellWidthPx
	cy := float64(rest.Y) + float64(rest.H)/2 + v.Y/parameter.CellHeightPx
	return int(math.Round(cx - float64(w)/2)), int(math.Round(cy - float64(h)/2)), w, h
}

// shear approximates rotation about the card's bottom edge by shifting rows horizontally
func shear(rotation float64, row, h int) int {
	tilt := math.Max(-maxDrawnTilt, math.Min(maxDrawnTilt, rotation))
	fromBottom := float64(h - 1 - row)
	return int(math.Round(fromBottom * math.Tan(tilt*math.Pi/180) * parameter.CellHeightPx / parameter.CellWidthPx / 2))
}

func (r *TerminalRenderer) drawCard(f *engine.Frame, cf *engine.CardFrame, face, text RGB, front bool) {
	x, y, w, h := cardGeometry(f.Layout, cf.Visual)

	border := RgbCardBorder
	stamp := ""
	if front {
		progress := math.Min(1, math.Abs(cf.Visual.X)/math.Max(1, f.Threshold))
		switch {
		case cf.Visual.X > 0:
			border = border.Blend(RgbLike, progress)
		case cf.Visual.X < 0:
			border = border.Blend(RgbIgnore, progress)
		case cf.Visual.Y < 0:
			border = border.Blend(RgbDetails, math.Min(1, -cf.Visual.Y/math.Max(1, f.Threshold)))
		}
		if progress >= 1 || cf.Decision.Commits() {
			stamp = "NOPE"
			if cf.Visual.X > 0 {
				stamp = "LIKE"
			}
		}
	} else {
		border = RgbTextDim
	}

	viewRows := f.Layout.ViewRows()
	for row := 0; row < h; row++ {
		sy := y + row
		if sy < 0 || sy >= viewRows {
			continue
		}
		dx := shear(cf.Visual.Rotation, row, h)
		for col := 0; col < w; col++ {
			ch, st := ' ', style(text, face)
			switch {
			case row == 0 && col == 0:
				ch = '╭'
			case row == 0 && col == w-1:
				ch = '╮'
			case row == h-1 && col == 0:
				ch = '╰'
			case row == h-1 && col == w-1:
				ch = '╯'
			case row == 0 || row == h-1:
				ch = '─'
			case col == 0 || col == w-1:
				ch = '│'
			}
			if row == 0 || row == h-1 || col == 0 || col == w-1 {
				st = style(border, face)
			}
			r.screen.SetContent(x+col+dx, sy, ch, nil, st)
		}
	}

	// content rows: art block, name, label
	c := cf.Card
	inner := w - 4
	artRows := max(0, h-6)
	for row := 0; row < artRows; row++ {
		dx := shear(cf.Visual.Rotation, row+1, h)
		label := ""
		if row == artRows/2 {
			label = c.Image()
		}
		r.putCentered(x+2+dx, y+1+row, inner, label, '░', style(RgbImage, face), viewRows)
	}
	nameRow := y + h - 4
	r.putText(x+2+shear(cf.Visual.Rotation, h-4, h), nameRow, inner, c.Name, style(text, face).Bold(true), viewRows)
	r.putText(x+2+shear(cf.Visual.Rotation, h-3, h), nameRow+1, inner, c.Label, style(RgbTextDim, face), viewRows)

	if stamp != "" {
		col := RgbIgnore
		if stamp == "LIKE" {
			col = RgbLike
		}
		r.putText(x+2+shear(cf.Visual.Rotation, 1, h), y+1, inner, stamp, style(col, face).Bold(true), viewRows)
	}
}

func (r *TerminalRenderer) drawEmpty(f *engine.Frame) {
	rect := f.Layout.CardRect()
	r.putCentered(rect.X, rect.Y+rect.H/2, rect.W, "no more pets nearby", ' ', style(RgbTextDim, RgbBackground), f.Layout.ViewRows())
}

// drawHint pulses the swipe affordance under the card
func (r *TerminalRenderer) drawHint(f *engine.Frame) {
	secs := float64(f.Time.UnixNano()) / 1e9
	t := (math.Sin(2*math.Pi*secs/hintPulsePeriod) + 1) / 2
	col := RgbHintDim.BlendLab(RgbHintBright, t)

	rect := f.Layout.CardRect()
	row := rect.Y + rect.H + 1
	r.putCentered(0, row, f.Layout.Cols, "← pass    ↑ details    like →", ' ', style(col, RgbBackground), f.Layout.ViewRows())
}

// --- Sheet ---

func (r *TerminalRenderer) drawSheet(f *engine.Frame) {
	l := f.Layout
	sf := f.Sheet
	viewRows := l.ViewRows()
	top := l.SheetTopRow(sf.Position)

	// scrim over the deck
	for row := 0; row < min(top, viewRows); row++ {
		for col := 0; col < l.Cols; col++ {
			r.dimCell(col, row, scrimAlpha)
		}
	}

	bg := style(RgbText, RgbSheet)
	for row := max(0, top); row < viewRows; row++ {
		for col := 0; col < l.Cols; col++ {
			r.screen.SetContent(col, row, ' ', nil, bg)
		}
	}

	hr := l.HandleRect(sf.Position)
	if hr.Y >= 0 && hr.Y < viewRows {
		for col := hr.X; col < hr.X+hr.W; col++ {
			r.screen.SetContent(col, hr.Y, '━', nil, style(RgbHandle, RgbSheet))
		}
	}

	contentTop := l.ContentTopRow(sf.Position)
	first := int(sf.Scroll / parameter.CellHeightPx)
	lift := int(math.Round(sf.Overscroll / parameter.CellHeightPx))
	width := l.BodyWidth()
	for i := 0; ; i++ {
		row := contentTop + i - lift
		if row >= viewRows {
			break
		}
		idx := first + i
		if idx >= len(sf.Body) {
			break
		}
		if row < contentTop {
			continue
		}
		br := sf.Body[idx]
		switch {
		case br.Image >= 0:
			r.putCentered(2, row, width, br.Text, '▒', style(RgbText, RgbImage), viewRows)
		case br.Title:
			r.putText(2, row, width, br.Text, style(RgbText, RgbSheet).Bold(true), viewRows)
		default:
			r.putText(2, row, width, br.Text, style(RgbTextDim, RgbSheet), viewRows)
		}
	}
}

func (r *TerminalRenderer) drawModal(f *engine.Frame) {
	l := f.Layout
	m := f.Modal
	w := min(l.Cols-4, 40)
	h := 7
	x := (l.Cols - w) / 2
	y := (l.ViewRows() - h) / 2
	bg := style(RgbText, RgbImage)
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			r.screen.SetContent(x+col, y+row, ' ', nil, bg)
		}
	}
	image := ""
	if m.Index >= 0 && m.Index < len(m.Images) {
		image = m.Images[m.Index]
	}
	r.putCentered(x, y+1, w, fmt.Sprintf("image %d/%d", m.Index+1, len(m.Images)), ' ', bg.Bold(true), l.ViewRows())
	r.putCentered(x, y+3, w, image, ' ', bg, l.ViewRows())
	r.putCentered(x, y+4, w, m.Label, ' ', style(RgbTextDim, RgbImage), l.ViewRows())
	r.putCentered(x, y+5, w, "esc or tap to close", ' ', style(RgbTextDim, RgbImage), l.ViewRows())
}

// --- Status bar ---

func (r *TerminalRenderer) drawStatusBar(f *engine.Frame) {
	l := f.Layout
	row := l.Rows - 1
	if row < 0 {
		return
	}
	st := style(RgbText, RgbStatusBar)
	for col := 0; col < l.Cols; col++ {
		r.screen.SetContent(col, row, ' ', nil, st)
	}

	right := f.Status
	if f.Muted {
		right += "  muted"
	}
	if f.Paused {
		right += "  paused"
	}
	rw := runewidth.StringWidth(right)
	if rw > l.Cols {
		right = runewidth.Truncate(right, l.Cols, "…")
		rw = runewidth.StringWidth(right)
	}
	r.put(l.Cols-rw, row, right, style(RgbTextDim, RgbStatusBar))

	if f.Message != "" {
		avail := l.Cols - rw - 2
		if avail > 0 {
			r.put(1, row, runewidth.Truncate(f.Message, avail, "…"), st.Bold(true))
		}
	}
}

// --- Primitives ---

// put writes s at (x,y) honoring wide runes
func (r *TerminalRenderer) put(x, y int, s string, st tcell.Style) int {
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, nil, st)
		x += max(1, runewidth.RuneWidth(ch))
	}
	return x
}

// putText writes s truncated to width, skipping rows outside the view
func (r *TerminalRenderer) putText(x, y, width int, s string, st tcell.Style, viewRows int) {
	if y < 0 || y >= viewRows || width <= 0 {
		return
	}
	r.put(x, y, runewidth.Truncate(s, width, "…"), st)
}

// putCentered fills width cells with fill and centers s over them
func (r *TerminalRenderer) putCentered(x, y, width int, s string, fill rune, st tcell.Style, viewRows int) {
	if y < 0 || y >= viewRows || width <= 0 {
		return
	}
	for col := 0; col < width; col++ {
		r.screen.SetContent(x+col, y, fill, nil, st)
	}
	s = runewidth.Truncate(s, width, "…")
	r.put(x+(width-runewidth.StringWidth(s))/2, y, s, st)
}

// dimCell blends an already drawn cell toward black
func (r *TerminalRenderer) dimCell(x, y int, alpha float64) {
	ch, comb, st, _ := r.screen.GetContent(x, y)
	fg, bg, attr := st.Decompose()
	dim := func(c tcell.Color) tcell.Color {
		if !c.Valid() {
			return c
		}
		cr, cg, cb := c.RGB()
		return RGB{uint8(cr), uint8(cg), uint8(cb)}.Blend(RGB{}, alpha).Tcell()
	}
	r.screen.SetContent(x, y, ch, comb, tcell.StyleDefault.Foreground(dim(fg)).Background(dim(bg)).Attributes(attr))
}
