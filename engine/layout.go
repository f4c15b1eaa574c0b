package engine

import (
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/petdeck/card"
	"github.com/lixenwraith/petdeck/gesture"
	"github.com/lixenwraith/petdeck/parameter"
)

// Rect is a cell rectangle
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell lies inside r
func (r Rect) Contains(col, row int) bool {
	return col >= r.X && col < r.X+r.W && row >= r.Y && row < r.Y+r.H
}

// Layout maps the terminal grid to px geometry shared by hit testing and drawing
// The last row is reserved for the status line
type Layout struct {
	Cols, Rows int
}

// ViewRows is the number of rows available to the deck and the sheet
func (l Layout) ViewRows() int {
	if l.Rows <= 1 {
		return 1
	}
	return l.Rows - 1
}

// ViewportHeight is the sheet viewport in px
func (l Layout) ViewportHeight() float64 {
	return float64(l.ViewRows()) * parameter.CellHeightPx
}

// CardRect is the front card at rest
func (l Layout) CardRect() Rect {
	w := min(parameter.CardWidthCells, l.Cols)
	h := min(parameter.CardHeightCells, l.ViewRows())
	y := (l.ViewRows() - h) / 2
	if y > 1 {
		y--
	}
	return Rect{X: (l.Cols - w) / 2, Y: max(0, y), W: w, H: h}
}

// SheetTopRow is the first sheet row for a position in percent of the viewport
func (l Layout) SheetTopRow(position float64) int {
	return int(math.Round(position / 100 * float64(l.ViewRows())))
}

// SheetTopPx is the sheet top edge in px
func (l Layout) SheetTopPx(position float64) float64 {
	return position / 100 * l.ViewportHeight()
}

// HandleRect is the grab handle on the first header row
func (l Layout) HandleRect(position float64) Rect {
	const w = 8
	return Rect{X: (l.Cols - w) / 2, Y: l.SheetTopRow(position), W: w, H: 1}
}

// ContentTopRow is the first scrolled content row
func (l Layout) ContentTopRow(position float64) int {
	return l.SheetTopRow(position) + parameter.SheetHeaderRows
}

// VisibleContentHeight is the unscrolled content window in px
func (l Layout) VisibleContentHeight(position float64) float64 {
	rows := l.ViewRows() - l.ContentTopRow(position)
	return float64(max(0, rows)) * parameter.CellHeightPx
}

// BodyWidth is the text column width inside the sheet
func (l Layout) BodyWidth() int {
	return max(8, l.Cols-4)
}

// BodyRow is one row of sheet content
type BodyRow struct {
	Text  string
	Image int // image tile index, -1 for text
	Title bool
}

// Body lays out the detail content of c for the sheet: title, label, image tiles, then the wrapped bio
func (l Layout) Body(c card.Candidate) []BodyRow {
	rows := []BodyRow{
		{Text: c.Name, Image: -1, Title: true},
		{Text: c.Label, Image: -1},
		{Image: -1},
	}
	for i, img := range c.Images {
		for r := 0; r < parameter.SheetImageRows; r++ {
			row := BodyRow{Image: i}
			if r == parameter.SheetImageRows/2 {
				row.Text = img
			}
			rows = append(rows, row)
		}
		rows = append(rows, BodyRow{Image: -1})
	}
	if c.Bio != "" {
		rows = append(rows, BodyRow{Text: "About " + c.Name, Image: -1, Title: true})
		for _, line := range wrap(c.Bio, l.BodyWidth()) {
			rows = append(rows, BodyRow{Text: line, Image: -1})
		}
	}
	return rows
}

// ContentHeight is the full body height in px
func ContentHeight(rows []BodyRow) float64 {
	return float64(len(rows)) * parameter.CellHeightPx
}

// SheetHit classifies a cell inside the sheet for the gesture arbiter
// Rows above the sheet return RegionNone
func (l Layout) SheetHit(col, row int, position, scroll float64, body []BodyRow) (gesture.Region, int) {
	top := l.SheetTopRow(position)
	switch {
	case row < top:
		return gesture.RegionNone, -1
	case l.HandleRect(position).Contains(col, row):
		return gesture.RegionHandle, -1
	case row < top+parameter.SheetHeaderRows:
		return gesture.RegionHeader, -1
	}

	idx := row - l.ContentTopRow(position) + int(scroll/parameter.CellHeightPx)
	if idx >= 0 && idx < len(body) && body[idx].Image >= 0 {
		return gesture.RegionImage, body[idx].Image
	}
	return gesture.RegionContent, -1
}

// wrap breaks s into lines no wider than width display cells
func wrap(s string, width int) []string {
	var lines []string
	var cur strings.Builder
	curW := 0
	for _, word := range strings.Fields(s) {
		ww := runewidth.StringWidth(word)
		if ww > width {
			word = runewidth.Truncate(word, width, "…")
			ww = runewidth.StringWidth(word)
		}
		if curW > 0 && curW+1+ww > width {
			lines = append(lines, cur.String())
			cur.Reset()
			curW = 0
		}
		if curW > 0 {
			cur.WriteByte(' ')
			curW++
		}
		cur.WriteString(word)
		curW += ww
	}
	if curW > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
