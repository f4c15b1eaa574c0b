package parameter

import "time"

// Terminal host layout, one character cell expressed in logical px
const (
	CellWidthPx  = 8.0
	CellHeightPx = 16.0

	// CardWidthCells and CardHeightCells size the front card at scale 1
	CardWidthCells  = 32
	CardHeightCells = 14

	// SheetHeaderRows is the draggable header height, the handle sits on its first row
	SheetHeaderRows = 2

	// SheetImageRows is the height of each image tile in the sheet content
	SheetImageRows = 4

	// ScrollLineRows is how many rows a wheel notch scrolls
	ScrollLineRows = 3
)

// Frame loop
const (
	// FrameRate is the default display-frame rate of the host loop
	FrameRate    = 60
	MinFrameRate = 10
	MaxFrameRate = 240

	// InputQueueSize buffers terminal events between the poll goroutine and the loop
	InputQueueSize = 64

	// StatusMessageTimeout is how long a host status message stays visible
	StatusMessageTimeout = 2 * time.Second
)
