// Package gesture classifies continuous pointer input into one interaction mode per session
package gesture

// Mode is the resolved meaning of an interaction session
type Mode uint8

const (
	ModeUndetermined     Mode = iota // content session before its first move
	ModeNone                         // began outside any interactive region
	ModeHeaderDrag                   // drags the sheet by its header or handle
	ModeContentDrag                  // drags the sheet from scroll content resting at top
	ModeContentScroll                // native scrolling, the sheet stays put
	ModeImageInteraction             // tap on an image, never moves the sheet
	ModeCardDrag                     // free drag of the front card
)

// String returns human-readable mode name
func (m Mode) String() string {
	switch m {
	case ModeUndetermined:
		return "Undetermined"
	case ModeNone:
		return "None"
	case ModeHeaderDrag:
		return "HeaderDrag"
	case ModeContentDrag:
		return "ContentDrag"
	case ModeContentScroll:
		return "ContentScroll"
	case ModeImageInteraction:
		return "ImageInteraction"
	case ModeCardDrag:
		return "CardDrag"
	default:
		return "Unknown"
	}
}

// DragsSheet reports whether the mode moves the sheet itself
func (m Mode) DragsSheet() bool {
	return m == ModeHeaderDrag || m == ModeContentDrag
}

// Region is where a session began, supplied by the view's hit test
type Region uint8

const (
	RegionNone Region = iota
	RegionHandle
	RegionHeader
	RegionContent
	RegionImage
)

// String returns human-readable region name
func (r Region) String() string {
	switch r {
	case RegionHandle:
		return "Handle"
	case RegionHeader:
		return "Header"
	case RegionContent:
		return "Content"
	case RegionImage:
		return "Image"
	default:
		return "None"
	}
}
