// Package card drives the swipeable candidate stack: a draggable front card over a peeking next card
package card

import "github.com/lixenwraith/petdeck/parameter"

// Candidate is opaque render data for one adoption candidate
type Candidate struct {
	ID     string   `yaml:"id"`
	Name   string   `yaml:"name"`
	Label  string   `yaml:"label"`
	Images []string `yaml:"images"`
	Bio    string   `yaml:"bio"`
}

// Image returns the cover image URL, empty when none
func (c Candidate) Image() string {
	if len(c.Images) == 0 {
		return ""
	}
	return c.Images[0]
}

// Decision is the outcome of one completed drag
type Decision uint8

const (
	Cancelled   Decision = iota // springs back to center
	Ignore                      // swiped left, card leaves the stack
	AdoptIntent                 // swiped right, card leaves the stack
	OpenDetails                 // swiped up, card stays in front
)

// String returns human-readable decision name
func (d Decision) String() string {
	switch d {
	case Ignore:
		return "Ignore"
	case AdoptIntent:
		return "AdoptIntent"
	case OpenDetails:
		return "OpenDetails"
	default:
		return "Cancelled"
	}
}

// Commits reports whether the decision removes the card from the front
func (d Decision) Commits() bool {
	return d == Ignore || d == AdoptIntent
}

// Decide maps release displacement to a decision
// Horizontal wins over vertical; only strictly beyond the threshold commits
func Decide(dx, dy, threshold float64) Decision {
	switch {
	case dx < -threshold:
		return Ignore
	case dx > threshold:
		return AdoptIntent
	case dy < -threshold:
		return OpenDetails
	default:
		return Cancelled
	}
}

// Visual is the render transform of a card
type Visual struct {
	X, Y     float64 // offset from rest in px
	Rotation float64 // degrees, positive clockwise
	Scale    float64
}

// Transform derives rotation and scale from horizontal displacement
// Rotation is unclamped; scale bottoms out at parameter.CardScaleFloor
func Transform(dx float64) (rotation, scale float64) {
	rotation = dx * parameter.CardRotationPerPx
	abs := dx
	if abs < 0 {
		abs = -abs
	}
	scale = 1 - abs/parameter.CardScaleFalloff
	if scale < parameter.CardScaleFloor {
		scale = parameter.CardScaleFloor
	}
	return rotation, scale
}

// NextVisual is the fixed transform of the peeking card
func NextVisual() Visual {
	return Visual{Y: parameter.NextCardOffsetY, Scale: parameter.NextCardScale}
}
