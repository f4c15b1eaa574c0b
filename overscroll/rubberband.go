// Package overscroll renders cosmetic rubber-band resistance past the end of scroll content
// The offset lives in its own animated value; the real scroll offset is never touched
package overscroll

import (
	"math"
	"time"

	"github.com/lixenwraith/petdeck/parameter"
	"github.com/lixenwraith/petdeck/spring"
)

// RubberBand tracks upward pull beyond the bottom of content
type RubberBand struct {
	offset *spring.Value

	tracking bool    // anchor is valid
	anchorY  float64 // pointer y when the bottom was first reached

	damping float64
	maxPull float64
}

// New creates a rubber band at rest
func New() *RubberBand {
	return &RubberBand{
		offset:  spring.NewValue(0),
		damping: parameter.OverscrollDamping,
		maxPull: parameter.OverscrollMaxPull,
	}
}

// Move feeds the pointer y of a scrolling session and whether content is at its end
func (r *RubberBand) Move(atBottom bool, y float64) {
	if !atBottom {
		if r.tracking {
			r.tracking = false
			r.springBack()
		}
		return
	}
	if !r.tracking {
		r.tracking = true
		r.anchorY = y
		return
	}

	pull := r.anchorY - y
	if pull <= 0 {
		r.offset.Set(0)
		return
	}
	r.offset.Set(math.Min(r.maxPull, pull*r.damping))
}

// Release ends the pull and springs the offset back to zero
func (r *RubberBand) Release() *spring.Future {
	r.tracking = false
	return r.springBack()
}

// Reset zeroes the offset immediately, used on sheet close
func (r *RubberBand) Reset() {
	r.tracking = false
	r.offset.Set(0)
}

// Step advances the spring-back animation
func (r *RubberBand) Step(dt time.Duration) bool {
	return r.offset.Step(dt)
}

// Offset returns the visual pull in px, always in [0, maxPull]
func (r *RubberBand) Offset() float64 {
	return r.offset.Current()
}

func (r *RubberBand) springBack() *spring.Future {
	return r.offset.AnimateTo(0, spring.Overscroll)
}
