package gesture

import (
	"time"

	"github.com/lixenwraith/petdeck/parameter"
)

const maxSamples = 16

type sample struct {
	t    time.Time
	x, y float64
}

// VelocityTracker estimates pointer velocity over a short trailing window
// Fixed ring, no allocation per move
type VelocityTracker struct {
	samples [maxSamples]sample
	head    int // next write slot
	count   int
	window  time.Duration
}

// NewVelocityTracker creates a tracker over parameter.VelocityWindow
func NewVelocityTracker() VelocityTracker {
	return VelocityTracker{window: parameter.VelocityWindow}
}

// Reset drops all samples
func (vt *VelocityTracker) Reset() {
	vt.head = 0
	vt.count = 0
}

// Add records a pointer position
func (vt *VelocityTracker) Add(t time.Time, x, y float64) {
	vt.samples[vt.head] = sample{t: t, x: x, y: y}
	vt.head = (vt.head + 1) % maxSamples
	if vt.count < maxSamples {
		vt.count++
	}
}

// Velocity returns px/s between the oldest in-window sample and the newest
func (vt *VelocityTracker) Velocity() (vx, vy float64) {
	if vt.count < 2 {
		return 0, 0
	}
	window := vt.window
	if window <= 0 {
		window = parameter.VelocityWindow
	}

	newest := vt.samples[(vt.head-1+maxSamples)%maxSamples]
	oldest := newest
	for i := 2; i <= vt.count; i++ {
		s := vt.samples[(vt.head-i+maxSamples)%maxSamples]
		if newest.t.Sub(s.t) > window {
			break
		}
		oldest = s
	}

	dt := newest.t.Sub(oldest.t).Seconds()
	if dt <= 0 {
		return 0, 0
	}
	return (newest.x - oldest.x) / dt, (newest.y - oldest.y) / dt
}
