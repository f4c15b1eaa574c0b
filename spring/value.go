package spring

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/lixenwraith/petdeck/parameter"
)

var stepDuration = time.Second / parameter.SpringStepHz

// Value is an animated scalar: current position, target and instantaneous velocity (units/s)
type Value struct {
	current  float64
	target   float64
	velocity float64

	config Config
	motion harmonica.Spring

	animating bool
	future    *Future
	accum     time.Duration // unintegrated frame time
}

// NewValue creates a value at rest at v
func NewValue(v float64) *Value {
	return &Value{current: v, target: v}
}

func (v *Value) Current() float64  { return v.current }
func (v *Value) Target() float64   { return v.target }
func (v *Value) Velocity() float64 { return v.velocity }
func (v *Value) Animating() bool   { return v.animating }
func (v *Value) Config() Config    { return v.config }

// Set moves the value immediately and stops any animation, used for 1:1 drag tracking
func (v *Value) Set(x float64) {
	v.supersede()
	v.current = x
	v.target = x
	v.velocity = 0
}

// SetVelocity seeds the velocity carried into the next AnimateTo, typically the release speed of a finger
func (v *Value) SetVelocity(vel float64) {
	v.velocity = vel
}

// AnimateTo starts spring motion toward target
// A running animation is superseded and its velocity carried over
func (v *Value) AnimateTo(target float64, cfg Config) *Future {
	v.supersede()

	cfg = cfg.normalized()
	v.config = cfg
	v.target = target
	v.motion = harmonica.NewSpring(harmonica.FPS(parameter.SpringStepHz), cfg.AngularFrequency(), cfg.DampingRatio())
	v.future = newFuture()
	f := v.future

	if v.atRest() {
		v.finish()
		return f
	}
	v.animating = true
	return f
}

// Step advances the integrator by one frame, returns true while still animating
func (v *Value) Step(dt time.Duration) bool {
	if !v.animating {
		return false
	}
	if dt > parameter.SpringMaxFrameDelta {
		dt = parameter.SpringMaxFrameDelta
	}

	v.accum += dt
	for v.accum >= stepDuration {
		v.accum -= stepDuration
		v.current, v.velocity = v.motion.Update(v.current, v.velocity, v.target)
		if v.atRest() {
			v.finish()
			return false
		}
	}
	return true
}

// Future returns the in-flight animation future, nil when none was started
func (v *Value) Future() *Future {
	return v.future
}

func (v *Value) atRest() bool {
	return math.Abs(v.current-v.target) < parameter.SpringEpsilon &&
		math.Abs(v.velocity) < parameter.SpringVelocityEpsilon
}

func (v *Value) finish() {
	v.current = v.target
	v.velocity = 0
	v.animating = false
	v.accum = 0
	if f := v.future; f != nil {
		f.resolve(Completed)
	}
}

func (v *Value) supersede() {
	v.animating = false
	v.accum = 0
	if f := v.future; f != nil && !f.Settled() {
		f.resolve(Superseded)
	}
}
