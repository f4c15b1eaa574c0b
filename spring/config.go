// Package spring animates scalar and 2D values toward targets with damped spring motion
// Each Value is owned by one component; Set tracks a finger 1:1, AnimateTo hands control to the integrator
package spring

import (
	"math"

	"github.com/lixenwraith/petdeck/parameter"
)

// Config is a physical spring description
type Config struct {
	Stiffness float64 // k, N/m
	Damping   float64 // c, N·s/m
	Mass      float64 // m, kg
}

// Predefined configs, built once from parameter constants
var (
	Settle     = Config{parameter.SpringSettleStiffness, parameter.SpringSettleDamping, parameter.SpringSettleMass}
	Close      = Config{parameter.SpringCloseStiffness, parameter.SpringCloseDamping, parameter.SpringCloseMass}
	Return     = Config{parameter.SpringReturnStiffness, parameter.SpringReturnDamping, parameter.SpringReturnMass}
	Exit       = Config{parameter.SpringExitStiffness, parameter.SpringExitDamping, parameter.SpringExitMass}
	Overscroll = Config{parameter.SpringOverscrollStiffness, parameter.SpringOverscrollDamping, parameter.SpringOverscrollMass}
)

// normalized replaces non-physical fields with usable values
func (c Config) normalized() Config {
	if c.Mass <= 0 {
		c.Mass = 1
	}
	if c.Stiffness <= 0 {
		c.Stiffness = parameter.SpringSettleStiffness
	}
	if c.Damping < 0 {
		c.Damping = 0
	}
	return c
}

// AngularFrequency returns ω = √(k/m)
func (c Config) AngularFrequency() float64 {
	c = c.normalized()
	return math.Sqrt(c.Stiffness / c.Mass)
}

// DampingRatio returns ζ = c / (2√(km)); 1 is critical, below 1 oscillates
func (c Config) DampingRatio() float64 {
	c = c.normalized()
	return c.Damping / (2 * math.Sqrt(c.Stiffness*c.Mass))
}
