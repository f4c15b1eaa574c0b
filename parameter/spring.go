package parameter

import "time"

// Spring tuning, stiffness/damping/mass triples consumed by spring.Config
const (
	// SpringSettleStiffness drives sheet settling between open states
	SpringSettleStiffness = 300.0
	SpringSettleDamping   = 30.0
	SpringSettleMass      = 1.0

	// SpringCloseStiffness is the faster config used when the sheet closes
	SpringCloseStiffness = 500.0
	SpringCloseDamping   = 40.0
	SpringCloseMass      = 1.0

	// SpringReturnStiffness snaps a cancelled card back to center without oscillating
	SpringReturnStiffness = 500.0
	SpringReturnDamping   = 45.0
	SpringReturnMass      = 1.0

	// SpringExitStiffness throws a committed card off-screen
	SpringExitStiffness = 200.0
	SpringExitDamping   = 25.0
	SpringExitMass      = 1.0

	// SpringOverscrollStiffness pulls rubber-band offset back to zero
	SpringOverscrollStiffness = 400.0
	SpringOverscrollDamping   = 40.0
	SpringOverscrollMass      = 1.0
)

// Integration
const (
	// SpringStepHz is the fixed integration rate, independent of frame rate
	SpringStepHz = 120

	// SpringEpsilon is the settle distance in logical px (or percent for the sheet)
	SpringEpsilon = 0.01

	// SpringVelocityEpsilon is the settle speed in units per second
	SpringVelocityEpsilon = 0.05

	// SpringMaxFrameDelta caps a single Step so a stalled frame cannot explode the integrator
	SpringMaxFrameDelta = 100 * time.Millisecond
)
