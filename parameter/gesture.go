package parameter

import "time"

// Card stack
const (
	// SwipeThreshold is the commit distance in logical px, shared by horizontal swipes and swipe-up
	SwipeThreshold = 100.0

	// CardRotationPerPx maps horizontal displacement to degrees, unclamped
	CardRotationPerPx = 0.125

	// CardScaleFalloff is the displacement in px at which scale would reach zero before the floor applies
	CardScaleFalloff = 1000.0

	// CardScaleFloor is the minimum front-card scale while dragging
	CardScaleFloor = 0.8

	// NextCardScale and NextCardOffsetY position the peeking card behind the front card
	NextCardScale   = 0.95
	NextCardOffsetY = 12.0

	// CardExitDistance is how far off-center a committed card flies
	CardExitDistance = 600.0

	// CardExitVelocityProjection carries release velocity into the exit target (seconds)
	CardExitVelocityProjection = 0.2
)

// Sheet
const (
	// SheetDragThresholdRatio is the release displacement, as a fraction of viewport height, that commits a transition
	SheetDragThresholdRatio = 0.10

	// SheetVelocityThresholdRatio is the release speed, in viewport heights per second, that commits a transition
	SheetVelocityThresholdRatio = 0.20

	// SheetTapSlop is the maximum movement in px for a header release to count as a handle tap
	SheetTapSlop = 5.0
)

// Gesture arbitration
const (
	// ContentDragDeadZone is the downward travel in px before content-at-top resolves to a sheet drag
	ContentDragDeadZone = 5.0

	// ScrollTopTolerance is the scroll offset in px still considered "at top"
	ScrollTopTolerance = 1.0

	// VelocityWindow is the sample history used for release velocity
	VelocityWindow = 100 * time.Millisecond
)

// Overscroll
const (
	// OverscrollDamping scales finger travel into rubber-band offset
	OverscrollDamping = 0.3

	// OverscrollMaxPull caps the rubber-band offset in px
	OverscrollMaxPull = 80.0

	// ScrollBottomTolerance is the distance from the end in px still considered "at bottom"
	ScrollBottomTolerance = 1.0
)

// Idle hint
const (
	// HintQuietPeriod is the idle time on a front card before the swipe hint appears
	HintQuietPeriod = 4 * time.Second
)
