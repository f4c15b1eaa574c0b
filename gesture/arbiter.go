package gesture

import (
	"time"

	"github.com/lixenwraith/petdeck/parameter"
)

// Session is the ephemeral record of one press on the sheet
type Session struct {
	Drag

	Mode               Mode
	Region             Region
	StartScrollOffset  float64
	ScrollAtTopAtStart bool
	ImageIndex         int // valid when Region == RegionImage
}

// Arbiter decides what a sheet interaction means and keeps that decision for the rest of the session
// At most one session is live; Begin discards any stale one first
type Arbiter struct {
	session *Session

	deadZone     float64
	topTolerance float64
}

// NewArbiter creates an arbiter with default dead zone and top tolerance
func NewArbiter() *Arbiter {
	return &Arbiter{
		deadZone:     parameter.ContentDragDeadZone,
		topTolerance: parameter.ScrollTopTolerance,
	}
}

// Begin opens a session for a press in region
// Header and handle presses resolve at once; image presses pin to ImageInteraction
func (a *Arbiter) Begin(region Region, x, y, scrollOffset float64, imageIndex int, now time.Time) *Session {
	a.session = nil

	s := &Session{
		Drag:               BeginDrag(x, y, now),
		Region:             region,
		StartScrollOffset:  scrollOffset,
		ScrollAtTopAtStart: scrollOffset <= a.topTolerance,
		ImageIndex:         imageIndex,
	}

	switch region {
	case RegionHandle, RegionHeader:
		s.Mode = ModeHeaderDrag
	case RegionContent:
		s.Mode = ModeUndetermined
	case RegionImage:
		s.Mode = ModeImageInteraction
	default:
		s.Mode = ModeNone
	}

	a.session = s
	return s
}

// Move feeds a pointer move and returns the session mode, ModeNone without a live session
// The first move of an undetermined content session resolves it; later moves never change the mode
func (a *Arbiter) Move(x, y, scrollOffset float64, now time.Time) Mode {
	s := a.session
	if s == nil {
		return ModeNone
	}
	if s.Mode == ModeImageInteraction {
		return s.Mode
	}

	s.Move(x, y, now)

	if s.Mode == ModeUndetermined {
		s.Mode = a.resolveContent(s, scrollOffset)
	}
	return s.Mode
}

// resolveContent picks ContentDrag only when every signal agrees, anything ambiguous stays native scroll
func (a *Arbiter) resolveContent(s *Session, scrollOffset float64) Mode {
	_, dy := s.Delta()
	atTop := s.ScrollAtTopAtStart && scrollOffset <= a.topTolerance
	if atTop && dy > a.deadZone {
		return ModeContentDrag
	}
	return ModeContentScroll
}

// End closes the live session and returns it, ok is false for a release without a matching press
func (a *Arbiter) End(x, y float64, now time.Time) (s Session, ok bool) {
	live := a.session
	if live == nil {
		return Session{}, false
	}
	a.session = nil

	if live.Mode != ModeImageInteraction {
		live.Move(x, y, now)
	}
	if live.Mode == ModeUndetermined {
		// Released without moving, nothing was dragged
		live.Mode = ModeContentScroll
	}
	return *live, true
}

// Cancel drops the live session without a release
func (a *Arbiter) Cancel() {
	a.session = nil
}

// Live reports whether a session is in progress
func (a *Arbiter) Live() bool {
	return a.session != nil
}

// Mode returns the live session mode, ModeNone when idle
func (a *Arbiter) Mode() Mode {
	if a.session == nil {
		return ModeNone
	}
	return a.session.Mode
}

// Session returns the live session, nil when idle
func (a *Arbiter) Session() *Session {
	return a.session
}
