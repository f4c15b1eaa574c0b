// Package sheet drives the three-state pet details bottom sheet
package sheet

import "fmt"

// ViewState is a committed resting state of the sheet
type ViewState uint8

const (
	Closed ViewState = iota
	Partial
	Full
)

// String returns human-readable state name
func (v ViewState) String() string {
	switch v {
	case Closed:
		return "Closed"
	case Partial:
		return "Partial"
	case Full:
		return "Full"
	default:
		return "Unknown"
	}
}

// Position is the top edge offset as a percent of viewport height, 100 is fully off-screen
func (v ViewState) Position() float64 {
	switch v {
	case Partial:
		return 20
	case Full:
		return 0
	default:
		return 100
	}
}

// Height is the visible sheet height as a percent of viewport height
func (v ViewState) Height() float64 {
	return 100 - v.Position()
}

// Phase is the lifecycle stage of the sheet
type Phase uint8

const (
	PhaseClosed  Phase = iota // at rest off-screen, ready to open
	PhaseOpening              // animating Closed to Partial
	PhaseOpen                 // resting or dragging in Partial or Full
	PhaseClosing              // animating to Closed, input ignored
)

// String returns human-readable phase name
func (p Phase) String() string {
	switch p {
	case PhaseClosed:
		return "Closed"
	case PhaseOpening:
		return "Opening"
	case PhaseOpen:
		return "Open"
	case PhaseClosing:
		return "Closing"
	default:
		return "Unknown"
	}
}

// Lifecycle is the single tagged state of the machine
// The view is only carried by Open; constructors keep every other combination unrepresentable
type Lifecycle struct {
	phase Phase
	view  ViewState
}

func lifecycleClosed() Lifecycle          { return Lifecycle{phase: PhaseClosed, view: Closed} }
func lifecycleOpening() Lifecycle         { return Lifecycle{phase: PhaseOpening, view: Partial} }
func lifecycleOpen(v ViewState) Lifecycle { return Lifecycle{phase: PhaseOpen, view: v} }
func lifecycleClosing() Lifecycle         { return Lifecycle{phase: PhaseClosing, view: Closed} }

// Phase returns the lifecycle stage
func (l Lifecycle) Phase() Phase {
	return l.phase
}

// View returns the state chrome should render for: Partial while opening, Closed while closing
func (l Lifecycle) View() ViewState {
	return l.view
}

// ReadyToOpen is true only once a close has fully completed
func (l Lifecycle) ReadyToOpen() bool {
	return l.phase == PhaseClosed
}

// Interactive reports whether drags and taps are accepted
func (l Lifecycle) Interactive() bool {
	return l.phase == PhaseOpening || l.phase == PhaseOpen
}

// String returns e.g. "Open(Full)"
func (l Lifecycle) String() string {
	if l.phase == PhaseOpen {
		return fmt.Sprintf("Open(%s)", l.view)
	}
	return l.phase.String()
}
