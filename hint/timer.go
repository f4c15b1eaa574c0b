// Package hint reveals the swipe affordance after a quiet period on the front card
package hint

import (
	"time"

	"github.com/lixenwraith/petdeck/clock"
)

// State is what the view needs to render the hint
type State struct {
	Visible            bool
	LastInteractionEnd time.Time
}

// Timer counts down a quiet period per front card
// Every reschedule cancels the previous handle and bumps the generation, so a stale fire cannot reveal a hint for the wrong card
type Timer struct {
	sched *clock.Scheduler
	quiet time.Duration

	cardID string
	handle clock.TimerID
	gen    uint64
	active bool // interaction in progress

	state State
}

// New creates a stopped timer
func New(sched *clock.Scheduler, quiet time.Duration) *Timer {
	return &Timer{sched: sched, quiet: quiet}
}

// Reset binds the timer to a new front card, hiding the hint and restarting the countdown
func (t *Timer) Reset(cardID string) {
	t.cancel()
	t.state.Visible = false
	t.active = false
	t.cardID = cardID
	t.schedule()
}

// InteractionStart hides the hint and suspends the countdown
func (t *Timer) InteractionStart() {
	t.cancel()
	t.active = true
	t.state.Visible = false
}

// InteractionEnd restarts the full quiet period
func (t *Timer) InteractionEnd() {
	t.active = false
	t.state.LastInteractionEnd = t.sched.Now()
	t.cancel()
	t.schedule()
}

// Stop cancels everything, used on unmount or when the pool empties
func (t *Timer) Stop() {
	t.cancel()
	t.state.Visible = false
	t.active = false
	t.cardID = ""
}

// Visible reports whether the hint should render
func (t *Timer) Visible() bool {
	return t.state.Visible
}

// State returns a copy of the hint state
func (t *Timer) State() State {
	return t.state
}

// CardID returns the card the countdown belongs to
func (t *Timer) CardID() string {
	return t.cardID
}

// Pending reports whether a reveal is scheduled
func (t *Timer) Pending() bool {
	return t.sched.Pending(t.handle)
}

func (t *Timer) schedule() {
	if t.cardID == "" {
		return
	}
	gen := t.gen
	t.handle = t.sched.After(t.quiet, func() { t.reveal(gen) })
}

func (t *Timer) cancel() {
	t.sched.Cancel(t.handle)
	t.handle = 0
	t.gen++
}

func (t *Timer) reveal(gen uint64) {
	t.handle = 0
	if gen != t.gen || t.active {
		return
	}
	t.state.Visible = true
}
