package hint

import (
	"testing"
	"time"

	"github.com/lixenwraith/petdeck/clock"
	"github.com/lixenwraith/petdeck/parameter"
)

func setup() (*clock.MockTimeProvider, *clock.Scheduler, *Timer) {
	tp := clock.NewMockTimeProvider(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	s := clock.NewScheduler(tp)
	return tp, s, New(s, parameter.HintQuietPeriod)
}

func advance(tp *clock.MockTimeProvider, s *clock.Scheduler, d time.Duration) {
	tp.Advance(d)
	s.Fire()
}

// TestRevealAfterQuietPeriod verifies the hint appears only once the quiet period elapses
func TestRevealAfterQuietPeriod(t *testing.T) {
	tp, s, h := setup()
	h.Reset("A")

	advance(tp, s, parameter.HintQuietPeriod-time.Millisecond)
	if h.Visible() {
		t.Fatal("hint visible before quiet period elapsed")
	}
	advance(tp, s, time.Millisecond)
	if !h.Visible() {
		t.Fatal("hint not visible after quiet period")
	}
}

// TestInteractionStartHidesAndSuspends verifies an active interaction blocks the reveal
func TestInteractionStartHidesAndSuspends(t *testing.T) {
	tp, s, h := setup()
	h.Reset("A")
	advance(tp, s, parameter.HintQuietPeriod)
	if !h.Visible() {
		t.Fatal("precondition: hint visible")
	}

	h.InteractionStart()
	if h.Visible() {
		t.Error("InteractionStart did not hide the hint")
	}
	advance(tp, s, 10*parameter.HintQuietPeriod)
	if h.Visible() {
		t.Error("hint revealed during an interaction")
	}

	h.InteractionEnd()
	advance(tp, s, parameter.HintQuietPeriod/2)
	if h.Visible() {
		t.Error("hint revealed before a full quiet period after interaction end")
	}
	advance(tp, s, parameter.HintQuietPeriod/2)
	if !h.Visible() {
		t.Error("hint not revealed a full quiet period after interaction end")
	}
	if got := h.State().LastInteractionEnd; !got.Equal(time.Date(2024, 1, 1, 0, 0, 44, 0, time.UTC)) {
		t.Errorf("LastInteractionEnd = %v", got)
	}
}

// TestResetOnCardChange verifies a front-card change hides the hint and restarts the countdown
func TestResetOnCardChange(t *testing.T) {
	tp, s, h := setup()
	h.Reset("A")
	advance(tp, s, parameter.HintQuietPeriod)
	if !h.Visible() {
		t.Fatal("precondition: hint visible for A")
	}

	h.Reset("B")
	if h.Visible() {
		t.Fatal("hint still visible after front card changed")
	}
	if h.CardID() != "B" {
		t.Errorf("CardID() = %q, want B", h.CardID())
	}
	if s.Len() != 1 {
		t.Errorf("pending timers = %d, want exactly one", s.Len())
	}

	advance(tp, s, parameter.HintQuietPeriod-time.Millisecond)
	if h.Visible() {
		t.Error("countdown did not restart for B")
	}
	advance(tp, s, time.Millisecond)
	if !h.Visible() {
		t.Error("hint not revealed for B")
	}
}

// TestStaleTimerCannotReveal verifies a countdown for an old card never fires
func TestStaleTimerCannotReveal(t *testing.T) {
	tp, s, h := setup()
	h.Reset("A")
	advance(tp, s, parameter.HintQuietPeriod-time.Second)
	h.Reset("B")

	advance(tp, s, time.Second)
	if h.Visible() {
		t.Error("A's countdown revealed the hint on B")
	}
}

// TestStop verifies teardown clears pending reveals
func TestStop(t *testing.T) {
	tp, s, h := setup()
	h.Reset("A")
	h.Stop()
	if h.Pending() || s.Len() != 0 {
		t.Error("Stop left a pending reveal")
	}
	advance(tp, s, 2*parameter.HintQuietPeriod)
	if h.Visible() {
		t.Error("hint visible after Stop")
	}

	h.InteractionEnd()
	if s.Len() != 0 {
		t.Error("InteractionEnd without a card scheduled a reveal")
	}
}
