package engine

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/petdeck/audio"
	"github.com/lixenwraith/petdeck/card"
	"github.com/lixenwraith/petdeck/clock"
	"github.com/lixenwraith/petdeck/config"
	"github.com/lixenwraith/petdeck/gesture"
	"github.com/lixenwraith/petdeck/input"
	"github.com/lixenwraith/petdeck/parameter"
	"github.com/lixenwraith/petdeck/sheet"
	"github.com/lixenwraith/petdeck/status"
)

const frame = time.Second / 60

type recordingSounder struct {
	cues  []audio.Cue
	muted bool
}

func (r *recordingSounder) Play(c audio.Cue) bool {
	if r.muted {
		return false
	}
	r.cues = append(r.cues, c)
	return true
}
func (r *recordingSounder) SetMuted(m bool) { r.muted = m }
func (r *recordingSounder) Muted() bool     { return r.muted }

type recordingRenderer struct {
	frames int
	last   *Frame
}

func (r *recordingRenderer) Draw(f *Frame) {
	r.frames++
	r.last = f
}

type harness struct {
	t     *testing.T
	tp    *clock.MockTimeProvider
	e     *Engine
	sound *recordingSounder
	draw  *recordingRenderer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cfg := config.Default()
	cfg.Candidates = []card.Candidate{
		{ID: "a", Name: "Alpha", Label: "dog", Images: []string{"a1.jpg", "a2.jpg"}, Bio: "Good dog."},
		{ID: "b", Name: "Beta", Label: "cat", Images: []string{"b1.jpg"}},
		{ID: "c", Name: "Gamma", Label: "rabbit"},
	}
	h := &harness{
		t:     t,
		tp:    clock.NewMockTimeProvider(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		sound: &recordingSounder{},
		draw:  &recordingRenderer{},
	}
	h.e = New(cfg, 80, 40, WithTimeProvider(h.tp), WithSounder(h.sound), WithRenderer(h.draw))
	return h
}

func (h *harness) run(d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += frame {
		h.tp.Advance(frame)
		h.e.Step()
	}
}

func (h *harness) mouse(col, row int, btn tcell.ButtonMask) {
	h.e.HandleEvent(tcell.NewEventMouse(col, row, btn, tcell.ModNone))
}

func (h *harness) key(k tcell.Key, r rune) {
	h.e.HandleEvent(tcell.NewEventKey(k, r, tcell.ModNone))
}

// drag presses at (col,row), moves by (dc,dr) in four steps over 200ms and releases
func (h *harness) drag(col, row, dc, dr int) {
	h.mouse(col, row, tcell.Button1)
	for i := 1; i <= 4; i++ {
		h.tp.Advance(50 * time.Millisecond)
		h.mouse(col+dc*i/4, row+dr*i/4, tcell.Button1)
	}
	h.mouse(col+dc, row+dr, tcell.ButtonNone)
}

func (h *harness) tap(col, row int) {
	h.mouse(col, row, tcell.Button1)
	h.tp.Advance(30 * time.Millisecond)
	h.mouse(col, row, tcell.ButtonNone)
}

func (h *harness) cardCenter() (int, int) {
	r := h.e.Layout().CardRect()
	return r.X + r.W/2, r.Y + r.H/2
}

func (h *harness) openSheet() {
	h.t.Helper()
	h.key(tcell.KeyUp, 0)
	h.run(2 * time.Second)
	if l := h.e.Sheet().Lifecycle(); l.Phase() != sheet.PhaseOpen || l.View() != sheet.Partial {
		h.t.Fatalf("sheet = %v, want open partial", l)
	}
}

// TestMouseSwipeRightLikes verifies a terminal mouse drag commits the front card
func TestMouseSwipeRightLikes(t *testing.T) {
	h := newHarness(t)
	col, row := h.cardCenter()

	h.drag(col, row, 20, 0)

	if got := h.e.Metrics().Count(status.CardLike); got != 1 {
		t.Fatalf("likes = %d, want 1", got)
	}
	if id := h.e.Deck().FrontID(); id != "b" {
		t.Errorf("front = %q, want b", id)
	}
	if len(h.sound.cues) != 1 || h.sound.cues[0] != audio.CueLike {
		t.Errorf("cues = %v", h.sound.cues)
	}

	h.run(frame)
	f := h.draw.last
	if f == nil || f.Front == nil || f.Front.Card.ID != "b" || f.Next == nil || f.Next.Card.ID != "c" {
		t.Fatalf("frame window wrong: %+v", f)
	}
	if len(f.Exits) != 1 || f.Exits[0].Card.ID != "a" || f.Exits[0].Decision != card.AdoptIntent {
		t.Errorf("exits = %+v", f.Exits)
	}
	if f.Message == "" {
		t.Error("no status message after like")
	}
}

// TestShortDragSnapsBack verifies a cancelled drag counts and cues once without committing
func TestShortDragSnapsBack(t *testing.T) {
	h := newHarness(t)
	col, row := h.cardCenter()
	h.drag(col, row, -6, 0)

	if h.e.Metrics().Count(status.CardCancel) != 1 || h.e.Deck().FrontID() != "a" {
		t.Errorf("cancel=%d front=%q", h.e.Metrics().Count(status.CardCancel), h.e.Deck().FrontID())
	}
	if len(h.sound.cues) != 1 || h.sound.cues[0] != audio.CueSnap {
		t.Errorf("cues = %v", h.sound.cues)
	}
}

func TestPressOutsideCardIgnored(t *testing.T) {
	h := newHarness(t)
	h.drag(1, 1, 40, 0)
	if h.e.Deck().FrontID() != "a" || h.e.Metrics().Count(status.CardLike) != 0 {
		t.Error("drag outside the card moved the stack")
	}
}

// TestSwipeUpOpensSheetEscCloses walks details open and keyboard close
func TestSwipeUpOpensSheetEscCloses(t *testing.T) {
	h := newHarness(t)
	col, row := h.cardCenter()
	h.drag(col, row, 0, -10)

	if h.e.Metrics().Count(status.CardDetails) != 1 {
		t.Fatalf("details = %d, want exactly 1 across drag and touch paths", h.e.Metrics().Count(status.CardDetails))
	}
	if h.e.Deck().FrontID() != "a" {
		t.Errorf("details advanced the stack")
	}
	if p := h.e.Sheet().Lifecycle().Phase(); p != sheet.PhaseOpening {
		t.Fatalf("sheet phase = %v, want Opening", p)
	}
	if h.e.Sheet().Content().ID != "a" {
		t.Errorf("sheet content = %q", h.e.Sheet().Content().ID)
	}
	h.run(2 * time.Second)
	if h.e.Sheet().ViewState() != sheet.Partial {
		t.Fatalf("view = %v", h.e.Sheet().ViewState())
	}

	// deck keys are inert while the sheet has focus
	h.key(tcell.KeyRight, 0)
	if h.e.Deck().FrontID() != "a" {
		t.Error("deck key acted under the sheet")
	}

	h.key(tcell.KeyEscape, 0)
	if p := h.e.Sheet().Lifecycle().Phase(); p != sheet.PhaseClosing {
		t.Fatalf("phase after Esc = %v", p)
	}
	h.run(2 * time.Second)
	if h.e.Sheet().ViewState() != sheet.Closed || h.e.Metrics().Count(status.SheetClose) != 1 {
		t.Errorf("view=%v closes=%d", h.e.Sheet().ViewState(), h.e.Metrics().Count(status.SheetClose))
	}
	if h.e.Metrics().Count(status.SheetOpen) != 1 {
		t.Errorf("opens = %d", h.e.Metrics().Count(status.SheetOpen))
	}

	h.key(tcell.KeyRight, 0)
	if h.e.Deck().FrontID() != "b" {
		t.Error("deck keys not restored after close")
	}
}

// TestSheetHeaderDragCloses verifies dragging the header down past the distance threshold closes
func TestSheetHeaderDragCloses(t *testing.T) {
	h := newHarness(t)
	h.openSheet()
	top := h.e.Layout().SheetTopRow(h.e.Sheet().Position())

	h.drag(2, top+1, 0, 10)
	if p := h.e.Sheet().Lifecycle().Phase(); p != sheet.PhaseClosing {
		t.Fatalf("phase = %v, want Closing", p)
	}
	h.run(2 * time.Second)
	if h.e.Sheet().ViewState() != sheet.Closed {
		t.Errorf("view = %v", h.e.Sheet().ViewState())
	}
}

func TestHandleTapExpands(t *testing.T) {
	h := newHarness(t)
	h.openSheet()
	hr := h.e.Layout().HandleRect(h.e.Sheet().Position())

	h.tap(hr.X+1, hr.Y)
	h.run(2 * time.Second)
	if h.e.Sheet().ViewState() != sheet.Full {
		t.Errorf("view after handle tap = %v, want Full", h.e.Sheet().ViewState())
	}

	h.key(tcell.KeyRune, ' ')
	h.run(2 * time.Second)
	if h.e.Sheet().ViewState() != sheet.Partial {
		t.Errorf("view after space = %v, want Partial", h.e.Sheet().ViewState())
	}
}

func TestScrimTapCloses(t *testing.T) {
	h := newHarness(t)
	h.openSheet()
	h.tap(40, 1)
	if p := h.e.Sheet().Lifecycle().Phase(); p != sheet.PhaseClosing {
		t.Errorf("phase after scrim tap = %v", p)
	}
}

// TestImageTapOpensModal verifies image taps open the viewer and Esc closes it before the sheet
func TestImageTapOpensModal(t *testing.T) {
	h := newHarness(t)
	h.openSheet()

	pos := h.e.Sheet().Position()
	idx := -1
	for i, r := range h.e.Snapshot().Sheet.Body {
		if r.Image == 1 {
			idx = i
			break
		}
	}
	if idx < 0 {
		t.Fatal("no image row for image 1")
	}
	row := h.e.Layout().ContentTopRow(pos) + idx
	if region, img := h.e.Layout().SheetHit(5, row, pos, 0, h.e.Snapshot().Sheet.Body); region != gesture.RegionImage || img != 1 {
		t.Fatalf("SheetHit = %v/%d", region, img)
	}

	h.tap(5, row)
	m := h.e.Snapshot().Modal
	if m == nil || m.Index != 1 || len(m.Images) != 2 {
		t.Fatalf("modal = %+v", m)
	}

	h.key(tcell.KeyEscape, 0)
	if h.e.Snapshot().Modal != nil {
		t.Error("Esc did not close the modal")
	}
	if h.e.Sheet().Lifecycle().Phase() != sheet.PhaseOpen {
		t.Error("Esc closed the sheet together with the modal")
	}
}

// TestBlurPausesTimers verifies losing focus freezes the hint countdown and animations
func TestBlurPausesTimers(t *testing.T) {
	h := newHarness(t)
	h.e.Dispatch(&input.Intent{Type: input.IntentBlur})
	h.run(3 * parameter.HintQuietPeriod)
	if h.e.Deck().HintVisible() {
		t.Fatal("hint revealed while unfocused")
	}
	if !h.draw.last.Paused {
		t.Error("frame not marked paused")
	}

	h.e.Dispatch(&input.Intent{Type: input.IntentFocus})
	h.run(parameter.HintQuietPeriod + frame)
	if !h.e.Deck().HintVisible() {
		t.Error("hint not revealed after focus returned")
	}
}

func TestBlurReleasesHeldCard(t *testing.T) {
	h := newHarness(t)
	col, row := h.cardCenter()
	h.mouse(col, row, tcell.Button1)
	h.tp.Advance(100 * time.Millisecond)
	h.mouse(col+4, row, tcell.Button1)

	h.e.Dispatch(&input.Intent{Type: input.IntentBlur})
	if h.e.Deck().Dragging() {
		t.Error("card still held after blur")
	}

	h.e.Dispatch(&input.Intent{Type: input.IntentFocus})
	h.key(tcell.KeyLeft, 0)
	if h.e.Deck().FrontID() != "b" {
		t.Errorf("keyboard swipe after blur left front %q, want b", h.e.Deck().FrontID())
	}
}

// TestContentDragScrollsBody verifies a drag in the sheet body scrolls it without moving the sheet
func TestContentDragScrollsBody(t *testing.T) {
	h := newHarness(t)
	h.e.HandleEvent(tcell.NewEventResize(80, 16))
	h.openSheet()
	h.run(frame)

	pos := h.e.Sheet().Position()
	row := h.e.Layout().ContentTopRow(pos) + 2
	if region, _ := h.e.Layout().SheetHit(10, row, pos, 0, h.e.Snapshot().Sheet.Body); region != gesture.RegionContent {
		t.Fatalf("SheetHit = %v, want content", region)
	}

	h.drag(10, row, 0, -4)
	h.run(frame)
	if got, want := h.e.Sheet().ScrollOffset(), 4*parameter.CellHeightPx; got != want {
		t.Errorf("ScrollOffset() = %v, want %v", got, want)
	}
	if h.e.Sheet().Position() != pos || h.e.Sheet().ViewState() != sheet.Partial {
		t.Errorf("content drag moved the sheet to %v (%v)", h.e.Sheet().Position(), h.e.Sheet().ViewState())
	}

	// scrolled content dragged down scrolls back instead of closing
	row = h.e.Layout().ContentTopRow(pos) + 3
	if region, _ := h.e.Layout().SheetHit(10, row, pos, h.e.Sheet().ScrollOffset(), h.e.Snapshot().Sheet.Body); region != gesture.RegionContent {
		t.Fatalf("SheetHit after scroll = %v, want content", region)
	}
	h.drag(10, row, 0, 6)
	h.run(frame)
	if got := h.e.Sheet().ScrollOffset(); got != 0 {
		t.Errorf("ScrollOffset() after drag down = %v, want 0", got)
	}
	if p := h.e.Sheet().Lifecycle().Phase(); p != sheet.PhaseOpen {
		t.Errorf("phase = %v, want Open", p)
	}
}

// TestPostKeepsReleases verifies a full queue sheds drag motion but never a button release
func TestPostKeepsReleases(t *testing.T) {
	h := newHarness(t)
	held := tcell.NewEventMouse(10, 10, tcell.Button1, tcell.ModNone)
	for i := 0; i < parameter.InputQueueSize; i++ {
		if !h.e.Post(held) {
			t.Fatalf("Post %d rejected with room left", i)
		}
	}
	if h.e.Post(held) {
		t.Error("motion queued past capacity")
	}

	done := make(chan bool, 1)
	go func() { done <- h.e.Post(tcell.NewEventMouse(10, 10, tcell.ButtonNone, tcell.ModNone)) }()
	select {
	case <-done:
		t.Fatal("release returned while the queue was full")
	case <-time.After(20 * time.Millisecond):
	}

	<-h.e.events
	if ok := <-done; !ok {
		t.Fatal("release dropped")
	}
	var last tcell.Event
	for len(h.e.events) > 0 {
		last = <-h.e.events
	}
	if m, ok := last.(*tcell.EventMouse); !ok || m.Buttons() != tcell.ButtonNone {
		t.Errorf("last queued event = %#v, want the release", last)
	}

	// a blocked release gives up once the engine stops
	for i := 0; i < parameter.InputQueueSize; i++ {
		h.e.Post(held)
	}
	go func() { done <- h.e.Post(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) }()
	h.e.Stop()
	select {
	case ok := <-done:
		if ok {
			t.Error("Post after Stop reported queued")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Post still blocked after Stop")
	}
}

func TestToggleMute(t *testing.T) {
	h := newHarness(t)
	h.key(tcell.KeyRune, 'm')
	if !h.sound.Muted() || !h.e.Metrics().Flags.Metric(status.AudioMuted).Load() {
		t.Fatal("mute not applied")
	}
	h.key(tcell.KeyLeft, 0)
	if len(h.sound.cues) != 0 {
		t.Errorf("muted engine played %v", h.sound.cues)
	}
	if h.e.Metrics().Count(status.CardIgnore) != 1 {
		t.Error("keyboard ignore not counted")
	}
}

func TestResizeRelayouts(t *testing.T) {
	h := newHarness(t)
	h.openSheet()
	h.e.HandleEvent(tcell.NewEventResize(60, 20))
	if l := h.e.Layout(); l.Cols != 60 || l.Rows != 20 {
		t.Fatalf("layout = %+v", l)
	}
	if vh := h.e.Sheet().ViewportHeight(); vh != 19*parameter.CellHeightPx {
		t.Errorf("sheet viewport = %v", vh)
	}
	h.run(time.Second)
	if h.e.Sheet().ViewState() != sheet.Partial {
		t.Errorf("view after resize = %v", h.e.Sheet().ViewState())
	}
}

// TestLoopQuitsOnKey runs the real loop and posts events from another goroutine
func TestLoopQuitsOnKey(t *testing.T) {
	h := newHarness(t)
	h.e.Start()
	defer h.e.Stop()

	if !h.e.Post(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Fatal("Post rejected")
	}
	select {
	case <-h.e.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("engine did not quit")
	}
	h.e.Stop()
	h.e.Stop()
}
