// Package engine runs the interaction loop: it owns the card stack and the detail sheet, feeds them
// terminal input and frame ticks on one goroutine, and hands a snapshot to the renderer every frame
package engine

import (
	"log/slog"
	"sync"
	"sync/atomic"
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

// Sounder plays feedback cues, satisfied by *audio.SoundManager
type Sounder interface {
	Play(cue audio.Cue) bool
	SetMuted(muted bool)
	Muted() bool
}

type nopSounder struct{ muted bool }

func (n *nopSounder) Play(audio.Cue) bool { return false }
func (n *nopSounder) SetMuted(m bool)     { n.muted = m }
func (n *nopSounder) Muted() bool         { return n.muted }

// target is the component that owns the current pointer gesture
type target uint8

const (
	targetNone target = iota
	targetCard
	targetSheet
	targetScrim // outside an open sheet, a tap closes it
	targetModal
)

// Option configures an Engine
type Option func(*Engine)

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

func WithTimeProvider(tp clock.TimeProvider) Option {
	return func(e *Engine) { e.source = tp }
}

func WithSounder(s Sounder) Option {
	return func(e *Engine) {
		if s != nil {
			e.sound = s
		}
	}
}

func WithRenderer(r Renderer) Option {
	return func(e *Engine) { e.renderer = r }
}

func WithRegistry(r *status.Registry) Option {
	return func(e *Engine) { e.metrics = r }
}

// Engine owns every interaction component
// Post is safe from any goroutine; every other method runs on the loop goroutine or before Start
type Engine struct {
	source clock.TimeProvider
	clock  *clock.PausableClock
	sched  *clock.Scheduler

	deck    *card.Controller
	sheet   *sheet.Machine
	machine *input.Machine
	layout  Layout

	pool    map[string]card.Candidate
	details card.Candidate // candidate shown in the sheet
	body    []BodyRow

	target    target
	lastX     float64
	lastY     float64
	pressCol  int
	pressRow  int
	modal     *ModalFrame
	message   string
	messageAt time.Time

	sound    Sounder
	renderer Renderer
	logger   *slog.Logger
	metrics  *status.Registry

	// cached metric pointers
	statLike    *atomic.Int64
	statIgnore  *atomic.Int64
	statDetails *atomic.Int64
	statCancel  *atomic.Int64
	statOpen    *atomic.Int64
	statClose   *atomic.Int64
	statFrames  *atomic.Int64
	statFPS     *status.Rate
	statMuted   *atomic.Bool

	frameInterval time.Duration
	lastFrame     time.Time

	events   chan tcell.Event
	quit     chan struct{}
	quitOnce sync.Once
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

// New builds an engine for a cols x rows terminal from cfg
func New(cfg *config.Config, cols, rows int, opts ...Option) *Engine {
	e := &Engine{
		layout:        Layout{Cols: cols, Rows: rows},
		machine:       input.NewMachine(),
		pool:          make(map[string]card.Candidate),
		frameInterval: time.Second / time.Duration(cfg.Engine.FrameRate),
		events:        make(chan tcell.Event, parameter.InputQueueSize),
		quit:          make(chan struct{}),
		stopChan:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	if e.source == nil {
		e.source = clock.SystemTime{}
	}
	if e.sound == nil {
		e.sound = &nopSounder{muted: true}
	}
	if e.metrics == nil {
		e.metrics = status.NewRegistry()
	}
	e.cacheMetrics()

	e.clock = clock.NewPausableClock(e.source)
	e.sched = clock.NewScheduler(e.clock)
	e.lastFrame = e.clock.Now()

	e.sheet = sheet.New(e.layout.ViewportHeight(), sheet.Callbacks{
		OnClose:          e.onSheetClose,
		OnImageModalOpen: e.onImageModalOpen,
		OnScrollReset:    func() { e.logger.Debug("sheet scroll reset") },
		OnStateChange:    e.onSheetStateChange,
	}, sheet.WithLogger(e.logger.With("component", "sheet")))

	e.deck = card.New(nil, e.sched, card.Callbacks{
		OnLike:         e.onLike,
		OnIgnore:       e.onIgnore,
		OpenPetDetails: e.onOpenDetails,
		OnFrontChange:  func(id string) { e.logger.Debug("front card", "id", id) },
	},
		card.WithLogger(e.logger.With("component", "card")),
		card.WithThreshold(cfg.Engine.SwipeThreshold),
		card.WithHintDelay(cfg.Engine.HintDelay),
		card.WithStartIndex(cfg.Engine.StartIndex),
	)
	e.SetPool(cfg.Candidates)
	return e
}

func (e *Engine) cacheMetrics() {
	e.statLike = e.metrics.Counters.Metric(status.CardLike)
	e.statIgnore = e.metrics.Counters.Metric(status.CardIgnore)
	e.statDetails = e.metrics.Counters.Metric(status.CardDetails)
	e.statCancel = e.metrics.Counters.Metric(status.CardCancel)
	e.statOpen = e.metrics.Counters.Metric(status.SheetOpen)
	e.statClose = e.metrics.Counters.Metric(status.SheetClose)
	e.statFrames = e.metrics.Counters.Metric(status.EngineFrames)
	e.statFPS = e.metrics.Rates.Metric(status.EngineFPS)
	e.statMuted = e.metrics.Flags.Metric(status.AudioMuted)
	e.statMuted.Store(e.sound.Muted())
}

// SetPool replaces the candidate pool
func (e *Engine) SetPool(pool []card.Candidate) {
	clear(e.pool)
	for _, c := range pool {
		e.pool[c.ID] = c
	}
	e.deck.SetPool(pool)
}

// --- Lifecycle ---

// Start runs the loop goroutine
func (e *Engine) Start() {
	if e.running.CompareAndSwap(false, true) {
		e.wg.Add(1)
		Go(e.loop)
	}
}

// Stop halts the loop and tears down timers
func (e *Engine) Stop() {
	e.stopOnce.Do(func() {
		wasRunning := e.running.CompareAndSwap(true, false)
		close(e.stopChan)
		if wasRunning {
			e.wg.Wait()
		}
		e.deck.Stop()
		e.sched.Clear()
	})
}

// Done is closed when the user asks to quit
func (e *Engine) Done() <-chan struct{} {
	return e.quit
}

// Post queues a terminal event for the loop
// When the queue is full only held-button motion is dropped, the next sample supersedes it;
// every other event waits for room so releases always reach the gesture that is live
func (e *Engine) Post(ev tcell.Event) bool {
	select {
	case e.events <- ev:
		return true
	default:
	}

	if isDragSample(ev) {
		e.logger.Debug("input queue full, motion dropped")
		return false
	}
	select {
	case e.events <- ev:
		return true
	case <-e.stopChan:
		return false
	}
}

// isDragSample reports mouse events with the primary button held
// A dropped first press is recovered by the input machine from the next held sample
func isDragSample(ev tcell.Event) bool {
	m, ok := ev.(*tcell.EventMouse)
	return ok && m.Buttons()&tcell.Button1 != 0
}

func (e *Engine) loop() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.stopChan:
			return
		case ev := <-e.events:
			e.HandleEvent(ev)
		case <-ticker.C:
			e.Step()
		}
	}
}

// --- Frame ---

// Step fires due timers, advances every animation by the elapsed frame time and renders
func (e *Engine) Step() {
	now := e.clock.Now()
	dt := now.Sub(e.lastFrame)
	e.lastFrame = now

	e.sched.Fire()
	e.deck.Tick(dt)
	if e.sheet.Lifecycle().Phase() != sheet.PhaseClosed {
		pos := e.sheet.Position()
		e.sheet.SetScrollMetrics(ContentHeight(e.body), e.layout.VisibleContentHeight(pos))
	}
	e.sheet.Tick(dt)

	e.statFrames.Add(1)
	e.statFPS.Observe(dt)
	if e.message != "" && now.Sub(e.messageAt) > parameter.StatusMessageTimeout {
		e.message = ""
	}

	if e.renderer != nil {
		e.renderer.Draw(e.Snapshot())
	}
}

// Snapshot captures the current state for drawing
func (e *Engine) Snapshot() *Frame {
	f := &Frame{
		Layout:    e.layout,
		Time:      e.clock.Now(),
		Threshold: e.deck.Threshold(),
		Hint:      e.deck.HintVisible(),
		Modal:     e.modal,
		Message:   e.message,
		Muted:     e.sound.Muted(),
		Paused:    e.clock.IsPaused(),
		Status: e.metrics.Line(status.CardLike, status.CardIgnore, status.CardDetails,
			status.SheetOpen, status.EngineFPS),
	}

	w := e.deck.Window()
	if w.HasFront {
		f.Front = &CardFrame{Card: w.Front, Visual: e.deck.FrontVisual()}
	}
	if w.HasNext {
		f.Next = &CardFrame{Card: w.Next, Visual: card.NextVisual()}
	}
	for _, x := range e.deck.Exits() {
		f.Exits = append(f.Exits, CardFrame{Card: x.Card, Visual: x.Visual(), Decision: x.Decision})
	}

	life := e.sheet.Lifecycle()
	f.Sheet = SheetFrame{
		Visible:    life.Phase() != sheet.PhaseClosed,
		Phase:      life.Phase(),
		View:       life.View(),
		Position:   e.sheet.Position(),
		Overscroll: e.sheet.Overscroll(),
		Scroll:     e.sheet.ScrollOffset(),
		Mode:       e.sheet.Mode(),
		Body:       e.body,
	}
	return f
}

// --- Input ---

// HandleEvent decodes a terminal event and applies it
func (e *Engine) HandleEvent(ev tcell.Event) {
	it := e.machine.Process(ev)
	if it == nil {
		return
	}
	it.Time = e.clock.Now()
	e.Dispatch(it)
}

// Dispatch applies one intent
func (e *Engine) Dispatch(it *input.Intent) {
	switch it.Type {
	case input.IntentQuit:
		e.quitOnce.Do(func() { close(e.quit) })
	case input.IntentResize:
		e.resize(it.Width, it.Height)
	case input.IntentToggleMute:
		muted := !e.sound.Muted()
		e.sound.SetMuted(muted)
		e.statMuted.Store(muted)
		if muted {
			e.notify("sound off")
		} else {
			e.notify("sound on")
		}
	case input.IntentBlur:
		e.releasePointer()
		e.clock.Pause()
	case input.IntentFocus:
		e.clock.Resume()
		// frame time spent paused is not animation time
		e.lastFrame = e.clock.Now()

	case input.IntentPointerDown:
		e.pointerDown(it)
	case input.IntentPointerMove:
		e.pointerMove(it)
	case input.IntentPointerUp:
		e.pointerUp(it)
	case input.IntentWheel, input.IntentScroll:
		if e.sheet.Lifecycle().Interactive() {
			e.sheet.Scroll(float64(it.Delta) * parameter.CellHeightPx)
		}

	case input.IntentSwipeLeft:
		e.keySwipe(card.Ignore)
	case input.IntentSwipeRight:
		e.keySwipe(card.AdoptIntent)
	case input.IntentSwipeUp:
		e.keySwipe(card.OpenDetails)
	case input.IntentTapHandle:
		e.sheet.TapHandle()
	case input.IntentCloseSheet:
		if e.modal != nil {
			e.modal = nil
			return
		}
		e.sheet.RequestClose()
	}
}

func (e *Engine) keySwipe(d card.Decision) {
	if e.target != targetNone || e.sheet.Lifecycle().Phase() != sheet.PhaseClosed {
		return
	}
	e.deck.Swipe(d)
}

func (e *Engine) pointerDown(it *input.Intent) {
	if e.target != targetNone {
		// a second press without release, treat the first as released here
		e.pointerUp(it)
	}
	e.lastX, e.lastY = it.X, it.Y
	e.pressCol, e.pressRow = it.Col, it.Row

	if e.modal != nil {
		e.target = targetModal
		return
	}

	life := e.sheet.Lifecycle()
	switch {
	case life.Interactive():
		region, img := e.layout.SheetHit(it.Col, it.Row, e.sheet.Position(), e.sheet.ScrollOffset(), e.body)
		if region == gesture.RegionNone {
			e.target = targetScrim
			return
		}
		e.target = targetSheet
		e.sheet.PointerDown(region, it.X, it.Y, img, it.Time)
	case life.Phase() == sheet.PhaseClosing:
		// sheet ignores input while closing and the deck is still covered
	default:
		if !e.layout.CardRect().Contains(it.Col, it.Row) {
			return
		}
		e.target = targetCard
		e.deck.DragStart(it.X, it.Y, it.Time)
		e.deck.TouchStart(it.Y, it.Time)
	}
}

func (e *Engine) pointerMove(it *input.Intent) {
	e.lastX, e.lastY = it.X, it.Y
	switch e.target {
	case targetCard:
		e.deck.DragMove(it.X, it.Y, it.Time)
	case targetSheet:
		e.sheet.PointerMove(it.X, it.Y, it.Time)
	}
}

func (e *Engine) pointerUp(it *input.Intent) {
	t := e.target
	e.target = targetNone
	switch t {
	case targetCard:
		dx, dy := e.deck.Displacement()
		d := e.deck.DragEnd(it.X, it.Y, it.Time)
		if td := e.deck.TouchEnd(it.Y, it.Time); td != card.Cancelled {
			d = td
		}
		if d == card.Cancelled && (dx != 0 || dy != 0) {
			e.statCancel.Add(1)
			e.sound.Play(audio.CueSnap)
		}
	case targetSheet:
		e.sheet.PointerUp(it.X, it.Y, it.Time)
	case targetScrim:
		if it.Col == e.pressCol && it.Row == e.pressRow {
			e.sheet.RequestClose()
		}
	case targetModal:
		e.modal = nil
	default:
		// release without a press the engine saw
		e.sheet.PointerUp(it.X, it.Y, it.Time)
	}
}

// releasePointer ends a held gesture at its last position, used when the terminal loses focus
func (e *Engine) releasePointer() {
	if e.target == targetNone {
		return
	}
	e.machine.Reset()
	col, row := input.PxToCell(e.lastX, e.lastY)
	e.pointerUp(&input.Intent{Type: input.IntentPointerUp, X: e.lastX, Y: e.lastY, Col: col, Row: row, Time: e.clock.Now()})
	e.deck.TouchCancel()
}

func (e *Engine) resize(cols, rows int) {
	if cols <= 0 || rows <= 0 {
		return
	}
	e.layout = Layout{Cols: cols, Rows: rows}
	e.sheet.Resize(e.layout.ViewportHeight())
	if e.details.ID != "" {
		e.body = e.layout.Body(e.details)
	}
	e.logger.Debug("resize", "cols", cols, "rows", rows)
}

// --- Component callbacks ---

func (e *Engine) onLike(id string) {
	e.statLike.Add(1)
	e.sound.Play(audio.CueLike)
	e.notify("♥ " + e.pool[id].Name)
}

func (e *Engine) onIgnore(id string) {
	e.statIgnore.Add(1)
	e.sound.Play(audio.CueIgnore)
	e.notify("passed on " + e.pool[id].Name)
}

func (e *Engine) onOpenDetails(id string) {
	c, ok := e.pool[id]
	if !ok {
		return
	}
	e.statDetails.Add(1)
	e.sound.Play(audio.CueDetails)

	e.details = c
	e.body = e.layout.Body(c)
	e.sheet.OpenWith(sheet.Content{ID: c.ID, Title: c.Name, Label: c.Label, Images: c.Images})
	e.machine.SetMode(input.ModeSheet)
}

func (e *Engine) onSheetStateChange(from, to sheet.ViewState) {
	if from == sheet.Closed && to != sheet.Closed {
		e.statOpen.Add(1)
	}
	e.logger.Debug("sheet state", "from", from, "to", to)
}

func (e *Engine) onSheetClose() {
	e.statClose.Add(1)
	e.sound.Play(audio.CueClose)
	e.modal = nil
	e.machine.SetMode(input.ModeDeck)
}

func (e *Engine) onImageModalOpen(images []string, index int, label string) {
	e.modal = &ModalFrame{Images: images, Index: index, Label: label}
}

func (e *Engine) notify(msg string) {
	e.message = msg
	e.messageAt = e.clock.Now()
}

// --- Accessors for the host and tests ---

func (e *Engine) Deck() *card.Controller    { return e.deck }
func (e *Engine) Sheet() *sheet.Machine     { return e.sheet }
func (e *Engine) Layout() Layout            { return e.layout }
func (e *Engine) Metrics() *status.Registry { return e.metrics }
func (e *Engine) Clock() *clock.PausableClock {
	return e.clock
}
