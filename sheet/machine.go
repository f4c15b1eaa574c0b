package sheet

import (
	"log/slog"
	"math"
	"time"

	"github.com/lixenwraith/petdeck/gesture"
	"github.com/lixenwraith/petdeck/overscroll"
	"github.com/lixenwraith/petdeck/parameter"
	"github.com/lixenwraith/petdeck/spring"
)

// Callbacks are the collaborator hooks of the sheet, any may be nil
type Callbacks struct {
	// OnClose runs once per completed close, after scroll and overscroll are reset
	OnClose func()
	// OnImageModalOpen runs when an image in the content is tapped
	OnImageModalOpen func(images []string, index int, label string)
	// OnScrollReset asks the view to scroll its content back to top
	OnScrollReset func()
	// OnStateChange reports every change of the rendered view state
	OnStateChange func(from, to ViewState)
}

// Content is the opaque render data of the sheet
type Content struct {
	ID     string
	Title  string
	Label  string
	Images []string
}

// Option configures a Machine
type Option func(*Machine)

// WithLogger sets the logger, slog.Default() otherwise
func WithLogger(l *slog.Logger) Option {
	return func(m *Machine) { m.logger = l }
}

// Machine owns the sheet lifecycle, its animated geometry and the gesture arbiter
// Not safe for concurrent use, all calls come from the frame loop goroutine
type Machine struct {
	life Lifecycle

	position *spring.Value // top edge, percent of viewport height
	height   *spring.Value // visible height, percent of viewport height

	arbiter  *gesture.Arbiter
	band     *overscroll.RubberBand
	dragging bool
	dragBase float64 // position when the drag took over

	viewportH      float64
	scroll         float64 // content scroll offset in px
	maxScroll      float64
	pendingOpen    bool     // open requested while closing
	pendingContent *Content // content of the deferred open

	content   Content
	callbacks Callbacks
	logger    *slog.Logger
}

// New creates a closed sheet for a viewport of viewportH px
func New(viewportH float64, cb Callbacks, opts ...Option) *Machine {
	m := &Machine{
		life:      lifecycleClosed(),
		position:  spring.NewValue(Closed.Position()),
		height:    spring.NewValue(Closed.Height()),
		arbiter:   gesture.NewArbiter(),
		band:      overscroll.New(),
		viewportH: viewportH,
		callbacks: cb,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	if m.viewportH <= 0 {
		m.viewportH = 1
	}
	return m
}

// --- Lifecycle ---

// Open animates Closed to Partial
// While a close is in flight the request is held and replayed once the close completes
func (m *Machine) Open() {
	switch m.life.Phase() {
	case PhaseClosing:
		m.pendingOpen = true
		m.logger.Debug("sheet open deferred until close completes")
		return
	case PhaseOpening, PhaseOpen:
		return
	}

	m.setLifecycle(lifecycleOpening())
	m.logger.Info("sheet opening", "id", m.content.ID)

	f := m.animateTo(Partial, spring.Settle)
	f.Then(func(r spring.Result) {
		if r == spring.Completed && m.life.Phase() == PhaseOpening {
			m.setLifecycle(lifecycleOpen(Partial))
		}
	})
}

// OpenWith replaces the content and opens, during a close the content waits with the deferred open
func (m *Machine) OpenWith(c Content) {
	if m.life.Phase() == PhaseClosing {
		m.pendingContent = &c
	} else {
		m.content = c
	}
	m.Open()
}

// RequestClose animates to Closed, a second request during the close is ignored
func (m *Machine) RequestClose() {
	if !m.life.Interactive() {
		return
	}
	m.beginClose(0)
}

func (m *Machine) beginClose(velocity float64) {
	m.arbiter.Cancel()
	m.dragging = false
	m.pendingOpen = false
	m.pendingContent = nil
	m.setLifecycle(lifecycleClosing())
	m.logger.Info("sheet closing", "id", m.content.ID)

	m.position.SetVelocity(velocity)
	m.height.SetVelocity(-velocity)
	m.animateTo(Closed, spring.Close).Then(func(r spring.Result) {
		if r == spring.Completed && m.life.Phase() == PhaseClosing {
			m.finishClose()
		}
	})
}

// finishClose resets internal state, then notifies, then replays a deferred open
func (m *Machine) finishClose() {
	m.scroll = 0
	m.band.Reset()
	if m.callbacks.OnScrollReset != nil {
		m.callbacks.OnScrollReset()
	}

	m.setLifecycle(lifecycleClosed())
	m.logger.Info("sheet closed", "id", m.content.ID)
	if m.callbacks.OnClose != nil {
		m.callbacks.OnClose()
	}

	if m.pendingOpen {
		m.pendingOpen = false
		if m.pendingContent != nil {
			m.content = *m.pendingContent
			m.pendingContent = nil
		}
		m.Open()
	}
}

// TapHandle toggles Partial and Full, it never closes
func (m *Machine) TapHandle() {
	if !m.life.Interactive() || m.dragging {
		return
	}
	switch m.life.View() {
	case Partial:
		m.settle(Full, 0)
	case Full:
		m.settle(Partial, 0)
	}
}

// --- Pointer input ---

// PointerDown starts a session in region; imageIndex is only read for RegionImage
func (m *Machine) PointerDown(region gesture.Region, x, y float64, imageIndex int, now time.Time) {
	if !m.life.Interactive() {
		return
	}
	s := m.arbiter.Begin(region, x, y, m.scroll, imageIndex, now)
	m.logger.Debug("sheet session", "region", region, "mode", s.Mode)
	if s.Mode == gesture.ModeHeaderDrag {
		m.startDrag()
	}
}

// PointerMove tracks the finger: sheet drags move the geometry 1:1,
// content scrolls move the content opposite to the finger and feed the rubber band once clamped
func (m *Machine) PointerMove(x, y float64, now time.Time) {
	if !m.life.Interactive() {
		return
	}
	lastY := y
	if s := m.arbiter.Session(); s != nil {
		lastY = s.Y
	}
	mode := m.arbiter.Move(x, y, m.scroll, now)

	switch {
	case mode.DragsSheet():
		if !m.dragging {
			m.startDrag()
		}
		s := m.arbiter.Session()
		_, dy := s.Delta()
		pos := clamp(m.dragBase+dy/m.viewportH*100, 0, 100)
		m.position.Set(pos)
		m.height.Set(100 - pos)

	case mode == gesture.ModeContentScroll:
		m.scroll = clamp(m.scroll-(y-lastY), 0, m.maxScroll)
		m.band.Move(m.AtBottom(), y)
	}
}

// PointerUp resolves the session
// A release with no matching press settles back to the last committed state
func (m *Machine) PointerUp(x, y float64, now time.Time) {
	s, ok := m.arbiter.End(x, y, now)
	if !m.life.Interactive() {
		m.dragging = false
		return
	}
	if !ok {
		m.dragging = false
		m.settle(m.life.View(), 0)
		return
	}

	switch s.Mode {
	case gesture.ModeImageInteraction:
		m.openImage(s.ImageIndex)

	case gesture.ModeContentScroll:
		m.band.Release()

	case gesture.ModeHeaderDrag, gesture.ModeContentDrag:
		m.dragging = false
		dx, dy := s.Delta()
		if s.Region == gesture.RegionHandle && math.Abs(dx) <= parameter.SheetTapSlop && math.Abs(dy) <= parameter.SheetTapSlop {
			m.TapHandle()
			return
		}
		_, vy := s.Velocity()
		m.release(dy, vy)
	}
}

// PointerCancel drops the session as if it never happened
func (m *Machine) PointerCancel() {
	m.arbiter.Cancel()
	if m.dragging && m.life.Interactive() {
		m.dragging = false
		m.settle(m.life.View(), 0)
	}
	m.band.Release()
}

// release picks the next state from displacement and velocity, both in px
func (m *Machine) release(dy, vy float64) {
	distance := m.viewportH * parameter.SheetDragThresholdRatio
	speed := m.viewportH * parameter.SheetVelocityThresholdRatio

	down := dy > distance || vy > speed
	up := dy < -distance || vy < -speed
	if down && up {
		// Flick against the drag direction, displacement wins
		down = dy > 0
		up = !down
	}

	seed := vy / m.viewportH * 100
	from := m.life.View()

	switch from {
	case Partial:
		switch {
		case down:
			m.beginClose(seed)
		case up:
			m.settle(Full, seed)
		default:
			m.settle(Partial, seed)
		}
	case Full:
		if down {
			m.settle(Partial, seed)
		} else {
			m.settle(Full, seed)
		}
	}
	m.logger.Debug("sheet release", "from", from, "dy", dy, "vy", vy, "to", m.life)
}

func (m *Machine) startDrag() {
	if m.life.Phase() == PhaseOpening {
		m.setLifecycle(lifecycleOpen(Partial))
	}
	m.dragging = true
	m.dragBase = m.position.Current()
	m.position.Set(m.dragBase)
	m.height.Set(100 - m.dragBase)
}

// settle commits v and springs the geometry to it, seed is initial velocity in percent/s
func (m *Machine) settle(v ViewState, seed float64) *spring.Future {
	m.setLifecycle(lifecycleOpen(v))
	m.position.SetVelocity(seed)
	m.height.SetVelocity(-seed)
	return m.animateTo(v, spring.Settle)
}

func (m *Machine) animateTo(v ViewState, cfg spring.Config) *spring.Future {
	return spring.All(
		m.position.AnimateTo(v.Position(), cfg),
		m.height.AnimateTo(v.Height(), cfg),
	)
}

func (m *Machine) openImage(index int) {
	if index < 0 || index >= len(m.content.Images) {
		return
	}
	if m.callbacks.OnImageModalOpen != nil {
		m.callbacks.OnImageModalOpen(m.content.Images, index, m.content.Label)
	}
}

func (m *Machine) setLifecycle(l Lifecycle) {
	from := m.life.View()
	m.life = l
	if to := l.View(); to != from && m.callbacks.OnStateChange != nil {
		m.callbacks.OnStateChange(from, to)
	}
}

// --- Content scrolling ---

// SetScrollMetrics tells the machine how far the content can scroll
func (m *Machine) SetScrollMetrics(contentHeight, visibleHeight float64) {
	m.maxScroll = math.Max(0, contentHeight-visibleHeight)
	m.scroll = clamp(m.scroll, 0, m.maxScroll)
}

// Scroll applies a native scroll delta in px, ignored unless the sheet is interactive
func (m *Machine) Scroll(delta float64) {
	if !m.life.Interactive() {
		return
	}
	m.scroll = clamp(m.scroll+delta, 0, m.maxScroll)
}

// AtBottom reports whether content is scrolled to its end
func (m *Machine) AtBottom() bool {
	return m.scroll >= m.maxScroll-parameter.ScrollBottomTolerance
}

// --- Frame ---

// Tick advances every animation by one frame
// Completion callbacks (close teardown, onClose) run from here
func (m *Machine) Tick(dt time.Duration) {
	m.position.Step(dt)
	m.height.Step(dt)
	m.band.Step(dt)
}

// Resize updates the viewport height, geometry is in percent so only thresholds change
func (m *Machine) Resize(viewportH float64) {
	if viewportH > 0 {
		m.viewportH = viewportH
	}
}

// --- Snapshot ---

func (m *Machine) Lifecycle() Lifecycle  { return m.life }
func (m *Machine) ViewState() ViewState  { return m.life.View() }
func (m *Machine) Position() float64     { return m.position.Current() }
func (m *Machine) Height() float64       { return m.height.Current() }
func (m *Machine) Overscroll() float64   { return m.band.Offset() }
func (m *Machine) ScrollOffset() float64 { return m.scroll }
func (m *Machine) Dragging() bool        { return m.dragging }
func (m *Machine) Mode() gesture.Mode    { return m.arbiter.Mode() }
func (m *Machine) Content() Content      { return m.content }
func (m *Machine) ViewportHeight() float64 {
	return m.viewportH
}

// Animating reports whether any sheet geometry is still moving
func (m *Machine) Animating() bool {
	return m.position.Animating() || m.height.Animating()
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
