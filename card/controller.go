package card

import (
	"log/slog"
	"time"

	"github.com/lixenwraith/petdeck/clock"
	"github.com/lixenwraith/petdeck/gesture"
	"github.com/lixenwraith/petdeck/hint"
	"github.com/lixenwraith/petdeck/parameter"
	"github.com/lixenwraith/petdeck/spring"
)

// Callbacks are the collaborator hooks of the stack, any may be nil
type Callbacks struct {
	OnLike         func(id string)
	OnIgnore       func(id string)
	OpenPetDetails func(id string)
	// OnFrontChange reports a new front card identity, "" when the pool empties
	OnFrontChange func(id string)
}

// Window is the visible pair of the stack
type Window struct {
	Front    Candidate
	Next     Candidate
	HasFront bool
	HasNext  bool
}

// Exit is a committed card flying off-screen while the window has already advanced
type Exit struct {
	Card     Candidate
	Decision Decision
	offset   *spring.Vec2
	done     *spring.Future
}

// Visual returns the current transform of the exiting card
func (e *Exit) Visual() Visual {
	x, y := e.offset.Current()
	rot, scale := Transform(x)
	return Visual{X: x, Y: y, Rotation: rot, Scale: scale}
}

// Trajectory returns the target the card flies to
func (e *Exit) Trajectory() (x, y float64) {
	return e.offset.X.Target(), e.offset.Y.Target()
}

// latch ties the drag path and the coarse touch path of one physical gesture together
// Whichever path resolves first wins; the other only springs the card back
type latch struct {
	dragLive  bool
	touchLive bool
	resolved  bool

	dragEnds   int // completed drags, a touch begun before the latest one is stale
	touchEpoch int
}

func (l *latch) begin() {
	if !l.dragLive && !l.touchLive {
		l.resolved = false
	}
}

func (l *latch) live() bool {
	return l.dragLive || l.touchLive
}

// Option configures a Controller
type Option func(*Controller)

// WithLogger sets the logger, slog.Default() otherwise
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithThreshold overrides the commit distance shared by horizontal swipes and swipe-up
func WithThreshold(px float64) Option {
	return func(c *Controller) {
		if px > 0 {
			c.threshold = px
		}
	}
}

// WithStartIndex positions the window at pool[i % len(pool)]
func WithStartIndex(i int) Option {
	return func(c *Controller) {
		if i >= 0 {
			c.index = i
		}
	}
}

// WithHintDelay overrides the idle hint quiet period
func WithHintDelay(d time.Duration) Option {
	return func(c *Controller) { c.hintDelay = d }
}

// Controller owns the card window, the front card's animated offset and the idle hint
// Not safe for concurrent use, all calls come from the frame loop goroutine
type Controller struct {
	pool  []Candidate
	index int // monotonic, front = pool[index % len(pool)]

	offset   *spring.Vec2
	drag     gesture.Drag
	dragging bool
	baseX    float64 // offset when the drag grabbed the card
	baseY    float64

	latch       latch
	touchStartY float64

	exits []*Exit

	hint      *hint.Timer
	hintDelay time.Duration
	threshold float64

	callbacks Callbacks
	logger    *slog.Logger
}

// New creates a controller over pool, idle hints are scheduled on sched
func New(pool []Candidate, sched *clock.Scheduler, cb Callbacks, opts ...Option) *Controller {
	c := &Controller{
		offset:    spring.NewVec2(0, 0),
		threshold: parameter.SwipeThreshold,
		hintDelay: parameter.HintQuietPeriod,
		callbacks: cb,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	c.hint = hint.New(sched, c.hintDelay)
	c.SetPool(pool)
	return c
}

// --- Pool and window ---

// SetPool replaces the candidate pool, the index is kept so the stack resumes where it was
func (c *Controller) SetPool(pool []Candidate) {
	before := c.FrontID()
	c.pool = append(c.pool[:0:0], pool...)
	if len(c.pool) == 0 {
		c.cancelInteraction()
	}
	if c.FrontID() != before {
		c.frontChanged()
	}
}

// Window returns the front and next candidates, empty when the pool is empty
func (c *Controller) Window() Window {
	n := len(c.pool)
	if n == 0 {
		return Window{}
	}
	w := Window{
		Front:    c.pool[c.index%n],
		HasFront: true,
	}
	if n > 1 {
		w.Next = c.pool[(c.index+1)%n]
		w.HasNext = true
	}
	return w
}

// FrontID returns the front candidate identifier, "" when the pool is empty
func (c *Controller) FrontID() string {
	if len(c.pool) == 0 {
		return ""
	}
	return c.pool[c.index%len(c.pool)].ID
}

// Index returns the monotonic window index
func (c *Controller) Index() int {
	return c.index
}

// --- Primary drag path ---

// DragStart grabs the front card, including mid-animation
func (c *Controller) DragStart(x, y float64, now time.Time) {
	if len(c.pool) == 0 {
		return
	}
	c.dropStaleTouch()
	c.latch.begin()
	c.latch.dragLive = true

	c.baseX, c.baseY = c.offset.Current()
	c.offset.Set(c.baseX, c.baseY)
	c.drag = gesture.BeginDrag(x, y, now)
	c.dragging = true
	c.hint.InteractionStart()
}

// DragMove tracks the finger 1:1 without any positional constraint
func (c *Controller) DragMove(x, y float64, now time.Time) {
	if !c.dragging {
		return
	}
	c.drag.Move(x, y, now)
	dx, dy := c.drag.Delta()
	c.offset.Set(c.baseX+dx, c.baseY+dy)
}

// DragEnd resolves the drag; a release without a press is Cancelled
func (c *Controller) DragEnd(x, y float64, now time.Time) Decision {
	if !c.dragging {
		c.springBack(0, 0)
		return Cancelled
	}
	c.drag.Move(x, y, now)
	c.dragging = false
	c.latch.dragLive = false
	c.latch.dragEnds++

	dx, dy := c.drag.Delta()
	vx, vy := c.drag.Velocity()

	d := Decide(dx, dy, c.threshold)
	if c.latch.resolved {
		d = Cancelled
	}
	if d != Cancelled {
		c.latch.resolved = true
	}
	c.apply(d, vx, vy)
	c.endInteraction()
	return d
}

// --- Coarse touch path ---

// TouchStart records the raw touch-down y on platforms where native scroll may swallow the drag
func (c *Controller) TouchStart(y float64, now time.Time) {
	if len(c.pool) == 0 {
		return
	}
	// a touch that never ended belongs to an earlier gesture
	c.latch.touchLive = false
	c.latch.begin()
	c.latch.touchLive = true
	c.latch.touchEpoch = c.latch.dragEnds
	c.touchStartY = y
	c.hint.InteractionStart()
}

// TouchEnd fires OpenDetails when the finger travelled up past the threshold
// It never fires if the drag path already resolved the same gesture, and blocks the drag path if it fires first
func (c *Controller) TouchEnd(y float64, now time.Time) Decision {
	if !c.latch.touchLive {
		return Cancelled
	}
	c.latch.touchLive = false

	d := Cancelled
	if !c.latch.resolved && c.touchStartY-y > c.threshold && len(c.pool) > 0 {
		d = OpenDetails
		c.latch.resolved = true
		c.openDetails()
	}
	c.endInteraction()
	return d
}

// TouchCancel drops a touch that will never see its TouchEnd
func (c *Controller) TouchCancel() {
	if !c.latch.touchLive {
		return
	}
	c.latch.touchLive = false
	c.endInteraction()
}

// dropStaleTouch cancels a touch left live by a gesture whose drag already ended
func (c *Controller) dropStaleTouch() {
	if c.latch.touchLive && !c.latch.dragLive && c.latch.touchEpoch != c.latch.dragEnds {
		c.logger.Debug("stale touch dropped", "id", c.FrontID())
		c.TouchCancel()
	}
}

// Swipe resolves d without a pointer, for keyboard control
// It is refused while a pointer gesture is live so the two cannot both fire
func (c *Controller) Swipe(d Decision) Decision {
	c.dropStaleTouch()
	if len(c.pool) == 0 || c.latch.live() || d == Cancelled {
		return Cancelled
	}
	c.hint.InteractionStart()
	c.apply(d, 0, 0)
	c.endInteraction()
	return d
}

// --- Resolution ---

func (c *Controller) apply(d Decision, vx, vy float64) {
	switch d {
	case Ignore, AdoptIntent:
		c.commit(d, vx, vy)
	case OpenDetails:
		c.openDetails()
		c.springBack(vx, vy)
	default:
		c.springBack(vx, vy)
	}
}

// commit notifies the collaborator, launches the exit and advances the window
func (c *Controller) commit(d Decision, vx, vy float64) {
	front := c.Window().Front

	x, y := c.offset.Current()
	dir := 1.0
	if d == Ignore {
		dir = -1
	}
	exit := &Exit{Card: front, Decision: d, offset: spring.NewVec2(x, y)}
	exit.offset.SetVelocity(vx, vy)
	exit.done = exit.offset.AnimateTo(dir*parameter.CardExitDistance, y+vy*parameter.CardExitVelocityProjection, spring.Exit)
	c.exits = append(c.exits, exit)

	c.logger.Info("card committed", "id", front.ID, "decision", d, "dx", x)
	if d == AdoptIntent {
		if c.callbacks.OnLike != nil {
			c.callbacks.OnLike(front.ID)
		}
	} else if c.callbacks.OnIgnore != nil {
		c.callbacks.OnIgnore(front.ID)
	}

	c.index++
	c.offset.Set(0, 0)
	c.frontChanged()
}

func (c *Controller) openDetails() {
	id := c.FrontID()
	c.logger.Info("card details", "id", id)
	if c.callbacks.OpenPetDetails != nil {
		c.callbacks.OpenPetDetails(id)
	}
}

func (c *Controller) springBack(vx, vy float64) *spring.Future {
	c.offset.SetVelocity(vx, vy)
	return c.offset.AnimateTo(0, 0, spring.Return)
}

func (c *Controller) endInteraction() {
	if !c.latch.live() {
		c.hint.InteractionEnd()
	}
}

func (c *Controller) cancelInteraction() {
	c.dragging = false
	c.latch = latch{}
	c.offset.Set(0, 0)
}

func (c *Controller) frontChanged() {
	id := c.FrontID()
	if id == "" {
		c.hint.Stop()
	} else {
		c.hint.Reset(id)
	}
	if c.callbacks.OnFrontChange != nil {
		c.callbacks.OnFrontChange(id)
	}
}

// --- Frame ---

// Tick advances the front card and every exiting card, dropping exits that landed
func (c *Controller) Tick(dt time.Duration) {
	c.offset.Step(dt)

	kept := c.exits[:0]
	for _, e := range c.exits {
		e.offset.Step(dt)
		if !e.done.Settled() {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(c.exits); i++ {
		c.exits[i] = nil
	}
	c.exits = kept
}

// Stop tears down timers, used on unmount
func (c *Controller) Stop() {
	c.hint.Stop()
	c.cancelInteraction()
}

// --- Snapshot ---

// FrontVisual returns the front card transform
func (c *Controller) FrontVisual() Visual {
	x, y := c.offset.Current()
	rot, scale := Transform(x)
	return Visual{X: x, Y: y, Rotation: rot, Scale: scale}
}

// Exits returns cards still flying out, oldest first
func (c *Controller) Exits() []*Exit {
	return c.exits
}

// HintVisible reports whether the idle swipe hint should render
func (c *Controller) HintVisible() bool {
	return c.hint.Visible()
}

// Dragging reports whether the front card is held
func (c *Controller) Dragging() bool {
	return c.dragging
}

// Animating reports whether the front card or any exit is in motion
func (c *Controller) Animating() bool {
	return c.offset.Animating() || len(c.exits) > 0
}

// Threshold returns the commit distance in px
func (c *Controller) Threshold() float64 {
	return c.threshold
}

// Displacement returns the live drag displacement, zero when idle
func (c *Controller) Displacement() (dx, dy float64) {
	if !c.dragging {
		return 0, 0
	}
	return c.drag.Delta()
}
