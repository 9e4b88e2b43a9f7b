package nav

import (
	"log"
	"sort"
	"sync"

	"github.com/orbitnav/orbitnav/nav/sched"
)

// Coordinator is the single authority over the menu's state. Construct one
// with New, share it with the rendering and analytics layers, and Destroy it
// at teardown. All methods are safe for concurrent use and none of them
// block; deferred work runs on the injected scheduler.
type Coordinator struct {
	mu sync.Mutex

	cfg     Config
	items   map[string]NavigationItem
	ordered []NavigationItem // by Position, focus traversal order

	state          State
	pending        *statePatch
	flushScheduled bool
	notifying      bool

	subs     map[int]func(State)
	handlers map[EventType]map[int]func(Event)
	nextID   int

	scheduler sched.Scheduler
	logger    *log.Logger
	surface   Surface
	viewport  ViewportObserver

	viewportW float64
	viewportH float64

	autoCloseTimer sched.Timer
	animTimer      sched.Timer
	focusLossSeq   int

	latest        []Intersection
	passScheduled bool

	destroyed bool
}

// Option configures a Coordinator at construction.
type Option func(*Coordinator)

// WithScheduler replaces the default run loop. Tests pass sched.NewManual().
func WithScheduler(s sched.Scheduler) Option {
	return func(c *Coordinator) { c.scheduler = s }
}

// WithLogger sets the diagnostics logger. Only degraded-mode conditions are
// logged (panicking subscribers, dropped work).
func WithLogger(l *log.Logger) Option {
	return func(c *Coordinator) { c.logger = l }
}

// WithSurface binds the rendering surface at construction.
func WithSurface(s Surface) Option {
	return func(c *Coordinator) { c.surface = s }
}

// WithViewport injects the section-visibility observer.
func WithViewport(v ViewportObserver) Option {
	return func(c *Coordinator) { c.viewport = v }
}

// New builds a Coordinator for cfg. The zero state is closed, nothing
// hovered, focused or active.
func New(cfg Config, opts ...Option) *Coordinator {
	c := &Coordinator{
		cfg:      cfg,
		items:    itemsByID(cfg.Items),
		ordered:  sortedByPosition(cfg.Items),
		subs:     make(map[int]func(State)),
		handlers: make(map[EventType]map[int]func(Event)),
		surface:  nopSurface{},
		logger:   log.Default(),
	}
	c.cfg.Items = cloneItems(cfg.Items)
	for _, opt := range opts {
		opt(c)
	}
	if c.scheduler == nil {
		c.scheduler = sched.NewLoop()
	}
	c.observeSections()
	return c
}

// observeSections registers every fragment item's section with the viewport
// observer. Caller must not hold c.mu with a reentrant viewport.
func (c *Coordinator) observeSections() {
	if c.viewport == nil {
		return
	}
	for _, it := range c.ordered {
		if sec := it.SectionID(); sec != "" {
			c.viewport.Observe(sec)
		}
	}
}

// State returns a snapshot of the committed state. Pending batched writes are
// not yet visible here, matching what subscribers have observed.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Config returns a snapshot of the current configuration.
func (c *Coordinator) Config() Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	cfg := c.cfg
	cfg.Items = cloneItems(c.cfg.Items)
	return cfg
}

// Subscribe registers fn for committed state changes. fn is called once
// immediately with the current state, then after every flush that changed
// something. The returned function unsubscribes and is idempotent.
func (c *Coordinator) Subscribe(fn func(State)) func() {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return func() {}
	}
	c.nextID++
	id := c.nextID
	c.subs[id] = fn
	snapshot := c.state
	c.mu.Unlock()

	c.callSubscriber(fn, snapshot)

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// On registers an event handler for one event type and returns its
// unsubscribe function.
func (c *Coordinator) On(t EventType, fn func(Event)) func() {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return func() {}
	}
	c.nextID++
	id := c.nextID
	if c.handlers[t] == nil {
		c.handlers[t] = make(map[int]func(Event))
	}
	c.handlers[t][id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		if hs := c.handlers[t]; hs != nil {
			delete(hs, id)
		}
		c.mu.Unlock()
	}
}

// BindSurface attaches the rendering surface. Until called, focus and
// navigation side effects are dropped.
func (c *Coordinator) BindSurface(s Surface) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed || s == nil {
		return
	}
	c.surface = s
}

// SetViewportSize records the viewport dimensions used for narrow-screen
// radius compaction and the closest-section scroll fallback.
func (c *Coordinator) SetViewportSize(w, h float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return
	}
	c.viewportW, c.viewportH = w, h
}

// UpdateConfig merges patch into the configuration. Replacing the item set
// re-derives the scroll-tracked sections and clears any state field that now
// names a missing item.
func (c *Coordinator) UpdateConfig(patch ConfigPatch) {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	c.cfg = patch.applyTo(c.cfg)

	var reobserve bool
	if patch.Items != nil {
		c.items = itemsByID(c.cfg.Items)
		c.ordered = sortedByPosition(c.cfg.Items)
		reobserve = true

		eff := c.effectiveState()
		var p statePatch
		if eff.ActiveItem != "" && !c.hasItem(eff.ActiveItem) {
			p.activeItem = strPtr("")
		}
		if eff.HoveredItem != "" && !c.hasItem(eff.HoveredItem) {
			p.hoveredItem = strPtr("")
		}
		if eff.FocusedItem != "" && !c.hasItem(eff.FocusedItem) {
			p.focusedItem = strPtr("")
		}
		c.request(p)
	}
	viewport := c.viewport
	c.mu.Unlock()

	if reobserve && viewport != nil {
		viewport.Disconnect()
		c.mu.Lock()
		destroyed := c.destroyed
		c.mu.Unlock()
		if !destroyed {
			c.observeSections()
		}
	}
}

// Open opens the menu. No-op when already open (committed or pending), so a
// redundant call produces zero notifications.
func (c *Coordinator) Open() {
	c.mu.Lock()
	if c.destroyed || c.effectiveState().IsOpen {
		c.mu.Unlock()
		return
	}
	c.request(statePatch{isOpen: boolPtr(true), isAnimating: boolPtr(true)})
	c.cancelAutoClose()
	c.armAnimationEnd()
	focusCenter := c.effectiveState().KeyboardMode
	surface := c.surface
	ev := c.eventLocked(EventOpen, "")
	hs := c.handlersFor(EventOpen)
	c.mu.Unlock()

	if focusCenter {
		surface.FocusCenter()
	}
	c.dispatch(hs, ev)
}

// Close closes the menu and clears hover and focus. No-op when already
// closed.
func (c *Coordinator) Close() {
	c.mu.Lock()
	if c.destroyed || !c.effectiveState().IsOpen {
		c.mu.Unlock()
		return
	}
	c.request(statePatch{
		isOpen:      boolPtr(false),
		isAnimating: boolPtr(true),
		hoveredItem: strPtr(""),
		focusedItem: strPtr(""),
	})
	c.cancelAutoClose()
	c.armAnimationEnd()
	ev := c.eventLocked(EventClose, "")
	hs := c.handlersFor(EventClose)
	c.mu.Unlock()

	c.dispatch(hs, ev)
}

// Toggle dispatches to Open or Close based on the effective open state.
func (c *Coordinator) Toggle() {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	open := c.effectiveState().IsOpen
	c.mu.Unlock()

	if open {
		c.Close()
	} else {
		c.Open()
	}
}

// SetHoveredItem updates the hovered item; "" clears. Hovering an item
// cancels a pending auto-close; clearing re-arms it, and every clear resets
// the delay rather than stacking a second timer.
func (c *Coordinator) SetHoveredItem(id string) {
	c.mu.Lock()
	if c.destroyed || (id != "" && !c.hasItem(id)) {
		c.mu.Unlock()
		return
	}

	changed := c.effectiveState().HoveredItem != id
	if changed {
		c.request(statePatch{hoveredItem: strPtr(id)})
	}

	if c.cfg.AutoClose {
		if id != "" {
			c.cancelAutoClose()
		} else {
			c.cancelAutoClose()
			c.autoCloseTimer = c.scheduler.After(c.cfg.CloseDelay, c.autoClose)
		}
	}

	var (
		ev Event
		hs []func(Event)
	)
	if changed {
		ev = c.eventLocked(EventHover, id)
		hs = c.handlersFor(EventHover)
	}
	c.mu.Unlock()

	if changed {
		c.dispatch(hs, ev)
	}
}

func (c *Coordinator) autoClose() {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	c.autoCloseTimer = nil
	c.mu.Unlock()
	c.Close()
}

// Navigate resolves id and performs the navigation side effect through the
// Surface, emitting a navigate event and always closing the menu. It never
// writes ActiveItem: activation belongs to the scroll tracker, so a
// click-triggered scroll and the resulting visibility callback cannot fight
// over the field. Unknown ids are silent no-ops.
func (c *Coordinator) Navigate(id string) {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	item, ok := c.items[id]
	if !ok {
		c.mu.Unlock()
		return
	}
	surface := c.surface
	ev := c.eventLocked(EventNavigate, id)
	hs := c.handlersFor(EventNavigate)
	c.mu.Unlock()

	c.dispatch(hs, ev)
	c.Close()

	switch {
	case item.SectionID() != "":
		surface.ScrollToSection(item.SectionID())
	case item.External:
		surface.OpenExternal(item.Href)
	default:
		surface.Visit(item.Href)
	}
}

// Destroy tears the coordinator down: every pending batch and timer is
// discarded, the viewport observer is disconnected, and all further calls
// (including Destroy itself) become silent no-ops.
func (c *Coordinator) Destroy() {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	c.destroyed = true
	c.pending = nil
	c.latest = nil
	c.cancelAutoClose()
	if c.animTimer != nil {
		c.animTimer.Stop()
		c.animTimer = nil
	}
	c.subs = nil
	c.handlers = nil
	viewport := c.viewport
	c.viewport = nil
	c.mu.Unlock()

	if viewport != nil {
		viewport.Disconnect()
	}
}

// ---------------------------------------------------------------------------
// Batch scheduler
// ---------------------------------------------------------------------------

// request merges p into the pending batch and schedules a flush for the next
// scheduler turn. Caller holds c.mu.
func (c *Coordinator) request(p statePatch) {
	if c.destroyed {
		return
	}
	if c.pending == nil {
		c.pending = &statePatch{}
	}
	c.pending.merge(p)
	c.scheduleFlush()
}

// scheduleFlush defers a flush unless one is already queued or a
// notification round is running; in the latter case the round's tail
// reschedules, which is what breaks subscriber-driven update loops.
// Caller holds c.mu.
func (c *Coordinator) scheduleFlush() {
	if c.flushScheduled || c.notifying {
		return
	}
	c.flushScheduled = true
	c.scheduler.Defer(c.flush)
}

// flush commits the pending batch. If the merged result equals the current
// state the batch is discarded without notifying anyone.
func (c *Coordinator) flush() {
	c.mu.Lock()
	c.flushScheduled = false
	if c.destroyed || c.pending == nil {
		c.mu.Unlock()
		return
	}
	p := *c.pending
	c.pending = nil
	next := p.applyTo(c.state)
	if next == c.state {
		c.mu.Unlock()
		return
	}
	c.state = next
	c.notifying = true
	subs := c.subscriberList()
	snapshot := next
	c.mu.Unlock()

	for _, fn := range subs {
		c.callSubscriber(fn, snapshot)
	}

	c.mu.Lock()
	c.notifying = false
	if c.pending != nil && !c.destroyed {
		c.scheduleFlush()
	}
	c.mu.Unlock()
}

// subscriberList snapshots subscribers in registration order. Caller holds
// c.mu.
func (c *Coordinator) subscriberList() []func(State) {
	ids := make([]int, 0, len(c.subs))
	for id := range c.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]func(State), 0, len(ids))
	for _, id := range ids {
		out = append(out, c.subs[id])
	}
	return out
}

func (c *Coordinator) callSubscriber(fn func(State), s State) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Printf("nav: subscriber panic: %v", r)
		}
	}()
	fn(s)
}

// effectiveState is the committed state with the pending batch merged in.
// Guards and events read this so that two calls within one turn see each
// other's writes. Caller holds c.mu.
func (c *Coordinator) effectiveState() State {
	if c.pending == nil {
		return c.state
	}
	return c.pending.applyTo(c.state)
}

func (c *Coordinator) hasItem(id string) bool {
	_, ok := c.items[id]
	return ok
}

// ---------------------------------------------------------------------------
// Timers
// ---------------------------------------------------------------------------

// cancelAutoClose stops a pending auto-close if any. Caller holds c.mu.
func (c *Coordinator) cancelAutoClose() {
	if c.autoCloseTimer != nil {
		c.autoCloseTimer.Stop()
		c.autoCloseTimer = nil
	}
}

// armAnimationEnd (re)starts the isAnimating window. Caller holds c.mu.
func (c *Coordinator) armAnimationEnd() {
	if c.animTimer != nil {
		c.animTimer.Stop()
	}
	c.animTimer = c.scheduler.After(c.cfg.AnimationDuration, func() {
		c.mu.Lock()
		if c.destroyed {
			c.mu.Unlock()
			return
		}
		c.animTimer = nil
		c.request(statePatch{isAnimating: boolPtr(false)})
		c.mu.Unlock()
	})
}

// ---------------------------------------------------------------------------
// Event dispatch
// ---------------------------------------------------------------------------

// eventLocked builds an event carrying the effective state. Caller holds
// c.mu.
func (c *Coordinator) eventLocked(t EventType, itemID string) Event {
	return Event{
		Type:   t,
		ItemID: itemID,
		State:  c.effectiveState(),
		Time:   c.scheduler.Now(),
	}
}

// handlersFor snapshots the handlers for one event type in registration
// order. Caller holds c.mu.
func (c *Coordinator) handlersFor(t EventType) []func(Event) {
	hs := c.handlers[t]
	if len(hs) == 0 {
		return nil
	}
	ids := make([]int, 0, len(hs))
	for id := range hs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]func(Event), 0, len(ids))
	for _, id := range ids {
		out = append(out, hs[id])
	}
	return out
}

func (c *Coordinator) dispatch(hs []func(Event), ev Event) {
	for _, fn := range hs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					c.logger.Printf("nav: %s handler panic: %v", ev.Type, r)
				}
			}()
			fn(ev)
		}()
	}
}
