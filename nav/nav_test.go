package nav

import (
	"io"
	"log"
	"testing"
	"time"

	"github.com/orbitnav/orbitnav/nav/sched"
)

// ---------------------------------------------------------------------------
// Test fixtures
// ---------------------------------------------------------------------------

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Items = []NavigationItem{
		{ID: "home", Label: "Home", Href: "#home", Position: 0},
		{ID: "about", Label: "About", Href: "#about", Position: 1},
		{ID: "projects", Label: "Projects", Href: "#projects", Position: 2},
	}
	return cfg
}

func newTestCoordinator(t *testing.T, opts ...Option) (*Coordinator, *sched.Manual) {
	t.Helper()
	m := sched.NewManual()
	opts = append([]Option{
		WithScheduler(m),
		WithLogger(log.New(io.Discard, "", 0)),
	}, opts...)
	c := New(testConfig(), opts...)
	t.Cleanup(c.Destroy)
	return c, m
}

// recorder collects committed-state notifications. The immediate call made
// by Subscribe is dropped so tests count change notifications only.
type recorder struct {
	states []State
}

func (r *recorder) attach(t *testing.T, c *Coordinator) {
	t.Helper()
	first := true
	c.Subscribe(func(s State) {
		if first {
			first = false
			return
		}
		r.states = append(r.states, s)
	})
}

func (r *recorder) last(t *testing.T) State {
	t.Helper()
	if len(r.states) == 0 {
		t.Fatal("no notifications recorded")
	}
	return r.states[len(r.states)-1]
}

type fakeSurface struct {
	focusCenter int
	returnFocus int
	focused     []string
	scrolled    []string
	visited     []string
	external    []string
}

func (s *fakeSurface) FocusCenter()              { s.focusCenter++ }
func (s *fakeSurface) FocusItem(id string)       { s.focused = append(s.focused, id) }
func (s *fakeSurface) ReturnFocus()              { s.returnFocus++ }
func (s *fakeSurface) ScrollToSection(id string) { s.scrolled = append(s.scrolled, id) }
func (s *fakeSurface) Visit(href string)         { s.visited = append(s.visited, href) }
func (s *fakeSurface) OpenExternal(href string)  { s.external = append(s.external, href) }

type fakeViewport struct {
	observed    []string
	disconnects int
}

func (v *fakeViewport) Observe(sectionID string) { v.observed = append(v.observed, sectionID) }
func (v *fakeViewport) Disconnect()              { v.disconnects++ }

// ---------------------------------------------------------------------------
// Batching & notification
// ---------------------------------------------------------------------------

func TestSubscribeInvokesImmediatelyWithCurrentState(t *testing.T) {
	c, _ := newTestCoordinator(t)
	var got []State
	c.Subscribe(func(s State) { got = append(got, s) })
	if len(got) != 1 {
		t.Fatalf("expected 1 immediate call, got %d", len(got))
	}
	if got[0].IsOpen {
		t.Fatal("initial state should be closed")
	}
}

func TestMutationsInOneTurnCoalesceToOneNotification(t *testing.T) {
	c, m := newTestCoordinator(t)
	var rec recorder
	rec.attach(t, c)

	c.Open()
	c.SetHoveredItem("about")
	if len(rec.states) != 0 {
		t.Fatalf("notification delivered synchronously: %d", len(rec.states))
	}
	m.Pump()

	if len(rec.states) != 1 {
		t.Fatalf("expected exactly 1 notification, got %d", len(rec.states))
	}
	s := rec.last(t)
	if !s.IsOpen || s.HoveredItem != "about" {
		t.Fatalf("merged state wrong: %+v", s)
	}
}

func TestLaterWritesOverrideEarlierOnesWithinABatch(t *testing.T) {
	c, m := newTestCoordinator(t)
	var rec recorder
	rec.attach(t, c)

	c.SetHoveredItem("home")
	c.SetHoveredItem("about")
	m.Pump()

	if len(rec.states) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(rec.states))
	}
	if got := rec.last(t).HoveredItem; got != "about" {
		t.Fatalf("expected last write to win, got %q", got)
	}
}

func TestNoChangeBatchIsDiscardedSilently(t *testing.T) {
	c, m := newTestCoordinator(t)
	c.Open()
	m.Pump()

	var rec recorder
	rec.attach(t, c)
	c.Open() // already open: guard stops it before any request
	m.Pump()

	if len(rec.states) != 0 {
		t.Fatalf("redundant open produced %d notifications", len(rec.states))
	}
}

func TestReentrantMutationFlushesInSeparateRound(t *testing.T) {
	c, m := newTestCoordinator(t)
	var seen []State
	first := true
	c.Subscribe(func(s State) {
		if first {
			first = false
			return
		}
		seen = append(seen, s)
		// react to every round; converges once hover sticks
		c.SetHoveredItem("about")
	})

	c.Open()
	m.Pump()

	if len(seen) != 2 {
		t.Fatalf("expected 2 rounds (open, then hover), got %d", len(seen))
	}
	if seen[0].HoveredItem != "" {
		t.Fatal("first round leaked the reentrant write")
	}
	if seen[1].HoveredItem != "about" {
		t.Fatalf("second round missing reentrant write: %+v", seen[1])
	}
}

func TestSubscriberPanicDoesNotBlockOthers(t *testing.T) {
	c, m := newTestCoordinator(t)
	c.Subscribe(func(State) { panic("bad subscriber") })
	var rec recorder
	rec.attach(t, c)

	c.Open()
	m.Pump()

	if len(rec.states) != 1 {
		t.Fatalf("healthy subscriber starved: %d notifications", len(rec.states))
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	c, m := newTestCoordinator(t)
	calls := 0
	unsub := c.Subscribe(func(State) { calls++ })
	if calls != 1 {
		t.Fatalf("expected immediate call, got %d", calls)
	}
	unsub()
	c.Open()
	m.Pump()
	if calls != 1 {
		t.Fatalf("delivery after unsubscribe: %d calls", calls)
	}
}

// ---------------------------------------------------------------------------
// Open / Close / Toggle / animation window
// ---------------------------------------------------------------------------

func TestOpenSetsAnimatingThenClears(t *testing.T) {
	c, m := newTestCoordinator(t)
	c.Open()
	m.Pump()

	s := c.State()
	if !s.IsOpen || !s.IsAnimating {
		t.Fatalf("after open: %+v", s)
	}
	m.Advance(c.Config().AnimationDuration)
	if s = c.State(); s.IsAnimating {
		t.Fatal("isAnimating should clear after the animation window")
	}
}

func TestCloseClearsHoverAndFocus(t *testing.T) {
	c, m := newTestCoordinator(t)
	c.Open()
	m.Pump()
	c.SetHoveredItem("about")
	c.FocusGained("home")
	m.Pump()

	c.Close()
	m.Pump()

	s := c.State()
	if s.IsOpen || s.HoveredItem != "" || s.FocusedItem != "" {
		t.Fatalf("after close: %+v", s)
	}
}

func TestToggleDispatchesOnEffectiveState(t *testing.T) {
	c, m := newTestCoordinator(t)
	c.Toggle()
	m.Pump()
	if !c.State().IsOpen {
		t.Fatal("first toggle should open")
	}
	c.Toggle()
	m.Pump()
	if c.State().IsOpen {
		t.Fatal("second toggle should close")
	}
}

func TestToggleTwiceInOneTurnEndsWhereItStarted(t *testing.T) {
	c, m := newTestCoordinator(t)
	c.Toggle()
	c.Toggle()
	m.Pump()
	if c.State().IsOpen {
		t.Fatal("toggle+toggle within one turn should net to closed")
	}
}

func TestOpenInKeyboardModeFocusesCenter(t *testing.T) {
	surface := &fakeSurface{}
	c, m := newTestCoordinator(t, WithSurface(surface))
	c.HandleKey(KeyTab)
	m.Pump()

	c.Open()
	m.Pump()
	if surface.focusCenter != 1 {
		t.Fatalf("center focused %d times, want 1", surface.focusCenter)
	}
}

func TestOpenEmitsOpenEventWithEffectiveState(t *testing.T) {
	c, m := newTestCoordinator(t)
	var events []Event
	c.On(EventOpen, func(e Event) { events = append(events, e) })

	c.Open()
	if len(events) != 1 {
		t.Fatalf("expected 1 open event, got %d", len(events))
	}
	if !events[0].State.IsOpen {
		t.Fatal("open event should carry the in-flight open state")
	}
	m.Pump()
	if len(events) != 1 {
		t.Fatalf("flush re-emitted events: %d", len(events))
	}
}

// ---------------------------------------------------------------------------
// Auto-close
// ---------------------------------------------------------------------------

func TestAutoCloseFiresOnceAfterHoverLoss(t *testing.T) {
	c, m := newTestCoordinator(t)
	closes := 0
	c.On(EventClose, func(Event) { closes++ })

	c.Open()
	m.Pump()
	c.SetHoveredItem("about")
	c.SetHoveredItem("")
	m.Pump()

	m.Advance(c.Config().CloseDelay)
	if closes != 1 {
		t.Fatalf("close fired %d times, want 1", closes)
	}
	if c.State().IsOpen {
		t.Fatal("menu should be closed")
	}
}

func TestAutoCloseDelayResetsInsteadOfStacking(t *testing.T) {
	c, m := newTestCoordinator(t)
	closes := 0
	c.On(EventClose, func(Event) { closes++ })

	c.Open()
	m.Pump()
	c.SetHoveredItem("")
	m.Advance(c.Config().CloseDelay / 2)
	c.SetHoveredItem("") // resets the countdown
	m.Advance(c.Config().CloseDelay / 2)

	if closes != 0 {
		t.Fatal("close fired before the reset delay elapsed")
	}
	m.Advance(c.Config().CloseDelay / 2)
	if closes != 1 {
		t.Fatalf("close fired %d times, want exactly 1", closes)
	}
}

func TestHoverCancelsPendingAutoClose(t *testing.T) {
	c, m := newTestCoordinator(t)
	c.Open()
	m.Pump()
	c.SetHoveredItem("")
	m.Advance(c.Config().CloseDelay / 2)
	c.SetHoveredItem("about")
	m.Advance(10 * c.Config().CloseDelay)

	if !c.State().IsOpen {
		t.Fatal("hover should have cancelled the auto-close")
	}
}

func TestOpenCancelsStaleAutoClose(t *testing.T) {
	c, m := newTestCoordinator(t)
	c.Open()
	m.Pump()
	c.SetHoveredItem("")
	c.Close()
	m.Pump()
	c.Open()
	m.Pump()
	m.Advance(10 * c.Config().CloseDelay)

	if !c.State().IsOpen {
		t.Fatal("reopen should have cancelled the earlier auto-close timer")
	}
}

// ---------------------------------------------------------------------------
// Hover
// ---------------------------------------------------------------------------

func TestSetHoveredItemUnknownIDIsNoOp(t *testing.T) {
	c, m := newTestCoordinator(t)
	var rec recorder
	rec.attach(t, c)
	c.SetHoveredItem("nope")
	m.Pump()
	if len(rec.states) != 0 {
		t.Fatal("unknown hover id should not notify")
	}
}

func TestHoverEmitsEventOnChangeOnly(t *testing.T) {
	c, m := newTestCoordinator(t)
	var hovered []string
	c.On(EventHover, func(e Event) { hovered = append(hovered, e.ItemID) })

	c.SetHoveredItem("about")
	c.SetHoveredItem("about")
	c.SetHoveredItem("")
	m.Pump()

	if len(hovered) != 2 || hovered[0] != "about" || hovered[1] != "" {
		t.Fatalf("hover events: %v", hovered)
	}
}

// ---------------------------------------------------------------------------
// Navigate
// ---------------------------------------------------------------------------

func TestNavigateDoesNotWriteActiveItem(t *testing.T) {
	c, m := newTestCoordinator(t)
	c.Open()
	m.Pump()

	c.Navigate("about")
	m.Pump()

	if got := c.State().ActiveItem; got != "" {
		t.Fatalf("navigate wrote ActiveItem=%q; activation belongs to the scroll tracker", got)
	}
}

func TestNavigateEmitsClosesAndScrolls(t *testing.T) {
	surface := &fakeSurface{}
	c, m := newTestCoordinator(t, WithSurface(surface))
	var navigated []string
	c.On(EventNavigate, func(e Event) { navigated = append(navigated, e.ItemID) })

	c.Open()
	m.Pump()
	c.Navigate("about")
	m.Pump()

	if len(navigated) != 1 || navigated[0] != "about" {
		t.Fatalf("navigate events: %v", navigated)
	}
	if c.State().IsOpen {
		t.Fatal("navigate should always close")
	}
	if len(surface.scrolled) != 1 || surface.scrolled[0] != "about" {
		t.Fatalf("scroll requests: %v", surface.scrolled)
	}
}

func TestNavigateExternalAndAbsoluteHrefs(t *testing.T) {
	surface := &fakeSurface{}
	m := sched.NewManual()
	cfg := testConfig()
	cfg.Items = append(cfg.Items,
		NavigationItem{ID: "docs", Label: "Docs", Href: "https://example.com/docs", Position: 3, External: true},
		NavigationItem{ID: "blog", Label: "Blog", Href: "https://example.com/blog", Position: 4},
	)
	c := New(cfg, WithScheduler(m), WithSurface(surface), WithLogger(log.New(io.Discard, "", 0)))
	t.Cleanup(c.Destroy)

	c.Navigate("docs")
	c.Navigate("blog")
	m.Pump()

	if len(surface.external) != 1 || surface.external[0] != "https://example.com/docs" {
		t.Fatalf("external opens: %v", surface.external)
	}
	if len(surface.visited) != 1 || surface.visited[0] != "https://example.com/blog" {
		t.Fatalf("visits: %v", surface.visited)
	}
}

func TestNavigateUnknownIDIsNoOp(t *testing.T) {
	surface := &fakeSurface{}
	c, m := newTestCoordinator(t, WithSurface(surface))
	navigated := 0
	c.On(EventNavigate, func(Event) { navigated++ })

	c.Navigate("missing")
	m.Pump()

	if navigated != 0 || len(surface.scrolled) != 0 {
		t.Fatal("unknown navigate target should do nothing")
	}
}

// ---------------------------------------------------------------------------
// UpdateConfig
// ---------------------------------------------------------------------------

func TestUpdateConfigItemsPrunesStaleStateFields(t *testing.T) {
	c, m := newTestCoordinator(t)
	c.Open()
	m.Pump()
	c.SetHoveredItem("about")
	c.FocusGained("projects")
	m.Pump()

	c.UpdateConfig(ConfigPatch{Items: []NavigationItem{
		{ID: "home", Label: "Home", Href: "#home", Position: 0},
	}})
	m.Pump()

	s := c.State()
	if s.HoveredItem != "" || s.FocusedItem != "" {
		t.Fatalf("stale ids survived item replacement: %+v", s)
	}
}

func TestUpdateConfigItemsRederivesObservedSections(t *testing.T) {
	vp := &fakeViewport{}
	c, m := newTestCoordinator(t, WithViewport(vp))
	if len(vp.observed) != 3 {
		t.Fatalf("initial observe count: %d", len(vp.observed))
	}

	c.UpdateConfig(ConfigPatch{Items: []NavigationItem{
		{ID: "home", Label: "Home", Href: "#home", Position: 0},
		{ID: "contact", Label: "Contact", Href: "#contact", Position: 1},
	}})
	m.Pump()

	if vp.disconnects != 1 {
		t.Fatalf("disconnects: %d, want 1", vp.disconnects)
	}
	got := vp.observed[3:]
	if len(got) != 2 || got[0] != "home" || got[1] != "contact" {
		t.Fatalf("re-observed sections: %v", got)
	}
}

func TestUpdateConfigScalarFieldsApply(t *testing.T) {
	c, _ := newTestCoordinator(t)
	d := 150 * time.Millisecond
	c.UpdateConfig(ConfigPatch{AnimationDuration: &d})
	if got := c.Config().AnimationDuration; got != d {
		t.Fatalf("animation duration: %v", got)
	}
}

func TestConfigSnapshotIsDetached(t *testing.T) {
	c, _ := newTestCoordinator(t)
	snap := c.Config()
	snap.Items[0].ID = "mutated"
	if c.Config().Items[0].ID != "home" {
		t.Fatal("config snapshot shares the live item slice")
	}
}

// ---------------------------------------------------------------------------
// Destroy
// ---------------------------------------------------------------------------

func TestDestroyDiscardsPendingBatch(t *testing.T) {
	c, m := newTestCoordinator(t)
	var rec recorder
	rec.attach(t, c)

	c.Open()
	c.Destroy()
	m.Pump()

	if len(rec.states) != 0 {
		t.Fatal("pending batch flushed after destroy")
	}
}

func TestPostDestroyCallsAreSilentNoOps(t *testing.T) {
	c, m := newTestCoordinator(t)
	var rec recorder
	rec.attach(t, c)

	c.Destroy()
	c.Destroy() // idempotent
	c.Open()
	c.Navigate("home")
	c.SetHoveredItem("about")
	c.HandleKey(KeyTab)
	c.Toggle()
	c.UpdateConfig(ConfigPatch{})
	m.Pump()
	m.Advance(time.Minute)

	if len(rec.states) != 0 {
		t.Fatalf("post-destroy notifications: %d", len(rec.states))
	}
}

func TestDestroyCancelsTimers(t *testing.T) {
	c, m := newTestCoordinator(t)
	closes := 0
	c.On(EventClose, func(Event) { closes++ })

	c.Open()
	m.Pump()
	c.SetHoveredItem("")
	c.Destroy()
	m.Advance(time.Minute)

	if closes != 0 {
		t.Fatal("auto-close fired after destroy")
	}
}

func TestDestroyDisconnectsViewport(t *testing.T) {
	vp := &fakeViewport{}
	c, _ := newTestCoordinator(t, WithViewport(vp))
	c.Destroy()
	if vp.disconnects != 1 {
		t.Fatalf("viewport disconnects: %d", vp.disconnects)
	}
}
