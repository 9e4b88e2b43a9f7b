// Package tui is the terminal rendering surface for the navigation
// coordinator: it draws the sectioned document and the radial menu, adapts
// key and mouse input into coordinator calls, and feeds section visibility
// back as intersection reports.
package tui

import (
	"log"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/orbitnav/orbitnav/internal/config"
	"github.com/orbitnav/orbitnav/nav"
	"github.com/orbitnav/orbitnav/nav/sched"
)

// frameInterval paces the render/scroll/intersection loop; visibility is
// reported at most once per frame.
const frameInterval = 50 * time.Millisecond

type frameMsg time.Time

// Model is the bubbletea model wrapping one Coordinator.
type Model struct {
	coord   *nav.Coordinator
	doc     *document
	surface *termSurface
	keys    keyMap
	touch   bool

	width  int
	height int

	scroll float64 // document scroll offset, lines
	target float64

	jumpOpen  bool
	jumpInput string

	status   string
	quitting bool
}

// New wires a coordinator to a fresh document and surface. The caller owns
// the scheduler and the coordinator's teardown.
func New(cfg config.Config, scheduler sched.Scheduler, logger *log.Logger) Model {
	navCfg := cfg.Nav()
	doc := newDocument(navCfg.Items, cfg.UI.SectionLines)
	surface := newTermSurface()

	coord := nav.New(navCfg,
		nav.WithScheduler(scheduler),
		nav.WithLogger(logger),
		nav.WithSurface(surface),
		nav.WithViewport(doc),
	)

	return Model{
		coord:   coord,
		doc:     doc,
		surface: surface,
		keys:    defaultKeyMap(),
		touch:   navCfg.EnableTouch,
		status:  "Ready — press m for the menu",
	}
}

// Coordinator exposes the wrapped coordinator for collaborators (analytics).
func (m Model) Coordinator() *nav.Coordinator {
	return m.coord
}

func (m Model) Init() tea.Cmd {
	return frameTick()
}

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.coord.SetViewportSize(float64(msg.Width), float64(m.docViewHeight()))
		return m, nil

	case frameMsg:
		return m.handleFrame()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

// handleFrame drains coordinator side effects, advances the smooth scroll
// and reports section visibility — one pass per frame.
func (m Model) handleFrame() (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	scrollTo, notices := m.surface.drain()
	for _, id := range scrollTo {
		if top, ok := m.doc.sectionTop(id); ok {
			m.target = float64(top)
		}
	}
	if len(notices) > 0 {
		m.status = notices[len(notices)-1]
	}

	m.target = clampF(m.target, 0, float64(max(m.doc.height()-m.docViewHeight(), 0)))
	if diff := m.target - m.scroll; diff != 0 {
		step := diff * 0.25
		if step > -0.5 && step < 0.5 {
			m.scroll = m.target
		} else {
			m.scroll += step
		}
	}

	m.coord.HandleIntersections(m.doc.intersections(int(m.scroll), m.docViewHeight()))
	return m, frameTick()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.jumpOpen {
		return m.handleJumpKey(msg)
	}

	open := m.coord.State().IsOpen

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Toggle):
		m.coord.Toggle()
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		m.coord.HandleKey(nav.KeyTab)
		return m, nil

	case key.Matches(msg, m.keys.Jump):
		m.jumpOpen = true
		m.jumpInput = ""
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if !m.coord.HandleKey(nav.KeyUp) {
			m.target -= 3
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if !m.coord.HandleKey(nav.KeyDown) {
			m.target += 3
		}
		return m, nil

	case key.Matches(msg, m.keys.Left):
		m.coord.HandleKey(nav.KeyLeft)
		return m, nil

	case key.Matches(msg, m.keys.Right):
		m.coord.HandleKey(nav.KeyRight)
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		if !m.coord.HandleKey(nav.KeyEnter) {
			m.coord.Open()
		}
		return m, nil

	case key.Matches(msg, m.keys.Space):
		m.coord.HandleKey(nav.KeySpace)
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.coord.HandleKey(nav.KeyEscape)
		return m, nil

	case key.Matches(msg, m.keys.Home):
		if !open {
			m.target = 0
			return m, nil
		}
		m.coord.HandleKey(nav.KeyHome)
		return m, nil

	case key.Matches(msg, m.keys.End):
		if !open {
			m.target = float64(m.doc.height())
			return m, nil
		}
		m.coord.HandleKey(nav.KeyEnd)
		return m, nil

	case key.Matches(msg, m.keys.ScrollUp):
		m.target -= 3
		return m, nil

	case key.Matches(msg, m.keys.ScrollDown):
		m.target += 3
		return m, nil

	case key.Matches(msg, m.keys.DocTop):
		m.target = 0
		return m, nil

	case key.Matches(msg, m.keys.DocBottom):
		m.target = float64(m.doc.height())
		return m, nil
	}
	return m, nil
}

func (m Model) handleJumpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.jumpOpen = false
		return m, nil
	case tea.KeyEnter:
		m.jumpOpen = false
		if it, ok := m.coord.FindItem(m.jumpInput); ok {
			m.coord.Navigate(it.ID)
			m.status = "jump: " + it.Label
		} else {
			m.status = "jump: no match for " + m.jumpInput
		}
		return m, nil
	case tea.KeyBackspace:
		if len(m.jumpInput) > 0 {
			m.jumpInput = m.jumpInput[:len(m.jumpInput)-1]
		}
		return m, nil
	case tea.KeyRunes, tea.KeySpace:
		m.jumpInput += msg.String()
		return m, nil
	}
	return m, nil
}

// handleMouse maps motion to hover and clicks to navigation when touch
// input is enabled.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.touch {
		return m, nil
	}

	m.coord.PointerMoved()

	if !m.coord.State().IsOpen {
		return m, nil
	}
	layout := m.menuLayout()
	hit := layout.hitTest(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionMotion:
		m.coord.SetHoveredItem(hit)
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if hit != "" {
			m.coord.Navigate(hit)
		} else if layout.hitCenter(msg.X, msg.Y) {
			m.coord.Toggle()
		}
	}
	return m, nil
}

// docViewHeight is the document pane height: everything minus the footer.
func (m Model) docViewHeight() int {
	return max(m.height-2, 1)
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
