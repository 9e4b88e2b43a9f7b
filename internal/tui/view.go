package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/orbitnav/orbitnav/nav"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}

	st := m.coord.State()
	var body string
	if st.IsOpen {
		body = m.viewMenu(st)
	} else {
		body = m.viewDocument(st)
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, m.viewFooter(st))
}

// ---------------------------------------------------------------------------
// Document pane
// ---------------------------------------------------------------------------

func (m Model) viewDocument(st nav.State) string {
	h := m.docViewHeight()
	top := int(m.scroll)
	activeSection := m.sectionForItem(st.ActiveItem)

	var b strings.Builder
	for row := 0; row < h; row++ {
		line := row + top
		b.WriteString(m.renderDocLine(line, activeSection))
		if row < h-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (m Model) renderDocLine(line int, activeSection string) string {
	for _, s := range m.doc.sections {
		if line < s.top || line >= s.top+s.lines {
			continue
		}
		off := line - s.top
		if off == 0 {
			title := "# " + s.title
			if s.id == activeSection {
				return styleSectionActive.Render(title + "  ◀ active")
			}
			return styleSectionTitle.Render(title)
		}
		if off-1 < len(s.body) {
			return styleBody.Render(truncate(s.body[off-1], m.width))
		}
		return ""
	}
	return ""
}

// sectionForItem maps an item id to its fragment section id.
func (m Model) sectionForItem(itemID string) string {
	if itemID == "" {
		return ""
	}
	for _, it := range m.coord.Config().Items {
		if it.ID == itemID {
			return it.SectionID()
		}
	}
	return ""
}

// ---------------------------------------------------------------------------
// Radial menu canvas
// ---------------------------------------------------------------------------

const (
	ownerNone   = -1
	ownerCenter = -2
)

type itemCell struct {
	id    string
	label string
	x, y  int
	w     int
}

type menuGrid struct {
	cells   []itemCell
	centerX int
	centerY int
	centerW int
}

// menuLayout computes screen cells for the center control and every item,
// scaling the coordinator's radial offsets into terminal cells. The x axis
// is stretched 2:1 to compensate for the cell aspect ratio.
func (m Model) menuLayout() menuGrid {
	cfg := m.coord.Config()
	items := cfg.Items

	h := m.docViewHeight()
	cx, cy := m.width/2, h/2

	rCells := float64(min(h/2-2, m.width/4-2))
	if rCells < 3 {
		rCells = 3
	}
	scale := 0.0
	if cfg.Radius > 0 {
		scale = rCells / cfg.Radius
	}

	l := menuGrid{centerX: cx, centerY: cy}
	l.centerW = lipgloss.Width(centerText)

	for _, it := range items {
		p := m.coord.ItemPosition(it.Position)
		x := cx + int(math.Round(p.X*scale*2))
		y := cy + int(math.Round(p.Y*scale))

		label := it.Label
		if it.Icon != "" {
			label = it.Icon + " " + label
		}
		w := lipgloss.Width(label)
		l.cells = append(l.cells, itemCell{
			id:    it.ID,
			label: label,
			x:     clampI(x-w/2, 0, max(m.width-w, 0)),
			y:     clampI(y, 0, h-1),
			w:     w,
		})
	}
	return l
}

const centerText = "◉ menu"

func (l menuGrid) hitTest(x, y int) string {
	for _, c := range l.cells {
		if y == c.y && x >= c.x && x < c.x+c.w {
			return c.id
		}
	}
	return ""
}

func (l menuGrid) hitCenter(x, y int) bool {
	half := l.centerW / 2
	return y == l.centerY && x >= l.centerX-half && x <= l.centerX+half
}

// viewMenu paints the items onto a rune canvas, then styles each placed
// label. An owner grid keeps styling per-cell-range without re-parsing.
func (m Model) viewMenu(st nav.State) string {
	h := m.docViewHeight()
	w := m.width
	l := m.menuLayout()

	grid := make([][]rune, h)
	owner := make([][]int, h)
	for y := 0; y < h; y++ {
		grid[y] = []rune(strings.Repeat(" ", w))
		owner[y] = make([]int, w)
		for x := range owner[y] {
			owner[y][x] = ownerNone
		}
	}

	place := func(text string, x, y, id int) {
		runes := []rune(text)
		for i, r := range runes {
			if y < 0 || y >= h || x+i < 0 || x+i >= w {
				continue
			}
			grid[y][x+i] = r
			owner[y][x+i] = id
		}
	}

	for i, c := range l.cells {
		place(c.label, c.x, c.y, i)
	}
	place(centerText, l.centerX-lipgloss.Width(centerText)/2, l.centerY, ownerCenter)

	centerFocused, _ := m.surface.focusRing()
	items := m.coord.Config().Items
	var b strings.Builder
	for y := 0; y < h; y++ {
		x := 0
		for x < w {
			id := owner[y][x]
			start := x
			for x < w && owner[y][x] == id {
				x++
			}
			seg := string(grid[y][start:x])
			switch {
			case id == ownerNone:
				b.WriteString(seg)
			case id == ownerCenter:
				if centerFocused {
					b.WriteString(styleCenterFocus.Render(seg))
				} else {
					b.WriteString(styleCenter.Render(seg))
				}
			default:
				it := items[id]
				b.WriteString(itemStyle(id, len(items),
					st.HoveredItem == it.ID, st.FocusedItem == it.ID).Render(seg))
			}
		}
		if y < h-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// ---------------------------------------------------------------------------
// Footer
// ---------------------------------------------------------------------------

func (m Model) viewFooter(st nav.State) string {
	if m.jumpOpen {
		return styleJumpPrompt.Render("jump: ") + m.jumpInput + "▌"
	}

	var hints []string
	for _, b := range m.keys.hints(st.IsOpen) {
		hints = append(hints, b.Help().Key+" "+b.Help().Desc)
	}
	left := styleStatus.Render(truncate(m.status, m.width/2))
	right := styleHints.Render(strings.Join(hints, " · "))
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	if w <= 1 {
		return string(r[:w])
	}
	return string(r[:w-1]) + "…"
}

func clampI(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
