package tui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/orbitnav/orbitnav/nav"
)

// document is the scrollable page of sections behind the menu. It doubles as
// the coordinator's nav.ViewportObserver: each frame the model asks it for
// an intersection report over the watched sections.
//
// The activation band is the strip between 20% and 30% of the viewport
// height; a section's ratio is the fraction of the band it covers.
type document struct {
	mu       sync.Mutex
	sections []section
	watched  map[string]bool
}

type section struct {
	id    string
	title string
	top   int // first line, document coordinates
	lines int
	body  []string
}

const (
	bandTop    = 0.20
	bandBottom = 0.30
)

// newDocument lays out one section per fragment item, sectionLines tall.
func newDocument(items []nav.NavigationItem, sectionLines int) *document {
	if sectionLines < 4 {
		sectionLines = 4
	}
	d := &document{watched: make(map[string]bool)}
	top := 0
	for _, it := range items {
		id := it.SectionID()
		if id == "" {
			continue
		}
		s := section{
			id:    id,
			title: it.Label,
			top:   top,
			lines: sectionLines,
			body:  fillerBody(it.Label, sectionLines-2),
		}
		d.sections = append(d.sections, s)
		top += sectionLines
	}
	return d
}

func fillerBody(label string, n int) []string {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, fmt.Sprintf("%s — paragraph %d. %s", label, i+1,
			strings.Repeat("lorem ipsum dolor sit amet ", 2)))
	}
	return out
}

// Observe implements nav.ViewportObserver.
func (d *document) Observe(sectionID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.watched[sectionID] = true
}

// Disconnect implements nav.ViewportObserver.
func (d *document) Disconnect() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.watched = make(map[string]bool)
}

// height is the total document height in lines.
func (d *document) height() int {
	if len(d.sections) == 0 {
		return 0
	}
	last := d.sections[len(d.sections)-1]
	return last.top + last.lines
}

// sectionTop returns the top line of a section, if known.
func (d *document) sectionTop(id string) (int, bool) {
	for _, s := range d.sections {
		if s.id == id {
			return s.top, true
		}
	}
	return 0, false
}

// intersections reports where each watched section sits relative to a
// viewport of the given height scrolled to the given offset.
func (d *document) intersections(scroll, viewportH int) []nav.Intersection {
	d.mu.Lock()
	watched := make(map[string]bool, len(d.watched))
	for k, v := range d.watched {
		watched[k] = v
	}
	d.mu.Unlock()

	if viewportH <= 0 {
		return nil
	}
	bandLo := float64(viewportH) * bandTop
	bandHi := float64(viewportH) * bandBottom

	var out []nav.Intersection
	for _, s := range d.sections {
		if !watched[s.id] {
			continue
		}
		top := float64(s.top - scroll)
		bottom := top + float64(s.lines)

		overlap := min(bottom, bandHi) - max(top, bandLo)
		ratio := 0.0
		if overlap > 0 && bandHi > bandLo {
			ratio = overlap / (bandHi - bandLo)
			if ratio > 1 {
				ratio = 1
			}
		}
		out = append(out, nav.Intersection{
			SectionID:    s.id,
			Ratio:        ratio,
			Intersecting: overlap > 0,
			CenterY:      (top + bottom) / 2,
		})
	}
	return out
}
