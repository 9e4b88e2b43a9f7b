package nav

import "math"

// HandleIntersections is the viewport observer's callback. Reports arriving
// within one scheduler turn are coalesced: only the latest report is
// processed, at most once per turn, which is the frame-gated throttle for
// raw scroll events.
//
// Activation resolves to the intersecting section with the highest ratio
// (ties go to the item with the lower Position). When nothing intersects —
// fast scroll, short sections — the section whose center sits closest to the
// viewport center wins. Only a change of ActiveItem produces an update and
// an activate event.
func (c *Coordinator) HandleIntersections(entries []Intersection) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return
	}
	c.latest = append(c.latest[:0], entries...)
	if c.passScheduled {
		return
	}
	c.passScheduled = true
	c.scheduler.Defer(c.scrollPass)
}

func (c *Coordinator) scrollPass() {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	c.passScheduled = false
	entries := c.latest

	id, ok := c.resolveActiveLocked(entries)
	if !ok || c.effectiveState().ActiveItem == id {
		c.mu.Unlock()
		return
	}
	c.request(statePatch{activeItem: strPtr(id)})
	ev := c.eventLocked(EventActivate, id)
	hs := c.handlersFor(EventActivate)
	c.mu.Unlock()

	c.dispatch(hs, ev)
}

// resolveActiveLocked maps an intersection report to an item id. Sections
// with no matching fragment item are skipped. Caller holds c.mu.
func (c *Coordinator) resolveActiveLocked(entries []Intersection) (string, bool) {
	type candidate struct {
		item  NavigationItem
		entry Intersection
	}

	var intersecting []candidate
	var all []candidate
	for _, e := range entries {
		it, ok := c.itemForSection(e.SectionID)
		if !ok {
			continue
		}
		all = append(all, candidate{it, e})
		if e.Intersecting {
			intersecting = append(intersecting, candidate{it, e})
		}
	}

	if len(intersecting) > 0 {
		best := intersecting[0]
		for _, cand := range intersecting[1:] {
			if cand.entry.Ratio > best.entry.Ratio ||
				(cand.entry.Ratio == best.entry.Ratio && cand.item.Position < best.item.Position) {
				best = cand
			}
		}
		return best.item.ID, true
	}

	if len(all) == 0 {
		return "", false
	}

	// closest-section fallback: center distance to the viewport center
	mid := c.viewportH / 2
	best := all[0]
	bestDist := math.Abs(all[0].entry.CenterY - mid)
	for _, cand := range all[1:] {
		d := math.Abs(cand.entry.CenterY - mid)
		if d < bestDist || (d == bestDist && cand.item.Position < best.item.Position) {
			best = cand
			bestDist = d
		}
	}
	return best.item.ID, true
}

// itemForSection finds the fragment item owning a section id. Caller holds
// c.mu.
func (c *Coordinator) itemForSection(sectionID string) (NavigationItem, bool) {
	if sectionID == "" {
		return NavigationItem{}, false
	}
	for _, it := range c.ordered {
		if it.SectionID() == sectionID {
			return it, true
		}
	}
	return NavigationItem{}, false
}
