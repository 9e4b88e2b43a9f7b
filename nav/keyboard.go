package nav

// HandleKey feeds one key event into the navigation controller. The return
// value reports whether the key was consumed; unconsumed keys should keep
// their default behavior in the host (Tab in particular is observed, never
// swallowed). Keys other than Tab only do anything while the menu is open.
func (c *Coordinator) HandleKey(k Key) bool {
	c.mu.Lock()
	if c.destroyed || !c.cfg.EnableKeyboard {
		c.mu.Unlock()
		return false
	}

	eff := c.effectiveState()

	if k == KeyTab {
		if !eff.KeyboardMode {
			c.request(statePatch{keyboardMode: boolPtr(true)})
		}
		c.mu.Unlock()
		return false
	}

	if !eff.IsOpen {
		c.mu.Unlock()
		return false
	}

	switch k {
	case KeyUp, KeyLeft:
		c.moveFocusLocked(eff.FocusedItem, -1)
		c.mu.Unlock()
		return true
	case KeyDown, KeyRight:
		c.moveFocusLocked(eff.FocusedItem, +1)
		c.mu.Unlock()
		return true
	case KeyHome:
		c.focusOrdinalLocked(0)
		c.mu.Unlock()
		return true
	case KeyEnd:
		c.focusOrdinalLocked(len(c.ordered) - 1)
		c.mu.Unlock()
		return true
	case KeyEnter, KeySpace:
		id := eff.FocusedItem
		c.mu.Unlock()
		if id != "" {
			c.Navigate(id)
		}
		return true
	case KeyEscape:
		surface := c.surface
		c.mu.Unlock()
		c.Close()
		surface.ReturnFocus()
		return true
	}

	c.mu.Unlock()
	return false
}

// moveFocusLocked steps focus by delta with wrap-around. With nothing
// focused, stepping forward lands on the first item and backward on the
// last. Caller holds c.mu; the surface focus call is deferred so it runs
// off-lock.
func (c *Coordinator) moveFocusLocked(current string, delta int) {
	n := len(c.ordered)
	if n == 0 {
		return
	}
	idx := -1
	for i, it := range c.ordered {
		if it.ID == current {
			idx = i
			break
		}
	}
	var next int
	if idx < 0 {
		if delta > 0 {
			next = 0
		} else {
			next = n - 1
		}
	} else {
		next = (idx + delta + n) % n
	}
	c.focusOrdinalLocked(next)
}

// focusOrdinalLocked focuses the item at an index into the position-ordered
// list. Caller holds c.mu.
func (c *Coordinator) focusOrdinalLocked(i int) {
	if i < 0 || i >= len(c.ordered) {
		return
	}
	id := c.ordered[i].ID
	c.focusLossSeq++
	c.request(statePatch{focusedItem: strPtr(id)})
	surface := c.surface
	c.scheduler.Defer(func() { surface.FocusItem(id) })
}

// PointerMoved exits keyboard mode; entering it again takes another Tab.
func (c *Coordinator) PointerMoved() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return
	}
	if c.effectiveState().KeyboardMode {
		c.request(statePatch{keyboardMode: boolPtr(false)})
	}
}

// FocusGained records that a menu item element received input focus. It also
// cancels a pending focus-loss resolution, so focus hopping between two menu
// items never registers as leaving the menu. Unknown ids are ignored.
func (c *Coordinator) FocusGained(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed || !c.hasItem(id) {
		return
	}
	c.focusLossSeq++
	if c.effectiveState().FocusedItem != id {
		c.request(statePatch{focusedItem: strPtr(id)})
	}
}

// FocusLost records that a menu item element lost input focus. The clear is
// resolved one turn later: if another menu item gains focus in the meantime
// the loss is discarded, otherwise focus moved outside the menu and
// FocusedItem clears.
func (c *Coordinator) FocusLost() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return
	}
	c.focusLossSeq++
	seq := c.focusLossSeq
	c.scheduler.Defer(func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.destroyed || c.focusLossSeq != seq {
			return
		}
		if c.effectiveState().FocusedItem != "" {
			c.request(statePatch{focusedItem: strPtr("")})
		}
	})
}
