package nav

// State is the menu's observable state. Empty-string item fields mean "none".
// State is a value type; every State handed out is already a snapshot.
type State struct {
	IsOpen       bool
	ActiveItem   string
	HoveredItem  string
	FocusedItem  string
	KeyboardMode bool
	IsAnimating  bool
}

// statePatch is a partial State. Nil fields are untouched; for the item
// fields a pointer to "" clears.
type statePatch struct {
	isOpen       *bool
	activeItem   *string
	hoveredItem  *string
	focusedItem  *string
	keyboardMode *bool
	isAnimating  *bool
}

// merge folds p2 into p, later writes overriding earlier ones per field.
func (p *statePatch) merge(p2 statePatch) {
	if p2.isOpen != nil {
		p.isOpen = p2.isOpen
	}
	if p2.activeItem != nil {
		p.activeItem = p2.activeItem
	}
	if p2.hoveredItem != nil {
		p.hoveredItem = p2.hoveredItem
	}
	if p2.focusedItem != nil {
		p.focusedItem = p2.focusedItem
	}
	if p2.keyboardMode != nil {
		p.keyboardMode = p2.keyboardMode
	}
	if p2.isAnimating != nil {
		p.isAnimating = p2.isAnimating
	}
}

func (p statePatch) applyTo(s State) State {
	if p.isOpen != nil {
		s.IsOpen = *p.isOpen
	}
	if p.activeItem != nil {
		s.ActiveItem = *p.activeItem
	}
	if p.hoveredItem != nil {
		s.HoveredItem = *p.hoveredItem
	}
	if p.focusedItem != nil {
		s.FocusedItem = *p.focusedItem
	}
	if p.keyboardMode != nil {
		s.KeyboardMode = *p.keyboardMode
	}
	if p.isAnimating != nil {
		s.IsAnimating = *p.isAnimating
	}
	return s
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }
