package nav

// Surface is the rendering layer's side of the contract: the coordinator
// calls it for focus movement and navigation side effects. Implementations
// must tolerate being called for ids they no longer display.
//
// A Surface is optional; until BindSurface is called every method degrades to
// a no-op.
type Surface interface {
	// FocusCenter moves input focus to the menu's center control.
	FocusCenter()

	// FocusItem moves input focus to the given item.
	FocusItem(id string)

	// ReturnFocus restores focus to whatever control opened the menu.
	ReturnFocus()

	// ScrollToSection smooth-scrolls the document to a section.
	ScrollToSection(sectionID string)

	// Visit navigates the current context to an absolute href.
	Visit(href string)

	// OpenExternal opens an absolute href in a new context.
	OpenExternal(href string)
}

type nopSurface struct{}

func (nopSurface) FocusCenter()           {}
func (nopSurface) FocusItem(string)       {}
func (nopSurface) ReturnFocus()           {}
func (nopSurface) ScrollToSection(string) {}
func (nopSurface) Visit(string)           {}
func (nopSurface) OpenExternal(string)    {}
