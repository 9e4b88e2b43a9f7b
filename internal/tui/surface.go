package tui

import (
	"sync"
)

// termSurface implements nav.Surface for the terminal. Coordinator side
// effects arrive on the scheduler goroutine; the model drains them on its
// next frame, so everything here is just a small mailbox.
type termSurface struct {
	mu sync.Mutex

	scrollTo      []string // pending smooth-scroll requests, section ids
	notices       []string // status-line messages (visits, external opens)
	centerFocused bool
	focusedItem   string
}

func newTermSurface() *termSurface {
	return &termSurface{}
}

func (s *termSurface) FocusCenter() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.centerFocused = true
	s.focusedItem = ""
}

func (s *termSurface) FocusItem(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.centerFocused = false
	s.focusedItem = id
}

func (s *termSurface) ReturnFocus() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.centerFocused = false
	s.focusedItem = ""
}

func (s *termSurface) ScrollToSection(sectionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scrollTo = append(s.scrollTo, sectionID)
}

func (s *termSurface) Visit(href string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notices = append(s.notices, "visit "+href)
}

func (s *termSurface) OpenExternal(href string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notices = append(s.notices, "open external "+href)
}

// drain hands the pending side effects to the frame loop.
func (s *termSurface) drain() (scrollTo []string, notices []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	scrollTo, s.scrollTo = s.scrollTo, nil
	notices, s.notices = s.notices, nil
	return scrollTo, notices
}

// focusRing reports what the renderer should draw a focus ring around.
func (s *termSurface) focusRing() (center bool, item string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.centerFocused, s.focusedItem
}
