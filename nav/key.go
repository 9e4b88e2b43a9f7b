package nav

// Key is a device-independent key event. Input adapters (the terminal demo,
// a DOM listener) translate their native events into these.
type Key int

const (
	KeyNone Key = iota
	KeyTab
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeySpace
	KeyEscape
	KeyHome
	KeyEnd
)
