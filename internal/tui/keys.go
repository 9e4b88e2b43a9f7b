package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit   key.Binding
	Toggle key.Binding
	Tab    key.Binding
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Enter  key.Binding
	Space  key.Binding
	Escape key.Binding
	Home   key.Binding
	End    key.Binding
	Jump   key.Binding

	ScrollUp   key.Binding
	ScrollDown key.Binding
	DocTop     key.Binding
	DocBottom  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Toggle: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "menu")),
		Tab:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "keyboard mode")),
		Up:     key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "focus prev")),
		Down:   key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "focus next")),
		Left:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "focus prev")),
		Right:  key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "focus next")),
		Enter:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "navigate")),
		Space:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "navigate")),
		Escape: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Home:   key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first item")),
		End:    key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last item")),
		Jump:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "jump to item")),

		ScrollUp:   key.NewBinding(key.WithKeys("k"), key.WithHelp("k", "scroll up")),
		ScrollDown: key.NewBinding(key.WithKeys("j"), key.WithHelp("j", "scroll down")),
		DocTop:     key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "top")),
		DocBottom:  key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "bottom")),
	}
}

// hints is the footer help line, menu-open and menu-closed variants.
func (k keyMap) hints(menuOpen bool) []key.Binding {
	if menuOpen {
		return []key.Binding{k.Up, k.Down, k.Enter, k.Escape, k.Jump, k.Quit}
	}
	return []key.Binding{k.Toggle, k.ScrollDown, k.ScrollUp, k.Jump, k.Quit}
}
