package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the booking TUI key bindings. Arrow keys mean different
// things per screen: movie and showtime on the catalog, the seat cursor on
// the seat map.
type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	Select     key.Binding
	ToggleSeat key.Binding
	NextField  key.Binding
	PrevField  key.Binding
	Submit     key.Binding
	Back       key.Binding

	BookAnother key.Binding

	PageUp   key.Binding
	PageDown key.Binding

	Quit      key.Binding
	ForceQuit key.Binding
}

var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "right"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	ToggleSeat: key.NewBinding(
		key.WithKeys(" ", "space", "enter"),
		key.WithHelp("space", "toggle seat"),
	),
	NextField: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	PrevField: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("S-tab", "previous field"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm booking"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "start over"),
	),
	BookAnother: key.NewBinding(
		key.WithKeys("enter", "b"),
		key.WithHelp("enter/b", "book another"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("pgup", "scroll up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d"),
		key.WithHelp("pgdn", "scroll down"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("C-c", "quit"),
	),
}

func (k KeyMap) catalogHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, withHelp(k.Right, "←/→", "showtime"), k.Select, k.Quit}
}

func (k KeyMap) seatHelp() []key.Binding {
	return []key.Binding{withHelp(k.Up, "arrows", "move"), k.ToggleSeat, withHelp(k.NextField, "tab", "details"), k.Back, k.Quit}
}

func (k KeyMap) formHelp() []key.Binding {
	return []key.Binding{k.NextField, k.PrevField, k.Submit, k.Back, k.ForceQuit}
}

func (k KeyMap) confirmationHelp() []key.Binding {
	return []key.Binding{k.BookAnother, k.Quit}
}

func withHelp(b key.Binding, keys, desc string) key.Binding {
	b.SetHelp(keys, desc)
	return b
}
