package tui

import "github.com/charmbracelet/bubbles/key"

type pageKeyMap struct {
	Rate key.Binding
	Next key.Binding
	Prev key.Binding
	Open key.Binding
	Quit key.Binding
}

func (k pageKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Rate, k.Next, k.Open, k.Quit}
}

func (k pageKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Rate, k.Next, k.Prev, k.Open, k.Quit}}
}

var pageKeys = pageKeyMap{
	Rate: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rate us")),
	Next: key.NewBinding(key.WithKeys("tab", "right"), key.WithHelp("tab", "next link")),
	Prev: key.NewBinding(key.WithKeys("shift+tab", "left"), key.WithHelp("shift+tab", "previous link")),
	Open: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open link")),
	Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

type dialogKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Select    key.Binding
	Stars     key.Binding
	Submit    key.Binding
	Close     key.Binding
	ForceQuit key.Binding
}

func (k dialogKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Stars, k.Up, k.Down, k.Submit, k.Close}
}

func (k dialogKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Select, k.Stars},
		{k.Submit, k.Close, k.ForceQuit},
	}
}

var dialogKeys = dialogKeyMap{
	Up:        key.NewBinding(key.WithKeys("up", "k", "shift+tab"), key.WithHelp("↑", "previous question")),
	Down:      key.NewBinding(key.WithKeys("down", "j", "tab"), key.WithHelp("↓", "next question")),
	Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "previous star")),
	Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next star")),
	Select:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "choose star")),
	Stars:     key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "rate")),
	Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
	Close:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}
