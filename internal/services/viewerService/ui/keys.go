package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextCell key.Binding
	PrevCell key.Binding
	Run      key.Binding
	RunAll   key.Binding
	Import   key.Binding
	Add      key.Binding
	Rename   key.Binding
	Delete   key.Binding
	Theme    key.Binding
	Save     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		NextCell: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next cell")),
		PrevCell: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev cell")),
		Run:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "run")),
		RunAll:   key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "run all cells")),
		Import:   key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "import URL")),
		Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add file")),
		Rename:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "rename")),
		Delete:   key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Theme:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Save:     key.NewBinding(key.WithKeys("s", "ctrl+s"), key.WithHelp("s", "save")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Run, k.Import, k.Theme, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextCell, k.PrevCell},
		{k.Run, k.RunAll, k.Import, k.Add},
		{k.Rename, k.Delete, k.Theme, k.Save},
		{k.Help, k.Quit},
	}
}
