package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next        key.Binding
	Prev        key.Binding
	Profile     key.Binding
	Adapt       key.Binding
	ReadAloud   key.Binding
	Export      key.Binding
	Attach      key.Binding
	Detach      key.Binding
	Send        key.Binding
	ExplainSimp key.Binding
	DefineTerms key.Binding
	CheckIn     key.Binding
	Quiz        key.Binding
	Close       key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:        key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Prev:        key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		Profile:     key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "profile")),
		Adapt:       key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "adapt")),
		ReadAloud:   key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "read aloud")),
		Export:      key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "export")),
		Attach:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "attach file")),
		Detach:      key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "remove file")),
		Send:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		ExplainSimp: key.NewBinding(key.WithKeys("f2"), key.WithHelp("f2", "explain simply")),
		DefineTerms: key.NewBinding(key.WithKeys("f3"), key.WithHelp("f3", "define terms")),
		CheckIn:     key.NewBinding(key.WithKeys("f4"), key.WithHelp("f4", "check-in")),
		Quiz:        key.NewBinding(key.WithKeys("f5"), key.WithHelp("f5", "quiz")),
		Close:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Quit:        key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Profile, k.Adapt, k.ReadAloud, k.Export, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Profile, k.Adapt},
		{k.ReadAloud, k.Export, k.Attach, k.Detach},
		{k.ExplainSimp, k.DefineTerms, k.CheckIn, k.Quiz},
		{k.Send, k.Close, k.Quit},
	}
}

// exportKeys maps a key in the export menu to its action.
var exportKeys = []struct {
	Key   string
	Label string
}{
	{"t", "plain text (.txt)"},
	{"m", "markdown (.md)"},
	{"p", "pdf (.pdf)"},
	{"w", "speech audio (.wav)"},
	{"c", "copy to clipboard"},
}
