package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// keyMap holds the bindings handled by the root model. Tabs own their own
// keys.
type keyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Jump    [tabCount]key.Binding
	Save    key.Binding
	Refresh key.Binding
	Quit    key.Binding
	Abort   key.Binding // always quits, even while a form is editing
}

func newKeyMap() keyMap {
	km := keyMap{
		Next:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab/shift-tab", "switch tabs")),
		Prev:    key.NewBinding(key.WithKeys("shift+tab")),
		Save:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl-s", "save")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q/ctrl-c", "quit")),
		Abort:   key.NewBinding(key.WithKeys("ctrl+c")),
	}
	digits := "123456789"
	for i := range km.Jump {
		km.Jump[i] = key.NewBinding(key.WithKeys(digits[i : i+1]))
	}
	km.Jump[0].SetHelp("1-"+digits[tabCount-1:tabCount], "jump to tab")
	return km
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Jump[0], k.Save, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Refresh}}
}

// jumpTarget returns the tab a digit key selects.
func (k keyMap) jumpTarget(msg tea.KeyMsg) (Tab, bool) {
	for i, b := range k.Jump {
		if key.Matches(msg, b) {
			return Tab(i), true
		}
	}
	return 0, false
}
