package palette

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MenuItem is a row in a menu tree. Items with a Submenu open it when chosen.
type MenuItem struct {
	Label     string
	Action    string
	Icon      string
	IsHeader  bool
	IsDivider bool
	IsActive  bool
	Submenu   []MenuItem
}

func (m MenuItem) IsParent() bool {
	return len(m.Submenu) > 0
}

const (
	backAction    = "__back__"
	submenuPrefix = "__submenu__:"
)

// Menu walks a MenuItem tree through a launcher.
type Menu struct {
	backend Backend
	prompt  string
	root    []MenuItem
	message string
}

func NewMenu(backend Backend, prompt string, items []MenuItem) *Menu {
	return &Menu{backend: backend, prompt: prompt, root: items}
}

// SetMessage sets the context line shown by launchers that have one.
func (m *Menu) SetMessage(msg string) {
	m.message = msg
}

// Show returns the action of the chosen leaf, or ErrCancelled.
func (m *Menu) Show() (string, error) {
	return m.showLevel(m.root, nil)
}

func (m *Menu) showLevel(items []MenuItem, breadcrumb []string) (string, error) {
	if len(items) == 0 {
		return "", fmt.Errorf("menu: no items to show")
	}

	for {
		rows := make([]Item, 0, len(items)+1)
		if len(breadcrumb) > 0 {
			rows = append(rows, Item{Label: "← Back", Action: backAction, Icon: "go-previous"})
		}
		for i, item := range items {
			row := Item{
				Label:     item.Label,
				Action:    item.Action,
				Icon:      item.Icon,
				IsHeader:  item.IsHeader,
				IsDivider: item.IsDivider,
				IsActive:  item.IsActive,
			}
			if item.IsParent() {
				row.Label += " →"
				row.Action = submenuPrefix + strconv.Itoa(i)
			}
			rows = append(rows, row)
		}

		prompt := m.prompt
		if len(breadcrumb) > 0 {
			prompt = breadcrumb[len(breadcrumb)-1]
		}

		chosen, err := m.backend.Show(prompt, rows, m.message)
		if err != nil {
			return "", err
		}

		// Not every launcher can make headers unselectable.
		if !selectable(chosen) || strings.TrimSpace(chosen.Action) == "" {
			continue
		}
		if chosen.Action == backAction {
			return "", ErrCancelled
		}
		if strings.HasPrefix(chosen.Action, submenuPrefix) {
			idx, err := strconv.Atoi(strings.TrimPrefix(chosen.Action, submenuPrefix))
			if err != nil || idx < 0 || idx >= len(items) || !items[idx].IsParent() {
				continue
			}
			crumbs := append(append([]string(nil), breadcrumb...), items[idx].Label)
			action, err := m.showLevel(items[idx].Submenu, crumbs)
			if errors.Is(err, ErrCancelled) {
				continue
			}
			return action, err
		}
		return chosen.Action, nil
	}
}
