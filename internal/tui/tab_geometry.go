package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/framewm/internal/frame"
	"github.com/1broseidon/framewm/internal/geometry"
	"github.com/1broseidon/framewm/internal/settings"
)

// geometryItem is a list item for one saved window geometry.
type geometryItem struct {
	name    string
	rect    geometry.Rect
	running bool
}

func (i geometryItem) Title() string {
	if i.running {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("●") + " " + i.name
	}
	return "  " + i.name
}

func (i geometryItem) Description() string {
	return fmt.Sprintf("%dx%d at %d,%d", i.rect.Width, i.rect.Height, i.rect.X, i.rect.Y)
}

func (i geometryItem) FilterValue() string { return i.name }

// GeometryTab lists the geometries in the settings store and resets them.
type GeometryTab struct {
	list    list.Model
	store   *settings.Store
	running string // name of the running frame, if any
	message string
	width   int
	height  int
}

// NewGeometryTab creates a GeometryTab backed by store.
func NewGeometryTab(store *settings.Store, running string) GeometryTab {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("15")).
		BorderForeground(lipgloss.Color("62"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.Color("250")).
		BorderForeground(lipgloss.Color("62"))

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Saved Geometry"
	l.Styles.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("62")).
		Padding(0, 1)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)

	g := GeometryTab{
		list:    l,
		store:   store,
		running: running,
	}
	g.refresh()
	return g
}

// SetRunning marks which window name belongs to the running frame.
func (g *GeometryTab) SetRunning(name string) {
	g.running = name
	g.refresh()
}

func (g *GeometryTab) refresh() {
	if g.store == nil {
		g.message = "settings store unavailable"
		return
	}
	geoms, err := g.store.Geometries()
	if err != nil {
		g.message = "Error: " + err.Error()
		g.list.SetItems(nil)
		return
	}
	items := make([]list.Item, 0, len(geoms))
	for _, geo := range geoms {
		items = append(items, geometryItem{name: geo.Name, rect: geo.Rect, running: geo.Name == g.running})
	}
	g.list.SetItems(items)
}

// reset deletes the saved geometry of the named window.
func (g *GeometryTab) reset(name string) {
	if err := g.store.Delete(name, frame.GeometryKey); err != nil {
		g.message = "Error: " + err.Error()
		return
	}
	g.message = fmt.Sprintf("Reset %s; it opens at its default geometry next time", name)
	if name == g.running {
		g.message += " (the running frame saves again when it closes)"
	}
	g.refresh()
}

// Update handles messages for the geometry tab.
func (g GeometryTab) Update(msg tea.Msg) (GeometryTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		g.width = msg.Width
		g.height = msg.Height
		g.list.SetSize(g.width, g.height-2)
		return g, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "x", "delete":
			if item, ok := g.list.SelectedItem().(geometryItem); ok && g.store != nil {
				g.reset(item.name)
			}
			return g, nil
		case "r":
			g.message = ""
			g.refresh()
			return g, nil
		}
	}

	var cmd tea.Cmd
	g.list, cmd = g.list.Update(msg)
	return g, cmd
}

// View implements tea.Model.
func (g GeometryTab) View() string {
	if len(g.list.Items()) == 0 {
		msg := "No saved geometry"
		if g.message != "" {
			msg = g.message
		}
		return centered(msg, g.width, g.height)
	}
	status := dimStyle.Render("  x: reset selected  r: refresh")
	if g.message != "" {
		status = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Render("  " + g.message)
	}
	return lipgloss.JoinVertical(lipgloss.Left, g.list.View(), "", status)
}
