package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/framewm/internal/config"
	"github.com/1broseidon/framewm/internal/ipc"
	"github.com/1broseidon/framewm/internal/settings"
)

// frameClient is the part of the IPC client the TUI uses.
type frameClient interface {
	GetStatus() (*ipc.StatusData, error)
	Reload() error
}

// model is the root bubbletea model for the TUI.
type model struct {
	configPath string
	result     *config.LoadResult
	loadErr    error
	client     frameClient

	activeTab Tab
	keys      keyMap
	help      help.Model

	// Sub-models
	frameTab    FrameTab
	windowTab   WindowTab
	geometryTab GeometryTab

	// Save overlay
	originalConfig *config.Config
	saveOverlay    SaveOverlay

	// Running frame, nil when none answers
	status *ipc.StatusData

	// Terminal dimensions
	width  int
	height int
}

func newModel(configPath string, store *settings.Store, client frameClient) model {
	m := model{
		configPath: configPath,
		client:     client,
		activeTab:  TabFrame,
		keys:       newKeyMap(),
		help:       help.New(),
	}

	m.loadConfig()
	if m.result != nil {
		m.originalConfig = cloneConfig(m.result.Config)
	}
	m.refreshStatus()

	var cfg *config.Config
	if m.result != nil {
		cfg = m.result.Config
	}
	m.frameTab = NewFrameTab(cfg)
	m.windowTab = NewWindowTab(cfg)
	m.geometryTab = NewGeometryTab(store, m.runningName())

	return m
}

func (m *model) loadConfig() {
	res, err := config.LoadFromPath(m.configPath)
	if err != nil {
		m.loadErr = err
		return
	}
	m.loadErr = nil
	m.result = res
}

func (m *model) refreshStatus() {
	m.status = nil
	if m.client == nil {
		return
	}
	if st, err := m.client.GetStatus(); err == nil {
		m.status = st
	}
}

// reloadTarget is the client to notify after a save, or nil when no frame
// is running.
func (m model) reloadTarget() frameClient {
	if m.status == nil || m.client == nil {
		return nil
	}
	return m.client
}

func (m model) editing() bool {
	return (m.activeTab == TabFrame && m.frameTab.editing) ||
		(m.activeTab == TabWindow && m.windowTab.editing)
}

func (m model) resizeTabs() model {
	sub := tea.WindowSizeMsg{Width: m.width, Height: max(1, m.height-4)}
	m.frameTab, _ = m.frameTab.Update(sub)
	m.windowTab, _ = m.windowTab.Update(sub)
	m.geometryTab, _ = m.geometryTab.Update(sub)
	return m
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = size.Width, size.Height
		return m.resizeTabs(), nil
	}
	km, isKey := msg.(tea.KeyMsg)
	if isKey && key.Matches(km, m.keys.Abort) {
		return m, tea.Quit
	}

	// The save overlay captures all input while open.
	if m.saveOverlay.Active() {
		if isKey {
			m = m.updateSave(km)
		}
		return m, nil
	}

	if isKey && key.Matches(km, m.keys.Save) {
		if m.result != nil && m.result.Config != nil {
			m.saveOverlay.Show(m.originalConfig, m.result.Config)
		}
		return m, nil
	}

	if isKey && !m.editing() {
		switch {
		case key.Matches(km, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(km, m.keys.Next):
			m.activeTab = m.activeTab.next()
			return m, nil
		case key.Matches(km, m.keys.Prev):
			m.activeTab = m.activeTab.prev()
			return m, nil
		case key.Matches(km, m.keys.Refresh) && m.activeTab == TabGeometry:
			m.refreshStatus()
			m.geometryTab.SetRunning(m.runningName())
		}
		if t, ok := m.keys.jumpTarget(km); ok {
			m.activeTab = t
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.activeTab {
	case TabFrame:
		m.frameTab, cmd = m.frameTab.Update(msg)
	case TabWindow:
		m.windowTab, cmd = m.windowTab.Update(msg)
	case TabGeometry:
		m.geometryTab, cmd = m.geometryTab.Update(msg)
	}
	return m, cmd
}

func (m model) updateSave(km tea.KeyMsg) model {
	before := m.saveOverlay.phase
	m.saveOverlay = m.saveOverlay.Update(km, m.result.Config, m.configPath, m.reloadTarget())
	if before == savePreview && m.saveOverlay.SaveSucceeded() {
		m.originalConfig = cloneConfig(m.result.Config)
		m.refreshStatus()
	}
	return m
}

func (m model) runningName() string {
	if m.status == nil {
		return ""
	}
	return m.status.Name
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	top := lipgloss.JoinVertical(lipgloss.Left,
		renderStatusBar(m.status, m.width),
		renderTabBar(m.activeTab, m.width),
	)
	bottom := renderHelpBar(m.help, m.keys, m.width)
	h := max(1, m.height-lipgloss.Height(top)-lipgloss.Height(bottom))

	var content string
	switch {
	case m.saveOverlay.Active():
		content = m.saveOverlay.View(m.width, h)
	case m.loadErr != nil && m.activeTab != TabGeometry:
		content = centered("Config error: "+m.loadErr.Error(), m.width, h)
	case m.activeTab == TabFrame:
		content = m.frameTab.View()
	case m.activeTab == TabWindow:
		content = m.windowTab.View()
	default:
		content = m.geometryTab.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, top, content, bottom)
}
