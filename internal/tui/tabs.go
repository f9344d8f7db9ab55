package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/framewm/internal/ipc"
)

// Tab identifies a TUI tab.
type Tab int

const (
	TabFrame Tab = iota
	TabWindow
	TabGeometry
	tabCount
)

var tabTitles = [tabCount]string{
	TabFrame:    "Frame",
	TabWindow:   "Window & Hotkeys",
	TabGeometry: "Saved Geometry",
}

func (t Tab) String() string {
	if t < 0 || t >= tabCount {
		return "?"
	}
	return tabTitles[t]
}

func (t Tab) next() Tab { return (t + 1) % tabCount }
func (t Tab) prev() Tab { return (t + tabCount - 1) % tabCount }

const (
	colorAccent = lipgloss.Color("62")
	colorBright = lipgloss.Color("15")
	colorText   = lipgloss.Color("250")
	colorMuted  = lipgloss.Color("241")
	colorBar    = lipgloss.Color("235")
	colorRunOK  = lipgloss.Color("42")
)

var (
	tabStyle       = lipgloss.NewStyle().Padding(0, 2).Foreground(colorText).Background(lipgloss.Color("236"))
	activeTabStyle = tabStyle.Bold(true).Foreground(colorBright).Background(colorAccent)
	barStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(colorText).Background(colorBar)

	labelStyle = lipgloss.NewStyle().Width(24).Align(lipgloss.Right).PaddingRight(2).Foreground(colorText)
	valueStyle = lipgloss.NewStyle().Bold(true).Foreground(colorBright)
	dimStyle   = lipgloss.NewStyle().Foreground(colorMuted)
)

func renderTabBar(active Tab, width int) string {
	cells := make([]string, 0, 2*tabCount)
	for t := range tabCount {
		if t > 0 {
			cells = append(cells, lipgloss.NewStyle().Background(colorBar).Render(" "))
		}
		style := tabStyle
		if t == active {
			style = activeTabStyle
		}
		cells = append(cells, style.Render(fmt.Sprintf("%d:%s", t+1, t)))
	}
	return lipgloss.NewStyle().Width(width).MarginBottom(1).
		Render(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
}

// statusLine describes the running frame, or its absence.
func statusLine(st *ipc.StatusData) string {
	if st == nil {
		return dimStyle.Render("●") + " frame not running"
	}
	parts := []string{lipgloss.NewStyle().Foreground(colorRunOK).Render("●") + " frame " + st.Name + " running"}
	switch {
	case st.Minimized:
		parts = append(parts, "minimized")
	case st.Maximized:
		parts = append(parts, "maximized")
	case st.SnapSide != "" && st.SnapSide != "none":
		parts = append(parts, "snapped:"+st.SnapSide)
	}
	return strings.Join(append(parts, st.Geometry.String()), "  ")
}

func renderStatusBar(st *ipc.StatusData, width int) string {
	return barStyle.Width(width).Render(statusLine(st))
}

func renderHelpBar(h help.Model, keys keyMap, width int) string {
	h.Width = width - 2
	return lipgloss.NewStyle().Width(width).Padding(0, 1).Render(h.View(keys))
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}

func displayOrDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func centered(msg string, width, height int) string {
	return dimStyle.Width(width).Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(msg)
}
