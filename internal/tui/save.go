package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/framewm/internal/config"
)

type savePhase int

const (
	saveHidden savePhase = iota
	savePreview
	saveResult
)

var errNoChanges = errors.New("no changes to save")

var (
	diffAddStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	diffRmStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	diffCtxStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	diffHunkStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
)

// SaveOverlay previews pending config changes as a diff, writes them on
// confirm and reloads a running frame.
type SaveOverlay struct {
	phase     savePhase
	diffLines []diffLine
	scroll    int

	err       error
	reloaded  bool
	reloadErr error
}

func (s SaveOverlay) Active() bool { return s.phase != saveHidden }

// Show opens the preview. An unchanged or invalid config goes straight to
// the result view.
func (s *SaveOverlay) Show(original, current *config.Config) {
	*s = SaveOverlay{phase: saveResult}
	if err := current.Validate(); err != nil {
		s.err = err
		return
	}
	s.diffLines = computeDiffLines(original, current)
	if len(s.diffLines) == 0 {
		s.err = errNoChanges
		return
	}
	s.phase = savePreview
}

// SaveSucceeded reports whether the last confirm wrote the file.
func (s SaveOverlay) SaveSucceeded() bool {
	return s.phase == saveResult && s.err == nil
}

// Update handles keys while the overlay is open. client is nil when no
// frame is running.
func (s SaveOverlay) Update(msg tea.Msg, cfg *config.Config, path string, client frameClient) SaveOverlay {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return s
	}
	if s.phase == saveResult {
		s.phase = saveHidden
		return s
	}
	switch km.String() {
	case "esc", "n":
		s.phase = saveHidden
	case "enter", "y":
		s.phase = saveResult
		if s.err = cfg.SaveTo(path); s.err != nil || client == nil {
			return s
		}
		s.reloadErr = client.Reload()
		s.reloaded = s.reloadErr == nil
	case "up", "k":
		s.scroll = max(0, s.scroll-1)
	case "down", "j":
		s.scroll++
	}
	return s
}

func (s SaveOverlay) View(width, height int) string {
	switch s.phase {
	case savePreview:
		return overlayBox(width, height, 80, s.previewContent(width, height))
	case saveResult:
		return overlayBox(width, height, 60, s.resultContent())
	}
	return ""
}

func (s SaveOverlay) previewContent(width, height int) string {
	removed, added := countChanges(s.diffLines)
	title := labelStyle.Render("Save Config: Pending Changes") + "  " +
		dimStyle.Render(fmt.Sprintf("-%d +%d", removed, added))

	visible := max(3, height-10)
	scroll := min(s.scroll, max(0, len(s.diffLines)-visible))
	end := min(len(s.diffLines), scroll+visible)
	textW := max(8, min(80, width-8)-8)

	var b strings.Builder
	for _, dl := range s.diffLines[scroll:end] {
		text := truncate(dl.text, textW)
		switch dl.kind {
		case diffAdded:
			b.WriteString(diffAddStyle.Render("+ " + text))
		case diffRemoved:
			b.WriteString(diffRmStyle.Render("- " + text))
		case diffHunk:
			b.WriteString(diffHunkStyle.Render(text))
		default:
			b.WriteString(diffCtxStyle.Render("  " + text))
		}
		b.WriteByte('\n')
	}

	footer := dimStyle.Render("enter/y: save  esc/n: cancel  j/k: scroll")
	return title + "\n\n" + strings.TrimRight(b.String(), "\n") + "\n\n" + footer
}

func (s SaveOverlay) resultContent() string {
	var msg string
	switch {
	case s.err != nil:
		msg = errStyle.Render("Error: " + s.err.Error())
	case s.reloaded:
		msg = okStyle.Render("Config saved") + "\n" + diffAddStyle.Render("Running frame reloaded")
	case s.reloadErr != nil:
		msg = okStyle.Render("Config saved") + "\n" + warnStyle.Render("Running frame did not reload: "+s.reloadErr.Error())
	default:
		msg = okStyle.Render("Config saved") + "\n" + dimStyle.Render("No frame running; changes apply on next start")
	}
	return msg + "\n\n" + dimStyle.Render("press any key to dismiss")
}

// overlayBox centers content in a bordered box no wider than maxW.
func overlayBox(width, height, maxW int, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2).
		Width(max(30, min(maxW, width-8))).
		Render(content)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
