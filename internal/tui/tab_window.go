package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/framewm/internal/config"
)

// WindowTab edits the managed window, hotkeys and daemon settings.
type WindowTab struct {
	cfg *config.Config

	width  int
	height int

	editing bool
	form    *huh.Form
	vals    *windowForm
}

type windowForm struct {
	name, title                  string
	width, height                string
	minWidth, minHeight          string
	background                   string
	maximize, minimize, quit     string
	snapLeft, snapRight          string
	checkpointInterval, logLevel string
}

// NewWindowTab creates a WindowTab from the loaded config.
func NewWindowTab(cfg *config.Config) WindowTab {
	return WindowTab{cfg: cfg}
}

// SetConfig updates the config reference.
func (w *WindowTab) SetConfig(cfg *config.Config) {
	w.cfg = cfg
}

// Update implements tea.Model.
func (w WindowTab) Update(msg tea.Msg) (WindowTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
		if !w.editing {
			return w, nil
		}
	case tea.KeyMsg:
		if !w.editing {
			if msg.String() == "e" && w.cfg != nil {
				w.startEditing()
				return w, w.form.Init()
			}
			return w, nil
		}
		if msg.String() == "esc" {
			w.editing = false
			w.form = nil
			return w, nil
		}
	}
	if !w.editing {
		return w, nil
	}

	form, cmd := w.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.form = f
	}
	if w.form.State == huh.StateCompleted {
		w.applyForm()
		w.editing = false
		w.form = nil
		return w, nil
	}
	return w, cmd
}

func (w *WindowTab) loadForm() {
	cfg := w.cfg
	w.vals = &windowForm{
		name:               cfg.Window.Name,
		title:              cfg.Window.Title,
		width:              strconv.Itoa(cfg.Window.Width),
		height:             strconv.Itoa(cfg.Window.Height),
		minWidth:           strconv.Itoa(cfg.Window.MinWidth),
		minHeight:          strconv.Itoa(cfg.Window.MinHeight),
		background:         cfg.Window.Background,
		maximize:           cfg.Hotkeys.Maximize,
		minimize:           cfg.Hotkeys.Minimize,
		quit:               cfg.Hotkeys.Quit,
		snapLeft:           cfg.Hotkeys.SnapLeft,
		snapRight:          cfg.Hotkeys.SnapRight,
		checkpointInterval: cfg.CheckpointInterval.String(),
		logLevel:           strings.ToLower(cfg.LogLevel),
	}
	if w.vals.logLevel == "warn" {
		w.vals.logLevel = "warning"
	}
}

func (w *WindowTab) startEditing() {
	w.loadForm()
	v := w.vals

	width := w.width - 4
	if width < 40 {
		width = 40
	}

	levelOpts := []huh.Option[string]{
		huh.NewOption("debug", "debug"),
		huh.NewOption("info", "info"),
		huh.NewOption("warning", "warning"),
		huh.NewOption("error", "error"),
	}

	w.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Window Name").
				Description("Object name; also the group saved geometry is stored under. Applies on next run").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}).
				Value(&v.name),
			huh.NewInput().Key("title").Title("Title").Value(&v.title),
			huh.NewInput().Key("width").Title("Width").Validate(validateInt(1)).Value(&v.width),
			huh.NewInput().Key("height").Title("Height").Validate(validateInt(1)).Value(&v.height),
			huh.NewInput().Key("min_width").Title("Minimum Width").Validate(validateInt(1)).Value(&v.minWidth),
			huh.NewInput().Key("min_height").Title("Minimum Height").Validate(validateInt(1)).Value(&v.minHeight),
			huh.NewInput().Key("background").Title("Background").Validate(validateColor(false)).Value(&v.background),
		),
		huh.NewGroup(
			huh.NewInput().Key("maximize").Title("Maximize Hotkey").Description("e.g. Mod4-Up; empty disables").Value(&v.maximize),
			huh.NewInput().Key("minimize").Title("Minimize Hotkey").Value(&v.minimize),
			huh.NewInput().Key("quit").Title("Quit Hotkey").Value(&v.quit),
			huh.NewInput().Key("snap_left").Title("Snap Left Hotkey").Value(&v.snapLeft),
			huh.NewInput().Key("snap_right").Title("Snap Right Hotkey").Value(&v.snapRight),
		),
		huh.NewGroup(
			huh.NewInput().
				Key("checkpoint_interval").
				Title("Checkpoint Interval").
				Description("How often geometry is saved while running, e.g. 30s; 0 disables").
				Validate(func(s string) error {
					d, err := time.ParseDuration(strings.TrimSpace(s))
					if err != nil {
						return fmt.Errorf("must be a duration like 30s")
					}
					if d < 0 {
						return fmt.Errorf("must not be negative")
					}
					return nil
				}).
				Value(&v.checkpointInterval),
			huh.NewSelect[string]().
				Key("log_level").
				Title("Log Level").
				Options(levelOpts...).
				Value(&v.logLevel),
		),
	).WithWidth(width).WithShowHelp(true).WithShowErrors(true)

	w.editing = true
}

func (w *WindowTab) applyForm() {
	if w.cfg == nil || w.vals == nil {
		return
	}
	v := w.vals
	win := &w.cfg.Window
	if name := strings.TrimSpace(v.name); name != "" {
		win.Name = name
	}
	win.Title = v.title
	setPositive := func(dst *int, s string) {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && n > 0 {
			*dst = n
		}
	}
	setPositive(&win.Width, v.width)
	setPositive(&win.Height, v.height)
	setPositive(&win.MinWidth, v.minWidth)
	setPositive(&win.MinHeight, v.minHeight)
	if bg := strings.TrimSpace(v.background); bg != "" {
		win.Background = bg
	}

	w.cfg.Hotkeys = config.HotkeyConfig{
		Maximize:  strings.TrimSpace(v.maximize),
		Minimize:  strings.TrimSpace(v.minimize),
		Quit:      strings.TrimSpace(v.quit),
		SnapLeft:  strings.TrimSpace(v.snapLeft),
		SnapRight: strings.TrimSpace(v.snapRight),
	}
	if d, err := time.ParseDuration(strings.TrimSpace(v.checkpointInterval)); err == nil && d >= 0 {
		w.cfg.CheckpointInterval = d
	}
	if v.logLevel != "" {
		w.cfg.LogLevel = v.logLevel
	}
}

// View implements tea.Model.
func (w WindowTab) View() string {
	if w.editing && w.form != nil {
		return viewForm("Editing Window & Hotkeys", w.form, w.width, w.height)
	}
	cfg := w.cfg
	if cfg == nil {
		return centered("No config loaded", w.width, w.height)
	}

	hotkey := func(s string) string { return displayOrDefault(s, "(unbound)") }
	checkpoint := cfg.CheckpointInterval.String()
	if cfg.CheckpointInterval == 0 {
		checkpoint = "disabled"
	}

	lines := []string{
		"",
		row("Window Name", cfg.Window.Name),
		row("Title", displayOrDefault(cfg.Window.Title, cfg.Window.Name)),
		row("Size", fmt.Sprintf("%dx%d", cfg.Window.Width, cfg.Window.Height)),
		row("Minimum Size", fmt.Sprintf("%dx%d", cfg.Window.MinWidth, cfg.Window.MinHeight)),
		row("Background", cfg.Window.Background),
		"",
		row("Maximize", hotkey(cfg.Hotkeys.Maximize)),
		row("Minimize", hotkey(cfg.Hotkeys.Minimize)),
		row("Quit", hotkey(cfg.Hotkeys.Quit)),
		row("Snap Left", hotkey(cfg.Hotkeys.SnapLeft)),
		row("Snap Right", hotkey(cfg.Hotkeys.SnapRight)),
		"",
		row("Checkpoint Interval", checkpoint),
		row("Log Level", cfg.LogLevel),
		"",
		dimStyle.Render("  Press 'e' to edit settings"),
	}

	return lipgloss.NewStyle().
		Width(w.width).
		Height(w.height).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))
}
