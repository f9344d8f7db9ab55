package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/framewm/internal/config"
	"github.com/1broseidon/framewm/internal/frame"
	"github.com/1broseidon/framewm/internal/geometry"
)

// FrameTab is the sub-model for the frame behavior settings tab.
type FrameTab struct {
	cfg *config.Config

	// Display dimensions
	width  int
	height int

	// Edit mode
	editing bool
	form    *huh.Form
	// Form-bound values live on the heap so copies of the tab share them.
	vals *frameForm
}

// frameForm holds the form-bound values (strings for huh, converted on
// submit).
type frameForm struct {
	fBorderWidth      string
	fMovingArea       string
	fMoveCursor       string
	fSnapSides        []string
	fMaximizeSides    []string
	fResizePreview    bool
	fSaveGeometry     bool
	fHalfSnap         bool
	fMaximizeProperty string
	fResizeFrameColor string
	fResizeColor      string
	fResizeStroke     string
	fSnapColor        string
}

// NewFrameTab creates a FrameTab from the loaded config.
func NewFrameTab(cfg *config.Config) FrameTab {
	return FrameTab{cfg: cfg}
}

// SetConfig updates the config reference.
func (f *FrameTab) SetConfig(cfg *config.Config) {
	f.cfg = cfg
}

// Update implements tea.Model.
func (f FrameTab) Update(msg tea.Msg) (FrameTab, tea.Cmd) {
	if f.editing {
		return f.updateEditing(msg)
	}
	return f.updateDisplay(msg)
}

func (f FrameTab) updateDisplay(msg tea.Msg) (FrameTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "e" && f.cfg != nil {
			f.startEditing()
			return f, f.form.Init()
		}
	case tea.WindowSizeMsg:
		f.width = msg.Width
		f.height = msg.Height
	}
	return f, nil
}

func (f FrameTab) updateEditing(msg tea.Msg) (FrameTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "esc" {
			f.editing = false
			f.form = nil
			return f, nil
		}
	case tea.WindowSizeMsg:
		f.width = msg.Width
		f.height = msg.Height
	}

	form, cmd := f.form.Update(msg)
	if hf, ok := form.(*huh.Form); ok {
		f.form = hf
	}

	if f.form.State == huh.StateCompleted {
		f.applyForm()
		f.editing = false
		f.form = nil
		return f, nil
	}

	return f, cmd
}

// loadForm copies the config into the form-bound fields.
func (f *FrameTab) loadForm() {
	cfg := f.cfg
	f.vals = &frameForm{}
	v := f.vals
	v.fBorderWidth = strconv.Itoa(cfg.BorderWidth)
	v.fMovingArea = strconv.Itoa(cfg.MovingArea)
	v.fMoveCursor = cfg.MoveCursor
	v.fSnapSides = normalizeSides(cfg.SnapSides)
	v.fMaximizeSides = normalizeSides(cfg.MaximizeSides)
	v.fResizePreview = cfg.Flags.DrawResizePreview
	v.fSaveGeometry = cfg.Flags.SaveGeometry
	v.fHalfSnap = cfg.Flags.HalfSnap
	v.fMaximizeProperty = cfg.MaximizeButtonProperty
	v.fResizeFrameColor = cfg.ResizeFrameColor
	v.fResizeColor = cfg.Preview.ResizeColor
	v.fResizeStroke = strconv.Itoa(cfg.Preview.ResizeStroke)
	v.fSnapColor = cfg.Preview.SnapColor
}

func (f *FrameTab) startEditing() {
	f.loadForm()

	sideOpts := make([]huh.Option[string], 0, 8)
	for _, name := range geometry.AllSides.Names() {
		sideOpts = append(sideOpts, huh.NewOption(name, name))
	}
	cursorOpts := make([]huh.Option[string], 0, 6)
	for _, c := range []frame.CursorShape{
		frame.CursorArrow, frame.CursorMove, frame.CursorSizeHor,
		frame.CursorSizeVer, frame.CursorSizeFDiag, frame.CursorSizeBDiag,
	} {
		cursorOpts = append(cursorOpts, huh.NewOption(c.String(), c.String()))
	}

	w := f.width - 4
	if w < 40 {
		w = 40
	}

	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("border_width").
				Title("Border Width").
				Description("Thickness in pixels of the resize band").
				Validate(validateInt(0)).
				Value(&f.vals.fBorderWidth),

			huh.NewInput().
				Key("moving_area").
				Title("Moving Area").
				Description("Height of the drag strip at the top; 0 makes the whole window draggable").
				Validate(validateInt(0)).
				Value(&f.vals.fMovingArea),

			huh.NewSelect[string]().
				Key("move_cursor").
				Title("Move Cursor").
				Options(cursorOpts...).
				Value(&f.vals.fMoveCursor),

			huh.NewInput().
				Key("maximize_button_property").
				Title("Maximize Button Property").
				Description("Boolean property set on the maximize button while maximized").
				Value(&f.vals.fMaximizeProperty),
		),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Key("snap_sides").
				Title("Snap Sides").
				Description("Desktop sides that snap the window when dragged onto").
				Options(sideOpts...).
				Value(&f.vals.fSnapSides),

			huh.NewMultiSelect[string]().
				Key("maximize_sides").
				Title("Maximize Sides").
				Description("Desktop sides that maximize instead of snapping").
				Options(sideOpts...).
				Value(&f.vals.fMaximizeSides),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Key("draw_resize_preview").
				Title("Draw Resize Preview").
				Value(&f.vals.fResizePreview),
			huh.NewConfirm().
				Key("save_geometry").
				Title("Save Geometry").
				Value(&f.vals.fSaveGeometry),
			huh.NewConfirm().
				Key("half_snap").
				Title("Half Snap").
				Description("Snap the whole side of a corner instead of a quarter").
				Value(&f.vals.fHalfSnap),
		),
		huh.NewGroup(
			huh.NewInput().
				Key("resize_frame_color").
				Title("Resize Frame Color").
				Description("#rrggbb or #rrggbbaa; empty keeps the edge invisible").
				Validate(validateColor(true)).
				Value(&f.vals.fResizeFrameColor),
			huh.NewInput().
				Key("resize_color").
				Title("Resize Preview Color").
				Validate(validateColor(false)).
				Value(&f.vals.fResizeColor),
			huh.NewInput().
				Key("resize_stroke").
				Title("Resize Preview Stroke").
				Validate(validateInt(1)).
				Value(&f.vals.fResizeStroke),
			huh.NewInput().
				Key("snap_color").
				Title("Snap Preview Color").
				Validate(validateColor(false)).
				Value(&f.vals.fSnapColor),
		),
	).WithWidth(w).WithShowHelp(true).WithShowErrors(true)

	f.editing = true
}

func (f *FrameTab) applyForm() {
	if f.cfg == nil || f.vals == nil {
		return
	}
	vals := f.vals
	if v, err := strconv.Atoi(vals.fBorderWidth); err == nil && v >= 0 {
		f.cfg.BorderWidth = v
	}
	if v, err := strconv.Atoi(vals.fMovingArea); err == nil && v >= 0 {
		f.cfg.MovingArea = v
	}
	if vals.fMoveCursor != "" {
		f.cfg.MoveCursor = vals.fMoveCursor
	}
	f.cfg.SnapSides = append([]string(nil), vals.fSnapSides...)
	f.cfg.MaximizeSides = append([]string(nil), vals.fMaximizeSides...)
	f.cfg.Flags.DrawResizePreview = vals.fResizePreview
	f.cfg.Flags.SaveGeometry = vals.fSaveGeometry
	f.cfg.Flags.HalfSnap = vals.fHalfSnap
	if vals.fMaximizeProperty != "" {
		f.cfg.MaximizeButtonProperty = vals.fMaximizeProperty
	}
	f.cfg.ResizeFrameColor = strings.TrimSpace(vals.fResizeFrameColor)
	if vals.fResizeColor != "" {
		f.cfg.Preview.ResizeColor = strings.TrimSpace(vals.fResizeColor)
	}
	if v, err := strconv.Atoi(vals.fResizeStroke); err == nil && v >= 1 {
		f.cfg.Preview.ResizeStroke = v
	}
	if vals.fSnapColor != "" {
		f.cfg.Preview.SnapColor = strings.TrimSpace(vals.fSnapColor)
	}
}

// View implements tea.Model.
func (f FrameTab) View() string {
	if f.editing && f.form != nil {
		return viewForm("Editing Frame Settings", f.form, f.width, f.height)
	}
	return f.viewDisplay()
}

func (f FrameTab) viewDisplay() string {
	cfg := f.cfg
	if cfg == nil {
		return centered("No config loaded", f.width, f.height)
	}

	lines := []string{
		"",
		row("Border Width", strconv.Itoa(cfg.BorderWidth)),
		row("Moving Area", displayOrDefault(zeroAs(cfg.MovingArea, ""), "whole window")),
		row("Move Cursor", cfg.MoveCursor),
		"",
		row("Snap Sides", sideList(cfg.SnapSides)),
		row("Maximize Sides", sideList(cfg.MaximizeSides)),
		"",
		row("Draw Resize Preview", strconv.FormatBool(cfg.Flags.DrawResizePreview)),
		row("Save Geometry", strconv.FormatBool(cfg.Flags.SaveGeometry)),
		row("Half Snap", strconv.FormatBool(cfg.Flags.HalfSnap)),
		"",
		row("Maximize Property", cfg.MaximizeButtonProperty),
		row("Resize Frame Color", displayOrDefault(cfg.ResizeFrameColor, "(invisible)")),
		row("Resize Preview", fmt.Sprintf("%s, %dpx", cfg.Preview.ResizeColor, cfg.Preview.ResizeStroke)),
		row("Snap Preview", cfg.Preview.SnapColor),
		"",
		dimStyle.Render("  Press 'e' to edit settings"),
	}

	return lipgloss.NewStyle().
		Width(f.width).
		Height(f.height).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))
}

func viewForm(title string, form *huh.Form, width, height int) string {
	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color("62")).
		Bold(true).
		Render(title) +
		dimStyle.Render("  (esc to cancel)")

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(1, 2).
		Render(header + "\n\n" + form.View())
}

// normalizeSides expands "all" and drops unknown names.
func normalizeSides(names []string) []string {
	var set geometry.Sides
	for _, n := range names {
		s, err := geometry.ParseSides([]string{n})
		if err != nil {
			continue
		}
		set |= s
	}
	return set.Names()
}

func sideList(names []string) string {
	norm := normalizeSides(names)
	if len(norm) == 0 {
		return "(none)"
	}
	if len(norm) == len(geometry.AllSides.Names()) {
		return "all"
	}
	return strings.Join(norm, ", ")
}

func zeroAs(v int, s string) string {
	if v == 0 {
		return s
	}
	return strconv.Itoa(v)
}

func validateInt(lo int) func(string) error {
	return func(s string) error {
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("must be a whole number")
		}
		if v < lo {
			return fmt.Errorf("must be at least %d", lo)
		}
		return nil
	}
}

func validateColor(allowEmpty bool) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" && allowEmpty {
			return nil
		}
		_, err := config.ParseHexColor(s)
		return err
	}
}
