package frame

import (
	"fmt"
	"image/color"
	"io"
	"log/slog"

	"github.com/1broseidon/framewm/internal/geometry"
)

// Options configures a new Manager.
type Options struct {
	// Settings persists geometry. Nil disables persistence.
	Settings Settings
	// Logger receives debug traces and host warnings. Nil discards.
	Logger *slog.Logger
	// Config overrides DefaultConfig when set.
	Config *Config
}

// Manager restores title-bar behavior on a frameless window: move, resize
// through an invisible edge frame, edge snapping, maximize and geometry
// persistence.
//
// A Manager is not safe for concurrent use. All calls, including
// HandleEvent, must come from the toolkit's event loop.
type Manager struct {
	win      Window
	host     Host
	settings Settings
	logger   *slog.Logger

	cfg             Config
	defaultGeometry geometry.Rect
	resizePaint     PaintFunc
	snapPaint       PaintFunc
	customResize    bool
	customSnap      bool

	edge    *edgeFrame
	preview *Preview
	buttons [actionCount]binding
	st      state
	closed  bool

	// OnResizeFrameClicked is called whenever an edge drag begins.
	OnResizeFrameClicked func()
	// OnSnapPreviewCreated is called whenever a preview overlay is created.
	OnSnapPreviewCreated func()
}

// New attaches a manager to win. The edge frame is created immediately.
func New(win Window, host Host, opts Options) (*Manager, error) {
	if win == nil || host == nil {
		return nil, fmt.Errorf("window and host are required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	cfg := DefaultConfig()
	if opts.Config != nil {
		cfg = *opts.Config
	}

	m := &Manager{
		win:      win,
		host:     host,
		settings: opts.Settings,
		logger:   logger.With("window", win.Name()),
	}
	m.st.firstShowPending = true
	m.st.preModify = win.Geometry()
	m.defaultGeometry = geometry.CenteredIn(host.AvailableGeometry(), win.Geometry().Size())

	edge := &edgeFrame{m: m}
	surface, err := host.NewEdgeSurface(win, edge)
	if err != nil {
		return nil, fmt.Errorf("failed to create edge frame: %w", err)
	}
	edge.surface = surface
	m.edge = edge

	m.applyConfig(cfg)
	return m, nil
}

// ApplyConfig replaces every tunable at once. Paint functions installed
// with SetResizePaintFunc or SetSnapPaintFunc are kept.
func (m *Manager) ApplyConfig(cfg Config) {
	if m.closed {
		return
	}
	m.applyConfig(cfg)
}

func (m *Manager) applyConfig(cfg Config) {
	if cfg.BorderWidth < 0 {
		cfg.BorderWidth = 0
	}
	if cfg.MovingArea < 0 {
		cfg.MovingArea = 0
	}
	if cfg.ResizeStroke <= 0 {
		cfg.ResizeStroke = DefaultResizeStroke
	}
	if cfg.ResizeColor == nil {
		cfg.ResizeColor = DefaultResizeColor
	}
	if cfg.SnapColor == nil {
		cfg.SnapColor = DefaultSnapColor
	}
	maximizeSides := cfg.MaximizeSides
	m.cfg = cfg
	m.OverrideSnapSides(cfg.SnapSides)
	m.OverrideMaximizeSides(maximizeSides)

	if !m.customResize {
		m.resizePaint = ResizeOutline(cfg.ResizeColor, cfg.ResizeStroke)
	}
	if !m.customSnap {
		m.snapPaint = SnapFill(cfg.SnapColor)
	}
	m.edge.surface.SetFill(cfg.ResizeFrameColor)
	m.refreshMaximizeButton()
	m.updateMask()
}

// Config returns the current tunables.
func (m *Manager) Config() Config { return m.cfg }

// Window returns the managed window.
func (m *Manager) Window() Window { return m.win }

// SetResizeFrameVisible fills the edge frame with c so the resize band can
// be seen. Nil hides it again.
func (m *Manager) SetResizeFrameVisible(c color.Color) {
	m.cfg.ResizeFrameColor = c
	m.edge.surface.SetFill(c)
}

// SetBorderWidth sets the thickness of the resize band.
func (m *Manager) SetBorderWidth(bw int) {
	if bw < 0 {
		bw = 0
	}
	m.cfg.BorderWidth = bw
	m.updateMask()
}

// BorderWidth returns the thickness of the resize band.
func (m *Manager) BorderWidth() int { return m.cfg.BorderWidth }

// SetDefaultGeometry sets the geometry used when nothing is persisted.
func (m *Manager) SetDefaultGeometry(r geometry.Rect) { m.defaultGeometry = r }

// DefaultGeometry returns the geometry used when nothing is persisted.
func (m *Manager) DefaultGeometry() geometry.Rect { return m.defaultGeometry }

// SetMovingAreaHeight limits dragging to the top h pixels of the window.
// Zero makes the whole window draggable.
func (m *Manager) SetMovingAreaHeight(h int) {
	if h < 0 {
		h = 0
	}
	m.cfg.MovingArea = h
}

// MovingAreaHeight returns the drag handle height, 0 for the whole window.
func (m *Manager) MovingAreaHeight() int { return m.cfg.MovingArea }

// SetMaximizeButtonProperty renames the style property toggled on the
// maximize button.
func (m *Manager) SetMaximizeButtonProperty(name string) {
	m.cfg.MaximizeButtonProperty = name
	m.refreshMaximizeButton()
}

// MaximizeButtonProperty returns the style property name.
func (m *Manager) MaximizeButtonProperty() string { return m.cfg.MaximizeButtonProperty }

// SetMoveCursor sets the cursor shown while the window is dragged.
func (m *Manager) SetMoveCursor(c CursorShape) { m.cfg.MoveCursor = c }

// MoveCursor returns the cursor shown while the window is dragged.
func (m *Manager) MoveCursor() CursorShape { return m.cfg.MoveCursor }

// OverrideMaximizeSides makes sides maximize the window on release and
// removes them from the snap sides.
func (m *Manager) OverrideMaximizeSides(sides geometry.Sides) {
	m.cfg.MaximizeSides = sides & geometry.AllSides
	m.cfg.SnapSides = m.cfg.SnapSides.Without(sides)
}

// OverrideSnapSides makes sides snap the window on release and removes
// them from the maximize sides.
func (m *Manager) OverrideSnapSides(sides geometry.Sides) {
	m.cfg.SnapSides = sides & geometry.AllSides
	m.cfg.MaximizeSides = m.cfg.MaximizeSides.Without(sides)
}

// SnapSides returns the snap-eligible desktop sides.
func (m *Manager) SnapSides() geometry.Sides { return m.cfg.SnapSides }

// MaximizeSides returns the maximize-trigger desktop sides.
func (m *Manager) MaximizeSides() geometry.Sides { return m.cfg.MaximizeSides }

// SetFlags turns on f.
func (m *Manager) SetFlags(f Flags) { m.cfg.Flags |= f }

// OverrideFlags replaces the flag set with f.
func (m *Manager) OverrideFlags(f Flags) { m.cfg.Flags = f }

// DisableFlags turns off f.
func (m *Manager) DisableFlags(f Flags) { m.cfg.Flags &^= f }

// TestFlag reports whether every flag in f is on.
func (m *Manager) TestFlag(f Flags) bool { return f != 0 && m.cfg.Flags&f == f }

// Flags returns the flag set.
func (m *Manager) Flags() Flags { return m.cfg.Flags }

// SetResizePaintFunc replaces the resize preview painter. Nil restores the
// default outline.
func (m *Manager) SetResizePaintFunc(fn PaintFunc) {
	m.customResize = fn != nil
	if fn == nil {
		fn = ResizeOutline(m.cfg.ResizeColor, m.cfg.ResizeStroke)
	}
	m.resizePaint = fn
}

// SetSnapPaintFunc replaces the snap preview painter. Nil restores the
// default fill.
func (m *Manager) SetSnapPaintFunc(fn PaintFunc) {
	m.customSnap = fn != nil
	if fn == nil {
		fn = SnapFill(m.cfg.SnapColor)
	}
	m.snapPaint = fn
}

// Preview returns the live preview overlay, or nil.
func (m *Manager) Preview() *Preview { return m.preview }

// Status returns a snapshot of the interaction state.
func (m *Manager) Status() Status {
	return Status{
		Name:              m.win.Name(),
		Mode:              m.st.mode,
		SnapSide:          m.st.snapSide,
		State:             m.win.State(),
		Geometry:          m.win.Geometry(),
		PreModifyGeometry: m.st.preModify,
		Flags:             m.cfg.Flags,
		BorderWidth:       m.cfg.BorderWidth,
		PreviewActive:     m.preview != nil,
	}
}

func (m *Manager) maximized() bool { return m.win.State()&StateMaximized != 0 }

func (m *Manager) free() bool { return !m.maximized() && m.st.snapSide == geometry.SideNone }

func (m *Manager) setMode(mode Mode) {
	if m.st.mode == mode {
		return
	}
	m.logger.Debug("mode changed", "from", m.st.mode, "to", mode)
	m.st.mode = mode
}

func (m *Manager) toIdle() {
	m.setMode(ModeIdle)
	m.st.reset()
}

// HandleEvent processes an event delivered to the managed window.
func (m *Manager) HandleEvent(ev Event) {
	if m.closed {
		return
	}
	switch ev.Type {
	case EventMousePress:
		if ev.Button == ButtonLeft {
			m.beginMove(ev.Pos)
		}
	case EventMouseMove:
		if m.st.mode == ModeMoving && ev.Buttons&ButtonLeft != 0 {
			m.dragMove(ev.Pos)
		}
	case EventMouseRelease:
		if ev.Button != ButtonLeft {
			return
		}
		switch m.st.mode {
		case ModeMoving:
			m.endMove(ev.Pos)
		case ModeResizing:
			m.endResize()
		}
	case EventResize:
		m.updateMask()
	case EventChildAdded:
		m.updateMask()
		m.edge.surface.Raise()
	case EventShow:
		m.shown()
	case EventStateChange:
		m.stateChanged(ev.OldState)
	}
}

func (m *Manager) stateChanged(old WindowState) {
	cur := m.win.State()
	if cur&StateMaximized != 0 {
		m.st.snapSide = geometry.SideNone
	}
	leftMaximized := old&StateMaximized != 0 && cur&StateMaximized == 0
	// A snap issued while maximized owns the geometry already.
	if leftMaximized && cur&StateMinimized == 0 && m.st.mode != ModeMoving && m.st.snapSide == geometry.SideNone {
		m.win.SetGeometry(m.st.preModify)
	}
	m.refreshMaximizeButton()
	m.updateMask()
}

// HandleAvailableGeometryChanged re-fits a maximized or snapped window to
// the new available area.
func (m *Manager) HandleAvailableGeometryChanged() {
	if m.closed {
		return
	}
	m.adjustSnap()
}

// Minimize iconifies the window.
func (m *Manager) Minimize() {
	m.win.SetState(m.win.State() | StateMinimized)
}

// Maximize toggles between maximized and normal. Entering maximized
// records the free geometry and clears any snap.
func (m *Manager) Maximize() {
	if m.maximized() {
		m.logger.Debug("restoring from maximized")
		m.win.SetState(m.win.State() &^ StateMaximized)
		return
	}
	if m.st.snapSide == geometry.SideNone {
		m.st.preModify = m.win.Geometry()
	}
	m.st.snapSide = geometry.SideNone
	m.logger.Debug("maximizing")
	m.win.SetState((m.win.State() &^ StateMinimized) | StateMaximized)
}

// Quit asks the host to terminate the application.
func (m *Manager) Quit() {
	m.host.Quit()
}

// Snap snaps the window to side of the available area. SideNone restores
// the free geometry.
func (m *Manager) Snap(side geometry.Side) {
	if side == geometry.SideNone {
		m.Restore()
		return
	}
	if m.free() {
		m.st.preModify = m.win.Geometry()
	}
	if m.maximized() {
		m.win.SetState(m.win.State() &^ StateMaximized)
	}
	avail := m.host.AvailableGeometry()
	target := geometry.SnapRect(avail, m.st.preModify.Size(), side, m.TestFlag(FlagHalfSnap))
	m.st.snapSide = side
	m.win.SetGeometry(target)
	m.logger.Debug("snapped", "side", side, "geometry", target)
	m.updateMask()
}

// Restore returns a maximized or snapped window to its free geometry.
func (m *Manager) Restore() {
	switch {
	case m.maximized():
		m.win.SetState(m.win.State() &^ StateMaximized)
	case m.st.snapSide != geometry.SideNone:
		m.st.snapSide = geometry.SideNone
		m.win.SetGeometry(m.st.preModify)
		m.updateMask()
	}
}

// Close saves the geometry and releases the edge frame, any preview and
// all button hookups. It is safe to call more than once.
func (m *Manager) Close() {
	if m.closed {
		return
	}
	if err := m.SaveGeometry(); err != nil {
		m.logger.Warn("failed to save geometry", "error", err)
	}
	m.destroyPreview()
	for a := range m.buttons {
		m.disconnectButton(action(a))
	}
	m.edge.surface.Close()
	m.closed = true
}
