//go:build linux

package platform

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"log/slog"
	"time"

	"github.com/1broseidon/framewm/internal/frame"
	"github.com/1broseidon/framewm/internal/geometry"
	"github.com/1broseidon/framewm/internal/x11"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xgraphics"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// Root window properties whose changes can move the available area.
var availabilityAtoms = map[string]bool{
	"_NET_WORKAREA":    true,
	"_NET_CLIENT_LIST": true,
}

// A requested state change is trusted over _NET_WM_STATE for this long,
// so partial updates from the window manager do not bounce the state.
const stateSettleTimeout = time.Second

// LinuxBackend implements frame.Host on top of an X11 connection.
type LinuxBackend struct {
	conn   *x11.Connection
	logger *slog.Logger

	avail             geometry.Rect
	edgeGlyph         uint16
	onQuit            func()
	onAvailableChange func()
}

var _ frame.Host = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection, logger *slog.Logger) *LinuxBackend {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &LinuxBackend{conn: conn, logger: logger, edgeGlyph: x11.CursorLeftPtr}
}

// NewLinuxBackendFromDisplay creates a new Linux backend by opening a fresh X11 connection.
func NewLinuxBackendFromDisplay(logger *slog.Logger) (*LinuxBackend, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return NewLinuxBackend(conn, logger), nil
}

// Connection returns the underlying X11 connection.
func (b *LinuxBackend) Connection() *x11.Connection { return b.conn }

// XUtil returns the underlying xgbutil connection for X11-specific operations.
func (b *LinuxBackend) XUtil() *xgbutil.XUtil { return b.conn.XUtil }

// Disconnect closes the underlying X11 connection.
func (b *LinuxBackend) Disconnect() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

// OnQuit sets the function run when a managed window asks to quit.
func (b *LinuxBackend) OnQuit(fn func()) { b.onQuit = fn }

// OnAvailableGeometryChanged sets the function run after the available area
// changes.
func (b *LinuxBackend) OnAvailableGeometryChanged(fn func()) { b.onAvailableChange = fn }

// WatchScreen subscribes to RandR screen changes and work area updates.
func (b *LinuxBackend) WatchScreen() error {
	if err := b.conn.WatchScreenChanges(); err != nil {
		return err
	}
	xu := b.conn.XUtil

	xevent.PropertyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.PropertyNotifyEvent) {
		name, err := xprop.AtomName(xu, ev.Atom)
		if err != nil || !availabilityAtoms[name] {
			return
		}
		b.refreshAvailable()
	}).Connect(xu, b.conn.Root)

	xevent.HookFun(func(xu *xgbutil.XUtil, ev interface{}) bool {
		if _, ok := ev.(randr.ScreenChangeNotifyEvent); ok {
			b.refreshAvailable()
		}
		return true
	}).Connect(xu)

	return nil
}

// refreshAvailable re-reads the available area and notifies on change.
func (b *LinuxBackend) refreshAvailable() {
	mon, err := b.conn.AvailableArea()
	if err != nil {
		b.logger.Warn("failed to read available area", "error", err)
		return
	}
	next := geometry.Rect{X: mon.X, Y: mon.Y, Width: mon.Width, Height: mon.Height}
	if next == b.avail {
		return
	}
	b.logger.Debug("available area changed", "from", b.avail, "to", next, "monitor", mon.Name)
	b.avail = next
	if b.onAvailableChange != nil {
		b.onAvailableChange()
	}
}

// AvailableGeometry returns the primary monitor's usable area.
func (b *LinuxBackend) AvailableGeometry() geometry.Rect {
	if b.avail.Empty() {
		if mon, err := b.conn.AvailableArea(); err == nil {
			b.avail = geometry.Rect{X: mon.X, Y: mon.Y, Width: mon.Width, Height: mon.Height}
		} else {
			b.logger.Warn("failed to read available area", "error", err)
		}
	}
	return b.avail
}

// Quit runs the quit callback.
func (b *LinuxBackend) Quit() {
	if b.onQuit != nil {
		b.onQuit()
	}
}

// Window is a frameless X11 top-level window. It implements frame.Window.
type Window struct {
	b       *LinuxBackend
	xwin    *xwindow.Window
	name    string
	geom    geometry.Rect
	min     geometry.Size
	state   frame.WindowState
	cursor  frame.CursorShape
	visible bool

	pending   frame.WindowState
	pendingAt time.Time

	handler frame.EventHandler
	clicks  clickTracker
}

var _ frame.Window = (*Window)(nil)

// CreateWindow creates an unmapped frameless window and starts listening to
// its events. Events are dropped until Attach is called.
func (b *LinuxBackend) CreateWindow(spec x11.WindowSpec) (*Window, error) {
	xwin, err := b.conn.CreateFramelessWindow(spec)
	if err != nil {
		return nil, err
	}
	w := &Window{
		b:    b,
		xwin: xwin,
		name: spec.Name,
		geom: geometry.Rect{X: spec.X, Y: spec.Y, Width: spec.Width, Height: spec.Height},
		min:  geometry.Size{Width: max(spec.MinWidth, 1), Height: max(spec.MinHeight, 1)},
	}
	w.connect()
	return w, nil
}

// ID returns the X window id.
func (w *Window) ID() xproto.Window { return w.xwin.Id }

// Attach routes the window's events to h.
func (w *Window) Attach(h frame.EventHandler) { w.handler = h }

// Map asks the window manager to show the window.
func (w *Window) Map() { w.xwin.Map() }

// Destroy destroys the window and detaches its handlers.
func (w *Window) Destroy() { w.xwin.Destroy() }

func (w *Window) dispatch(ev frame.Event) {
	if w.handler != nil {
		w.handler.HandleEvent(ev)
	}
}

func (w *Window) connect() {
	xu := w.b.conn.XUtil
	id := w.xwin.Id

	xevent.ButtonPressFun(func(xu *xgbutil.XUtil, ev xevent.ButtonPressEvent) {
		w.dispatch(pressEvent(&w.clicks, ev))
	}).Connect(xu, id)

	xevent.ButtonReleaseFun(func(xu *xgbutil.XUtil, ev xevent.ButtonReleaseEvent) {
		w.dispatch(releaseEvent(ev))
	}).Connect(xu, id)

	xevent.MotionNotifyFun(func(xu *xgbutil.XUtil, ev xevent.MotionNotifyEvent) {
		w.dispatch(motionEvent(ev))
	}).Connect(xu, id)

	xevent.ConfigureNotifyFun(func(xu *xgbutil.XUtil, ev xevent.ConfigureNotifyEvent) {
		if ev.Window != id {
			return
		}
		w.refreshGeometry()
	}).Connect(xu, id)

	xevent.MapNotifyFun(func(xu *xgbutil.XUtil, ev xevent.MapNotifyEvent) {
		if ev.Window != id {
			return
		}
		w.visible = true
		w.refreshGeometry()
		w.dispatch(frame.Event{Type: frame.EventShow})
	}).Connect(xu, id)

	xevent.UnmapNotifyFun(func(xu *xgbutil.XUtil, ev xevent.UnmapNotifyEvent) {
		if ev.Window == id {
			w.visible = false
		}
	}).Connect(xu, id)

	xevent.CreateNotifyFun(func(xu *xgbutil.XUtil, ev xevent.CreateNotifyEvent) {
		if ev.Parent == id {
			w.dispatch(frame.Event{Type: frame.EventChildAdded})
		}
	}).Connect(xu, id)

	xevent.PropertyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.PropertyNotifyEvent) {
		if name, err := xprop.AtomName(xu, ev.Atom); err == nil && name == "_NET_WM_STATE" {
			w.refreshState()
		}
	}).Connect(xu, id)

	w.xwin.WMGracefulClose(func(*xwindow.Window) {
		w.b.logger.Debug("close requested by window manager", "window", w.name)
		w.b.Quit()
	})
}

func (w *Window) refreshGeometry() {
	x, y, width, height, err := w.b.conn.Geometry(w.xwin.Id)
	if err != nil {
		w.b.logger.Debug("failed to refresh geometry", "window", w.name, "error", err)
		return
	}
	next := geometry.Rect{X: x, Y: y, Width: width, Height: height}
	resized := next.Size() != w.geom.Size()
	w.geom = next
	if resized {
		w.dispatch(frame.Event{Type: frame.EventResize})
	}
}

func (w *Window) refreshState() {
	s := windowState(w.b.conn.WindowStates(w.xwin.Id))
	if !w.pendingAt.IsZero() {
		if s != w.pending && time.Since(w.pendingAt) < stateSettleTimeout {
			return
		}
		w.pendingAt = time.Time{}
	}
	if s == w.state {
		return
	}
	old := w.state
	w.state = s
	w.dispatch(frame.Event{Type: frame.EventStateChange, OldState: old})
}

func (w *Window) Name() string               { return w.name }
func (w *Window) Geometry() geometry.Rect    { return w.geom }
func (w *Window) MinimumSize() geometry.Size { return w.min }
func (w *Window) State() frame.WindowState   { return w.state }
func (w *Window) Cursor() frame.CursorShape  { return w.cursor }
func (w *Window) Visible() bool              { return w.visible }

// SetGeometry moves and resizes the window. The new geometry is visible
// through Geometry immediately; the server's answer arrives later.
func (w *Window) SetGeometry(r geometry.Rect) {
	if r.Empty() {
		return
	}
	w.geom = r
	if err := w.xwin.WMMoveResize(r.X, r.Y, r.Width, r.Height); err != nil {
		// Fallback to direct window manipulation
		w.xwin.MoveResize(r.X, r.Y, r.Width, r.Height)
	}
}

func (w *Window) Move(p geometry.Point) { w.SetGeometry(w.geom.MoveTo(p)) }

// SetMinimumSize updates the size hints the window manager enforces.
func (w *Window) SetMinimumSize(s geometry.Size) error {
	s.Width, s.Height = max(s.Width, 1), max(s.Height, 1)
	if err := w.b.conn.SetMinimumSize(w.xwin.Id, s.Width, s.Height); err != nil {
		return err
	}
	w.min = s
	return nil
}

// SetBackground repaints the window background. Nil or transparent colors
// are ignored.
func (w *Window) SetBackground(c color.Color) {
	if px, ok := pixel(c); ok {
		w.b.conn.SetBackground(w.xwin, px, true)
	}
}

// SetState requests s from the window manager and reports the change right
// away.
func (w *Window) SetState(s frame.WindowState) {
	old := w.state
	if s == old {
		return
	}
	conn := w.b.conn
	id := w.xwin.Id
	var err error

	switch {
	case s&frame.StateMinimized != 0 && old&frame.StateMinimized == 0:
		err = conn.Iconify(id)
	case s&frame.StateMinimized == 0 && old&frame.StateMinimized != 0:
		err = conn.ActivateWindow(id)
	}
	if err != nil {
		w.b.logger.Warn("failed to change window state", "window", w.name, "state", s, "error", err)
	}
	if (s^old)&frame.StateMaximized != 0 {
		if err := conn.SetMaximized(id, s&frame.StateMaximized != 0); err != nil {
			w.b.logger.Warn("failed to change window state", "window", w.name, "state", s, "error", err)
		}
	}
	if (s^old)&frame.StateFullScreen != 0 {
		if err := conn.SetFullscreen(id, s&frame.StateFullScreen != 0); err != nil {
			w.b.logger.Warn("failed to change window state", "window", w.name, "state", s, "error", err)
		}
	}

	w.state = s
	w.pending = s
	w.pendingAt = time.Now()
	w.dispatch(frame.Event{Type: frame.EventStateChange, OldState: old})
}

func (w *Window) SetCursor(c frame.CursorShape) {
	w.cursor = c
	if err := w.b.conn.SetWindowCursor(w.xwin.Id, cursorGlyph(c)); err != nil {
		w.b.logger.Debug("failed to set cursor", "window", w.name, "error", err)
	}
}

func pressEvent(clicks *clickTracker, ev xevent.ButtonPressEvent) frame.Event {
	pos := geometry.Point{X: int(ev.RootX), Y: int(ev.RootY)}
	button := buttonOf(ev.Detail)
	typ := frame.EventMousePress
	if clicks.press(button, ev.Time, pos) {
		typ = frame.EventMouseDoubleClick
	}
	// State is the mask from before the press.
	return frame.Event{Type: typ, Button: button, Buttons: buttonsHeld(ev.State) | button, Pos: pos}
}

func releaseEvent(ev xevent.ButtonReleaseEvent) frame.Event {
	button := buttonOf(ev.Detail)
	return frame.Event{
		Type:    frame.EventMouseRelease,
		Button:  button,
		Buttons: buttonsHeld(ev.State) &^ button,
		Pos:     geometry.Point{X: int(ev.RootX), Y: int(ev.RootY)},
	}
}

func motionEvent(ev xevent.MotionNotifyEvent) frame.Event {
	return frame.Event{
		Type:    frame.EventMouseMove,
		Buttons: buttonsHeld(ev.State),
		Pos:     geometry.Point{X: int(ev.RootX), Y: int(ev.RootY)},
	}
}

// edgeSurface is the border-band child window. Without the SHAPE extension
// it covers the whole window and hands events outside the mask back to the
// window's handler.
type edgeSurface struct {
	b      *LinuxBackend
	win    *Window
	xwin   *xwindow.Window
	h      frame.EventHandler
	mask   geometry.Region
	glyph  uint16
	clicks clickTracker

	// forwarding is set while a drag that started outside the mask is
	// delivered to the window.
	forwarding bool
	dragging   bool
}

// NewEdgeSurface creates the border-band child of win.
func (b *LinuxBackend) NewEdgeSurface(win frame.Window, h frame.EventHandler) (frame.EdgeSurface, error) {
	w, ok := win.(*Window)
	if !ok {
		return nil, fmt.Errorf("edge surface needs an X11 window, got %T", win)
	}
	xwin, err := b.conn.CreateChildWindow(w.xwin.Id)
	if err != nil {
		return nil, err
	}
	e := &edgeSurface{b: b, win: w, xwin: xwin, h: h}
	e.connect()
	if !b.conn.HasShape() {
		b.logger.Warn("SHAPE extension missing, edge frame covers the window")
	}
	return e, nil
}

func (e *edgeSurface) connect() {
	xu := e.b.conn.XUtil
	id := e.xwin.Id

	xevent.ButtonPressFun(func(xu *xgbutil.XUtil, ev xevent.ButtonPressEvent) {
		fev := pressEvent(&e.clicks, ev)
		if e.dragging || e.forwarding {
			e.route(fev)
			return
		}
		if e.mask.Contains(geometry.Point{X: int(ev.EventX), Y: int(ev.EventY)}) {
			e.dragging = true
		} else {
			e.forwarding = true
		}
		e.route(fev)
	}).Connect(xu, id)

	xevent.ButtonReleaseFun(func(xu *xgbutil.XUtil, ev xevent.ButtonReleaseEvent) {
		fev := releaseEvent(ev)
		e.route(fev)
		if fev.Buttons == frame.ButtonNone {
			e.dragging, e.forwarding = false, false
		}
	}).Connect(xu, id)

	xevent.MotionNotifyFun(func(xu *xgbutil.XUtil, ev xevent.MotionNotifyEvent) {
		fev := motionEvent(ev)
		if e.dragging || e.forwarding {
			e.route(fev)
			return
		}
		if e.mask.Contains(geometry.Point{X: int(ev.EventX), Y: int(ev.EventY)}) {
			e.h.HandleEvent(fev)
			return
		}
		e.applyCursor(cursorGlyph(e.win.cursor))
		e.win.dispatch(fev)
	}).Connect(xu, id)
}

func (e *edgeSurface) route(ev frame.Event) {
	if e.forwarding {
		e.win.dispatch(ev)
		return
	}
	e.h.HandleEvent(ev)
}

func (e *edgeSurface) applyCursor(glyph uint16) {
	if glyph == e.glyph {
		return
	}
	if err := e.b.conn.SetWindowCursor(e.xwin.Id, glyph); err != nil {
		e.b.logger.Debug("failed to set edge cursor", "error", err)
		return
	}
	e.glyph = glyph
}

func (e *edgeSurface) SetGeometry(r geometry.Rect) {
	e.xwin.MoveResize(r.X, r.Y, max(r.Width, 1), max(r.Height, 1))
}

func (e *edgeSurface) SetMask(mask geometry.Region) {
	e.mask = mask
	if !e.b.conn.HasShape() {
		return
	}
	if err := e.b.conn.SetShape(e.xwin.Id, shapeRects(mask)); err != nil {
		e.b.logger.Warn("failed to shape edge frame", "error", err)
	}
}

func (e *edgeSurface) SetCursor(c frame.CursorShape) {
	glyph := cursorGlyph(c)
	e.b.edgeGlyph = glyph
	e.applyCursor(glyph)
}

func (e *edgeSurface) SetFill(c color.Color) {
	px, visible := pixel(c)
	e.b.conn.SetBackground(e.xwin, px, visible)
}

func (e *edgeSurface) Raise() { e.b.conn.Raise(e.xwin) }

func (e *edgeSurface) Close() { e.xwin.Destroy() }

// overlaySurface is an override-redirect helper window painted through a
// Canvas.
type overlaySurface struct {
	b    *LinuxBackend
	xwin *xwindow.Window
	h    frame.OverlayHandler
	geom geometry.Rect
	min  geometry.Size
	img  *xgraphics.Image

	shown   bool
	grabbed bool
	closed  bool
}

// NewOverlay creates an unmapped overlay window.
func (b *LinuxBackend) NewOverlay(h frame.OverlayHandler) (frame.OverlaySurface, error) {
	xwin, err := b.conn.CreateOverlayWindow()
	if err != nil {
		return nil, err
	}
	o := &overlaySurface{b: b, xwin: xwin, h: h}
	o.connect()
	return o, nil
}

func (o *overlaySurface) connect() {
	xu := o.b.conn.XUtil
	id := o.xwin.Id
	var clicks clickTracker

	xevent.ButtonPressFun(func(xu *xgbutil.XUtil, ev xevent.ButtonPressEvent) {
		o.h.HandleEvent(pressEvent(&clicks, ev))
	}).Connect(xu, id)

	xevent.ButtonReleaseFun(func(xu *xgbutil.XUtil, ev xevent.ButtonReleaseEvent) {
		o.h.HandleEvent(releaseEvent(ev))
	}).Connect(xu, id)

	xevent.MotionNotifyFun(func(xu *xgbutil.XUtil, ev xevent.MotionNotifyEvent) {
		o.h.HandleEvent(motionEvent(ev))
	}).Connect(xu, id)

	xevent.ExposeFun(func(xu *xgbutil.XUtil, ev xevent.ExposeEvent) {
		if o.img != nil && ev.Count == 0 {
			o.img.XPaint(id)
		}
	}).Connect(xu, id)
}

func (o *overlaySurface) SetGeometry(r geometry.Rect) {
	r.Width = max(r.Width, o.min.Width, 1)
	r.Height = max(r.Height, o.min.Height, 1)
	o.geom = r
	o.xwin.MoveResize(r.X, r.Y, r.Width, r.Height)
}

func (o *overlaySurface) Geometry() geometry.Rect { return o.geom }

func (o *overlaySurface) SetMinimumSize(s geometry.Size) { o.min = s }

func (o *overlaySurface) GrabPointer() error {
	if err := o.b.conn.GrabPointer(o.xwin.Id, o.b.edgeGlyph); err != nil {
		return err
	}
	o.grabbed = true
	return nil
}

func (o *overlaySurface) Show() {
	o.shown = true
	o.xwin.Map()
	o.b.conn.Raise(o.xwin)
	o.paint()
}

func (o *overlaySurface) Update() {
	if o.shown && !o.closed {
		o.paint()
	}
}

func (o *overlaySurface) paint() {
	size := o.geom.Size()
	canvas := NewCanvas(size)
	o.h.Paint(canvas)

	bounds := image.Rect(0, 0, size.Width, size.Height)
	if o.img == nil || o.img.Bounds() != bounds {
		if o.img != nil {
			o.img.Destroy()
		}
		o.img = xgraphics.New(o.b.conn.XUtil, bounds)
		if err := o.img.XSurfaceSet(o.xwin.Id); err != nil {
			o.b.logger.Warn("failed to attach overlay surface", "error", err)
			o.img.Destroy()
			o.img = nil
			return
		}
	} else {
		draw.Draw(o.img, bounds, image.Transparent, image.Point{}, draw.Src)
	}

	canvas.Draw(o.img)
	o.img.XDraw()
	o.img.XPaint(o.xwin.Id)

	if o.b.conn.HasShape() {
		if err := o.b.conn.SetShape(o.xwin.Id, shapeRects(canvas.Region())); err != nil {
			o.b.logger.Debug("failed to shape overlay", "error", err)
		}
	}
	if err := o.b.conn.SetOpacity(o.xwin.Id, canvas.Opacity()); err != nil {
		o.b.logger.Debug("failed to set overlay opacity", "error", err)
	}
}

func (o *overlaySurface) Close() {
	if o.closed {
		return
	}
	o.closed = true
	if o.grabbed {
		o.b.conn.UngrabPointer()
	}
	if o.img != nil {
		o.img.Destroy()
		o.img = nil
	}
	o.xwin.Destroy()
}
