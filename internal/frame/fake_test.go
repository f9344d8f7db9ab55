package frame

import (
	"errors"
	"image/color"
	"testing"

	"github.com/1broseidon/framewm/internal/geometry"
)

type fakeWindow struct {
	name    string
	geom    geometry.Rect
	min     geometry.Size
	state   WindowState
	cursor  CursorShape
	visible bool

	// onEvent delivers state changes back to the manager synchronously.
	onEvent func(Event)
}

func (w *fakeWindow) Name() string                { return w.name }
func (w *fakeWindow) Geometry() geometry.Rect     { return w.geom }
func (w *fakeWindow) SetGeometry(r geometry.Rect) { w.geom = r }
func (w *fakeWindow) Move(p geometry.Point)       { w.geom = w.geom.MoveTo(p) }
func (w *fakeWindow) MinimumSize() geometry.Size  { return w.min }
func (w *fakeWindow) State() WindowState          { return w.state }
func (w *fakeWindow) Cursor() CursorShape         { return w.cursor }
func (w *fakeWindow) SetCursor(c CursorShape)     { w.cursor = c }
func (w *fakeWindow) Visible() bool               { return w.visible }

func (w *fakeWindow) SetState(s WindowState) {
	old := w.state
	w.state = s
	if w.onEvent != nil && old != s {
		w.onEvent(Event{Type: EventStateChange, OldState: old})
	}
}

type fakeEdge struct {
	geom   geometry.Rect
	mask   geometry.Region
	cursor CursorShape
	fill   color.Color
	raised int
	closed bool
	h      EventHandler
}

func (e *fakeEdge) SetGeometry(r geometry.Rect)  { e.geom = r }
func (e *fakeEdge) SetMask(mask geometry.Region) { e.mask = mask }
func (e *fakeEdge) SetCursor(c CursorShape)      { e.cursor = c }
func (e *fakeEdge) SetFill(c color.Color)        { e.fill = c }
func (e *fakeEdge) Raise()                       { e.raised++ }
func (e *fakeEdge) Close()                       { e.closed = true }

type fakeOverlay struct {
	geom    geometry.Rect
	min     geometry.Size
	grabbed bool
	shown   bool
	updates int
	closed  bool
	h       OverlayHandler
}

func (o *fakeOverlay) SetGeometry(r geometry.Rect)    { o.geom = r }
func (o *fakeOverlay) Geometry() geometry.Rect        { return o.geom }
func (o *fakeOverlay) SetMinimumSize(s geometry.Size) { o.min = s }
func (o *fakeOverlay) GrabPointer() error             { o.grabbed = true; return nil }
func (o *fakeOverlay) Show()                          { o.shown = true }
func (o *fakeOverlay) Update()                        { o.updates++ }
func (o *fakeOverlay) Close()                         { o.closed = true }

type fakeHost struct {
	avail      geometry.Rect
	edge       *fakeEdge
	overlays   []*fakeOverlay
	overlayErr error
	quit       int
}

func (h *fakeHost) AvailableGeometry() geometry.Rect { return h.avail }

func (h *fakeHost) NewEdgeSurface(win Window, eh EventHandler) (EdgeSurface, error) {
	h.edge = &fakeEdge{h: eh}
	return h.edge, nil
}

func (h *fakeHost) NewOverlay(oh OverlayHandler) (OverlaySurface, error) {
	if h.overlayErr != nil {
		return nil, h.overlayErr
	}
	o := &fakeOverlay{h: oh}
	h.overlays = append(h.overlays, o)
	return o, nil
}

func (h *fakeHost) Quit() { h.quit++ }

// live returns the overlays that have not been closed.
func (h *fakeHost) live() []*fakeOverlay {
	var out []*fakeOverlay
	for _, o := range h.overlays {
		if !o.closed {
			out = append(out, o)
		}
	}
	return out
}

type fakeSettings struct {
	values map[string]geometry.Rect
	err    error
}

func newFakeSettings() *fakeSettings {
	return &fakeSettings{values: map[string]geometry.Rect{}}
}

func (s *fakeSettings) Rect(group, key string) (geometry.Rect, bool, error) {
	if s.err != nil {
		return geometry.Rect{}, false, s.err
	}
	r, ok := s.values[group+"/"+key]
	return r, ok, nil
}

func (s *fakeSettings) SetRect(group, key string, r geometry.Rect) error {
	if s.err != nil {
		return s.err
	}
	s.values[group+"/"+key] = r
	return nil
}

type fakeButton struct {
	onClick   func()
	props     map[string]bool
	refreshed int
}

func (b *fakeButton) OnClick(fn func()) func() {
	b.onClick = fn
	return func() { b.onClick = nil }
}

func (b *fakeButton) SetProperty(name string, v bool) {
	if b.props == nil {
		b.props = map[string]bool{}
	}
	b.props[name] = v
}

func (b *fakeButton) RefreshStyle() { b.refreshed++ }

func (b *fakeButton) click() {
	if b.onClick != nil {
		b.onClick()
	}
}

type paintOp struct {
	fill   bool
	rect   geometry.Rect
	color  color.Color
	stroke int
}

type fakePainter struct {
	size geometry.Size
	ops  []paintOp
}

func (p *fakePainter) Size() geometry.Size { return p.size }

func (p *fakePainter) FillRect(r geometry.Rect, c color.Color) {
	p.ops = append(p.ops, paintOp{fill: true, rect: r, color: c})
}

func (p *fakePainter) StrokeRect(r geometry.Rect, c color.Color, width int) {
	p.ops = append(p.ops, paintOp{rect: r, color: c, stroke: width})
}

var errBroken = errors.New("broken")

var testDesktop = geometry.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}

type harness struct {
	t        *testing.T
	m        *Manager
	win      *fakeWindow
	host     *fakeHost
	settings *fakeSettings
}

// newHarness builds a manager with border width 10, minimum size 200x200
// and the default flags on a visible window.
func newHarness(t *testing.T, geom geometry.Rect) *harness {
	t.Helper()
	return newHarnessWith(t, &fakeWindow{name: "main", geom: geom, visible: true}, &fakeHost{avail: testDesktop}, newFakeSettings())
}

func newHarnessWith(t *testing.T, win *fakeWindow, host *fakeHost, settings *fakeSettings) *harness {
	t.Helper()
	if win.min == (geometry.Size{}) {
		win.min = geometry.Size{Width: 200, Height: 200}
	}
	cfg := DefaultConfig()
	cfg.BorderWidth = 10
	opts := Options{Config: &cfg}
	if settings != nil {
		opts.Settings = settings
	}
	m, err := New(win, host, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	win.onEvent = m.HandleEvent
	return &harness{t: t, m: m, win: win, host: host, settings: settings}
}

func (h *harness) press(x, y int) {
	h.m.HandleEvent(Event{Type: EventMousePress, Button: ButtonLeft, Buttons: ButtonLeft, Pos: geometry.Point{X: x, Y: y}})
}

func (h *harness) drag(x, y int) {
	h.m.HandleEvent(Event{Type: EventMouseMove, Buttons: ButtonLeft, Pos: geometry.Point{X: x, Y: y}})
}

func (h *harness) release(x, y int) {
	h.m.HandleEvent(Event{Type: EventMouseRelease, Button: ButtonLeft, Pos: geometry.Point{X: x, Y: y}})
}

func (h *harness) edgePress(x, y int) {
	h.host.edge.h.HandleEvent(Event{Type: EventMousePress, Button: ButtonLeft, Buttons: ButtonLeft, Pos: geometry.Point{X: x, Y: y}})
}

func (h *harness) edgeDrag(x, y int) {
	h.host.edge.h.HandleEvent(Event{Type: EventMouseMove, Buttons: ButtonLeft, Pos: geometry.Point{X: x, Y: y}})
}

func (h *harness) edgeHover(x, y int) {
	h.host.edge.h.HandleEvent(Event{Type: EventMouseMove, Pos: geometry.Point{X: x, Y: y}})
}

func (h *harness) edgeRelease(x, y int) {
	h.host.edge.h.HandleEvent(Event{Type: EventMouseRelease, Button: ButtonLeft, Pos: geometry.Point{X: x, Y: y}})
}

// checkInvariants asserts the properties that must hold after any event.
func (h *harness) checkInvariants() {
	h.t.Helper()
	if n := len(h.host.live()); n > 1 {
		h.t.Fatalf("%d live overlays, want at most 1", n)
	}
	st := h.m.Status()
	if st.Maximized() && st.SnapSide != geometry.SideNone {
		h.t.Fatalf("window is both maximized and snapped to %v", st.SnapSide)
	}
	mask := h.host.edge.mask
	switch {
	case st.Maximized():
		if !mask.Empty() {
			h.t.Fatalf("maximized window has non-empty mask %v", mask)
		}
	case st.SnapSide.IsEdge():
		if len(mask) != 1 {
			h.t.Fatalf("edge-snapped window mask = %v, want one strip", mask)
		}
	case st.SnapSide == geometry.SideNone:
		if len(mask) != 4 {
			h.t.Fatalf("free window mask = %v, want full perimeter", mask)
		}
	}
}
