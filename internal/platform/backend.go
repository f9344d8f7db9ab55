package platform

import (
	"image"
	"image/color"
	"image/draw"
	"time"

	"github.com/1broseidon/framewm/internal/frame"
	"github.com/1broseidon/framewm/internal/geometry"
	"github.com/1broseidon/framewm/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
)

// Window-manager state atoms that map onto frame.WindowState.
var stateAtoms = []struct {
	atom  string
	state frame.WindowState
}{
	{x11.StateHidden, frame.StateMinimized},
	{x11.StateFullscreen, frame.StateFullScreen},
}

// windowState folds a set of _NET_WM_STATE atoms into a frame.WindowState.
// A window counts as maximized only when both directions are maximized.
func windowState(atoms map[string]bool) frame.WindowState {
	var s frame.WindowState
	if atoms[x11.StateMaximizedVert] && atoms[x11.StateMaximizedHorz] {
		s |= frame.StateMaximized
	}
	for _, sa := range stateAtoms {
		if atoms[sa.atom] {
			s |= sa.state
		}
	}
	return s
}

// buttonsHeld converts a core key/button mask into held mouse buttons.
func buttonsHeld(mask uint16) frame.MouseButton {
	var b frame.MouseButton
	if mask&xproto.ButtonMask1 != 0 {
		b |= frame.ButtonLeft
	}
	if mask&xproto.ButtonMask2 != 0 {
		b |= frame.ButtonMiddle
	}
	if mask&xproto.ButtonMask3 != 0 {
		b |= frame.ButtonRight
	}
	return b
}

// buttonOf converts a core button number into a frame.MouseButton.
func buttonOf(detail xproto.Button) frame.MouseButton {
	switch detail {
	case xproto.ButtonIndex1:
		return frame.ButtonLeft
	case xproto.ButtonIndex2:
		return frame.ButtonMiddle
	case xproto.ButtonIndex3:
		return frame.ButtonRight
	default:
		return frame.ButtonNone
	}
}

// cursorGlyph maps a frame cursor shape onto an X cursor font glyph.
func cursorGlyph(c frame.CursorShape) uint16 {
	switch c {
	case frame.CursorMove:
		return x11.CursorFleur
	case frame.CursorSizeHor:
		return x11.CursorSizeHor
	case frame.CursorSizeVer:
		return x11.CursorSizeVer
	case frame.CursorSizeFDiag:
		return x11.CursorTopLeft
	case frame.CursorSizeBDiag:
		return x11.CursorTopRight
	default:
		return x11.CursorLeftPtr
	}
}

// pixel converts c into a 24-bit 0xRRGGBB pixel. visible is false for nil or
// fully transparent colors.
func pixel(c color.Color) (value uint32, visible bool) {
	if c == nil {
		return 0, false
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0 {
		return 0, false
	}
	return uint32(n.R)<<16 | uint32(n.G)<<8 | uint32(n.B), true
}

func shapeRects(rg geometry.Region) []x11.Rect {
	out := make([]x11.Rect, 0, len(rg))
	for _, r := range rg {
		out = append(out, x11.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height})
	}
	return out
}

// Double-click detection thresholds.
const (
	doubleClickInterval = 400 * time.Millisecond
	doubleClickDistance = 4
)

// clickTracker turns a stream of presses into single and double clicks.
type clickTracker struct {
	button frame.MouseButton
	at     xproto.Timestamp
	pos    geometry.Point
	armed  bool
}

// press records a button press and reports whether it completes a double
// click. A double click disarms the tracker so a third press is single.
func (t *clickTracker) press(b frame.MouseButton, at xproto.Timestamp, pos geometry.Point) bool {
	d := pos.Sub(t.pos)
	double := t.armed && b == t.button &&
		time.Duration(at-t.at)*time.Millisecond <= doubleClickInterval &&
		abs(d.X) <= doubleClickDistance && abs(d.Y) <= doubleClickDistance
	if double {
		t.armed = false
		return true
	}
	t.button, t.at, t.pos, t.armed = b, at, pos, true
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

type paintOp struct {
	region geometry.Region
	color  color.NRGBA
}

// Canvas records paint operations for an overlay. It implements
// frame.Painter; the recorded area becomes the overlay's shape and the
// strongest alpha its window opacity.
type Canvas struct {
	size geometry.Size
	ops  []paintOp
}

var _ frame.Painter = (*Canvas)(nil)

// NewCanvas returns an empty canvas of the given size.
func NewCanvas(size geometry.Size) *Canvas {
	return &Canvas{size: size}
}

func (c *Canvas) Size() geometry.Size { return c.size }

func (c *Canvas) bounds() geometry.Rect {
	return geometry.Rect{Width: c.size.Width, Height: c.size.Height}
}

func (c *Canvas) FillRect(r geometry.Rect, col color.Color) {
	c.add(geometry.Region{r}, col)
}

// StrokeRect outlines r with a pen of the given width centered on its edges.
func (c *Canvas) StrokeRect(r geometry.Rect, col color.Color, width int) {
	if width <= 0 {
		return
	}
	outer := geometry.Rect{
		X:      r.X - width/2,
		Y:      r.Y - width/2,
		Width:  r.Width + width,
		Height: r.Height + width,
	}
	inner := geometry.Rect{
		X:      outer.X + width,
		Y:      outer.Y + width,
		Width:  outer.Width - 2*width,
		Height: outer.Height - 2*width,
	}
	if inner.Empty() {
		c.add(geometry.Region{outer}, col)
		return
	}
	c.add(geometry.Subtract(outer, inner), col)
}

func (c *Canvas) add(rg geometry.Region, col color.Color) {
	if col == nil {
		return
	}
	n := color.NRGBAModel.Convert(col).(color.NRGBA)
	if n.A == 0 {
		return
	}
	var clipped geometry.Region
	for _, r := range rg {
		if x := r.Intersect(c.bounds()); !x.Empty() {
			clipped = append(clipped, x)
		}
	}
	if len(clipped) > 0 {
		c.ops = append(c.ops, paintOp{region: clipped, color: n})
	}
}

// Region returns the union of everything painted, as a list of rectangles.
func (c *Canvas) Region() geometry.Region {
	var out geometry.Region
	for _, op := range c.ops {
		out = append(out, op.region...)
	}
	return out
}

// Opacity returns the strongest alpha painted, in [0, 1].
func (c *Canvas) Opacity() float64 {
	var a uint8
	for _, op := range c.ops {
		a = max(a, op.color.A)
	}
	return float64(a) / 255
}

// Draw renders the recorded operations into dst with full opacity.
// Translucency is applied to the whole window through Opacity.
func (c *Canvas) Draw(dst draw.Image) {
	for _, op := range c.ops {
		opaque := op.color
		opaque.A = 0xff
		src := image.NewUniform(opaque)
		for _, r := range op.region {
			draw.Draw(dst, image.Rect(r.X, r.Y, r.Right(), r.Bottom()), src, image.Point{}, draw.Src)
		}
	}
}
