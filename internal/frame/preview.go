package frame

import (
	"image/color"

	"github.com/1broseidon/framewm/internal/geometry"
)

// PreviewRole is the reason a preview overlay exists.
type PreviewRole int

const (
	// PreviewResize tracks an edge drag and owns the pointer.
	PreviewResize PreviewRole = iota
	// PreviewSnap hints where the window lands on release.
	PreviewSnap
)

func (r PreviewRole) String() string {
	if r == PreviewResize {
		return "resize"
	}
	return "snap"
}

// PaintFunc draws a preview overlay.
type PaintFunc func(pv *Preview, p Painter)

// Preview is a short-lived overlay owned by a Manager. The manager is the
// only one that creates and destroys it.
type Preview struct {
	m       *Manager
	role    PreviewRole
	paint   PaintFunc
	surface OverlaySurface
	minSize geometry.Size
}

// Role reports why the preview exists.
func (pv *Preview) Role() PreviewRole { return pv.role }

// Geometry returns the preview rectangle in screen coordinates.
func (pv *Preview) Geometry() geometry.Rect { return pv.surface.Geometry() }

func (pv *Preview) setGeometry(r geometry.Rect) {
	pv.surface.SetGeometry(r)
	pv.surface.Update()
}

// HandleEvent implements OverlayHandler. Only resize previews react to the
// pointer.
func (pv *Preview) HandleEvent(ev Event) {
	if pv.role != PreviewResize || pv.m.preview != pv {
		return
	}
	switch ev.Type {
	case EventMouseMove:
		pv.setGeometry(pv.m.resizeTarget(pv.Geometry(), ev.Pos, pv.minSize))
	case EventMouseRelease:
		if ev.Button == ButtonLeft {
			pv.m.endResize()
		}
	}
}

// Paint implements OverlayHandler.
func (pv *Preview) Paint(p Painter) {
	if pv.paint != nil {
		pv.paint(pv, p)
	}
}

// ResizeOutline returns a paint function drawing a rectangle outline of the
// given stroke width just inside the overlay.
func ResizeOutline(c color.Color, stroke int) PaintFunc {
	if stroke < 1 {
		stroke = 1
	}
	return func(_ *Preview, p Painter) {
		s := p.Size()
		inset := stroke / 2
		p.StrokeRect(geometry.Rect{X: inset, Y: inset, Width: s.Width - stroke, Height: s.Height - stroke}, c, stroke)
	}
}

// SnapFill returns a paint function filling the whole overlay with c.
func SnapFill(c color.Color) PaintFunc {
	return func(_ *Preview, p Painter) {
		s := p.Size()
		p.FillRect(geometry.Rect{Width: s.Width, Height: s.Height}, c)
	}
}
