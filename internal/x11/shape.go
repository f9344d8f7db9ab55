package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/shape"
	"github.com/BurntSushi/xgb/xproto"
)

// Rect is a window-relative rectangle used for shape masks.
type Rect struct {
	X, Y, Width, Height int
}

// SetShape replaces both the bounding and the input shape of windowID with
// the union of rects. An empty list makes the window invisible and lets all
// input through.
func (c *Connection) SetShape(windowID xproto.Window, rects []Rect) error {
	if !c.hasShape {
		return fmt.Errorf("shape extension not available")
	}
	xrects := make([]xproto.Rectangle, 0, len(rects))
	for _, r := range rects {
		if r.Width <= 0 || r.Height <= 0 {
			continue
		}
		xrects = append(xrects, xproto.Rectangle{
			X:      int16(r.X),
			Y:      int16(r.Y),
			Width:  uint16(r.Width),
			Height: uint16(r.Height),
		})
	}

	for _, kind := range []shape.Kind{shape.SkBounding, shape.SkInput} {
		err := shape.RectanglesChecked(c.XUtil.Conn(), shape.SoSet, kind,
			xproto.ClipOrderingUnsorted, windowID, 0, 0, xrects).Check()
		if err != nil {
			return fmt.Errorf("failed to set window shape: %w", err)
		}
	}
	return nil
}
