package x11

import (
	"fmt"
	"math"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// PointerEventMask is the event mask selected on frame surfaces.
const PointerEventMask = xproto.EventMaskButtonPress |
	xproto.EventMaskButtonRelease |
	xproto.EventMaskPointerMotion |
	xproto.EventMaskExposure

// CreateOverlayWindow creates an unmapped override-redirect window that
// bypasses the window manager and stays above normal windows when raised.
func (c *Connection) CreateOverlayWindow() (*xwindow.Window, error) {
	win, err := xwindow.Generate(c.XUtil)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate overlay id: %w", err)
	}

	// Value list order follows the bit positions of the mask (low to high).
	err = win.CreateChecked(c.Root, 0, 0, 1, 1,
		xproto.CwBackPixel|xproto.CwOverrideRedirect|xproto.CwEventMask,
		0, 1, PointerEventMask)
	if err != nil {
		return nil, fmt.Errorf("failed to create overlay window: %w", err)
	}
	return win, nil
}

// CreateChildWindow creates a mapped child of parent that receives pointer
// events. The child shows its parent's background until SetBackground is
// called with a solid color.
func (c *Connection) CreateChildWindow(parent xproto.Window) (*xwindow.Window, error) {
	win, err := xwindow.Generate(c.XUtil)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate child id: %w", err)
	}

	err = win.CreateChecked(parent, 0, 0, 1, 1,
		xproto.CwBackPixmap|xproto.CwEventMask,
		xproto.BackPixmapParentRelative, PointerEventMask)
	if err != nil {
		return nil, fmt.Errorf("failed to create child window: %w", err)
	}
	win.Map()
	return win, nil
}

// SetBackground switches a window between a solid background pixel and its
// parent's background, then repaints it.
func (c *Connection) SetBackground(win *xwindow.Window, pixel uint32, solid bool) {
	if solid {
		win.Change(xproto.CwBackPixel, pixel)
	} else {
		win.Change(xproto.CwBackPixmap, xproto.BackPixmapParentRelative)
	}
	win.ClearAll()
}

// Raise moves a window to the top of its siblings.
func (c *Connection) Raise(win *xwindow.Window) {
	win.Stack(xproto.StackModeAbove)
}

// GrabPointer makes windowID the receiver of all pointer events until
// UngrabPointer is called.
func (c *Connection) GrabPointer(windowID xproto.Window, glyph uint16) error {
	cur, err := c.Cursor(glyph)
	if err != nil {
		cur = xproto.CursorNone
	}
	reply, err := xproto.GrabPointer(c.XUtil.Conn(), false, windowID,
		xproto.EventMaskButtonPress|xproto.EventMaskButtonRelease|xproto.EventMaskPointerMotion,
		xproto.GrabModeAsync, xproto.GrabModeAsync,
		xproto.WindowNone, cur, xproto.TimeCurrentTime).Reply()
	if err != nil {
		return fmt.Errorf("failed to grab pointer: %w", err)
	}
	if reply.Status != xproto.GrabStatusSuccess {
		return fmt.Errorf("failed to grab pointer: status %d", reply.Status)
	}
	return nil
}

// UngrabPointer releases an active pointer grab.
func (c *Connection) UngrabPointer() {
	xproto.UngrabPointer(c.XUtil.Conn(), xproto.TimeCurrentTime)
}

// SetOpacity sets _NET_WM_WINDOW_OPACITY, honoured by compositing managers.
// opacity is clamped to [0, 1].
func (c *Connection) SetOpacity(windowID xproto.Window, opacity float64) error {
	opacity = math.Max(0, math.Min(1, opacity))
	value := uint(opacity * math.MaxUint32)
	if err := xprop.ChangeProp32(c.XUtil, windowID, "_NET_WM_WINDOW_OPACITY", "CARDINAL", value); err != nil {
		return fmt.Errorf("failed to set opacity: %w", err)
	}
	return nil
}
