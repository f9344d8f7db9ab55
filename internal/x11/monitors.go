package x11

import (
	"fmt"
	"slices"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// Monitor is an enabled RandR CRTC in root coordinates.
type Monitor struct {
	Name string
	Rect
}

func (r Rect) right() int  { return r.X + r.Width }
func (r Rect) bottom() int { return r.Y + r.Height }

func (r Rect) intersect(o Rect) Rect {
	x1, y1 := max(r.X, o.X), max(r.Y, o.Y)
	x2, y2 := min(r.right(), o.right()), min(r.bottom(), o.bottom())
	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

func (r Rect) contains(x, y int) bool {
	return x >= r.X && x < r.right() && y >= r.Y && y < r.bottom()
}

func (c *Connection) crtcRect(crtc randr.Crtc, ts xproto.Timestamp) (Rect, []randr.Output, error) {
	info, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, ts).Reply()
	if err != nil {
		return Rect{}, nil, err
	}
	r := Rect{X: int(info.X), Y: int(info.Y), Width: int(info.Width), Height: int(info.Height)}
	return r, info.Outputs, nil
}

// Monitors lists the enabled CRTCs, named after their first output.
func (c *Connection) Monitors() ([]Monitor, error) {
	if !c.hasRandr {
		return nil, fmt.Errorf("randr extension not available")
	}
	res, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var out []Monitor
	for i, crtc := range res.Crtcs {
		r, outputs, err := c.crtcRect(crtc, res.ConfigTimestamp)
		if err != nil || r.Width == 0 || r.Height == 0 || len(outputs) == 0 {
			continue
		}
		mon := Monitor{Name: fmt.Sprintf("crtc-%d", i), Rect: r}
		if oi, err := randr.GetOutputInfo(c.XUtil.Conn(), outputs[0], res.ConfigTimestamp).Reply(); err == nil {
			mon.Name = string(oi.Name)
		}
		out = append(out, mon)
	}
	return out, nil
}

// primaryMonitor picks the RandR primary output, else the monitor under the
// pointer, else the first one.
func (c *Connection) primaryMonitor() (Monitor, error) {
	mons, err := c.Monitors()
	if err != nil {
		return Monitor{}, err
	}
	if len(mons) == 0 {
		return Monitor{}, fmt.Errorf("no monitors found")
	}

	if prim, err := randr.GetOutputPrimary(c.XUtil.Conn(), c.Root).Reply(); err == nil && prim.Output != 0 {
		if oi, err := randr.GetOutputInfo(c.XUtil.Conn(), prim.Output, 0).Reply(); err == nil && oi.Crtc != 0 {
			if r, _, err := c.crtcRect(oi.Crtc, 0); err == nil {
				if i := slices.IndexFunc(mons, func(m Monitor) bool { return m.Rect == r }); i >= 0 {
					return mons[i], nil
				}
			}
		}
	}
	if ptr, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply(); err == nil {
		x, y := int(ptr.RootX), int(ptr.RootY)
		if i := slices.IndexFunc(mons, func(m Monitor) bool { return m.contains(x, y) }); i >= 0 {
			return mons[i], nil
		}
	}
	return mons[0], nil
}

func (c *Connection) rootRect() (Rect, error) {
	g, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
	if err != nil {
		return Rect{}, fmt.Errorf("failed to get root geometry: %w", err)
	}
	return Rect{Width: int(g.Width), Height: int(g.Height)}, nil
}

// AvailableArea returns the primary monitor minus the space docks reserve
// on it. With no docks it falls back to _NET_WORKAREA, and without RandR
// the root window stands in for the monitor.
func (c *Connection) AvailableArea() (Monitor, error) {
	root, err := c.rootRect()
	if err != nil {
		return Monitor{}, err
	}
	mon := Monitor{Name: "root", Rect: root}
	if c.hasRandr {
		if prim, err := c.primaryMonitor(); err == nil {
			mon = prim
		}
	}

	if area, ok := c.minusStruts(mon.Rect, root); ok {
		mon.Rect = area
	} else if area, ok := c.workArea(mon.Rect); ok {
		mon.Rect = area
	}
	return mon, nil
}

// workArea intersects mon with the current desktop's _NET_WORKAREA.
func (c *Connection) workArea(mon Rect) (Rect, bool) {
	areas, err := ewmh.WorkareaGet(c.XUtil)
	if err != nil || len(areas) == 0 {
		return Rect{}, false
	}
	idx := 0
	if cur, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil && int(cur) < len(areas) {
		idx = int(cur)
	}
	wa := areas[idx]
	area := mon.intersect(Rect{X: wa.X, Y: wa.Y, Width: int(wa.Width), Height: int(wa.Height)})
	return area, area.Width > 0 && area.Height > 0
}

// insets is the space reserved on each edge of a monitor.
type insets struct {
	left, right, top, bottom int
}

func (in insets) zero() bool { return in == insets{} }

// minusStruts shrinks mon by the struts of every dock window overlapping
// it. It reports false when no dock reserves space on mon.
func (c *Connection) minusStruts(mon, root Rect) (Rect, bool) {
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return Rect{}, false
	}

	var in insets
	for _, win := range clients {
		types, err := ewmh.WmWindowTypeGet(c.XUtil, win)
		if err != nil || !slices.Contains(types, "_NET_WM_WINDOW_TYPE_DOCK") {
			continue
		}
		sp, err := ewmh.WmStrutPartialGet(c.XUtil, win)
		if err != nil {
			// _NET_WM_STRUT spans the whole edge.
			s, err := ewmh.WmStrutGet(c.XUtil, win)
			if err != nil {
				continue
			}
			sp = fullStrut(s, root)
		}
		in = in.add(mon, root, sp)
	}
	if in.zero() {
		return Rect{}, false
	}

	return Rect{
		X:      mon.X + in.left,
		Y:      mon.Y + in.top,
		Width:  max(1, mon.Width-in.left-in.right),
		Height: max(1, mon.Height-in.top-in.bottom),
	}, true
}

func fullStrut(s *ewmh.WmStrut, root Rect) *ewmh.WmStrutPartial {
	w, h := uint(root.Width-1), uint(root.Height-1)
	return &ewmh.WmStrutPartial{
		Left: s.Left, Right: s.Right, Top: s.Top, Bottom: s.Bottom,
		LeftEndY: h, RightEndY: h, TopEndX: w, BottomEndX: w,
	}
}

// add grows in by the part of each strut band that overlaps mon. Struts
// are measured from the root window edges.
func (in insets) add(mon, root Rect, sp *ewmh.WmStrutPartial) insets {
	band := func(x1, y1, x2, y2 uint) Rect {
		return mon.intersect(Rect{X: int(x1), Y: int(y1), Width: int(x2) - int(x1), Height: int(y2) - int(y1)})
	}
	rw, rh := uint(root.Width), uint(root.Height)

	if sp.Top > 0 {
		in.top = max(in.top, band(sp.TopStartX, 0, sp.TopEndX+1, sp.Top).Height)
	}
	if sp.Bottom > 0 {
		in.bottom = max(in.bottom, band(sp.BottomStartX, rh-sp.Bottom, sp.BottomEndX+1, rh).Height)
	}
	if sp.Left > 0 {
		in.left = max(in.left, band(0, sp.LeftStartY, sp.Left, sp.LeftEndY+1).Width)
	}
	if sp.Right > 0 {
		in.right = max(in.right, band(rw-sp.Right, sp.RightStartY, rw, sp.RightEndY+1).Width)
	}
	return in
}

// WatchScreenChanges delivers RandR screen changes and root property
// changes (work area, client list) to the event loop.
func (c *Connection) WatchScreenChanges() error {
	if c.hasRandr {
		if err := randr.SelectInputChecked(c.XUtil.Conn(), c.Root, randr.NotifyMaskScreenChange).Check(); err != nil {
			return fmt.Errorf("failed to select randr input: %w", err)
		}
	}
	if err := xproto.ChangeWindowAttributesChecked(c.XUtil.Conn(), c.Root,
		xproto.CwEventMask, []uint32{xproto.EventMaskPropertyChange}).Check(); err != nil {
		return fmt.Errorf("failed to watch root properties: %w", err)
	}
	return nil
}
