package geometry

// DesktopSide reports which edge or corner of the available area p touches.
// A point at or beyond an edge counts as touching it, and corners win over
// edges.
func DesktopSide(p Point, available Rect) Side {
	left := p.X <= available.X
	right := p.X >= available.Right()-1
	top := p.Y <= available.Y
	bottom := p.Y >= available.Bottom()-1

	switch {
	case left && top:
		return SideTopLeft
	case right && top:
		return SideTopRight
	case left && bottom:
		return SideBottomLeft
	case right && bottom:
		return SideBottomRight
	case left:
		return SideLeft
	case right:
		return SideRight
	case top:
		return SideTop
	case bottom:
		return SideBottom
	}
	return SideNone
}

// borderBands returns the hit rectangles of a window's border band in the
// order they are tested. Edge bands exclude the bw×bw corner squares.
func borderBands(win Rect, bw int) [8]struct {
	side Side
	rect Rect
} {
	x, y, w, h := win.X, win.Y, win.Width, win.Height
	return [8]struct {
		side Side
		rect Rect
	}{
		{SideLeft, Rect{x, y + bw, bw, h - 2*bw}},
		{SideRight, Rect{x + w - bw, y + bw, bw, h - 2*bw}},
		{SideTop, Rect{x + bw, y, w - 2*bw, bw}},
		{SideBottom, Rect{x + bw, y + h - bw, w - 2*bw, bw}},
		{SideTopLeft, Rect{x, y, bw, bw}},
		{SideTopRight, Rect{x + w - bw, y, bw, bw}},
		{SideBottomRight, Rect{x + w - bw, y + h - bw, bw, bw}},
		{SideBottomLeft, Rect{x, y + h - bw, bw, bw}},
	}
}

// WindowSide returns the part of win's border band of thickness bw that
// contains p. When the window is snapped, the raw side is remapped to the
// edge that can still be dragged toward the desktop interior.
func WindowSide(p Point, win Rect, bw int, snapped Side) Side {
	raw := SideNone
	for _, band := range borderBands(win, bw) {
		if band.rect.Contains(p) {
			raw = band.side
			break
		}
	}
	if raw == SideNone || snapped == SideNone {
		return raw
	}
	return remapSnapped(raw, snapped)
}

func remapSnapped(raw, snapped Side) Side {
	switch snapped {
	case SideTop:
		return SideBottom
	case SideBottom:
		return SideTop
	case SideLeft:
		return SideRight
	case SideRight:
		return SideLeft
	case SideTopLeft:
		switch raw {
		case SideBottomLeft:
			return SideBottom
		case SideTopRight:
			return SideRight
		}
	case SideTopRight:
		switch raw {
		case SideTopLeft:
			return SideLeft
		case SideBottomRight:
			return SideBottom
		}
	case SideBottomLeft:
		switch raw {
		case SideTopLeft:
			return SideTop
		case SideBottomRight:
			return SideRight
		}
	case SideBottomRight:
		switch raw {
		case SideBottomLeft:
			return SideLeft
		case SideTopRight:
			return SideTop
		}
	}
	return raw
}

// SnapRect computes the geometry of a window snapped to side of the
// available area. With half set the window takes half the area in each
// snapped axis, otherwise it keeps base. SideNone yields a zero Rect.
func SnapRect(available Rect, base Size, side Side, half bool) Rect {
	s := base
	if half {
		s = Size{Width: available.Width / 2, Height: available.Height / 2}
	}
	a := available
	switch side {
	case SideTop:
		return Rect{a.X, a.Y, a.Width, s.Height}
	case SideBottom:
		return Rect{a.X, a.Bottom() - s.Height, a.Width, s.Height}
	case SideLeft:
		return Rect{a.X, a.Y, s.Width, a.Height}
	case SideRight:
		return Rect{a.Right() - s.Width, a.Y, s.Width, a.Height}
	case SideTopLeft:
		return Rect{a.X, a.Y, s.Width, s.Height}
	case SideTopRight:
		return Rect{a.Right() - s.Width, a.Y, s.Width, s.Height}
	case SideBottomLeft:
		return Rect{a.X, a.Bottom() - s.Height, s.Width, s.Height}
	case SideBottomRight:
		return Rect{a.Right() - s.Width, a.Bottom() - s.Height, s.Width, s.Height}
	}
	return Rect{}
}

// CursorOffset returns the vector from the grabbed side of win to p, so that
// p-offset later yields the new edge coordinate.
func CursorOffset(win Rect, side Side, p Point) Point {
	var off Point
	if side.touchesLeft() {
		off.X = p.X - win.X
	}
	if side.touchesRight() {
		off.X = p.X - win.Right()
	}
	if side.touchesTop() {
		off.Y = p.Y - win.Y
	}
	if side.touchesBottom() {
		off.Y = p.Y - win.Bottom()
	}
	return off
}

// ClampToAvailable moves win inside available without resizing it.
func ClampToAvailable(win, available Rect) Rect {
	if win.X < available.X {
		win.X = available.X
	} else if win.Right() > available.Right() {
		win.X = available.Right() - win.Width
	}
	if win.Y < available.Y {
		win.Y = available.Y
	} else if win.Bottom() > available.Bottom() {
		win.Y = available.Bottom() - win.Height
	}
	return win
}

// ResizeLimit caps the cursor for a shrinking drag so the window keeps its
// minimum size. It is captured when the drag starts.
func ResizeLimit(win Rect, minSize Size) Point {
	return Point{X: win.Right() - minSize.Width, Y: win.Bottom() - minSize.Height}
}

// ResizeToCursor returns win resized so the edge or corner named by side
// follows p, where p is the cursor minus the offset captured at press.
// Dragging the left or top edges is clamped by limit; dragging the right or
// bottom edges is held at minSize.
func ResizeToCursor(win Rect, side Side, p Point, limit Point, minSize Size) Rect {
	if side.touchesLeft() && p.X > limit.X {
		p.X = limit.X
	}
	if side.touchesTop() && p.Y > limit.Y {
		p.Y = limit.Y
	}

	out := win
	switch {
	case side.touchesLeft():
		out.X = p.X
		out.Width = win.Right() - p.X
	case side.touchesRight():
		out.Width = max(p.X-win.X, minSize.Width)
	}
	switch {
	case side.touchesTop():
		out.Y = p.Y
		out.Height = win.Bottom() - p.Y
	case side.touchesBottom():
		out.Height = max(p.Y-win.Y, minSize.Height)
	}
	return out
}
