package geometry

// Region is a union of non-overlapping rectangles.
type Region []Rect

// Empty reports whether the region covers no pixels.
func (rg Region) Empty() bool {
	for _, r := range rg {
		if !r.Empty() {
			return false
		}
	}
	return true
}

// Contains reports whether any rectangle of the region contains p.
func (rg Region) Contains(p Point) bool {
	for _, r := range rg {
		if r.Contains(p) {
			return true
		}
	}
	return false
}

// Area returns the number of pixels covered.
func (rg Region) Area() int {
	total := 0
	for _, r := range rg {
		if !r.Empty() {
			total += r.Width * r.Height
		}
	}
	return total
}

// Subtract returns r minus hole as up to four bands: full-width strips above
// and below the hole and the side pieces between them.
func Subtract(r, hole Rect) Region {
	h := r.Intersect(hole)
	if h.Empty() {
		return Region{r}
	}
	var out Region
	add := func(x Rect) {
		if !x.Empty() {
			out = append(out, x)
		}
	}
	add(Rect{r.X, r.Y, r.Width, h.Y - r.Y})
	add(Rect{r.X, h.Bottom(), r.Width, r.Bottom() - h.Bottom()})
	add(Rect{r.X, h.Y, h.X - r.X, h.Height})
	add(Rect{h.Right(), h.Y, r.Right() - h.Right(), h.Height})
	return out
}

// FrameMask computes the input region of the resize frame in window-local
// coordinates for a window of the given size. A maximized window gets an
// empty mask, an edge-snapped window a single strip on its inner edge, a
// corner-snapped window an L shape along its two inner edges and a free
// window the whole bw-thick perimeter.
func FrameMask(size Size, bw int, snapped Side, maximized bool) Region {
	if maximized {
		return Region{}
	}
	w, h := size.Width, size.Height
	full := Rect{0, 0, w, h}
	switch snapped {
	case SideLeft:
		return Region{{w - bw, 0, bw, h}}
	case SideRight:
		return Region{{0, 0, bw, h}}
	case SideTop:
		return Region{{0, h - bw, w, bw}}
	case SideBottom:
		return Region{{0, 0, w, bw}}
	case SideTopLeft:
		return Subtract(full, Rect{0, 0, w - bw, h - bw})
	case SideTopRight:
		return Subtract(full, Rect{bw, 0, w - bw, h - bw})
	case SideBottomLeft:
		return Subtract(full, Rect{0, bw, w - bw, h - bw})
	case SideBottomRight:
		return Subtract(full, Rect{bw, bw, w - bw, h - bw})
	}
	return Subtract(full, Rect{bw, bw, w - 2*bw, h - 2*bw})
}
