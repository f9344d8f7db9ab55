package geometry

import "testing"

var desk = Rect{X: 0, Y: 0, Width: 1920, Height: 1080}

func TestDesktopSide(t *testing.T) {
	tests := []struct {
		p    Point
		want Side
	}{
		{Point{0, 0}, SideTopLeft},
		{Point{-5, -5}, SideTopLeft},
		{Point{1919, 0}, SideTopRight},
		{Point{0, 1079}, SideBottomLeft},
		{Point{2000, 1200}, SideBottomRight},
		{Point{0, 500}, SideLeft},
		{Point{1919, 500}, SideRight},
		{Point{800, 0}, SideTop},
		{Point{800, 1079}, SideBottom},
		{Point{800, 500}, SideNone},
		{Point{1, 1}, SideNone},
	}
	for _, tt := range tests {
		if got := DesktopSide(tt.p, desk); got != tt.want {
			t.Errorf("DesktopSide(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestDesktopSideOffsetArea(t *testing.T) {
	area := Rect{X: 0, Y: 32, Width: 1920, Height: 1048}
	if got := DesktopSide(Point{900, 32}, area); got != SideTop {
		t.Fatalf("DesktopSide on panel edge = %v, want top", got)
	}
	if got := DesktopSide(Point{900, 33}, area); got != SideNone {
		t.Fatalf("DesktopSide below panel edge = %v, want none", got)
	}
}

func TestWindowSideBands(t *testing.T) {
	win := Rect{X: 100, Y: 100, Width: 500, Height: 500}
	tests := []struct {
		p    Point
		want Side
	}{
		{Point{100, 300}, SideLeft},
		{Point{109, 110}, SideLeft},
		{Point{599, 300}, SideRight},
		{Point{300, 100}, SideTop},
		{Point{300, 599}, SideBottom},
		{Point{100, 100}, SideTopLeft},
		{Point{109, 109}, SideTopLeft},
		{Point{595, 105}, SideTopRight},
		{Point{105, 595}, SideBottomLeft},
		{Point{595, 595}, SideBottomRight},
		{Point{300, 300}, SideNone},
		{Point{600, 300}, SideNone},
		{Point{99, 300}, SideNone},
	}
	for _, tt := range tests {
		if got := WindowSide(tt.p, win, 10, SideNone); got != tt.want {
			t.Errorf("WindowSide(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestWindowSideSnappedRemap(t *testing.T) {
	win := Rect{X: 0, Y: 0, Width: 960, Height: 540}
	bw := 10
	at := map[Side]Point{
		SideLeft:        {0, 200},
		SideRight:       {955, 200},
		SideTop:         {300, 0},
		SideBottom:      {300, 535},
		SideTopLeft:     {0, 0},
		SideTopRight:    {955, 0},
		SideBottomLeft:  {0, 535},
		SideBottomRight: {955, 535},
	}
	tests := []struct {
		snapped Side
		raw     Side
		want    Side
	}{
		{SideTop, SideLeft, SideBottom},
		{SideTop, SideTopRight, SideBottom},
		{SideBottom, SideRight, SideTop},
		{SideLeft, SideTopLeft, SideRight},
		{SideRight, SideBottom, SideLeft},
		{SideTopLeft, SideBottomLeft, SideBottom},
		{SideTopLeft, SideTopRight, SideRight},
		{SideTopLeft, SideBottomRight, SideBottomRight},
		{SideTopLeft, SideLeft, SideLeft},
		{SideTopRight, SideTopLeft, SideLeft},
		{SideTopRight, SideBottomRight, SideBottom},
		{SideTopRight, SideBottomLeft, SideBottomLeft},
		{SideBottomLeft, SideTopLeft, SideTop},
		{SideBottomLeft, SideBottomRight, SideRight},
		{SideBottomLeft, SideTopRight, SideTopRight},
		{SideBottomRight, SideBottomLeft, SideLeft},
		{SideBottomRight, SideTopRight, SideTop},
		{SideBottomRight, SideTopLeft, SideTopLeft},
	}
	for _, tt := range tests {
		got := WindowSide(at[tt.raw], win, bw, tt.snapped)
		if got != tt.want {
			t.Errorf("snapped=%v raw=%v: got %v, want %v", tt.snapped, tt.raw, got, tt.want)
		}
	}

	// Outside the band stays none even when snapped.
	if got := WindowSide(Point{400, 300}, win, bw, SideTop); got != SideNone {
		t.Fatalf("interior point while snapped = %v, want none", got)
	}
}

func TestSnapRect(t *testing.T) {
	base := Size{Width: 400, Height: 300}
	tests := []struct {
		side Side
		half bool
		want Rect
	}{
		{SideLeft, true, Rect{0, 0, 960, 1080}},
		{SideRight, true, Rect{960, 0, 960, 1080}},
		{SideTop, true, Rect{0, 0, 1920, 540}},
		{SideBottom, true, Rect{0, 540, 1920, 540}},
		{SideTopLeft, true, Rect{0, 0, 960, 540}},
		{SideTopRight, true, Rect{960, 0, 960, 540}},
		{SideBottomLeft, true, Rect{0, 540, 960, 540}},
		{SideBottomRight, true, Rect{960, 540, 960, 540}},
		{SideLeft, false, Rect{0, 0, 400, 1080}},
		{SideRight, false, Rect{1520, 0, 400, 1080}},
		{SideBottom, false, Rect{0, 780, 1920, 300}},
		{SideBottomRight, false, Rect{1520, 780, 400, 300}},
		{SideNone, true, Rect{}},
	}
	for _, tt := range tests {
		if got := SnapRect(desk, base, tt.side, tt.half); got != tt.want {
			t.Errorf("SnapRect(%v, half=%v) = %v, want %v", tt.side, tt.half, got, tt.want)
		}
	}
}

func TestCursorOffset(t *testing.T) {
	win := Rect{X: 100, Y: 100, Width: 500, Height: 500}
	tests := []struct {
		side Side
		p    Point
		want Point
	}{
		{SideLeft, Point{103, 300}, Point{3, 0}},
		{SideRight, Point{595, 300}, Point{-5, 0}},
		{SideTop, Point{300, 104}, Point{0, 4}},
		{SideBottom, Point{300, 592}, Point{0, -8}},
		{SideBottomRight, Point{595, 595}, Point{-5, -5}},
		{SideTopLeft, Point{102, 101}, Point{2, 1}},
		{SideNone, Point{300, 300}, Point{0, 0}},
	}
	for _, tt := range tests {
		if got := CursorOffset(win, tt.side, tt.p); got != tt.want {
			t.Errorf("CursorOffset(%v, %v) = %v, want %v", tt.side, tt.p, got, tt.want)
		}
	}
}

func TestClampToAvailable(t *testing.T) {
	tests := []struct {
		in   Rect
		want Rect
	}{
		{Rect{-50, -20, 400, 300}, Rect{0, 0, 400, 300}},
		{Rect{1700, 900, 400, 300}, Rect{1520, 780, 400, 300}},
		{Rect{100, 100, 400, 300}, Rect{100, 100, 400, 300}},
	}
	for _, tt := range tests {
		if got := ClampToAvailable(tt.in, desk); got != tt.want {
			t.Errorf("ClampToAvailable(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestResizeToCursorTable(t *testing.T) {
	win := Rect{X: 100, Y: 100, Width: 500, Height: 500}
	minSize := Size{Width: 200, Height: 200}
	limit := ResizeLimit(win, minSize)
	p := Point{X: 350, Y: 250}

	tests := []struct {
		side Side
		want Rect
	}{
		{SideRight, Rect{100, 100, 250, 500}},
		{SideBottom, Rect{100, 100, 500, 200}},
		{SideBottomRight, Rect{100, 100, 250, 200}},
		{SideLeft, Rect{350, 100, 250, 500}},
		{SideTop, Rect{100, 250, 500, 350}},
		{SideTopRight, Rect{100, 250, 250, 350}},
		{SideBottomLeft, Rect{350, 100, 250, 200}},
		{SideTopLeft, Rect{350, 250, 250, 350}},
		{SideNone, win},
	}
	for _, tt := range tests {
		if got := ResizeToCursor(win, tt.side, p, limit, minSize); got != tt.want {
			t.Errorf("ResizeToCursor(%v) = %v, want %v", tt.side, got, tt.want)
		}
	}
}

func TestResizeToCursorClampsAtMinimum(t *testing.T) {
	win := Rect{X: 100, Y: 100, Width: 500, Height: 500}
	minSize := Size{Width: 200, Height: 200}
	limit := ResizeLimit(win, minSize)

	got := ResizeToCursor(win, SideLeft, Point{700, 300}, limit, minSize)
	if want := (Rect{400, 100, 200, 500}); got != want {
		t.Fatalf("left clamp = %v, want %v", got, want)
	}

	got = ResizeToCursor(win, SideTopLeft, Point{900, 900}, limit, minSize)
	if want := (Rect{400, 400, 200, 200}); got != want {
		t.Fatalf("top-left clamp = %v, want %v", got, want)
	}

	got = ResizeToCursor(win, SideBottomRight, Point{150, 120}, limit, minSize)
	if want := (Rect{100, 100, 200, 200}); got != want {
		t.Fatalf("bottom-right clamp = %v, want %v", got, want)
	}
}

func TestResizeDragFromCorner(t *testing.T) {
	win := Rect{X: 100, Y: 100, Width: 500, Height: 500}
	minSize := Size{Width: 100, Height: 100}
	press := Point{595, 595}

	side := WindowSide(press, win, 10, SideNone)
	if side != SideBottomRight {
		t.Fatalf("press side = %v, want bottom_right", side)
	}
	off := CursorOffset(win, side, press)
	limit := ResizeLimit(win, minSize)

	got := ResizeToCursor(win, side, Point{995, 995}.Sub(off), limit, minSize)
	if want := (Rect{100, 100, 900, 900}); got != want {
		t.Fatalf("drag result = %v, want %v", got, want)
	}
}

func TestRectIntersect(t *testing.T) {
	a := Rect{0, 0, 100, 100}
	b := Rect{50, 60, 100, 100}
	if got, want := a.Intersect(b), (Rect{50, 60, 50, 40}); got != want {
		t.Fatalf("Intersect = %v, want %v", got, want)
	}
	if a.Intersects(Rect{100, 0, 10, 10}) {
		t.Fatal("touching rectangles must not intersect")
	}
}
