package geometry

import "testing"

func TestFrameMask(t *testing.T) {
	size := Size{Width: 400, Height: 300}
	bw := 3

	tests := []struct {
		name      string
		snapped   Side
		maximized bool
		rects     int
		area      int
		inside    []Point
		outside   []Point
	}{
		{
			name:    "free",
			snapped: SideNone,
			rects:   4,
			area:    400*300 - 394*294,
			inside:  []Point{{0, 0}, {399, 150}, {200, 299}, {2, 2}},
			outside: []Point{{3, 3}, {200, 150}, {396, 296}},
		},
		{
			name:      "maximized",
			maximized: true,
			rects:     0,
			area:      0,
			outside:   []Point{{0, 0}, {200, 150}},
		},
		{
			name:    "left",
			snapped: SideLeft,
			rects:   1,
			area:    3 * 300,
			inside:  []Point{{397, 0}, {399, 299}},
			outside: []Point{{0, 0}, {396, 150}},
		},
		{
			name:    "right",
			snapped: SideRight,
			rects:   1,
			area:    3 * 300,
			inside:  []Point{{0, 0}, {2, 299}},
			outside: []Point{{3, 0}, {399, 150}},
		},
		{
			name:    "top",
			snapped: SideTop,
			rects:   1,
			area:    400 * 3,
			inside:  []Point{{0, 297}, {399, 299}},
			outside: []Point{{0, 0}, {200, 296}},
		},
		{
			name:    "bottom",
			snapped: SideBottom,
			rects:   1,
			area:    400 * 3,
			inside:  []Point{{0, 0}, {399, 2}},
			outside: []Point{{0, 3}, {200, 299}},
		},
		{
			name:    "top_left",
			snapped: SideTopLeft,
			rects:   2,
			area:    400*300 - 397*297,
			inside:  []Point{{398, 0}, {0, 298}, {399, 299}},
			outside: []Point{{0, 0}, {396, 296}},
		},
		{
			name:    "bottom_right",
			snapped: SideBottomRight,
			rects:   2,
			area:    400*300 - 397*297,
			inside:  []Point{{0, 299}, {1, 0}, {399, 0}},
			outside: []Point{{399, 299}, {3, 3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mask := FrameMask(size, bw, tt.snapped, tt.maximized)
			if len(mask) != tt.rects {
				t.Fatalf("got %d rects, want %d: %v", len(mask), tt.rects, mask)
			}
			if got := mask.Area(); got != tt.area {
				t.Fatalf("area = %d, want %d", got, tt.area)
			}
			for _, p := range tt.inside {
				if !mask.Contains(p) {
					t.Errorf("mask should contain %v", p)
				}
			}
			for _, p := range tt.outside {
				if mask.Contains(p) {
					t.Errorf("mask should not contain %v", p)
				}
			}
		})
	}
}

func TestSubtractDisjoint(t *testing.T) {
	r := Rect{0, 0, 10, 10}
	got := Subtract(r, Rect{20, 20, 5, 5})
	if len(got) != 1 || got[0] != r {
		t.Fatalf("Subtract disjoint = %v, want [%v]", got, r)
	}
	if !Subtract(r, r).Empty() {
		t.Fatal("Subtract self should be empty")
	}
}

func TestParseSides(t *testing.T) {
	ss, err := ParseSides([]string{"left", "top-right", "bottom_left"})
	if err != nil {
		t.Fatalf("ParseSides: %v", err)
	}
	if want := SidesOf(SideLeft, SideTopRight, SideBottomLeft); ss != want {
		t.Fatalf("ParseSides = %v, want %v", ss, want)
	}
	if ss.Has(SideNone) {
		t.Fatal("SideNone must never be a member")
	}

	all, err := ParseSides([]string{"all"})
	if err != nil || all != AllSides {
		t.Fatalf("ParseSides(all) = %v, %v", all, err)
	}
	if got := len(all.List()); got != 8 {
		t.Fatalf("AllSides has %d members, want 8", got)
	}

	if _, err := ParseSides([]string{"middle"}); err == nil {
		t.Fatal("expected error for unknown side")
	}
}

func TestSideStringRoundTrip(t *testing.T) {
	for _, s := range AllSides.List() {
		got, err := ParseSide(s.String())
		if err != nil || got != s {
			t.Errorf("ParseSide(%q) = %v, %v", s.String(), got, err)
		}
	}
	if SideNone.String() != "none" {
		t.Fatalf("SideNone.String() = %q", SideNone.String())
	}
}
