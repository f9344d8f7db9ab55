package frame

import (
	"testing"

	"github.com/1broseidon/framewm/internal/geometry"
)

func TestResizeBottomRightWithPreview(t *testing.T) {
	h := newHarness(t, rect(100, 100, 500, 500))
	clicked, created := 0, 0
	h.m.OnResizeFrameClicked = func() { clicked++ }
	h.m.OnSnapPreviewCreated = func() { created++ }

	h.edgePress(595, 595)
	if got := h.m.Status().Mode; got != ModeResizing {
		t.Fatalf("mode = %v, want resizing", got)
	}
	if clicked != 1 || created != 1 {
		t.Fatalf("signals: clicked=%d created=%d, want 1 and 1", clicked, created)
	}
	ov := h.host.overlays[0]
	if !ov.grabbed || !ov.shown {
		t.Fatal("resize preview should be shown and own the pointer")
	}
	if want := (geometry.Size{Width: 200, Height: 200}); ov.min != want {
		t.Fatalf("preview minimum size = %v, want %v", ov.min, want)
	}
	if want := rect(100, 100, 500, 500); ov.geom != want {
		t.Fatalf("preview starts at %v, want %v", ov.geom, want)
	}

	ov.h.HandleEvent(Event{Type: EventMouseMove, Buttons: ButtonLeft, Pos: geometry.Point{X: 995, Y: 995}})
	if want := rect(100, 100, 900, 900); ov.geom != want {
		t.Fatalf("preview geometry = %v, want %v", ov.geom, want)
	}
	if want := rect(100, 100, 500, 500); h.win.geom != want {
		t.Fatal("window must not change before release")
	}
	if ov.updates == 0 {
		t.Fatal("preview was not repainted")
	}

	ov.h.HandleEvent(Event{Type: EventMouseRelease, Button: ButtonLeft, Pos: geometry.Point{X: 995, Y: 995}})
	h.checkInvariants()
	if want := rect(100, 100, 900, 900); h.win.geom != want {
		t.Fatalf("window geometry = %v, want %v", h.win.geom, want)
	}
	if !ov.closed {
		t.Fatal("preview should close on release")
	}
	st := h.m.Status()
	if st.Mode != ModeIdle {
		t.Fatalf("mode = %v, want idle", st.Mode)
	}
	if st.PreModifyGeometry != h.win.geom {
		t.Fatalf("pre-modify = %v, want %v", st.PreModifyGeometry, h.win.geom)
	}

	// Events for a closed preview are ignored.
	ov.h.HandleEvent(Event{Type: EventMouseMove, Buttons: ButtonLeft, Pos: geometry.Point{X: 300, Y: 300}})
	if want := rect(100, 100, 900, 900); h.win.geom != want {
		t.Fatal("stale preview changed the window")
	}
}

func TestResizeDirect(t *testing.T) {
	tests := []struct {
		name  string
		press geometry.Point
		to    geometry.Point
		want  geometry.Rect
	}{
		{"bottom_right", geometry.Point{X: 595, Y: 595}, geometry.Point{X: 995, Y: 995}, rect(100, 100, 900, 900)},
		{"left clamp", geometry.Point{X: 100, Y: 300}, geometry.Point{X: 700, Y: 300}, rect(400, 100, 200, 500)},
		{"left grow", geometry.Point{X: 100, Y: 300}, geometry.Point{X: 50, Y: 300}, rect(50, 100, 550, 500)},
		{"top", geometry.Point{X: 300, Y: 102}, geometry.Point{X: 300, Y: 202}, rect(100, 200, 500, 400)},
		{"top clamp", geometry.Point{X: 300, Y: 102}, geometry.Point{X: 300, Y: 900}, rect(100, 400, 500, 200)},
		{"right shrink", geometry.Point{X: 599, Y: 300}, geometry.Point{X: 150, Y: 300}, rect(100, 100, 200, 500)},
		{"bottom", geometry.Point{X: 300, Y: 599}, geometry.Point{X: 300, Y: 699}, rect(100, 100, 500, 600)},
		{"top_right", geometry.Point{X: 599, Y: 100}, geometry.Point{X: 699, Y: 50}, rect(100, 50, 600, 550)},
		{"bottom_left", geometry.Point{X: 100, Y: 599}, geometry.Point{X: 0, Y: 699}, rect(0, 100, 600, 600)},
		{"top_left clamp", geometry.Point{X: 100, Y: 100}, geometry.Point{X: 1000, Y: 1000}, rect(400, 400, 200, 200)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, rect(100, 100, 500, 500))
			h.m.DisableFlags(FlagDrawResizePreview)

			h.edgePress(tt.press.X, tt.press.Y)
			h.edgeDrag(tt.to.X, tt.to.Y)
			if h.win.geom != tt.want {
				t.Fatalf("during drag = %v, want %v", h.win.geom, tt.want)
			}
			h.edgeRelease(tt.to.X, tt.to.Y)
			h.checkInvariants()
			if h.win.geom != tt.want {
				t.Fatalf("after release = %v, want %v", h.win.geom, tt.want)
			}
			min := h.win.MinimumSize()
			if h.win.geom.Width < min.Width || h.win.geom.Height < min.Height {
				t.Fatalf("geometry %v below minimum %v", h.win.geom, min)
			}
			if len(h.host.overlays) != 0 {
				t.Fatal("no overlay expected without the preview flag")
			}
		})
	}
}

func TestResizeTopEdgeHint(t *testing.T) {
	h := newHarness(t, rect(100, 100, 500, 500))
	h.m.DisableFlags(FlagDrawResizePreview)

	h.edgePress(300, 100)
	h.edgeDrag(300, 0)
	if want := rect(100, 0, 500, 600); h.win.geom != want {
		t.Fatalf("geometry = %v, want %v", h.win.geom, want)
	}
	pv := h.m.Preview()
	if pv == nil || pv.Role() != PreviewSnap {
		t.Fatal("expected a snap hint at the top of the desktop")
	}
	if want := rect(100, 0, 500, 1080); pv.Geometry() != want {
		t.Fatalf("hint = %v, want %v", pv.Geometry(), want)
	}

	h.edgeDrag(300, 40)
	if h.m.Preview() != nil {
		t.Fatal("hint should go away when leaving the top edge")
	}

	h.edgeDrag(300, 0)
	h.edgeRelease(300, 0)
	h.checkInvariants()
	if want := rect(100, 0, 500, 1080); h.win.geom != want {
		t.Fatalf("geometry after release = %v, want %v", h.win.geom, want)
	}
	if len(h.host.live()) != 0 {
		t.Fatal("hint survived the release")
	}
}

func TestResizeIntoTopCornerShowsNoHint(t *testing.T) {
	h := newHarness(t, rect(100, 100, 500, 500))
	h.m.DisableFlags(FlagDrawResizePreview)

	h.edgePress(100, 100)
	h.edgeDrag(0, 0)
	if want := rect(0, 0, 600, 600); h.win.geom != want {
		t.Fatalf("geometry = %v, want %v", h.win.geom, want)
	}
	if h.m.Preview() != nil {
		t.Fatal("a top corner is not the top edge")
	}
	h.edgeRelease(0, 0)
	h.checkInvariants()
	if want := rect(0, 0, 600, 600); h.win.geom != want {
		t.Fatalf("geometry after release = %v, want %v", h.win.geom, want)
	}
}

func TestResizeFallsBackWhenOverlayFails(t *testing.T) {
	h := newHarness(t, rect(100, 100, 500, 500))
	h.host.overlayErr = errBroken

	h.edgePress(595, 595)
	if h.m.Preview() != nil {
		t.Fatal("no preview expected when the host fails")
	}
	h.edgeDrag(995, 995)
	h.edgeRelease(995, 995)
	if want := rect(100, 100, 900, 900); h.win.geom != want {
		t.Fatalf("geometry = %v, want %v", h.win.geom, want)
	}
	if h.m.Status().Mode != ModeIdle {
		t.Fatal("manager should be idle")
	}
}

func TestResizeSnappedInnerEdge(t *testing.T) {
	h := newHarness(t, rect(500, 300, 400, 400))
	h.m.DisableFlags(FlagDrawResizePreview)
	h.m.Snap(geometry.SideLeft)

	h.edgeHover(955, 5)
	if h.host.edge.cursor != CursorSizeHor {
		t.Fatalf("cursor on snapped window corner = %v, want size_hor", h.host.edge.cursor)
	}

	h.edgePress(955, 500)
	h.edgeDrag(1205, 500)
	h.edgeRelease(1205, 500)

	if want := rect(0, 0, 1210, 1080); h.win.geom != want {
		t.Fatalf("geometry = %v, want %v", h.win.geom, want)
	}
	st := h.m.Status()
	if st.SnapSide != geometry.SideLeft {
		t.Fatalf("snap side = %v, want left", st.SnapSide)
	}
	if want := rect(500, 300, 400, 400); st.PreModifyGeometry != want {
		t.Fatalf("resizing a snapped window changed pre-modify to %v", st.PreModifyGeometry)
	}
}

func TestDoubleClickStartsResize(t *testing.T) {
	h := newHarness(t, rect(100, 100, 500, 500))
	clicked := 0
	h.m.OnResizeFrameClicked = func() { clicked++ }

	h.host.edge.h.HandleEvent(Event{Type: EventMouseDoubleClick, Button: ButtonLeft, Buttons: ButtonLeft, Pos: geometry.Point{X: 100, Y: 300}})
	if h.m.Status().Mode != ModeResizing {
		t.Fatal("double-click on the edge should start a resize")
	}
	if clicked != 1 {
		t.Fatalf("resize clicked %d times, want 1", clicked)
	}

	// A second press while resizing does not restart the drag.
	h.edgePress(595, 595)
	if clicked != 1 || len(h.host.overlays) != 1 {
		t.Fatal("press during resize must be ignored")
	}
	h.edgeRelease(100, 300)
}

func TestEdgePressOutsideBandIsIgnored(t *testing.T) {
	h := newHarness(t, rect(100, 100, 500, 500))
	h.edgePress(300, 300)
	if h.m.Status().Mode != ModeIdle {
		t.Fatal("press outside the border band must not resize")
	}
}
