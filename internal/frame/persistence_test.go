package frame

import (
	"testing"

	"github.com/1broseidon/framewm/internal/geometry"
)

func show(m *Manager) { m.HandleEvent(Event{Type: EventShow}) }

func TestGeometryRoundTrip(t *testing.T) {
	settings := newFakeSettings()
	host := &fakeHost{avail: testDesktop}

	first := newHarnessWith(t, &fakeWindow{name: "editor", geom: rect(123, 456, 300, 400), visible: true}, host, settings)
	first.m.Close()

	if got, ok := settings.values["editor/"+GeometryKey]; !ok || got != rect(123, 456, 300, 400) {
		t.Fatalf("stored geometry = %v (ok=%v)", got, ok)
	}

	win := &fakeWindow{name: "editor", geom: rect(0, 0, 300, 400), visible: true}
	second := newHarnessWith(t, win, &fakeHost{avail: testDesktop}, settings)
	show(second.m)
	if want := rect(123, 456, 300, 400); win.geom != want {
		t.Fatalf("geometry on first show = %v, want %v", win.geom, want)
	}
	if second.m.Status().PreModifyGeometry != win.geom {
		t.Fatal("loaded geometry should seed pre-modify")
	}
}

func TestSaveSnappedStoresFreeGeometry(t *testing.T) {
	h := newHarness(t, rect(500, 300, 400, 400))
	h.m.Snap(geometry.SideTop)
	if err := h.m.SaveGeometry(); err != nil {
		t.Fatalf("SaveGeometry: %v", err)
	}
	if got := h.settings.values["main/"+GeometryKey]; got != rect(500, 300, 400, 400) {
		t.Fatalf("stored = %v, want free geometry", got)
	}

	h.m.Snap(geometry.SideNone)
	h.m.Maximize()
	h.m.HandleAvailableGeometryChanged()
	h.m.Close()
	if got := h.settings.values["main/"+GeometryKey]; got != rect(500, 300, 400, 400) {
		t.Fatalf("stored while maximized = %v, want free geometry", got)
	}
}

func TestSaveGeometryDisabled(t *testing.T) {
	h := newHarness(t, rect(500, 300, 400, 400))
	h.settings.values["main/"+GeometryKey] = rect(10, 10, 300, 300)
	h.m.DisableFlags(FlagSaveGeometry)

	show(h.m)
	if want := rect(500, 300, 400, 400); h.win.geom != want {
		t.Fatalf("geometry = %v, want untouched %v", h.win.geom, want)
	}
	h.win.geom = rect(600, 300, 400, 400)
	h.m.Close()
	if got := h.settings.values["main/"+GeometryKey]; got != rect(10, 10, 300, 300) {
		t.Fatalf("stored = %v, want untouched", got)
	}
}

func TestLoadFallsBackToDefault(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *fakeSettings)
	}{
		{"missing", func(s *fakeSettings) {}},
		{"error", func(s *fakeSettings) { s.err = errBroken }},
		{"empty", func(s *fakeSettings) { s.values["main/"+GeometryKey] = geometry.Rect{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, rect(0, 0, 400, 400))
			tt.setup(h.settings)
			show(h.m)
			if want := rect(760, 340, 400, 400); h.win.geom != want {
				t.Fatalf("geometry = %v, want default %v", h.win.geom, want)
			}
			h.m.Close()
		})
	}
}

func TestCustomDefaultGeometry(t *testing.T) {
	h := newHarness(t, rect(0, 0, 400, 400))
	h.m.SetDefaultGeometry(rect(40, 50, 640, 480))
	if h.m.DefaultGeometry() != rect(40, 50, 640, 480) {
		t.Fatal("DefaultGeometry did not round-trip")
	}
	show(h.m)
	if want := rect(40, 50, 640, 480); h.win.geom != want {
		t.Fatalf("geometry = %v, want %v", h.win.geom, want)
	}
}

func TestFirstShowClampsToDesktop(t *testing.T) {
	h := newHarness(t, rect(0, 0, 400, 400))
	h.settings.values["main/"+GeometryKey] = rect(1800, 900, 400, 400)
	show(h.m)
	if want := rect(1520, 680, 400, 400); h.win.geom != want {
		t.Fatalf("geometry = %v, want %v", h.win.geom, want)
	}
}

func TestLoadHappensOnce(t *testing.T) {
	h := newHarness(t, rect(0, 0, 400, 400))
	h.settings.values["main/"+GeometryKey] = rect(100, 100, 400, 400)
	show(h.m)
	h.win.geom = rect(300, 300, 400, 400)
	show(h.m)
	if want := rect(300, 300, 400, 400); h.win.geom != want {
		t.Fatalf("second show reloaded geometry: %v", h.win.geom)
	}
}

func TestShowReappliesSnap(t *testing.T) {
	h := newHarness(t, rect(500, 300, 400, 400))
	show(h.m)
	h.m.Snap(geometry.SideRight)
	h.host.avail = rect(0, 0, 1280, 1024)
	show(h.m)
	if want := rect(640, 0, 640, 1024); h.win.geom != want {
		t.Fatalf("geometry = %v, want %v", h.win.geom, want)
	}
}

func TestNoSettingsStore(t *testing.T) {
	h := newHarnessWith(t, &fakeWindow{name: "main", geom: rect(0, 0, 400, 400), visible: true}, &fakeHost{avail: testDesktop}, nil)
	show(h.m)
	if want := rect(760, 340, 400, 400); h.win.geom != want {
		t.Fatalf("geometry = %v, want default %v", h.win.geom, want)
	}
	if err := h.m.SaveGeometry(); err != nil {
		t.Fatalf("SaveGeometry without store: %v", err)
	}
}
