package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/framewm/internal/frame"
	"github.com/1broseidon/framewm/internal/geometry"
	"github.com/adrg/xdg"
)

func TestRectRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")
	s := Open(path)

	if _, ok, err := s.Rect("editor", frame.GeometryKey); err != nil || ok {
		t.Fatalf("empty store: ok=%v err=%v", ok, err)
	}

	want := geometry.Rect{X: 123, Y: 456, Width: 300, Height: 400}
	if err := s.SetRect("editor", frame.GeometryKey, want); err != nil {
		t.Fatalf("SetRect: %v", err)
	}

	// A fresh store sees what the first one wrote.
	got, ok, err := Open(path).Rect("editor", frame.GeometryKey)
	if err != nil || !ok {
		t.Fatalf("Rect: ok=%v err=%v", ok, err)
	}
	if got != want {
		t.Fatalf("Rect = %v, want %v", got, want)
	}
}

func TestCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Open(path).Rect("editor", frame.GeometryKey); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestStoresSharingAFileDoNotClobber(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	daemon, cli := Open(path), Open(path)

	main := geometry.Rect{X: 1, Y: 2, Width: 300, Height: 200}
	other := geometry.Rect{X: 5, Y: 5, Width: 640, Height: 480}
	if err := cli.SetRect("other", frame.GeometryKey, other); err != nil {
		t.Fatal(err)
	}
	if _, _, err := daemon.Rect("main", frame.GeometryKey); err != nil {
		t.Fatal(err)
	}

	if err := cli.Delete("other", frame.GeometryKey); err != nil {
		t.Fatal(err)
	}
	if err := daemon.SetRect("main", frame.GeometryKey, main); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := Open(path).Rect("other", frame.GeometryKey); ok {
		t.Fatal("a later write resurrected a deleted entry")
	}

	// Two frames with different names keep each other's geometry.
	if err := cli.SetRect("other", frame.GeometryKey, other); err != nil {
		t.Fatal(err)
	}
	if err := daemon.SetRect("main", frame.GeometryKey, main); err != nil {
		t.Fatal(err)
	}
	for name, want := range map[string]geometry.Rect{"main": main, "other": other} {
		got, ok, err := Open(path).Rect(name, frame.GeometryKey)
		if err != nil || !ok || got != want {
			t.Fatalf("%s: got %v ok=%v err=%v, want %v", name, got, ok, err, want)
		}
	}
}

func TestWriteRecoversFromCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	s := Open(path)

	want := geometry.Rect{Width: 400, Height: 300}
	if err := s.SetRect("editor", frame.GeometryKey, want); err != nil {
		t.Fatalf("SetRect over a corrupt file: %v", err)
	}
	if got, ok, err := s.Rect("editor", frame.GeometryKey); err != nil || !ok || got != want {
		t.Fatalf("Rect = %v ok=%v err=%v", got, ok, err)
	}
	backup, err := os.ReadFile(path + ".bak")
	if err != nil {
		t.Fatalf("corrupt file was not kept: %v", err)
	}
	if string(backup) != "{not json" {
		t.Fatalf("backup = %q", backup)
	}
}

func TestCorruptValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	data := `{"version":1,"groups":{"editor":{"__geometry":"oops"}}}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	_, ok, err := Open(path).Rect("editor", frame.GeometryKey)
	if err == nil || ok {
		t.Fatalf("ok=%v err=%v, want a decode error", ok, err)
	}
	if !strings.Contains(err.Error(), "editor/__geometry") {
		t.Fatalf("error %q should name the key", err)
	}
}

func TestGroupsAndDelete(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "settings.json"))
	for _, name := range []string{"zeta", "alpha"} {
		if err := s.SetRect(name, frame.GeometryKey, geometry.Rect{Width: 10, Height: 10}); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Set("alpha", "note", "hello"); err != nil {
		t.Fatal(err)
	}

	groups, err := s.Groups()
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(groups, ",") != "alpha,zeta" {
		t.Fatalf("Groups = %v", groups)
	}

	if err := s.Delete("alpha", frame.GeometryKey); err != nil {
		t.Fatal(err)
	}
	var note string
	if ok, err := s.Get("alpha", "note", &note); err != nil || !ok || note != "hello" {
		t.Fatalf("other keys in the group must survive: ok=%v err=%v note=%q", ok, err, note)
	}

	geoms, err := s.Geometries()
	if err != nil {
		t.Fatal(err)
	}
	if len(geoms) != 1 || geoms[0].Name != "zeta" {
		t.Fatalf("Geometries = %v", geoms)
	}

	if err := s.Delete("zeta", ""); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete("missing", ""); err != nil {
		t.Fatalf("deleting a missing group: %v", err)
	}
	groups, _ = s.Groups()
	if strings.Join(groups, ",") != "alpha" {
		t.Fatalf("Groups after delete = %v", groups)
	}
}

func TestDefaultPathUsesXDGConfigHome(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", td)
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	got, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath: %v", err)
	}
	if want := filepath.Join(td, "framewm", "settings.json"); got != want {
		t.Fatalf("DefaultPath = %q, want %q", got, want)
	}
}
