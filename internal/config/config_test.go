package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/1broseidon/framewm/internal/frame"
	"github.com/1broseidon/framewm/internal/geometry"
	"github.com/adrg/xdg"
)

func writeConfig(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestDefaultConfig_ValidAndMatchesFrameDefaults(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	fc, err := cfg.FrameConfig()
	if err != nil {
		t.Fatalf("FrameConfig: %v", err)
	}
	want := frame.DefaultConfig()
	if fc.BorderWidth != want.BorderWidth || fc.MovingArea != want.MovingArea || fc.MoveCursor != want.MoveCursor {
		t.Fatalf("scalar defaults differ: got %+v", fc)
	}
	if fc.SnapSides != geometry.AllSides || fc.MaximizeSides != 0 {
		t.Fatalf("sides: snap=%v maximize=%v", fc.SnapSides, fc.MaximizeSides)
	}
	if fc.Flags != frame.DefaultFlags {
		t.Fatalf("flags = %v, want %v", fc.Flags, frame.DefaultFlags)
	}
	if fc.ResizeFrameColor != nil {
		t.Fatalf("resize frame should be invisible by default, got %v", fc.ResizeFrameColor)
	}
	if fc.SnapColor != want.SnapColor || fc.ResizeColor != want.ResizeColor {
		t.Fatalf("preview colors: resize=%v snap=%v", fc.ResizeColor, fc.SnapColor)
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(res.Files) != 0 {
		t.Fatalf("expected no files, got %v", res.Files)
	}
	if res.Config.BorderWidth != frame.DefaultBorderWidth {
		t.Fatalf("border_width = %d", res.Config.BorderWidth)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "# empty\n")
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.CheckpointInterval != 30*time.Second {
		t.Fatalf("checkpoint_interval = %v", res.Config.CheckpointInterval)
	}
}

func TestLoadFromPath_OverridesAndExplain(t *testing.T) {
	data := strings.Join([]string{
		"border_width: 6",
		"moving_area: 32",
		"move_cursor: arrow",
		"snap_sides: [left, right, top]",
		"maximize_sides: [top]",
		"flags:",
		"  half_snap: false",
		"resize_frame_color: \"#ff000080\"",
		"window:",
		"  name: editor",
		"checkpoint_interval: 2m",
		"",
	}, "\n")
	path := writeConfig(t, t.TempDir(), "config.yaml", data)

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	if cfg.BorderWidth != 6 || cfg.MovingArea != 32 {
		t.Fatalf("border_width=%d moving_area=%d", cfg.BorderWidth, cfg.MovingArea)
	}
	if cfg.Window.Title != "editor" {
		t.Fatalf("title should follow name, got %q", cfg.Window.Title)
	}
	if cfg.CheckpointInterval != 2*time.Minute {
		t.Fatalf("checkpoint_interval = %v", cfg.CheckpointInterval)
	}

	fc, err := cfg.FrameConfig()
	if err != nil {
		t.Fatalf("FrameConfig: %v", err)
	}
	if fc.MoveCursor != frame.CursorArrow {
		t.Fatalf("move cursor = %v", fc.MoveCursor)
	}
	if fc.SnapSides != geometry.SidesOf(geometry.SideLeft, geometry.SideRight) {
		t.Fatalf("maximize sides must be removed from snap sides, got %v", fc.SnapSides)
	}
	if fc.MaximizeSides != geometry.SidesOf(geometry.SideTop) {
		t.Fatalf("maximize sides = %v", fc.MaximizeSides)
	}
	if fc.Flags != frame.FlagDrawResizePreview|frame.FlagSaveGeometry {
		t.Fatalf("flags = %v", fc.Flags)
	}
	if fc.ResizeFrameColor != (color.NRGBA{R: 255, A: 0x80}) {
		t.Fatalf("resize frame color = %v", fc.ResizeFrameColor)
	}

	val, src, err := Explain(res, "flags.half_snap")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if val != false {
		t.Fatalf("explain value = %#v", val)
	}
	if src.Kind != SourceFile || src.Line != 7 {
		t.Fatalf("expected file source at line 7, got %#v", src)
	}

	_, src, err = Explain(res, "flags.save_geometry")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if src.Kind != SourceDefault {
		t.Fatalf("expected default source, got %#v", src)
	}

	if _, _, err := Explain(res, "window.nope"); err == nil {
		t.Fatalf("expected unknown path error")
	}
	if _, _, err := Explain(res, "border_width.x"); err == nil {
		t.Fatalf("expected unknown path error for nested scalar")
	}
}

func TestLoadFromPath_StrictUnknownKeyErrors(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "unknown_key: 1\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "unknown_key") && !strings.Contains(err.Error(), "field") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("expected error to include file path, got %v", err)
	}
}

func TestLoadFromPath_ValidationErrorHasSourceContext(t *testing.T) {
	data := "log_level: info\npreview:\n  snap_color: blue\n"
	path := writeConfig(t, t.TempDir(), "config.yaml", data)

	_, err := LoadFromPath(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Path != "preview.snap_color" {
		t.Fatalf("path = %q", verr.Path)
	}
	if !strings.HasPrefix(err.Error(), path+":3:") {
		t.Fatalf("expected file:line prefix, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"negative border", func(c *Config) { c.BorderWidth = -1 }, "border_width"},
		{"negative moving area", func(c *Config) { c.MovingArea = -1 }, "moving_area"},
		{"bad cursor", func(c *Config) { c.MoveCursor = "hand" }, "move_cursor"},
		{"bad snap side", func(c *Config) { c.SnapSides = []string{"middle"} }, "snap_sides"},
		{"bad maximize side", func(c *Config) { c.MaximizeSides = []string{"up"} }, "maximize_sides"},
		{"empty property", func(c *Config) { c.MaximizeButtonProperty = " " }, "maximize_button_property"},
		{"bad frame color", func(c *Config) { c.ResizeFrameColor = "#12" }, "resize_frame_color"},
		{"zero stroke", func(c *Config) { c.Preview.ResizeStroke = 0 }, "preview.resize_stroke"},
		{"empty name", func(c *Config) { c.Window.Name = "" }, "window.name"},
		{"width below min", func(c *Config) { c.Window.Width = 10 }, "window.width"},
		{"height below min", func(c *Config) { c.Window.Height = 10 }, "window.height"},
		{"negative checkpoint", func(c *Config) { c.CheckpointInterval = -time.Second }, "checkpoint_interval"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Path != tt.path {
				t.Fatalf("path = %q, want %q", verr.Path, tt.path)
			}
		})
	}
}

func TestLoadFromPath_IncludeDirectoryOrderAndMainOverrides(t *testing.T) {
	dir := t.TempDir()

	configD := filepath.Join(dir, "config.d")
	if err := os.MkdirAll(configD, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeConfig(t, configD, "10-base.yaml", "border_width: 5\nwindow:\n  width: 900\n")
	writeConfig(t, configD, "20-override.yaml", "border_width: 6\n")

	main := strings.Join([]string{
		"include:",
		"  - config.d",
		"border_width: 7",
		"window:",
		"  height: 700",
		"",
	}, "\n")
	path := writeConfig(t, dir, "config.yaml", main)

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.BorderWidth != 7 {
		t.Fatalf("expected border_width to be 7, got %d", res.Config.BorderWidth)
	}
	if res.Config.Window.Width != 900 || res.Config.Window.Height != 700 {
		t.Fatalf("sections should merge field by field, got %+v", res.Config.Window)
	}
	if len(res.Files) != 3 {
		t.Fatalf("expected 3 files, got %v", res.Files)
	}
}

func TestLoadFromPath_IncludeMissingPathHasContext(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "include:\n  - missing.yaml\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "include") || !strings.Contains(err.Error(), "missing.yaml") {
		t.Fatalf("expected include error, got %v", err)
	}
	if !strings.Contains(err.Error(), path+":") {
		t.Fatalf("expected error to include file:line:col prefix, got %v", err)
	}
}

func TestLoadFromPath_IncludeCycleDetection(t *testing.T) {
	dir := t.TempDir()
	a := writeConfig(t, dir, "a.yaml", "include: b.yaml\n")
	writeConfig(t, dir, "b.yaml", "include: a.yaml\n")

	_, err := LoadFromPath(a)
	if err == nil {
		t.Fatalf("expected cycle error")
	}
	if !strings.Contains(err.Error(), "include cycle") {
		t.Fatalf("expected cycle error, got %v", err)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.BorderWidth = 9
	cfg.Flags.SaveGeometry = false
	cfg.CheckpointInterval = 45 * time.Second
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load saved file: %v", err)
	}
	if res.Config.BorderWidth != 9 || res.Config.Flags.SaveGeometry || res.Config.CheckpointInterval != 45*time.Second {
		t.Fatalf("round trip mismatch: %+v", res.Config)
	}

	cfg.LogLevel = "loud"
	if err := cfg.SaveTo(path); err == nil {
		t.Fatalf("expected invalid config to be rejected")
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"#000000", color.NRGBA{A: 0xff}, false},
		{"6b9dfa50", color.NRGBA{R: 0x6b, G: 0x9d, B: 0xfa, A: 0x50}, false},
		{" #FFFFFF ", color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, false},
		{"#fff", color.NRGBA{}, true},
		{"#gggggg", color.NRGBA{}, true},
		{"", color.NRGBA{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHexColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("ParseHexColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
			if !tt.wantErr {
				if back, _ := ParseHexColor(FormatHexColor(got)); back != got {
					t.Fatalf("FormatHexColor round trip: %v -> %q", got, FormatHexColor(got))
				}
			}
		})
	}
}

func TestDefaultConfigPathUsesXDGConfigHome(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", td)
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	got, err := DefaultConfigPath()
	if err != nil {
		t.Fatalf("DefaultConfigPath: %v", err)
	}
	if want := filepath.Join(td, "framewm", "config.yaml"); got != want {
		t.Fatalf("DefaultConfigPath = %q, want %q", got, want)
	}
}
