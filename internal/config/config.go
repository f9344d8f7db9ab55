package config

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/1broseidon/framewm/internal/frame"
	"github.com/1broseidon/framewm/internal/geometry"
	"gopkg.in/yaml.v3"
)

// FlagsConfig mirrors frame.Flags as individual switches.
type FlagsConfig struct {
	DrawResizePreview bool `yaml:"draw_resize_preview"`
	SaveGeometry      bool `yaml:"save_geometry"`
	HalfSnap          bool `yaml:"half_snap"`
}

// PreviewConfig styles the default preview paint callbacks.
type PreviewConfig struct {
	ResizeColor  string `yaml:"resize_color"`
	ResizeStroke int    `yaml:"resize_stroke"`
	SnapColor    string `yaml:"snap_color"`
}

// WindowConfig describes the window created by `framewm run`.
type WindowConfig struct {
	Name       string `yaml:"name"`
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	MinWidth   int    `yaml:"min_width"`
	MinHeight  int    `yaml:"min_height"`
	Background string `yaml:"background"`
}

// HotkeyConfig holds global key bindings. An empty binding is disabled.
type HotkeyConfig struct {
	Maximize  string `yaml:"maximize"`
	Minimize  string `yaml:"minimize"`
	Quit      string `yaml:"quit"`
	SnapLeft  string `yaml:"snap_left"`
	SnapRight string `yaml:"snap_right"`
}

// Config holds the application configuration.
type Config struct {
	BorderWidth            int           `yaml:"border_width"`
	MovingArea             int           `yaml:"moving_area"`
	MoveCursor             string        `yaml:"move_cursor"`
	SnapSides              []string      `yaml:"snap_sides"`
	MaximizeSides          []string      `yaml:"maximize_sides"`
	Flags                  FlagsConfig   `yaml:"flags"`
	MaximizeButtonProperty string        `yaml:"maximize_button_property"`
	ResizeFrameColor       string        `yaml:"resize_frame_color"`
	Preview                PreviewConfig `yaml:"preview"`
	Window                 WindowConfig  `yaml:"window"`
	Hotkeys                HotkeyConfig  `yaml:"hotkeys"`
	CheckpointInterval     time.Duration `yaml:"checkpoint_interval"`
	LogLevel               string        `yaml:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		BorderWidth:   frame.DefaultBorderWidth,
		MovingArea:    0,
		MoveCursor:    frame.CursorMove.String(),
		SnapSides:     geometry.AllSides.Names(),
		MaximizeSides: []string{},
		Flags: FlagsConfig{
			DrawResizePreview: true,
			SaveGeometry:      true,
			HalfSnap:          true,
		},
		MaximizeButtonProperty: frame.DefaultMaximizeButtonProperty,
		ResizeFrameColor:       "",
		Preview: PreviewConfig{
			ResizeColor:  "#000000",
			ResizeStroke: frame.DefaultResizeStroke,
			SnapColor:    "#6b9dfa50",
		},
		Window: WindowConfig{
			Name:       "framewm",
			Title:      "framewm",
			Width:      800,
			Height:     600,
			MinWidth:   200,
			MinHeight:  150,
			Background: "#2b2b2b",
		},
		Hotkeys: HotkeyConfig{
			Maximize:  "Mod4-Up",
			Minimize:  "Mod4-Down",
			SnapLeft:  "Mod4-Left",
			SnapRight: "Mod4-Right",
		},
		CheckpointInterval: 30 * time.Second,
		LogLevel:           "info",
	}
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo validates c and writes it to path as YAML.
func (c *Config) SaveTo(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	if c.BorderWidth < 0 {
		return &ValidationError{Path: "border_width", Err: fmt.Errorf("border_width must be >= 0")}
	}
	if c.MovingArea < 0 {
		return &ValidationError{Path: "moving_area", Err: fmt.Errorf("moving_area must be >= 0")}
	}
	if _, err := frame.ParseCursorShape(c.MoveCursor); err != nil {
		return &ValidationError{Path: "move_cursor", Err: err}
	}
	if _, err := geometry.ParseSides(c.SnapSides); err != nil {
		return &ValidationError{Path: "snap_sides", Err: err}
	}
	if _, err := geometry.ParseSides(c.MaximizeSides); err != nil {
		return &ValidationError{Path: "maximize_sides", Err: err}
	}
	if strings.TrimSpace(c.MaximizeButtonProperty) == "" {
		return &ValidationError{Path: "maximize_button_property", Err: fmt.Errorf("maximize_button_property is required")}
	}
	if c.ResizeFrameColor != "" {
		if _, err := ParseHexColor(c.ResizeFrameColor); err != nil {
			return &ValidationError{Path: "resize_frame_color", Err: err}
		}
	}
	if _, err := ParseHexColor(c.Preview.ResizeColor); err != nil {
		return &ValidationError{Path: "preview.resize_color", Err: err}
	}
	if c.Preview.ResizeStroke < 1 {
		return &ValidationError{Path: "preview.resize_stroke", Err: fmt.Errorf("resize_stroke must be >= 1")}
	}
	if _, err := ParseHexColor(c.Preview.SnapColor); err != nil {
		return &ValidationError{Path: "preview.snap_color", Err: err}
	}
	if strings.TrimSpace(c.Window.Name) == "" {
		return &ValidationError{Path: "window.name", Err: fmt.Errorf("window name is required")}
	}
	if c.Window.MinWidth < 1 || c.Window.MinHeight < 1 {
		return &ValidationError{Path: "window.min_width", Err: fmt.Errorf("minimum size must be at least 1x1")}
	}
	if c.Window.Width < c.Window.MinWidth {
		return &ValidationError{Path: "window.width", Err: fmt.Errorf("width %d is below min_width %d", c.Window.Width, c.Window.MinWidth)}
	}
	if c.Window.Height < c.Window.MinHeight {
		return &ValidationError{Path: "window.height", Err: fmt.Errorf("height %d is below min_height %d", c.Window.Height, c.Window.MinHeight)}
	}
	if _, err := ParseHexColor(c.Window.Background); err != nil {
		return &ValidationError{Path: "window.background", Err: err}
	}
	if c.CheckpointInterval < 0 {
		return &ValidationError{Path: "checkpoint_interval", Err: fmt.Errorf("checkpoint_interval must be >= 0")}
	}
	if _, ok := parseLogLevel(c.LogLevel); !ok {
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	return nil
}

// FrameConfig converts c into the manager's configuration. Maximize sides
// are removed from the snap sides, matching OverrideMaximizeSides.
func (c *Config) FrameConfig() (frame.Config, error) {
	if err := c.Validate(); err != nil {
		return frame.Config{}, err
	}
	fc := frame.DefaultConfig()
	fc.BorderWidth = c.BorderWidth
	fc.MovingArea = c.MovingArea
	fc.MoveCursor, _ = frame.ParseCursorShape(c.MoveCursor)
	snap, _ := geometry.ParseSides(c.SnapSides)
	maximize, _ := geometry.ParseSides(c.MaximizeSides)
	fc.SnapSides = snap.Without(maximize)
	fc.MaximizeSides = maximize
	fc.Flags = c.Flags.Flags()
	fc.MaximizeButtonProperty = c.MaximizeButtonProperty
	if c.ResizeFrameColor != "" {
		fc.ResizeFrameColor, _ = ParseHexColor(c.ResizeFrameColor)
	}
	fc.ResizeColor, _ = ParseHexColor(c.Preview.ResizeColor)
	fc.ResizeStroke = c.Preview.ResizeStroke
	fc.SnapColor, _ = ParseHexColor(c.Preview.SnapColor)
	return fc, nil
}

// Flags folds the switches into frame.Flags.
func (f FlagsConfig) Flags() frame.Flags {
	var out frame.Flags
	if f.DrawResizePreview {
		out |= frame.FlagDrawResizePreview
	}
	if f.SaveGeometry {
		out |= frame.FlagSaveGeometry
	}
	if f.HalfSnap {
		out |= frame.FlagHalfSnap
	}
	return out
}

// SlogLevel returns the slog level for log_level. Unknown values map to info.
func (c *Config) SlogLevel() slog.Level {
	level, _ := parseLogLevel(c.LogLevel)
	return level
}

func parseLogLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa". The leading '#' is optional.
func ParseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: want #rrggbb or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// FormatHexColor is the inverse of ParseHexColor. Opaque colors omit alpha.
func FormatHexColor(c color.Color) string {
	if c == nil {
		return ""
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}
