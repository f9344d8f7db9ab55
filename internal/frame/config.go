package frame

import (
	"image/color"
	"strings"

	"github.com/1broseidon/framewm/internal/geometry"
)

// Flags toggles optional manager behavior.
type Flags uint

const (
	// FlagDrawResizePreview shows a preview overlay while an edge is dragged
	// and applies the geometry only on release.
	FlagDrawResizePreview Flags = 1 << 0
	// FlagSaveGeometry loads geometry on first show and saves it on close.
	FlagSaveGeometry Flags = 1 << 1
	// FlagHalfSnap makes snapped windows take half the available area.
	FlagHalfSnap Flags = 1 << 2
)

// DefaultFlags is the flag set of a new manager.
const DefaultFlags = FlagDrawResizePreview | FlagSaveGeometry | FlagHalfSnap

func (f Flags) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	if f&FlagDrawResizePreview != 0 {
		parts = append(parts, "draw_resize_preview")
	}
	if f&FlagSaveGeometry != 0 {
		parts = append(parts, "save_geometry")
	}
	if f&FlagHalfSnap != 0 {
		parts = append(parts, "half_snap")
	}
	return strings.Join(parts, "|")
}

const (
	DefaultBorderWidth            = 3
	DefaultMaximizeButtonProperty = "isMaximized"
	DefaultResizeStroke           = 5

	// GeometryKey is the settings key the free-floating geometry is stored
	// under, grouped by window name.
	GeometryKey = "__geometry"
)

var (
	DefaultResizeColor color.Color = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	DefaultSnapColor   color.Color = color.NRGBA{R: 107, G: 157, B: 250, A: 80}
)

// Config holds every tunable of a Manager. It is applied in bulk with
// Manager.ApplyConfig, typically after loading the YAML configuration.
type Config struct {
	BorderWidth            int
	MovingArea             int
	MoveCursor             CursorShape
	SnapSides              geometry.Sides
	MaximizeSides          geometry.Sides
	Flags                  Flags
	MaximizeButtonProperty string

	// ResizeFrameColor fills the edge frame when non-nil.
	ResizeFrameColor color.Color

	ResizeColor  color.Color
	ResizeStroke int
	SnapColor    color.Color
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		BorderWidth:            DefaultBorderWidth,
		MovingArea:             0,
		MoveCursor:             CursorMove,
		SnapSides:              geometry.AllSides,
		MaximizeSides:          0,
		Flags:                  DefaultFlags,
		MaximizeButtonProperty: DefaultMaximizeButtonProperty,
		ResizeColor:            DefaultResizeColor,
		ResizeStroke:           DefaultResizeStroke,
		SnapColor:              DefaultSnapColor,
	}
}
