package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawFlags struct {
	DrawResizePreview *bool `yaml:"draw_resize_preview"`
	SaveGeometry      *bool `yaml:"save_geometry"`
	HalfSnap          *bool `yaml:"half_snap"`
}

type RawPreview struct {
	ResizeColor  *string `yaml:"resize_color"`
	ResizeStroke *int    `yaml:"resize_stroke"`
	SnapColor    *string `yaml:"snap_color"`
}

type RawWindow struct {
	Name       *string `yaml:"name"`
	Title      *string `yaml:"title"`
	Width      *int    `yaml:"width"`
	Height     *int    `yaml:"height"`
	MinWidth   *int    `yaml:"min_width"`
	MinHeight  *int    `yaml:"min_height"`
	Background *string `yaml:"background"`
}

type RawHotkeys struct {
	Maximize  *string `yaml:"maximize"`
	Minimize  *string `yaml:"minimize"`
	Quit      *string `yaml:"quit"`
	SnapLeft  *string `yaml:"snap_left"`
	SnapRight *string `yaml:"snap_right"`
}

// RawConfig is one YAML file as written. Nil fields were not set and fall
// through to includes or defaults.
type RawConfig struct {
	Include IncludeList `yaml:"include"`

	BorderWidth            *int           `yaml:"border_width"`
	MovingArea             *int           `yaml:"moving_area"`
	MoveCursor             *string        `yaml:"move_cursor"`
	SnapSides              []string       `yaml:"snap_sides"`
	MaximizeSides          []string       `yaml:"maximize_sides"`
	Flags                  *RawFlags      `yaml:"flags"`
	MaximizeButtonProperty *string        `yaml:"maximize_button_property"`
	ResizeFrameColor       *string        `yaml:"resize_frame_color"`
	Preview                *RawPreview    `yaml:"preview"`
	Window                 *RawWindow     `yaml:"window"`
	Hotkeys                *RawHotkeys    `yaml:"hotkeys"`
	CheckpointInterval     *time.Duration `yaml:"checkpoint_interval"`
	LogLevel               *string        `yaml:"log_level"`
}

// merge returns c with every field set in overlay replacing c's value.
func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c
	out.Include = nil

	if overlay.BorderWidth != nil {
		out.BorderWidth = overlay.BorderWidth
	}
	if overlay.MovingArea != nil {
		out.MovingArea = overlay.MovingArea
	}
	if overlay.MoveCursor != nil {
		out.MoveCursor = overlay.MoveCursor
	}
	if overlay.SnapSides != nil {
		out.SnapSides = append([]string(nil), overlay.SnapSides...)
	}
	if overlay.MaximizeSides != nil {
		out.MaximizeSides = append([]string(nil), overlay.MaximizeSides...)
	}
	if overlay.Flags != nil {
		base := RawFlags{}
		if out.Flags != nil {
			base = *out.Flags
		}
		merged := mergeRawFlags(base, *overlay.Flags)
		out.Flags = &merged
	}
	if overlay.MaximizeButtonProperty != nil {
		out.MaximizeButtonProperty = overlay.MaximizeButtonProperty
	}
	if overlay.ResizeFrameColor != nil {
		out.ResizeFrameColor = overlay.ResizeFrameColor
	}
	if overlay.Preview != nil {
		base := RawPreview{}
		if out.Preview != nil {
			base = *out.Preview
		}
		merged := mergeRawPreview(base, *overlay.Preview)
		out.Preview = &merged
	}
	if overlay.Window != nil {
		base := RawWindow{}
		if out.Window != nil {
			base = *out.Window
		}
		merged := mergeRawWindow(base, *overlay.Window)
		out.Window = &merged
	}
	if overlay.Hotkeys != nil {
		base := RawHotkeys{}
		if out.Hotkeys != nil {
			base = *out.Hotkeys
		}
		merged := mergeRawHotkeys(base, *overlay.Hotkeys)
		out.Hotkeys = &merged
	}
	if overlay.CheckpointInterval != nil {
		out.CheckpointInterval = overlay.CheckpointInterval
	}
	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}
	return out
}

func mergeRawFlags(base RawFlags, overlay RawFlags) RawFlags {
	if overlay.DrawResizePreview != nil {
		base.DrawResizePreview = overlay.DrawResizePreview
	}
	if overlay.SaveGeometry != nil {
		base.SaveGeometry = overlay.SaveGeometry
	}
	if overlay.HalfSnap != nil {
		base.HalfSnap = overlay.HalfSnap
	}
	return base
}

func mergeRawPreview(base RawPreview, overlay RawPreview) RawPreview {
	if overlay.ResizeColor != nil {
		base.ResizeColor = overlay.ResizeColor
	}
	if overlay.ResizeStroke != nil {
		base.ResizeStroke = overlay.ResizeStroke
	}
	if overlay.SnapColor != nil {
		base.SnapColor = overlay.SnapColor
	}
	return base
}

func mergeRawWindow(base RawWindow, overlay RawWindow) RawWindow {
	if overlay.Name != nil {
		base.Name = overlay.Name
	}
	if overlay.Title != nil {
		base.Title = overlay.Title
	}
	if overlay.Width != nil {
		base.Width = overlay.Width
	}
	if overlay.Height != nil {
		base.Height = overlay.Height
	}
	if overlay.MinWidth != nil {
		base.MinWidth = overlay.MinWidth
	}
	if overlay.MinHeight != nil {
		base.MinHeight = overlay.MinHeight
	}
	if overlay.Background != nil {
		base.Background = overlay.Background
	}
	return base
}

func mergeRawHotkeys(base RawHotkeys, overlay RawHotkeys) RawHotkeys {
	if overlay.Maximize != nil {
		base.Maximize = overlay.Maximize
	}
	if overlay.Minimize != nil {
		base.Minimize = overlay.Minimize
	}
	if overlay.Quit != nil {
		base.Quit = overlay.Quit
	}
	if overlay.SnapLeft != nil {
		base.SnapLeft = overlay.SnapLeft
	}
	if overlay.SnapRight != nil {
		base.SnapRight = overlay.SnapRight
	}
	return base
}
