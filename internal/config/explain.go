package config

import (
	"fmt"
	"strings"
)

// Explain returns the effective value at the given YAML-like path and its source.
//
// Supported paths include:
//
//	border_width
//	moving_area
//	move_cursor
//	snap_sides
//	maximize_sides
//	flags.draw_resize_preview
//	maximize_button_property
//	resize_frame_color
//	preview.resize_color
//	window.name
//	window.min_width
//	hotkeys.maximize
//	checkpoint_interval
//	log_level
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}

	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault, Name: "defaults"}, nil
}

func lookupValue(cfg *Config, path string) (any, error) {
	parts := strings.Split(path, ".")
	switch parts[0] {
	case "border_width":
		return leaf(parts, cfg.BorderWidth)
	case "moving_area":
		return leaf(parts, cfg.MovingArea)
	case "move_cursor":
		return leaf(parts, cfg.MoveCursor)
	case "snap_sides":
		return leaf(parts, cfg.SnapSides)
	case "maximize_sides":
		return leaf(parts, cfg.MaximizeSides)
	case "maximize_button_property":
		return leaf(parts, cfg.MaximizeButtonProperty)
	case "resize_frame_color":
		return leaf(parts, cfg.ResizeFrameColor)
	case "checkpoint_interval":
		return leaf(parts, cfg.CheckpointInterval.String())
	case "log_level":
		return leaf(parts, cfg.LogLevel)
	case "flags":
		if len(parts) == 1 {
			return cfg.Flags, nil
		}
		if len(parts) != 2 {
			break
		}
		switch parts[1] {
		case "draw_resize_preview":
			return cfg.Flags.DrawResizePreview, nil
		case "save_geometry":
			return cfg.Flags.SaveGeometry, nil
		case "half_snap":
			return cfg.Flags.HalfSnap, nil
		}
	case "preview":
		if len(parts) == 1 {
			return cfg.Preview, nil
		}
		if len(parts) != 2 {
			break
		}
		switch parts[1] {
		case "resize_color":
			return cfg.Preview.ResizeColor, nil
		case "resize_stroke":
			return cfg.Preview.ResizeStroke, nil
		case "snap_color":
			return cfg.Preview.SnapColor, nil
		}
	case "window":
		if len(parts) == 1 {
			return cfg.Window, nil
		}
		if len(parts) != 2 {
			break
		}
		switch parts[1] {
		case "name":
			return cfg.Window.Name, nil
		case "title":
			return cfg.Window.Title, nil
		case "width":
			return cfg.Window.Width, nil
		case "height":
			return cfg.Window.Height, nil
		case "min_width":
			return cfg.Window.MinWidth, nil
		case "min_height":
			return cfg.Window.MinHeight, nil
		case "background":
			return cfg.Window.Background, nil
		}
	case "hotkeys":
		if len(parts) == 1 {
			return cfg.Hotkeys, nil
		}
		if len(parts) != 2 {
			break
		}
		switch parts[1] {
		case "maximize":
			return cfg.Hotkeys.Maximize, nil
		case "minimize":
			return cfg.Hotkeys.Minimize, nil
		case "quit":
			return cfg.Hotkeys.Quit, nil
		case "snap_left":
			return cfg.Hotkeys.SnapLeft, nil
		case "snap_right":
			return cfg.Hotkeys.SnapRight, nil
		}
	}
	return nil, fmt.Errorf("unknown config path %q", path)
}

func leaf(parts []string, v any) (any, error) {
	if len(parts) != 1 {
		return nil, fmt.Errorf("unknown config path %q", strings.Join(parts, "."))
	}
	return v, nil
}
