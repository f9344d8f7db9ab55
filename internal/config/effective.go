package config

import (
	"fmt"
)

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// BuildEffectiveConfig layers raw over the defaults.
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	if raw.BorderWidth != nil {
		cfg.BorderWidth = *raw.BorderWidth
	}
	if raw.MovingArea != nil {
		cfg.MovingArea = *raw.MovingArea
	}
	if raw.MoveCursor != nil {
		cfg.MoveCursor = *raw.MoveCursor
	}
	if raw.SnapSides != nil {
		cfg.SnapSides = append([]string(nil), raw.SnapSides...)
	}
	if raw.MaximizeSides != nil {
		cfg.MaximizeSides = append([]string(nil), raw.MaximizeSides...)
	}
	if raw.Flags != nil {
		if raw.Flags.DrawResizePreview != nil {
			cfg.Flags.DrawResizePreview = *raw.Flags.DrawResizePreview
		}
		if raw.Flags.SaveGeometry != nil {
			cfg.Flags.SaveGeometry = *raw.Flags.SaveGeometry
		}
		if raw.Flags.HalfSnap != nil {
			cfg.Flags.HalfSnap = *raw.Flags.HalfSnap
		}
	}
	if raw.MaximizeButtonProperty != nil {
		cfg.MaximizeButtonProperty = *raw.MaximizeButtonProperty
	}
	if raw.ResizeFrameColor != nil {
		cfg.ResizeFrameColor = *raw.ResizeFrameColor
	}
	if raw.Preview != nil {
		if raw.Preview.ResizeColor != nil {
			cfg.Preview.ResizeColor = *raw.Preview.ResizeColor
		}
		if raw.Preview.ResizeStroke != nil {
			cfg.Preview.ResizeStroke = *raw.Preview.ResizeStroke
		}
		if raw.Preview.SnapColor != nil {
			cfg.Preview.SnapColor = *raw.Preview.SnapColor
		}
	}
	if raw.Window != nil {
		w := raw.Window
		if w.Name != nil {
			cfg.Window.Name = *w.Name
		}
		if w.Title != nil {
			cfg.Window.Title = *w.Title
		}
		if w.Width != nil {
			cfg.Window.Width = *w.Width
		}
		if w.Height != nil {
			cfg.Window.Height = *w.Height
		}
		if w.MinWidth != nil {
			cfg.Window.MinWidth = *w.MinWidth
		}
		if w.MinHeight != nil {
			cfg.Window.MinHeight = *w.MinHeight
		}
		if w.Background != nil {
			cfg.Window.Background = *w.Background
		}
	}
	if raw.Hotkeys != nil {
		h := raw.Hotkeys
		if h.Maximize != nil {
			cfg.Hotkeys.Maximize = *h.Maximize
		}
		if h.Minimize != nil {
			cfg.Hotkeys.Minimize = *h.Minimize
		}
		if h.Quit != nil {
			cfg.Hotkeys.Quit = *h.Quit
		}
		if h.SnapLeft != nil {
			cfg.Hotkeys.SnapLeft = *h.SnapLeft
		}
		if h.SnapRight != nil {
			cfg.Hotkeys.SnapRight = *h.SnapRight
		}
	}
	if raw.CheckpointInterval != nil {
		cfg.CheckpointInterval = *raw.CheckpointInterval
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}

	// A title defaults to the object name when only the name was given.
	if raw.Window != nil && raw.Window.Name != nil && raw.Window.Title == nil {
		cfg.Window.Title = cfg.Window.Name
	}

	return cfg, nil
}
