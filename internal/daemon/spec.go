package daemon

import (
	"fmt"

	"github.com/1broseidon/framewm/internal/config"
	"github.com/1broseidon/framewm/internal/geometry"
	"github.com/1broseidon/framewm/internal/x11"
)

// windowSpec builds the creation parameters of the managed window, centered
// in the available area.
func windowSpec(w config.WindowConfig, avail geometry.Rect) (x11.WindowSpec, error) {
	bg, err := config.ParseHexColor(w.Background)
	if err != nil {
		return x11.WindowSpec{}, fmt.Errorf("window.background: %w", err)
	}
	size := geometry.Size{Width: w.Width, Height: w.Height}
	r := geometry.Rect{Width: size.Width, Height: size.Height}
	if !avail.Empty() {
		r = geometry.CenteredIn(avail, size)
	}
	title := w.Title
	if title == "" {
		title = w.Name
	}
	return x11.WindowSpec{
		Name:       w.Name,
		Title:      title,
		X:          r.X,
		Y:          r.Y,
		Width:      r.Width,
		Height:     r.Height,
		MinWidth:   w.MinWidth,
		MinHeight:  w.MinHeight,
		Background: uint32(bg.R)<<16 | uint32(bg.G)<<8 | uint32(bg.B),
	}, nil
}
