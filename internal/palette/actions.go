package palette

import (
	"fmt"
	"strings"

	"github.com/1broseidon/framewm/internal/geometry"
	"github.com/1broseidon/framewm/internal/ipc"
)

// Action is a frame command chosen from the menu.
type Action struct {
	Verb string // maximize, minimize, restore, snap, save, reload, quit
	Side geometry.Side
}

const snapPrefix = "snap:"

var sideIcons = map[geometry.Side]string{
	geometry.SideLeft:        "go-previous",
	geometry.SideRight:       "go-next",
	geometry.SideTop:         "go-up",
	geometry.SideBottom:      "go-down",
	geometry.SideTopLeft:     "go-top",
	geometry.SideTopRight:    "go-top",
	geometry.SideBottomLeft:  "go-bottom",
	geometry.SideBottomRight: "go-bottom",
}

// FrameMenu builds the action tree for a running frame. The current
// maximize and snap state is highlighted.
func FrameMenu(status *ipc.StatusData) []MenuItem {
	maxLabel := "Maximize"
	if status != nil && status.Maximized {
		maxLabel = "Unmaximize"
	}

	var current geometry.Side
	if status != nil {
		current, _ = geometry.ParseSide(status.SnapSide)
	}

	sides := geometry.AllSides.List()
	snap := make([]MenuItem, 0, len(sides))
	for _, side := range sides {
		snap = append(snap, MenuItem{
			Label:    sideLabel(side.String()),
			Action:   snapPrefix + side.String(),
			Icon:     sideIcons[side],
			IsActive: side == current && current != geometry.SideNone,
		})
	}

	return []MenuItem{
		{Label: maxLabel, Action: "maximize", Icon: "window-maximize", IsActive: status != nil && status.Maximized},
		{Label: "Minimize", Action: "minimize", Icon: "window-minimize"},
		{Label: "Restore", Action: "restore", Icon: "window-restore"},
		{Label: "Snap", Icon: "view-grid", IsActive: current != geometry.SideNone, Submenu: snap},
		{Label: "────────", IsDivider: true},
		{Label: "Save geometry", Action: "save", Icon: "document-save"},
		{Label: "Reload config", Action: "reload", Icon: "view-refresh"},
		{Label: "Close", Action: "quit", Icon: "window-close"},
	}
}

// StatusMessage is the one-line summary shown above the menu.
func StatusMessage(status *ipc.StatusData) string {
	if status == nil {
		return ""
	}
	state := status.State
	switch {
	case status.Maximized:
		state = "maximized"
	case status.SnapSide != "" && status.SnapSide != "none":
		state = "snapped " + status.SnapSide
	}
	return fmt.Sprintf("%s: %s %dx%d", status.Name, state, status.Geometry.Width, status.Geometry.Height)
}

// ParseAction decodes a menu action string.
func ParseAction(s string) (Action, error) {
	if name, ok := strings.CutPrefix(s, snapPrefix); ok {
		side, err := geometry.ParseSide(name)
		if err != nil {
			return Action{}, err
		}
		if side == geometry.SideNone {
			return Action{}, fmt.Errorf("snap action without a side")
		}
		return Action{Verb: "snap", Side: side}, nil
	}
	switch s {
	case "maximize", "minimize", "restore", "save", "reload", "quit":
		return Action{Verb: s}, nil
	}
	return Action{}, fmt.Errorf("unknown action %q", s)
}

func sideLabel(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
