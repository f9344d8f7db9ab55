package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/motif"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// EWMH state atoms used by the frame.
const (
	StateMaximizedVert = "_NET_WM_STATE_MAXIMIZED_VERT"
	StateMaximizedHorz = "_NET_WM_STATE_MAXIMIZED_HORZ"
	StateHidden        = "_NET_WM_STATE_HIDDEN"
	StateFullscreen    = "_NET_WM_STATE_FULLSCREEN"
)

// _NET_WM_STATE client message actions.
const (
	stateRemove = 0
	stateAdd    = 1
)

// ClientEventMask is the event mask selected on managed top-level windows.
const ClientEventMask = xproto.EventMaskStructureNotify |
	xproto.EventMaskSubstructureNotify |
	xproto.EventMaskPropertyChange |
	xproto.EventMaskExposure |
	xproto.EventMaskButtonPress |
	xproto.EventMaskButtonRelease |
	xproto.EventMaskPointerMotion

// WindowSpec describes a top-level window without window-manager decorations.
type WindowSpec struct {
	Name       string // WM_CLASS instance, also the settings group
	Title      string
	X, Y       int
	Width      int
	Height     int
	MinWidth   int
	MinHeight  int
	Background uint32
}

// CreateFramelessWindow creates a top-level window that asks the window
// manager for no decorations. The window is not mapped.
func (c *Connection) CreateFramelessWindow(spec WindowSpec) (*xwindow.Window, error) {
	win, err := xwindow.Generate(c.XUtil)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate window id: %w", err)
	}

	err = win.CreateChecked(c.Root, spec.X, spec.Y, spec.Width, spec.Height,
		xproto.CwBackPixel|xproto.CwEventMask,
		spec.Background, ClientEventMask)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	title := spec.Title
	if title == "" {
		title = spec.Name
	}
	if err := icccm.WmNameSet(c.XUtil, win.Id, title); err != nil {
		return nil, fmt.Errorf("failed to set WM_NAME: %w", err)
	}
	// _NET_WM_NAME is best effort; WM_NAME is the fallback every WM reads.
	_ = ewmh.WmNameSet(c.XUtil, win.Id, title)
	_ = ewmh.WmWindowTypeSet(c.XUtil, win.Id, []string{"_NET_WM_WINDOW_TYPE_NORMAL"})

	if err := icccm.WmClassSet(c.XUtil, win.Id, &icccm.WmClass{
		Instance: spec.Name,
		Class:    "Framewm",
	}); err != nil {
		return nil, fmt.Errorf("failed to set WM_CLASS: %w", err)
	}

	if err := motif.WmHintsSet(c.XUtil, win.Id, &motif.Hints{
		Flags:      motif.HintDecorations,
		Decoration: motif.DecorationNone,
	}); err != nil {
		return nil, fmt.Errorf("failed to disable decorations: %w", err)
	}

	if err := c.SetMinimumSize(win.Id, spec.MinWidth, spec.MinHeight); err != nil {
		return nil, err
	}

	if err := icccm.WmProtocolsSet(c.XUtil, win.Id, []string{"WM_DELETE_WINDOW"}); err != nil {
		return nil, fmt.Errorf("failed to set WM_PROTOCOLS: %w", err)
	}

	return win, nil
}

// SetMinimumSize publishes the minimum size through WM_NORMAL_HINTS.
func (c *Connection) SetMinimumSize(windowID xproto.Window, width, height int) error {
	hints, err := icccm.WmNormalHintsGet(c.XUtil, windowID)
	if err != nil {
		hints = &icccm.NormalHints{}
	}
	hints.Flags |= icccm.SizeHintPMinSize
	hints.MinWidth = uint(max(width, 1))
	hints.MinHeight = uint(max(height, 1))
	if err := icccm.WmNormalHintsSet(c.XUtil, windowID, hints); err != nil {
		return fmt.Errorf("failed to set WM_NORMAL_HINTS: %w", err)
	}
	return nil
}

// MinimumSize reads the minimum size from WM_NORMAL_HINTS. Windows without
// the hint report 1x1.
func (c *Connection) MinimumSize(windowID xproto.Window) (width, height int) {
	hints, err := icccm.WmNormalHintsGet(c.XUtil, windowID)
	if err != nil || hints.Flags&icccm.SizeHintPMinSize == 0 {
		return 1, 1
	}
	return max(int(hints.MinWidth), 1), max(int(hints.MinHeight), 1)
}

// WindowStates returns the window's _NET_WM_STATE atoms as a set.
func (c *Connection) WindowStates(windowID xproto.Window) map[string]bool {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return nil
	}
	set := make(map[string]bool, len(states))
	for _, state := range states {
		set[state] = true
	}
	return set
}

// SetMaximized asks the window manager to add or remove both maximized
// states in one request.
func (c *Connection) SetMaximized(windowID xproto.Window, maximized bool) error {
	action := stateRemove
	if maximized {
		action = stateAdd
	}
	const sourceIndication = 1 // normal application
	if err := ewmh.WmStateReqExtra(c.XUtil, windowID, action,
		StateMaximizedVert, StateMaximizedHorz, sourceIndication); err != nil {
		return fmt.Errorf("failed to change maximized state: %w", err)
	}
	return nil
}

// SetFullscreen adds or removes _NET_WM_STATE_FULLSCREEN.
func (c *Connection) SetFullscreen(windowID xproto.Window, fullscreen bool) error {
	action := stateRemove
	if fullscreen {
		action = stateAdd
	}
	if err := ewmh.WmStateReq(c.XUtil, windowID, action, StateFullscreen); err != nil {
		return fmt.Errorf("failed to change fullscreen state: %w", err)
	}
	return nil
}

// Iconify asks the window manager to minimize the window (ICCCM 4.1.4).
func (c *Connection) Iconify(windowID xproto.Window) error {
	if err := ewmh.ClientEvent(c.XUtil, windowID, "WM_CHANGE_STATE", icccm.StateIconic); err != nil {
		return fmt.Errorf("failed to iconify window: %w", err)
	}
	return nil
}

// ActivateWindow de-iconifies, raises and focuses the window through
// _NET_ACTIVE_WINDOW, sent as a pager so the window manager honors it.
func (c *Connection) ActivateWindow(windowID xproto.Window) error {
	if err := ewmh.ActiveWindowReq(c.XUtil, windowID); err != nil {
		return fmt.Errorf("failed to activate window: %w", err)
	}
	return nil
}

// Geometry returns the window's position in root coordinates and its size.
func (c *Connection) Geometry(windowID xproto.Window) (x, y, width, height int, err error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("failed to get geometry: %w", err)
	}
	translate, err := xproto.TranslateCoordinates(c.XUtil.Conn(), windowID, c.Root, 0, 0).Reply()
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("failed to translate coordinates: %w", err)
	}
	return int(translate.DstX), int(translate.DstY), int(geom.Width), int(geom.Height), nil
}
