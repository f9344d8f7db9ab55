package frame

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/1broseidon/framewm/internal/geometry"
)

// WindowState is a set of window manager states. Zero means normal.
type WindowState uint

const (
	StateNormal     WindowState = 0
	StateMinimized  WindowState = 1 << 0
	StateMaximized  WindowState = 1 << 1
	StateFullScreen WindowState = 1 << 2
)

func (s WindowState) String() string {
	if s == StateNormal {
		return "normal"
	}
	var parts []string
	if s&StateMinimized != 0 {
		parts = append(parts, "minimized")
	}
	if s&StateMaximized != 0 {
		parts = append(parts, "maximized")
	}
	if s&StateFullScreen != 0 {
		parts = append(parts, "fullscreen")
	}
	return strings.Join(parts, "|")
}

// CursorShape is a pointer shape hint.
type CursorShape int

const (
	CursorArrow CursorShape = iota
	CursorMove
	CursorSizeHor
	CursorSizeVer
	CursorSizeFDiag
	CursorSizeBDiag
)

var cursorNames = map[CursorShape]string{
	CursorArrow:     "arrow",
	CursorMove:      "move",
	CursorSizeHor:   "size_hor",
	CursorSizeVer:   "size_ver",
	CursorSizeFDiag: "size_fdiag",
	CursorSizeBDiag: "size_bdiag",
}

func (c CursorShape) String() string {
	if name, ok := cursorNames[c]; ok {
		return name
	}
	return fmt.Sprintf("CursorShape(%d)", int(c))
}

// ParseCursorShape converts a name such as "size_hor" into a CursorShape.
func ParseCursorShape(name string) (CursorShape, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for shape, n := range cursorNames {
		if n == key {
			return shape, nil
		}
	}
	return CursorArrow, fmt.Errorf("unknown cursor shape %q", name)
}

// cursorFor maps a border side to its resize cursor. ok is false for
// SideNone, in which case the cursor is left alone.
func cursorFor(side geometry.Side) (CursorShape, bool) {
	switch side {
	case geometry.SideLeft, geometry.SideRight:
		return CursorSizeHor, true
	case geometry.SideTop, geometry.SideBottom:
		return CursorSizeVer, true
	case geometry.SideTopLeft, geometry.SideBottomRight:
		return CursorSizeFDiag, true
	case geometry.SideTopRight, geometry.SideBottomLeft:
		return CursorSizeBDiag, true
	}
	return CursorArrow, false
}

// MouseButton is a pointer button. Values are bits so Event.Buttons can
// carry the held set.
type MouseButton uint

const (
	ButtonNone   MouseButton = 0
	ButtonLeft   MouseButton = 1 << 0
	ButtonMiddle MouseButton = 1 << 1
	ButtonRight  MouseButton = 1 << 2
)

// EventType identifies what an Event reports.
type EventType int

const (
	EventMouseMove EventType = iota
	EventMousePress
	EventMouseDoubleClick
	EventMouseRelease
	EventResize
	EventShow
	EventStateChange
	EventChildAdded
)

func (t EventType) String() string {
	switch t {
	case EventMouseMove:
		return "mouse_move"
	case EventMousePress:
		return "mouse_press"
	case EventMouseDoubleClick:
		return "mouse_double_click"
	case EventMouseRelease:
		return "mouse_release"
	case EventResize:
		return "resize"
	case EventShow:
		return "show"
	case EventStateChange:
		return "state_change"
	case EventChildAdded:
		return "child_added"
	default:
		return "unknown"
	}
}

// Event is a toolkit event delivered to the manager, the edge frame or a
// preview. Pos is in root (screen) coordinates.
type Event struct {
	Type     EventType
	Button   MouseButton // button that changed, for press and release
	Buttons  MouseButton // buttons held during the event
	Pos      geometry.Point
	OldState WindowState // previous state, for EventStateChange
}

// Window is the frameless top-level window being managed.
type Window interface {
	// Name identifies the window across sessions.
	Name() string
	Geometry() geometry.Rect
	SetGeometry(r geometry.Rect)
	Move(p geometry.Point)
	MinimumSize() geometry.Size
	State() WindowState
	SetState(s WindowState)
	Cursor() CursorShape
	SetCursor(c CursorShape)
	Visible() bool
}

// EventHandler receives events delivered to a surface.
type EventHandler interface {
	HandleEvent(ev Event)
}

// OverlayHandler receives events and paint requests for an overlay.
type OverlayHandler interface {
	EventHandler
	Paint(p Painter)
}

// EdgeSurface is the input-only child covering the managed window's border
// band. Geometry and mask are in window-local coordinates.
type EdgeSurface interface {
	SetGeometry(r geometry.Rect)
	SetMask(mask geometry.Region)
	SetCursor(c CursorShape)
	// SetFill paints the masked area with c. A nil color keeps it invisible.
	SetFill(c color.Color)
	Raise()
	Close()
}

// OverlaySurface is a frameless translucent top-level helper window.
type OverlaySurface interface {
	SetGeometry(r geometry.Rect)
	Geometry() geometry.Rect
	SetMinimumSize(s geometry.Size)
	// GrabPointer routes all pointer events to the overlay until it closes.
	GrabPointer() error
	Show()
	// Update schedules a repaint through OverlayHandler.Paint.
	Update()
	Close()
}

// Painter is the drawing surface handed to paint callbacks. Coordinates are
// local to the overlay.
type Painter interface {
	Size() geometry.Size
	FillRect(r geometry.Rect, c color.Color)
	StrokeRect(r geometry.Rect, c color.Color, width int)
}

// Host provides the toolkit services the manager depends on.
type Host interface {
	// AvailableGeometry returns the primary screen's usable area.
	AvailableGeometry() geometry.Rect
	NewEdgeSurface(win Window, h EventHandler) (EdgeSurface, error)
	NewOverlay(h OverlayHandler) (OverlaySurface, error)
	Quit()
}

// Settings persists rectangles keyed by group and key.
type Settings interface {
	// Rect returns the stored value. ok is false when nothing is stored.
	Rect(group, key string) (r geometry.Rect, ok bool, err error)
	SetRect(group, key string, r geometry.Rect) error
}

// Button is an application-provided push button. Implementations must be
// comparable, typically pointers.
type Button interface {
	// OnClick registers fn and returns a function that removes it.
	OnClick(fn func()) (disconnect func())
	SetProperty(name string, value bool)
	// RefreshStyle re-applies the button's style after a property change.
	RefreshStyle()
}
