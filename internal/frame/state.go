package frame

import "github.com/1broseidon/framewm/internal/geometry"

// Mode is the interaction mode of the manager.
type Mode int

const (
	// ModeIdle means no drag is in progress
	ModeIdle Mode = iota
	// ModeMoving means the window follows the pointer
	ModeMoving
	// ModeResizing means an edge or corner follows the pointer
	ModeResizing
)

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeMoving:
		return "moving"
	case ModeResizing:
		return "resizing"
	default:
		return "unknown"
	}
}

// state is the live interaction state of a Manager.
type state struct {
	mode      Mode
	snapSide  geometry.Side
	preModify geometry.Rect // last free-floating geometry

	captureSide   geometry.Side  // edge or corner being dragged
	captureOffset geometry.Point // cursor offset from that edge at press
	limit         geometry.Point // cursor cap keeping the minimum size

	grab            geometry.Point // press point relative to the window origin
	lastPreviewSide geometry.Side
	savedCursor     CursorShape

	firstShowPending bool
}

// reset clears the drag-related fields. Snap side and pre-modify geometry
// survive.
func (s *state) reset() {
	s.captureSide = geometry.SideNone
	s.captureOffset = geometry.Point{}
	s.limit = geometry.Point{}
	s.grab = geometry.Point{}
	s.lastPreviewSide = geometry.SideNone
}

// Status is a snapshot of a manager's state.
type Status struct {
	Name              string
	Mode              Mode
	SnapSide          geometry.Side
	State             WindowState
	Geometry          geometry.Rect
	PreModifyGeometry geometry.Rect
	Flags             Flags
	BorderWidth       int
	PreviewActive     bool
}

// Maximized reports whether the window was maximized.
func (s Status) Maximized() bool { return s.State&StateMaximized != 0 }

// Minimized reports whether the window was minimized.
func (s Status) Minimized() bool { return s.State&StateMinimized != 0 }
