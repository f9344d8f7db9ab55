package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/shape"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window

	hasShape bool
	hasRandr bool
	cursors  map[uint16]xproto.Cursor
}

// NewConnection establishes a connection to the X11 server and initializes required extensions
func NewConnection() (*Connection, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}

	// Initialize keybind module (required for global hotkeys)
	keybind.Initialize(xu)

	c := &Connection{
		XUtil:   xu,
		Root:    xu.RootWin(),
		cursors: make(map[uint16]xproto.Cursor),
	}

	// SHAPE is what makes the edge frame click-through in its interior.
	// Without it the frame falls back to four unshaped strips.
	c.hasShape = shape.Init(xu.Conn()) == nil
	c.hasRandr = randr.Init(xu.Conn()) == nil

	return c, nil
}

// HasShape reports whether the SHAPE extension is available.
func (c *Connection) HasShape() bool { return c.hasShape }

// MainPing starts the X11 event loop in its own goroutine and returns the
// channels described by xevent.MainPing. Callers use the ping channel to run
// work between event batches.
func (c *Connection) MainPing() (before, after, quit chan struct{}) {
	return xevent.MainPing(c.XUtil)
}

// Quit stops the event loop started by MainPing.
func (c *Connection) Quit() {
	xevent.Quit(c.XUtil)
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	for _, cur := range c.cursors {
		xproto.FreeCursor(c.XUtil.Conn(), cur)
	}
	c.XUtil.Conn().Close()
}
