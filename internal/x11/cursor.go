package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xcursor"
)

// Cursor glyphs from the X cursor font used by the frame.
const (
	CursorLeftPtr     = xcursor.LeftPtr
	CursorFleur       = xcursor.Fleur
	CursorSizeHor     = xcursor.SBHDoubleArrow
	CursorSizeVer     = xcursor.SBVDoubleArrow
	CursorTopLeft     = xcursor.TopLeftCorner
	CursorTopRight    = xcursor.TopRightCorner
	CursorBottomLeft  = xcursor.BottomLeftCorner
	CursorBottomRight = xcursor.BottomRightCorner
)

// Cursor returns the font cursor for glyph, creating it on first use.
func (c *Connection) Cursor(glyph uint16) (xproto.Cursor, error) {
	if cur, ok := c.cursors[glyph]; ok {
		return cur, nil
	}
	cur, err := xcursor.CreateCursor(c.XUtil, glyph)
	if err != nil {
		return 0, fmt.Errorf("failed to create cursor %d: %w", glyph, err)
	}
	c.cursors[glyph] = cur
	return cur, nil
}

// SetWindowCursor sets the cursor shown while the pointer is over windowID.
func (c *Connection) SetWindowCursor(windowID xproto.Window, glyph uint16) error {
	cur, err := c.Cursor(glyph)
	if err != nil {
		return err
	}
	return xproto.ChangeWindowAttributesChecked(c.XUtil.Conn(), windowID,
		xproto.CwCursor, []uint32{uint32(cur)}).Check()
}
