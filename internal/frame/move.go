package frame

import "github.com/1broseidon/framewm/internal/geometry"

// beginMove starts a window drag when p is inside the drag handle.
func (m *Manager) beginMove(p geometry.Point) {
	if m.st.mode != ModeIdle {
		return
	}
	g := m.win.Geometry()
	if m.cfg.MovingArea > 0 && p.Y >= g.Y+m.cfg.MovingArea {
		return
	}
	m.st.reset()
	m.setMode(ModeMoving)
	m.st.savedCursor = m.win.Cursor()
	m.st.grab = p.Sub(g.TopLeft())
	if m.free() {
		m.st.preModify = g
	}
}

// dragMove follows the pointer during a window drag. A maximized or snapped
// window first drops back to its free size centered under the cursor.
func (m *Manager) dragMove(p geometry.Point) {
	m.win.SetCursor(m.cfg.MoveCursor)
	avail := m.host.AvailableGeometry()
	bw := m.cfg.BorderWidth
	pre := m.st.preModify

	switch {
	case m.maximized():
		m.win.SetState(m.win.State() &^ StateMaximized)
		g := geometry.Rect{X: p.X - pre.Width/2, Y: p.Y - 2*bw, Width: pre.Width, Height: pre.Height}
		g = geometry.ClampToAvailable(g, avail)
		m.win.SetGeometry(g)
		m.st.grab = p.Sub(g.TopLeft())
		m.logger.Debug("unmaximized by drag", "geometry", g)
		m.updateMask()
	case m.st.snapSide != geometry.SideNone:
		g := geometry.Rect{X: p.X - pre.Width/2, Y: p.Y - bw, Width: pre.Width, Height: pre.Height}
		g = geometry.ClampToAvailable(g, avail)
		m.win.SetGeometry(g)
		m.st.grab = p.Sub(g.TopLeft())
		m.logger.Debug("unsnapped by drag", "side", m.st.snapSide, "geometry", g)
		m.st.snapSide = geometry.SideNone
		m.updateMask()
	default:
		side := geometry.DesktopSide(p, avail)
		if side != m.st.lastPreviewSide {
			m.st.lastPreviewSide = side
			m.updateSnapPreview(side, avail)
		}
	}

	m.win.Move(p.Sub(m.st.grab))
}

// updateSnapPreview shows, moves or retires the snap hint for side.
func (m *Manager) updateSnapPreview(side geometry.Side, avail geometry.Rect) {
	var target geometry.Rect
	switch {
	case m.cfg.MaximizeSides.Has(side):
		target = avail
	case m.cfg.SnapSides.Has(side):
		target = geometry.SnapRect(avail, m.win.Geometry().Size(), side, m.TestFlag(FlagHalfSnap))
	default:
		m.destroyPreview()
		m.st.lastPreviewSide = geometry.SideNone
		return
	}
	if m.preview == nil {
		m.createPreview(PreviewSnap, target)
		return
	}
	m.preview.setGeometry(target)
}

// endMove finishes a window drag. The window maximizes or snaps only when
// a hint was showing and the release point p is over a trigger side.
func (m *Manager) endMove(p geometry.Point) {
	m.win.SetCursor(m.st.savedCursor)
	hinted := m.preview != nil
	m.destroyPreview()

	avail := m.host.AvailableGeometry()
	side := geometry.DesktopSide(p, avail)
	switch {
	case hinted && m.cfg.MaximizeSides.Has(side):
		m.toIdle()
		m.win.SetState((m.win.State() &^ StateMinimized) | StateMaximized)
		m.logger.Debug("maximized by drag", "side", side)
		m.updateMask()
		return
	case hinted && m.cfg.SnapSides.Has(side):
		target := geometry.SnapRect(avail, m.win.Geometry().Size(), side, m.TestFlag(FlagHalfSnap))
		m.st.snapSide = side
		m.win.SetGeometry(target)
		m.logger.Debug("snapped by drag", "side", side, "geometry", target)
	case m.free():
		m.st.preModify = m.win.Geometry()
	}

	m.toIdle()
	m.updateMask()
}
