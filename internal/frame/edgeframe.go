package frame

import "github.com/1broseidon/framewm/internal/geometry"

// edgeFrame receives pointer events over the window's border band.
type edgeFrame struct {
	m       *Manager
	surface EdgeSurface
}

// HandleEvent implements EventHandler.
func (e *edgeFrame) HandleEvent(ev Event) {
	m := e.m
	if m.closed {
		return
	}
	switch ev.Type {
	case EventMouseMove:
		if m.st.mode == ModeResizing {
			m.resizeWindow(ev.Pos)
		} else if ev.Buttons == ButtonNone {
			m.updateCursor(ev.Pos)
		}
	case EventMousePress, EventMouseDoubleClick:
		if ev.Button == ButtonLeft {
			m.beginResize(ev.Pos)
		}
	case EventMouseRelease:
		if ev.Button == ButtonLeft {
			m.endResize()
		}
	}
}

func (m *Manager) updateCursor(p geometry.Point) {
	side := geometry.WindowSide(p, m.win.Geometry(), m.cfg.BorderWidth, m.st.snapSide)
	if shape, ok := cursorFor(side); ok {
		m.edge.surface.SetCursor(shape)
	}
}

// updateMask fits the edge frame to the window and recomputes its input
// region from the snap state.
func (m *Manager) updateMask() {
	g := m.win.Geometry()
	m.edge.surface.SetGeometry(geometry.Rect{Width: g.Width, Height: g.Height})
	m.edge.surface.SetMask(geometry.FrameMask(g.Size(), m.cfg.BorderWidth, m.st.snapSide, m.maximized()))
}

func (m *Manager) beginResize(p geometry.Point) {
	if m.st.mode != ModeIdle {
		return
	}
	g := m.win.Geometry()
	side := geometry.WindowSide(p, g, m.cfg.BorderWidth, m.st.snapSide)
	if side == geometry.SideNone {
		return
	}
	if m.free() {
		m.st.preModify = g
	}
	m.st.reset()
	m.st.captureSide = side
	m.st.captureOffset = geometry.CursorOffset(g, side, p)
	m.st.limit = geometry.ResizeLimit(g, m.win.MinimumSize())
	m.setMode(ModeResizing)
	m.logger.Debug("resize started", "side", side, "geometry", g)

	if m.OnResizeFrameClicked != nil {
		m.OnResizeFrameClicked()
	}
	if m.TestFlag(FlagDrawResizePreview) {
		m.createPreview(PreviewResize, g)
	}
}

// resizeTarget applies the captured drag to r for cursor position p.
func (m *Manager) resizeTarget(r geometry.Rect, p geometry.Point, minSize geometry.Size) geometry.Rect {
	return geometry.ResizeToCursor(r, m.st.captureSide, p.Sub(m.st.captureOffset), m.st.limit, minSize)
}

// resizeWindow handles edge-frame motion during a resize. Without a resize
// preview the window itself follows, and touching the top edge of the
// desktop (not a top corner) shows a full-height hint.
func (m *Manager) resizeWindow(p geometry.Point) {
	if m.preview != nil && m.preview.role == PreviewResize {
		m.preview.setGeometry(m.resizeTarget(m.preview.Geometry(), p, m.preview.minSize))
		return
	}

	g := m.resizeTarget(m.win.Geometry(), p, m.win.MinimumSize())
	m.win.SetGeometry(g)

	avail := m.host.AvailableGeometry()
	onTop := geometry.DesktopSide(p, avail) == geometry.SideTop
	switch {
	case onTop && m.preview == nil:
		m.createPreview(PreviewSnap, geometry.Rect{X: g.X, Y: avail.Y, Width: g.Width, Height: avail.Height})
	case !onTop && m.preview != nil:
		m.destroyPreview()
	}
}

// endResize applies the preview geometry, if any, and returns to idle. It
// is reached from the edge frame, from the resize preview and from a stray
// release on the window.
func (m *Manager) endResize() {
	if m.preview != nil {
		g := m.preview.Geometry()
		m.destroyPreview()
		m.win.SetGeometry(g)
	}
	if m.st.mode == ModeResizing && m.free() {
		m.st.preModify = m.win.Geometry()
	}
	m.toIdle()
	m.updateMask()
}

// createPreview replaces any live preview with a new one of role at r.
// Host failures are logged and leave the manager without a preview.
func (m *Manager) createPreview(role PreviewRole, r geometry.Rect) {
	m.destroyPreview()

	pv := &Preview{m: m, role: role, paint: m.snapPaint}
	if role == PreviewResize {
		pv.paint = m.resizePaint
		pv.minSize = m.win.MinimumSize()
	}
	surface, err := m.host.NewOverlay(pv)
	if err != nil {
		m.logger.Warn("failed to create preview overlay", "role", role, "error", err)
		return
	}
	pv.surface = surface
	if role == PreviewResize {
		surface.SetMinimumSize(pv.minSize)
	}
	surface.SetGeometry(r)
	surface.Show()
	if role == PreviewResize {
		if err := surface.GrabPointer(); err != nil {
			m.logger.Warn("failed to grab pointer for resize preview", "error", err)
		}
	}
	m.preview = pv
	m.logger.Debug("preview created", "role", role, "geometry", r)

	if m.OnSnapPreviewCreated != nil {
		m.OnSnapPreviewCreated()
	}
}

func (m *Manager) destroyPreview() {
	if m.preview == nil {
		return
	}
	pv := m.preview
	m.preview = nil
	pv.surface.Close()
	m.logger.Debug("preview destroyed", "role", pv.role)
}
