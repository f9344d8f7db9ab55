package frame

import (
	"fmt"

	"github.com/1broseidon/framewm/internal/geometry"
)

// SaveGeometry writes the free-floating geometry to settings. It is a
// no-op without FlagSaveGeometry or a settings store.
func (m *Manager) SaveGeometry() error {
	if m.settings == nil || !m.TestFlag(FlagSaveGeometry) {
		return nil
	}
	g := m.win.Geometry()
	if !m.free() {
		g = m.st.preModify
	}
	if err := m.settings.SetRect(m.win.Name(), GeometryKey, g); err != nil {
		return fmt.Errorf("failed to save geometry for %q: %w", m.win.Name(), err)
	}
	m.logger.Debug("geometry saved", "geometry", g)
	return nil
}

// loadGeometry applies the persisted geometry, falling back to the default
// when nothing usable is stored.
func (m *Manager) loadGeometry() {
	g := m.defaultGeometry
	if m.settings != nil {
		stored, ok, err := m.settings.Rect(m.win.Name(), GeometryKey)
		switch {
		case err != nil:
			m.logger.Warn("failed to load geometry, using default", "error", err)
		case !ok:
			m.logger.Debug("no saved geometry, using default")
		case stored.Empty():
			m.logger.Warn("ignoring empty saved geometry", "geometry", stored)
		default:
			g = stored
		}
	}
	if g.Empty() {
		return
	}
	m.win.SetGeometry(g)
	m.st.preModify = g
}

// shown runs the one-time restore on first show and re-fits the window to
// the available area.
func (m *Manager) shown() {
	if m.st.firstShowPending {
		m.st.firstShowPending = false
		if m.TestFlag(FlagSaveGeometry) {
			m.loadGeometry()
		}
		if m.free() {
			g := geometry.ClampToAvailable(m.win.Geometry(), m.host.AvailableGeometry())
			m.win.SetGeometry(g)
			m.st.preModify = g
		}
	}
	m.adjustSnap()
}

// adjustSnap makes a maximized window cover the available area and keeps a
// snapped one on its snap rectangle. Hidden windows are left alone.
func (m *Manager) adjustSnap() {
	if !m.win.Visible() {
		return
	}
	avail := m.host.AvailableGeometry()
	switch {
	case m.maximized():
		m.win.SetGeometry(avail)
	case m.st.snapSide != geometry.SideNone:
		target := geometry.SnapRect(avail, m.win.Geometry().Size(), m.st.snapSide, m.TestFlag(FlagHalfSnap))
		m.win.SetGeometry(target)
		m.logger.Debug("snap adjusted", "side", m.st.snapSide, "geometry", target)
	}
	m.updateMask()
}
