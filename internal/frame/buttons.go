package frame

import "reflect"

type action int

const (
	actionMinimize action = iota
	actionMaximize
	actionQuit
	actionCount
)

func (a action) String() string {
	switch a {
	case actionMinimize:
		return "minimize"
	case actionMaximize:
		return "maximize"
	case actionQuit:
		return "quit"
	default:
		return "unknown"
	}
}

type binding struct {
	button     Button
	disconnect func()
}

// SetMinimizeButton wires b to Minimize. It returns false when b is nil or
// already bound to another action. Buttons of a non-comparable type are
// not checked for duplicate bindings.
func (m *Manager) SetMinimizeButton(b Button) bool { return m.setButton(actionMinimize, b) }

// SetMaximizeButton wires b to Maximize and keeps its style property in
// sync with the maximized state.
func (m *Manager) SetMaximizeButton(b Button) bool { return m.setButton(actionMaximize, b) }

// SetQuitButton wires b to Quit.
func (m *Manager) SetQuitButton(b Button) bool { return m.setButton(actionQuit, b) }

// DisconnectMinimizeButton unbinds the minimize button. It returns false
// when none is bound.
func (m *Manager) DisconnectMinimizeButton() bool { return m.disconnectButton(actionMinimize) }

// DisconnectMaximizeButton unbinds the maximize button.
func (m *Manager) DisconnectMaximizeButton() bool { return m.disconnectButton(actionMaximize) }

// DisconnectQuitButton unbinds the quit button.
func (m *Manager) DisconnectQuitButton() bool { return m.disconnectButton(actionQuit) }

func (m *Manager) setButton(a action, b Button) bool {
	if b == nil || m.closed {
		return false
	}
	for other, bd := range m.buttons {
		if action(other) != a && sameButton(bd.button, b) {
			m.logger.Debug("button already bound", "action", action(other), "requested", a)
			return false
		}
	}
	m.disconnectButton(a)

	var fn func()
	switch a {
	case actionMinimize:
		fn = m.Minimize
	case actionMaximize:
		fn = m.Maximize
	case actionQuit:
		fn = m.Quit
	}
	m.buttons[a] = binding{button: b, disconnect: b.OnClick(fn)}
	if a == actionMaximize {
		m.refreshMaximizeButton()
	}
	return true
}

// sameButton reports whether a and b are the same button. Buttons whose
// dynamic type is not comparable are never considered equal.
func sameButton(a, b Button) bool {
	ta := reflect.TypeOf(a)
	if ta == nil || ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

func (m *Manager) disconnectButton(a action) bool {
	bd := m.buttons[a]
	if bd.button == nil {
		return false
	}
	if bd.disconnect != nil {
		bd.disconnect()
	}
	m.buttons[a] = binding{}
	return true
}

func (m *Manager) refreshMaximizeButton() {
	b := m.buttons[actionMaximize].button
	if b == nil || m.cfg.MaximizeButtonProperty == "" {
		return
	}
	b.SetProperty(m.cfg.MaximizeButtonProperty, m.maximized())
	b.RefreshStyle()
}
