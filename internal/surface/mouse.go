package surface

import tea "github.com/charmbracelet/bubbletea"

// Window rows, counted from the top border.
const (
	titleRow     = 1
	firstBodyRow = 2
)

// HandleMouseMsg drags the window by its title row, clicks toggle rows and
// scrolls the body with the wheel.
func (m *Model) HandleMouseMsg(msg tea.MouseMsg) {
	if !m.frame.Visible {
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if m.inWindow(msg.X, msg.Y) {
				m.body.ScrollUp(1)
			}
		case tea.MouseButtonWheelDown:
			if m.inWindow(msg.X, msg.Y) {
				m.body.ScrollDown(1)
			}
		case tea.MouseButtonLeft:
			m.press(msg.X, msg.Y)
		}

	case tea.MouseActionMotion:
		if m.dragging {
			m.overlay.MoveWindow(msg.X-m.dragX, msg.Y-m.dragY)
			m.refresh()
		}

	case tea.MouseActionRelease:
		if m.dragging {
			m.dragging = false
			w := m.overlay.Window()
			m.log.Debug("debug window moved to %d,%d", w.X, w.Y)
		}
	}
}

func (m Model) inWindow(x, y int) bool {
	ox, oy := m.origin()
	w := m.frame.Window
	return x >= ox && x < ox+w.Width && y >= oy && y < oy+w.Height
}

func (m *Model) press(x, y int) {
	if !m.inWindow(x, y) {
		return
	}
	_, oy := m.origin()
	row := y - oy

	switch {
	case row == titleRow:
		w := m.frame.Window
		m.dragging = true
		m.dragX = x - w.X
		m.dragY = y - w.Y

	case row >= firstBodyRow && row < firstBodyRow+m.body.Height:
		line := row - firstBodyRow + m.body.YOffset
		if line >= len(m.actions) {
			return
		}
		switch a := m.actions[line]; {
		case a.fast:
			m.overlay.ToggleFast()
			m.refresh()
		case a.panel != "":
			m.toggle(a.panel)
		}
	}
}
