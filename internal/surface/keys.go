package surface

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/statoverlay/internal/overlay"
)

// KeyMap defines the window's key bindings.
type KeyMap struct {
	ToggleWindow key.Binding
	ToggleFast   key.Binding
	Panels       [4]key.Binding
	MoveLeft     key.Binding
	MoveRight    key.Binding
	MoveUp       key.Binding
	MoveDown     key.Binding
	ScrollUp     key.Binding
	ScrollDown   key.Binding
	Help         key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		ToggleWindow: key.NewBinding(key.WithKeys("d", "f12"), key.WithHelp("d/F12", "debug window")),
		ToggleFast:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fast update")),
		Panels: [4]key.Binding{
			key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "ntp/subspace")),
			key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "connection")),
			key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "dynamic tick")),
			key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "requested rates")),
		},
		MoveLeft:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "move left")),
		MoveRight:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "move right")),
		MoveUp:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "move up")),
		MoveDown:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "move down")),
		ScrollUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
		ScrollDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll down")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ToggleWindow, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ToggleWindow, k.ToggleFast, k.Help, k.Quit},
		{k.Panels[0], k.Panels[1], k.Panels[2], k.Panels[3]},
		{k.MoveLeft, k.MoveRight, k.MoveUp, k.MoveDown},
		{k.ScrollUp, k.ScrollDown},
	}
}

// HandleKeyMsg processes keyboard input.
// Returns true if the key was handled, false otherwise.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return true, tea.Quit

	case key.Matches(msg, m.keys.ToggleWindow):
		open := m.overlay.ToggleVisible()
		m.log.Debug("debug window requested %s", openClosed(open))
		return true, nil

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.body.GotoTop()
		m.refresh()
		return true, nil
	}

	// The remaining keys act on the window and are ignored while it is closed.
	if !m.frame.Visible {
		return false, nil
	}

	for i, b := range m.keys.Panels {
		if key.Matches(msg, b) && i < len(overlay.PanelIDs) {
			m.toggle(overlay.PanelIDs[i])
			return true, nil
		}
	}

	switch {
	case key.Matches(msg, m.keys.ToggleFast):
		m.overlay.ToggleFast()
		m.refresh()
	case key.Matches(msg, m.keys.MoveLeft):
		m.nudge(-1, 0)
	case key.Matches(msg, m.keys.MoveRight):
		m.nudge(1, 0)
	case key.Matches(msg, m.keys.MoveUp):
		m.nudge(0, -1)
	case key.Matches(msg, m.keys.MoveDown):
		m.nudge(0, 1)
	case key.Matches(msg, m.keys.ScrollUp):
		m.body.HalfPageUp()
	case key.Matches(msg, m.keys.ScrollDown):
		m.body.HalfPageDown()
	default:
		return false, nil
	}
	return true, nil
}

func openClosed(open bool) string {
	if open {
		return "open"
	}
	return "closed"
}
