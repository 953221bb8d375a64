package surface

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Help list styles
var (
	helpTitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true).
			Width(8)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)
)

const closedHint = "debug window closed - press d or F12 to open, q to quit"

// origin returns where the window is drawn. Stored positions may be off
// screen; drawing clamps them to the top-left corner.
func (m Model) origin() (x, y int) {
	w := m.frame.Window
	return max(w.X, 0), max(w.Y, 0)
}

func (m Model) renderWindow() string {
	w := m.frame.Window
	inner := m.innerWidth()

	title := TitleStyle.Width(inner).Render(ansi.Truncate(WindowTitle, inner, ""))
	footer := m.help.View(m.keys)
	content := lipgloss.JoinVertical(lipgloss.Left, title, m.body.View(), footer)

	style := WindowStyle
	if m.dragging {
		style = WindowDraggingStyle
	}
	box := style.
		Width(max(w.Width-2, 1)).
		Height(max(w.Height-borderRows, 1)).
		MaxHeight(max(w.Height, borderRows+1)).
		Render(content)

	x, y := m.origin()
	return lipgloss.NewStyle().MarginLeft(x).MarginTop(y).Render(box)
}

func (m Model) renderHint() string {
	hint := HintStyle.Render(closedHint)
	if m.height <= 0 {
		return hint
	}
	return lipgloss.PlaceVertical(m.height, lipgloss.Bottom, hint)
}

func (m Model) renderHelp() string {
	var lines []string
	lines = append(lines, helpTitleStyle.Render("Keyboard Shortcuts"), "")

	for _, group := range m.keys.FullHelp() {
		for _, b := range group {
			h := b.Help()
			lines = append(lines, helpKeyStyle.Render(h.Key)+helpDescStyle.Render(h.Desc))
		}
	}

	lines = append(lines, "", helpDescStyle.Render("Press ? to close"))
	return strings.Join(lines, "\n")
}
