package surface

import "github.com/charmbracelet/lipgloss"

// Window color palette
const (
	ColorDarkBg    = lipgloss.Color("#0A0A0F")
	ColorSurfaceBg = lipgloss.Color("#12121A")
	ColorBorder    = lipgloss.Color("#2A2A4A")

	ColorTextPrimary   = lipgloss.Color("#FFFFFF")
	ColorTextSecondary = lipgloss.Color("#B4B4D0")
	ColorTextMuted     = lipgloss.Color("#6B6B8D")

	ColorAccent = lipgloss.Color("#FF2E97")
	ColorActive = lipgloss.Color("#39FF14")
	ColorAlert  = lipgloss.Color("#FFAA00")
)

// Toggle glyphs
const (
	ToggleOn  = "[x]"
	ToggleOff = "[ ]"
)

var (
	WindowStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	// WindowDraggingStyle highlights the border while the title is held.
	WindowDraggingStyle = WindowStyle.
				BorderForeground(ColorAccent)

	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Background(ColorSurfaceBg).
			Bold(true)

	ToggleOnStyle = lipgloss.NewStyle().
			Foreground(ColorActive).
			Bold(true)

	ToggleOffStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	ToggleLabelStyle = lipgloss.NewStyle().
				Foreground(ColorTextPrimary)

	PanelTextStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	// UnavailableStyle marks lines carrying a placeholder.
	UnavailableStyle = lipgloss.NewStyle().
				Foreground(ColorAlert)

	HintStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)
)
