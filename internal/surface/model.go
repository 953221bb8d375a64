package surface

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/rileyhilliard/statoverlay/internal/logger"
	"github.com/rileyhilliard/statoverlay/internal/overlay"
)

// WindowTitle is drawn on the window's drag row.
const WindowTitle = "statoverlay - Debug"

// DefaultFrameInterval is the redraw rate when Options leaves it unset.
const DefaultFrameInterval = 50 * time.Millisecond

// Window chrome: one border row above and below, the title row and the
// help footer row.
const (
	borderRows  = 2
	titleRows   = 1
	footerRows  = 1
	chromeCols  = 4 // border and horizontal padding
	minBodyRows = 1
)

// Options configures a Model.
type Options struct {
	// FrameInterval is how often the overlay is ticked.
	FrameInterval time.Duration
	// RightMargin is the initial gap to the right screen edge, in columns.
	RightMargin int
	// Keys overrides the default key bindings.
	Keys *KeyMap
	Logger logger.Logger
}

// rowAction is what a click on a body row does.
type rowAction struct {
	fast  bool
	panel overlay.PanelID
}

// Model is the Bubble Tea model drawing the debug window over the host screen.
type Model struct {
	overlay *overlay.Overlay
	frame   overlay.Frame

	interval    time.Duration
	rightMargin int
	keys        KeyMap
	help        help.Model
	log         logger.Logger

	width  int
	height int

	body    viewport.Model
	actions []rowAction // one per body line

	dragging bool
	dragX    int
	dragY    int

	showHelp bool
	quitting bool
}

// frameMsg signals a presentation tick.
type frameMsg time.Time

// New creates a surface model for o. The window size is taken from o.Window().
func New(o *overlay.Overlay, opts Options) Model {
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = DefaultFrameInterval
	}
	if opts.Logger == nil {
		opts.Logger = logger.Noop()
	}
	keys := DefaultKeyMap()
	if opts.Keys != nil {
		keys = *opts.Keys
	}

	m := Model{
		overlay:     o,
		frame:       o.Frame(),
		interval:    opts.FrameInterval,
		rightMargin: opts.RightMargin,
		keys:        keys,
		help:        help.New(),
		log:         opts.Logger,
	}
	m.help.Width = m.innerWidth()
	m.body = viewport.New(m.innerWidth(), m.bodyHeight())
	m.refresh()
	return m
}

// Init starts the frame timer.
func (m Model) Init() tea.Cmd {
	return m.frameCmd()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if handled, cmd := m.HandleKeyMsg(msg); handled {
			return m, cmd
		}

	case tea.MouseMsg:
		m.HandleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.overlay.PlaceWindow(m.width, m.height, m.rightMargin) {
			w := m.overlay.Window()
			m.log.Debug("debug window placed at %d,%d on a %dx%d screen", w.X, w.Y, m.width, m.height)
		}
		m.refresh()

	case frameMsg:
		m.frame = m.overlay.Tick(time.Time(msg))
		m.rebuild()
		return m, m.frameCmd()
	}

	return m, nil
}

// View renders the host screen with the window on top when open.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.frame.Visible {
		return m.renderHint()
	}
	return m.renderWindow()
}

// Frame returns the frame currently drawn.
func (m Model) Frame() overlay.Frame {
	return m.frame
}

func (m Model) frameCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// refresh re-reads the overlay state without ticking it. Toggles and drags
// redraw immediately using the text of the last sample.
func (m *Model) refresh() {
	m.frame = m.overlay.Frame()
	m.rebuild()
}

// rebuild lays out the window body from the current frame.
func (m *Model) rebuild() {
	width := m.innerWidth()
	m.body.Width = width
	m.body.Height = m.bodyHeight()

	m.actions = nil
	if m.showHelp {
		m.body.SetContent(m.renderHelp())
		return
	}

	var lines []string
	add := func(text string, a rowAction) {
		for _, l := range strings.Split(ansi.Wrap(text, width, ""), "\n") {
			lines = append(lines, l)
			m.actions = append(m.actions, a)
		}
	}

	add(toggleRow(m.frame.Fast, overlay.FastToggleTitle), rowAction{fast: true})
	for _, p := range m.frame.Panels {
		add(toggleRow(p.Toggled, p.Title), rowAction{panel: p.ID})
		if !p.Toggled {
			continue
		}
		for _, l := range strings.Split(p.Text, "\n") {
			style := PanelTextStyle
			if degraded(l) {
				style = UnavailableStyle
			}
			add(style.Render("  "+l), rowAction{})
		}
	}

	m.body.SetContent(strings.Join(lines, "\n"))
}

// degraded reports whether a panel line carries a placeholder value.
func degraded(line string) bool {
	return strings.Contains(line, overlay.Unavailable) || strings.Contains(line, " "+overlay.NonFinite)
}

func toggleRow(on bool, label string) string {
	if on {
		return ToggleOnStyle.Render(ToggleOn) + " " + ToggleLabelStyle.Render(label)
	}
	return ToggleOffStyle.Render(ToggleOff) + " " + ToggleLabelStyle.Render(label)
}

func (m *Model) toggle(id overlay.PanelID) {
	if err := m.overlay.Toggle(id); err != nil {
		m.log.Warn("toggle %s: %v", id, err)
		return
	}
	m.refresh()
}

func (m *Model) nudge(dx, dy int) {
	w := m.overlay.Window()
	m.overlay.MoveWindow(w.X+dx, w.Y+dy)
	m.refresh()
}

func (m Model) innerWidth() int {
	w := m.overlay.Window().Width - chromeCols
	if w < 1 {
		return 1
	}
	return w
}

func (m Model) bodyHeight() int {
	h := m.overlay.Window().Height - borderRows - titleRows - footerRows
	if h < minBodyRows {
		return minBodyRows
	}
	return h
}
