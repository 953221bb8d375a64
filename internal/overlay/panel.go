package overlay

import "github.com/rileyhilliard/statoverlay/internal/errors"

// PanelID identifies a stat category.
type PanelID string

const (
	PanelTimeSync    PanelID = "timesync"
	PanelConnection  PanelID = "connection"
	PanelDynamicTick PanelID = "dynamictick"
	PanelPeerRates   PanelID = "peerrates"
)

// PanelIDs lists every panel in display order.
var PanelIDs = []PanelID{PanelTimeSync, PanelConnection, PanelDynamicTick, PanelPeerRates}

// panelTitles are the labels of the toggle controls.
var panelTitles = map[PanelID]string{
	PanelTimeSync:    "Display NTP/Subspace statistics",
	PanelConnection:  "Display connection statistics",
	PanelDynamicTick: "Display dynamic tick statistics",
	PanelPeerRates:   "Display requested rates",
}

// FastToggleTitle labels the fast mode toggle shown above the panels.
const FastToggleTitle = "Fast debug update"

// Panel is one togglable block of text. Text always holds the latest sample,
// whether or not the panel is toggled on.
type Panel struct {
	ID      PanelID
	Title   string
	Toggled bool
	Text    string
}

// ParsePanelID validates a panel name from config or the command line.
func ParsePanelID(s string) (PanelID, error) {
	id := PanelID(s)
	if _, ok := panelTitles[id]; !ok {
		return "", errors.New(errors.ErrStat,
			"Unknown panel: "+s,
			"Valid panels: timesync, connection, dynamictick, peerrates")
	}
	return id, nil
}

// Title returns the toggle label for a panel id.
func (id PanelID) Title() string {
	return panelTitles[id]
}
