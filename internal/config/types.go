package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Peer orderings accepted by peer_order.
const (
	PeerOrderInsertion = "insertion"
	PeerOrderName      = "name"
)

// Config represents the complete .statoverlay.yaml configuration file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// PlayerName labels the local line of the requested rates panel.
	PlayerName string `yaml:"player_name" mapstructure:"player_name"`

	// SampleInterval is the minimum time between two samples.
	SampleInterval time.Duration `yaml:"sample_interval" mapstructure:"sample_interval"`

	// FrameInterval is how often the surface ticks the overlay.
	FrameInterval time.Duration `yaml:"frame_interval" mapstructure:"frame_interval"`

	// FastMode samples on every frame.
	FastMode bool `yaml:"fast_mode" mapstructure:"fast_mode"`

	// StartVisible opens the window on startup.
	StartVisible bool `yaml:"start_visible" mapstructure:"start_visible"`

	// PeerOrder is "insertion" (skew tracker order) or "name".
	PeerOrder string `yaml:"peer_order" mapstructure:"peer_order"`

	Window WindowConfig `yaml:"window" mapstructure:"window"`
	Panels PanelsConfig `yaml:"panels" mapstructure:"panels"`
}

// WindowConfig is the debug window geometry in pixels. CellWidth and
// CellHeight convert pixels to terminal cells.
type WindowConfig struct {
	Width       int `yaml:"width" mapstructure:"width"`
	Height      int `yaml:"height" mapstructure:"height"`
	RightMargin int `yaml:"right_margin" mapstructure:"right_margin"`
	CellWidth   int `yaml:"cell_width" mapstructure:"cell_width"`
	CellHeight  int `yaml:"cell_height" mapstructure:"cell_height"`
}

// Cells returns the window size in terminal cells.
func (w WindowConfig) Cells() (cols, rows int) {
	return w.Width / w.CellWidth, w.Height / w.CellHeight
}

// MarginCells returns the right margin in terminal columns.
func (w WindowConfig) MarginCells() int {
	return w.RightMargin / w.CellWidth
}

// PanelsConfig is the initial toggle state of each panel.
type PanelsConfig struct {
	TimeSync    bool `yaml:"timesync" mapstructure:"timesync"`
	Connection  bool `yaml:"connection" mapstructure:"connection"`
	DynamicTick bool `yaml:"dynamictick" mapstructure:"dynamictick"`
	PeerRates   bool `yaml:"peerrates" mapstructure:"peerrates"`
}

// Toggled returns the toggle state keyed by panel id.
func (p PanelsConfig) Toggled() map[string]bool {
	return map[string]bool{
		"timesync":    p.TimeSync,
		"connection":  p.Connection,
		"dynamictick": p.DynamicTick,
		"peerrates":   p.PeerRates,
	}
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:        CurrentConfigVersion,
		PlayerName:     "player",
		SampleInterval: 200 * time.Millisecond,
		FrameInterval:  50 * time.Millisecond,
		PeerOrder:      PeerOrderInsertion,
		Window: WindowConfig{
			Width:       300,
			Height:      400,
			RightMargin: 50,
			CellWidth:   8,
			CellHeight:  16,
		},
	}
}
