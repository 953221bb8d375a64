package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rileyhilliard/statoverlay/internal/errors"
)

// MinFrameInterval is the fastest frame rate the surface will run at.
const MinFrameInterval = 10 * time.Millisecond

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try reloading the configuration.")
	}

	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but statoverlay only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade statoverlay or lower the version field.")
	}

	if strings.TrimSpace(cfg.PlayerName) == "" {
		return errors.New(errors.ErrConfig,
			"player_name can't be empty",
			"Set player_name to the name shown on the local requested rate line.")
	}

	if err := validateTiming(cfg); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Use a Go duration like '200ms' or '1s'.")
	}

	if cfg.PeerOrder != PeerOrderInsertion && cfg.PeerOrder != PeerOrderName {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("peer_order '%s' isn't recognised", cfg.PeerOrder),
			"Use 'insertion' or 'name'.")
	}

	if err := validateWindow(cfg.Window); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'window' section in your .statoverlay.yaml.")
	}

	return nil
}

func validateTiming(cfg *Config) error {
	if cfg.SampleInterval <= 0 {
		return fmt.Errorf("sample_interval must be positive, got %s", cfg.SampleInterval)
	}
	if cfg.FrameInterval < MinFrameInterval {
		return fmt.Errorf("frame_interval must be at least %s, got %s", MinFrameInterval, cfg.FrameInterval)
	}
	return nil
}

func validateWindow(w WindowConfig) error {
	if w.CellWidth <= 0 || w.CellHeight <= 0 {
		return fmt.Errorf("window cell size must be positive, got %dx%d", w.CellWidth, w.CellHeight)
	}
	if w.Width < w.CellWidth || w.Height < w.CellHeight {
		return fmt.Errorf("window %dx%d is smaller than one %dx%d cell", w.Width, w.Height, w.CellWidth, w.CellHeight)
	}
	if w.RightMargin < 0 {
		return fmt.Errorf("window right_margin can't be negative, got %d", w.RightMargin)
	}
	return nil
}
