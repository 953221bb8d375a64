package cli

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rileyhilliard/statoverlay/internal/config"
	"github.com/rileyhilliard/statoverlay/internal/errors"
	"github.com/rileyhilliard/statoverlay/internal/logger"
	"github.com/rileyhilliard/statoverlay/internal/overlay"
	"github.com/rileyhilliard/statoverlay/internal/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOverlay_FromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.FastMode = true
	cfg.StartVisible = true
	cfg.PeerOrder = config.PeerOrderName
	cfg.Panels.Connection = true
	cfg.Panels.PeerRates = true

	world := sim.New(sim.Options{Peers: 2, Seed: 1})
	ov, err := newOverlay(cfg, world.Sources(), logger.Noop())
	require.NoError(t, err)

	assert.True(t, ov.Fast())
	assert.True(t, ov.Visible())
	assert.Equal(t, overlay.Rect{Width: 37, Height: 25}, ov.Window())

	want := map[overlay.PanelID]bool{
		overlay.PanelTimeSync:    false,
		overlay.PanelConnection:  true,
		overlay.PanelDynamicTick: false,
		overlay.PanelPeerRates:   true,
	}
	for id, on := range want {
		p, ok := ov.Panel(id)
		require.True(t, ok, id)
		assert.Equal(t, on, p.Toggled, id)
	}
}

func TestNewOverlay_SampleInterval(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.SampleInterval = time.Second
	cfg.StartVisible = true

	ov, err := newOverlay(cfg, sim.New(sim.Options{Seed: 1}).Sources(), logger.Noop())
	require.NoError(t, err)

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ov.Tick(start)
	ov.Tick(start.Add(500 * time.Millisecond))
	assert.Equal(t, uint64(1), ov.Samples())
	ov.Tick(start.Add(1500 * time.Millisecond))
	assert.Equal(t, uint64(2), ov.Samples())
}

func TestRunOverlay_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts runOptions
	}{
		{name: "negative peers", opts: runOptions{Peers: -1, Step: time.Millisecond}},
		{name: "zero step", opts: runOptions{Peers: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runOverlay(context.Background(), config.DefaultConfig(), tt.opts)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
		})
	}
}

func TestRunOverlay_NeedsTerminal(t *testing.T) {
	err := runOverlay(context.Background(), config.DefaultConfig(), runOptions{Peers: 1, Step: 10 * time.Millisecond})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrSurface))
}

func TestSetupLogOutput_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overlay.log")

	restore, err := setupLogOutput(path)
	require.NoError(t, err)
	log.Print("window opened")
	restore()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "statoverlay")
	assert.Contains(t, string(data), "window opened")
}

func TestSetupLogOutput_DebugDefault(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(logger.DebugEnv, "1")

	restore, err := setupLogOutput("")
	require.NoError(t, err)
	log.Print("debugging")
	restore()

	data, err := os.ReadFile(defaultDebugLog)
	require.NoError(t, err)
	assert.Contains(t, string(data), "debugging")
}

func TestSetupLogOutput_Discard(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(logger.DebugEnv, "")

	restore, err := setupLogOutput("")
	require.NoError(t, err)
	restore()

	_, err = os.Stat(defaultDebugLog)
	assert.True(t, os.IsNotExist(err))
}

func TestSetupLogOutput_BadPath(t *testing.T) {
	_, err := setupLogOutput(filepath.Join(t.TempDir(), "missing", "overlay.log"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}
