package cli

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/statoverlay/internal/config"
	"github.com/rileyhilliard/statoverlay/internal/errors"
	"github.com/rileyhilliard/statoverlay/internal/logger"
	"github.com/rileyhilliard/statoverlay/internal/overlay"
	"github.com/rileyhilliard/statoverlay/internal/sim"
	"github.com/rileyhilliard/statoverlay/internal/stats"
	"github.com/rileyhilliard/statoverlay/internal/surface"
	"github.com/rileyhilliard/statoverlay/internal/util"
	"github.com/spf13/cobra"
)

// defaultDebugLog receives log output when debug logging is on and no
// --log-file was given. The TUI owns the terminal, so logs cannot go there.
const defaultDebugLog = "statoverlay-debug.log"

// runOptions holds the simulation flags of the run command.
type runOptions struct {
	Peers   int
	Seed    int64
	WarmUp  int
	Step    time.Duration
	Fast    bool
	Visible bool
}

var runOpts runOptions

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the debug window over a simulated session",
	Long: `Open the debug window over a simulated multiplayer session.

The window starts closed unless start_visible is set; press d or F12 to open
it. Drag it by its title bar, click a row or press 1-4 to toggle a panel,
and press f to sample on every frame.

Examples:
  statoverlay run
  statoverlay run --peers 6 --visible
  statoverlay run --seed 42 --fast --log-file overlay.log`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cfgFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("fast") {
			cfg.FastMode = runOpts.Fast
		}
		if cmd.Flags().Changed("visible") {
			cfg.StartVisible = runOpts.Visible
		}
		return runOverlay(cmd.Context(), cfg, runOpts)
	},
}

func init() {
	runCmd.Flags().IntVar(&runOpts.Peers, "peers", 3, "number of simulated remote peers")
	runCmd.Flags().Int64Var(&runOpts.Seed, "seed", 0, "random seed for the simulation (0 picks one)")
	runCmd.Flags().IntVar(&runOpts.WarmUp, "warmup", 10, "simulation steps before subsystems report ready")
	runCmd.Flags().DurationVar(&runOpts.Step, "step", 100*time.Millisecond, "simulation step interval")
	runCmd.Flags().BoolVar(&runOpts.Fast, "fast", false, "sample on every frame (overrides fast_mode)")
	runCmd.Flags().BoolVar(&runOpts.Visible, "visible", false, "open the window on startup (overrides start_visible)")
	rootCmd.AddCommand(runCmd)
}

// runOverlay drives a simulated world in the background and shows the debug
// window until the user quits or ctx is cancelled.
func runOverlay(ctx context.Context, cfg *config.Config, opts runOptions) error {
	if opts.Peers < 0 {
		return errors.New(errors.ErrConfig,
			"--peers cannot be negative",
			"Use --peers 0 for a session with no remote peers")
	}
	if opts.Step <= 0 {
		return errors.New(errors.ErrConfig,
			"--step must be positive",
			"Try something like 100ms")
	}

	restore, err := setupLogOutput(logFile)
	if err != nil {
		return err
	}
	defer restore()

	lg := logger.NewEnvLogger("[statoverlay]")
	world := sim.New(sim.Options{Peers: opts.Peers, Seed: opts.Seed, WarmUp: opts.WarmUp})

	ov, err := newOverlay(cfg, world.Sources(), lg)
	if err != nil {
		return err
	}
	model := surface.New(ov, surface.Options{
		FrameInterval: cfg.FrameInterval,
		RightMargin:   cfg.Window.MarginCells(),
		Logger:        lg,
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	lg.Info("simulating %s, sampling every %s", util.Count(opts.Peers, "peer", "peers"), cfg.SampleInterval)
	return surface.Run(ctx, model, func(ctx context.Context) error {
		return world.Run(ctx, opts.Step)
	})
}

// newOverlay builds an overlay over sources with the settings from cfg.
func newOverlay(cfg *config.Config, sources map[stats.SourceID]stats.Source, lg logger.Logger) (*overlay.Overlay, error) {
	toggled := make(map[overlay.PanelID]bool, len(overlay.PanelIDs))
	for name, on := range cfg.Panels.Toggled() {
		id, err := overlay.ParsePanelID(name)
		if err != nil {
			return nil, err
		}
		toggled[id] = on
	}

	cols, rows := cfg.Window.Cells()
	return overlay.New(sources, overlay.Options{
		SampleInterval: cfg.SampleInterval,
		Fast:           cfg.FastMode,
		Visible:        cfg.StartVisible,
		Toggled:        toggled,
		Window:         overlay.Rect{Width: cols, Height: rows},
		PlayerName:     cfg.PlayerName,
		PeerOrder:      overlay.PeerOrder(cfg.PeerOrder),
		Logger:         lg,
	}), nil
}

// setupLogOutput points the std logger at a file while the TUI owns the
// terminal. Without a file, log output is discarded. The returned func
// restores stderr.
func setupLogOutput(path string) (func(), error) {
	if path == "" && logger.DebugEnabled() {
		path = defaultDebugLog
	}
	if path == "" {
		log.SetOutput(io.Discard)
		return func() { log.SetOutput(os.Stderr) }, nil
	}

	f, err := tea.LogToFile(path, "statoverlay")
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to open log file: "+path,
			"Check that the directory exists and is writable")
	}
	return func() {
		f.Close()
		log.SetOutput(os.Stderr)
		log.SetPrefix("")
	}, nil
}
