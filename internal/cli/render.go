package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rileyhilliard/statoverlay/internal/config"
	"github.com/rileyhilliard/statoverlay/internal/errors"
	"github.com/rileyhilliard/statoverlay/internal/logger"
	"github.com/rileyhilliard/statoverlay/internal/overlay"
	"github.com/rileyhilliard/statoverlay/internal/sim"
	"github.com/rileyhilliard/statoverlay/internal/stats"
	"github.com/rileyhilliard/statoverlay/internal/surface"
	"github.com/rileyhilliard/statoverlay/internal/ui"
	"github.com/rileyhilliard/statoverlay/internal/util"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// renderStep is the simulated time advanced per --steps.
const renderStep = 100 * time.Millisecond

// renderOptions holds the flags of the render command.
type renderOptions struct {
	StatsFile string
	Raw       bool
	All       bool
	Steps     int
	Seed      int64
	Peers     int
}

var renderOpts renderOptions

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print the debug panels once and exit",
	Long: `Sample every statistic once and print the panels as the debug window
would show them. Panels toggled off in the config are listed but their text
is omitted unless --all is given.

Statistics come from a simulated session advanced by --steps, or from a
YAML fixture given with --stats:

  timesync:
    WarpRate: 1.5
    CurrentSubspace: 3
  network:
    LastSendTime: 12
  peers:
    ClientSkew:
      Bill: 1.0
      Bob: 2.5

Statistics missing from the fixture render as n/a.

Examples:
  statoverlay render --all
  statoverlay render --stats capture.yaml
  statoverlay render --stats capture.yaml --raw`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cfgFile)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if f, ok := out.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
		return renderStats(out, cfg, renderOpts, logger.NewEnvLogger("[render]"))
	},
}

func init() {
	renderCmd.Flags().StringVar(&renderOpts.StatsFile, "stats", "", "YAML fixture of captured statistics")
	renderCmd.Flags().BoolVar(&renderOpts.Raw, "raw", false, "print a table of raw statistics instead of the panels")
	renderCmd.Flags().BoolVarP(&renderOpts.All, "all", "a", false, "print the text of panels that are toggled off")
	renderCmd.Flags().IntVar(&renderOpts.Steps, "steps", 20, "simulation steps before sampling (ignored with --stats)")
	renderCmd.Flags().Int64Var(&renderOpts.Seed, "seed", 1, "random seed for the simulation")
	renderCmd.Flags().IntVar(&renderOpts.Peers, "peers", 3, "number of simulated remote peers")
	rootCmd.AddCommand(renderCmd)
}

// renderStats samples once and writes the panels, or the raw table, to w.
func renderStats(w io.Writer, cfg *config.Config, opts renderOptions, lg logger.Logger) error {
	sources, err := renderSources(opts)
	if err != nil {
		return err
	}

	if opts.Raw {
		fmt.Fprint(w, ui.RenderStatTable(rawStatRows(sources)))
		return nil
	}

	ov, err := newOverlay(cfg, sources, lg)
	if err != nil {
		return err
	}
	ov.Refresh(time.Now())
	fmt.Fprint(w, renderPanels(ov.Frame(), opts.All))
	return nil
}

func renderSources(opts renderOptions) (map[stats.SourceID]stats.Source, error) {
	if opts.StatsFile == "" {
		world := sim.New(sim.Options{Peers: opts.Peers, Seed: opts.Seed})
		for i := 0; i < opts.Steps; i++ {
			world.Step(renderStep)
		}
		return world.Sources(), nil
	}

	f, err := os.Open(opts.StatsFile)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot open stats fixture: "+opts.StatsFile,
			"Check the path is correct")
	}
	defer f.Close()

	snaps, err := stats.LoadFixture(f)
	if err != nil {
		return nil, err
	}
	sources := make(map[stats.SourceID]stats.Source, len(snaps))
	for id, s := range snaps {
		sources[id] = s
	}
	return sources, nil
}

// renderPanels lays out a frame the way the debug window lists it: the fast
// toggle, then each panel's toggle followed by its text.
func renderPanels(frame overlay.Frame, all bool) string {
	var b strings.Builder
	b.WriteString(toggleLine(frame.Fast, overlay.FastToggleTitle))

	for _, p := range frame.Panels {
		b.WriteString(toggleLine(p.Toggled, p.Title))
		if !p.Toggled && !all {
			continue
		}
		for _, line := range strings.Split(p.Text, "\n") {
			if strings.Contains(line, overlay.Unavailable) {
				line = ui.MutedStyle.Render(line)
			}
			b.WriteString("    " + line + "\n")
		}
	}
	return b.String()
}

func toggleLine(on bool, title string) string {
	if on {
		return ui.SuccessStyle.Render(surface.ToggleOn) + " " + ui.HeadingStyle.Render(title) + "\n"
	}
	return ui.MutedStyle.Render(surface.ToggleOff) + " " + ui.HeadingStyle.Render(title) + "\n"
}

// rawStatRows reads every catalogued statistic without formatting.
func rawStatRows(sources map[stats.SourceID]stats.Source) []ui.StatTableRow {
	catalog := stats.Catalog()
	rows := make([]ui.StatTableRow, 0, len(catalog))

	for _, s := range catalog {
		row := ui.StatTableRow{
			Status: ui.StatMissing,
			Source: string(s.Source),
			Stat:   s.Name,
			Kind:   "-",
			Value:  overlay.Unavailable,
		}

		src, ok := sources[s.Source]
		switch {
		case !ok:
		case s.List:
			if es, ok := src.(stats.EntrySource); ok {
				if entries, err := es.Entries(s.Name); err == nil {
					row.Status = ui.StatOK
					row.Kind = "list"
					row.Value = formatEntries(entries)
				}
			}
		default:
			if v, err := src.Statistic(s.Name); err == nil {
				row.Status = ui.StatOK
				if !v.IsFinite() {
					row.Status = ui.StatNonFinite
				}
				row.Kind = v.Kind().String()
				row.Value = v.String()
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func formatEntries(entries []stats.Entry) string {
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = e.Key + "=" + e.Value.String()
	}
	return util.JoinOrNone(parts)
}
