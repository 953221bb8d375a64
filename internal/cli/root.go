package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rileyhilliard/statoverlay/internal/config"
	"github.com/rileyhilliard/statoverlay/internal/logger"
	"github.com/rileyhilliard/statoverlay/internal/ui"
	"github.com/spf13/cobra"
)

// Global flags
var (
	cfgFile string
	verbose bool
	noColor bool
	logFile string
)

var rootCmd = &cobra.Command{
	Use:   "statoverlay",
	Short: "Debug overlay for multiplayer time-sync and networking statistics",
	Long: `statoverlay draws a small debug window over a running session showing
time synchronization, connection, dynamic tick and per-peer warp rate
statistics. Each category can be toggled on and off, the window can be
dragged around, and stats are resampled on a fixed interval or every frame.

Run 'statoverlay run' to open the window over a simulated session, or
'statoverlay render' to print the panels once.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			os.Setenv(logger.DebugEnv, "1")
		}
		if noColor {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./"+config.ConfigFileName+", then ~/"+config.GlobalConfigDir+"/"+config.GlobalConfigFile+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write log output to this file")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if isUnknownCommandError(err) {
			if name := extractUnknownCommand(err); name != "" {
				fmt.Fprintf(os.Stderr, "%s Unknown command: %s\n\n  Run 'statoverlay --help' to see available commands\n", ui.SymbolFail, name)
				os.Exit(1)
			}
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// isUnknownCommandError reports whether cobra rejected the command line
// itself rather than a command failing.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "unknown command") || strings.Contains(msg, "unknown flag")
}

// extractUnknownCommand pulls the command name out of cobra's
// `unknown command "foo" for "statoverlay"` message.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start < 0 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end < 0 {
		return ""
	}
	return msg[start+1 : start+1+end]
}

// loadConfig resolves and validates the config named by --config.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
