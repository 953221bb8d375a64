package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/rileyhilliard/statoverlay/internal/config"
	"github.com/rileyhilliard/statoverlay/internal/errors"
	"github.com/rileyhilliard/statoverlay/internal/overlay"
	"github.com/rileyhilliard/statoverlay/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// configInitOptions holds options for config init.
type configInitOptions struct {
	Path           string // Explicit destination (from --config)
	Global         bool   // Write ~/.config/statoverlay/config.yaml
	Overwrite      bool   // Overwrite an existing file without asking
	NonInteractive bool   // Skip prompts, use defaults
	PlayerName     string // Pre-specified player name
}

var (
	initOpts  configInitOptions
	setGlobal bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Create, edit and inspect the statoverlay config",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a config file",
	Long: `Create a .statoverlay.yaml in the current directory, or the global config
with --global. Prompts for the common settings unless --yes is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := initOpts
		opts.Path = cfgFile
		return configInit(cmd.OutOrStdout(), opts)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one config value",
	Long: `Set one dotted config key, keeping the rest of the file and its comments.
The file is created with defaults if it does not exist yet.

Examples:
  statoverlay config set player_name Jebediah
  statoverlay config set panels.timesync true
  statoverlay config set --global window.width 360`,
	Args: cobra.ExactArgs(2),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 0 {
			return config.Keys(), cobra.ShellCompDirectiveNoFileComp
		}
		return nil, cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configSetPath(cfgFile, setGlobal)
		if err != nil {
			return err
		}
		return configSet(cmd.OutOrStdout(), path, args[0], args[1])
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective config",
	Long:  `Print every config key with its effective value after file and environment overrides.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return configShow(cmd.OutOrStdout(), cfgFile)
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&initOpts.Global, "global", false, "write the global config instead of ./"+config.ConfigFileName)
	configInitCmd.Flags().BoolVarP(&initOpts.Overwrite, "force", "f", false, "overwrite existing config")
	configInitCmd.Flags().BoolVarP(&initOpts.NonInteractive, "yes", "y", false, "skip prompts and use defaults")
	configInitCmd.Flags().StringVar(&initOpts.PlayerName, "player", "", "player name for the requested rates panel")

	configSetCmd.Flags().BoolVar(&setGlobal, "global", false, "edit the global config")

	configCmd.AddCommand(configInitCmd, configSetCmd, configShowCmd)
	rootCmd.AddCommand(configCmd)
}

// configInit writes a new config file, prompting for values unless
// opts.NonInteractive is set.
func configInit(w io.Writer, opts configInitOptions) error {
	path, err := configInitPath(opts)
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !opts.Overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", path),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", path)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return formError(w, err)
		}
		if !overwrite {
			fmt.Fprintln(w, "Cancelled.")
			return nil
		}
	}

	cfg := config.DefaultConfig()
	if name := strings.TrimSpace(opts.PlayerName); name != "" {
		cfg.PlayerName = name
	}

	if !opts.NonInteractive {
		if err := promptConfig(cfg); err != nil {
			return formError(w, err)
		}
	}

	if err := config.Write(path, cfg); err != nil {
		return err
	}

	fmt.Fprintf(w, "%s Created %s\n\n", ui.SymbolSuccess, path)
	fmt.Fprintln(w, "Next steps:")
	fmt.Fprintln(w, "  statoverlay run              - Open the debug window")
	fmt.Fprintln(w, "  statoverlay render --all     - Print every panel once")
	fmt.Fprintln(w, "  statoverlay config set k v   - Change a setting")
	return nil
}

func configInitPath(opts configInitOptions) (string, error) {
	switch {
	case opts.Path != "":
		return opts.Path, nil
	case opts.Global:
		path := config.GlobalPath()
		if path == "" {
			return "", errors.New(errors.ErrConfig,
				"Cannot determine your home directory",
				"Pass --config with an explicit path instead")
		}
		return path, nil
	default:
		return filepath.Join(".", config.ConfigFileName), nil
	}
}

// promptConfig asks for the common settings, starting from the values in cfg.
func promptConfig(cfg *config.Config) error {
	interval := cfg.SampleInterval.String()
	var panels []string
	for _, id := range overlay.PanelIDs {
		if cfg.Panels.Toggled()[string(id)] {
			panels = append(panels, string(id))
		}
	}

	panelOptions := make([]huh.Option[string], 0, len(overlay.PanelIDs))
	for _, id := range overlay.PanelIDs {
		panelOptions = append(panelOptions, huh.NewOption(id.Title(), string(id)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Player name").
				Description("Labels your own line in the requested rates panel").
				Placeholder("player").
				Value(&cfg.PlayerName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("player name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Sample interval").
				Description("Minimum time between two samples of every statistic").
				Placeholder("200ms").
				Value(&interval).
				Validate(func(s string) error {
					d, err := time.ParseDuration(strings.TrimSpace(s))
					if err != nil {
						return fmt.Errorf("'%s' doesn't look like a duration, try 200ms or 1s", s)
					}
					if d <= 0 {
						return fmt.Errorf("sample interval must be positive")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Peer order").
				Description("How remote peers are listed in the requested rates panel").
				Options(
					huh.NewOption("As reported by the skew tracker", config.PeerOrderInsertion),
					huh.NewOption("Sorted by name", config.PeerOrderName),
				).
				Value(&cfg.PeerOrder),
			huh.NewMultiSelect[string]().
				Title("Panels shown on startup").
				Options(panelOptions...).
				Value(&panels),
			huh.NewConfirm().
				Title("Open the debug window on startup?").
				Value(&cfg.StartVisible),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	cfg.PlayerName = strings.TrimSpace(cfg.PlayerName)
	d, err := time.ParseDuration(strings.TrimSpace(interval))
	if err == nil {
		cfg.SampleInterval = d
	}
	cfg.Panels = config.PanelsConfig{}
	for _, p := range panels {
		switch overlay.PanelID(p) {
		case overlay.PanelTimeSync:
			cfg.Panels.TimeSync = true
		case overlay.PanelConnection:
			cfg.Panels.Connection = true
		case overlay.PanelDynamicTick:
			cfg.Panels.DynamicTick = true
		case overlay.PanelPeerRates:
			cfg.Panels.PeerRates = true
		}
	}
	return nil
}

// formError maps a huh form failure to a config error. Aborting the form is
// not an error.
func formError(w io.Writer, err error) error {
	if stderrors.Is(err, huh.ErrUserAborted) {
		fmt.Fprintln(w, "Cancelled.")
		return nil
	}
	return errors.WrapWithCode(err, errors.ErrConfig,
		"Failed to get user input",
		"Check terminal compatibility or use --yes to accept the defaults")
}

// configSetPath picks the file config set edits: --config, then --global,
// then whichever file Find resolves, then ./.statoverlay.yaml.
func configSetPath(explicit string, global bool) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if global {
		return configInitPath(configInitOptions{Global: true})
	}
	found, err := config.Find("")
	if err != nil {
		return "", err
	}
	if found != "" {
		return found, nil
	}
	return filepath.Join(".", config.ConfigFileName), nil
}

// configSet updates one key in path, creating the file with defaults first
// when it does not exist.
func configSet(w io.Writer, path, key, value string) error {
	if !config.IsKey(key) {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown config key '%s'", key),
			"Run 'statoverlay config show' to list the keys")
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := config.Write(path, config.DefaultConfig()); err != nil {
			return err
		}
	}

	if err := config.UpdateKey(path, key, value); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s Set %s to %s in %s\n", ui.SymbolSuccess, key, value, path)
	return nil
}

// configShow prints where the config came from and every effective value.
func configShow(w io.Writer, explicit string) error {
	path, err := config.Find(explicit)
	if err != nil {
		return err
	}
	cfg, err := config.LoadOrDefault(explicit)
	if err != nil {
		return err
	}

	source := "defaults (no config file found)"
	if path != "" {
		source = path
	}
	fmt.Fprintf(w, "%s %s\n\n", ui.MutedStyle.Render("Config:"), source)

	values, err := configValues(cfg)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(values))
	for _, key := range config.Keys() {
		rows = append(rows, []string{key, values[key]})
	}
	fmt.Fprintln(w, ui.RenderSimpleTable([]ui.TableColumn{{Title: "KEY"}, {Title: "VALUE"}}, rows))

	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(w, "\n%s", err)
	}
	return nil
}

// configValues flattens cfg into dotted keys with the values as written to
// the config file.
func configValues(cfg *config.Config) (map[string]string, error) {
	data, err := config.Marshal(cfg)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig, "Failed to render config", "")
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig, "Failed to render config", "")
	}

	values := make(map[string]string)
	if len(doc.Content) > 0 {
		flatten("", doc.Content[0], values)
	}
	return values, nil
}

func flatten(prefix string, node *yaml.Node, out map[string]string) {
	if node.Kind != yaml.MappingNode {
		out[prefix] = node.Value
		return
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if prefix != "" {
			key = prefix + "." + key
		}
		flatten(key, node.Content[i+1], out)
	}
}
