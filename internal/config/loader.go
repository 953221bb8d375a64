package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/statoverlay/internal/errors"
	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = ".statoverlay.yaml"
	// GlobalConfigDir is the directory for global config.
	GlobalConfigDir = ".config/statoverlay"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix prefixes environment overrides, e.g. STATOVERLAY_SAMPLE_INTERVAL.
	EnvPrefix = "STATOVERLAY"
)

// defaultValues lists every config key with its default, in file order.
var defaultValues = []struct {
	key   string
	value interface{}
}{
	{"version", CurrentConfigVersion},
	{"player_name", "player"},
	{"sample_interval", "200ms"},
	{"frame_interval", "50ms"},
	{"fast_mode", false},
	{"start_visible", false},
	{"peer_order", PeerOrderInsertion},
	{"window.width", 300},
	{"window.height", 400},
	{"window.right_margin", 50},
	{"window.cell_width", 8},
	{"window.cell_height", 16},
	{"panels.timesync", false},
	{"panels.connection", false},
	{"panels.dynamictick", false},
	{"panels.peerrates", false},
}

// Keys returns every known config key in dotted form.
func Keys() []string {
	keys := make([]string, len(defaultValues))
	for i, d := range defaultValues {
		keys[i] = d.key
	}
	return keys
}

// IsKey reports whether key is a known dotted config key.
func IsKey(key string) bool {
	for _, d := range defaultValues {
		if d.key == key {
			return true
		}
	}
	return false
}

// Load reads config from the specified path. Environment overrides apply on
// top of the file.
func Load(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'statoverlay config init' to create a config file, or specify one with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseConfig(v, path)
}

// Parse reads config from YAML bytes.
func Parse(data []byte) (*Config, error) {
	v := newViper()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to parse config",
			"Check the YAML syntax")
	}
	return parseConfig(v, "config")
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .statoverlay.yaml in the current directory
// 3. ~/.config/statoverlay/config.yaml
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	localConfig := filepath.Join(cwd, ConfigFileName)
	if _, err := os.Stat(localConfig); err == nil {
		return localConfig, nil
	}

	if global := GlobalPath(); global != "" {
		if _, err := os.Stat(global); err == nil {
			return global, nil
		}
	}

	return "", nil
}

// GlobalPath returns ~/.config/statoverlay/config.yaml, or "" when the home
// directory is unknown.
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
}

// LoadOrDefault loads config from the found path, or returns defaults (with
// environment overrides) if no file exists.
func LoadOrDefault(explicit string) (*Config, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, err
	}

	if path == "" {
		return parseConfig(newViper(), "environment")
	}

	return Load(path)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, d := range defaultValues {
		v.SetDefault(d.key, d.value)
	}
	return v
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, source string) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the values in "+source)
	}

	cfg.PlayerName = strings.TrimSpace(cfg.PlayerName)
	cfg.PeerOrder = strings.ToLower(strings.TrimSpace(cfg.PeerOrder))

	return cfg, nil
}
