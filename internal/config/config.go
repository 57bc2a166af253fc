// Package config resolves tdr settings from defaults, an optional config
// file, TDR_* environment variables and command-line overrides, in that
// order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the resolved application configuration.
type Config struct {
	// DataFile is the YAML board file.
	DataFile string `mapstructure:"data_file"`
	// LogFile receives the application log. The terminal belongs to the UI.
	LogFile  string `mapstructure:"log_file"`
	LogLevel string `mapstructure:"log_level"`
	// RefreshInterval is the heartbeat that keeps countdowns current.
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	// ItemHeight and WorkspaceHeight are row heights used by the scroll
	// engine.
	ItemHeight      int  `mapstructure:"item_height"`
	WorkspaceHeight int  `mapstructure:"workspace_height"`
	Autosave        bool `mapstructure:"autosave"`
	// Watch reloads the board when another process rewrites the data file.
	Watch         bool          `mapstructure:"watch"`
	StatusTimeout time.Duration `mapstructure:"status_timeout"`
	// Theme maps colour roles to hex overrides, e.g. finished: "#00ff00".
	Theme map[string]string `mapstructure:"theme"`
}

// Options are the command-line overrides.
type Options struct {
	// ConfigFile replaces the config search path when set.
	ConfigFile string
	// DataFile overrides data_file when set.
	DataFile string
}

// Load reads configuration from ~/.config/tdr/config.yaml (or TOML/JSON).
func Load(opts Options) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	v := viper.New()
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(ConfigDir())
	}

	setDefaults(v, home)

	v.SetEnvPrefix("TDR")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// A missing file is fine unless it was named explicitly.
		if !errors.As(err, &notFound) || opts.ConfigFile != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if opts.DataFile != "" {
		v.Set("data_file", opts.DataFile)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.DataFile = expandHome(cfg.DataFile, home)
	cfg.LogFile = expandHome(cfg.LogFile, home)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DataFile == "" {
		return errors.New("config: data_file is empty")
	}
	if c.ItemHeight < 1 || c.WorkspaceHeight < 1 {
		return fmt.Errorf("config: row heights must be positive (item_height=%d, workspace_height=%d)",
			c.ItemHeight, c.WorkspaceHeight)
	}
	if c.RefreshInterval <= 0 {
		return fmt.Errorf("config: refresh_interval must be positive, got %s", c.RefreshInterval)
	}
	return nil
}

// ConfigDir is where tdr looks for config.yaml and writes its log by
// default.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tdr")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "tdr")
}

func expandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
