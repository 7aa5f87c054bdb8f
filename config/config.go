package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	ConfigDebug           = "debug"
	ConfigDefaultVariant  = "default-variant"
	ConfigSaveDir         = "save-dir"
	ConfigPoolCapacity    = "pool-capacity"
	ConfigPerftThreads    = "perft-threads"
	ConfigAutoplayThreads = "autoplay-threads"
	ConfigAutoplayGames   = "autoplay-games"
	ConfigHistogramBins   = "histogram-bins"
	ConfigCPUProfile      = "cpu-profile"
)

const envPrefix = "MOTH"

type Config struct {
	*viper.Viper

	dir string
}

// Load reads defaults, then config.yaml, then MOTH_* environment
// variables, then any --key=value arguments, each overriding the last.
// It returns the arguments that were not settings.
func (c *Config) Load(args []string) ([]string, error) {
	c.Viper = viper.New()
	c.SetConfigName("config")
	c.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		c.dir = filepath.Join(home, ".moth")
		c.AddConfigPath(c.dir)
	}
	c.AddConfigPath(".")

	c.SetEnvPrefix(envPrefix)
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigDefaultVariant, "othello")
	c.SetDefault(ConfigSaveDir, ".")
	c.SetDefault(ConfigPoolCapacity, 0)
	c.SetDefault(ConfigPerftThreads, 4)
	c.SetDefault(ConfigAutoplayThreads, 4)
	c.SetDefault(ConfigAutoplayGames, 1000)
	c.SetDefault(ConfigHistogramBins, 15)

	err := c.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var rest []string
	for _, arg := range args {
		if !strings.HasPrefix(arg, "--") {
			rest = append(rest, arg)
			continue
		}
		key, val, ok := strings.Cut(strings.TrimPrefix(arg, "--"), "=")
		if !ok {
			// A bare flag turns a boolean on.
			val = "true"
		}
		c.Set(key, val)
	}
	return rest, nil
}

// SanitizedSettings is meant for logging.
func (c *Config) SanitizedSettings() map[string]any {
	settings := c.AllSettings()
	for k := range settings {
		if strings.Contains(k, "token") || strings.Contains(k, "secret") {
			settings[k] = "********"
		}
	}
	return settings
}

// Write saves the current settings back to the config file that was read,
// or to $HOME/.moth/config.yaml if there was none.
func (c *Config) Write() error {
	if used := c.ConfigFileUsed(); used != "" {
		return c.WriteConfig()
	}
	if c.dir == "" {
		return errors.New("no config directory available")
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return c.WriteConfigAs(filepath.Join(c.dir, "config.yaml"))
}
