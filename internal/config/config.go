// Package config loads patchbot settings from the config file, environment
// variables, and built-in defaults.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the config file looked up in the working directory
// when --config is not given.
const DefaultConfigFile = "patchbot.yaml"

// Config represents CLI configuration sourced from the config file,
// environment variables, and flags.
type Config struct {
	ConfigFile    string   `mapstructure:"-" yaml:"-"`
	APIBaseURL    string   `mapstructure:"api_url" yaml:"api_url"`
	PluginsDir    string   `mapstructure:"plugins_dir" yaml:"plugins_dir"`
	DistDir       string   `mapstructure:"dist_dir" yaml:"dist_dir"`
	LicensesFile  string   `mapstructure:"licenses_file" yaml:"licenses_file"`
	OverridesFile string   `mapstructure:"overrides_file" yaml:"overrides_file"`
	PlatformID    int      `mapstructure:"platform_id" yaml:"platform_id"`
	DefaultTags   []string `mapstructure:"default_tags" yaml:"default_tags"`
	OutputFormat  string   `mapstructure:"format" yaml:"format"`
}

// Load reads configuration from the config file, environment variables, and defaults.
// A missing config file is not an error; a malformed one is.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	cfg.ConfigFile = path

	fileCfg, err := readFileConfig(path)
	if err != nil {
		return nil, err
	}

	cfg.merge(fileCfg)
	applyEnvOverrides(&cfg)

	return &cfg, nil
}

func defaultConfig() Config {
	return Config{
		APIBaseURL:    "https://patchstorage.com/api/beta",
		PluginsDir:    "plugins",
		DistDir:       "dist",
		LicensesFile:  "licenses.json",
		OverridesFile: "plugins.json",
		PlatformID:    8046,
		DefaultTags:   []string{"lv2-plugin"},
		OutputFormat:  "table",
	}
}

func readFileConfig(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config file: %w", err)
	}

	return cfg, nil
}

func (c *Config) merge(other Config) {
	if other.APIBaseURL != "" {
		c.APIBaseURL = strings.TrimRight(other.APIBaseURL, "/")
	}
	if other.PluginsDir != "" {
		c.PluginsDir = other.PluginsDir
	}
	if other.DistDir != "" {
		c.DistDir = other.DistDir
	}
	if other.LicensesFile != "" {
		c.LicensesFile = other.LicensesFile
	}
	if other.OverridesFile != "" {
		c.OverridesFile = other.OverridesFile
	}
	if other.PlatformID != 0 {
		c.PlatformID = other.PlatformID
	}
	if len(other.DefaultTags) != 0 {
		c.DefaultTags = other.DefaultTags
	}
	if other.OutputFormat != "" {
		c.OutputFormat = other.OutputFormat
	}
}

func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("PATCHBOT_API_URL"); val != "" {
		cfg.APIBaseURL = strings.TrimRight(val, "/")
	}
	if val := os.Getenv("PATCHBOT_PLUGINS_DIR"); val != "" {
		cfg.PluginsDir = val
	}
	if val := os.Getenv("PATCHBOT_DIST_DIR"); val != "" {
		cfg.DistDir = val
	}
	if val := os.Getenv("PATCHBOT_PLATFORM_ID"); val != "" {
		if id, err := strconv.Atoi(val); err == nil {
			cfg.PlatformID = id
		}
	}
	if val := os.Getenv("PATCHBOT_FORMAT"); val != "" {
		cfg.OutputFormat = val
	}
}

// Save writes the configuration as YAML to path. Used by `patchbot config init`
// to produce an editable starting point.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
