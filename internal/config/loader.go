package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults -> config file -> environment variables (env wins).
	Load() (*Config, error)
}

type loader struct {
	rootDir string
}

// NewLoader creates a configuration loader for the given root directory.
func NewLoader(rootDir string) Loader {
	return &loader{rootDir: rootDir}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (ATOMYST_*)
// 2. Config file (.atomyst.yml / .atomyst.yaml in the root directory)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".atomyst")
	v.SetConfigType("yaml")
	v.AddConfigPath(l.rootDir)

	v.SetEnvPrefix("ATOMYST")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("output.format")
	v.BindEnv("output.kind_prefix")
	v.BindEnv("output.keep_pragmas")
	v.BindEnv("history.enabled")
	v.BindEnv("history.path")

	defaults := Default()
	v.SetDefault("scan.include", defaults.Scan.Include)
	v.SetDefault("scan.ignore", defaults.Scan.Ignore)
	v.SetDefault("output.format", defaults.Output.Format)
	v.SetDefault("output.kind_prefix", defaults.Output.KindPrefix)
	v.SetDefault("output.keep_pragmas", defaults.Output.KeepPragmas)
	v.SetDefault("history.enabled", defaults.History.Enabled)
	v.SetDefault("history.path", defaults.History.Path)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; anything else is a real error.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}
