package config

// Config represents the complete atomyst configuration.
// It can be loaded from .atomyst.yml with environment variable overrides.
type Config struct {
	Scan    ScanConfig    `yaml:"scan" mapstructure:"scan"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
	History HistoryConfig `yaml:"history" mapstructure:"history"`
}

// ScanConfig bounds the consumer-scan file set when git tracking is
// unavailable.
type ScanConfig struct {
	Include []string `yaml:"include" mapstructure:"include"` // glob patterns for candidate files
	Ignore  []string `yaml:"ignore" mapstructure:"ignore"`   // glob patterns to skip
}

// OutputConfig tunes generated files.
type OutputConfig struct {
	Format      string `yaml:"format" mapstructure:"format"`             // text, json, yaml, markdown
	KindPrefix  bool   `yaml:"kind_prefix" mapstructure:"kind_prefix"`   // class_/def_/... filename tags
	KeepPragmas bool   `yaml:"keep_pragmas" mapstructure:"keep_pragmas"` // keep # mypy:/# noqa pragmas in headers
}

// HistoryConfig controls the run ledger.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Path    string `yaml:"path" mapstructure:"path"` // empty means .atomyst/history.db under the repo root
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Scan: ScanConfig{
			Include: []string{"**/*.py"},
			Ignore: []string{
				".git/**",
				".venv/**",
				"venv/**",
				"__pycache__/**",
				"build/**",
				"dist/**",
				"*.egg-info/**",
			},
		},
		Output: OutputConfig{
			Format:      "text",
			KindPrefix:  false,
			KeepPragmas: false,
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    "",
		},
	}
}
