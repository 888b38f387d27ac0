package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	CMR     CMRConfig         `mapstructure:"cmr"`
	Logging LoggingConfig     `mapstructure:"logging"`
	Presets map[string]Preset `mapstructure:"presets"`
}

// CMRConfig holds CMR search endpoint connection details
type CMRConfig struct {
	URL         string        `mapstructure:"url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	UserAgent   string        `mapstructure:"user_agent"`
	Concurrency int           `mapstructure:"concurrency"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// Preset is a named, reusable query. Params uses the parameter names of the
// search API, e.g. short_name or temporal. Where optionally filters the
// returned entries with an expression.
type Preset struct {
	Kind   string         `mapstructure:"kind"`
	Params map[string]any `mapstructure:"params"`
	Where  string         `mapstructure:"where"`
}
