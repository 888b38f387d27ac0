package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/s0up4200/cmrquery/query"
)

// EnvPrefix prefixes environment overrides, e.g. CMRQUERY_CMR_URL
const EnvPrefix = "CMRQUERY"

// Load loads the configuration from file. Without an explicit path a missing
// config file is not an error and defaults apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".cmrquery"))
		}
		v.AddConfigPath("/etc/cmrquery/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// CMR defaults
	v.SetDefault("cmr.url", "https://cmr.earthdata.nasa.gov/search")
	v.SetDefault("cmr.timeout", "30s")
	v.SetDefault("cmr.user_agent", "cmrquery")
	v.SetDefault("cmr.concurrency", 4)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.CMR.URL == "" {
		return fmt.Errorf("cmr.url is required")
	}

	if cfg.CMR.Timeout <= 0 {
		return fmt.Errorf("cmr.timeout must be positive, got %s", cfg.CMR.Timeout)
	}

	if cfg.CMR.Concurrency < 1 {
		return fmt.Errorf("cmr.concurrency must be at least 1, got %d", cfg.CMR.Concurrency)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	for name, preset := range cfg.Presets {
		switch query.Kind(preset.Kind) {
		case query.KindGranules, query.KindCollections:
		default:
			return fmt.Errorf("invalid presets.%s.kind: %q (must be 'granules' or 'collections')", name, preset.Kind)
		}
	}

	return nil
}

// Preset looks up a preset by name. Viper lowercases keys, so lookups are
// case-insensitive.
func (c *Config) Preset(name string) (Preset, bool) {
	p, ok := c.Presets[strings.ToLower(name)]
	return p, ok
}
