// Package config loads fxgold settings from an optional YAML file and the
// environment.
package config

import (
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/rxtech-lab/fxgold/internal/version"
	"github.com/rxtech-lab/fxgold/pkg/errors"
	"github.com/rxtech-lab/fxgold/pkg/marketdata/provider"
)

// Environment variables overriding file values.
const (
	EnvPolygonAPIKey = "POLYGON_API_KEY"
	EnvProvider      = "FXGOLD_PROVIDER"
	EnvOutputDir     = "FXGOLD_OUTPUT_DIR"
	EnvLogLevel      = "FXGOLD_LOG_LEVEL"
	EnvOpenViewer    = "FXGOLD_OPEN"
)

// ChartConfig controls the output image.
type ChartConfig struct {
	DPI          float64 `yaml:"dpi" json:"dpi" jsonschema:"description=Image resolution in dots per inch,default=300" validate:"gte=72,lte=1200"`
	WidthInches  float64 `yaml:"width_inches" json:"width_inches" jsonschema:"description=Image width in inches,default=12" validate:"gt=0,lte=40"`
	HeightInches float64 `yaml:"height_inches" json:"height_inches" jsonschema:"description=Image height in inches,default=6" validate:"gt=0,lte=40"`
}

// Config holds all application configuration.
type Config struct {
	Version       string      `yaml:"version" json:"version,omitempty" jsonschema:"description=Config schema version"`
	Provider      string      `yaml:"provider" json:"provider" jsonschema:"description=Market data provider,enum=polygon,enum=binance,default=polygon" validate:"required,oneof=polygon binance"`
	PolygonAPIKey string      `yaml:"polygon_api_key" json:"polygon_api_key,omitempty" jsonschema:"description=Polygon.io API key" validate:"required_if=Provider polygon"`
	OutputDir     string      `yaml:"output_dir" json:"output_dir" jsonschema:"description=Directory the chart is written to,default=." validate:"required"`
	LogLevel      string      `yaml:"log_level" json:"log_level" jsonschema:"description=Log level,enum=debug,enum=info,enum=warn,enum=error,default=info" validate:"required,oneof=debug info warn error"`
	OpenViewer    bool        `yaml:"open_viewer" json:"open_viewer" jsonschema:"description=Open the chart in the system image viewer"`
	Chart         ChartConfig `yaml:"chart" json:"chart"`
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		Version:   version.ConfigVersion,
		Provider:  string(provider.ProviderPolygon),
		OutputDir: ".",
		LogLevel:  "info",
		Chart: ChartConfig{
			DPI:          300,
			WidthInches:  12,
			HeightInches: 6,
		},
	}
}

// ProviderType returns the configured provider.
func (c *Config) ProviderType() provider.ProviderType {
	return provider.ProviderType(c.Provider)
}

// Load reads the YAML file at path, applies environment overrides and fills
// defaults. An empty path skips the file. The result is not validated.
func Load(path string) (*Config, error) {
	return load(path, os.Getenv)
}

func load(path string, getenv func(string) string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "read config %s", path)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "parse config %s", path)
		}
	}

	cfg.applyEnv(getenv)
	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv(EnvPolygonAPIKey); v != "" {
		c.PolygonAPIKey = v
	}

	if v := getenv(EnvProvider); v != "" {
		c.Provider = v
	}

	if v := getenv(EnvOutputDir); v != "" {
		c.OutputDir = v
	}

	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}

	if v := getenv(EnvOpenViewer); v != "" {
		if open, err := strconv.ParseBool(v); err == nil {
			c.OpenViewer = open
		}
	}
}

func (c *Config) applyDefaults() {
	d := Default()

	if c.Provider == "" {
		c.Provider = d.Provider
	}

	if c.OutputDir == "" {
		c.OutputDir = d.OutputDir
	}

	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}

	if c.Chart.DPI == 0 {
		c.Chart.DPI = d.Chart.DPI
	}

	if c.Chart.WidthInches == 0 {
		c.Chart.WidthInches = d.Chart.WidthInches
	}

	if c.Chart.HeightInches == 0 {
		c.Chart.HeightInches = d.Chart.HeightInches
	}
}

// Validate checks the config version and every field constraint.
func (c *Config) Validate() error {
	if err := version.CheckConfigCompatibility(c.Version, version.ConfigVersion); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidVersion, "unsupported config version", err)
	}

	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid configuration", err)
	}

	return nil
}
