// Package config builds the immutable pipeline configuration: explicit
// defaults, overridden by an optional YAML file, overridden by INTAKE_*
// environment variables. The resulting value is passed into every
// component; there is no ambient global configuration state.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config is the full configuration surface of the intake pipeline.
type Config struct {
	LLM     LLMConfig     `yaml:"llm"`
	Pricing PricingConfig `yaml:"pricing"`
	Comps   CompsConfig   `yaml:"comps"`
	IO      IOConfig      `yaml:"io"`
}

// LLMConfig selects and parameterizes the extraction mode.
type LLMConfig struct {
	Enabled  bool   `yaml:"enabled" env:"INTAKE_LLM_ENABLED"`   // true = vision extraction, false = offline
	Endpoint string `yaml:"endpoint" env:"INTAKE_LLM_ENDPOINT"` // vision service URL, required when enabled
	Model    string `yaml:"model" env:"INTAKE_LLM_MODEL"`
}

// PricingConfig parameterizes the pricing engine and the recommendation
// heuristic.
type PricingConfig struct {
	DefaultFeePct       float64 `yaml:"default_fee_pct" env:"INTAKE_PRICING_DEFAULT_FEE_PCT"`
	StorageCostPerMonth float64 `yaml:"storage_cost_per_month" env:"INTAKE_PRICING_STORAGE_COST_PER_MONTH"`
	DOMCapDays          int     `yaml:"dom_cap_days" env:"INTAKE_PRICING_DOM_CAP_DAYS"`
}

// CompsConfig parameterizes the comp stats provider.
type CompsConfig struct {
	Provider   string `yaml:"provider" env:"INTAKE_COMPS_PROVIDER"`
	WindowDays int    `yaml:"window_days" env:"INTAKE_COMPS_WINDOW_DAYS"`
}

// IOConfig parameterizes discovery and image normalization.
type IOConfig struct {
	ImageMaxEdgePx int    `yaml:"image_max_edge_px" env:"INTAKE_IO_IMAGE_MAX_EDGE_PX"`
	IgnorePrefix   string `yaml:"ignore_prefix" env:"INTAKE_IO_IGNORE_PREFIX"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LLM: LLMConfig{
			Enabled: false,
			Model:   "gpt-4o-mini",
		},
		Pricing: PricingConfig{
			DefaultFeePct:       0.13,
			StorageCostPerMonth: 50,
			DOMCapDays:          90,
		},
		Comps: CompsConfig{
			Provider:   "stub",
			WindowDays: 90,
		},
		IO: IOConfig{
			ImageMaxEdgePx: 3000,
			IgnorePrefix:   "_",
		},
	}
}

// Load builds the configuration. path may be empty (defaults + env only).
// A named file that does not exist is an error; a malformed file is an
// error; keys absent from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		// Unmarshalling into the populated defaults value only overwrites
		// keys the file actually sets.
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate performs strict validation on the configuration.
func (c Config) Validate() error {
	if c.Pricing.DefaultFeePct < 0 || c.Pricing.DefaultFeePct >= 1 {
		return fmt.Errorf("pricing.default_fee_pct must be in [0, 1), got %g", c.Pricing.DefaultFeePct)
	}
	if c.Pricing.StorageCostPerMonth < 0 {
		return fmt.Errorf("pricing.storage_cost_per_month must be >= 0, got %g", c.Pricing.StorageCostPerMonth)
	}
	if c.Pricing.DOMCapDays < 1 {
		return fmt.Errorf("pricing.dom_cap_days must be >= 1, got %d", c.Pricing.DOMCapDays)
	}
	if c.Comps.Provider != "stub" {
		return fmt.Errorf("unknown comps.provider: %s (only 'stub' is built in)", c.Comps.Provider)
	}
	if c.Comps.WindowDays < 1 {
		return fmt.Errorf("comps.window_days must be >= 1, got %d", c.Comps.WindowDays)
	}
	if c.IO.ImageMaxEdgePx < 1 {
		return fmt.Errorf("io.image_max_edge_px must be >= 1, got %d", c.IO.ImageMaxEdgePx)
	}
	if c.LLM.Enabled && c.LLM.Endpoint == "" {
		return fmt.Errorf("llm.endpoint is required when llm.enabled is true")
	}
	return nil
}
