package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "estate-intake.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.False(t, cfg.LLM.Enabled)
	assert.Equal(t, 0.13, cfg.Pricing.DefaultFeePct)
	assert.Equal(t, "stub", cfg.Comps.Provider)
	assert.Equal(t, "_", cfg.IO.IgnorePrefix)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
pricing:
  default_fee_pct: 0.15
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 0.15, cfg.Pricing.DefaultFeePct)
	// Keys the file does not set keep their defaults.
	assert.Equal(t, float64(50), cfg.Pricing.StorageCostPerMonth)
	assert.Equal(t, 90, cfg.Pricing.DOMCapDays)
	assert.Equal(t, 3000, cfg.IO.ImageMaxEdgePx)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
pricing:
  dom_cap_days: 45
comps:
  window_days: 30
`)
	t.Setenv("INTAKE_PRICING_DOM_CAP_DAYS", "60")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 60, cfg.Pricing.DOMCapDays)
	assert.Equal(t, 30, cfg.Comps.WindowDays)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestLoadMalformedFile(t *testing.T) {
	path := writeConfig(t, "pricing: [not: a: mapping")

	_, err := Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "fee pct at one",
			mutate:  func(c *Config) { c.Pricing.DefaultFeePct = 1.0 },
			wantErr: "default_fee_pct",
		},
		{
			name:    "negative fee pct",
			mutate:  func(c *Config) { c.Pricing.DefaultFeePct = -0.1 },
			wantErr: "default_fee_pct",
		},
		{
			name:    "negative storage cost",
			mutate:  func(c *Config) { c.Pricing.StorageCostPerMonth = -5 },
			wantErr: "storage_cost_per_month",
		},
		{
			name:    "zero dom cap",
			mutate:  func(c *Config) { c.Pricing.DOMCapDays = 0 },
			wantErr: "dom_cap_days",
		},
		{
			name:    "unknown comps provider",
			mutate:  func(c *Config) { c.Comps.Provider = "ebay" },
			wantErr: "unknown comps.provider",
		},
		{
			name:    "zero comps window",
			mutate:  func(c *Config) { c.Comps.WindowDays = 0 },
			wantErr: "window_days",
		},
		{
			name:    "zero max edge",
			mutate:  func(c *Config) { c.IO.ImageMaxEdgePx = 0 },
			wantErr: "image_max_edge_px",
		},
		{
			name:    "llm enabled without endpoint",
			mutate:  func(c *Config) { c.LLM.Enabled = true },
			wantErr: "llm.endpoint is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
