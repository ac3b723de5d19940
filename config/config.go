package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/pjanik/dayplan/core/metrics"
	"github.com/pjanik/dayplan/core/planner"
)

// Config is the full service configuration.
type Config struct {
	Planner planner.Config `json:"planner"`
	Metrics metrics.Config `json:"metrics"`
	API     APIConfig      `json:"api"`
	History HistoryConfig  `json:"history"`
}

// APIConfig defines the HTTP listener settings.
type APIConfig struct {
	Addr string `json:"addr"`
	// Token, when non-empty, is required as a Bearer token on every request.
	Token string `json:"token"`
}

// SetDefaults applies sane defaults.
func (c *APIConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}

// HistoryConfig defines where day records are kept.
type HistoryConfig struct {
	Path         string `json:"path"`
	LookbackDays int    `json:"lookback_days"`
}

// SetDefaults applies sane defaults.
func (c *HistoryConfig) SetDefaults() {
	if c.Path == "" {
		c.Path = "history.jsonl"
	}
	if c.LookbackDays == 0 {
		c.LookbackDays = 7
	}
}

// Load reads the configuration from a YAML or JSON file, then applies
// DP_-prefixed environment overrides (DP_PLANNER__BLOCK_MINUTES and so on).
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("DP_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "dp_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	// Defaults go in before decoding: keys present in the file or environment
	// override them, while an explicit zero (break_minutes: 0 disables
	// breaks) survives instead of being coerced back to the default.
	var cfg Config
	cfg.Planner.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.API.SetDefaults()
	cfg.History.SetDefaults()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	if err := cfg.Planner.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
