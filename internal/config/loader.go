package config

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"
	"unicode"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override, e.g. TOURNEY_DATA_DIR.
const EnvPrefix = "TOURNEY_"

// EnvConfigFile points at an optional YAML configuration file.
const EnvConfigFile = EnvPrefix + "CONFIG"

// List keys replace the default slice wholesale instead of merging into it.
var listKeys = []string{"tournaments", "members", "breakdown_tournaments"}

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if TOURNEY_CONFIG is set
//  3. env (prefix TOURNEY_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: file %s: %w", ErrLoadConfig, path, err)
		}
	}

	// TOURNEY_DATA_DIR -> data_dir; keys stay flat so underscores survive.
	// List keys take comma or space separated values: TOURNEY_MEMBERS=4,7.
	envProvider := env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, any) {
		key = strings.TrimPrefix(strings.ToLower(key), strings.ToLower(EnvPrefix))
		if slices.Contains(listKeys, key) {
			return key, splitList(value)
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	for _, key := range listKeys {
		if !k.Exists(key) {
			continue
		}
		switch key {
		case "tournaments":
			cfg.Tournaments = nil
		case "members":
			cfg.Members = nil
		case "breakdown_tournaments":
			cfg.BreakdownTournaments = nil
		}
	}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// splitList splits an env list value on commas and whitespace.
func splitList(value string) []string {
	return strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

// Validate reports the first inconsistency in c.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("%w: data_dir must not be empty", ErrInvalidConfig)
	}
	if len(c.Tournaments) == 0 {
		return fmt.Errorf("%w: at least one tournament is required", ErrInvalidConfig)
	}
	seen := make(map[string]struct{}, len(c.Tournaments))
	for i, t := range c.Tournaments {
		if t.Name == "" || t.File == "" {
			return fmt.Errorf("%w: tournament %d needs a name and a file", ErrInvalidConfig, i)
		}
		if _, dup := seen[t.Name]; dup {
			return fmt.Errorf("%w: duplicate tournament %q", ErrInvalidConfig, t.Name)
		}
		seen[t.Name] = struct{}{}
	}
	for _, name := range c.BreakdownTournaments {
		if _, ok := seen[name]; !ok {
			return fmt.Errorf("%w: breakdown tournament %q is not configured", ErrInvalidConfig, name)
		}
	}
	for _, m := range c.Members {
		if m < 1 {
			return fmt.Errorf("%w: member %d must be >= 1", ErrInvalidConfig, m)
		}
	}
	if c.MinEventNameLength < 0 {
		return fmt.Errorf("%w: min_event_name_length must not be negative", ErrInvalidConfig)
	}
	if (c.RenderCharts || c.RenderHistograms) && c.ChartDir == "" {
		return fmt.Errorf("%w: chart_dir must be set when charts are rendered", ErrInvalidConfig)
	}
	return nil
}
