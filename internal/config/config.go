// Package config loads the rule list and engine settings from a TOML
// file and converts them into the immutable snapshots the engine swaps
// in wholesale. The engine itself never does file I/O; this package and
// its watcher subpackage own that entirely.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/macroweave/macroweave/internal/expand"
)

// RuleConfig is one trigger rule as written in the configuration file.
type RuleConfig struct {
	Trigger       string `toml:"trigger"`
	Expansion     string `toml:"expansion"`
	Mode          string `toml:"mode"`
	CaseSensitive bool   `toml:"case_sensitive"`
	Enabled       bool   `toml:"enabled"`
}

// SettingsConfig are the global engine tunables.
type SettingsConfig struct {
	Delimiters       string `toml:"delimiters"`
	BufferCapacity   int    `toml:"buffer_capacity"`
	BackspaceDelayMS int    `toml:"backspace_delay_ms"`
	PasteDelayMS     int    `toml:"paste_delay_ms"`
	Enabled          bool   `toml:"enabled"`
}

// Config is the full configuration file.
type Config struct {
	Settings SettingsConfig `toml:"settings"`
	Rules    []RuleConfig   `toml:"rules"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Settings: SettingsConfig{
			Delimiters:       expand.DefaultDelimiters,
			BufferCapacity:   expand.DefaultBufferCapacity,
			BackspaceDelayMS: 5,
			PasteDelayMS:     50,
			Enabled:          true,
		},
	}
}

// Load reads the configuration from path. A missing file is not an
// error: defaults are returned.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates TOML configuration data.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for malformed rules and settings.
// The engine only ever sees a validated snapshot.
func (c *Config) Validate() error {
	if c.Settings.BufferCapacity < 0 {
		return fmt.Errorf("settings: buffer_capacity %d is negative", c.Settings.BufferCapacity)
	}
	if c.Settings.BackspaceDelayMS < 0 {
		return fmt.Errorf("settings: backspace_delay_ms %d is negative", c.Settings.BackspaceDelayMS)
	}
	if c.Settings.PasteDelayMS < 0 {
		return fmt.Errorf("settings: paste_delay_ms %d is negative", c.Settings.PasteDelayMS)
	}

	for i, r := range c.Rules {
		if r.Trigger == "" {
			return fmt.Errorf("rule %d: empty trigger", i)
		}
		if r.Mode != "" {
			if _, err := expand.ModeFromString(r.Mode); err != nil {
				return fmt.Errorf("rule %d (%s): %w", i, r.Trigger, err)
			}
		}
	}
	return nil
}

// RuleSet converts the configured rules into an engine snapshot.
// Rules with no mode default to on_delimiter, the safer firing policy.
func (c *Config) RuleSet() *expand.RuleSet {
	rules := make([]expand.Rule, 0, len(c.Rules))
	for _, r := range c.Rules {
		mode := expand.ModeOnDelimiter
		if r.Mode != "" {
			mode, _ = expand.ModeFromString(r.Mode)
		}
		rules = append(rules, expand.Rule{
			Trigger:       r.Trigger,
			Template:      r.Expansion,
			Mode:          mode,
			CaseSensitive: r.CaseSensitive,
			Enabled:       r.Enabled,
		})
	}
	return expand.NewRuleSet(rules)
}

// EngineSettings converts the configured settings into engine tunables.
func (c *Config) EngineSettings() expand.Settings {
	s := expand.Settings{
		Delimiters:     c.Settings.Delimiters,
		BufferCapacity: c.Settings.BufferCapacity,
		BackspaceDelay: time.Duration(c.Settings.BackspaceDelayMS) * time.Millisecond,
		PasteDelay:     time.Duration(c.Settings.PasteDelayMS) * time.Millisecond,
		Enabled:        c.Settings.Enabled,
	}
	if s.Delimiters == "" {
		s.Delimiters = expand.DefaultDelimiters
	}
	if s.BufferCapacity == 0 {
		s.BufferCapacity = expand.DefaultBufferCapacity
	}
	return s
}
