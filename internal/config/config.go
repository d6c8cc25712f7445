// Package config provides configuration loading for suggestd.
//
// Configuration is loaded from a YAML file with environment variable
// overrides and hardcoded defaults, in that precedence order.
package config

import (
	"fmt"
)

// Thresholds is the tunable surface of the pipeline. Every value is a
// score bound in [0,1] except MinEvidenceChars.
type Thresholds struct {
	// Action is the minimum actionable signal for a section to pass the
	// actionability gate.
	Action float64 `koanf:"action" json:"action"`
	// OutOfScope is the dominance level at which a communication or
	// calendar score suppresses a section outright.
	OutOfScope float64 `koanf:"out_of_scope" json:"out_of_scope"`
	// OverallMin is the overall-score floor below which a candidate is
	// downgraded to needs-clarification.
	OverallMin float64 `koanf:"overall_min" json:"overall_min"`
	// SectionMin is the section-actionability floor for the same downgrade.
	SectionMin float64 `koanf:"section_min" json:"section_min"`
	// Generic is the heading-genericness cutoff used by suppression rules.
	Generic float64 `koanf:"generic" json:"generic"`
	// Attach is the minimum similarity for routing to an existing initiative.
	Attach float64 `koanf:"attach" json:"attach"`
	// MinEvidenceChars is the shortest evidence text accepted by validation.
	MinEvidenceChars int `koanf:"min_evidence_chars" json:"min_evidence_chars"`
}

// Logging holds the logging section of the config file.
type Logging struct {
	Level  string `koanf:"level" json:"level"`
	Format string `koanf:"format" json:"format"`
	// RedactMaxChars truncates evidence and body text in debug output.
	// Zero means no truncation.
	RedactMaxChars int `koanf:"redact_max_chars" json:"redact_max_chars"`
}

// Config is the full suggestd configuration.
type Config struct {
	Thresholds     Thresholds `koanf:"thresholds" json:"thresholds"`
	MaxSuggestions int        `koanf:"max_suggestions" json:"max_suggestions"`
	EnableDebug    bool       `koanf:"enable_debug" json:"enable_debug"`
	Logging        Logging    `koanf:"logging" json:"logging"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Thresholds.Action == 0 {
		cfg.Thresholds.Action = 0.55
	}
	if cfg.Thresholds.OutOfScope == 0 {
		cfg.Thresholds.OutOfScope = 0.75
	}
	if cfg.Thresholds.OverallMin == 0 {
		cfg.Thresholds.OverallMin = 0.5
	}
	if cfg.Thresholds.SectionMin == 0 {
		cfg.Thresholds.SectionMin = 0.45
	}
	if cfg.Thresholds.Generic == 0 {
		cfg.Thresholds.Generic = 0.6
	}
	if cfg.Thresholds.Attach == 0 {
		cfg.Thresholds.Attach = 0.3
	}
	if cfg.Thresholds.MinEvidenceChars == 0 {
		cfg.Thresholds.MinEvidenceChars = 12
	}
	if cfg.MaxSuggestions == 0 {
		cfg.MaxSuggestions = 8
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.RedactMaxChars == 0 {
		cfg.Logging.RedactMaxChars = 160
	}
}

// Validate checks bounds on every tunable.
func (c *Config) Validate() error {
	scores := map[string]float64{
		"thresholds.action":       c.Thresholds.Action,
		"thresholds.out_of_scope": c.Thresholds.OutOfScope,
		"thresholds.overall_min":  c.Thresholds.OverallMin,
		"thresholds.section_min":  c.Thresholds.SectionMin,
		"thresholds.generic":      c.Thresholds.Generic,
		"thresholds.attach":       c.Thresholds.Attach,
	}
	for name, v := range scores {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s must be in [0,1], got %v", name, v)
		}
	}
	if c.Thresholds.MinEvidenceChars < 0 {
		return fmt.Errorf("thresholds.min_evidence_chars must be >= 0, got %d", c.Thresholds.MinEvidenceChars)
	}
	if c.MaxSuggestions < 1 {
		return fmt.Errorf("max_suggestions must be >= 1, got %d", c.MaxSuggestions)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
