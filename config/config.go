// Package config groups the resource limits and CLI defaults read once per
// invocation, following the flag/env/file precedence this repository's CLI
// tooling establishes with Viper.
package config

import (
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// Config holds resource limits and CLI defaults. Core packages never read
// it directly — they take explicit parameters — so a library caller that
// skips the CLI entirely supplies its own limits.
type Config struct {
	MaxASTDepth       int  `mapstructure:"max_ast_depth"`
	MaxTokens         int  `mapstructure:"max_tokens"`
	MaxSequenceLength int  `mapstructure:"max_sequence_length"`
	DefaultPopulation int  `mapstructure:"default_population"`
	Strict            bool `mapstructure:"strict"`
	Pretty            bool `mapstructure:"pretty"`
}

// Defaults mirrors the resource policy's documented defaults.
func Defaults() Config {
	return Config{
		MaxASTDepth:       64,
		MaxTokens:         1 << 20,
		MaxSequenceLength: 1 << 17,
		DefaultPopulation: 0,
		Strict:            false,
		Pretty:            false,
	}
}

// Load builds a Config from, in order of precedence, CLI flags (already
// bound into v by the caller), ZENITH_* environment variables, and an
// optional TOML config file.
func Load(v *viper.Viper, configFile string) (Config, error) {
	cfg := Defaults()
	v.SetEnvPrefix("ZENITH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("max_ast_depth", cfg.MaxASTDepth)
	v.SetDefault("max_tokens", cfg.MaxTokens)
	v.SetDefault("max_sequence_length", cfg.MaxSequenceLength)
	v.SetDefault("default_population", cfg.DefaultPopulation)
	v.SetDefault("strict", cfg.Strict)
	v.SetDefault("pretty", cfg.Pretty)

	if configFile != "" {
		raw, err := os.ReadFile(configFile)
		if err != nil {
			return cfg, err
		}
		var fileValues map[string]any
		if err := toml.Unmarshal(raw, &fileValues); err != nil {
			return cfg, err
		}
		if err := v.MergeConfigMap(fileValues); err != nil {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
