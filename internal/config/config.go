// Package config loads the tuning knobs for an analysis run (search
// depth, time budget, cache size, default game type and language) from
// a config file, environment variables, and flags, in that precedence
// order via viper. Grounded on the pack's viper.New()-based FromYaml
// loader (vp := viper.New(); SetConfigFile/SetConfigType/AddConfigPath;
// ReadInConfig; Unmarshal), generalized to also bind environment
// variables and defaults, since this engine has no teacher-native
// config package to draw from.
package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/ianthereal/gomoku-analyzer/internal/analyzer"
	"github.com/ianthereal/gomoku-analyzer/internal/search/minimax"
	"github.com/ianthereal/gomoku-analyzer/internal/search/vcf"
)

// Config is the resolved set of knobs for one or more Analyze calls.
type Config struct {
	MaxDepth      int           `mapstructure:"max_depth"`
	VCFDepth      int           `mapstructure:"vcf_depth"`
	TimeBudget    time.Duration `mapstructure:"time_budget"`
	FastMode      bool          `mapstructure:"fast_mode"`
	CacheCapacity int           `mapstructure:"cache_capacity"`
	GameType      string        `mapstructure:"game_type"` // "ranked", "tournament", "casual"
	Language      string        `mapstructure:"language"`  // "en", "vi", "zh", "ja"
}

// Defaults returns the knob set used when no config file, environment
// variable, or flag overrides a value.
func Defaults() Config {
	return Config{
		MaxDepth:      minimax.DefaultMaxDepth,
		VCFDepth:      vcf.DefaultMaxDepth,
		TimeBudget:    5 * time.Second,
		FastMode:      false,
		CacheCapacity: 4096,
		GameType:      "ranked",
		Language:      "en",
	}
}

// Load reads path (if non-empty) plus any GOMOKU_-prefixed environment
// variables over Defaults. An empty path skips file loading entirely
// and returns defaults overridden only by the environment.
func Load(path string) (Config, error) {
	cfg := Defaults()

	vp := viper.New()
	vp.SetEnvPrefix("gomoku")
	vp.AutomaticEnv()
	bindDefaults(vp, cfg)

	if path != "" {
		vp.SetConfigFile(path)
		vp.SetConfigType(configType(path))
		vp.AddConfigPath(filepath.Dir(path))
		if err := vp.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}

	if err := vp.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	return cfg, nil
}

func bindDefaults(vp *viper.Viper, cfg Config) {
	vp.SetDefault("max_depth", cfg.MaxDepth)
	vp.SetDefault("vcf_depth", cfg.VCFDepth)
	vp.SetDefault("time_budget", cfg.TimeBudget)
	vp.SetDefault("fast_mode", cfg.FastMode)
	vp.SetDefault("cache_capacity", cfg.CacheCapacity)
	vp.SetDefault("game_type", cfg.GameType)
	vp.SetDefault("language", cfg.Language)
}

func configType(path string) string {
	switch filepath.Ext(path) {
	case ".json":
		return "json"
	case ".toml":
		return "toml"
	default:
		return "yaml"
	}
}

// analyzerGameType resolves the configured string to an analyzer.GameType,
// falling back to analyzer.Ranked for an unrecognized value.
func (c Config) analyzerGameType() analyzer.GameType {
	switch c.GameType {
	case "tournament":
		return analyzer.Tournament
	case "casual":
		return analyzer.Casual
	default:
		return analyzer.Ranked
	}
}

// analyzerLanguage resolves the configured string to an
// analyzer.Language, falling back to analyzer.LangEN.
func (c Config) analyzerLanguage() analyzer.Language {
	switch c.Language {
	case "vi":
		return analyzer.LangVI
	case "zh":
		return analyzer.LangZH
	case "ja":
		return analyzer.LangJA
	default:
		return analyzer.LangEN
	}
}

// Options builds an analyzer.Options from the resolved config, for
// ratings supplied separately per call (a config file has no notion of
// which two players are seated).
func (c Config) Options(ratings [2]int) analyzer.Options {
	return analyzer.Options{
		GameType:      c.analyzerGameType(),
		PlayerRatings: ratings,
		Language:      c.analyzerLanguage(),
		MaxDepth:      c.MaxDepth,
		TimeBudget:    c.TimeBudget,
		FastMode:      c.FastMode,
	}
}
