// Package config loads application configuration from an optional YAML file
// and QUALIS_-prefixed environment variables, and initializes the global
// logger.
package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Scholar SourceConfig  `yaml:"scholar" mapstructure:"scholar"`
	Scopus  SourceConfig  `yaml:"scopus" mapstructure:"scopus"`
	WoS     SourceConfig  `yaml:"wos" mapstructure:"wos"`
	Collect CollectConfig `yaml:"collect" mapstructure:"collect"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// SourceConfig configures one acquisition source. Key is empty for the
// scrape source; for the metered sources an empty key disables the source
// entirely.
type SourceConfig struct {
	Key           string  `yaml:"key" mapstructure:"key"`
	BaseURL       string  `yaml:"base_url" mapstructure:"base_url"`
	DelayMinSecs  float64 `yaml:"delay_min_secs" mapstructure:"delay_min_secs"`
	DelayMaxSecs  float64 `yaml:"delay_max_secs" mapstructure:"delay_max_secs"`
	RatePerSecond float64 `yaml:"rate_per_second" mapstructure:"rate_per_second"`
}

// DelayBounds returns the politeness interval as durations.
func (s SourceConfig) DelayBounds() (min, max time.Duration) {
	return time.Duration(s.DelayMinSecs * float64(time.Second)),
		time.Duration(s.DelayMaxSecs * float64(time.Second))
}

// CollectConfig configures the collection run.
type CollectConfig struct {
	ListsDir        string `yaml:"lists_dir" mapstructure:"lists_dir"`
	OutputDir       string `yaml:"output_dir" mapstructure:"output_dir"`
	BlockThreshold  int    `yaml:"block_threshold" mapstructure:"block_threshold"`
	ParallelSources bool   `yaml:"parallel_sources" mapstructure:"parallel_sources"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("QUALIS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("scholar.base_url", "https://scholar.google.com")
	v.SetDefault("scholar.delay_min_secs", 5)
	v.SetDefault("scholar.delay_max_secs", 10)
	v.SetDefault("scopus.base_url", "https://api.elsevier.com/content/serial/title")
	v.SetDefault("scopus.delay_min_secs", 5)
	v.SetDefault("scopus.delay_max_secs", 10)
	v.SetDefault("scopus.rate_per_second", 0.5)
	v.SetDefault("wos.base_url", "https://api.clarivate.com/apis/wos-starter/v1")
	v.SetDefault("wos.delay_min_secs", 5)
	v.SetDefault("wos.delay_max_secs", 10)
	v.SetDefault("wos.rate_per_second", 0.5)
	v.SetDefault("collect.lists_dir", "config")
	v.SetDefault("collect.output_dir", "output")
	v.SetDefault("collect.block_threshold", 3)
	v.SetDefault("collect.parallel_sources", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
