// Package config loads and validates harvester configuration via Viper.
package config

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all configuration knobs loaded via Viper.
type Config struct {
	Site    SiteConfig    `mapstructure:"site"`
	Harvest HarvestConfig `mapstructure:"harvest"`
	Output  OutputConfig  `mapstructure:"output"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// SiteConfig describes the target reference site.
type SiteConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	IndexPath      string `mapstructure:"index_path"`
	ContentPattern string `mapstructure:"content_pattern"`
	UserAgent      string `mapstructure:"user_agent"`
	Publisher      string `mapstructure:"publisher"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// HarvestConfig governs link selection and scheduling behavior.
type HarvestConfig struct {
	Letters     []string `mapstructure:"letters"`
	Concurrency int      `mapstructure:"concurrency"`
	DelayMs     int      `mapstructure:"delay_ms"`
}

// OutputConfig sets destinations for the two emitted datasets.
type OutputConfig struct {
	CorpusPath string `mapstructure:"corpus_path"`
	TaxaPath   string `mapstructure:"taxa_path"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("HARVESTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("site.index_path", "/")
	v.SetDefault("site.content_pattern", "^/word/")
	v.SetDefault("site.user_agent", "florathai-harvester/0.1")
	v.SetDefault("site.publisher", "florathai")
	v.SetDefault("site.timeout_seconds", 15)
	v.SetDefault("harvest.concurrency", 4)
	v.SetDefault("harvest.delay_ms", 1000)
	v.SetDefault("output.corpus_path", "data/corpus.json")
	v.SetDefault("output.taxa_path", "data/taxa.json")
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Site.BaseURL == "" {
		return fmt.Errorf("site.base_url must be set")
	}
	if _, err := url.Parse(c.Site.BaseURL); err != nil {
		return fmt.Errorf("site.base_url is not a valid URL: %w", err)
	}
	if _, err := regexp.Compile(c.Site.ContentPattern); err != nil {
		return fmt.Errorf("site.content_pattern is not a valid pattern: %w", err)
	}
	if c.Site.TimeoutSeconds <= 0 {
		return fmt.Errorf("site.timeout_seconds must be > 0")
	}
	if len(c.Harvest.Letters) == 0 {
		return fmt.Errorf("harvest.letters must name at least one letter")
	}
	if c.Harvest.Concurrency <= 0 {
		return fmt.Errorf("harvest.concurrency must be > 0")
	}
	if c.Harvest.DelayMs < 0 {
		return fmt.Errorf("harvest.delay_ms must be >= 0")
	}
	if c.Output.CorpusPath == "" || c.Output.TaxaPath == "" {
		return fmt.Errorf("output.corpus_path and output.taxa_path must be set")
	}
	return nil
}

// IndexURL resolves the content-listing index page against the base URL.
func (c Config) IndexURL() string {
	base, err := url.Parse(c.Site.BaseURL)
	if err != nil {
		return c.Site.BaseURL
	}
	ref, err := url.Parse(c.Site.IndexPath)
	if err != nil {
		return c.Site.BaseURL
	}
	return base.ResolveReference(ref).String()
}

// Timeout converts the configured request timeout into a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.Site.TimeoutSeconds) * time.Second
}

// Delay converts the configured inter-request delay into a duration.
func (c Config) Delay() time.Duration {
	return time.Duration(c.Harvest.DelayMs) * time.Millisecond
}
