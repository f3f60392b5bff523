package main

import (
	"fmt"
	"os"
	"time"

	"github.com/ethanol1310/hotnews"
	"gopkg.in/yaml.v3"
)

// defaultMaxCommentPages bounds the comment requests of a single article
// when neither a flag nor the config sets a ceiling.
const defaultMaxCommentPages = 200

// Config is the optional YAML configuration file.
type Config struct {
	UserAgent string                  `yaml:"userAgent"`
	Timeout   time.Duration           `yaml:"timeout"`
	RPS       float64                 `yaml:"rps"`
	Sources   map[string]SourceConfig `yaml:"sources"`
}

// SourceConfig overrides the crawl settings of one source.
type SourceConfig struct {
	Partitions      int      `yaml:"partitions"`
	Pages           int      `yaml:"pages"`
	Articles        int      `yaml:"articles"`
	MaxCommentPages int      `yaml:"maxCommentPages"`
	Categories      []string `yaml:"categories"`
}

// Limits returns the gate overrides of the source config.
func (c SourceConfig) Limits() hotnews.Limits {
	return hotnews.Limits{
		Partitions: c.Partitions,
		Pages:      c.Pages,
		Articles:   c.Articles,
	}
}

// Source returns the settings of the named source, or zero values.
func (c *Config) Source(name hotnews.SourceName) SourceConfig {
	if c == nil {
		return SourceConfig{}
	}
	return c.Sources[string(name)]
}

// LoadConfig reads the config file at path.
// An empty path yields an empty config.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes a YAML config document.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, hotnews.Errorf(hotnews.EINVALID, "parse config: %v", err)
	}

	if cfg.Timeout < 0 {
		return nil, hotnews.Errorf(hotnews.EINVALID, "config timeout must not be negative")
	}
	if cfg.RPS < 0 {
		return nil, hotnews.Errorf(hotnews.EINVALID, "config rps must not be negative")
	}
	for name, sc := range cfg.Sources {
		if sc.Partitions < 0 || sc.Pages < 0 || sc.Articles < 0 {
			return nil, hotnews.Errorf(hotnews.EINVALID, "config limits of %s must not be negative", name)
		}
	}
	return &cfg, nil
}
