package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/josexy/hosts-whitelist/fetcher"
	"github.com/josexy/hosts-whitelist/filter"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

type LogConfig struct {
	Color        bool   `yaml:"color"`
	LogLevel     string `yaml:"log_level"`
	VerboseLevel int    `yaml:"verbose_level"`
}

type WhitelistConfig struct {
	WithoutCore  bool     `yaml:"without_core"`
	NoComplement bool     `yaml:"no_complement"`
	Files        []string `yaml:"files"`
	AntiFiles    []string `yaml:"anti_files"`
	Rules        []string `yaml:"rules"`
	AntiRules    []string `yaml:"anti_rules"`
}

type LinksConfig struct {
	Core         string `yaml:"core"`
	RootZoneDB   string `yaml:"root_zone_db"`
	PublicSuffix string `yaml:"public_suffix"`
}

type FilterConfig struct {
	Parallel         bool   `yaml:"parallel"`
	Workers          int    `yaml:"workers"`
	Sort             string `yaml:"sort"`
	AlreadyFormatted bool   `yaml:"already_formatted"`
}

type FetchConfig struct {
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

type ServeConfig struct {
	Listen         string        `yaml:"listen"`
	MetricsPath    string        `yaml:"metrics_path"`
	ReloadInterval time.Duration `yaml:"reload_interval"`
}

type Config struct {
	Log       *LogConfig       `yaml:"log"`
	Whitelist *WhitelistConfig `yaml:"whitelist"`
	Links     *LinksConfig     `yaml:"links"`
	Filter    *FilterConfig    `yaml:"filter"`
	Fetch     *FetchConfig     `yaml:"fetch"`
	Serve     *ServeConfig     `yaml:"serve"`
}

// Default returns a fully populated configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.SetDefaults()
	return cfg
}

// SetDefaults fills every section and field left empty. Fields where zero is
// meaningful (verbose level, reload interval) are only defaulted together
// with a missing section.
func (cfg *Config) SetDefaults() {
	if cfg.Log == nil {
		cfg.Log = &LogConfig{VerboseLevel: 1}
	}
	if cfg.Log.LogLevel == "" {
		cfg.Log.LogLevel = "info"
	}
	if cfg.Whitelist == nil {
		cfg.Whitelist = &WhitelistConfig{}
	}
	if cfg.Links == nil {
		cfg.Links = &LinksConfig{}
	}
	if cfg.Links.Core == "" {
		cfg.Links.Core = fetcher.DefaultCoreURL
	}
	if cfg.Links.RootZoneDB == "" {
		cfg.Links.RootZoneDB = fetcher.DefaultRootZoneDBURL
	}
	if cfg.Links.PublicSuffix == "" {
		cfg.Links.PublicSuffix = fetcher.DefaultPublicSuffixURL
	}
	if cfg.Filter == nil {
		cfg.Filter = &FilterConfig{}
	}
	if cfg.Filter.Workers == 0 {
		cfg.Filter.Workers = filter.DefaultWorkers()
	}
	if cfg.Filter.Sort == "" {
		cfg.Filter.Sort = filter.SortNone.String()
	}
	if cfg.Fetch == nil {
		cfg.Fetch = &FetchConfig{}
	}
	if cfg.Fetch.Timeout == 0 {
		cfg.Fetch.Timeout = fetcher.DefaultTimeout
	}
	if cfg.Fetch.UserAgent == "" {
		cfg.Fetch.UserAgent = fetcher.DefaultUserAgent
	}
	if cfg.Serve == nil {
		cfg.Serve = &ServeConfig{ReloadInterval: time.Hour}
	}
	if cfg.Serve.Listen == "" {
		cfg.Serve.Listen = "127.0.0.1:8080"
	}
	if cfg.Serve.MetricsPath == "" {
		cfg.Serve.MetricsPath = "/metrics"
	}
}

func (cfg *Config) Validate() error {
	if cfg.Filter.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative: %d", ErrInvalidConfig, cfg.Filter.Workers)
	}
	if _, err := filter.ParseSortMode(cfg.Filter.Sort); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if cfg.Log.VerboseLevel < 0 || cfg.Log.VerboseLevel > 3 {
		return fmt.Errorf("%w: verbose level must be within [0, 3]: %d", ErrInvalidConfig, cfg.Log.VerboseLevel)
	}
	if cfg.Fetch.Timeout < 0 {
		return fmt.Errorf("%w: negative fetch timeout", ErrInvalidConfig)
	}
	if cfg.Serve.ReloadInterval < 0 {
		return fmt.Errorf("%w: negative reload interval", ErrInvalidConfig)
	}
	return nil
}

// FetchLinks converts the links section for the fetcher.
func (cfg *Config) FetchLinks() fetcher.Links {
	return fetcher.Links{
		Core:         cfg.Links.Core,
		RootZoneDB:   cfg.Links.RootZoneDB,
		PublicSuffix: cfg.Links.PublicSuffix,
	}
}

func ParseConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

// ParseConfig decodes data over the defaults, so a key left out keeps its
// default and a key set to zero stays zero.
func ParseConfig(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
