// Package config loads service configuration from YAML with sane defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lendcore/underwrite/internal/rulestore"
	"github.com/lendcore/underwrite/internal/underwriting"
)

// StoreBackend selects where program rules are read from
type StoreBackend string

const (
	BackendBuiltin  StoreBackend = "builtin"
	BackendFile     StoreBackend = "file"
	BackendPostgres StoreBackend = "postgres"
)

// Config is the full service configuration.
type Config struct {
	LogLevel string `yaml:"log_level"`

	Server struct {
		Addr            string        `yaml:"addr"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`

	RuleStore struct {
		Backend      StoreBackend  `yaml:"backend"`
		ProgramsFile string        `yaml:"programs_file"`
		PostgresDSN  string        `yaml:"postgres_dsn"`
		QueryTimeout time.Duration `yaml:"query_timeout"`

		Redis struct {
			Enabled bool          `yaml:"enabled"`
			Addr    string        `yaml:"addr"`
			TTL     time.Duration `yaml:"ttl"`
		} `yaml:"redis"`

		Resilience rulestore.ResilientConfig `yaml:"resilience"`
	} `yaml:"rule_store"`

	Engine struct {
		TopN              int           `yaml:"top_n"`
		StoreTimeout      time.Duration `yaml:"store_timeout"`
		ScoringPolicyFile string        `yaml:"scoring_policy_file"`
	} `yaml:"engine"`

	Underwriting underwriting.Config `yaml:"underwriting"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{LogLevel: "info"}

	cfg.Server.Addr = ":8080"
	cfg.Server.ReadTimeout = 10 * time.Second
	cfg.Server.WriteTimeout = 30 * time.Second
	cfg.Server.ShutdownTimeout = 15 * time.Second

	cfg.RuleStore.Backend = BackendBuiltin
	cfg.RuleStore.QueryTimeout = 5 * time.Second
	cfg.RuleStore.Redis.TTL = rulestore.DefaultCacheTTL
	cfg.RuleStore.Resilience = rulestore.DefaultResilientConfig()

	cfg.Engine.TopN = 3
	cfg.Engine.StoreTimeout = 10 * time.Second

	cfg.Underwriting = underwriting.DefaultConfig()
	return cfg
}

// Load reads a YAML file over the defaults. An empty path returns defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.RuleStore.Backend {
	case BackendBuiltin:
	case BackendFile:
		if c.RuleStore.ProgramsFile == "" {
			return fmt.Errorf("rule_store.programs_file required for file backend")
		}
	case BackendPostgres:
		if c.RuleStore.PostgresDSN == "" {
			return fmt.Errorf("rule_store.postgres_dsn required for postgres backend")
		}
	default:
		return fmt.Errorf("unknown rule_store.backend %q", c.RuleStore.Backend)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr required")
	}
	return nil
}
