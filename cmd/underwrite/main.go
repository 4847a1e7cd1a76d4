package main

import (
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/lendcore/underwrite/internal/config"
	"github.com/lendcore/underwrite/internal/eligibility"
	"github.com/lendcore/underwrite/internal/engine"
	"github.com/lendcore/underwrite/internal/rulestore"
	"github.com/lendcore/underwrite/internal/telemetry"
)

const (
	appName = "underwrite"
	version = "v1.2.0"
)

var configPath string

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	rootCmd := &cobra.Command{
		Use:     appName,
		Short:   "Loan qualification and underwriting decision engine",
		Version: version,
		Long: `Evaluates borrower profiles against loan program rule sets: financial
metrics, credit risk, income qualification, program eligibility and ranking,
and the final underwriting decision.`,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to engine config YAML")

	rootCmd.AddCommand(newEvaluateCmd(), newRulesCmd(), newServeCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	return cfg, nil
}

// buildStore assembles the configured rule store chain: backend, then the
// breaker/limiter guard for external backends, then the optional Redis
// read-through cache.
func buildStore(cfg *config.Config) (rulestore.Store, func(), error) {
	cleanup := func() {}

	var store rulestore.Store
	switch cfg.RuleStore.Backend {
	case config.BackendBuiltin:
		store = rulestore.NewDefaultStore()
	case config.BackendFile:
		s, err := rulestore.LoadFile(cfg.RuleStore.ProgramsFile)
		if err != nil {
			return nil, nil, err
		}
		store = s
	case config.BackendPostgres:
		pg, err := rulestore.NewPGStore(cfg.RuleStore.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		cleanup = func() { pg.Close() }
		store = rulestore.NewResilientStore(pg, cfg.RuleStore.Resilience, log.Logger)
	default:
		return nil, nil, fmt.Errorf("unknown rule store backend %q", cfg.RuleStore.Backend)
	}

	if cfg.RuleStore.Redis.Enabled {
		client := redis.NewClient(&redis.Options{Addr: cfg.RuleStore.Redis.Addr})
		prev := cleanup
		cleanup = func() { client.Close(); prev() }
		store = rulestore.NewCachedStore(store, client, cfg.RuleStore.Redis.TTL, log.Logger)
	}
	return store, cleanup, nil
}

func buildEngine(cfg *config.Config, store rulestore.Store, metrics *telemetry.Metrics) (*engine.Engine, error) {
	opts := []engine.Option{
		engine.WithTopN(cfg.Engine.TopN),
		engine.WithStoreTimeout(cfg.Engine.StoreTimeout),
		engine.WithUnderwritingConfig(cfg.Underwriting),
	}
	if cfg.Engine.ScoringPolicyFile != "" {
		policy, err := eligibility.LoadScoringPolicy(cfg.Engine.ScoringPolicyFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, engine.WithScoringPolicy(policy))
	}
	if metrics != nil {
		opts = append(opts, engine.WithMetrics(metrics))
	}
	return engine.New(store, log.Logger, opts...), nil
}
