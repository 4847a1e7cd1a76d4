package rulestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/lendcore/underwrite/internal/domain"
)

// ErrStoreThrottled is returned when the local rate limiter rejects a lookup.
var ErrStoreThrottled = errors.New("rulestore: lookup throttled")

// ResilientConfig tunes the breaker and limiter around an external store.
type ResilientConfig struct {
	// MaxFailures consecutive failures trip the breaker
	MaxFailures uint32 `yaml:"max_failures"`
	// OpenTimeout is how long the breaker stays open before probing
	OpenTimeout time.Duration `yaml:"open_timeout"`
	// RatePerSecond caps lookups against the backing store; 0 disables
	RatePerSecond float64 `yaml:"rate_per_second"`
	// Burst is the limiter burst size
	Burst int `yaml:"burst"`
}

// DefaultResilientConfig returns conservative protection defaults.
func DefaultResilientConfig() ResilientConfig {
	return ResilientConfig{
		MaxFailures:   5,
		OpenTimeout:   30 * time.Second,
		RatePerSecond: 50,
		Burst:         100,
	}
}

// ResilientStore guards an external Store with a circuit breaker and a rate
// limiter so a sick backend cannot stall request handling.
type ResilientStore struct {
	source  Store
	breaker *gobreaker.CircuitBreaker
	limiter *rate.Limiter
	log     zerolog.Logger
}

// NewResilientStore wraps a store with breaker and limiter protection.
func NewResilientStore(source Store, cfg ResilientConfig, log zerolog.Logger) *ResilientStore {
	settings := gobreaker.Settings{
		Name:    "rulestore",
		Timeout: cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("rule store breaker state change")
		},
	}

	var limiter *rate.Limiter
	if cfg.RatePerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
	}

	return &ResilientStore{
		source:  source,
		breaker: gobreaker.NewCircuitBreaker(settings),
		limiter: limiter,
		log:     log,
	}
}

func (r *ResilientStore) allow() error {
	if r.limiter != nil && !r.limiter.Allow() {
		return ErrStoreThrottled
	}
	return nil
}

// GetProgramRuleSet proxies through the breaker. A missing program is not a
// backend failure and must not trip the breaker.
func (r *ResilientStore) GetProgramRuleSet(ctx context.Context, id domain.ProgramID) (*domain.ProgramRuleSet, error) {
	if err := r.allow(); err != nil {
		return nil, err
	}

	out, err := r.breaker.Execute(func() (interface{}, error) {
		rs, err := r.source.GetProgramRuleSet(ctx, id)
		if errors.Is(err, ErrProgramNotFound) {
			return nil, nil
		}
		return rs, err
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("rule store unavailable: %w", err)
		}
		return nil, err
	}
	if out == nil {
		return nil, ErrProgramNotFound
	}
	return out.(*domain.ProgramRuleSet), nil
}

// ListPrograms proxies through the breaker.
func (r *ResilientStore) ListPrograms(ctx context.Context) ([]domain.ProgramID, error) {
	if err := r.allow(); err != nil {
		return nil, err
	}

	out, err := r.breaker.Execute(func() (interface{}, error) {
		return r.source.ListPrograms(ctx)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("rule store unavailable: %w", err)
		}
		return nil, err
	}
	return out.([]domain.ProgramID), nil
}
