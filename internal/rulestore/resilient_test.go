package rulestore

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lendcore/underwrite/internal/domain"
)

// failingStore always errors, for breaker trip tests.
type failingStore struct {
	calls int
}

func (f *failingStore) GetProgramRuleSet(context.Context, domain.ProgramID) (*domain.ProgramRuleSet, error) {
	f.calls++
	return nil, errors.New("backend down")
}

func (f *failingStore) ListPrograms(context.Context) ([]domain.ProgramID, error) {
	f.calls++
	return nil, errors.New("backend down")
}

func TestResilientStorePassthrough(t *testing.T) {
	store := NewResilientStore(NewDefaultStore(), DefaultResilientConfig(), zerolog.Nop())

	rs, err := store.GetProgramRuleSet(context.Background(), domain.ProgramFHA)
	require.NoError(t, err)
	assert.Equal(t, domain.ProgramFHA, rs.ProgramID)

	ids, err := store.ListPrograms(context.Background())
	require.NoError(t, err)
	assert.Len(t, ids, 5)
}

func TestResilientStoreNotFoundDoesNotTrip(t *testing.T) {
	cfg := DefaultResilientConfig()
	cfg.MaxFailures = 2
	store := NewResilientStore(NewDefaultStore(), cfg, zerolog.Nop())

	for i := 0; i < 10; i++ {
		_, err := store.GetProgramRuleSet(context.Background(), "heloc")
		assert.ErrorIs(t, err, ErrProgramNotFound)
	}

	// breaker still closed: a real program resolves
	rs, err := store.GetProgramRuleSet(context.Background(), domain.ProgramVA)
	require.NoError(t, err)
	assert.Equal(t, domain.ProgramVA, rs.ProgramID)
}

func TestResilientStoreBreakerOpensAfterFailures(t *testing.T) {
	cfg := DefaultResilientConfig()
	cfg.MaxFailures = 3
	backend := &failingStore{}
	store := NewResilientStore(backend, cfg, zerolog.Nop())

	for i := 0; i < 3; i++ {
		_, err := store.GetProgramRuleSet(context.Background(), domain.ProgramFHA)
		require.Error(t, err)
	}
	callsWhenOpen := backend.calls

	// open breaker short-circuits without touching the backend
	_, err := store.GetProgramRuleSet(context.Background(), domain.ProgramFHA)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rule store unavailable")
	assert.Equal(t, callsWhenOpen, backend.calls)
}

func TestResilientStoreThrottles(t *testing.T) {
	cfg := DefaultResilientConfig()
	cfg.RatePerSecond = 1
	cfg.Burst = 1
	store := NewResilientStore(NewDefaultStore(), cfg, zerolog.Nop())

	_, err := store.GetProgramRuleSet(context.Background(), domain.ProgramFHA)
	require.NoError(t, err)

	_, err = store.GetProgramRuleSet(context.Background(), domain.ProgramFHA)
	assert.ErrorIs(t, err, ErrStoreThrottled)
}
