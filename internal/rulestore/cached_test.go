package rulestore

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lendcore/underwrite/internal/domain"
)

func TestCachedStoreMissPopulatesCache(t *testing.T) {
	client, mock := redismock.NewClientMock()
	source := NewDefaultStore()
	cached := NewCachedStore(source, client, DefaultCacheTTL, zerolog.Nop())

	want, err := source.GetProgramRuleSet(context.Background(), domain.ProgramFHA)
	require.NoError(t, err)
	payload, err := json.Marshal(want)
	require.NoError(t, err)

	mock.ExpectGet("rulestore:program:fha").RedisNil()
	mock.ExpectSet("rulestore:program:fha", payload, DefaultCacheTTL).SetVal("OK")

	got, err := cached.GetProgramRuleSet(context.Background(), domain.ProgramFHA)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedStoreHitSkipsSource(t *testing.T) {
	client, mock := redismock.NewClientMock()
	// empty source: a hit must never reach it
	cached := NewCachedStore(NewMemStore(nil), client, DefaultCacheTTL, zerolog.Nop())

	rs := domain.ProgramRuleSet{ProgramID: domain.ProgramVA, Name: "VA Loan", MinCreditScore: 620}
	payload, err := json.Marshal(&rs)
	require.NoError(t, err)

	mock.ExpectGet("rulestore:program:va").SetVal(string(payload))

	got, err := cached.GetProgramRuleSet(context.Background(), domain.ProgramVA)
	require.NoError(t, err)
	assert.Equal(t, domain.ProgramVA, got.ProgramID)
	assert.Equal(t, 620, got.MinCreditScore)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedStoreCacheErrorFallsBack(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cached := NewCachedStore(NewDefaultStore(), client, DefaultCacheTTL, zerolog.Nop())

	mock.ExpectGet("rulestore:program:usda").SetErr(errors.New("connection refused"))
	mock.Regexp().ExpectSet("rulestore:program:usda", `.*`, DefaultCacheTTL).SetVal("OK")

	got, err := cached.GetProgramRuleSet(context.Background(), domain.ProgramUSDA)
	require.NoError(t, err)
	assert.Equal(t, domain.ProgramUSDA, got.ProgramID)
}

func TestCachedStoreCorruptEntryFallsBack(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cached := NewCachedStore(NewDefaultStore(), client, DefaultCacheTTL, zerolog.Nop())

	mock.ExpectGet("rulestore:program:jumbo").SetVal("not json")
	mock.Regexp().ExpectSet("rulestore:program:jumbo", `.*`, DefaultCacheTTL).SetVal("OK")

	got, err := cached.GetProgramRuleSet(context.Background(), domain.ProgramJumbo)
	require.NoError(t, err)
	assert.Equal(t, domain.ProgramJumbo, got.ProgramID)
}

func TestCachedStoreSourceNotFoundPropagates(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cached := NewCachedStore(NewMemStore(nil), client, DefaultCacheTTL, zerolog.Nop())

	mock.ExpectGet("rulestore:program:heloc").RedisNil()

	_, err := cached.GetProgramRuleSet(context.Background(), "heloc")
	assert.ErrorIs(t, err, ErrProgramNotFound)
}

func TestCachedStoreInvalidate(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cached := NewCachedStore(NewDefaultStore(), client, DefaultCacheTTL, zerolog.Nop())

	mock.ExpectDel("rulestore:program:fha").SetVal(1)
	assert.NoError(t, cached.Invalidate(context.Background(), domain.ProgramFHA))
	assert.NoError(t, mock.ExpectationsWereMet())
}
