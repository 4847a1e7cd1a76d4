package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lendcore/underwrite/internal/domain"
	"github.com/lendcore/underwrite/internal/eligibility"
)

func eval(id domain.ProgramID, status eligibility.Status, score float64) eligibility.Evaluation {
	return eligibility.Evaluation{
		ProgramID: id,
		Status:    status,
		Score:     score,
		Band:      eligibility.BandFor(score),
	}
}

func TestRankSortsByScoreDescending(t *testing.T) {
	r := NewRanker(0)
	rec := r.Rank(&domain.BorrowerProfile{}, []eligibility.Evaluation{
		eval(domain.ProgramFHA, eligibility.StatusEligible, 55),
		eval(domain.ProgramJumbo, eligibility.StatusEligible, 90),
		eval(domain.ProgramVA, eligibility.StatusIneligible, 20),
	})

	require.Len(t, rec.Ranked, 3)
	assert.Equal(t, domain.ProgramJumbo, rec.Ranked[0].ProgramID)
	assert.Equal(t, domain.ProgramFHA, rec.Ranked[1].ProgramID)
	assert.Equal(t, domain.ProgramVA, rec.Ranked[2].ProgramID)
}

func TestRankTopIsShortListRankedIsComplete(t *testing.T) {
	r := NewRanker(2)
	rec := r.Rank(&domain.BorrowerProfile{}, []eligibility.Evaluation{
		eval(domain.ProgramFHA, eligibility.StatusEligible, 55),
		eval(domain.ProgramConventional, eligibility.StatusEligible, 80),
		eval(domain.ProgramJumbo, eligibility.StatusEligible, 90),
	})
	require.Len(t, rec.Top, 2)
	assert.Equal(t, domain.ProgramJumbo, rec.Top[0].ProgramID)
	// the full ordering is preserved alongside the short list
	require.Len(t, rec.Ranked, 3)
	assert.Equal(t, domain.ProgramFHA, rec.Ranked[2].ProgramID)
}

func TestRankDeterministicTieBreak(t *testing.T) {
	r := NewRanker(0)
	rec := r.Rank(&domain.BorrowerProfile{}, []eligibility.Evaluation{
		eval(domain.ProgramJumbo, eligibility.StatusEligible, 90),
		eval(domain.ProgramConventional, eligibility.StatusEligible, 90),
	})
	// equal scores order by program id
	assert.Equal(t, domain.ProgramConventional, rec.Ranked[0].ProgramID)
	assert.Equal(t, domain.ProgramJumbo, rec.Ranked[1].ProgramID)
}

func TestRecommendVAOverHigherScore(t *testing.T) {
	r := NewRanker(0)
	rec := r.Rank(&domain.BorrowerProfile{MilitaryService: true}, []eligibility.Evaluation{
		eval(domain.ProgramConventional, eligibility.StatusEligible, 95),
		eval(domain.ProgramVA, eligibility.StatusEligible, 80),
	})
	require.NotNil(t, rec.Recommended)
	assert.Equal(t, domain.ProgramVA, rec.Recommended.ProgramID)
	assert.NotEmpty(t, rec.Rationale)
}

func TestRecommendIgnoresIneligibleVA(t *testing.T) {
	r := NewRanker(0)
	rec := r.Rank(&domain.BorrowerProfile{MilitaryService: true}, []eligibility.Evaluation{
		eval(domain.ProgramConventional, eligibility.StatusEligible, 75),
		eval(domain.ProgramVA, eligibility.StatusIneligible, 80),
	})
	require.NotNil(t, rec.Recommended)
	assert.Equal(t, domain.ProgramConventional, rec.Recommended.ProgramID)
}

func TestRecommendUSDAForRural(t *testing.T) {
	r := NewRanker(0)
	rec := r.Rank(&domain.BorrowerProfile{RuralProperty: true}, []eligibility.Evaluation{
		eval(domain.ProgramConventional, eligibility.StatusEligible, 85),
		eval(domain.ProgramUSDA, eligibility.StatusEligible, 80),
	})
	require.NotNil(t, rec.Recommended)
	assert.Equal(t, domain.ProgramUSDA, rec.Recommended.ProgramID)
}

func TestRecommendFHAForFirstTimeBuyer(t *testing.T) {
	r := NewRanker(0)
	rec := r.Rank(&domain.BorrowerProfile{FirstTimeBuyer: true}, []eligibility.Evaluation{
		eval(domain.ProgramConventional, eligibility.StatusEligible, 85),
		eval(domain.ProgramFHA, eligibility.StatusEligible, 70),
	})
	require.NotNil(t, rec.Recommended)
	assert.Equal(t, domain.ProgramFHA, rec.Recommended.ProgramID)
}

func TestRecommendConventionalBeforeScoreFallback(t *testing.T) {
	r := NewRanker(0)
	rec := r.Rank(&domain.BorrowerProfile{}, []eligibility.Evaluation{
		eval(domain.ProgramJumbo, eligibility.StatusEligible, 92),
		eval(domain.ProgramConventional, eligibility.StatusEligible, 90),
	})
	require.NotNil(t, rec.Recommended)
	assert.Equal(t, domain.ProgramConventional, rec.Recommended.ProgramID)
}

func TestRecommendFallbackHighestScore(t *testing.T) {
	r := NewRanker(0)
	rec := r.Rank(&domain.BorrowerProfile{}, []eligibility.Evaluation{
		eval(domain.ProgramJumbo, eligibility.StatusEligible, 88),
		eval(domain.ProgramFHA, eligibility.StatusEligible, 60),
	})
	require.NotNil(t, rec.Recommended)
	assert.Equal(t, domain.ProgramJumbo, rec.Recommended.ProgramID)
}

func TestRecommendNilWhenNothingEligible(t *testing.T) {
	r := NewRanker(0)
	rec := r.Rank(&domain.BorrowerProfile{}, []eligibility.Evaluation{
		eval(domain.ProgramFHA, eligibility.StatusIneligible, 10),
		eval(domain.ProgramVA, eligibility.StatusInsufficientFunds, 30),
	})
	assert.Nil(t, rec.Recommended)
	assert.Empty(t, rec.Rationale)
}
