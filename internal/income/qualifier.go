// Package income validates and sums usable income across a borrower's
// sources. Sources that fail the stability or continuance tests are excluded
// from qualifying income with a recorded reason.
package income

import (
	"fmt"

	"github.com/lendcore/underwrite/internal/domain"
)

// Stability is the overall income stability rating
type Stability string

const (
	StabilityExcellent Stability = "excellent"
	StabilityGood      Stability = "good"
	StabilityLimited   Stability = "limited"
	StabilityPoor      Stability = "poor"
)

// minHistoryYears is the tenure below which variable income is unusable
const minHistoryYears = 2.0

// rentalUsability caps rental income to allow for vacancy
const rentalUsability = 0.75

// SourceEvaluation records the decision for one income source.
type SourceEvaluation struct {
	Source           domain.IncomeSource `json:"source"`
	Included         bool                `json:"included"`
	QualifyingAmount float64             `json:"qualifying_amount"`
	Reason           string              `json:"reason,omitempty"`
}

// Result is the qualifier output for one borrower.
type Result struct {
	QualifyingIncome float64            `json:"qualifying_income"`
	Stability        Stability          `json:"stability"`
	Sources          []SourceEvaluation `json:"sources"`
}

// ExclusionReasons lists why sources were dropped, for engine warnings.
func (r *Result) ExclusionReasons() []string {
	var out []string
	for _, s := range r.Sources {
		if !s.Included {
			out = append(out, fmt.Sprintf("income source %s excluded: %s", s.Source.Type, s.Reason))
		}
	}
	return out
}

// Qualifier applies per-source usability rules and rates overall stability.
type Qualifier struct{}

// NewQualifier returns an income qualifier.
func NewQualifier() *Qualifier {
	return &Qualifier{}
}

// Evaluate scores every income source. When the profile carries no source
// breakdown, a single source is synthesized from the stated monthly income
// and employment record so the simple profile shape still qualifies.
func (q *Qualifier) Evaluate(profile *domain.BorrowerProfile) Result {
	sources := profile.IncomeSources
	if len(sources) == 0 && profile.MonthlyIncome > 0 {
		sources = []domain.IncomeSource{synthesizeSource(profile)}
	}

	res := Result{}
	var stableIncome float64
	for _, src := range sources {
		eval := evaluateSource(src)
		res.Sources = append(res.Sources, eval)
		if !eval.Included {
			continue
		}
		res.QualifyingIncome += eval.QualifyingAmount
		if src.IsContinuing && src.YearsReceived >= minHistoryYears {
			stableIncome += eval.QualifyingAmount
		}
	}

	res.Stability = rateStability(stableIncome, res.QualifyingIncome)
	return res
}

func synthesizeSource(profile *domain.BorrowerProfile) domain.IncomeSource {
	srcType := domain.IncomeW2Salary
	if profile.EmploymentType == domain.EmploymentSelfEmployed {
		srcType = domain.IncomeSelfEmployed
	}
	return domain.IncomeSource{
		Type:          srcType,
		MonthlyAmount: profile.MonthlyIncome,
		YearsReceived: profile.EmploymentYears,
		IsContinuing:  true,
	}
}

func evaluateSource(src domain.IncomeSource) SourceEvaluation {
	eval := SourceEvaluation{Source: src}

	if src.MonthlyAmount <= 0 {
		eval.Reason = "no stated amount"
		return eval
	}
	if !src.IsContinuing {
		eval.Reason = "income not expected to continue"
		return eval
	}

	switch src.Type {
	case domain.IncomeSelfEmployed:
		if src.YearsReceived < minHistoryYears {
			eval.Reason = fmt.Sprintf("self-employed income requires %.0f+ year history", minHistoryYears)
			return eval
		}
	case domain.IncomeBonus, domain.IncomeCommission:
		if src.YearsReceived < minHistoryYears {
			eval.Reason = fmt.Sprintf("bonus/commission income requires %.0f+ year history", minHistoryYears)
			return eval
		}
	case domain.IncomeRental:
		// usable, but haircut below
	default:
		// Salaried and fixed-benefit income: continuing employment keeps a
		// short tenure usable.
	}

	eval.Included = true
	eval.QualifyingAmount = src.MonthlyAmount
	if src.Type == domain.IncomeRental {
		eval.QualifyingAmount = src.MonthlyAmount * rentalUsability
		eval.Reason = "rental income capped at 75% for vacancy"
	}
	return eval
}

func rateStability(stable, qualifying float64) Stability {
	if qualifying <= 0 {
		return StabilityPoor
	}
	switch share := stable / qualifying; {
	case share >= 0.9:
		return StabilityExcellent
	case share >= 0.7:
		return StabilityGood
	case share >= 0.4:
		return StabilityLimited
	default:
		return StabilityPoor
	}
}
