package eligibility

import (
	"fmt"

	"github.com/lendcore/underwrite/internal/domain"
	"github.com/lendcore/underwrite/internal/finmetrics"
)

// Status is the hard-gate outcome for one program
type Status string

const (
	StatusEligible          Status = "ELIGIBLE"
	StatusIneligible        Status = "INELIGIBLE"
	StatusInsufficientFunds Status = "INSUFFICIENT_FUNDS"
)

// Band labels layered on top of the score, informational only
const (
	BandHighlyQualified        = "Highly Qualified"
	BandQualified              = "Qualified"
	BandConditionallyQualified = "Conditionally Qualified"
	BandNotQualified           = "Not Qualified"
)

// BandFor maps a clamped score to its informational label.
func BandFor(score float64) string {
	switch {
	case score >= 70:
		return BandHighlyQualified
	case score >= 40:
		return BandQualified
	case score >= 20:
		return BandConditionallyQualified
	default:
		return BandNotQualified
	}
}

// GateCheck records one hard-gate evaluation with its reason string.
type GateCheck struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Reason string `json:"reason"`
}

// Evaluation is the matcher output for one program.
type Evaluation struct {
	ProgramID   domain.ProgramID `json:"program_id"`
	ProgramName string           `json:"program_name"`
	Status      Status           `json:"eligibility_status"`
	Score       float64          `json:"score"`
	Band        string           `json:"band"`
	Gates       []GateCheck      `json:"gates"`
	Issues      []string         `json:"issues,omitempty"`
	Benefits    []string         `json:"benefits,omitempty"`
}

// Matcher evaluates borrower fit against program rule sets.
type Matcher struct {
	policy ScoringPolicy
}

// NewMatcher returns a matcher; a zero policy selects the defaults.
func NewMatcher(policy ScoringPolicy) *Matcher {
	if policy.Version == "" {
		policy = DefaultScoringPolicy()
	}
	return &Matcher{policy: policy}
}

// Match runs the hard gates and the weighted score for one program. Credit
// and down payment failures change the status; a DTI failure only costs
// points and records an issue. The returned score is clamped to [0,100].
func (m *Matcher) Match(profile *domain.BorrowerProfile, scenario *domain.LoanScenario, metrics finmetrics.Metrics, rules *domain.ProgramRuleSet) Evaluation {
	p := m.policy
	eval := Evaluation{
		ProgramID:   rules.ProgramID,
		ProgramName: rules.Name,
		Status:      StatusEligible,
		Benefits:    rules.Benefits,
	}
	score := 0.0

	// Population restrictions disqualify outright
	switch rules.SpecialEligibility {
	case domain.EligibilityMilitary:
		if !profile.MilitaryService {
			eval.Status = StatusIneligible
			eval.Issues = append(eval.Issues, fmt.Sprintf("%s is restricted to eligible military service members", rules.Name))
		}
	case domain.EligibilityRural:
		if !profile.RuralProperty {
			eval.Status = StatusIneligible
			eval.Issues = append(eval.Issues, fmt.Sprintf("%s requires a property in an eligible rural area", rules.Name))
		}
	}

	// Credit gate
	if profile.CreditScore >= rules.MinCreditScore {
		score += p.CreditPoints
		if profile.CreditScore >= rules.MinCreditScore+p.CreditHeadroom {
			score += p.CreditHeadroomBonus
		}
		eval.Gates = append(eval.Gates, GateCheck{
			Name: "credit_score", Passed: true,
			Reason: fmt.Sprintf("credit score %d meets minimum %d", profile.CreditScore, rules.MinCreditScore),
		})
	} else {
		score -= p.CreditPenalty
		eval.Status = StatusIneligible
		reason := fmt.Sprintf("credit score %d below minimum %d", profile.CreditScore, rules.MinCreditScore)
		eval.Gates = append(eval.Gates, GateCheck{Name: "credit_score", Reason: reason})
		eval.Issues = append(eval.Issues, reason)
	}

	// Down payment gate
	if metrics.DownPaymentPct >= rules.MinDownPaymentPct {
		score += p.DownPaymentPoints
		if metrics.DownPaymentPct >= rules.MinDownPaymentPct+p.DownPaymentHeadroom {
			score += p.DownPaymentHeadroomBonus
		}
		eval.Gates = append(eval.Gates, GateCheck{
			Name: "down_payment", Passed: true,
			Reason: fmt.Sprintf("down payment %.1f%% meets minimum %.1f%%", metrics.DownPaymentPct, rules.MinDownPaymentPct),
		})
	} else {
		score -= p.DownPaymentPenalty
		if eval.Status == StatusEligible {
			eval.Status = StatusInsufficientFunds
		}
		reason := fmt.Sprintf("down payment %.1f%% below minimum %.1f%%", metrics.DownPaymentPct, rules.MinDownPaymentPct)
		eval.Gates = append(eval.Gates, GateCheck{Name: "down_payment", Reason: reason})
		eval.Issues = append(eval.Issues, reason)
	}

	// Back-end DTI gate: points only, status unchanged
	if metrics.BackEndDTIPct <= rules.MaxBackEndDTI {
		score += p.DTIPoints
		if metrics.BackEndDTIPct <= p.StrongBackEndDTI {
			score += p.StrongDTIBonus
		}
		eval.Gates = append(eval.Gates, GateCheck{
			Name: "back_end_dti", Passed: true,
			Reason: fmt.Sprintf("back-end DTI %.1f%% within maximum %.1f%%", metrics.BackEndDTIPct, rules.MaxBackEndDTI),
		})
	} else {
		score -= p.DTIPenalty
		reason := fmt.Sprintf("back-end DTI %.1f%% exceeds maximum %.1f%%", metrics.BackEndDTIPct, rules.MaxBackEndDTI)
		eval.Gates = append(eval.Gates, GateCheck{Name: "back_end_dti", Reason: reason})
		eval.Issues = append(eval.Issues, reason)
	}

	// Program seasoning for adverse events
	if profile.HasBankruptcy && profile.BankruptcyMonthsAgo < rules.BankruptcySeasoningMonths {
		eval.Issues = append(eval.Issues, fmt.Sprintf(
			"bankruptcy %d months ago does not meet %d month seasoning requirement",
			profile.BankruptcyMonthsAgo, rules.BankruptcySeasoningMonths))
	}
	if profile.HasForeclosure && profile.ForeclosureMonthsAgo < rules.ForeclosureSeasoningMonths {
		eval.Issues = append(eval.Issues, fmt.Sprintf(
			"foreclosure %d months ago does not meet %d month seasoning requirement",
			profile.ForeclosureMonthsAgo, rules.ForeclosureSeasoningMonths))
	}

	// Population-fit bonuses
	switch rules.ProgramID {
	case domain.ProgramVA:
		if profile.MilitaryService {
			score += p.MilitaryBonus
		}
	case domain.ProgramUSDA:
		if profile.RuralProperty {
			score += p.RuralBonus
		}
	case domain.ProgramFHA:
		if profile.FirstTimeBuyer {
			score += p.FirstTimeBonus
		}
	}

	eval.Score = clampScore(score)
	eval.Band = BandFor(eval.Score)
	return eval
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
