// Package credit maps credit history signals to a risk tier plus
// decline/review flags, carrying the specific triggered reasons so the
// decision report can show why a tier was assigned.
package credit

import (
	"fmt"

	"github.com/lendcore/underwrite/internal/domain"
)

// Tier is the overall credit risk level
type Tier string

const (
	TierLow    Tier = "LOW"
	TierMedium Tier = "MEDIUM"
	TierHigh   Tier = "HIGH"
)

// Hard-decline and review thresholds
const (
	hardDeclineScore  = 500
	reviewScoreLow    = 580
	reviewScoreHigh   = 620
	maxCollectionsUSD = 5000.0
	maxLatePayments   = 2
)

// Score tier labels (informational, layered on top of Tier)
const (
	ScoreTierExcellent = "excellent" // >= 740
	ScoreTierGood      = "good"      // >= 680
	ScoreTierFair      = "fair"      // >= 620
	ScoreTierPoor      = "poor"
)

// SeasoningPolicy is the baseline elapsed-time requirement after an adverse
// event before it stops being an automatic decline. Defaults track the most
// lenient program; stricter per-program seasoning re-surfaces as eligibility
// issues.
type SeasoningPolicy struct {
	BankruptcyMonths  int `yaml:"bankruptcy_months"`
	ForeclosureMonths int `yaml:"foreclosure_months"`
}

// DefaultSeasoningPolicy returns the baseline 24/36 month requirements.
func DefaultSeasoningPolicy() SeasoningPolicy {
	return SeasoningPolicy{BankruptcyMonths: 24, ForeclosureMonths: 36}
}

// Assessment is the classifier output. Reasons carries every triggered
// predicate for traceability.
type Assessment struct {
	Tier        Tier     `json:"tier"`
	HardDecline bool     `json:"hard_decline"`
	ScoreTier   string   `json:"score_tier"`
	Reasons     []string `json:"reasons,omitempty"`
}

// Classifier evaluates credit risk against a seasoning policy.
type Classifier struct {
	seasoning SeasoningPolicy
}

// NewClassifier builds a classifier. A zero policy falls back to defaults.
func NewClassifier(seasoning SeasoningPolicy) *Classifier {
	if seasoning.BankruptcyMonths <= 0 && seasoning.ForeclosureMonths <= 0 {
		seasoning = DefaultSeasoningPolicy()
	}
	return &Classifier{seasoning: seasoning}
}

// Classify applies hard-decline predicates first, then manual-review
// predicates, and defaults to LOW.
func (c *Classifier) Classify(profile *domain.BorrowerProfile) Assessment {
	a := Assessment{Tier: TierLow, ScoreTier: scoreTier(profile.CreditScore)}

	if profile.CreditScore < hardDeclineScore {
		a.HardDecline = true
		a.Reasons = append(a.Reasons, fmt.Sprintf("credit score %d below absolute minimum %d", profile.CreditScore, hardDeclineScore))
	}
	if profile.HasBankruptcy && profile.BankruptcyMonthsAgo < c.seasoning.BankruptcyMonths {
		a.HardDecline = true
		a.Reasons = append(a.Reasons, fmt.Sprintf("bankruptcy seasoning insufficient: %d months (need %d)", profile.BankruptcyMonthsAgo, c.seasoning.BankruptcyMonths))
	}
	if profile.HasForeclosure && profile.ForeclosureMonthsAgo < c.seasoning.ForeclosureMonths {
		a.HardDecline = true
		a.Reasons = append(a.Reasons, fmt.Sprintf("foreclosure seasoning insufficient: %d months (need %d)", profile.ForeclosureMonthsAgo, c.seasoning.ForeclosureMonths))
	}
	if a.HardDecline {
		a.Tier = TierHigh
		return a
	}

	if profile.CreditScore >= reviewScoreLow && profile.CreditScore <= reviewScoreHigh {
		a.Tier = TierMedium
		a.Reasons = append(a.Reasons, fmt.Sprintf("credit score %d in manual-review band [%d,%d]", profile.CreditScore, reviewScoreLow, reviewScoreHigh))
	}
	if profile.CollectionsAmount > maxCollectionsUSD {
		a.Tier = TierMedium
		a.Reasons = append(a.Reasons, fmt.Sprintf("open collections $%.0f exceed $%.0f", profile.CollectionsAmount, maxCollectionsUSD))
	}
	if profile.LatePayments12Mo > maxLatePayments {
		a.Tier = TierMedium
		a.Reasons = append(a.Reasons, fmt.Sprintf("%d late payments in 12 months (max %d)", profile.LatePayments12Mo, maxLatePayments))
	}

	return a
}

func scoreTier(score int) string {
	switch {
	case score >= 740:
		return ScoreTierExcellent
	case score >= 680:
		return ScoreTierGood
	case score >= 620:
		return ScoreTierFair
	default:
		return ScoreTierPoor
	}
}
