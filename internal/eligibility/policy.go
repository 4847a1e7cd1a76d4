// Package eligibility matches a borrower and scenario against program rule
// sets, producing per-program evaluations with hard-gate statuses and a
// weighted suitability score.
package eligibility

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ScoringPolicy holds the weights behind the suitability score. The weights
// are versioned so scored outputs can be traced back to the policy that
// produced them.
type ScoringPolicy struct {
	Version string `yaml:"version"`

	// Base points per passed gate
	CreditPoints      float64 `yaml:"credit_points"`
	DownPaymentPoints float64 `yaml:"down_payment_points"`
	DTIPoints         float64 `yaml:"dti_points"`

	// Headroom bonuses for comfortably clearing a gate
	CreditHeadroom           int     `yaml:"credit_headroom"`
	CreditHeadroomBonus      float64 `yaml:"credit_headroom_bonus"`
	DownPaymentHeadroom      float64 `yaml:"down_payment_headroom_pct"`
	DownPaymentHeadroomBonus float64 `yaml:"down_payment_headroom_bonus"`
	StrongBackEndDTI         float64 `yaml:"strong_back_end_dti"`
	StrongDTIBonus           float64 `yaml:"strong_dti_bonus"`

	// Population-fit bonuses
	MilitaryBonus  float64 `yaml:"military_bonus"`
	RuralBonus     float64 `yaml:"rural_bonus"`
	FirstTimeBonus float64 `yaml:"first_time_bonus"`

	// Gate failure penalties
	CreditPenalty      float64 `yaml:"credit_penalty"`
	DownPaymentPenalty float64 `yaml:"down_payment_penalty"`
	DTIPenalty         float64 `yaml:"dti_penalty"`
}

// DefaultScoringPolicy returns the production weights.
func DefaultScoringPolicy() ScoringPolicy {
	return ScoringPolicy{
		Version: "v1.0",

		CreditPoints:      25,
		DownPaymentPoints: 25,
		DTIPoints:         25,

		CreditHeadroom:           50,
		CreditHeadroomBonus:      5,
		DownPaymentHeadroom:      5,
		DownPaymentHeadroomBonus: 10,
		StrongBackEndDTI:         28,
		StrongDTIBonus:           15,

		MilitaryBonus:  30,
		RuralBonus:     25,
		FirstTimeBonus: 15,

		CreditPenalty:      30,
		DownPaymentPenalty: 25,
		DTIPenalty:         20,
	}
}

// LoadScoringPolicy reads a scoring policy from a YAML file.
func LoadScoringPolicy(path string) (ScoringPolicy, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ScoringPolicy{}, fmt.Errorf("read scoring policy: %w", err)
	}
	policy := DefaultScoringPolicy()
	if err := yaml.Unmarshal(raw, &policy); err != nil {
		return ScoringPolicy{}, fmt.Errorf("parse scoring policy %s: %w", path, err)
	}
	if policy.Version == "" {
		return ScoringPolicy{}, fmt.Errorf("scoring policy %s: missing version", path)
	}
	return policy, nil
}
