// Package underwriting renders the final decision for a loan file against a
// program's rule set. Hard failures deny outright; borderline factors route
// to conditional approval or manual review.
package underwriting

import (
	"fmt"

	"github.com/lendcore/underwrite/internal/credit"
	"github.com/lendcore/underwrite/internal/domain"
	"github.com/lendcore/underwrite/internal/finmetrics"
)

// Recommendation is the underwriting outcome
type Recommendation string

const (
	Approve               Recommendation = "APPROVE"
	ApproveWithConditions Recommendation = "APPROVE_WITH_CONDITIONS"
	ManualReview          Recommendation = "MANUAL_REVIEW"
	Deny                  Recommendation = "DENY"
)

// State tracks a loan file through underwriting
type State string

const (
	StatePending                State = "PENDING"
	StateApproved               State = "APPROVED"
	StateApprovedWithConditions State = "APPROVED_WITH_CONDITIONS"
	StateManualReview           State = "MANUAL_REVIEW"
	StateDenied                 State = "DENIED"
)

// stateFor maps a terminal recommendation to its file state.
func stateFor(rec Recommendation) State {
	switch rec {
	case Approve:
		return StateApproved
	case ApproveWithConditions:
		return StateApprovedWithConditions
	case ManualReview:
		return StateManualReview
	case Deny:
		return StateDenied
	default:
		return StatePending
	}
}

// Config tunes the tolerance bands around hard limits.
type Config struct {
	// DTIDenyMarginPts over the program max is an automatic denial
	DTIDenyMarginPts float64 `yaml:"dti_deny_margin_pts"`
	// ReserveShortfallMonths under the requirement is still borderline
	ReserveShortfallMonths float64 `yaml:"reserve_shortfall_months"`
	// MinEmploymentYears for a clean approval
	MinEmploymentYears float64 `yaml:"min_employment_years"`
	// EmploymentBorderlineYears is the floor of the borderline band
	EmploymentBorderlineYears float64 `yaml:"employment_borderline_years"`
	// MortgageInsuranceBelowPct down payment triggers an MI condition
	MortgageInsuranceBelowPct float64 `yaml:"mortgage_insurance_below_pct"`
}

// DefaultConfig returns the production tolerance bands.
func DefaultConfig() Config {
	return Config{
		DTIDenyMarginPts:          10,
		ReserveShortfallMonths:    2,
		MinEmploymentYears:        2,
		EmploymentBorderlineYears: 1,
		MortgageInsuranceBelowPct: 20,
	}
}

// Decision is the full underwriting outcome for one loan file.
type Decision struct {
	Recommendation Recommendation `json:"recommendation"`
	State          State          `json:"state"`
	Reasons        []string       `json:"reasons"`
	Conditions     []string       `json:"conditions,omitempty"`
	Borderline     []string       `json:"borderline_factors,omitempty"`
}

// Engine renders underwriting decisions.
type Engine struct {
	cfg Config
}

// NewEngine returns an underwriting engine; a zero config selects defaults.
func NewEngine(cfg Config) *Engine {
	if cfg == (Config{}) {
		cfg = DefaultConfig()
	}
	return &Engine{cfg: cfg}
}

// Decide evaluates the file against one program's rules. Evaluation order is
// fixed: automatic denials, then the clean approval test, then borderline
// counting.
func (e *Engine) Decide(profile *domain.BorrowerProfile, scenario *domain.LoanScenario, metrics finmetrics.Metrics, assessment credit.Assessment, rules *domain.ProgramRuleSet) Decision {
	d := Decision{Recommendation: Deny, State: StatePending}
	maxLTV := rules.MaxLTVFor(scenario.OccupancyType)

	// Automatic denials
	if assessment.HardDecline {
		d.Reasons = append(d.Reasons, assessment.Reasons...)
		if len(d.Reasons) == 0 {
			d.Reasons = append(d.Reasons, "credit profile fails minimum lending standards")
		}
		d.State = stateFor(Deny)
		return d
	}
	if metrics.BackEndDTIPct > rules.MaxBackEndDTI+e.cfg.DTIDenyMarginPts {
		d.Reasons = append(d.Reasons, fmt.Sprintf(
			"back-end DTI %.1f%% exceeds maximum %.1f%% beyond the %.0f point tolerance",
			metrics.BackEndDTIPct, rules.MaxBackEndDTI, e.cfg.DTIDenyMarginPts))
		d.State = stateFor(Deny)
		return d
	}
	if metrics.LTVPct > maxLTV {
		d.Reasons = append(d.Reasons, fmt.Sprintf(
			"LTV %.1f%% exceeds program maximum %.1f%% for %s",
			metrics.LTVPct, maxLTV, scenario.OccupancyType))
		d.State = stateFor(Deny)
		return d
	}

	backOK := metrics.BackEndDTIPct <= rules.MaxBackEndDTI
	frontOK := metrics.FrontEndDTIPct <= rules.MaxFrontEndDTI
	reservesOK := metrics.ReserveMonthsAvailable >= rules.ReserveMonthsRequired
	employmentOK := profile.EmploymentYears >= e.cfg.MinEmploymentYears

	// Clean approval
	if assessment.Tier == credit.TierLow && backOK && frontOK && reservesOK && employmentOK {
		d.Recommendation = Approve
		d.Reasons = append(d.Reasons, "all underwriting factors within program guidelines")
		d.Conditions = e.conditions(profile, metrics, rules)
		d.State = stateFor(Approve)
		return d
	}

	// Borderline factors
	if !backOK {
		d.Borderline = append(d.Borderline, fmt.Sprintf(
			"back-end DTI %.1f%% over maximum %.1f%%", metrics.BackEndDTIPct, rules.MaxBackEndDTI))
	}
	if !frontOK && metrics.FrontEndDTIPct <= rules.MaxFrontEndDTI+e.cfg.DTIDenyMarginPts {
		d.Borderline = append(d.Borderline, fmt.Sprintf(
			"front-end DTI %.1f%% over maximum %.1f%%", metrics.FrontEndDTIPct, rules.MaxFrontEndDTI))
	}
	if !reservesOK && metrics.ReserveMonthsAvailable >= rules.ReserveMonthsRequired-e.cfg.ReserveShortfallMonths {
		d.Borderline = append(d.Borderline, fmt.Sprintf(
			"reserves %.1f months short of %.1f month requirement",
			rules.ReserveMonthsRequired-metrics.ReserveMonthsAvailable, rules.ReserveMonthsRequired))
	}
	if !employmentOK && profile.EmploymentYears >= e.cfg.EmploymentBorderlineYears {
		d.Borderline = append(d.Borderline, fmt.Sprintf(
			"employment history %.1f years below %.0f year guideline",
			profile.EmploymentYears, e.cfg.MinEmploymentYears))
	}
	if assessment.Tier == credit.TierMedium {
		d.Borderline = append(d.Borderline, "credit risk tier requires additional review")
	}

	switch n := len(d.Borderline); {
	case n == 1:
		d.Recommendation = ApproveWithConditions
		d.Reasons = append(d.Reasons, "single borderline factor offset by otherwise qualifying profile")
		d.Conditions = e.conditions(profile, metrics, rules)
		d.Conditions = append(d.Conditions, "Provide 2 additional months of bank statements")
	default:
		// Either multiple borderline factors, or a factor outside its
		// tolerance band that did not reach the denial threshold.
		d.Recommendation = ManualReview
		d.Reasons = append(d.Reasons, "underwriting factors outside automated approval bounds")
	}
	d.State = stateFor(d.Recommendation)
	return d
}

// conditions builds the approval condition list.
func (e *Engine) conditions(profile *domain.BorrowerProfile, metrics finmetrics.Metrics, rules *domain.ProgramRuleSet) []string {
	conds := []string{
		"Satisfactory title and survey",
		"Property appraisal supporting loan amount",
		"Homeowner's insurance coverage",
		"Final verification of employment",
	}

	if metrics.DownPaymentPct < e.cfg.MortgageInsuranceBelowPct {
		conds = append(conds, "Mortgage insurance as required")
	}
	if metrics.ReserveMonthsAvailable < e.cfg.ReserveShortfallMonths {
		conds = append(conds, "Verification of sufficient funds to close")
	}
	if profile.EmploymentYears < e.cfg.MinEmploymentYears {
		conds = append(conds, "Additional employment documentation")
	}

	switch rules.ProgramID {
	case domain.ProgramFHA:
		conds = append(conds, "FHA mortgage insurance premium", "Satisfactory FHA appraisal")
	case domain.ProgramVA:
		conds = append(conds, "VA funding fee as applicable", "Certificate of Eligibility")
	case domain.ProgramUSDA:
		conds = append(conds, "USDA guarantee fee", "Property eligibility verification")
	}
	return conds
}
