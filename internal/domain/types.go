package domain

// ProgramID identifies a loan program in the rule store
type ProgramID string

const (
	ProgramFHA          ProgramID = "fha"
	ProgramVA           ProgramID = "va"
	ProgramUSDA         ProgramID = "usda"
	ProgramConventional ProgramID = "conventional"
	ProgramJumbo        ProgramID = "jumbo"
)

// EmploymentType describes how the borrower earns their primary income
type EmploymentType string

const (
	EmploymentW2           EmploymentType = "w2"
	EmploymentSelfEmployed EmploymentType = "self_employed"
	EmploymentRetired      EmploymentType = "retired"
)

// OccupancyType describes how the subject property will be used
type OccupancyType string

const (
	OccupancyPrimary    OccupancyType = "primary_residence"
	OccupancyInvestment OccupancyType = "investment"
	OccupancyVacation   OccupancyType = "vacation_home"
)

// PropertyType is the physical property category
type PropertyType string

const (
	PropertySingleFamily PropertyType = "single_family"
	PropertyCondo        PropertyType = "condo"
	PropertyMultiFamily  PropertyType = "multi_family"
	PropertyManufactured PropertyType = "manufactured"
)

// LoanPurpose is the reason for the loan request
type LoanPurpose string

const (
	PurposePurchase    LoanPurpose = "purchase"
	PurposeRefinance   LoanPurpose = "refinance"
	PurposeCashOutRefi LoanPurpose = "cash_out_refinance"
)

// IncomeType categorizes an income source for usability rules
type IncomeType string

const (
	IncomeW2Salary       IncomeType = "w2_salary"
	IncomeSelfEmployed   IncomeType = "self_employed"
	IncomeBonus          IncomeType = "bonus"
	IncomeCommission     IncomeType = "commission"
	IncomeRental         IncomeType = "rental"
	IncomePension        IncomeType = "pension"
	IncomeSocialSecurity IncomeType = "social_security"
	IncomeDisability     IncomeType = "disability"
)

// IncomeSource is a single stream of borrower income
type IncomeSource struct {
	Type          IncomeType `json:"type" yaml:"type"`
	MonthlyAmount float64    `json:"monthly_amount" yaml:"monthly_amount"`
	YearsReceived float64    `json:"years_received" yaml:"years_received"`
	EmployerName  string     `json:"employer_name,omitempty" yaml:"employer_name,omitempty"`
	IsContinuing  bool       `json:"is_continuing" yaml:"is_continuing"`
}

// BorrowerProfile is the canonical, already-normalized borrower record.
// Immutable per request; the engine never writes to it.
type BorrowerProfile struct {
	CreditScore     int            `json:"credit_score" yaml:"credit_score"`
	MonthlyIncome   float64        `json:"monthly_income" yaml:"monthly_income"`
	MonthlyDebts    float64        `json:"monthly_debts" yaml:"monthly_debts"`
	LiquidAssets    float64        `json:"liquid_assets" yaml:"liquid_assets"`
	EmploymentYears float64        `json:"employment_years" yaml:"employment_years"`
	EmploymentType  EmploymentType `json:"employment_type" yaml:"employment_type"`

	MilitaryService bool `json:"military_service" yaml:"military_service"`
	FirstTimeBuyer  bool `json:"first_time_buyer" yaml:"first_time_buyer"`
	RuralProperty   bool `json:"rural_property" yaml:"rural_property"`

	// Adverse credit history. MonthsAgo fields are meaningful only when the
	// matching Has flag is set.
	HasBankruptcy        bool    `json:"has_bankruptcy" yaml:"has_bankruptcy"`
	BankruptcyMonthsAgo  int     `json:"bankruptcy_months_ago" yaml:"bankruptcy_months_ago"`
	HasForeclosure       bool    `json:"has_foreclosure" yaml:"has_foreclosure"`
	ForeclosureMonthsAgo int     `json:"foreclosure_months_ago" yaml:"foreclosure_months_ago"`
	CollectionsAmount    float64 `json:"collections_amount" yaml:"collections_amount"`
	LatePayments12Mo     int     `json:"late_payments_12mo" yaml:"late_payments_12mo"`

	// Optional per-source breakdown. When empty the income qualifier
	// synthesizes a single source from MonthlyIncome + EmploymentType.
	IncomeSources []IncomeSource `json:"income_sources,omitempty" yaml:"income_sources,omitempty"`
}

// LoanScenario is the requested loan. Immutable per request.
type LoanScenario struct {
	LoanAmount    float64       `json:"loan_amount" yaml:"loan_amount"`
	PropertyValue float64       `json:"property_value" yaml:"property_value"`
	DownPayment   float64       `json:"down_payment" yaml:"down_payment"`
	PropertyType  PropertyType  `json:"property_type" yaml:"property_type"`
	OccupancyType OccupancyType `json:"occupancy_type" yaml:"occupancy_type"`
	LoanPurpose   LoanPurpose   `json:"loan_purpose" yaml:"loan_purpose"`
}

// SpecialEligibility names a population predicate a program is restricted to
type SpecialEligibility string

const (
	EligibilityNone     SpecialEligibility = ""
	EligibilityMilitary SpecialEligibility = "military"
	EligibilityRural    SpecialEligibility = "rural"
)

// ProgramRuleSet holds the per-program thresholds read from the rule store.
// The engine treats rule sets as read-only snapshots.
type ProgramRuleSet struct {
	ProgramID   ProgramID `json:"program_id" yaml:"program_id" db:"program_id"`
	Name        string    `json:"name" yaml:"name" db:"name"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty" db:"description"`

	MinCreditScore    int     `json:"min_credit_score" yaml:"min_credit_score" db:"min_credit_score"`
	MinDownPaymentPct float64 `json:"min_down_payment_pct" yaml:"min_down_payment_pct" db:"min_down_payment_pct"`
	MaxFrontEndDTI    float64 `json:"max_front_end_dti" yaml:"max_front_end_dti" db:"max_front_end_dti"`
	MaxBackEndDTI     float64 `json:"max_back_end_dti" yaml:"max_back_end_dti" db:"max_back_end_dti"`

	ReserveMonthsRequired      float64 `json:"reserve_months_required" yaml:"reserve_months_required" db:"reserve_months_required"`
	BankruptcySeasoningMonths  int     `json:"bankruptcy_seasoning_months" yaml:"bankruptcy_seasoning_months" db:"bankruptcy_seasoning_months"`
	ForeclosureSeasoningMonths int     `json:"foreclosure_seasoning_months" yaml:"foreclosure_seasoning_months" db:"foreclosure_seasoning_months"`

	// Maximum LTV percentage by occupancy type
	MaxLTVByOccupancy map[OccupancyType]float64 `json:"max_ltv_by_occupancy" yaml:"max_ltv_by_occupancy"`

	SpecialEligibility SpecialEligibility `json:"special_eligibility,omitempty" yaml:"special_eligibility,omitempty" db:"special_eligibility"`
	Benefits           []string           `json:"benefits,omitempty" yaml:"benefits,omitempty"`
}

// defaultMaxLTV applies when a rule set has no entry for the occupancy type
const defaultMaxLTV = 80.0

// MaxLTVFor returns the LTV ceiling for an occupancy type, falling back to a
// conservative default when the rule set has no entry.
func (r *ProgramRuleSet) MaxLTVFor(occupancy OccupancyType) float64 {
	if v, ok := r.MaxLTVByOccupancy[occupancy]; ok {
		return v
	}
	return defaultMaxLTV
}
