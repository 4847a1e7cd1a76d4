package domain

import "fmt"

// ValidationError reports a single rejected input field. The engine refuses
// to substitute defaults for bad numerics; a bad field fails the request.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

// ValidateProfile checks a borrower record for negative or out-of-range
// numerics. Zero incomes are allowed — downstream metrics flag them as
// insufficient data instead of failing the request.
func ValidateProfile(p *BorrowerProfile) error {
	if p == nil {
		return &ValidationError{Field: "borrower_profile", Reason: "missing"}
	}
	if p.CreditScore < 300 || p.CreditScore > 850 {
		return &ValidationError{Field: "credit_score", Reason: fmt.Sprintf("must be within [300,850], got %d", p.CreditScore)}
	}
	if p.MonthlyIncome < 0 {
		return &ValidationError{Field: "monthly_income", Reason: "must not be negative"}
	}
	if p.MonthlyDebts < 0 {
		return &ValidationError{Field: "monthly_debts", Reason: "must not be negative"}
	}
	if p.LiquidAssets < 0 {
		return &ValidationError{Field: "liquid_assets", Reason: "must not be negative"}
	}
	if p.EmploymentYears < 0 {
		return &ValidationError{Field: "employment_years", Reason: "must not be negative"}
	}
	if p.CollectionsAmount < 0 {
		return &ValidationError{Field: "collections_amount", Reason: "must not be negative"}
	}
	if p.LatePayments12Mo < 0 {
		return &ValidationError{Field: "late_payments_12mo", Reason: "must not be negative"}
	}
	if p.HasBankruptcy && p.BankruptcyMonthsAgo < 0 {
		return &ValidationError{Field: "bankruptcy_months_ago", Reason: "must not be negative"}
	}
	if p.HasForeclosure && p.ForeclosureMonthsAgo < 0 {
		return &ValidationError{Field: "foreclosure_months_ago", Reason: "must not be negative"}
	}
	for i, src := range p.IncomeSources {
		if src.MonthlyAmount < 0 {
			return &ValidationError{Field: fmt.Sprintf("income_sources[%d].monthly_amount", i), Reason: "must not be negative"}
		}
		if src.YearsReceived < 0 {
			return &ValidationError{Field: fmt.Sprintf("income_sources[%d].years_received", i), Reason: "must not be negative"}
		}
	}
	return nil
}

// ValidateScenario checks the requested loan. Property value and down payment
// may be zero (metrics degrade to zero + insufficient-data flags), but the
// loan amount itself is required.
func ValidateScenario(s *LoanScenario) error {
	if s == nil {
		return &ValidationError{Field: "loan_scenario", Reason: "missing"}
	}
	if s.LoanAmount <= 0 {
		return &ValidationError{Field: "loan_amount", Reason: "must be positive"}
	}
	if s.PropertyValue < 0 {
		return &ValidationError{Field: "property_value", Reason: "must not be negative"}
	}
	if s.DownPayment < 0 {
		return &ValidationError{Field: "down_payment", Reason: "must not be negative"}
	}
	return nil
}
