// Package finmetrics derives the ratio metrics every downstream check reads:
// LTV, down payment percentage, front/back DTI and reserve coverage. All
// values are pure functions of the borrower and scenario; nothing is cached
// between requests.
package finmetrics

import (
	"github.com/lendcore/underwrite/internal/domain"
)

// Metric names used in the InsufficientData slice
const (
	MetricLTV           = "ltv_pct"
	MetricDownPayment   = "down_payment_pct"
	MetricFrontEndDTI   = "front_end_dti_pct"
	MetricBackEndDTI    = "back_end_dti_pct"
	MetricReserveMonths = "reserve_months_available"
)

// Metrics is the derived financial snapshot for one request. A metric whose
// denominator was zero or negative is reported as 0 and named in
// InsufficientData; the calculator never errors on arithmetic.
type Metrics struct {
	LTVPct                 float64 `json:"ltv_pct"`
	DownPaymentPct         float64 `json:"down_payment_pct"`
	FrontEndDTIPct         float64 `json:"front_end_dti_pct"`
	BackEndDTIPct          float64 `json:"back_end_dti_pct"`
	HousingPayment         float64 `json:"housing_payment"`
	QualifyingIncome       float64 `json:"qualifying_income"`
	ReserveMonthsAvailable float64 `json:"reserve_months_available"`

	InsufficientData []string `json:"insufficient_data,omitempty"`
}

// HasInsufficientData reports whether the named metric was flagged.
func (m *Metrics) HasInsufficientData(metric string) bool {
	for _, f := range m.InsufficientData {
		if f == metric {
			return true
		}
	}
	return false
}

// PaymentEstimator converts a loan amount into an estimated monthly housing
// payment. The default is a flat factor, not true amortization; it stays the
// default because every rule-store threshold was tuned against it.
type PaymentEstimator func(loanAmount float64) float64

// housingPaymentFactor is the documented flat-payment simplification
const housingPaymentFactor = 0.005

// FlatPaymentEstimator estimates principal+interest as a fixed fraction of
// the loan amount.
func FlatPaymentEstimator(loanAmount float64) float64 {
	return loanAmount * housingPaymentFactor
}

// Calculator computes Metrics. Zero value is not usable; construct with
// NewCalculator.
type Calculator struct {
	estimate PaymentEstimator
}

// NewCalculator returns a calculator using the flat payment estimator.
func NewCalculator() *Calculator {
	return &Calculator{estimate: FlatPaymentEstimator}
}

// NewCalculatorWithEstimator allows swapping in amortization-aware payment
// math without touching the ratio logic.
func NewCalculatorWithEstimator(estimate PaymentEstimator) *Calculator {
	return &Calculator{estimate: estimate}
}

// Compute derives all metrics for one borrower/scenario pair.
// QualifyingIncome starts as the stated gross monthly income; the income
// qualifier narrows it afterwards.
func (c *Calculator) Compute(profile *domain.BorrowerProfile, scenario *domain.LoanScenario) Metrics {
	m := Metrics{
		HousingPayment:   c.estimate(scenario.LoanAmount),
		QualifyingIncome: profile.MonthlyIncome,
	}

	if scenario.PropertyValue > 0 {
		m.LTVPct = scenario.LoanAmount / scenario.PropertyValue * 100
		m.DownPaymentPct = scenario.DownPayment / scenario.PropertyValue * 100
	} else {
		m.InsufficientData = append(m.InsufficientData, MetricLTV, MetricDownPayment)
	}

	if profile.MonthlyIncome > 0 {
		m.FrontEndDTIPct = m.HousingPayment / profile.MonthlyIncome * 100
		m.BackEndDTIPct = (profile.MonthlyDebts + m.HousingPayment) / profile.MonthlyIncome * 100
	} else {
		m.InsufficientData = append(m.InsufficientData, MetricFrontEndDTI, MetricBackEndDTI)
	}

	if m.HousingPayment > 0 {
		reserves := profile.LiquidAssets - scenario.DownPayment
		if reserves < 0 {
			reserves = 0
		}
		m.ReserveMonthsAvailable = reserves / m.HousingPayment
	} else {
		m.InsufficientData = append(m.InsufficientData, MetricReserveMonths)
	}

	return m
}
