package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lendcore/underwrite/internal/credit"
	"github.com/lendcore/underwrite/internal/domain"
	"github.com/lendcore/underwrite/internal/eligibility"
	"github.com/lendcore/underwrite/internal/qualification"
	"github.com/lendcore/underwrite/internal/underwriting"
)

// Strong borrower with a large down payment sails through every stage.
func TestScenarioStrongBorrowerApproved(t *testing.T) {
	e := newTestEngine(t)
	out, err := e.Evaluate(context.Background(), &Request{
		Profile: domain.BorrowerProfile{
			CreditScore: 750, MonthlyIncome: 9500, MonthlyDebts: 1800,
			LiquidAssets: 260000, EmploymentYears: 3.5, EmploymentType: domain.EmploymentW2,
		},
		Scenario: domain.LoanScenario{
			LoanAmount: 400000, PropertyValue: 625000, DownPayment: 225000,
			PropertyType: domain.PropertySingleFamily, OccupancyType: domain.OccupancyPrimary,
			LoanPurpose: domain.PurposePurchase,
		},
	})
	require.NoError(t, err)

	assert.Equal(t, qualification.StatusQualified, out.Qualification.Status)
	assert.Equal(t, qualification.RoutingDirectProcessing, out.Qualification.Routing)
	assert.Empty(t, out.CriticalIssues)
	assert.Equal(t, credit.TierLow, out.Credit.Tier)

	require.NotNil(t, out.Recommended)
	assert.Equal(t, domain.ProgramConventional, out.Recommended.ProgramID)
	assert.Equal(t, underwriting.Approve, out.Underwriting.Recommendation)
	assert.InDelta(t, 40.0, out.Metrics.BackEndDTIPct, 0.01)
	assert.InDelta(t, 17.5, out.Metrics.ReserveMonthsAvailable, 0.01)
}

// Recent bankruptcy plus a 520 score is a hard decline everywhere.
func TestScenarioRecentBankruptcyDenied(t *testing.T) {
	e := newTestEngine(t)
	out, err := e.Evaluate(context.Background(), &Request{
		Profile: domain.BorrowerProfile{
			CreditScore: 520, MonthlyIncome: 5500, MonthlyDebts: 900,
			LiquidAssets: 12000, EmploymentYears: 3,
			HasBankruptcy: true, BankruptcyMonthsAgo: 8,
		},
		Scenario: domain.LoanScenario{
			LoanAmount: 250000, PropertyValue: 275000, DownPayment: 25000,
			OccupancyType: domain.OccupancyPrimary,
		},
	})
	require.NoError(t, err)

	assert.Equal(t, credit.TierHigh, out.Credit.Tier)
	assert.True(t, out.Credit.HardDecline)
	for _, p := range out.Programs {
		assert.NotEqual(t, eligibility.StatusEligible, p.Status, string(p.ProgramID))
	}
	assert.Equal(t, qualification.StatusNotQualified, out.Qualification.Status)
	assert.Equal(t, qualification.RoutingAdvisorImprovement, out.Qualification.Routing)
	assert.Equal(t, underwriting.Deny, out.Underwriting.Recommendation)
	assert.NotEmpty(t, out.CriticalIssues)
}

// A veteran with no down payment is steered to VA.
func TestScenarioVeteranZeroDownRecommendedVA(t *testing.T) {
	e := newTestEngine(t)
	out, err := e.Evaluate(context.Background(), &Request{
		Profile: domain.BorrowerProfile{
			CreditScore: 660, MonthlyIncome: 7200, MonthlyDebts: 600,
			LiquidAssets: 15000, EmploymentYears: 4, MilitaryService: true,
		},
		Scenario: domain.LoanScenario{
			LoanAmount: 310000, PropertyValue: 310000, DownPayment: 0,
			OccupancyType: domain.OccupancyPrimary,
		},
	})
	require.NoError(t, err)

	var va *eligibility.Evaluation
	for i := range out.Programs {
		if out.Programs[i].ProgramID == domain.ProgramVA {
			va = &out.Programs[i]
		}
	}
	require.NotNil(t, va)
	assert.Equal(t, eligibility.StatusEligible, va.Status)

	require.NotNil(t, out.Recommended)
	assert.Equal(t, domain.ProgramVA, out.Recommended.ProgramID)
	assert.Contains(t, out.Rationale, "military")
}

// Zero income yields zero DTI plus insufficient-data flags rather than a
// divide-by-zero or a spurious approval.
func TestScenarioZeroIncomeFlagsInsufficientData(t *testing.T) {
	e := newTestEngine(t)
	out, err := e.Evaluate(context.Background(), &Request{
		Profile: domain.BorrowerProfile{
			CreditScore: 700, MonthlyIncome: 0, MonthlyDebts: 400,
			LiquidAssets: 50000, EmploymentYears: 2,
		},
		Scenario: domain.LoanScenario{
			LoanAmount: 150000, PropertyValue: 200000, DownPayment: 50000,
			OccupancyType: domain.OccupancyPrimary,
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 0.0, out.Metrics.BackEndDTIPct)
	assert.Equal(t, 0.0, out.Metrics.FrontEndDTIPct)
	assert.NotEmpty(t, out.Metrics.InsufficientData)
	assert.Equal(t, 0.0, out.Income.QualifyingIncome)
	assert.NotEmpty(t, out.CriticalIssues)
	assert.NotEqual(t, underwriting.Approve, out.Underwriting.Recommendation)
}

// Rural property borrowers are steered to USDA.
func TestScenarioRuralPropertyRecommendedUSDA(t *testing.T) {
	e := newTestEngine(t)
	out, err := e.Evaluate(context.Background(), &Request{
		Profile: domain.BorrowerProfile{
			CreditScore: 680, MonthlyIncome: 6800, MonthlyDebts: 500,
			LiquidAssets: 20000, EmploymentYears: 5, RuralProperty: true,
		},
		Scenario: domain.LoanScenario{
			LoanAmount: 260000, PropertyValue: 260000, DownPayment: 0,
			OccupancyType: domain.OccupancyPrimary,
		},
	})
	require.NoError(t, err)

	var usda *eligibility.Evaluation
	for i := range out.Programs {
		if out.Programs[i].ProgramID == domain.ProgramUSDA {
			usda = &out.Programs[i]
		}
	}
	require.NotNil(t, usda)
	assert.Equal(t, eligibility.StatusEligible, usda.Status)

	require.NotNil(t, out.Recommended)
	assert.Equal(t, domain.ProgramUSDA, out.Recommended.ProgramID)
}

func TestScenarioReportIsStable(t *testing.T) {
	e := newTestEngine(t)
	req := &Request{
		Profile: domain.BorrowerProfile{
			CreditScore: 750, MonthlyIncome: 9500, MonthlyDebts: 1800,
			LiquidAssets: 260000, EmploymentYears: 6,
		},
		Scenario: domain.LoanScenario{
			LoanAmount: 400000, PropertyValue: 625000, DownPayment: 225000,
			OccupancyType: domain.OccupancyPrimary,
		},
	}
	out, err := e.Evaluate(context.Background(), req)
	require.NoError(t, err)

	report := out.Report()
	assert.Contains(t, report, "Overall Status: QUALIFIED")
	assert.Contains(t, report, "Underwriting: APPROVE")
	assert.NotContains(t, report, out.RequestID)
}
