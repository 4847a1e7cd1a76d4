package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProfile() *BorrowerProfile {
	return &BorrowerProfile{
		CreditScore:     720,
		MonthlyIncome:   8000,
		MonthlyDebts:    900,
		LiquidAssets:    60000,
		EmploymentYears: 4,
		EmploymentType:  EmploymentW2,
	}
}

func TestValidateProfile_Valid(t *testing.T) {
	require.NoError(t, ValidateProfile(validProfile()))
}

func TestValidateProfile_ZeroIncomeAllowed(t *testing.T) {
	p := validProfile()
	p.MonthlyIncome = 0
	assert.NoError(t, ValidateProfile(p), "zero income degrades to insufficient-data metrics, not a rejection")
}

func TestValidateProfile_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*BorrowerProfile)
		field  string
	}{
		{"credit score too low", func(p *BorrowerProfile) { p.CreditScore = 250 }, "credit_score"},
		{"credit score too high", func(p *BorrowerProfile) { p.CreditScore = 900 }, "credit_score"},
		{"negative income", func(p *BorrowerProfile) { p.MonthlyIncome = -1 }, "monthly_income"},
		{"negative debts", func(p *BorrowerProfile) { p.MonthlyDebts = -50 }, "monthly_debts"},
		{"negative assets", func(p *BorrowerProfile) { p.LiquidAssets = -1 }, "liquid_assets"},
		{"negative collections", func(p *BorrowerProfile) { p.CollectionsAmount = -10 }, "collections_amount"},
		{"negative source amount", func(p *BorrowerProfile) {
			p.IncomeSources = []IncomeSource{{Type: IncomeW2Salary, MonthlyAmount: -5}}
		}, "income_sources[0].monthly_amount"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validProfile()
			tc.mutate(p)
			err := ValidateProfile(p)
			require.Error(t, err)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestValidateScenario(t *testing.T) {
	s := &LoanScenario{LoanAmount: 300000, PropertyValue: 400000, DownPayment: 100000}
	require.NoError(t, ValidateScenario(s))

	s.LoanAmount = 0
	err := ValidateScenario(s)
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "loan_amount", verr.Field)

	// Zero property value is allowed; metrics flag it instead.
	s.LoanAmount = 300000
	s.PropertyValue = 0
	assert.NoError(t, ValidateScenario(s))
}

func TestMaxLTVFor_Fallback(t *testing.T) {
	r := &ProgramRuleSet{MaxLTVByOccupancy: map[OccupancyType]float64{OccupancyPrimary: 97}}
	assert.Equal(t, 97.0, r.MaxLTVFor(OccupancyPrimary))
	assert.Equal(t, 80.0, r.MaxLTVFor(OccupancyInvestment))
}
