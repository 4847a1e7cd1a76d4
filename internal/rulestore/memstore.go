package rulestore

import (
	"context"
	"sort"
	"sync"

	"github.com/lendcore/underwrite/internal/domain"
)

// MemStore is an in-memory Store. Zero-value is empty; NewMemStore seeds it.
type MemStore struct {
	mu    sync.RWMutex
	rules map[domain.ProgramID]domain.ProgramRuleSet
}

// NewMemStore returns a MemStore seeded with the given rule sets.
func NewMemStore(rules []domain.ProgramRuleSet) *MemStore {
	m := &MemStore{rules: make(map[domain.ProgramID]domain.ProgramRuleSet, len(rules))}
	for _, r := range rules {
		m.rules[r.ProgramID] = r
	}
	return m
}

// NewDefaultStore returns a MemStore seeded with the canonical program set.
func NewDefaultStore() *MemStore {
	return NewMemStore(DefaultRules())
}

// Put inserts or replaces a rule set.
func (m *MemStore) Put(rs domain.ProgramRuleSet) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rules == nil {
		m.rules = make(map[domain.ProgramID]domain.ProgramRuleSet)
	}
	m.rules[rs.ProgramID] = rs
}

// GetProgramRuleSet returns a copy of the stored rule set.
func (m *MemStore) GetProgramRuleSet(_ context.Context, id domain.ProgramID) (*domain.ProgramRuleSet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rs, ok := m.rules[id]
	if !ok {
		return nil, ErrProgramNotFound
	}
	return &rs, nil
}

// ListPrograms returns all seeded program ids in lexicographic order.
func (m *MemStore) ListPrograms(_ context.Context) ([]domain.ProgramID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]domain.ProgramID, 0, len(m.rules))
	for id := range m.rules {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// DefaultRules returns the built-in rule sets for the five supported
// programs. These mirror the seeded production rule tables and serve as the
// fallback when no external store is configured.
func DefaultRules() []domain.ProgramRuleSet {
	return []domain.ProgramRuleSet{
		{
			ProgramID:                  domain.ProgramFHA,
			Name:                       "FHA Loan",
			Description:                "Government-insured loan with flexible credit requirements",
			MinCreditScore:             580,
			MinDownPaymentPct:          3.5,
			MaxFrontEndDTI:             31,
			MaxBackEndDTI:              43,
			ReserveMonthsRequired:      1,
			BankruptcySeasoningMonths:  24,
			ForeclosureSeasoningMonths: 36,
			MaxLTVByOccupancy: map[domain.OccupancyType]float64{
				domain.OccupancyPrimary:    96.5,
				domain.OccupancyInvestment: 85,
				domain.OccupancyVacation:   96.5,
			},
			Benefits: []string{
				"Low down payment requirement",
				"Flexible credit guidelines",
				"Gift funds allowed for down payment",
			},
		},
		{
			ProgramID:                  domain.ProgramVA,
			Name:                       "VA Loan",
			Description:                "Zero-down loan for eligible military service members and veterans",
			MinCreditScore:             620,
			MinDownPaymentPct:          0,
			MaxFrontEndDTI:             28,
			MaxBackEndDTI:              41,
			ReserveMonthsRequired:      0,
			BankruptcySeasoningMonths:  24,
			ForeclosureSeasoningMonths: 24,
			MaxLTVByOccupancy: map[domain.OccupancyType]float64{
				domain.OccupancyPrimary:    100,
				domain.OccupancyInvestment: 90,
				domain.OccupancyVacation:   100,
			},
			SpecialEligibility: domain.EligibilityMilitary,
			Benefits: []string{
				"No down payment required",
				"No monthly mortgage insurance",
				"Competitive interest rates",
			},
		},
		{
			ProgramID:                  domain.ProgramUSDA,
			Name:                       "USDA Rural Development Loan",
			Description:                "Zero-down loan for properties in eligible rural areas",
			MinCreditScore:             640,
			MinDownPaymentPct:          0,
			MaxFrontEndDTI:             29,
			MaxBackEndDTI:              41,
			ReserveMonthsRequired:      0,
			BankruptcySeasoningMonths:  36,
			ForeclosureSeasoningMonths: 36,
			MaxLTVByOccupancy: map[domain.OccupancyType]float64{
				domain.OccupancyPrimary:    100,
				domain.OccupancyInvestment: 80,
				domain.OccupancyVacation:   90,
			},
			SpecialEligibility: domain.EligibilityRural,
			Benefits: []string{
				"No down payment required",
				"Below-market interest rates",
				"Low guarantee fee",
			},
		},
		{
			ProgramID:                  domain.ProgramConventional,
			Name:                       "Conventional Loan",
			Description:                "Standard conforming loan with competitive pricing",
			MinCreditScore:             620,
			MinDownPaymentPct:          3,
			MaxFrontEndDTI:             28,
			MaxBackEndDTI:              43,
			ReserveMonthsRequired:      2,
			BankruptcySeasoningMonths:  48,
			ForeclosureSeasoningMonths: 84,
			MaxLTVByOccupancy: map[domain.OccupancyType]float64{
				domain.OccupancyPrimary:    97,
				domain.OccupancyInvestment: 75,
				domain.OccupancyVacation:   90,
			},
			Benefits: []string{
				"No upfront mortgage insurance",
				"Mortgage insurance removable at 20% equity",
				"Wide lender availability",
			},
		},
		{
			ProgramID:                  domain.ProgramJumbo,
			Name:                       "Jumbo Loan",
			Description:                "Non-conforming loan for amounts above conventional limits",
			MinCreditScore:             700,
			MinDownPaymentPct:          10,
			MaxFrontEndDTI:             38,
			MaxBackEndDTI:              43,
			ReserveMonthsRequired:      6,
			BankruptcySeasoningMonths:  84,
			ForeclosureSeasoningMonths: 84,
			MaxLTVByOccupancy: map[domain.OccupancyType]float64{
				domain.OccupancyPrimary:    90,
				domain.OccupancyInvestment: 70,
				domain.OccupancyVacation:   80,
			},
			Benefits: []string{
				"Financing above conforming limits",
				"Competitive rates for strong borrowers",
			},
		},
	}
}
