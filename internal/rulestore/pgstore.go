package rulestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/lendcore/underwrite/internal/domain"
)

// pgQueryTimeout bounds every rule store query
const pgQueryTimeout = 5 * time.Second

// PGStore reads program rule sets from the program_rule_sets table.
type PGStore struct {
	db *sqlx.DB
}

// NewPGStore opens a Postgres-backed rule store.
func NewPGStore(dsn string) (*PGStore, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect rule store: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)
	return &PGStore{db: db}, nil
}

// NewPGStoreWithDB wraps an existing connection, used by tests.
func NewPGStoreWithDB(db *sqlx.DB) *PGStore {
	return &PGStore{db: db}
}

// Close releases the underlying connection pool.
func (s *PGStore) Close() error {
	return s.db.Close()
}

// programRow is the wire shape of one program_rule_sets row. Occupancy LTV
// limits and benefits are stored as JSON columns.
type programRow struct {
	ProgramID                  string  `db:"program_id"`
	Name                       string  `db:"name"`
	Description                string  `db:"description"`
	MinCreditScore             int     `db:"min_credit_score"`
	MinDownPaymentPct          float64 `db:"min_down_payment_pct"`
	MaxFrontEndDTI             float64 `db:"max_front_end_dti"`
	MaxBackEndDTI              float64 `db:"max_back_end_dti"`
	ReserveMonthsRequired      float64 `db:"reserve_months_required"`
	BankruptcySeasoningMonths  int     `db:"bankruptcy_seasoning_months"`
	ForeclosureSeasoningMonths int     `db:"foreclosure_seasoning_months"`
	MaxLTVByOccupancy          []byte  `db:"max_ltv_by_occupancy"`
	SpecialEligibility         string  `db:"special_eligibility"`
	Benefits                   []byte  `db:"benefits"`
}

func (r *programRow) toRuleSet() (*domain.ProgramRuleSet, error) {
	rs := &domain.ProgramRuleSet{
		ProgramID:                  domain.ProgramID(r.ProgramID),
		Name:                       r.Name,
		Description:                r.Description,
		MinCreditScore:             r.MinCreditScore,
		MinDownPaymentPct:          r.MinDownPaymentPct,
		MaxFrontEndDTI:             r.MaxFrontEndDTI,
		MaxBackEndDTI:              r.MaxBackEndDTI,
		ReserveMonthsRequired:      r.ReserveMonthsRequired,
		BankruptcySeasoningMonths:  r.BankruptcySeasoningMonths,
		ForeclosureSeasoningMonths: r.ForeclosureSeasoningMonths,
		SpecialEligibility:         domain.SpecialEligibility(r.SpecialEligibility),
	}
	if len(r.MaxLTVByOccupancy) > 0 {
		if err := json.Unmarshal(r.MaxLTVByOccupancy, &rs.MaxLTVByOccupancy); err != nil {
			return nil, fmt.Errorf("decode ltv limits for %s: %w", r.ProgramID, err)
		}
	}
	if len(r.Benefits) > 0 {
		if err := json.Unmarshal(r.Benefits, &rs.Benefits); err != nil {
			return nil, fmt.Errorf("decode benefits for %s: %w", r.ProgramID, err)
		}
	}
	return rs, nil
}

const selectRuleSetQuery = `
	SELECT program_id, name, description,
	       min_credit_score, min_down_payment_pct,
	       max_front_end_dti, max_back_end_dti,
	       reserve_months_required,
	       bankruptcy_seasoning_months, foreclosure_seasoning_months,
	       max_ltv_by_occupancy, special_eligibility, benefits
	FROM program_rule_sets
	WHERE program_id = $1`

// GetProgramRuleSet fetches one program's rule set.
func (s *PGStore) GetProgramRuleSet(ctx context.Context, id domain.ProgramID) (*domain.ProgramRuleSet, error) {
	ctx, cancel := context.WithTimeout(ctx, pgQueryTimeout)
	defer cancel()

	var row programRow
	if err := s.db.GetContext(ctx, &row, selectRuleSetQuery, string(id)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProgramNotFound
		}
		return nil, fmt.Errorf("query rule set %s: %w", id, err)
	}
	return row.toRuleSet()
}

// ListPrograms returns all stored program ids, stable order.
func (s *PGStore) ListPrograms(ctx context.Context) ([]domain.ProgramID, error) {
	ctx, cancel := context.WithTimeout(ctx, pgQueryTimeout)
	defer cancel()

	var ids []string
	if err := s.db.SelectContext(ctx, &ids,
		`SELECT program_id FROM program_rule_sets ORDER BY program_id`); err != nil {
		return nil, fmt.Errorf("list programs: %w", err)
	}
	out := make([]domain.ProgramID, len(ids))
	for i, id := range ids {
		out[i] = domain.ProgramID(id)
	}
	return out, nil
}
