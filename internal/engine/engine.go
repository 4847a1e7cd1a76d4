// Package engine orchestrates a full qualification and underwriting pass:
// financial metrics, income qualification, credit risk, per-program
// eligibility, ranking, the overall qualification status, and the final
// underwriting decision.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lendcore/underwrite/internal/credit"
	"github.com/lendcore/underwrite/internal/domain"
	"github.com/lendcore/underwrite/internal/eligibility"
	"github.com/lendcore/underwrite/internal/finmetrics"
	"github.com/lendcore/underwrite/internal/income"
	"github.com/lendcore/underwrite/internal/qualification"
	"github.com/lendcore/underwrite/internal/ranking"
	"github.com/lendcore/underwrite/internal/rulestore"
	"github.com/lendcore/underwrite/internal/telemetry"
	"github.com/lendcore/underwrite/internal/underwriting"
)

// DefaultStoreTimeout bounds rule store access per request
const DefaultStoreTimeout = 10 * time.Second

// Request is one evaluation input. The engine never mutates it.
type Request struct {
	Profile  domain.BorrowerProfile `json:"profile" yaml:"profile"`
	Scenario domain.LoanScenario    `json:"scenario" yaml:"scenario"`
}

// Outcome is the complete evaluation result. RequestID and GeneratedAt are
// per-call metadata; everything else is a pure function of the request and
// the rule sets in effect.
type Outcome struct {
	RequestID   string    `json:"request_id"`
	GeneratedAt time.Time `json:"generated_at"`

	Metrics finmetrics.Metrics `json:"metrics"`
	Income  income.Result      `json:"income"`
	Credit  credit.Assessment  `json:"credit"`

	// Programs holds every evaluated program in rank order; TopPrograms is
	// the ranker's short list.
	Programs    []eligibility.Evaluation `json:"programs"`
	TopPrograms []eligibility.Evaluation `json:"top_programs"`
	Recommended *eligibility.Evaluation  `json:"recommended_program,omitempty"`
	Rationale   string                   `json:"rationale,omitempty"`

	Qualification  qualification.Resolution `json:"qualification"`
	CriticalIssues []string                 `json:"critical_issues,omitempty"`
	Warnings       []string                 `json:"warnings,omitempty"`

	Underwriting underwriting.Decision `json:"underwriting"`
}

// EligiblePrograms returns the ids of programs that passed every hard gate.
func (o *Outcome) EligiblePrograms() []domain.ProgramID {
	var out []domain.ProgramID
	for _, p := range o.Programs {
		if p.Status == eligibility.StatusEligible {
			out = append(out, p.ProgramID)
		}
	}
	return out
}

// Engine wires the pipeline stages together.
type Engine struct {
	store        rulestore.Store
	calc         *finmetrics.Calculator
	incomes      *income.Qualifier
	classifier   *credit.Classifier
	matcher      *eligibility.Matcher
	ranker       *ranking.Ranker
	underwriter  *underwriting.Engine
	storeTimeout time.Duration
	log          zerolog.Logger
	metrics      *telemetry.Metrics
}

// Option customizes engine construction.
type Option func(*Engine)

// WithStoreTimeout overrides the per-request rule store deadline.
func WithStoreTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.storeTimeout = d
		}
	}
}

// WithScoringPolicy overrides the eligibility scoring weights.
func WithScoringPolicy(p eligibility.ScoringPolicy) Option {
	return func(e *Engine) { e.matcher = eligibility.NewMatcher(p) }
}

// WithUnderwritingConfig overrides the underwriting tolerance bands.
func WithUnderwritingConfig(cfg underwriting.Config) Option {
	return func(e *Engine) { e.underwriter = underwriting.NewEngine(cfg) }
}

// WithTopN overrides how many ranked programs the outcome carries.
func WithTopN(n int) Option {
	return func(e *Engine) { e.ranker = ranking.NewRanker(n) }
}

// WithMetrics attaches Prometheus collectors.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// New builds an engine over the given rule store.
func New(store rulestore.Store, log zerolog.Logger, opts ...Option) *Engine {
	e := &Engine{
		store:        store,
		calc:         finmetrics.NewCalculator(),
		incomes:      income.NewQualifier(),
		classifier:   credit.NewClassifier(credit.DefaultSeasoningPolicy()),
		matcher:      eligibility.NewMatcher(eligibility.DefaultScoringPolicy()),
		ranker:       ranking.NewRanker(ranking.DefaultTopN),
		underwriter:  underwriting.NewEngine(underwriting.DefaultConfig()),
		storeTimeout: DefaultStoreTimeout,
		log:          log,
		metrics:      telemetry.NopMetrics(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate runs the full pipeline for one request.
func (e *Engine) Evaluate(ctx context.Context, req *Request) (*Outcome, error) {
	start := time.Now()

	if err := domain.ValidateProfile(&req.Profile); err != nil {
		return nil, err
	}
	if err := domain.ValidateScenario(&req.Scenario); err != nil {
		return nil, err
	}

	out := &Outcome{
		RequestID:   uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
	}
	log := e.log.With().Str("request_id", out.RequestID).Logger()

	// Financial metrics off the stated gross income, then income
	// qualification refines the usable figure.
	out.Metrics = e.calc.Compute(&req.Profile, &req.Scenario)
	out.Income = e.incomes.Evaluate(&req.Profile)
	out.Metrics.QualifyingIncome = out.Income.QualifyingIncome
	out.Warnings = append(out.Warnings, out.Income.ExclusionReasons()...)

	out.Credit = e.classifier.Classify(&req.Profile)

	evals, ruleSets, warnings, err := e.evaluatePrograms(ctx, &req.Profile, &req.Scenario, out.Metrics)
	if err != nil {
		e.metrics.StoreErrorsTotal.Inc()
		return nil, err
	}
	out.Warnings = append(out.Warnings, warnings...)

	rec := e.ranker.Rank(&req.Profile, evals)
	out.Programs = rec.Ranked
	out.TopPrograms = rec.Top
	out.Recommended = rec.Recommended
	out.Rationale = rec.Rationale

	out.CriticalIssues = e.criticalIssues(out)
	out.Qualification = qualification.Resolve(len(out.CriticalIssues), len(out.EligiblePrograms()))

	out.Underwriting = e.underwrite(req, out, ruleSets)

	log.Info().
		Str("status", string(out.Qualification.Status)).
		Str("decision", string(out.Underwriting.Recommendation)).
		Int("programs", len(out.Programs)).
		Int("critical_issues", len(out.CriticalIssues)).
		Dur("elapsed", time.Since(start)).
		Msg("evaluation complete")

	e.metrics.EvaluationsTotal.WithLabelValues(string(out.Qualification.Status)).Inc()
	e.metrics.EvaluationDuration.Observe(time.Since(start).Seconds())
	e.metrics.ProgramsEvaluated.Observe(float64(len(out.Programs)))
	return out, nil
}

// evaluatePrograms fans one matcher call out per known program. A missing
// rule set is skipped with a warning; any other store failure fails the
// request. The fetched rule sets are returned alongside the evaluations so
// the decision stage reuses this request's snapshot instead of re-reading
// the store.
func (e *Engine) evaluatePrograms(ctx context.Context, profile *domain.BorrowerProfile, scenario *domain.LoanScenario, metrics finmetrics.Metrics) ([]eligibility.Evaluation, map[domain.ProgramID]*domain.ProgramRuleSet, []string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.storeTimeout)
	defer cancel()

	ids, err := e.store.ListPrograms(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("list programs: %w", err)
	}

	type slot struct {
		eval    *eligibility.Evaluation
		rules   *domain.ProgramRuleSet
		warning string
		err     error
	}
	slots := make([]slot, len(ids))

	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id domain.ProgramID) {
			defer wg.Done()
			rules, err := e.store.GetProgramRuleSet(ctx, id)
			if err != nil {
				if errors.Is(err, rulestore.ErrProgramNotFound) {
					slots[i].warning = fmt.Sprintf("program %s has no rule set, skipped", id)
					return
				}
				slots[i].err = fmt.Errorf("load rule set %s: %w", id, err)
				return
			}
			eval := e.matcher.Match(profile, scenario, metrics, rules)
			slots[i].eval = &eval
			slots[i].rules = rules
		}(i, id)
	}
	wg.Wait()

	var evals []eligibility.Evaluation
	ruleSets := make(map[domain.ProgramID]*domain.ProgramRuleSet, len(ids))
	var warnings []string
	for _, s := range slots {
		if s.err != nil {
			return nil, nil, nil, s.err
		}
		if s.warning != "" {
			warnings = append(warnings, s.warning)
			continue
		}
		if s.eval != nil {
			evals = append(evals, *s.eval)
			ruleSets[s.eval.ProgramID] = s.rules
		}
	}
	return evals, ruleSets, warnings, nil
}

// criticalIssues collects borrower-level decline triggers. Per-program gate
// failures stay on their evaluations; only conditions that block every
// program count here.
func (e *Engine) criticalIssues(out *Outcome) []string {
	var issues []string
	if out.Credit.HardDecline || out.Credit.Tier == credit.TierHigh {
		issues = append(issues, out.Credit.Reasons...)
	}
	if out.Income.QualifyingIncome <= 0 {
		issues = append(issues, "no qualifying income after source evaluation")
	}
	for _, flag := range out.Metrics.InsufficientData {
		issues = append(issues, fmt.Sprintf("insufficient data: %s", flag))
	}
	return issues
}

// underwrite renders the final decision using the recommended program's
// rules from this request's snapshot. The recommended program always comes
// from the evaluated set, so its rule set is present in ruleSets. With no
// recommendable program the file is denied on a hard decline and sent to
// manual review otherwise.
func (e *Engine) underwrite(req *Request, out *Outcome, ruleSets map[domain.ProgramID]*domain.ProgramRuleSet) underwriting.Decision {
	if out.Recommended == nil {
		if out.Credit.HardDecline {
			return underwriting.Decision{
				Recommendation: underwriting.Deny,
				State:          underwriting.StateDenied,
				Reasons:        append([]string{"no eligible loan program"}, out.Credit.Reasons...),
			}
		}
		return underwriting.Decision{
			Recommendation: underwriting.ManualReview,
			State:          underwriting.StateManualReview,
			Reasons:        []string{"no eligible loan program for automated underwriting"},
		}
	}
	return e.underwriter.Decide(&req.Profile, &req.Scenario, out.Metrics, out.Credit, ruleSets[out.Recommended.ProgramID])
}
