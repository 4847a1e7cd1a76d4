// Package ranking orders program evaluations and picks the recommended
// program. The pick applies population-priority overrides before raw score,
// so a veteran with a VA match is steered to VA even when another program
// scores marginally higher.
package ranking

import (
	"fmt"
	"sort"

	"github.com/lendcore/underwrite/internal/domain"
	"github.com/lendcore/underwrite/internal/eligibility"
)

// DefaultTopN is how many ranked programs a recommendation carries
const DefaultTopN = 3

// Recommendation is the ranker output. Ranked holds every evaluation in
// score order; Top is the short list shown to borrowers.
type Recommendation struct {
	Ranked      []eligibility.Evaluation `json:"ranked"`
	Top         []eligibility.Evaluation `json:"top"`
	Recommended *eligibility.Evaluation  `json:"recommended,omitempty"`
	Rationale   string                   `json:"rationale,omitempty"`
}

// Ranker sorts evaluations and selects the recommended program.
type Ranker struct {
	topN int
}

// NewRanker returns a ranker keeping the top n programs; n <= 0 selects the
// default.
func NewRanker(topN int) *Ranker {
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &Ranker{topN: topN}
}

// Rank sorts by score descending with program id as the deterministic tie
// break, then picks the recommended program from the eligible set.
func (r *Ranker) Rank(profile *domain.BorrowerProfile, evals []eligibility.Evaluation) Recommendation {
	sorted := make([]eligibility.Evaluation, len(evals))
	copy(sorted, evals)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		return sorted[i].ProgramID < sorted[j].ProgramID
	})

	rec := Recommendation{Ranked: sorted, Top: sorted}
	if len(rec.Top) > r.topN {
		rec.Top = rec.Top[:r.topN]
	}

	pick, why := choose(profile, sorted)
	if pick != nil {
		p := *pick
		rec.Recommended = &p
		rec.Rationale = why
	}
	return rec
}

// choose applies the priority ladder over eligible programs only.
func choose(profile *domain.BorrowerProfile, sorted []eligibility.Evaluation) (*eligibility.Evaluation, string) {
	eligibleByID := make(map[domain.ProgramID]*eligibility.Evaluation)
	var firstEligible *eligibility.Evaluation
	for i := range sorted {
		if sorted[i].Status != eligibility.StatusEligible {
			continue
		}
		if firstEligible == nil {
			firstEligible = &sorted[i]
		}
		eligibleByID[sorted[i].ProgramID] = &sorted[i]
	}
	if firstEligible == nil {
		return nil, ""
	}

	if profile.MilitaryService {
		if va, ok := eligibleByID[domain.ProgramVA]; ok {
			return va, fmt.Sprintf("VA eligibility from military service outweighs raw score; %s", headline(va))
		}
	}
	if profile.RuralProperty {
		if usda, ok := eligibleByID[domain.ProgramUSDA]; ok {
			return usda, fmt.Sprintf("rural property qualifies for USDA zero-down financing; %s", headline(usda))
		}
	}
	if profile.FirstTimeBuyer {
		if fha, ok := eligibleByID[domain.ProgramFHA]; ok {
			return fha, fmt.Sprintf("first-time buyer profile fits FHA's flexible guidelines; %s", headline(fha))
		}
	}
	if conv, ok := eligibleByID[domain.ProgramConventional]; ok {
		return conv, fmt.Sprintf("conventional financing offers the broadest terms; %s", headline(conv))
	}
	return firstEligible, fmt.Sprintf("highest scored eligible program; %s", headline(firstEligible))
}

func headline(e *eligibility.Evaluation) string {
	if len(e.Benefits) > 0 {
		return fmt.Sprintf("scored %.0f (%s), key benefit: %s", e.Score, e.Band, e.Benefits[0])
	}
	return fmt.Sprintf("scored %.0f (%s)", e.Score, e.Band)
}
