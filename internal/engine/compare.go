package engine

import (
	"sort"

	"github.com/piwi3910/BarCut/internal/model"
)

// ComparisonResult holds the plan and statistics for one candidate bar length.
type ComparisonResult struct {
	BarLength     float64
	Plan          model.CuttingPlan
	BarsUsed      int
	Efficiency    float64
	ReusableTotal float64
	ScrapTotal    float64
	Cost          model.CostSummary
	Err           error
}

// CompareBarLengths plans the profile's cuts against each candidate bar
// length, in the order given. Candidates the cuts do not fit report their
// error instead of a plan.
func CompareBarLengths(profile model.Profile, lengths []float64) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(lengths))

	for _, length := range lengths {
		candidate := profile.Clone()
		candidate.BarLength = length

		plan, err := Plan(candidate)
		if err != nil {
			results = append(results, ComparisonResult{BarLength: length, Err: err})
			continue
		}

		reusable, scrap := plan.LeftoverTotals()
		results = append(results, ComparisonResult{
			BarLength:     length,
			Plan:          plan,
			BarsUsed:      len(plan.Bars),
			Efficiency:    plan.Efficiency,
			ReusableTotal: reusable,
			ScrapTotal:    scrap,
			Cost:          model.SummarizeCost(candidate, plan),
		})
	}

	return results
}

// DefaultBarLengths returns the stock lengths worth comparing for a
// profile: the standard 6.00 m and 6.20 m bars plus the profile's own,
// ascending and without duplicates.
func DefaultBarLengths(profile model.Profile) []float64 {
	candidates := []float64{model.DefaultBarLengthMM, model.MaxBarLengthMM}
	if profile.BarLength > 0 {
		candidates = append(candidates, profile.BarLength)
	}

	sort.Float64s(candidates)
	out := candidates[:0]
	for _, c := range candidates {
		if len(out) > 0 && model.NearlyEqual(out[len(out)-1], c) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Best returns the index of the successful result with the fewest bars,
// breaking ties by the least scrap. Returns -1 if none succeeded.
func Best(results []ComparisonResult) int {
	best := -1
	for i, r := range results {
		if r.Err != nil {
			continue
		}
		if best < 0 ||
			r.BarsUsed < results[best].BarsUsed ||
			(r.BarsUsed == results[best].BarsUsed && r.ScrapTotal < results[best].ScrapTotal) {
			best = i
		}
	}
	return best
}
