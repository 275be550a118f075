package model

import (
	"sort"

	"github.com/google/uuid"
)

// LeftoverStock is a reusable bar remnant that can go back on the rack.
type LeftoverStock struct {
	ID          string  `json:"id"`
	ProfileCode string  `json:"profile_code"` // Which profile it came from
	Length      float64 `json:"length_mm"`
	SourceBar   int     `json:"source_bar"` // 1-based bar number in the plan
}

// ToProfile returns a profile for cutting from this remnant, carrying
// the weight and price of the original profile.
func (l LeftoverStock) ToProfile(from Profile) Profile {
	return NewProfile(l.ProfileCode, from.WeightPerMeter, l.Length, from.PricePerKg)
}

// CollectLeftovers returns the reusable leftovers of a plan, longest first.
// Bars with equal leftovers keep plan order.
func CollectLeftovers(plan CuttingPlan) []LeftoverStock {
	var out []LeftoverStock
	for i, b := range plan.Bars {
		if b.Class() != LeftoverReusable {
			continue
		}
		out = append(out, LeftoverStock{
			ID:          uuid.New().String()[:8],
			ProfileCode: plan.ProfileCode,
			Length:      b.Leftover,
			SourceBar:   i + 1,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Length > out[j].Length
	})
	return out
}

// CollectAllLeftovers gathers reusable leftovers across planned profiles.
func CollectAllLeftovers(results []ProfileResult) []LeftoverStock {
	var all []LeftoverStock
	for _, r := range results {
		if !r.OK() {
			continue
		}
		all = append(all, CollectLeftovers(r.Plan)...)
	}
	return all
}

// TotalLeftoverLength returns the summed length of the given leftovers in mm.
func TotalLeftoverLength(leftovers []LeftoverStock) float64 {
	var total float64
	for _, l := range leftovers {
		total += l.Length
	}
	return total
}
